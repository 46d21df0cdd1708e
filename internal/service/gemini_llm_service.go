package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SalahElkadim/sabrlinguaa-sub000/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const systemInstruction = "You are an expert English language examiner grading placement-test writing answers. " +
	"You always respond with a single JSON object and nothing else."

// geminiGradePayload is the fixed response schema requested from the model.
// score and is_correct are pointers because the model may omit them. The
// adapter never trusts either field: the binary score is always rederived
// locally from percentage vs threshold.
type geminiGradePayload struct {
	RawScore     float64  `json:"raw_score"`
	Percentage   float64  `json:"percentage"`
	Score        *int     `json:"score"`
	IsCorrect    *bool    `json:"is_correct"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type geminiLLMService struct {
	client *genai.GenerativeModel
	cfg    config.Gemini
}

// NewGeminiLLMService builds the AI grading adapter on Gemini. With no API
// key configured the adapter still works: every call lands on the fallback.
func NewGeminiLLMService(cfg *config.Config) (WritingGrader, error) {
	if cfg.Gemini.ApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Writing answers will be graded by the fallback policy.")
		return &geminiLLMService{cfg: cfg.Gemini, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.Gemini.Model)
	model.SetTemperature(float32(cfg.Gemini.Temperature))
	model.SetMaxOutputTokens(int32(cfg.Gemini.MaxOutputTokens))
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}

	return &geminiLLMService{client: model, cfg: cfg.Gemini}, nil
}

// GradeWriting grades one free-text answer through Gemini. It never returns
// an error: any call or parse failure is absorbed into the deterministic
// fallback so a submission always completes.
func (s *geminiLLMService) GradeWriting(ctx context.Context, in WritingGradeInput) *GradingResult {
	wordCount := CountWords(in.StudentAnswer)
	withinLimit := wordCount >= in.MinWords && wordCount <= in.MaxWords

	if s.client == nil {
		return FallbackGrade(wordCount, withinLimit, in.MaxPoints, in.PassThreshold)
	}

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := buildWritingPrompt(in, wordCount)
	resp, err := s.client.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Int("word_count", wordCount).Msg("Gemini call failed, falling back to automatic grading")
		return FallbackGrade(wordCount, withinLimit, in.MaxPoints, in.PassThreshold)
	}

	raw := responseText(resp)
	if raw == "" {
		log.Warn().Msg("Gemini returned no text content, falling back to automatic grading")
		return FallbackGrade(wordCount, withinLimit, in.MaxPoints, in.PassThreshold)
	}

	var payload geminiGradePayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		log.Warn().Err(err).Str("raw", raw).Msg("Could not parse Gemini grading response, falling back")
		return FallbackGrade(wordCount, withinLimit, in.MaxPoints, in.PassThreshold)
	}

	result := gradeFromPayload(payload, in, wordCount, withinLimit)
	result.Model = s.cfg.Model

	if usage := resp.UsageMetadata; usage != nil {
		result.PromptTokens = int(usage.PromptTokenCount)
		result.OutputTokens = int(usage.CandidatesTokenCount)
		result.Cost = tokenCost(result.PromptTokens, result.OutputTokens, s.cfg.InputCostPerMillion, s.cfg.OutputCostPerMillion)
	}

	return result
}

// gradeFromPayload converts a parsed model response into a GradingResult.
// The model is an untrusted black box: raw_score and percentage are clamped
// to their valid ranges, and the binary score is rederived locally so
// score==1 holds exactly when the percentage reaches the pass threshold,
// whatever the model claimed in score/is_correct.
func gradeFromPayload(payload geminiGradePayload, in WritingGradeInput, wordCount int, withinLimit bool) *GradingResult {
	result := &GradingResult{
		RawScore:     clamp(payload.RawScore, 0, float64(in.MaxPoints)),
		Percentage:   clamp(payload.Percentage, 0, 100),
		Feedback:     payload.Feedback,
		Strengths:    payload.Strengths,
		Improvements: payload.Improvements,
		WordCount:    wordCount,
		WithinLimit:  withinLimit,
	}
	if result.Percentage == 0 && result.RawScore > 0 && in.MaxPoints > 0 {
		result.Percentage = result.RawScore / float64(in.MaxPoints) * 100
	}
	result.Score, result.IsCorrect = deriveBinaryScore(result.Percentage, in.PassThreshold)
	return result
}

// buildWritingPrompt constructs the structured grading instruction. Feedback
// is requested in English; localization is handled upstream of this core.
func buildWritingPrompt(in WritingGradeInput, wordCount int) string {
	var sb strings.Builder
	sb.WriteString("Grade the following placement-test writing answer.\n\n")
	sb.WriteString("QUESTION:\n" + in.QuestionText + "\n\n")
	if in.SampleAnswer != "" {
		sb.WriteString("SAMPLE ANSWER (reference, not shown to the student):\n" + in.SampleAnswer + "\n\n")
	}
	if in.Rubric != "" {
		sb.WriteString("RUBRIC:\n" + in.Rubric + "\n\n")
	}
	sb.WriteString("STUDENT ANSWER:\n" + in.StudentAnswer + "\n\n")
	sb.WriteString(fmt.Sprintf("The student wrote %d words. The required length is %d to %d words.\n\n", wordCount, in.MinWords, in.MaxWords))
	sb.WriteString("SCORING RULES:\n")
	sb.WriteString(fmt.Sprintf("- Score the answer out of %d points (raw_score).\n", in.MaxPoints))
	sb.WriteString(fmt.Sprintf("- If the answer is under %d words, reduce raw_score by 30%%.\n", in.MinWords))
	sb.WriteString(fmt.Sprintf("- If the answer is over %d words, reduce raw_score by 20%%.\n", in.MaxWords))
	sb.WriteString(fmt.Sprintf("- percentage = raw_score / %d * 100.\n", in.MaxPoints))
	sb.WriteString(fmt.Sprintf("- score = 1 if percentage >= %.1f, else 0. is_correct = (score == 1).\n", in.PassThreshold))
	sb.WriteString("- Write feedback, strengths and improvements in English.\n\n")
	sb.WriteString("Respond ONLY with a JSON object of this exact shape:\n")
	sb.WriteString(`{"raw_score": <number>, "percentage": <number>, "score": <0 or 1>, "is_correct": <true/false>, "feedback": "<string>", "strengths": ["<string>"], "improvements": ["<string>"]}`)
	sb.WriteString("\n")
	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}

// stripCodeFence removes a markdown code fence the model sometimes wraps
// around JSON output despite the response MIME type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// tokenCost prices a call at per-million-token rates; input and output
// tokens are billed at different rates.
func tokenCost(promptTokens, outputTokens int, inputRate, outputRate float64) float64 {
	return float64(promptTokens)/1_000_000*inputRate + float64(outputTokens)/1_000_000*outputRate
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
