package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/SalahElkadim/sabrlinguaa-sub000/config"
)

func TestBuildWritingPrompt(t *testing.T) {
	in := WritingGradeInput{
		QuestionText:  "Describe your favourite city.",
		StudentAnswer: "I love Cairo because of its history.",
		SampleAnswer:  "A well-structured paragraph about a city.",
		Rubric:        "Grammar, vocabulary, coherence.",
		MaxPoints:     10,
		MinWords:      100,
		MaxWords:      250,
		PassThreshold: 60,
	}
	prompt := buildWritingPrompt(in, 7)

	for _, want := range []string{
		in.QuestionText,
		in.StudentAnswer,
		in.SampleAnswer,
		in.Rubric,
		"out of 10 points",
		"under 100 words, reduce raw_score by 30%",
		"over 250 words, reduce raw_score by 20%",
		"percentage >= 60.0",
		`"raw_score"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildWritingPromptOmitsEmptySections(t *testing.T) {
	prompt := buildWritingPrompt(WritingGradeInput{QuestionText: "Q", StudentAnswer: "A", MaxPoints: 5}, 1)
	if strings.Contains(prompt, "SAMPLE ANSWER") {
		t.Error("prompt should not contain sample answer section when empty")
	}
	if strings.Contains(prompt, "RUBRIC") {
		t.Error("prompt should not contain rubric section when empty")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGradePayloadParsing(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		raw := `{"raw_score": 7.5, "percentage": 75, "score": 1, "is_correct": true,
			"feedback": "Good work", "strengths": ["clear structure"], "improvements": ["tense usage"]}`
		var payload geminiGradePayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if payload.Score == nil || *payload.Score != 1 {
			t.Error("score should be present and 1")
		}
		if payload.IsCorrect == nil || !*payload.IsCorrect {
			t.Error("is_correct should be present and true")
		}
		if len(payload.Strengths) != 1 || len(payload.Improvements) != 1 {
			t.Error("strengths/improvements lost in parsing")
		}
	})

	t.Run("optional fields absent", func(t *testing.T) {
		raw := `{"raw_score": 8, "percentage": 80, "feedback": "ok"}`
		var payload geminiGradePayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if payload.Score != nil || payload.IsCorrect != nil {
			t.Error("absent score/is_correct must stay nil so the adapter derives them")
		}
		score, correct := deriveBinaryScore(payload.Percentage, 60)
		if score != 1 || !correct {
			t.Errorf("derived binary score = (%d, %v), want (1, true)", score, correct)
		}
	})
}

func TestGradeFromPayloadRederivesBinaryFields(t *testing.T) {
	in := WritingGradeInput{MaxPoints: 10, PassThreshold: 60}

	t.Run("model claims a pass it did not earn", func(t *testing.T) {
		five := 5
		yes := true
		payload := geminiGradePayload{RawScore: 3, Percentage: 30, Score: &five, IsCorrect: &yes}
		got := gradeFromPayload(payload, in, 120, true)
		if got.Score != 0 || got.IsCorrect {
			t.Errorf("Score/IsCorrect = %d/%v, want 0/false for 30%% against threshold 60", got.Score, got.IsCorrect)
		}
	})

	t.Run("model claims a fail on a passing percentage", func(t *testing.T) {
		zero := 0
		no := false
		payload := geminiGradePayload{RawScore: 8, Percentage: 80, Score: &zero, IsCorrect: &no}
		got := gradeFromPayload(payload, in, 120, true)
		if got.Score != 1 || !got.IsCorrect {
			t.Errorf("Score/IsCorrect = %d/%v, want 1/true for 80%% against threshold 60", got.Score, got.IsCorrect)
		}
	})

	t.Run("consistent model values survive unchanged", func(t *testing.T) {
		one := 1
		yes := true
		payload := geminiGradePayload{RawScore: 7.5, Percentage: 75, Score: &one, IsCorrect: &yes}
		got := gradeFromPayload(payload, in, 120, true)
		if got.Score != 1 || !got.IsCorrect {
			t.Errorf("Score/IsCorrect = %d/%v, want 1/true", got.Score, got.IsCorrect)
		}
	})

	t.Run("out-of-range raw score and percentage are clamped", func(t *testing.T) {
		payload := geminiGradePayload{RawScore: 42, Percentage: 420}
		got := gradeFromPayload(payload, in, 120, true)
		if got.RawScore != 10 || got.Percentage != 100 {
			t.Errorf("RawScore/Percentage = %v/%v, want 10/100", got.RawScore, got.Percentage)
		}
		if got.Score != 1 || !got.IsCorrect {
			t.Errorf("Score/IsCorrect = %d/%v, want 1/true after clamping", got.Score, got.IsCorrect)
		}
	})
}

func TestGradeWritingWithoutClientFallsBack(t *testing.T) {
	svc := &geminiLLMService{cfg: config.Gemini{Model: "gemini-1.5-flash"}}

	t.Run("empty answer", func(t *testing.T) {
		got := svc.GradeWriting(context.Background(), WritingGradeInput{
			QuestionText: "Q", StudentAnswer: "", MaxPoints: 10, MinWords: 50, MaxWords: 200, PassThreshold: 60,
		})
		if !got.Fallback {
			t.Fatal("expected fallback result")
		}
		if got.RawScore != 0 || got.Percentage != 0 || got.Score != 0 || got.IsCorrect {
			t.Errorf("zero-word fallback = %+v, want all-zero scoring", got)
		}
	})

	t.Run("within limit", func(t *testing.T) {
		answer := strings.Repeat("word ", 100)
		got := svc.GradeWriting(context.Background(), WritingGradeInput{
			QuestionText: "Q", StudentAnswer: answer, MaxPoints: 10, MinWords: 50, MaxWords: 200, PassThreshold: 60,
		})
		if !got.Fallback || !got.WithinLimit || got.WordCount != 100 {
			t.Fatalf("unexpected fallback shape: %+v", got)
		}
		if got.Percentage != 70 || got.Score != 1 {
			t.Errorf("in-limit fallback = %v%%/%d, want 70%%/1", got.Percentage, got.Score)
		}
	})
}

func TestTokenCost(t *testing.T) {
	tests := []struct {
		name                   string
		promptTokens, outTokens int
		inRate, outRate        float64
		want                   float64
	}{
		{"zero tokens", 0, 0, 0.075, 0.30, 0},
		{"one million each", 1_000_000, 1_000_000, 0.075, 0.30, 0.375},
		{"asymmetric rates matter", 500_000, 100_000, 0.075, 0.30, 0.0675},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenCost(tt.promptTokens, tt.outTokens, tt.inRate, tt.outRate)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("tokenCost = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(12, 0, 10); got != 10 {
		t.Errorf("clamp above = %v, want 10", got)
	}
	if got := clamp(-1, 0, 10); got != 0 {
		t.Errorf("clamp below = %v, want 0", got)
	}
	if got := clamp(5, 0, 10); got != 5 {
		t.Errorf("clamp inside = %v, want 5", got)
	}
}
