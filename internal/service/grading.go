package service

import (
	"context"
	"strings"
)

// GradeMCQ applies the multiple-choice strategy: correct iff the submitted
// choice key equals the stored correct key, case-sensitive exact match.
// Points are all-or-nothing.
func GradeMCQ(selected, correct string, points int) (bool, int) {
	if selected == correct {
		return true, points
	}
	return false, 0
}

// CountWords counts whitespace-separated tokens in a student answer.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// WritingGradeInput carries everything the adapter needs to grade one
// free-text answer.
type WritingGradeInput struct {
	QuestionText  string
	StudentAnswer string
	SampleAnswer  string
	Rubric        string
	MaxPoints     int
	MinWords      int
	MaxWords      int
	PassThreshold float64
}

// GradingResult is the transient output of grading one writing answer.
// Score is binary: 1 when Percentage reaches the pass threshold, else 0.
type GradingResult struct {
	RawScore     float64
	Percentage   float64
	Score        int
	IsCorrect    bool
	Feedback     string
	Strengths    []string
	Improvements []string
	WordCount    int
	WithinLimit  bool
	PromptTokens int
	OutputTokens int
	Cost         float64
	Model        string
	Fallback     bool
}

// WritingGrader grades free-text answers. Implementations must absorb every
// failure of the external grading dependency into a deterministic fallback
// result; GradeWriting never fails from the caller's point of view.
type WritingGrader interface {
	GradeWriting(ctx context.Context, in WritingGradeInput) *GradingResult
}

// Fallback scoring constants. The off-limit half score and the flat 70% for
// in-limit answers are fixed product constants, not derived from any rubric.
const (
	fallbackOffLimitDivisor = 2
	fallbackInLimitPercent  = 70.0
)

const fallbackFeedback = "This answer was graded automatically because the AI grading service was unavailable. " +
	"It has been flagged for manual review by a teacher."

// FallbackGrade is the deterministic non-AI grading path. It is a pure
// function of its inputs so repeated invocations yield identical results.
func FallbackGrade(wordCount int, withinLimit bool, maxPoints int, passThreshold float64) *GradingResult {
	var rawScore float64
	var percentage float64

	switch {
	case wordCount == 0:
		rawScore, percentage = 0, 0
	case !withinLimit:
		rawScore = float64(maxPoints / fallbackOffLimitDivisor)
		if maxPoints > 0 {
			percentage = rawScore / float64(maxPoints) * 100
		}
	default:
		rawScore = fallbackInLimitPercent / 100 * float64(maxPoints)
		percentage = fallbackInLimitPercent
	}

	result := &GradingResult{
		RawScore:    rawScore,
		Percentage:  percentage,
		Feedback:    fallbackFeedback,
		WordCount:   wordCount,
		WithinLimit: withinLimit,
		Fallback:    true,
	}
	result.Score, result.IsCorrect = deriveBinaryScore(percentage, passThreshold)
	return result
}

// deriveBinaryScore reduces a percentage to pass(1)/fail(0) against the
// question's threshold.
func deriveBinaryScore(percentage, passThreshold float64) (int, bool) {
	if percentage >= passThreshold {
		return 1, true
	}
	return 0, false
}
