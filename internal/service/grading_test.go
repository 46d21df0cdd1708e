package service

import (
	"reflect"
	"testing"
)

func TestGradeMCQ(t *testing.T) {
	tests := []struct {
		name        string
		selected    string
		correct     string
		points      int
		wantCorrect bool
		wantPoints  int
	}{
		{"exact match", "B", "B", 2, true, 2},
		{"wrong choice", "A", "B", 2, false, 0},
		{"case sensitive", "b", "B", 1, false, 0},
		{"empty selection", "", "B", 1, false, 0},
		{"whitespace not trimmed", "B ", "B", 1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCorrect, gotPoints := GradeMCQ(tt.selected, tt.correct, tt.points)
			if gotCorrect != tt.wantCorrect || gotPoints != tt.wantPoints {
				t.Errorf("GradeMCQ(%q, %q, %d) = (%v, %d), want (%v, %d)",
					tt.selected, tt.correct, tt.points, gotCorrect, gotPoints, tt.wantCorrect, tt.wantPoints)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"only whitespace", "   \n\t ", 0},
		{"single word", "hello", 1},
		{"multiple spaces", "hello   world", 2},
		{"newlines and tabs", "one\ntwo\tthree four", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.in); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFallbackGrade(t *testing.T) {
	tests := []struct {
		name           string
		wordCount      int
		withinLimit    bool
		maxPoints      int
		passThreshold  float64
		wantRawScore   float64
		wantPercentage float64
		wantScore      int
		wantCorrect    bool
	}{
		{"empty answer", 0, false, 10, 60, 0, 0, 0, false},
		{"off limit half score below threshold", 30, false, 10, 60, 5, 50, 0, false},
		{"off limit half score reaches low threshold", 30, false, 10, 50, 5, 50, 1, true},
		{"off limit integer division", 20, false, 5, 60, 2, 40, 0, false},
		{"within limit passes default threshold", 150, true, 10, 60, 7, 70, 1, true},
		{"within limit fails high threshold", 150, true, 10, 80, 7, 70, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackGrade(tt.wordCount, tt.withinLimit, tt.maxPoints, tt.passThreshold)
			if got.RawScore != tt.wantRawScore {
				t.Errorf("RawScore = %v, want %v", got.RawScore, tt.wantRawScore)
			}
			if got.Percentage != tt.wantPercentage {
				t.Errorf("Percentage = %v, want %v", got.Percentage, tt.wantPercentage)
			}
			if got.Score != tt.wantScore || got.IsCorrect != tt.wantCorrect {
				t.Errorf("Score/IsCorrect = %d/%v, want %d/%v", got.Score, got.IsCorrect, tt.wantScore, tt.wantCorrect)
			}
			if !got.Fallback {
				t.Error("Fallback flag should be set")
			}
			if got.Feedback == "" {
				t.Error("fallback feedback must mention manual review")
			}
		})
	}
}

func TestFallbackGradeDeterminism(t *testing.T) {
	first := FallbackGrade(120, true, 10, 60)
	for i := 0; i < 50; i++ {
		if got := FallbackGrade(120, true, 10, 60); !reflect.DeepEqual(first, got) {
			t.Fatalf("fallback grading is not deterministic: %+v vs %+v", first, got)
		}
	}
}

func TestDeriveBinaryScore(t *testing.T) {
	tests := []struct {
		percentage, threshold float64
		wantScore             int
		wantCorrect           bool
	}{
		{75, 60, 1, true},
		{60, 60, 1, true},
		{59.9, 60, 0, false},
		{0, 0, 1, true},
	}

	for _, tt := range tests {
		score, correct := deriveBinaryScore(tt.percentage, tt.threshold)
		if score != tt.wantScore || correct != tt.wantCorrect {
			t.Errorf("deriveBinaryScore(%v, %v) = (%d, %v), want (%d, %v)",
				tt.percentage, tt.threshold, score, correct, tt.wantScore, tt.wantCorrect)
		}
	}
}
