package model

import (
	"testing"
	"time"
)

func TestAttemptTransitions(t *testing.T) {
	now := time.Now()

	t.Run("complete from in progress", func(t *testing.T) {
		a := Attempt{Status: AttemptInProgress, StartedAt: now.Add(-30 * time.Minute)}
		if !a.MarkCompleted(now, 12, "intermediate") {
			t.Fatal("MarkCompleted should succeed from in_progress")
		}
		if a.Status != AttemptCompleted || a.CompletedAt == nil {
			t.Errorf("attempt not completed: %+v", a)
		}
		if a.TotalScore != 12 || a.LevelAchieved != "intermediate" {
			t.Errorf("score/level not set: %+v", a)
		}
	})

	t.Run("abandon from in progress", func(t *testing.T) {
		a := Attempt{Status: AttemptInProgress}
		if !a.MarkAbandoned() {
			t.Fatal("MarkAbandoned should succeed from in_progress")
		}
		if a.Status != AttemptAbandoned {
			t.Errorf("status = %s, want abandoned", a.Status)
		}
	})

	t.Run("terminal states are final", func(t *testing.T) {
		for _, status := range []AttemptStatus{AttemptCompleted, AttemptAbandoned} {
			a := Attempt{Status: status, TotalScore: 5, LevelAchieved: "elementary"}
			if a.MarkCompleted(now, 99, "upper-intermediate") {
				t.Errorf("MarkCompleted permitted from %s", status)
			}
			if a.MarkAbandoned() {
				t.Errorf("MarkAbandoned permitted from %s", status)
			}
			if a.TotalScore != 5 || a.LevelAchieved != "elementary" {
				t.Errorf("terminal attempt mutated: %+v", a)
			}
		}
	})
}

func TestAttemptIsTimeUp(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name       string
		startedAgo time.Duration
		limit      int
		want       bool
	}{
		{"well within budget", 10 * time.Minute, 60, false},
		{"exactly at the limit", 60 * time.Minute, 60, false},
		{"past the limit", 65 * time.Minute, 60, true},
		{"one second over", 60*time.Minute + time.Second, 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attempt{StartedAt: now.Add(-tt.startedAgo), TimeLimitMinutes: tt.limit}
			if got := a.IsTimeUp(now); got != tt.want {
				t.Errorf("IsTimeUp = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttemptDurationMinutes(t *testing.T) {
	started := time.Now()
	completed := started.Add(42 * time.Minute)
	a := Attempt{StartedAt: started, CompletedAt: &completed}
	if got := a.DurationMinutes(); got != 42 {
		t.Errorf("DurationMinutes = %d, want 42", got)
	}
	if got := (&Attempt{StartedAt: started}).DurationMinutes(); got != 0 {
		t.Errorf("DurationMinutes without completion = %d, want 0", got)
	}
}
