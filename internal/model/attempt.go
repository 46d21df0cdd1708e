package model

import (
	"time"

	"gorm.io/gorm"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	AttemptAbandoned  AttemptStatus = "abandoned"
)

// Attempt is one student's run through a placement test. Transitions are
// one-directional: in_progress -> completed or in_progress -> abandoned;
// both end states are terminal. Rows are never deleted.
type Attempt struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	TestID           uint           `json:"test_id" gorm:"not null;index"`
	Status           AttemptStatus  `json:"status" gorm:"not null;default:'in_progress'"`
	StartedAt        time.Time      `json:"started_at" gorm:"not null"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	TimeLimitMinutes int            `json:"time_limit_minutes" gorm:"not null"`
	TotalScore       int            `json:"total_score"`
	LevelAchieved    string         `json:"level_achieved,omitempty"`
	Answers          []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Attempt) IsTerminal() bool {
	return a.Status == AttemptCompleted || a.Status == AttemptAbandoned
}

// IsTimeUp reports whether the attempt's time budget was exceeded at now.
func (a *Attempt) IsTimeUp(now time.Time) bool {
	deadline := a.StartedAt.Add(time.Duration(a.TimeLimitMinutes) * time.Minute)
	return now.After(deadline)
}

// MarkCompleted finishes the attempt. It is the only path that sets
// LevelAchieved.
func (a *Attempt) MarkCompleted(now time.Time, totalScore int, level string) bool {
	if a.IsTerminal() {
		return false
	}
	a.Status = AttemptCompleted
	a.CompletedAt = &now
	a.TotalScore = totalScore
	a.LevelAchieved = level
	return true
}

func (a *Attempt) MarkAbandoned() bool {
	if a.IsTerminal() {
		return false
	}
	a.Status = AttemptAbandoned
	return true
}

// DurationMinutes is the wall time from start to completion, in whole
// minutes, for completed attempts.
func (a *Attempt) DurationMinutes() int {
	if a.CompletedAt == nil {
		return 0
	}
	return int(a.CompletedAt.Sub(a.StartedAt).Minutes())
}
