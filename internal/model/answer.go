package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer is one graded response to one question within one attempt. The
// question reference is a tagged union of (QuestionType, QuestionID) because
// questions live in one table per type. The unique index guarantees at most
// one row per (attempt, question); re-submission updates in place.
type Answer struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	AttemptID    uint         `json:"attempt_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	QuestionType QuestionType `json:"question_type" gorm:"not null;uniqueIndex:idx_attempt_question"`
	QuestionID   uint         `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_question"`

	SelectedChoice string `json:"selected_choice,omitempty"`
	TextAnswer     string `json:"text_answer,omitempty" gorm:"type:text"`

	IsCorrect    bool `json:"is_correct"`
	PointsEarned int  `json:"points_earned"`

	// AI-graded fields, populated for writing answers only.
	AIFeedback   string   `json:"ai_feedback,omitempty" gorm:"type:text"`
	AIModel      string   `json:"ai_model,omitempty"`
	AICost       float64  `json:"ai_cost,omitempty"`
	Strengths    []string `json:"strengths,omitempty" gorm:"serializer:json"`
	Improvements []string `json:"improvements,omitempty" gorm:"serializer:json"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
