package model

import (
	"time"

	"gorm.io/gorm"
)

// IeltsTask is a writing practice prompt from the IELTS-prep module.
// Feedback on submissions goes through the same AI grading adapter the
// placement test uses, but nothing is persisted per submission.
type IeltsTask struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	TaskType  string         `json:"task_type" gorm:"not null"` // "task1" or "task2"
	Prompt    string         `json:"prompt" gorm:"type:text;not null"`
	Rubric    string         `json:"rubric" gorm:"type:text"`
	MinWords  int            `json:"min_words" gorm:"not null;default:150"`
	MaxWords  int            `json:"max_words" gorm:"not null;default:400"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
