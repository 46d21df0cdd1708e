package dto

import "time"

type LessonDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Level       string    `json:"level"`
	OrderInPath int       `json:"order_in_path"`
	Content     string    `json:"content,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type LessonSummaryDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Level       string `json:"level"`
	OrderInPath int    `json:"order_in_path"`
}

type IeltsTaskDTO struct {
	ID       uint   `json:"id"`
	TaskType string `json:"task_type"`
	Prompt   string `json:"prompt"`
	MinWords int    `json:"min_words"`
	MaxWords int    `json:"max_words"`
}

// IeltsFeedbackRequestDTO is a practice essay submitted for AI feedback.
type IeltsFeedbackRequestDTO struct {
	Essay string `json:"essay" binding:"required"`
}

// IeltsFeedbackDTO is the AI assessment of a practice essay. EstimatedBand
// is on the 0-9 IELTS scale in half-band steps.
type IeltsFeedbackDTO struct {
	TaskID        uint     `json:"task_id"`
	EstimatedBand float64  `json:"estimated_band"`
	WordCount     int      `json:"word_count"`
	WithinLimit   bool     `json:"within_limit"`
	Feedback      string   `json:"feedback"`
	Strengths     []string `json:"strengths,omitempty"`
	Improvements  []string `json:"improvements,omitempty"`
	Model         string   `json:"model,omitempty"`
	Cost          float64  `json:"cost"`
}
