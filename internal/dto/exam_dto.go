package dto

import "time"

// MCQAnswerDTO is one submitted multiple-choice answer.
type MCQAnswerDTO struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedChoice string `json:"selected_choice" binding:"required"`
}

// WritingAnswerDTO is one submitted free-text answer.
type WritingAnswerDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	TextAnswer string `json:"text_answer" binding:"required"`
}

// SubmitExamDTO carries all answers for one attempt, keyed by category.
// Empty categories are allowed and score zero accuracy.
type SubmitExamDTO struct {
	Vocabulary []MCQAnswerDTO     `json:"vocabulary"`
	Grammar    []MCQAnswerDTO     `json:"grammar"`
	Reading    []MCQAnswerDTO     `json:"reading"`
	Listening  []MCQAnswerDTO     `json:"listening"`
	Speaking   []MCQAnswerDTO     `json:"speaking"`
	Writing    []WritingAnswerDTO `json:"writing"`
}

// StartExamDTO creates a new attempt for a user.
type StartExamDTO struct {
	UserID uint `json:"user_id" binding:"required"`
}

type AttemptDTO struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	TestID           uint      `json:"test_id"`
	Status           string    `json:"status"`
	StartedAt        time.Time `json:"started_at"`
	TimeLimitMinutes int       `json:"time_limit_minutes"`
}

// CategoryBreakdownDTO summarises one skill category of a graded attempt.
type CategoryBreakdownDTO struct {
	TotalQuestions  int     `json:"total_questions"`
	CorrectAnswers  int     `json:"correct_answers"`
	WrongAnswers    int     `json:"wrong_answers"`
	TotalPoints     int     `json:"total_points"`
	AccuracyPercent float64 `json:"accuracy_percent"`
}

// GradedWritingAnswerDTO is the per-answer detail inside the writing
// breakdown.
type GradedWritingAnswerDTO struct {
	QuestionID   uint     `json:"question_id"`
	IsCorrect    bool     `json:"is_correct"`
	PointsEarned int      `json:"points_earned"`
	Feedback     string   `json:"feedback,omitempty"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
	Model        string   `json:"model,omitempty"`
	Cost         float64  `json:"cost"`
}

// WritingBreakdownDTO extends the category summary with AI grading detail.
type WritingBreakdownDTO struct {
	CategoryBreakdownDTO
	TotalAiCost   float64                  `json:"total_ai_cost"`
	GradedAnswers []GradedWritingAnswerDTO `json:"graded_answers"`
}

// ExamResultDTO is the composite result of one completed attempt.
type ExamResultDTO struct {
	AttemptID       uint                            `json:"attempt_id"`
	TotalScore      int                             `json:"total_score"`
	MaxScore        int                             `json:"max_score"`
	Percentage      float64                         `json:"percentage"`
	LevelAchieved   string                          `json:"level_achieved"`
	CompletedAt     *time.Time                      `json:"completed_at,omitempty"`
	DurationMinutes int                             `json:"duration_minutes"`
	Categories      map[string]CategoryBreakdownDTO `json:"categories"`
	Writing         WritingBreakdownDTO             `json:"writing"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
