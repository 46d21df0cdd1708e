package repository

import (
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	// Upsert inserts the answer or, when a row already exists for the same
	// (attempt, question type, question id), overwrites its submitted and
	// scoring fields. Identity columns never change on conflict.
	Upsert(db *gorm.DB, answer *model.Answer) error
	FindByAttempt(db *gorm.DB, attemptID uint) ([]model.Answer, error)
}

type answerRepository struct{}

func NewAnswerRepository() AnswerRepository {
	return &answerRepository{}
}

func (r *answerRepository) Upsert(db *gorm.DB, answer *model.Answer) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "attempt_id"},
			{Name: "question_type"},
			{Name: "question_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_choice",
			"text_answer",
			"is_correct",
			"points_earned",
			"ai_feedback",
			"ai_model",
			"ai_cost",
			"strengths",
			"improvements",
			"updated_at",
		}),
	}).Create(answer).Error
}

func (r *answerRepository) FindByAttempt(db *gorm.DB, attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := db.Where("attempt_id = ?", attemptID).Order("question_type, question_id").Find(&answers).Error
	return answers, err
}
