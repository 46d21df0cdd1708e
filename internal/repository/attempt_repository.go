package repository

import (
	"errors"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/apperror"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindByIDWithAnswers(id uint) (*model.Attempt, error)
	// FindByIDForUpdate loads the attempt under a row write lock; must run
	// inside a transaction. Concurrent submissions for the same attempt
	// serialize on this lock.
	FindByIDForUpdate(tx *gorm.DB, id uint) (*model.Attempt, error)
	Save(db *gorm.DB, attempt *model.Attempt) error
	FindLatestCompletedByUser(userID uint) (*model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("attempt %d not found", id)
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDWithAnswers(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.Preload("Answers").First(&attempt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("attempt %d not found", id)
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*model.Attempt, error) {
	q := tx
	// SQLite serializes writers at the database level and rejects FOR UPDATE.
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var attempt model.Attempt
	if err := q.First(&attempt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("attempt %d not found", id)
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) Save(db *gorm.DB, attempt *model.Attempt) error {
	return db.Save(attempt).Error
}

func (r *attemptRepository) FindLatestCompletedByUser(userID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Where("user_id = ? AND status = ?", userID, model.AttemptCompleted).
		Order("completed_at DESC").
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("no completed attempt for user %d", userID)
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
