package repository

import (
	"errors"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/apperror"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/model"
	"gorm.io/gorm"
)

type LessonRepository interface {
	FindAll(level string) ([]model.Lesson, error)
	FindByID(id uint) (*model.Lesson, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) FindAll(level string) ([]model.Lesson, error) {
	query := r.db.Order("level, order_in_path ASC")
	if level != "" {
		query = query.Where("level = ?", level)
	}
	var lessons []model.Lesson
	if err := query.Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.db.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("lesson %d not found", id)
		}
		return nil, err
	}
	return &lesson, nil
}
