package repository

import (
	"errors"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/apperror"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/model"
	"gorm.io/gorm"
)

type IeltsTaskRepository interface {
	FindAll() ([]model.IeltsTask, error)
	FindByID(id uint) (*model.IeltsTask, error)
}

type ieltsTaskRepository struct {
	db *gorm.DB
}

func NewIeltsTaskRepository(db *gorm.DB) IeltsTaskRepository {
	return &ieltsTaskRepository{db: db}
}

func (r *ieltsTaskRepository) FindAll() ([]model.IeltsTask, error) {
	var tasks []model.IeltsTask
	if err := r.db.Order("task_type, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *ieltsTaskRepository) FindByID(id uint) (*model.IeltsTask, error) {
	var task model.IeltsTask
	if err := r.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("ielts task %d not found", id)
		}
		return nil, err
	}
	return &task, nil
}
