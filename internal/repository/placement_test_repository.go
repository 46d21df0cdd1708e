package repository

import (
	"errors"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/apperror"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/model"
	"gorm.io/gorm"
)

type PlacementTestRepository interface {
	FindByID(id uint) (*model.PlacementTest, error)
}

type placementTestRepository struct {
	db *gorm.DB
}

func NewPlacementTestRepository(db *gorm.DB) PlacementTestRepository {
	return &placementTestRepository{db: db}
}

func (r *placementTestRepository) FindByID(id uint) (*model.PlacementTest, error) {
	var test model.PlacementTest
	if err := r.db.First(&test, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("placement test %d not found", id)
		}
		return nil, err
	}
	return &test, nil
}
