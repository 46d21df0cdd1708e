package model

import (
	"time"

	"gorm.io/gorm"
)

// PlacementTest is the question bank one attempt runs against. Questions of
// all six categories reference it through their TestID column.
type PlacementTest struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Title            string         `json:"title" gorm:"not null;uniqueIndex"`
	Description      string         `json:"description,omitempty"`
	TimeLimitMinutes int            `json:"time_limit_minutes" gorm:"not null;default:60"`
	IsActive         bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
