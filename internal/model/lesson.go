package model

import (
	"time"

	"gorm.io/gorm"
)

// Lesson is a read-only content row from the grading core's perspective;
// the content management system owns creation and updates.
type Lesson struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null"`
	Level       string         `json:"level" gorm:"not null;index"`
	OrderInPath int            `json:"order_in_path" gorm:"not null;default:0"`
	Content     string         `json:"content" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
