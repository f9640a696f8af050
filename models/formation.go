package models

import (
	"time"

	"gorm.io/gorm"
)

// Formation is a dated arrangement of people into a row/column grid.
// Deleting one is always logical: the record keeps its people but
// disappears from every read.
type Formation struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Title      string         `json:"title" gorm:"size:120;not null"`
	Date       time.Time      `json:"date" gorm:"not null"`
	NumColumns int            `json:"num_columns" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
