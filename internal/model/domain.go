package model

import (
	"time"

	"gorm.io/gorm"
)

// Domain is a knowledge area a question bank can be scoped to, e.g. "Databases".
type Domain struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
