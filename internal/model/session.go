package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	SessionStatusActive    = "ACTIVE"
	SessionStatusCompleted = "COMPLETED"
)

// DefaultTimeLimitSeconds is stored on every new session. It is informational;
// elapsed time is not enforced server-side.
const DefaultTimeLimitSeconds = 1800

type Session struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `json:"user_id" gorm:"not null;index"`
	DomainID     *uint          `json:"domain_id,omitempty" gorm:"index"`
	Domain       *Domain        `json:"domain,omitempty" gorm:"foreignKey:DomainID"`
	TestType     string         `json:"test_type" gorm:"not null"`
	Difficulty   string         `json:"difficulty" gorm:"not null"`
	TimeLimit    int            `json:"time_limit" gorm:"not null"`
	CurrentIndex int            `json:"current_index" gorm:"not null;default:0"`
	Status       string         `json:"status" gorm:"not null;default:'ACTIVE'"`
	StartedAt    time.Time      `json:"started_at" gorm:"autoCreateTime"`
	EndedAt      *time.Time     `json:"ended_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
