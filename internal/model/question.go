package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionFormatMCQ         = "MCQ"
	QuestionFormatDescriptive = "DESCRIPTIVE"
)

// Domain-agnostic test types. Any other test type is scoped to a domain.
const (
	TestTypeAptitude = "APTITUDE"
	TestTypeCoding   = "CODING"
)

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Text          string         `json:"text" gorm:"column:question_text;type:text;not null"`
	Format        string         `json:"format" gorm:"not null;default:'MCQ'"`
	Options       []string       `json:"options,omitempty" gorm:"serializer:json"`
	CorrectOption *string        `json:"-"`
	TestType      string         `json:"test_type" gorm:"not null;index:idx_questions_criteria"`
	Difficulty    string         `json:"difficulty" gorm:"not null;index:idx_questions_criteria"`
	DomainID      *uint          `json:"domain_id,omitempty" gorm:"index"`
	Domain        *Domain        `json:"domain,omitempty" gorm:"foreignKey:DomainID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
