package model

import "time"

// SessionQuestion pins one question into a session's fixed order. Rows are
// written once at session creation and never mutated.
type SessionQuestion struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SessionID  uint      `json:"session_id" gorm:"not null;index;uniqueIndex:idx_session_order"`
	QuestionID uint      `json:"question_id" gorm:"not null"`
	Question   Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	OrderIndex int       `json:"order_index" gorm:"not null;uniqueIndex:idx_session_order"`
	CreatedAt  time.Time `json:"created_at"`
}
