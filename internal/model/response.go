package model

import "time"

const (
	EvaluationStatusCompleted = "COMPLETED"
	EvaluationStatusPending   = "PENDING"
	EvaluationStatusFailed    = "FAILED"
)

// Response records one submitted answer. The submission handler writes it once;
// for DESCRIPTIVE questions the deferred evaluator writes it exactly once more
// (score, feedback, status), or flips the status to FAILED.
type Response struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	SessionID        uint      `json:"session_id" gorm:"not null;index;uniqueIndex:idx_responses_session_question"`
	QuestionID       uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_responses_session_question"`
	AnswerText       string    `json:"answer_text" gorm:"type:text;not null"`
	Score            *float64  `json:"score,omitempty"`
	EvaluationStatus string    `json:"evaluation_status" gorm:"not null;default:'PENDING'"`
	Feedback         *string   `json:"feedback,omitempty" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
