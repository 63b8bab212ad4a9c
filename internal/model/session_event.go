package model

import "time"

const (
	EventTypeStarted   = "started"
	EventTypeSubmitted = "submitted"
	EventTypeCompleted = "completed"
)

// SessionEvent is an append-only audit entry. Rows are never updated or deleted.
type SessionEvent struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	SessionID uint           `json:"session_id" gorm:"not null;index"`
	EventType string         `json:"event_type" gorm:"not null"`
	Metadata  map[string]any `json:"metadata,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time      `json:"created_at"`
}
