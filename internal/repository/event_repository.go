package repository

import (
	"github.com/minhlq/skillsession/internal/model"
	"gorm.io/gorm"
)

// EventRepository is append-only; there are deliberately no update or delete
// methods.
type EventRepository interface {
	Append(event *model.SessionEvent) error
	FindBySession(sessionID uint) ([]model.SessionEvent, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Append(event *model.SessionEvent) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) FindBySession(sessionID uint) ([]model.SessionEvent, error) {
	var events []model.SessionEvent
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	return events, err
}
