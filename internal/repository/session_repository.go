package repository

import (
	"time"

	"github.com/minhlq/skillsession/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.Session) error
	FindByID(id uint) (*model.Session, error)
	FindAllByUser(userID uint) ([]model.Session, error)
	// AdvanceIndex bumps current_index by one, but only if the session is still
	// ACTIVE and the index still equals fromIndex. Returns false when the
	// condition did not hold (a concurrent submission already advanced it).
	AdvanceIndex(sessionID uint, fromIndex int) (bool, error)
	Complete(sessionID uint, endedAt time.Time) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByID(id uint) (*model.Session, error) {
	var session model.Session
	if err := r.db.First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAllByUser(userID uint) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.
		Preload("Domain").
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) AdvanceIndex(sessionID uint, fromIndex int) (bool, error) {
	res := r.db.Model(&model.Session{}).
		Where("id = ? AND current_index = ? AND status = ?", sessionID, fromIndex, model.SessionStatusActive).
		Update("current_index", fromIndex+1)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *sessionRepository) Complete(sessionID uint, endedAt time.Time) error {
	return r.db.Model(&model.Session{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":   model.SessionStatusCompleted,
			"ended_at": endedAt,
		}).Error
}
