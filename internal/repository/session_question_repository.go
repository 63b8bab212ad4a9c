package repository

import (
	"github.com/minhlq/skillsession/internal/model"
	"gorm.io/gorm"
)

type SessionQuestionRepository interface {
	CreateBatch(rows []model.SessionQuestion) error
	FindBySessionOrdered(sessionID uint) ([]model.SessionQuestion, error)
	CountBySession(sessionID uint) (int64, error)
}

type sessionQuestionRepository struct {
	db *gorm.DB
}

func NewSessionQuestionRepository(db *gorm.DB) SessionQuestionRepository {
	return &sessionQuestionRepository{db: db}
}

func (r *sessionQuestionRepository) CreateBatch(rows []model.SessionQuestion) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

func (r *sessionQuestionRepository) FindBySessionOrdered(sessionID uint) ([]model.SessionQuestion, error) {
	var rows []model.SessionQuestion
	err := r.db.
		Preload("Question").
		Where("session_id = ?", sessionID).
		Order("order_index ASC").
		Find(&rows).Error
	return rows, err
}

func (r *sessionQuestionRepository) CountBySession(sessionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.SessionQuestion{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}
