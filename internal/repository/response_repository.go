package repository

import (
	"github.com/minhlq/skillsession/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	Create(response *model.Response) error
	FindByID(id uint) (*model.Response, error)
	FindBySession(sessionID uint) ([]model.Response, error)
	// UpdateEvaluation is the deferred evaluator's single write against a
	// response: score, feedback and evaluation status in one statement.
	UpdateEvaluation(id uint, score *float64, feedback *string, status string) error
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Create(response *model.Response) error {
	return r.db.Create(response).Error
}

func (r *responseRepository) FindByID(id uint) (*model.Response, error) {
	var response model.Response
	if err := r.db.First(&response, id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindBySession(sessionID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&responses).Error
	return responses, err
}

func (r *responseRepository) UpdateEvaluation(id uint, score *float64, feedback *string, status string) error {
	return r.db.Model(&model.Response{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"score":             score,
			"feedback":          feedback,
			"evaluation_status": status,
		}).Error
}
