package repository

import (
	"github.com/minhlq/skillsession/internal/model"
	"gorm.io/gorm"
)

// QuestionCriteria is the filter used when sampling questions for a new
// session. FilterByDomain is false for domain-agnostic test types; when it is
// true a nil DomainID matches nothing, which surfaces as an empty sample.
type QuestionCriteria struct {
	TestType       string
	Difficulty     string
	DomainID       *uint
	FilterByDomain bool
}

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindAll() ([]model.Question, error)
	SampleByCriteria(criteria QuestionCriteria, limit int) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Preload("Domain").Order("created_at desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) SampleByCriteria(criteria QuestionCriteria, limit int) ([]model.Question, error) {
	var questions []model.Question
	query := r.db.Where("test_type = ? AND difficulty = ?", criteria.TestType, criteria.Difficulty)
	if criteria.FilterByDomain {
		query = query.Where("domain_id = ?", criteria.DomainID)
	}
	err := query.Order("RANDOM()").Limit(limit).Find(&questions).Error
	return questions, err
}
