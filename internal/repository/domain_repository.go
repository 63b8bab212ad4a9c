package repository

import (
	"github.com/minhlq/skillsession/internal/model"
	"gorm.io/gorm"
)

type DomainRepository interface {
	Create(domain *model.Domain) error
	FindByID(id uint) (*model.Domain, error)
	FindAll() ([]model.Domain, error)
}

type domainRepository struct {
	db *gorm.DB
}

func NewDomainRepository(db *gorm.DB) DomainRepository {
	return &domainRepository{db: db}
}

func (r *domainRepository) Create(domain *model.Domain) error {
	return r.db.Create(domain).Error
}

func (r *domainRepository) FindByID(id uint) (*model.Domain, error) {
	var domain model.Domain
	if err := r.db.First(&domain, id).Error; err != nil {
		return nil, err
	}
	return &domain, nil
}

func (r *domainRepository) FindAll() ([]model.Domain, error) {
	var domains []model.Domain
	if err := r.db.Order("name ASC").Find(&domains).Error; err != nil {
		return nil, err
	}
	return domains, nil
}
