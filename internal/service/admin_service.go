package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/minhlq/skillsession/internal/dto"
	"github.com/minhlq/skillsession/internal/model"
	"github.com/minhlq/skillsession/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminService manages the question bank the sampler draws from.
type AdminService interface {
	CreateDomain(req dto.CreateDomainRequest) (*dto.DomainDTO, error)
	ListDomains() ([]dto.DomainDTO, error)
	CreateQuestion(req dto.CreateQuestionRequest) (*dto.AdminQuestionDTO, error)
	ListQuestions() ([]dto.AdminQuestionDTO, error)
}

type adminService struct {
	questionRepo repository.QuestionRepository
	domainRepo   repository.DomainRepository
}

func NewAdminService(questionRepo repository.QuestionRepository, domainRepo repository.DomainRepository) AdminService {
	return &adminService{questionRepo: questionRepo, domainRepo: domainRepo}
}

func (s *adminService) CreateDomain(req dto.CreateDomainRequest) (*dto.DomainDTO, error) {
	domain := model.Domain{Name: req.Name}
	if err := s.domainRepo.Create(&domain); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateDomain: repository error")
		return nil, fmt.Errorf("failed to create domain: %w", err)
	}
	return &dto.DomainDTO{ID: domain.ID, Name: domain.Name}, nil
}

func (s *adminService) ListDomains() ([]dto.DomainDTO, error) {
	domains, err := s.domainRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	dtos := make([]dto.DomainDTO, len(domains))
	for i, d := range domains {
		dtos[i] = dto.DomainDTO{ID: d.ID, Name: d.Name}
	}
	return dtos, nil
}

func (s *adminService) CreateQuestion(req dto.CreateQuestionRequest) (*dto.AdminQuestionDTO, error) {
	if req.Format == model.QuestionFormatMCQ {
		if len(req.Options) < 2 {
			return nil, fmt.Errorf("an MCQ question needs at least two options")
		}
		if req.CorrectOption == nil {
			return nil, fmt.Errorf("an MCQ question needs a correct option")
		}
		if !containsOption(req.Options, *req.CorrectOption) {
			return nil, fmt.Errorf("correct option %q is not among the options", *req.CorrectOption)
		}
	}

	if req.DomainID != nil {
		if _, err := s.domainRepo.FindByID(*req.DomainID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDomainNotFound
			}
			return nil, fmt.Errorf("failed to check domain %d: %w", *req.DomainID, err)
		}
	}

	question := model.Question{
		Text:          req.Text,
		Format:        req.Format,
		TestType:      req.TestType,
		Difficulty:    req.Difficulty,
		DomainID:      req.DomainID,
		CorrectOption: req.CorrectOption,
	}
	if req.Format == model.QuestionFormatMCQ {
		question.Options = req.Options
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Msg("CreateQuestion: repository error")
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	var out dto.AdminQuestionDTO
	if err := copier.Copy(&out, &question); err != nil {
		return nil, fmt.Errorf("failed to map question: %w", err)
	}
	return &out, nil
}

func (s *adminService) ListQuestions() ([]dto.AdminQuestionDTO, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	dtos := make([]dto.AdminQuestionDTO, len(questions))
	for i := range questions {
		if err := copier.Copy(&dtos[i], &questions[i]); err != nil {
			return nil, fmt.Errorf("failed to map question %d: %w", questions[i].ID, err)
		}
	}
	return dtos, nil
}

func containsOption(options []string, candidate string) bool {
	for _, o := range options {
		if o == candidate {
			return true
		}
	}
	return false
}
