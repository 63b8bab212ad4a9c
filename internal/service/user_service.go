package service

import (
	"errors"
	"fmt"

	"github.com/minhlq/skillsession/internal/dto"
	"github.com/minhlq/skillsession/internal/model"
	"github.com/minhlq/skillsession/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(req dto.CreateUserRequest) (*dto.UserResponseDTO, error)
	GetUser(id uint) (*dto.UserResponseDTO, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req dto.CreateUserRequest) (*dto.UserResponseDTO, error) {
	user := model.User{Name: req.Name, Email: req.Email}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("CreateUser: repository error")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &dto.UserResponseDTO{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func (s *userService) GetUser(id uint) (*dto.UserResponseDTO, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return &dto.UserResponseDTO{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}
