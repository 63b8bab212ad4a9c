package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/minhlq/skillsession/internal/dto"
	"github.com/minhlq/skillsession/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ResultService answers the read-only queries over finished and in-flight
// sessions. Results are point-in-time snapshots: the average can change once
// pending evaluations complete.
type ResultService interface {
	GetSessionResult(sessionID uint) (*dto.SessionResultResponse, error)
	GetUserSessions(userID uint) ([]dto.SessionSummaryDTO, error)
}

type resultService struct {
	sessionRepo         repository.SessionRepository
	sessionQuestionRepo repository.SessionQuestionRepository
	responseRepo        repository.ResponseRepository
}

func NewResultService(
	sessionRepo repository.SessionRepository,
	sessionQuestionRepo repository.SessionQuestionRepository,
	responseRepo repository.ResponseRepository,
) ResultService {
	return &resultService{
		sessionRepo:         sessionRepo,
		sessionQuestionRepo: sessionQuestionRepo,
		responseRepo:        responseRepo,
	}
}

func (s *resultService) GetSessionResult(sessionID uint) (*dto.SessionResultResponse, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session %d: %w", sessionID, err)
	}

	total, err := s.sessionQuestionRepo.CountBySession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count session questions: %w", err)
	}

	responses, err := s.responseRepo.FindBySession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses for session %d: %w", sessionID, err)
	}

	// PENDING and FAILED responses carry no score and are excluded from the
	// average rather than counted as zero.
	var sum float64
	scored := 0
	for _, r := range responses {
		if r.Score != nil {
			sum += *r.Score
			scored++
		}
	}
	var average *float64
	if scored > 0 {
		avg := sum / float64(scored)
		average = &avg
	}

	return &dto.SessionResultResponse{
		SessionID:      session.ID,
		Status:         session.Status,
		TotalQuestions: int(total),
		Answered:       len(responses),
		AverageScore:   average,
		StartedAt:      session.StartedAt,
		EndedAt:        session.EndedAt,
	}, nil
}

func (s *resultService) GetUserSessions(userID uint) ([]dto.SessionSummaryDTO, error) {
	sessions, err := s.sessionRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetUserSessions: repository error")
		return nil, fmt.Errorf("failed to load sessions for user %d: %w", userID, err)
	}

	summaries := make([]dto.SessionSummaryDTO, 0, len(sessions))
	for _, session := range sessions {
		var summary dto.SessionSummaryDTO
		if err := copier.Copy(&summary, &session); err != nil {
			log.Error().Err(err).Uint("sessionID", session.ID).Msg("GetUserSessions: failed to map session summary")
			continue
		}
		summary.SessionID = session.ID
		if session.Domain != nil {
			name := session.Domain.Name
			summary.DomainName = &name
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
