package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/minhlq/skillsession/internal/dto"
	"github.com/minhlq/skillsession/internal/model"
	"github.com/minhlq/skillsession/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// maxQuestionsPerSession caps the random sample drawn at session creation.
const maxQuestionsPerSession = 10

// CurrentQuestion is the engine's answer to "what should the client see now":
// either the question at the current index, or a completion marker.
type CurrentQuestion struct {
	Completed     bool
	SessionID     uint
	QuestionIndex int
	Question      *dto.QuestionDTO
}

// SubmitOutcome reports what happened after an accepted submission: the next
// question to serve, or completion of the whole session.
type SubmitOutcome struct {
	Completed         bool
	NextQuestionIndex int
	NextQuestion      *dto.NextQuestionDTO
}

// SessionService is the session progression engine: it creates sessions with a
// fixed random question order, serves questions one at a time, validates
// submissions against that order, applies the scoring policy and finalizes the
// session when the order is exhausted.
type SessionService interface {
	StartSession(req dto.StartSessionRequest) (uint, error)
	GetCurrentQuestion(sessionID uint) (*CurrentQuestion, error)
	SubmitAnswer(req dto.SubmitAnswerRequest) (*SubmitOutcome, error)
}

type sessionService struct {
	sessionRepo         repository.SessionRepository
	questionRepo        repository.QuestionRepository
	sessionQuestionRepo repository.SessionQuestionRepository
	responseRepo        repository.ResponseRepository
	eventRepo           repository.EventRepository
	dispatcher          EvaluationDispatcher
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
	sessionQuestionRepo repository.SessionQuestionRepository,
	responseRepo repository.ResponseRepository,
	eventRepo repository.EventRepository,
	dispatcher EvaluationDispatcher,
) SessionService {
	return &sessionService{
		sessionRepo:         sessionRepo,
		questionRepo:        questionRepo,
		sessionQuestionRepo: sessionQuestionRepo,
		responseRepo:        responseRepo,
		eventRepo:           eventRepo,
		dispatcher:          dispatcher,
	}
}

// StartSession creates the session row first and samples afterwards, so a
// configuration matching zero questions leaves the session behind with no
// order rows. That mirrors the documented behavior; callers only ever learn
// the session id on success.
func (s *sessionService) StartSession(req dto.StartSessionRequest) (uint, error) {
	session := model.Session{
		UserID:     req.UserID,
		DomainID:   req.DomainID,
		TestType:   req.TestType,
		Difficulty: req.Difficulty,
		TimeLimit:  model.DefaultTimeLimitSeconds,
		Status:     model.SessionStatusActive,
	}
	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Msg("StartSession: failed to create session")
		return 0, fmt.Errorf("failed to create session: %w", err)
	}

	criteria := repository.QuestionCriteria{
		TestType:   req.TestType,
		Difficulty: req.Difficulty,
	}
	if req.TestType != model.TestTypeAptitude && req.TestType != model.TestTypeCoding {
		criteria.DomainID = req.DomainID
		criteria.FilterByDomain = true
	}

	questions, err := s.questionRepo.SampleByCriteria(criteria, maxQuestionsPerSession)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("StartSession: question sampling failed")
		return 0, fmt.Errorf("failed to sample questions: %w", err)
	}
	if len(questions) == 0 {
		log.Warn().
			Uint("sessionID", session.ID).
			Str("testType", req.TestType).
			Str("difficulty", req.Difficulty).
			Msg("StartSession: no questions matched the configuration")
		return 0, ErrNoQuestionsAvailable
	}

	order := make([]model.SessionQuestion, len(questions))
	for i, q := range questions {
		order[i] = model.SessionQuestion{
			SessionID:  session.ID,
			QuestionID: q.ID,
			OrderIndex: i,
		}
	}
	if err := s.sessionQuestionRepo.CreateBatch(order); err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("StartSession: failed to persist question order")
		return 0, fmt.Errorf("failed to persist question order: %w", err)
	}

	if err := s.eventRepo.Append(&model.SessionEvent{
		SessionID: session.ID,
		EventType: model.EventTypeStarted,
	}); err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("StartSession: failed to append started event")
		return 0, fmt.Errorf("failed to log session start: %w", err)
	}

	log.Info().
		Uint("sessionID", session.ID).
		Int("questionCount", len(order)).
		Msg("Session started")
	return session.ID, nil
}

func (s *sessionService) GetCurrentQuestion(sessionID uint) (*CurrentQuestion, error) {
	session, err := s.loadActiveSession(sessionID)
	if err != nil {
		return nil, err
	}

	order, err := s.sessionQuestionRepo.FindBySessionOrdered(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question order for session %d: %w", sessionID, err)
	}

	// The index can already be past the end while the status flip to
	// COMPLETED is still in flight; treat that as completed.
	if session.CurrentIndex >= len(order) {
		return &CurrentQuestion{Completed: true, SessionID: sessionID}, nil
	}

	current := order[session.CurrentIndex].Question
	var questionDTO dto.QuestionDTO
	if err := copier.Copy(&questionDTO, &current); err != nil {
		return nil, fmt.Errorf("failed to prepare question payload: %w", err)
	}
	if current.Format != model.QuestionFormatMCQ {
		questionDTO.Options = nil
	}

	return &CurrentQuestion{
		SessionID:     sessionID,
		QuestionIndex: session.CurrentIndex,
		Question:      &questionDTO,
	}, nil
}

func (s *sessionService) SubmitAnswer(req dto.SubmitAnswerRequest) (*SubmitOutcome, error) {
	session, err := s.loadActiveSession(req.SessionID)
	if err != nil {
		return nil, err
	}

	order, err := s.sessionQuestionRepo.FindBySessionOrdered(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question order for session %d: %w", req.SessionID, err)
	}

	if session.CurrentIndex >= len(order) {
		return nil, ErrInvalidQuestionOrder
	}
	expected := order[session.CurrentIndex]
	if expected.QuestionID != req.QuestionID {
		log.Warn().
			Uint("sessionID", req.SessionID).
			Uint("expectedQuestionID", expected.QuestionID).
			Uint("submittedQuestionID", req.QuestionID).
			Msg("SubmitAnswer: submission out of order")
		return nil, ErrInvalidQuestionOrder
	}

	// Claim the slot before writing anything. The conditional update is the
	// only serialization point: of two racing submissions for the same index,
	// exactly one advances and the other sees an order violation.
	advanced, err := s.sessionRepo.AdvanceIndex(session.ID, session.CurrentIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to advance session %d: %w", session.ID, err)
	}
	if !advanced {
		return nil, ErrInvalidQuestionOrder
	}

	question := expected.Question
	response := model.Response{
		SessionID:  session.ID,
		QuestionID: question.ID,
		AnswerText: req.Answer,
	}
	switch question.Format {
	case model.QuestionFormatMCQ:
		score := scoreMCQ(&question, req.Answer)
		response.Score = &score
		response.EvaluationStatus = model.EvaluationStatusCompleted
	case model.QuestionFormatDescriptive:
		response.EvaluationStatus = model.EvaluationStatusPending
	default:
		// No scoring policy exists for other formats; record the answer as
		// evaluated with no score.
		response.EvaluationStatus = model.EvaluationStatusCompleted
	}

	if err := s.responseRepo.Create(&response); err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Uint("questionID", question.ID).
			Msg("SubmitAnswer: failed to store response")
		return nil, fmt.Errorf("failed to store response: %w", err)
	}

	if question.Format == model.QuestionFormatDescriptive {
		s.dispatcher.Enqueue(EvaluationJob{
			ResponseID: response.ID,
			Request: EvaluationRequest{
				Question:   question.Text,
				Answer:     req.Answer,
				TestType:   session.TestType,
				Difficulty: session.Difficulty,
			},
		})
	}

	if err := s.eventRepo.Append(&model.SessionEvent{
		SessionID: session.ID,
		EventType: model.EventTypeSubmitted,
		Metadata:  map[string]any{"questionId": question.ID},
	}); err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("SubmitAnswer: failed to append submitted event")
		return nil, fmt.Errorf("failed to log submission: %w", err)
	}

	newIndex := session.CurrentIndex + 1
	if newIndex >= len(order) {
		if err := s.sessionRepo.Complete(session.ID, time.Now()); err != nil {
			log.Error().Err(err).Uint("sessionID", session.ID).Msg("SubmitAnswer: failed to finalize session")
			return nil, fmt.Errorf("failed to finalize session: %w", err)
		}
		if err := s.eventRepo.Append(&model.SessionEvent{
			SessionID: session.ID,
			EventType: model.EventTypeCompleted,
		}); err != nil {
			log.Error().Err(err).Uint("sessionID", session.ID).Msg("SubmitAnswer: failed to append completed event")
			return nil, fmt.Errorf("failed to log completion: %w", err)
		}
		log.Info().Uint("sessionID", session.ID).Msg("Session completed")
		return &SubmitOutcome{Completed: true, NextQuestionIndex: newIndex}, nil
	}

	next := order[newIndex].Question
	return &SubmitOutcome{
		NextQuestionIndex: newIndex,
		NextQuestion:      &dto.NextQuestionDTO{ID: next.ID, Text: next.Text},
	}, nil
}

func (s *sessionService) loadActiveSession(sessionID uint) (*model.Session, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session %d: %w", sessionID, err)
	}
	if session.Status != model.SessionStatusActive {
		return nil, ErrSessionNotActive
	}
	return session, nil
}

// scoreMCQ applies the synchronous multiple-choice policy: 1 for the stored
// correct option, 0 for anything else.
func scoreMCQ(question *model.Question, answer string) float64 {
	if question.CorrectOption == nil {
		return 0
	}
	if strings.TrimSpace(answer) == strings.TrimSpace(*question.CorrectOption) {
		return 1
	}
	return 0
}
