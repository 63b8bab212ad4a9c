package service

import "errors"

// Sentinel errors for the session surface. Controllers map these to HTTP
// status codes with errors.Is; anything unrecognized is a 500.
var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionNotActive     = errors.New("session not active")
	ErrInvalidQuestionOrder = errors.New("invalid question order")
	ErrNoQuestionsAvailable = errors.New("no questions found for this configuration")
	ErrUserNotFound         = errors.New("user not found")
	ErrDomainNotFound       = errors.New("domain not found")
	ErrEvaluatorUnavailable = errors.New("evaluator is not configured")
)
