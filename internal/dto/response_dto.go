package dto

import "time"

// MessageSessionCompleted is the completion marker returned once a session has
// no further questions to serve.
const MessageSessionCompleted = "Session completed"

type ErrorResponse struct {
	Error string `json:"error"`
}

type StartSessionResponse struct {
	Message   string `json:"message"`
	SessionID uint   `json:"sessionId"`
}

// QuestionDTO is the question payload served to a test taker. The correct
// option is never included; options are only populated for MCQ questions.
type QuestionDTO struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Format  string   `json:"format"`
	Options []string `json:"options,omitempty"`
}

type CurrentQuestionResponse struct {
	SessionID     uint        `json:"sessionId"`
	QuestionIndex int         `json:"questionIndex"`
	Question      QuestionDTO `json:"question"`
}

type CompletionResponse struct {
	Message string `json:"message"`
}

// NextQuestionDTO is the abbreviated question returned from a submission;
// unlike QuestionDTO it carries no format or options.
type NextQuestionDTO struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type SubmitAnswerResponse struct {
	Message           string          `json:"message"`
	NextQuestionIndex int             `json:"nextQuestionIndex"`
	NextQuestion      NextQuestionDTO `json:"nextQuestion"`
}

type SessionResultResponse struct {
	SessionID      uint       `json:"sessionId"`
	Status         string     `json:"status"`
	TotalQuestions int        `json:"totalQuestions"`
	Answered       int        `json:"answered"`
	AverageScore   *float64   `json:"averageScore"`
	StartedAt      time.Time  `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
}

type SessionSummaryDTO struct {
	SessionID  uint       `json:"sessionId"`
	TestType   string     `json:"testType"`
	Difficulty string     `json:"difficulty"`
	DomainName *string    `json:"domainName,omitempty"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	EndedAt    *time.Time `json:"endedAt,omitempty"`
}

type UserResponseDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
