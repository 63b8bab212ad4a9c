package dto

import "time"

type CreateDomainRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateQuestionRequest struct {
	Text          string   `json:"text" binding:"required"`
	Format        string   `json:"format" binding:"required,oneof=MCQ DESCRIPTIVE"`
	Options       []string `json:"options"`
	CorrectOption *string  `json:"correctOption"`
	TestType      string   `json:"testType" binding:"required"`
	Difficulty    string   `json:"difficulty" binding:"required"`
	DomainID      *uint    `json:"domainId"`
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// AdminQuestionDTO is the authoring view of a question; unlike QuestionDTO it
// includes the correct option.
type AdminQuestionDTO struct {
	ID            uint      `json:"id"`
	Text          string    `json:"text"`
	Format        string    `json:"format"`
	Options       []string  `json:"options,omitempty"`
	CorrectOption *string   `json:"correctOption,omitempty"`
	TestType      string    `json:"testType"`
	Difficulty    string    `json:"difficulty"`
	DomainID      *uint     `json:"domainId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type DomainDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
