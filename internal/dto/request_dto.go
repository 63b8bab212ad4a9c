package dto

// StartSessionRequest begins a new test-taking session for a user.
type StartSessionRequest struct {
	UserID     uint   `json:"userId" binding:"required"`
	DomainID   *uint  `json:"domainId"`
	TestType   string `json:"testType" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
}

// SubmitAnswerRequest records the answer for the session's current question.
type SubmitAnswerRequest struct {
	SessionID  uint   `json:"sessionId" binding:"required"`
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}
