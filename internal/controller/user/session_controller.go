package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhlq/skillsession/internal/dto"
	"github.com/minhlq/skillsession/internal/service"
	"github.com/rs/zerolog/log"
)

type SessionController struct {
	sessionService service.SessionService
	resultService  service.ResultService
}

func NewSessionController(sessionService service.SessionService, resultService service.ResultService) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		resultService:  resultService,
	}
}

// StartSession godoc
// @Summary Start a new test session
// @Description Creates a session and samples its fixed question order. Fails with 400 when no questions match the configuration.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_config body dto.StartSessionRequest true "Owner, domain, test type and difficulty"
// @Success 201 {object} dto.StartSessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid body or no questions available"
// @Failure 500 {object} dto.ErrorResponse
// @Router /session/start [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	var req dto.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	sessionID, err := c.sessionService.StartSession(req)
	if err != nil {
		c.respondError(ctx, err, "Failed to start session")
		return
	}
	ctx.JSON(http.StatusCreated, dto.StartSessionResponse{
		Message:   "Session started",
		SessionID: sessionID,
	})
}

// GetCurrentQuestion godoc
// @Summary Get the session's current question
// @Description Returns the question at the session's current index, or a completion marker when the order is exhausted.
// @Tags Sessions
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.CurrentQuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Session not active"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /session/{session_id}/question [get]
func (c *SessionController) GetCurrentQuestion(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}

	current, err := c.sessionService.GetCurrentQuestion(sessionID)
	if err != nil {
		c.respondError(ctx, err, "Failed to get question")
		return
	}
	if current.Completed {
		ctx.JSON(http.StatusOK, dto.CompletionResponse{Message: dto.MessageSessionCompleted})
		return
	}
	ctx.JSON(http.StatusOK, dto.CurrentQuestionResponse{
		SessionID:     current.SessionID,
		QuestionIndex: current.QuestionIndex,
		Question:      *current.Question,
	})
}

// SubmitAnswer godoc
// @Summary Submit the answer for the current question
// @Description Validates ordering, scores the answer (synchronously for MCQ, deferred for descriptive) and advances the session.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param submission body dto.SubmitAnswerRequest true "Session, question and answer text"
// @Success 200 {object} dto.SubmitAnswerResponse "Next question, or a completion message"
// @Failure 400 {object} dto.ErrorResponse "Order mismatch or inactive session"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /session/answer [post]
func (c *SessionController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	outcome, err := c.sessionService.SubmitAnswer(req)
	if err != nil {
		c.respondError(ctx, err, "Failed to submit answer")
		return
	}
	if outcome.Completed {
		ctx.JSON(http.StatusOK, dto.CompletionResponse{Message: dto.MessageSessionCompleted})
		return
	}
	ctx.JSON(http.StatusOK, dto.SubmitAnswerResponse{
		Message:           "Answer recorded",
		NextQuestionIndex: outcome.NextQuestionIndex,
		NextQuestion:      *outcome.NextQuestion,
	})
}

// GetSessionResult godoc
// @Summary Get the result summary of a session
// @Description Point-in-time snapshot: totals, answered count and the average of scored responses (null until something is scored).
// @Tags Sessions
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.SessionResultResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /session/{session_id}/result [get]
func (c *SessionController) GetSessionResult(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}

	result, err := c.resultService.GetSessionResult(sessionID)
	if err != nil {
		c.respondError(ctx, err, "Failed to get session result")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetUserSessions godoc
// @Summary List a user's sessions
// @Description All sessions owned by the user, most recently started first.
// @Tags Sessions
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} dto.SessionSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 500 {object} dto.ErrorResponse
// @Router /session/user/{user_id}/sessions [get]
func (c *SessionController) GetUserSessions(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	sessions, err := c.resultService.GetUserSessions(userID)
	if err != nil {
		c.respondError(ctx, err, "Failed to list sessions")
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}

// respondError maps service sentinels to status codes. Unknown errors are
// logged server-side and surface as an opaque 500.
func (c *SessionController) respondError(ctx *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Session not found"})
	case errors.Is(err, service.ErrSessionNotActive):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Session not active"})
	case errors.Is(err, service.ErrInvalidQuestionOrder):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid question order"})
	case errors.Is(err, service.ErrNoQuestionsAvailable):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No questions found for this configuration"})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg(logMsg)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: logMsg})
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid ID format"})
		return 0, false
	}
	return uint(val), true
}
