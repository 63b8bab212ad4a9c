package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhlq/skillsession/internal/dto"
	"github.com/minhlq/skillsession/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// CreateDomain godoc
// @Summary (Admin) Create a knowledge domain
// @Tags Admin
// @Accept json
// @Produce json
// @Param domain body dto.CreateDomainRequest true "Domain name"
// @Success 201 {object} dto.DomainDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/domains [post]
func (c *AdminController) CreateDomain(ctx *gin.Context) {
	var req dto.CreateDomainRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	domain, err := c.adminService.CreateDomain(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateDomain: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create domain"})
		return
	}
	ctx.JSON(http.StatusCreated, domain)
}

// ListDomains godoc
// @Summary (Admin) List knowledge domains
// @Tags Admin
// @Produce json
// @Success 200 {array} dto.DomainDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/domains [get]
func (c *AdminController) ListDomains(ctx *gin.Context) {
	domains, err := c.adminService.ListDomains()
	if err != nil {
		log.Error().Err(err).Msg("ListDomains: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list domains"})
		return
	}
	ctx.JSON(http.StatusOK, domains)
}

// CreateQuestion godoc
// @Summary (Admin) Add a question to the bank
// @Description MCQ questions need options and a correct option; descriptive questions need neither.
// @Tags Admin
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionRequest true "Question definition"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/questions [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	question, err := c.adminService.CreateQuestion(req)
	if err != nil {
		if errors.Is(err, service.ErrDomainNotFound) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Domain not found"})
			return
		}
		log.Warn().Err(err).Msg("CreateQuestion: rejected")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// ListQuestions godoc
// @Summary (Admin) List the question bank
// @Tags Admin
// @Produce json
// @Success 200 {array} dto.AdminQuestionDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/questions [get]
func (c *AdminController) ListQuestions(ctx *gin.Context) {
	questions, err := c.adminService.ListQuestions()
	if err != nil {
		log.Error().Err(err).Msg("ListQuestions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list questions"})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}
