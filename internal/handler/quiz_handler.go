package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentres/resources-api/internal/dto"
	"github.com/studentres/resources-api/internal/service"
	appErrors "github.com/studentres/resources-api/pkg/errors"
	"github.com/studentres/resources-api/pkg/response"
)

// QuizHandler handles quiz and question paper generation endpoints.
type QuizHandler struct {
	service *service.QuizService
}

// NewQuizHandler constructs a quiz handler.
func NewQuizHandler(svc *service.QuizService) *QuizHandler {
	return &QuizHandler{service: svc}
}

// GenerateQuiz godoc
// @Summary Generate multiple-choice practice questions
// @Tags Quiz
// @Accept json
// @Produce json
// @Param payload body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 200 {object} response.Envelope
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	var req dto.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	paper, err := h.service.GenerateQuiz(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, paper)
}

// GeneratePaper godoc
// @Summary Generate an exam-style question paper
// @Tags Quiz
// @Accept json
// @Produce json
// @Param payload body dto.GeneratePaperRequest true "Paper parameters"
// @Success 200 {object} response.Envelope
// @Router /quiz/paper [post]
func (h *QuizHandler) GeneratePaper(c *gin.Context) {
	var req dto.GeneratePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	paper, err := h.service.GeneratePaper(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, paper)
}

// ExportPaper godoc
// @Summary Generate a question paper and download it as a PDF
// @Tags Quiz
// @Accept json
// @Produce application/pdf
// @Param payload body dto.GeneratePaperRequest true "Paper parameters"
// @Success 200 {file} binary
// @Router /quiz/paper/export [post]
func (h *QuizHandler) ExportPaper(c *gin.Context) {
	var req dto.GeneratePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	paper, err := h.service.GeneratePaper(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.service.ExportPaperPDF(*paper)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="question-paper.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
