package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studentres/resources-api/internal/dto"
	"github.com/studentres/resources-api/internal/models"
	"github.com/studentres/resources-api/internal/service"
	appErrors "github.com/studentres/resources-api/pkg/errors"
	"github.com/studentres/resources-api/pkg/response"
)

// ContentHandler handles content browsing, search and submission endpoints.
type ContentHandler struct {
	service *service.ContentService
}

// NewContentHandler constructs a content handler.
func NewContentHandler(svc *service.ContentService) *ContentHandler {
	return &ContentHandler{service: svc}
}

// List godoc
// @Summary List approved content for a semester, or search all semesters
// @Tags Content
// @Produce json
// @Param kind path string true "Content kind (notes, videos, question-papers)"
// @Param semester query string false "Semester 1-8; defaults to the caller's profile semester"
// @Param search query string false "Keyword searched across all semesters"
// @Success 200 {object} response.Envelope
// @Router /content/{kind} [get]
func (h *ContentHandler) List(c *gin.Context) {
	kind, ok := models.ParseContentKind(c.Param("kind"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown content kind"))
		return
	}

	filter := dto.ContentFilter{
		Semester: strings.TrimSpace(c.Query("semester")),
		Keyword:  strings.TrimSpace(c.Query("search")),
	}

	items := h.service.Fetch(c.Request.Context(), kind, filter, claimsFromContext(c))
	response.JSON(c, http.StatusOK, items)
}

// Submit godoc
// @Summary Submit a resource for moderation
// @Tags Content
// @Accept json
// @Produce json
// @Param kind path string true "Content kind (notes, videos, question-papers)"
// @Param payload body dto.SubmitContentRequest true "Submission payload"
// @Success 201 {object} response.Envelope
// @Router /content/{kind}/submissions [post]
func (h *ContentHandler) Submit(c *gin.Context) {
	kind, ok := models.ParseContentKind(c.Param("kind"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown content kind"))
		return
	}

	var req dto.SubmitContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	id, err := h.service.Submit(c.Request.Context(), kind, req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": id, "status": models.StatusPending})
}
