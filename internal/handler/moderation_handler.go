package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentres/resources-api/internal/models"
	"github.com/studentres/resources-api/internal/service"
	appErrors "github.com/studentres/resources-api/pkg/errors"
	"github.com/studentres/resources-api/pkg/response"
)

// ModerationHandler handles the moderator-facing submission queue endpoints.
type ModerationHandler struct {
	service *service.ModerationService
}

// NewModerationHandler constructs a moderation handler.
func NewModerationHandler(svc *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{service: svc}
}

// ListPending godoc
// @Summary List pending submissions for a content kind
// @Tags Moderation
// @Produce json
// @Param kind path string true "Content kind (notes, videos, question-papers)"
// @Success 200 {object} response.Envelope
// @Router /moderation/{kind}/submissions [get]
func (h *ModerationHandler) ListPending(c *gin.Context) {
	kind, ok := models.ParseContentKind(c.Param("kind"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown content kind"))
		return
	}

	subs, err := h.service.ListPending(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs)
}

// Approve godoc
// @Summary Approve a pending submission and publish its content
// @Tags Moderation
// @Produce json
// @Param kind path string true "Content kind (notes, videos, question-papers)"
// @Param id path string true "Submission ID"
// @Success 200 {object} response.Envelope
// @Router /moderation/{kind}/submissions/{id}/approve [post]
func (h *ModerationHandler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve, models.StatusApproved)
}

// Reject godoc
// @Summary Reject a pending submission
// @Tags Moderation
// @Produce json
// @Param kind path string true "Content kind (notes, videos, question-papers)"
// @Param id path string true "Submission ID"
// @Success 200 {object} response.Envelope
// @Router /moderation/{kind}/submissions/{id}/reject [post]
func (h *ModerationHandler) Reject(c *gin.Context) {
	h.transition(c, h.service.Reject, models.StatusRejected)
}

// Repair godoc
// @Summary Reconcile a submission stuck pending after an interrupted approval
// @Tags Moderation
// @Produce json
// @Param kind path string true "Content kind (notes, videos, question-papers)"
// @Param id path string true "Submission ID"
// @Success 200 {object} response.Envelope
// @Router /moderation/{kind}/submissions/{id}/repair [post]
func (h *ModerationHandler) Repair(c *gin.Context) {
	h.transition(c, h.service.Repair, models.StatusApproved)
}

func (h *ModerationHandler) transition(c *gin.Context, op func(ctx context.Context, kind models.ContentKind, id string) error, result models.SubmissionStatus) {
	kind, ok := models.ParseContentKind(c.Param("kind"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown content kind"))
		return
	}

	id := c.Param("id")
	if err := op(c.Request.Context(), kind, id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id, "status": result})
}
