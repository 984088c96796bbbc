package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentres/resources-api/internal/dto"
	"github.com/studentres/resources-api/internal/service"
	appErrors "github.com/studentres/resources-api/pkg/errors"
	"github.com/studentres/resources-api/pkg/response"
)

// ProfileHandler handles the caller's own profile endpoints.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler constructs a profile handler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// Get godoc
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// Update godoc
// @Summary Update the caller's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body dto.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// AdvanceSemester godoc
// @Summary Advance the caller's semester if a rollover is due
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile/semester/advance [post]
func (h *ProfileHandler) AdvanceSemester(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	advanced, err := h.service.MaybeAdvanceSemester(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"advanced": advanced})
}

// RequestAdmin godoc
// @Summary File a request for moderator rights
// @Tags Profile
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /profile/admin-request [post]
func (h *ProfileHandler) RequestAdmin(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	if err := h.service.RequestAdmin(c.Request.Context(), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"status": "pending"})
}

// AdminRequestStatus godoc
// @Summary Get the status of the caller's latest admin request
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile/admin-request [get]
func (h *ProfileHandler) AdminRequestStatus(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	status, err := h.service.AdminRequestStatus(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": status})
}
