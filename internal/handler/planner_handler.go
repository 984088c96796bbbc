package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentres/resources-api/internal/dto"
	"github.com/studentres/resources-api/internal/service"
	appErrors "github.com/studentres/resources-api/pkg/errors"
	"github.com/studentres/resources-api/pkg/response"
)

// PlannerHandler handles the personal notes and todos endpoints.
type PlannerHandler struct {
	service *service.PlannerService
}

// NewPlannerHandler constructs a planner handler.
func NewPlannerHandler(svc *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{service: svc}
}

// ListNotes godoc
// @Summary List the caller's personal notes
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/notes [get]
func (h *PlannerHandler) ListNotes(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	notes, err := h.service.ListNotes(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes)
}

// CreateNote godoc
// @Summary Create a personal note
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.PersonalNoteRequest true "Note payload"
// @Success 201 {object} response.Envelope
// @Router /planner/notes [post]
func (h *PlannerHandler) CreateNote(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req dto.PersonalNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	note, err := h.service.CreateNote(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// UpdateNote godoc
// @Summary Update a personal note
// @Tags Planner
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param payload body dto.PersonalNoteRequest true "Note payload"
// @Success 200 {object} response.Envelope
// @Router /planner/notes/{id} [put]
func (h *PlannerHandler) UpdateNote(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req dto.PersonalNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	note, err := h.service.UpdateNote(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note)
}

// DeleteNote godoc
// @Summary Delete a personal note
// @Tags Planner
// @Param id path string true "Note ID"
// @Success 204
// @Router /planner/notes/{id} [delete]
func (h *PlannerHandler) DeleteNote(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	if err := h.service.DeleteNote(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListTodos godoc
// @Summary List the caller's tasks
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/todos [get]
func (h *PlannerHandler) ListTodos(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	todos, err := h.service.ListTodos(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, todos)
}

// CreateTodo godoc
// @Summary Create a task
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.TodoRequest true "Todo payload"
// @Success 201 {object} response.Envelope
// @Router /planner/todos [post]
func (h *PlannerHandler) CreateTodo(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req dto.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	todo, err := h.service.CreateTodo(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, todo)
}

// UpdateTodo godoc
// @Summary Update a task
// @Tags Planner
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param payload body dto.TodoRequest true "Todo payload"
// @Success 200 {object} response.Envelope
// @Router /planner/todos/{id} [put]
func (h *PlannerHandler) UpdateTodo(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req dto.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	todo, err := h.service.UpdateTodo(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary Delete a task
// @Tags Planner
// @Param id path string true "Todo ID"
// @Success 204
// @Router /planner/todos/{id} [delete]
func (h *PlannerHandler) DeleteTodo(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	if err := h.service.DeleteTodo(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
