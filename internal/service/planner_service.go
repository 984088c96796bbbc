package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studentres/resources-api/internal/dto"
	"github.com/studentres/resources-api/internal/models"
	appErrors "github.com/studentres/resources-api/pkg/errors"
)

type plannerStore interface {
	GetNotes(ctx context.Context, uid string) ([]models.PersonalNote, error)
	SaveNotes(ctx context.Context, uid string, notes []models.PersonalNote) error
	GetTodos(ctx context.Context, uid string) ([]models.TodoItem, error)
	SaveTodos(ctx context.Context, uid string, todos []models.TodoItem) error
}

// PlannerService manages a user's private notes and todos. Everything is
// scoped to the caller; there is no sharing or moderation here.
type PlannerService struct {
	repo      plannerStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPlannerService builds a PlannerService with sane defaults.
func NewPlannerService(repo plannerStore, validate *validator.Validate, logger *zap.Logger) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// ListNotes returns the user's notes, most recently updated first.
func (s *PlannerService) ListNotes(ctx context.Context, uid string) ([]models.PersonalNote, error) {
	notes, err := s.repo.GetNotes(ctx, uid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notes")
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	return notes, nil
}

// CreateNote appends a new note and returns it.
func (s *PlannerService) CreateNote(ctx context.Context, uid string, req dto.PersonalNoteRequest) (*models.PersonalNote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}

	notes, err := s.repo.GetNotes(ctx, uid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notes")
	}

	now := s.now().UTC()
	note := models.PersonalNote{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Subject:   req.Subject,
		Semester:  req.Semester,
		CreatedAt: now,
		UpdatedAt: now,
	}
	notes = append(notes, note)

	if err := s.repo.SaveNotes(ctx, uid, notes); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save notes")
	}
	return &note, nil
}

// UpdateNote rewrites an existing note in place.
func (s *PlannerService) UpdateNote(ctx context.Context, uid, noteID string, req dto.PersonalNoteRequest) (*models.PersonalNote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}

	notes, err := s.repo.GetNotes(ctx, uid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notes")
	}

	for i := range notes {
		if notes[i].ID != noteID {
			continue
		}
		notes[i].Title = req.Title
		notes[i].Content = req.Content
		notes[i].Subject = req.Subject
		notes[i].Semester = req.Semester
		notes[i].UpdatedAt = s.now().UTC()

		if err := s.repo.SaveNotes(ctx, uid, notes); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save notes")
		}
		return &notes[i], nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "note not found")
}

// DeleteNote removes a note by id.
func (s *PlannerService) DeleteNote(ctx context.Context, uid, noteID string) error {
	notes, err := s.repo.GetNotes(ctx, uid)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notes")
	}

	kept := notes[:0]
	found := false
	for _, note := range notes {
		if note.ID == noteID {
			found = true
			continue
		}
		kept = append(kept, note)
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "note not found")
	}

	if err := s.repo.SaveNotes(ctx, uid, kept); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save notes")
	}
	return nil
}

// ListTodos returns the user's tasks, newest first.
func (s *PlannerService) ListTodos(ctx context.Context, uid string) ([]models.TodoItem, error) {
	todos, err := s.repo.GetTodos(ctx, uid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load todos")
	}
	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
	return todos, nil
}

// CreateTodo appends a new task and returns it.
func (s *PlannerService) CreateTodo(ctx context.Context, uid string, req dto.TodoRequest) (*models.TodoItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid todo payload")
	}

	todos, err := s.repo.GetTodos(ctx, uid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load todos")
	}

	todo := models.TodoItem{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		DueDate:     req.DueDate,
		CreatedAt:   s.now().UTC(),
	}
	todos = append(todos, todo)

	if err := s.repo.SaveTodos(ctx, uid, todos); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save todos")
	}
	return &todo, nil
}

// UpdateTodo rewrites an existing task in place.
func (s *PlannerService) UpdateTodo(ctx context.Context, uid, todoID string, req dto.TodoRequest) (*models.TodoItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid todo payload")
	}

	todos, err := s.repo.GetTodos(ctx, uid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load todos")
	}

	for i := range todos {
		if todos[i].ID != todoID {
			continue
		}
		todos[i].Title = req.Title
		todos[i].Description = req.Description
		todos[i].IsCompleted = req.IsCompleted
		todos[i].DueDate = req.DueDate

		if err := s.repo.SaveTodos(ctx, uid, todos); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save todos")
		}
		return &todos[i], nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "todo not found")
}

// DeleteTodo removes a task by id.
func (s *PlannerService) DeleteTodo(ctx context.Context, uid, todoID string) error {
	todos, err := s.repo.GetTodos(ctx, uid)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load todos")
	}

	kept := todos[:0]
	found := false
	for _, todo := range todos {
		if todo.ID == todoID {
			found = true
			continue
		}
		kept = append(kept, todo)
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "todo not found")
	}

	if err := s.repo.SaveTodos(ctx, uid, kept); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save todos")
	}
	return nil
}
