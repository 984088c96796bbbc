package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studentres/resources-api/internal/dto"
	"github.com/studentres/resources-api/internal/models"
	appErrors "github.com/studentres/resources-api/pkg/errors"
)

type fakePlannerRepo struct {
	notes map[string][]models.PersonalNote
	todos map[string][]models.TodoItem
}

func newFakePlannerRepo() *fakePlannerRepo {
	return &fakePlannerRepo{
		notes: map[string][]models.PersonalNote{},
		todos: map[string][]models.TodoItem{},
	}
}

func (f *fakePlannerRepo) GetNotes(_ context.Context, uid string) ([]models.PersonalNote, error) {
	return append([]models.PersonalNote{}, f.notes[uid]...), nil
}

func (f *fakePlannerRepo) SaveNotes(_ context.Context, uid string, notes []models.PersonalNote) error {
	f.notes[uid] = notes
	return nil
}

func (f *fakePlannerRepo) GetTodos(_ context.Context, uid string) ([]models.TodoItem, error) {
	return append([]models.TodoItem{}, f.todos[uid]...), nil
}

func (f *fakePlannerRepo) SaveTodos(_ context.Context, uid string, todos []models.TodoItem) error {
	f.todos[uid] = todos
	return nil
}

func TestCreateNoteAssignsIDAndTimestamps(t *testing.T) {
	repo := newFakePlannerRepo()
	svc := NewPlannerService(repo, nil, zap.NewNop())

	note, err := svc.CreateNote(context.Background(), "u-1", dto.PersonalNoteRequest{
		Title:   "Revision plan",
		Content: "Finish unit 3 by Friday",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.False(t, note.CreatedAt.IsZero())
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
	require.Len(t, repo.notes["u-1"], 1)
}

func TestListNotesNewestUpdateFirst(t *testing.T) {
	repo := newFakePlannerRepo()
	svc := NewPlannerService(repo, nil, zap.NewNop())

	base := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	first, err := svc.CreateNote(context.Background(), "u-1", dto.PersonalNoteRequest{Title: "old", Content: "x"})
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(time.Hour) }
	second, err := svc.CreateNote(context.Background(), "u-1", dto.PersonalNoteRequest{Title: "new", Content: "y"})
	require.NoError(t, err)

	notes, err := svc.ListNotes(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
}

func TestUpdateNoteTouchesUpdatedAtOnly(t *testing.T) {
	repo := newFakePlannerRepo()
	svc := NewPlannerService(repo, nil, zap.NewNop())

	base := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	note, err := svc.CreateNote(context.Background(), "u-1", dto.PersonalNoteRequest{Title: "draft", Content: "x"})
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(2 * time.Hour) }
	updated, err := svc.UpdateNote(context.Background(), "u-1", note.ID, dto.PersonalNoteRequest{Title: "final", Content: "y"})
	require.NoError(t, err)

	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, base, updated.CreatedAt)
	assert.Equal(t, base.Add(2*time.Hour), updated.UpdatedAt)
}

func TestUpdateNoteMissingIsNotFound(t *testing.T) {
	svc := NewPlannerService(newFakePlannerRepo(), nil, zap.NewNop())

	_, err := svc.UpdateNote(context.Background(), "u-1", "ghost", dto.PersonalNoteRequest{Title: "t", Content: "c"})

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestDeleteNoteRemovesOnlyTarget(t *testing.T) {
	repo := newFakePlannerRepo()
	svc := NewPlannerService(repo, nil, zap.NewNop())

	keep, err := svc.CreateNote(context.Background(), "u-1", dto.PersonalNoteRequest{Title: "keep", Content: "x"})
	require.NoError(t, err)
	drop, err := svc.CreateNote(context.Background(), "u-1", dto.PersonalNoteRequest{Title: "drop", Content: "y"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteNote(context.Background(), "u-1", drop.ID))

	notes, err := svc.ListNotes(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, keep.ID, notes[0].ID)
}

func TestDeleteNoteMissingIsNotFound(t *testing.T) {
	svc := NewPlannerService(newFakePlannerRepo(), nil, zap.NewNop())

	err := svc.DeleteNote(context.Background(), "u-1", "ghost")

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestTodoLifecycle(t *testing.T) {
	repo := newFakePlannerRepo()
	svc := NewPlannerService(repo, nil, zap.NewNop())

	due := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	todo, err := svc.CreateTodo(context.Background(), "u-1", dto.TodoRequest{
		Title:   "Submit assignment",
		DueDate: &due,
	})
	require.NoError(t, err)
	assert.False(t, todo.IsCompleted)

	updated, err := svc.UpdateTodo(context.Background(), "u-1", todo.ID, dto.TodoRequest{
		Title:       "Submit assignment",
		IsCompleted: true,
		DueDate:     &due,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)

	require.NoError(t, svc.DeleteTodo(context.Background(), "u-1", todo.ID))
	todos, err := svc.ListTodos(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestListTodosNewestFirst(t *testing.T) {
	repo := newFakePlannerRepo()
	svc := NewPlannerService(repo, nil, zap.NewNop())

	base := time.Date(2026, time.February, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	_, err := svc.CreateTodo(context.Background(), "u-1", dto.TodoRequest{Title: "older"})
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(time.Minute) }
	newer, err := svc.CreateTodo(context.Background(), "u-1", dto.TodoRequest{Title: "newer"})
	require.NoError(t, err)

	todos, err := svc.ListTodos(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, newer.ID, todos[0].ID)
}
