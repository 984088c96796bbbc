package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/studentres/resources-api/internal/models"
)

// PlannerRepository keeps personal notes and todos as per-user JSON blobs in
// Redis, honoring the flat get/set blob-store contract.
type PlannerRepository struct {
	client *redis.Client
}

// NewPlannerRepository constructs a PlannerRepository.
func NewPlannerRepository(client *redis.Client) *PlannerRepository {
	return &PlannerRepository{client: client}
}

func notesKey(uid string) string { return fmt.Sprintf("planner:%s:notes", uid) }
func todosKey(uid string) string { return fmt.Sprintf("planner:%s:todos", uid) }

// GetNotes returns the user's personal notes; a missing blob is an empty list.
func (r *PlannerRepository) GetNotes(ctx context.Context, uid string) ([]models.PersonalNote, error) {
	var notes []models.PersonalNote
	if err := r.getBlob(ctx, notesKey(uid), &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.PersonalNote{}
	}
	return notes, nil
}

// SaveNotes replaces the user's personal notes blob.
func (r *PlannerRepository) SaveNotes(ctx context.Context, uid string, notes []models.PersonalNote) error {
	return r.setBlob(ctx, notesKey(uid), notes)
}

// GetTodos returns the user's todo items; a missing blob is an empty list.
func (r *PlannerRepository) GetTodos(ctx context.Context, uid string) ([]models.TodoItem, error) {
	var todos []models.TodoItem
	if err := r.getBlob(ctx, todosKey(uid), &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []models.TodoItem{}
	}
	return todos, nil
}

// SaveTodos replaces the user's todo blob.
func (r *PlannerRepository) SaveTodos(ctx context.Context, uid string, todos []models.TodoItem) error {
	return r.setBlob(ctx, todosKey(uid), todos)
}

func (r *PlannerRepository) getBlob(ctx context.Context, key string, dest interface{}) error {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal blob %s: %w", key, err)
	}
	return nil
}

func (r *PlannerRepository) setBlob(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal blob %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
