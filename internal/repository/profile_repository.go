package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/studentres/resources-api/internal/models"
	"github.com/studentres/resources-api/internal/store"
)

const (
	usersCollection         = "users"
	adminRequestsCollection = "adminRequests"
)

// ProfileRepository persists user profiles and admin requests.
type ProfileRepository struct {
	store store.DocumentStore
}

// NewProfileRepository constructs a ProfileRepository.
func NewProfileRepository(docs store.DocumentStore) *ProfileRepository {
	return &ProfileRepository{store: docs}
}

// Get loads a profile by uid. store.ErrNotFound passes through.
func (r *ProfileRepository) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	doc, err := r.store.Get(ctx, usersCollection, uid)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := json.Unmarshal(doc.Data, &profile); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", uid, err)
	}
	profile.UID = doc.ID
	return &profile, nil
}

// Save merges the given profile fields into the user document, creating it on
// first write.
func (r *ProfileRepository) Save(ctx context.Context, uid string, profile models.UserProfile) error {
	if err := r.store.Merge(ctx, usersCollection, uid, profile); err != nil {
		return fmt.Errorf("save profile %s: %w", uid, err)
	}
	return nil
}

// AdvanceSemester writes the incremented semester together with the update
// marker in a single document write.
func (r *ProfileRepository) AdvanceSemester(ctx context.Context, uid, semester string, when time.Time) error {
	err := r.store.Patch(ctx, usersCollection, uid, map[string]interface{}{
		"semester":           semester,
		"lastSemesterUpdate": when,
	})
	if err != nil {
		return fmt.Errorf("advance semester for %s: %w", uid, err)
	}
	return nil
}

// CreateAdminRequest files a new pending admin request.
func (r *ProfileRepository) CreateAdminRequest(ctx context.Context, req models.AdminRequest) (string, error) {
	id, err := r.store.Insert(ctx, adminRequestsCollection, req)
	if err != nil {
		return "", fmt.Errorf("create admin request for %s: %w", req.UserID, err)
	}
	return id, nil
}

// LatestAdminRequest returns the user's most recent request, or nil when none
// has been filed.
func (r *ProfileRepository) LatestAdminRequest(ctx context.Context, uid string) (*models.AdminRequest, error) {
	docs, err := r.store.Find(ctx, adminRequestsCollection, store.Query{
		FilterField: "userId",
		FilterValue: uid,
		OrderField:  "requestedDate",
		Descending:  true,
		Limit:       1,
	})
	if err != nil {
		return nil, fmt.Errorf("load admin request for %s: %w", uid, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var req models.AdminRequest
	if err := json.Unmarshal(docs[0].Data, &req); err != nil {
		return nil, fmt.Errorf("decode admin request %s: %w", docs[0].ID, err)
	}
	req.ID = docs[0].ID
	return &req, nil
}
