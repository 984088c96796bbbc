package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/studentres/resources-api/internal/models"
	"github.com/studentres/resources-api/internal/store"
)

// readFailureRecorder counts swallowed read-path failures.
type readFailureRecorder interface {
	RecordReadFailure()
}

// ContentRepository provides typed access to the semester partitions and the
// submission queues. It is the only component writing ContentItem and
// Submission records.
type ContentRepository struct {
	store   store.DocumentStore
	metrics readFailureRecorder
	logger  *zap.Logger
}

// NewContentRepository constructs a ContentRepository. metrics may be nil.
func NewContentRepository(docs store.DocumentStore, metrics readFailureRecorder, logger *zap.Logger) *ContentRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentRepository{store: docs, metrics: metrics, logger: logger}
}

// FetchApproved returns the approved items of one semester partition. Read
// failures are logged and collapse to an empty slice so the caller always has
// a renderable result.
func (r *ContentRepository) FetchApproved(ctx context.Context, kind models.ContentKind, semester string) []models.ContentItem {
	partition := kind.Partition(semester)
	docs, err := r.store.Find(ctx, partition, store.Query{
		FilterField: "isApproved",
		FilterValue: true,
	})
	if err != nil {
		r.logger.Warn("fetch approved content failed",
			zap.String("collection", partition),
			zap.Error(err))
		if r.metrics != nil {
			r.metrics.RecordReadFailure()
		}
		return []models.ContentItem{}
	}

	items := make([]models.ContentItem, 0, len(docs))
	for _, doc := range docs {
		var item models.ContentItem
		if err := json.Unmarshal(doc.Data, &item); err != nil {
			r.logger.Warn("skipping malformed content document",
				zap.String("collection", partition),
				zap.String("id", doc.ID),
				zap.Error(err))
			continue
		}
		item.ID = doc.ID
		items = append(items, item)
	}
	return items
}

// Submit writes a new pending submission into the kind's queue.
func (r *ContentRepository) Submit(ctx context.Context, kind models.ContentKind, sub models.Submission) (string, error) {
	sub.Status = models.StatusPending
	sub.IsApproved = false

	id, err := r.store.Insert(ctx, kind.Spec().Submissions, sub)
	if err != nil {
		return "", fmt.Errorf("create %s submission: %w", kind, err)
	}
	return id, nil
}

// GetSubmission loads one submission by id. store.ErrNotFound passes through.
func (r *ContentRepository) GetSubmission(ctx context.Context, kind models.ContentKind, id string) (*models.Submission, error) {
	doc, err := r.store.Get(ctx, kind.Spec().Submissions, id)
	if err != nil {
		return nil, err
	}

	var sub models.Submission
	if err := json.Unmarshal(doc.Data, &sub); err != nil {
		return nil, fmt.Errorf("decode %s submission %s: %w", kind, id, err)
	}
	sub.ID = doc.ID
	return &sub, nil
}

// ListPending returns pending submissions newest first, surfacing the most
// recent moderation work at the top.
func (r *ContentRepository) ListPending(ctx context.Context, kind models.ContentKind) ([]models.Submission, error) {
	docs, err := r.store.Find(ctx, kind.Spec().Submissions, store.Query{
		FilterField: "status",
		FilterValue: string(models.StatusPending),
		OrderField:  "uploadedDate",
		Descending:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("list pending %s submissions: %w", kind, err)
	}

	subs := make([]models.Submission, 0, len(docs))
	for _, doc := range docs {
		var sub models.Submission
		if err := json.Unmarshal(doc.Data, &sub); err != nil {
			r.logger.Warn("skipping malformed submission document",
				zap.String("collection", kind.Spec().Submissions),
				zap.String("id", doc.ID),
				zap.Error(err))
			continue
		}
		sub.ID = doc.ID
		subs = append(subs, sub)
	}
	return subs, nil
}

// SetSubmissionStatus updates only the status field, keeping the rest of the
// submission as an untouched audit record.
func (r *ContentRepository) SetSubmissionStatus(ctx context.Context, kind models.ContentKind, id string, status models.SubmissionStatus) error {
	err := r.store.Patch(ctx, kind.Spec().Submissions, id, map[string]interface{}{
		"status": status,
	})
	if err != nil {
		return fmt.Errorf("set %s submission %s status to %s: %w", kind, id, status, err)
	}
	return nil
}

// Promote materializes the public ContentItem for an approved submission,
// using resolvedURL in place of the originally submitted one.
func (r *ContentRepository) Promote(ctx context.Context, kind models.ContentKind, sub models.Submission, resolvedURL string) (string, error) {
	item := models.ContentItem{
		Name:         sub.Name,
		URL:          resolvedURL,
		Semester:     sub.Semester,
		Subject:      sub.Subject,
		Description:  sub.Description,
		UploadedBy:   sub.UploadedBy,
		UploadedDate: sub.UploadedDate,
		IsApproved:   true,
	}

	id, err := r.store.Insert(ctx, kind.Partition(sub.Semester), item)
	if err != nil {
		return "", fmt.Errorf("promote %s submission %s: %w", kind, sub.ID, err)
	}
	return id, nil
}

// FindPromoted looks for an already-promoted item matching the submission.
// The store only filters on one field, so the remaining match happens here.
func (r *ContentRepository) FindPromoted(ctx context.Context, kind models.ContentKind, sub models.Submission) (*models.ContentItem, error) {
	partition := kind.Partition(sub.Semester)
	docs, err := r.store.Find(ctx, partition, store.Query{
		FilterField: "name",
		FilterValue: sub.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("find promoted item in %s: %w", partition, err)
	}

	for _, doc := range docs {
		var item models.ContentItem
		if err := json.Unmarshal(doc.Data, &item); err != nil {
			continue
		}
		if item.UploadedBy == sub.UploadedBy && item.Semester == sub.Semester {
			item.ID = doc.ID
			return &item, nil
		}
	}
	return nil, nil
}
