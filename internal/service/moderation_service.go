package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/studentres/resources-api/internal/models"
	"github.com/studentres/resources-api/internal/store"
	appErrors "github.com/studentres/resources-api/pkg/errors"
)

type moderationStore interface {
	GetSubmission(ctx context.Context, kind models.ContentKind, id string) (*models.Submission, error)
	ListPending(ctx context.Context, kind models.ContentKind) ([]models.Submission, error)
	SetSubmissionStatus(ctx context.Context, kind models.ContentKind, id string, status models.SubmissionStatus) error
	Promote(ctx context.Context, kind models.ContentKind, sub models.Submission, resolvedURL string) (string, error)
	FindPromoted(ctx context.Context, kind models.ContentKind, sub models.Submission) (*models.ContentItem, error)
}

type assetHost interface {
	Hosted(url string) bool
	Upload(ctx context.Context, data []byte, fileName, folder string) (string, error)
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

type uploadRecorder interface {
	RecordUpload()
}

// ModerationService drives submissions through the pending, approved and
// rejected states. Approval promotes the submission's content to its semester
// partition first and marks the submission only afterwards, so a crash in
// between leaves a pending submission with promoted content rather than an
// approved submission with nothing published.
type ModerationService struct {
	repo    moderationStore
	assets  assetHost
	metrics uploadRecorder
	logger  *zap.Logger
}

// NewModerationService builds a ModerationService. metrics may be nil.
func NewModerationService(repo moderationStore, assets assetHost, metrics uploadRecorder, logger *zap.Logger) *ModerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModerationService{repo: repo, assets: assets, metrics: metrics, logger: logger}
}

// ListPending returns the moderation queue for one kind, newest first.
func (s *ModerationService) ListPending(ctx context.Context, kind models.ContentKind) ([]models.Submission, error) {
	subs, err := s.repo.ListPending(ctx, kind)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending submissions")
	}
	return subs, nil
}

// Approve publishes a pending submission. The asset URL is resolved before
// anything is written: file kinds get their bytes copied to the asset host
// unless the URL is already hosted there, link kinds pass through unchanged.
func (s *ModerationService) Approve(ctx context.Context, kind models.ContentKind, id string) error {
	sub, err := s.loadActionable(ctx, kind, id)
	if err != nil {
		return err
	}

	resolvedURL, err := s.resolveAssetURL(ctx, kind, *sub)
	if err != nil {
		return err
	}

	itemID, err := s.repo.Promote(ctx, kind, *sub, resolvedURL)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to publish approved content")
	}

	if err := s.repo.SetSubmissionStatus(ctx, kind, id, models.StatusApproved); err != nil {
		// Content is already live. The repair operation finishes the job.
		s.logger.Error("submission approved but status write failed",
			zap.String("kind", string(kind)),
			zap.String("submission_id", id),
			zap.String("item_id", itemID),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "content published but status update failed")
	}

	s.logger.Info("submission approved",
		zap.String("kind", string(kind)),
		zap.String("submission_id", id),
		zap.String("item_id", itemID))
	return nil
}

// Reject marks a pending submission rejected. Nothing is published and
// nothing is deleted.
func (s *ModerationService) Reject(ctx context.Context, kind models.ContentKind, id string) error {
	if _, err := s.loadActionable(ctx, kind, id); err != nil {
		return err
	}

	if err := s.repo.SetSubmissionStatus(ctx, kind, id, models.StatusRejected); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject submission")
	}

	s.logger.Info("submission rejected",
		zap.String("kind", string(kind)),
		zap.String("submission_id", id))
	return nil
}

// Repair reconciles a submission left pending after an interrupted approval.
// It only flips the status to approved when the promoted item already exists;
// it never publishes content itself.
func (s *ModerationService) Repair(ctx context.Context, kind models.ContentKind, id string) error {
	sub, err := s.repo.GetSubmission(ctx, kind, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission")
	}

	switch sub.Status {
	case models.StatusApproved:
		return nil
	case models.StatusRejected:
		return appErrors.ErrTerminalState
	}

	item, err := s.repo.FindPromoted(ctx, kind, *sub)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up promoted content")
	}
	if item == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "no promoted content item for this submission")
	}

	if err := s.repo.SetSubmissionStatus(ctx, kind, id, models.StatusApproved); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to repair submission status")
	}

	s.logger.Info("submission repaired",
		zap.String("kind", string(kind)),
		zap.String("submission_id", id),
		zap.String("item_id", item.ID))
	return nil
}

func (s *ModerationService) loadActionable(ctx context.Context, kind models.ContentKind, id string) (*models.Submission, error) {
	sub, err := s.repo.GetSubmission(ctx, kind, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission")
	}
	if sub.Status.Terminal() {
		return nil, appErrors.ErrTerminalState
	}
	return sub, nil
}

func (s *ModerationService) resolveAssetURL(ctx context.Context, kind models.ContentKind, sub models.Submission) (string, error) {
	spec := kind.Spec()
	if spec.AssetFolder == "" {
		// Link kinds carry no file; the submitted URL is the asset.
		return sub.URL, nil
	}
	if s.assets.Hosted(sub.URL) {
		return sub.URL, nil
	}

	data, err := s.assets.Fetch(ctx, sub.URL)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUploadFailed.Code, appErrors.ErrUploadFailed.Status, "failed to fetch submitted file")
	}

	folder := spec.AssetFolder + "/" + sub.Semester
	hostedURL, err := s.assets.Upload(ctx, data, sub.Name+spec.FileExtension, folder)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUploadFailed.Code, appErrors.ErrUploadFailed.Status, "failed to upload file to asset host")
	}
	if s.metrics != nil {
		s.metrics.RecordUpload()
	}
	return hostedURL, nil
}
