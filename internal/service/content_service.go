package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studentres/resources-api/internal/dto"
	"github.com/studentres/resources-api/internal/models"
	appErrors "github.com/studentres/resources-api/pkg/errors"
)

type contentStore interface {
	FetchApproved(ctx context.Context, kind models.ContentKind, semester string) []models.ContentItem
	Submit(ctx context.Context, kind models.ContentKind, sub models.Submission) (string, error)
}

type semesterResolver interface {
	CurrentSemester(ctx context.Context, uid string) (string, bool)
}

// ContentService serves approved content and accepts new submissions. Reads
// are fail-open throughout: a broken partition shows up as an empty list,
// never as an error.
type ContentService struct {
	repo      contentStore
	profiles  semesterResolver
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewContentService builds a ContentService with sane defaults.
func NewContentService(repo contentStore, profiles semesterResolver, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ContentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{
		repo:      repo,
		profiles:  profiles,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
	}
}

// Fetch resolves the filter to either a single-semester read or a
// cross-semester keyword search.
func (s *ContentService) Fetch(ctx context.Context, kind models.ContentKind, filter dto.ContentFilter, claims *models.JWTClaims) []models.ContentItem {
	if filter.Keyword != "" {
		return s.SearchAll(ctx, kind, filter.Keyword)
	}

	semester := filter.Semester
	if semester == "" && claims != nil {
		semester, _ = s.profiles.CurrentSemester(ctx, claims.UserID)
	}
	if semester == "" {
		// No semester to scope by; the caller prompts for a manual choice.
		return []models.ContentItem{}
	}

	return s.repo.FetchApproved(ctx, kind, semester)
}

// SearchAll fans one query out to every semester partition concurrently and
// merges survivors after all eight complete. The backing store has no
// full-text index, so the keyword match happens here, per partition.
// Cross-partition ordering is not part of the contract; within a partition
// the store's order is preserved.
func (s *ContentService) SearchAll(ctx context.Context, kind models.ContentKind, keyword string) []models.ContentItem {
	spec := kind.Spec()
	needle := strings.ToLower(keyword)
	perPartition := make([][]models.ContentItem, len(models.Semesters))

	var wg sync.WaitGroup
	for i, semester := range models.Semesters {
		wg.Add(1)
		go func(i int, semester string) {
			defer wg.Done()
			s.metrics.RecordFanoutQuery()

			items := s.repo.FetchApproved(ctx, kind, semester)
			matched := make([]models.ContentItem, 0, len(items))
			for _, item := range items {
				if matchesKeyword(item, needle, spec) {
					matched = append(matched, item)
				}
			}
			perPartition[i] = matched
		}(i, semester)
	}
	wg.Wait()

	merged := make([]models.ContentItem, 0)
	for _, items := range perPartition {
		merged = append(merged, items...)
	}
	return merged
}

// Submit queues a new resource for moderation on behalf of the caller.
func (s *ContentService) Submit(ctx context.Context, kind models.ContentKind, req dto.SubmitContentRequest, claims *models.JWTClaims) (string, error) {
	if claims == nil || claims.UserID == "" {
		return "", appErrors.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	sub := models.Submission{
		Name:         req.Name,
		URL:          req.URL,
		Semester:     req.Semester,
		Subject:      req.Subject,
		Description:  req.Description,
		UploadedBy:   claims.UserID,
		UploadedDate: time.Now().UTC(),
	}

	id, err := s.repo.Submit(ctx, kind, sub)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record submission")
	}

	s.logger.Info("submission received",
		zap.String("kind", string(kind)),
		zap.String("semester", req.Semester),
		zap.String("submission_id", id))
	return id, nil
}

func matchesKeyword(item models.ContentItem, needle string, spec models.KindSpec) bool {
	if strings.Contains(strings.ToLower(item.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Subject), needle) {
		return true
	}
	if spec.SearchDescription && strings.Contains(strings.ToLower(item.Description), needle) {
		return true
	}
	return false
}
