package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studentres/resources-api/internal/dto"
	"github.com/studentres/resources-api/internal/models"
	"github.com/studentres/resources-api/internal/store"
	appErrors "github.com/studentres/resources-api/pkg/errors"
)

type profileStore interface {
	Get(ctx context.Context, uid string) (*models.UserProfile, error)
	Save(ctx context.Context, uid string, profile models.UserProfile) error
	AdvanceSemester(ctx context.Context, uid, semester string, when time.Time) error
	CreateAdminRequest(ctx context.Context, req models.AdminRequest) (string, error)
	LatestAdminRequest(ctx context.Context, uid string) (*models.AdminRequest, error)
}

// ProfileService manages user profiles, the twice-yearly semester advance and
// admin requests.
type ProfileService struct {
	repo      profileStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewProfileService builds a ProfileService with sane defaults.
func NewProfileService(repo profileStore, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		repo:      repo,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// GetProfile loads the caller's profile.
func (s *ProfileService) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	profile, err := s.repo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return profile, nil
}

// UpdateProfile merges the request fields into the user document, creating it
// on first write.
func (s *ProfileService) UpdateProfile(ctx context.Context, uid string, req dto.UpdateProfileRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	profile := models.UserProfile{
		Name:             req.Name,
		EnrollmentNumber: req.EnrollmentNumber,
		Semester:         req.Semester,
		Branch:           req.Branch,
		ProfileImageURL:  req.ProfileImageURL,
	}
	if err := s.repo.Save(ctx, uid, profile); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save profile")
	}
	return nil
}

// CurrentSemester returns the user's semester when a profile with one exists.
func (s *ProfileService) CurrentSemester(ctx context.Context, uid string) (string, bool) {
	profile, err := s.repo.Get(ctx, uid)
	if err != nil || profile.Semester == "" {
		return "", false
	}
	return profile.Semester, true
}

// IsAdmin reports whether the user holds moderator rights. Missing profiles
// and read failures count as not admin.
func (s *ProfileService) IsAdmin(ctx context.Context, uid string) bool {
	profile, err := s.repo.Get(ctx, uid)
	if err != nil {
		return false
	}
	return profile.IsAdmin
}

// MaybeAdvanceSemester bumps the user one semester forward when called on a
// rollover day (January 1 or July 1), at most once per day, never past
// semester 8. The bool reports whether an advance happened.
func (s *ProfileService) MaybeAdvanceSemester(ctx context.Context, uid string) (bool, error) {
	now := s.now().UTC()
	if !rolloverDay(now) {
		return false, nil
	}

	profile, err := s.repo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, appErrors.Clone(appErrors.ErrNotFound, "profile not found")
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}

	if profile.LastSemesterUpdate != nil && sameDay(profile.LastSemesterUpdate.UTC(), now) {
		return false, nil
	}

	current, err := strconv.Atoi(profile.Semester)
	if err != nil || current < 1 || current > 7 {
		return false, nil
	}

	next := strconv.Itoa(current + 1)
	if err := s.repo.AdvanceSemester(ctx, uid, next, now); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to advance semester")
	}

	s.logger.Info("semester advanced",
		zap.String("uid", uid),
		zap.String("from", profile.Semester),
		zap.String("to", next))
	return true, nil
}

// RequestAdmin files a pending admin request unless one is already pending.
func (s *ProfileService) RequestAdmin(ctx context.Context, uid string) error {
	latest, err := s.repo.LatestAdminRequest(ctx, uid)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing admin requests")
	}
	if latest != nil && latest.Status == models.StatusPending {
		return appErrors.New("REQUEST_PENDING", http.StatusConflict, "an admin request is already pending")
	}

	req := models.AdminRequest{
		UserID:        uid,
		Status:        models.StatusPending,
		RequestedDate: s.now().UTC(),
	}
	if _, err := s.repo.CreateAdminRequest(ctx, req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to file admin request")
	}
	return nil
}

// AdminRequestStatus returns the status of the user's most recent admin
// request, or empty when none exists.
func (s *ProfileService) AdminRequestStatus(ctx context.Context, uid string) (models.SubmissionStatus, error) {
	latest, err := s.repo.LatestAdminRequest(ctx, uid)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin request")
	}
	if latest == nil {
		return "", nil
	}
	return latest.Status, nil
}

func rolloverDay(t time.Time) bool {
	return t.Day() == 1 && (t.Month() == time.January || t.Month() == time.July)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
