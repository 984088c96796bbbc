package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studentres/resources-api/internal/models"
	"github.com/studentres/resources-api/internal/store"
	appErrors "github.com/studentres/resources-api/pkg/errors"
)

type fakeModerationRepo struct {
	submissions map[string]*models.Submission
	promoted    *models.ContentItem

	promoteErr   error
	setStatusErr error

	events       []string
	promotedURL  string
	statusWrites []models.SubmissionStatus
}

func (f *fakeModerationRepo) GetSubmission(_ context.Context, _ models.ContentKind, id string) (*models.Submission, error) {
	sub, ok := f.submissions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

func (f *fakeModerationRepo) ListPending(context.Context, models.ContentKind) ([]models.Submission, error) {
	var pending []models.Submission
	for _, sub := range f.submissions {
		if sub.Status == models.StatusPending {
			pending = append(pending, *sub)
		}
	}
	return pending, nil
}

func (f *fakeModerationRepo) SetSubmissionStatus(_ context.Context, _ models.ContentKind, id string, status models.SubmissionStatus) error {
	if f.setStatusErr != nil {
		return f.setStatusErr
	}
	f.events = append(f.events, "status")
	f.statusWrites = append(f.statusWrites, status)
	if sub, ok := f.submissions[id]; ok {
		sub.Status = status
	}
	return nil
}

func (f *fakeModerationRepo) Promote(_ context.Context, _ models.ContentKind, _ models.Submission, resolvedURL string) (string, error) {
	if f.promoteErr != nil {
		return "", f.promoteErr
	}
	f.events = append(f.events, "promote")
	f.promotedURL = resolvedURL
	return "item-1", nil
}

func (f *fakeModerationRepo) FindPromoted(context.Context, models.ContentKind, models.Submission) (*models.ContentItem, error) {
	return f.promoted, nil
}

type fakeAssetHost struct {
	hosted    bool
	fetched   []string
	uploads   int
	uploadURL string
	fetchErr  error
	uploadErr error
}

func (f *fakeAssetHost) Hosted(string) bool { return f.hosted }

func (f *fakeAssetHost) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	f.fetched = append(f.fetched, rawURL)
	return []byte("file-bytes"), nil
}

func (f *fakeAssetHost) Upload(_ context.Context, _ []byte, _, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads++
	return f.uploadURL, nil
}

func pendingSubmission(id string) *models.Submission {
	return &models.Submission{
		ID:         id,
		Name:       "Algorithms Unit 2",
		URL:        "https://drive.example.com/tmp/algo.pdf",
		Semester:   "3",
		Subject:    "Algorithms",
		UploadedBy: "u-7",
		Status:     models.StatusPending,
	}
}

func TestApprovePromotesBeforeStatusWrite(t *testing.T) {
	repo := &fakeModerationRepo{submissions: map[string]*models.Submission{"s-1": pendingSubmission("s-1")}}
	assets := &fakeAssetHost{uploadURL: "https://cdn.example.com/notes/3/algo.pdf"}
	svc := NewModerationService(repo, assets, nil, zap.NewNop())

	err := svc.Approve(context.Background(), models.KindNotes, "s-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"promote", "status"}, repo.events)
	assert.Equal(t, []models.SubmissionStatus{models.StatusApproved}, repo.statusWrites)
	assert.Equal(t, assets.uploadURL, repo.promotedURL)
	assert.Equal(t, 1, assets.uploads)
}

func TestApproveReusesAlreadyHostedURL(t *testing.T) {
	sub := pendingSubmission("s-1")
	sub.URL = "https://res.cloudinary.com/demo/notes/3/algo.pdf"
	repo := &fakeModerationRepo{submissions: map[string]*models.Submission{"s-1": sub}}
	assets := &fakeAssetHost{hosted: true}
	svc := NewModerationService(repo, assets, nil, zap.NewNop())

	err := svc.Approve(context.Background(), models.KindNotes, "s-1")

	require.NoError(t, err)
	assert.Zero(t, assets.uploads)
	assert.Empty(t, assets.fetched)
	assert.Equal(t, sub.URL, repo.promotedURL)
}

func TestApproveVideoLinkNeverTouchesAssetHost(t *testing.T) {
	sub := pendingSubmission("s-1")
	sub.URL = "https://youtube.com/watch?v=abc"
	repo := &fakeModerationRepo{submissions: map[string]*models.Submission{"s-1": sub}}
	assets := &fakeAssetHost{}
	svc := NewModerationService(repo, assets, nil, zap.NewNop())

	err := svc.Approve(context.Background(), models.KindVideoLinks, "s-1")

	require.NoError(t, err)
	assert.Zero(t, assets.uploads)
	assert.Empty(t, assets.fetched)
	assert.Equal(t, sub.URL, repo.promotedURL)
}

func TestApproveTerminalSubmissionConflicts(t *testing.T) {
	sub := pendingSubmission("s-1")
	sub.Status = models.StatusApproved
	repo := &fakeModerationRepo{submissions: map[string]*models.Submission{"s-1": sub}}
	svc := NewModerationService(repo, &fakeAssetHost{}, nil, zap.NewNop())

	err := svc.Approve(context.Background(), models.KindNotes, "s-1")

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrTerminalState.Code, appErr.Code)
	assert.Empty(t, repo.events)
}

func TestApproveUploadFailureLeavesSubmissionPending(t *testing.T) {
	repo := &fakeModerationRepo{submissions: map[string]*models.Submission{"s-1": pendingSubmission("s-1")}}
	assets := &fakeAssetHost{uploadErr: errors.New("host down")}
	svc := NewModerationService(repo, assets, nil, zap.NewNop())

	err := svc.Approve(context.Background(), models.KindNotes, "s-1")

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUploadFailed.Code, appErr.Code)
	assert.Empty(t, repo.events)
	assert.Equal(t, models.StatusPending, repo.submissions["s-1"].Status)
}

func TestApprovePromoteFailureSkipsStatusWrite(t *testing.T) {
	repo := &fakeModerationRepo{
		submissions: map[string]*models.Submission{"s-1": pendingSubmission("s-1")},
		promoteErr:  errors.New("write refused"),
	}
	svc := NewModerationService(repo, &fakeAssetHost{uploadURL: "https://cdn.example.com/x.pdf"}, nil, zap.NewNop())

	err := svc.Approve(context.Background(), models.KindNotes, "s-1")

	require.Error(t, err)
	assert.Empty(t, repo.statusWrites)
	assert.Equal(t, models.StatusPending, repo.submissions["s-1"].Status)
}

func TestRejectMarksWithoutPublishing(t *testing.T) {
	repo := &fakeModerationRepo{submissions: map[string]*models.Submission{"s-1": pendingSubmission("s-1")}}
	svc := NewModerationService(repo, &fakeAssetHost{}, nil, zap.NewNop())

	err := svc.Reject(context.Background(), models.KindNotes, "s-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"status"}, repo.events)
	assert.Equal(t, models.StatusRejected, repo.submissions["s-1"].Status)
}

func TestRejectTerminalSubmissionConflicts(t *testing.T) {
	sub := pendingSubmission("s-1")
	sub.Status = models.StatusRejected
	repo := &fakeModerationRepo{submissions: map[string]*models.Submission{"s-1": sub}}
	svc := NewModerationService(repo, &fakeAssetHost{}, nil, zap.NewNop())

	err := svc.Reject(context.Background(), models.KindNotes, "s-1")

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrTerminalState.Code, appErr.Code)
}

func TestRepairFinishesInterruptedApproval(t *testing.T) {
	repo := &fakeModerationRepo{
		submissions: map[string]*models.Submission{"s-1": pendingSubmission("s-1")},
		promoted:    &models.ContentItem{ID: "item-1", Name: "Algorithms Unit 2", UploadedBy: "u-7", Semester: "3"},
	}
	svc := NewModerationService(repo, &fakeAssetHost{}, nil, zap.NewNop())

	err := svc.Repair(context.Background(), models.KindNotes, "s-1")

	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, repo.submissions["s-1"].Status)
}

func TestRepairIsNoOpForApprovedSubmission(t *testing.T) {
	sub := pendingSubmission("s-1")
	sub.Status = models.StatusApproved
	repo := &fakeModerationRepo{submissions: map[string]*models.Submission{"s-1": sub}}
	svc := NewModerationService(repo, &fakeAssetHost{}, nil, zap.NewNop())

	err := svc.Repair(context.Background(), models.KindNotes, "s-1")

	require.NoError(t, err)
	assert.Empty(t, repo.events)
}

func TestRepairRejectedSubmissionConflicts(t *testing.T) {
	sub := pendingSubmission("s-1")
	sub.Status = models.StatusRejected
	repo := &fakeModerationRepo{submissions: map[string]*models.Submission{"s-1": sub}}
	svc := NewModerationService(repo, &fakeAssetHost{}, nil, zap.NewNop())

	err := svc.Repair(context.Background(), models.KindNotes, "s-1")

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrTerminalState.Code, appErr.Code)
}

func TestRepairWithoutPromotedContentFails(t *testing.T) {
	repo := &fakeModerationRepo{submissions: map[string]*models.Submission{"s-1": pendingSubmission("s-1")}}
	svc := NewModerationService(repo, &fakeAssetHost{}, nil, zap.NewNop())

	err := svc.Repair(context.Background(), models.KindNotes, "s-1")

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, models.StatusPending, repo.submissions["s-1"].Status)
}

func TestModerationMissingSubmissionIsNotFound(t *testing.T) {
	repo := &fakeModerationRepo{submissions: map[string]*models.Submission{}}
	svc := NewModerationService(repo, &fakeAssetHost{}, nil, zap.NewNop())

	err := svc.Approve(context.Background(), models.KindNotes, "ghost")

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
