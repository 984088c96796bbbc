package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studentres/resources-api/internal/middleware"
	"github.com/studentres/resources-api/internal/models"
	"github.com/studentres/resources-api/internal/service"
)

type stubContentRepo struct {
	items []models.ContentItem
}

func (s *stubContentRepo) FetchApproved(context.Context, models.ContentKind, string) []models.ContentItem {
	return s.items
}

func (s *stubContentRepo) Submit(context.Context, models.ContentKind, models.Submission) (string, error) {
	return "sub-1", nil
}

type stubResolver struct{}

func (stubResolver) CurrentSemester(context.Context, string) (string, bool) { return "", false }

func contentRouter(repo *stubContentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewContentService(repo, stubResolver{}, nil, nil, zap.NewNop())
	h := NewContentHandler(svc)

	r := gin.New()
	r.GET("/content/:kind", h.List)
	r.POST("/content/:kind/submissions", h.Submit)
	return r
}

func TestListUnknownKindReturns404(t *testing.T) {
	r := contentRouter(&stubContentRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/content/podcasts?semester=3", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListReturnsEnvelopeWithItems(t *testing.T) {
	r := contentRouter(&stubContentRepo{items: []models.ContentItem{
		{Name: "Graphs", Semester: "3", IsApproved: true},
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/content/notes?semester=3", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []models.ContentItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Graphs", envelope.Data[0].Name)
}

func TestSubmitWithoutClaimsIsUnauthenticated(t *testing.T) {
	r := contentRouter(&stubContentRepo{})

	payload := `{"name":"DBMS","url":"https://example.com/d.pdf","semester":"4"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/content/notes/submissions", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitWithClaimsCreatesSubmission(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewContentService(&stubContentRepo{}, stubResolver{}, nil, nil, zap.NewNop())
	h := NewContentHandler(svc)

	r := gin.New()
	r.POST("/content/:kind/submissions", func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-1"})
		h.Submit(c)
	})

	payload := `{"name":"DBMS","url":"https://example.com/d.pdf","semester":"4"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/content/notes/submissions", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "sub-1")
	assert.Contains(t, w.Body.String(), "pending")
}
