package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/yourusername/yt-extract-go/api/middleware"
	"github.com/yourusername/yt-extract-go/internal/app"
	"github.com/yourusername/yt-extract-go/internal/domain"
)

type stubExtractor struct {
	meta *domain.VideoMetadata
}

func (s *stubExtractor) ExtractInfo(context.Context, string) (*domain.VideoMetadata, error) {
	return s.meta, nil
}

func (s *stubExtractor) Download(context.Context, string, domain.DownloadOptions) (*domain.VideoMetadata, error) {
	return s.meta, nil
}

func (s *stubExtractor) Available() error { return nil }

type noCaptions struct{}

func (noCaptions) Fetch(context.Context, string) (*domain.CaptionResponse, error) {
	return &domain.CaptionResponse{StatusCode: http.StatusNotFound}, nil
}

type emptyHistory struct{}

func (emptyHistory) Create(*domain.Download) error { return nil }
func (emptyHistory) Update(*domain.Download) error { return nil }
func (emptyHistory) FindByID(string) (*domain.Download, error) {
	return nil, domain.ErrDownloadNotFound
}
func (emptyHistory) FindAll(map[string]interface{}) ([]*domain.Download, error) { return nil, nil }
func (emptyHistory) GetStats() (*domain.DownloadStats, error) {
	return &domain.DownloadStats{}, nil
}

func newTestRouter(history domain.DownloadRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	extractor := &stubExtractor{meta: &domain.VideoMetadata{Title: "Clip"}}
	service := app.NewVideoService(extractor, app.NewSubtitleResolver(noCaptions{}, "en"), zap.NewNop())
	return SetupRouter(RouterDeps{
		Service: service,
		Backend: extractor,
		Binary:  "yt-dlp",
		History: history,
		Logger:  zap.NewNop(),
	})
}

func TestRouter_DownloadEndToEnd(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/download/720", bytes.NewBufferString(`{"url":"https://youtu.be/abc","subtitles":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"message":"Video with resolution 720 downloaded successfully.",
		"subtitles":"No English auto-captions available."
	}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_HistoryRoutesOptional(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/downloads", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	newTestRouter(emptyHistory{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/downloads", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_LogRoutesOptional(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs/error", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Health(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
