package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/yt-extract-go/internal/app"
	"github.com/yourusername/yt-extract-go/internal/domain"
	"go.uber.org/zap"
)

// fakeVideoService implements VideoService for testing
type fakeVideoService struct {
	info      *domain.VideoInfo
	result    *app.DownloadResult
	err       error
	lastReq   *domain.DownloadRequest
	lastURL   string
	infoCalls int
}

func (f *fakeVideoService) GetVideoInfo(_ context.Context, url string) (*domain.VideoInfo, error) {
	f.infoCalls++
	f.lastURL = url
	if err := domain.ValidateURL(url); err != nil {
		return nil, err
	}
	return f.info, f.err
}

func (f *fakeVideoService) Download(_ context.Context, req *domain.DownloadRequest) (*app.DownloadResult, error) {
	f.lastReq = req
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return f.result, f.err
}

func newVideoRouter(service VideoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewVideoHandler(service, zap.NewNop())
	r.POST("/download/:resolution", h.Download)
	r.POST("/video_info", h.VideoInfo)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDownload_InputErrors(t *testing.T) {
	r := newVideoRouter(&fakeVideoService{})

	tests := []struct {
		name    string
		path    string
		body    string
		wantErr string
	}{
		{"missing url", "/download/720", `{}`, domain.MsgMissingURL},
		{"empty body", "/download/720", ``, domain.MsgMissingURL},
		{"invalid url", "/download/720", `{"url":"https://vimeo.com/1"}`, domain.MsgInvalidURL},
		{"invalid resolution", "/download/high", `{"url":"https://youtu.be/x"}`, domain.MsgInvalidResolution},
		{"missing url wins over resolution", "/download/high", `{}`, domain.MsgMissingURL},
		{"malformed json", "/download/720", `{"url":`, MsgInvalidJSON},
		{"missing url with string subtitles", "/download/720", `{"subtitles":"yes"}`, domain.MsgMissingURL},
		{"missing url with numeric subtitles", "/download/720", `{"subtitles":1}`, domain.MsgMissingURL},
		{"non-string url", "/download/720", `{"url":5}`, MsgInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(r, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"`+jsonEscape(tt.wantErr)+`"}`, w.Body.String())
		})
	}
}

func TestDownload_SuccessWithoutSubtitles(t *testing.T) {
	service := &fakeVideoService{result: &app.DownloadResult{Metadata: &domain.VideoMetadata{Title: "Clip"}}}
	r := newVideoRouter(service)

	w := post(r, "/download/720", `{"url":"https://www.youtube.com/watch?v=abc"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Video with resolution 720 downloaded successfully."}`, w.Body.String())
	require.NotNil(t, service.lastReq)
	assert.Equal(t, "720", service.lastReq.Resolution)
	assert.False(t, service.lastReq.Subtitles)
}

func TestDownload_SubtitlesTruthiness(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{`true`, true},
		{`"yes"`, true},
		{`1`, true},
		{`[0]`, true},
		{`{"a":1}`, true},
		{`false`, false},
		{`null`, false},
		{`0`, false},
		{`""`, false},
		{`[]`, false},
		{`{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			service := &fakeVideoService{result: &app.DownloadResult{
				Metadata:  &domain.VideoMetadata{},
				Subtitles: domain.SubtitleNotice(domain.SubtitleNoEnglishAuto),
			}}
			r := newVideoRouter(service)

			w := post(r, "/download/720", `{"url":"https://youtu.be/abc","subtitles":`+tt.value+`}`)

			assert.Equal(t, http.StatusOK, w.Code)
			require.NotNil(t, service.lastReq)
			assert.Equal(t, tt.want, service.lastReq.Subtitles)
			if tt.want {
				assert.Contains(t, w.Body.String(), `"subtitles"`)
			} else {
				assert.NotContains(t, w.Body.String(), `"subtitles"`)
			}
		})
	}
}

func TestDownload_SubtitleOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		outcome *domain.SubtitleOutcome
		want    string
	}{
		{"manual", domain.ManualSubtitle("1\nhello"), "1\nhello"},
		{"not found sentinel", domain.SubtitleNotice(domain.SubtitleNotFound), MsgSubtitlesNotFound},
		{"missing on disk", domain.SubtitleNotice(domain.SubtitleManualMissing), domain.MsgSubtitlesMissingOnDisk},
		{"no english auto", domain.SubtitleNotice(domain.SubtitleNoEnglishAuto), domain.MsgNoEnglishAutoCaptions},
		{"auto failed", domain.SubtitleNotice(domain.SubtitleAutomaticFailed), domain.MsgAutoCaptionFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeVideoService{result: &app.DownloadResult{
				Metadata:  &domain.VideoMetadata{},
				Subtitles: tt.outcome,
			}}
			r := newVideoRouter(service)

			w := post(r, "/download/1080p", `{"url":"https://youtu.be/abc","subtitles":true}`)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t,
				`{"message":"Video with resolution 1080p downloaded successfully.","subtitles":"`+jsonEscape(tt.want)+`"}`,
				w.Body.String())
			assert.True(t, service.lastReq.Subtitles)
		})
	}
}

func TestDownload_BackendError(t *testing.T) {
	service := &fakeVideoService{err: domain.NewBackendError("Download", errors.New("ERROR: Requested format is not available"))}
	r := newVideoRouter(service)

	w := post(r, "/download/144", `{"url":"https://youtu.be/abc"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"ERROR: Requested format is not available"}`, w.Body.String())
}

func TestVideoInfo_Success(t *testing.T) {
	length := 60.0
	views := int64(42)
	author, description, publishDate := "Someone", "desc", "20240101"
	service := &fakeVideoService{info: &domain.VideoInfo{
		Title:       "Clip",
		Author:      &author,
		Length:      &length,
		Views:       &views,
		Description: &description,
		PublishDate: &publishDate,
	}}
	r := newVideoRouter(service)

	w := post(r, "/video_info", `{"url":"youtu.be/abc"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"title":"Clip","author":"Someone","length":60,"views":42,
		"description":"desc","publish_date":"20240101",
		"available_subtitles":"No subtitles available"
	}`, w.Body.String())
	assert.Equal(t, "youtu.be/abc", service.lastURL)
}

func TestVideoInfo_InputErrors(t *testing.T) {
	r := newVideoRouter(&fakeVideoService{})

	w := post(r, "/video_info", `{"url":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing 'url' parameter in the request body."}`, w.Body.String())

	w = post(r, "/video_info", `{"url":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid YouTube URL."}`, w.Body.String())
}

func TestVideoInfo_BackendErrorHasOnlyErrorKey(t *testing.T) {
	service := &fakeVideoService{err: domain.NewBackendError("ExtractInfo", errors.New("ERROR: Video unavailable"))}
	r := newVideoRouter(service)

	w := post(r, "/video_info", `{"url":"https://youtu.be/abc"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"ERROR: Video unavailable"}`, w.Body.String())
}

func jsonEscape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '\n':
			buf.WriteString(`\n`)
		case '"':
			buf.WriteString(`\"`)
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
