package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/yt-extract-go/internal/app"
	"github.com/yourusername/yt-extract-go/internal/domain"
	"go.uber.org/zap"
)

// Client-facing messages produced by the handler itself
const (
	MsgInvalidJSON        = "Invalid JSON body."
	MsgSubtitlesNotFound  = "Subtitles not found."
	msgDownloadSuccessFmt = "Video with resolution %s downloaded successfully."
)

// VideoService is the application service behind the video endpoints
type VideoService interface {
	GetVideoInfo(ctx context.Context, url string) (*domain.VideoInfo, error)
	Download(ctx context.Context, req *domain.DownloadRequest) (*app.DownloadResult, error)
}

// VideoHandler handles the download and video info endpoints
type VideoHandler struct {
	service VideoService
	logger  *zap.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(service VideoService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		service: service,
		logger:  logger,
	}
}

// DownloadBody is the JSON body of POST /download/:resolution.
// Subtitles accepts any JSON value and is read by truthiness.
type DownloadBody struct {
	URL       string      `json:"url"`
	Subtitles interface{} `json:"subtitles"`
}

// WantsSubtitles reports whether the subtitles field is truthy:
// false, null, 0, "", [] and {} all mean no.
func (b *DownloadBody) WantsSubtitles() bool {
	switch v := b.Subtitles.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	default:
		return true
	}
}

// VideoInfoBody is the JSON body of POST /video_info
type VideoInfoBody struct {
	URL string `json:"url"`
}

// DownloadResponse is returned by a successful download
type DownloadResponse struct {
	Message   string  `json:"message"`
	Subtitles *string `json:"subtitles,omitempty"`
}

// Download handles POST /download/:resolution
func (h *VideoHandler) Download(c *gin.Context) {
	var body DownloadBody
	if !bindBody(c, &body) {
		return
	}

	resolution := c.Param("resolution")
	subtitles := body.WantsSubtitles()
	result, err := h.service.Download(c.Request.Context(), &domain.DownloadRequest{
		URL:        body.URL,
		Resolution: resolution,
		Subtitles:  subtitles,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := DownloadResponse{
		Message: fmt.Sprintf(msgDownloadSuccessFmt, resolution),
	}
	if subtitles && result.Subtitles != nil {
		text := result.Subtitles.Text
		if result.Subtitles.Kind == domain.SubtitleNotFound {
			text = MsgSubtitlesNotFound
		}
		response.Subtitles = &text
	}

	c.JSON(http.StatusOK, response)
}

// VideoInfo handles POST /video_info
func (h *VideoHandler) VideoInfo(c *gin.Context) {
	var body VideoInfoBody
	if !bindBody(c, &body) {
		return
	}

	info, err := h.service.GetVideoInfo(c.Request.Context(), body.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// bindBody decodes the JSON body into obj. An empty body leaves obj zeroed.
func bindBody(c *gin.Context, obj interface{}) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		AbortWithError(c, http.StatusBadRequest, MsgInvalidJSON)
		return false
	}
	return true
}

func (h *VideoHandler) respondError(c *gin.Context, err error) {
	var inputErr *domain.InputError
	if errors.As(err, &inputErr) {
		AbortWithError(c, http.StatusBadRequest, inputErr.Message)
		return
	}

	message := err.Error()
	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) {
		message = backendErr.Message
	}

	h.logger.Error("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	AbortWithError(c, http.StatusInternalServerError, message)
}
