package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/yt-extract-go/internal/domain"
	"go.uber.org/zap"
)

// DownloadHandler serves the download history
type DownloadHandler struct {
	repo   domain.DownloadRepository
	logger *zap.Logger
}

// NewDownloadHandler creates a new download history handler
func NewDownloadHandler(repo domain.DownloadRepository, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		repo:   repo,
		logger: logger,
	}
}

// GetDownload handles GET /api/v1/downloads/:id
func (h *DownloadHandler) GetDownload(c *gin.Context) {
	id := c.Param("id")

	download, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrDownloadNotFound) {
			AbortWithError(c, http.StatusNotFound, "download not found")
			return
		}
		h.logger.Error("Failed to get download", zap.String("id", id), zap.Error(err))
		AbortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, download)
}

// ListDownloads handles GET /api/v1/downloads
func (h *DownloadHandler) ListDownloads(c *gin.Context) {
	filters := make(map[string]interface{})

	if status := c.Query("status"); status != "" {
		if !domain.ValidateStatus(domain.DownloadStatus(status)) {
			AbortWithError(c, http.StatusBadRequest, "invalid status: " + status)
			return
		}
		filters["status"] = status
	}

	downloads, err := h.repo.FindAll(filters)
	if err != nil {
		h.logger.Error("Failed to list downloads", zap.Error(err))
		AbortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if downloads == nil {
		downloads = []*domain.Download{}
	}

	c.JSON(http.StatusOK, downloads)
}

// GetStats handles GET /api/v1/downloads/stats
func (h *DownloadHandler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		AbortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, stats)
}
