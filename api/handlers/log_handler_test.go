package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/yt-extract-go/pkg/logger"
)

func newLogRouter(logsDir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewLogHandler(logsDir)
	r.GET("/api/v1/logs/:category", h.GetLogs)
	return r
}

func TestGetLogs(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	content := `{"level":"info","ts":"2024-03-01T09:00:00Z","msg":"download_completed","title":"A"}
{"level":"info","ts":"2024-03-01T09:05:00Z","msg":"download_completed","title":"B"}
`
	path := logger.NewLogReader(dir).LogPath(logger.CategoryDownload, day)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	w := get(newLogRouter(dir), "/api/v1/logs/download?date=2024-03-01&limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Category string            `json:"category"`
		Count    int               `json:"count"`
		Entries  []logger.LogEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "download", body.Category)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "B", body.Entries[0].Fields["title"])
}

func TestGetLogs_BadInput(t *testing.T) {
	r := newLogRouter(t.TempDir())

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/logs/queue").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/logs/error?date=31-01-2024").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/logs/error").Code)
}
