package logger

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogReader_ReadsMultiLoggerOutput(t *testing.T) {
	dir := t.TempDir()
	ml, err := NewMultiLogger(MultiLoggerConfig{Level: "info", LogsDir: dir})
	require.NoError(t, err)

	ml.LogDownloadEvent("download_completed", zap.String("title", "First"))
	ml.LogDownloadEvent("download_completed", zap.String("title", "Second"))
	ml.LogDownloadEvent("download_completed", zap.String("title", "Third"))
	require.NoError(t, ml.Close())

	reader := NewLogReader(dir)
	entries, err := reader.ReadLogs(CategoryDownload, time.Now(), "", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "download_completed", entries[0].Message)
	assert.Equal(t, "info", entries[0].Level)
	assert.NotEmpty(t, entries[0].Timestamp)
	assert.Equal(t, "Second", entries[0].Fields["title"])
	assert.Equal(t, "Third", entries[1].Fields["title"])
}

func TestLogReader_Query(t *testing.T) {
	dir := t.TempDir()
	reader := NewLogReader(dir)
	day := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	content := `{"level":"error","ts":"2024-01-31T10:00:00Z","msg":"Download failed","url":"https://youtu.be/a"}
plain text line
{"level":"error","ts":"2024-01-31T11:00:00Z","msg":"Download failed","url":"https://youtu.be/b"}
`
	require.NoError(t, os.WriteFile(reader.LogPath(CategoryError, day), []byte(content), 0644))

	entries, err := reader.ReadLogs(CategoryError, day, "YOUTU.BE/B", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://youtu.be/b", entries[0].Fields["url"])

	entries, err = reader.ReadLogs(CategoryError, day, "plain", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plain text line", entries[0].Message)
}

func TestLogReader_MissingFile(t *testing.T) {
	entries, err := NewLogReader(t.TempDir()).ReadLogs(CategoryDownload, time.Now(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryDownload))
	assert.True(t, ValidCategory(CategoryError))
	assert.False(t, ValidCategory("queue"))
}
