package domain

import "errors"

// ErrDownloadNotFound is returned when a history record does not exist
var ErrDownloadNotFound = errors.New("download not found")

// DownloadRepository defines the interface for download history persistence
type DownloadRepository interface {
	// Create creates a new download
	Create(download *Download) error

	// Update updates an existing download
	Update(download *Download) error

	// FindByID finds a download by ID
	FindByID(id string) (*Download, error)

	// FindAll finds downloads, newest first, with optional column filters
	FindAll(filters map[string]interface{}) ([]*Download, error)

	// GetStats returns download statistics
	GetStats() (*DownloadStats, error)
}

// DownloadStats represents download statistics
type DownloadStats struct {
	Total      int64 `json:"total"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
}
