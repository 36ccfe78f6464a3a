package domain

import "context"

// Extractor defines the video extraction backend
type Extractor interface {
	// ExtractInfo resolves metadata for url without downloading media
	ExtractInfo(ctx context.Context, url string) (*VideoMetadata, error)

	// Download fetches the best stream within opts and returns the resulting metadata
	Download(ctx context.Context, url string, opts DownloadOptions) (*VideoMetadata, error)
}

// DownloadOptions controls a single media download
type DownloadOptions struct {
	MaxHeight int
	Subtitles bool
}

// CaptionFetcher retrieves remote caption documents
type CaptionFetcher interface {
	Fetch(ctx context.Context, url string) (*CaptionResponse, error)
}

// CaptionResponse is the raw result of a caption fetch
type CaptionResponse struct {
	StatusCode int
	Body       string
}
