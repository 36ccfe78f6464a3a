package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yourusername/yt-extract-go/internal/domain"
)

// HTTPCaptionFetcher implements domain.CaptionFetcher with a plain GET
type HTTPCaptionFetcher struct {
	client *http.Client
}

// NewHTTPCaptionFetcher creates a caption fetcher; timeout 0 means no limit
func NewHTTPCaptionFetcher(timeout time.Duration) *HTTPCaptionFetcher {
	return &HTTPCaptionFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the caption document at url. Non-200 statuses are not errors.
func (f *HTTPCaptionFetcher) Fetch(ctx context.Context, url string) (*domain.CaptionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build caption request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read caption body: %w", err)
	}

	return &domain.CaptionResponse{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}
