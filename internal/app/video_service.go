package app

import (
	"context"
	"errors"

	"github.com/yourusername/yt-extract-go/internal/domain"
	"github.com/yourusername/yt-extract-go/pkg/logger"
	"go.uber.org/zap"
)

// MsgNoMetadata is reported when the extractor succeeds without returning metadata
const MsgNoMetadata = "Failed to retrieve video information."

// Notifier receives download lifecycle notifications
type Notifier interface {
	NotifyDownloadCompleted(title string)
	NotifyDownloadFailed(url string, err error)
}

// DownloadResult is the outcome of a successful download
type DownloadResult struct {
	Metadata  *domain.VideoMetadata
	Subtitles *domain.SubtitleOutcome // nil when subtitles were not requested
}

// VideoService validates requests and drives the extractor
type VideoService struct {
	extractor   domain.Extractor
	subtitles   *SubtitleResolver
	repo        domain.DownloadRepository
	notifier    Notifier
	logger      *zap.Logger
	eventLogger *logger.MultiLogger
}

// ServiceOption configures optional VideoService collaborators
type ServiceOption func(*VideoService)

// WithHistory records every download in repo
func WithHistory(repo domain.DownloadRepository) ServiceOption {
	return func(s *VideoService) { s.repo = repo }
}

// WithNotifier sends completion and failure notifications
func WithNotifier(n Notifier) ServiceOption {
	return func(s *VideoService) { s.notifier = n }
}

// WithEventLogger writes download events and errors to category log files
func WithEventLogger(ml *logger.MultiLogger) ServiceOption {
	return func(s *VideoService) { s.eventLogger = ml }
}

// NewVideoService creates a new video service
func NewVideoService(
	extractor domain.Extractor,
	subtitles *SubtitleResolver,
	logger *zap.Logger,
	opts ...ServiceOption,
) *VideoService {
	s := &VideoService{
		extractor: extractor,
		subtitles: subtitles,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetVideoInfo returns display metadata for url without downloading media
func (s *VideoService) GetVideoInfo(ctx context.Context, url string) (*domain.VideoInfo, error) {
	if err := domain.ValidateURL(url); err != nil {
		return nil, err
	}

	meta, err := s.extractor.ExtractInfo(ctx, url)
	if err != nil {
		s.logFailure("Video info extraction failed", url, err)
		return nil, domain.NewBackendError("ExtractInfo", err)
	}
	if meta == nil {
		return nil, domain.NewBackendErrorf("ExtractInfo", MsgNoMetadata)
	}

	s.logger.Info("Video info retrieved",
		zap.String("url", url),
		zap.String("title", meta.Title))

	return domain.NewVideoInfo(meta), nil
}

// Download fetches the video at the requested resolution ceiling and, if
// asked, resolves one subtitle outcome
func (s *VideoService) Download(ctx context.Context, req *domain.DownloadRequest) (*DownloadResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := s.startRecord(req)

	s.logger.Info("Starting download",
		zap.String("url", req.URL),
		zap.Int("max_height", req.Height()),
		zap.Bool("subtitles", req.Subtitles))

	meta, err := s.extractor.Download(ctx, req.URL, domain.DownloadOptions{
		MaxHeight: req.Height(),
		Subtitles: req.Subtitles,
	})
	if err != nil {
		return nil, s.fail(record, req.URL, domain.NewBackendError("Download", err))
	}
	if meta == nil {
		return nil, s.fail(record, req.URL, domain.NewBackendErrorf("Download", MsgNoMetadata))
	}

	result := &DownloadResult{Metadata: meta}
	if req.Subtitles {
		outcome, err := s.subtitles.Resolve(ctx, meta)
		if err != nil {
			var backendErr *domain.BackendError
			if !errors.As(err, &backendErr) {
				backendErr = domain.NewBackendError("ResolveSubtitles", err)
			}
			return nil, s.fail(record, req.URL, backendErr)
		}
		result.Subtitles = outcome
	}

	s.complete(record, result)
	return result, nil
}

func (s *VideoService) startRecord(req *domain.DownloadRequest) *domain.Download {
	if s.repo == nil {
		return nil
	}
	record := domain.NewDownload(req)
	if err := s.repo.Create(record); err != nil {
		s.logger.Warn("Failed to record download",
			zap.String("url", req.URL),
			zap.Error(err))
		return nil
	}
	return record
}

func (s *VideoService) complete(record *domain.Download, result *DownloadResult) {
	fields := []zap.Field{
		zap.String("title", result.Metadata.Title),
		zap.String("file", result.Metadata.MediaPath()),
	}
	if result.Subtitles != nil {
		fields = append(fields, zap.String("subtitles", string(result.Subtitles.Kind)))
	}
	s.logger.Info("Download completed", fields...)
	if s.eventLogger != nil {
		s.eventLogger.LogDownloadEvent("download_completed", fields...)
	}

	if record != nil {
		record.MarkCompleted(result.Metadata, result.Subtitles)
		s.updateRecord(record)
	}
	if s.notifier != nil {
		s.notifier.NotifyDownloadCompleted(result.Metadata.Title)
	}
}

func (s *VideoService) fail(record *domain.Download, url string, err *domain.BackendError) error {
	s.logFailure("Download failed", url, err)

	if record != nil {
		record.MarkFailed(err)
		s.updateRecord(record)
	}
	if s.notifier != nil {
		s.notifier.NotifyDownloadFailed(url, err)
	}
	return err
}

func (s *VideoService) updateRecord(record *domain.Download) {
	if err := s.repo.Update(record); err != nil {
		s.logger.Warn("Failed to update download record",
			zap.String("id", record.ID),
			zap.Error(err))
	}
}

func (s *VideoService) logFailure(msg, url string, err error) {
	s.logger.Error(msg, zap.String("url", url), zap.Error(err))
	if s.eventLogger != nil {
		s.eventLogger.LogAppError(msg, zap.String("url", url), zap.Error(err))
	}
}
