package app

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/yourusername/yt-extract-go/internal/domain"
)

// subtitleRule inspects metadata and either produces an outcome or returns
// nil to let the next rule run
type subtitleRule func(ctx context.Context, meta *domain.VideoMetadata) (*domain.SubtitleOutcome, error)

// SubtitleResolver picks exactly one subtitle outcome for a finished download
type SubtitleResolver struct {
	fetcher  domain.CaptionFetcher
	lang     string
	readFile func(name string) ([]byte, error)
}

// NewSubtitleResolver creates a resolver for the given language code
func NewSubtitleResolver(fetcher domain.CaptionFetcher, lang string) *SubtitleResolver {
	if lang == "" {
		lang = "en"
	}
	return &SubtitleResolver{
		fetcher:  fetcher,
		lang:     lang,
		readFile: os.ReadFile,
	}
}

// Resolve runs the rules in priority order. The first rule that matches wins.
func (r *SubtitleResolver) Resolve(ctx context.Context, meta *domain.VideoMetadata) (*domain.SubtitleOutcome, error) {
	rules := []subtitleRule{
		r.requestedSubtitle,
		r.automaticCaption,
	}

	for _, rule := range rules {
		outcome, err := rule(ctx, meta)
		if err != nil {
			return nil, err
		}
		if outcome != nil {
			return outcome, nil
		}
	}

	return domain.SubtitleNotice(domain.SubtitleNoEnglishAuto), nil
}

// requestedSubtitle reads the subtitle file written next to the media
func (r *SubtitleResolver) requestedSubtitle(_ context.Context, meta *domain.VideoMetadata) (*domain.SubtitleOutcome, error) {
	sub, ok := meta.RequestedSubtitles[r.lang]
	if !ok || sub == nil {
		return nil, nil
	}

	if sub.Filepath == "" {
		return domain.SubtitleNotice(domain.SubtitleNotFound), nil
	}

	data, err := r.readFile(sub.Filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.SubtitleNotice(domain.SubtitleManualMissing), nil
		}
		return nil, domain.NewBackendError("ReadSubtitle", err)
	}

	return domain.ManualSubtitle(string(data)), nil
}

// automaticCaption fetches the first track of the first matching auto-caption language
func (r *SubtitleResolver) automaticCaption(ctx context.Context, meta *domain.VideoMetadata) (*domain.SubtitleOutcome, error) {
	var lang string
	for _, candidate := range meta.AutomaticCaptions.Languages() {
		if strings.HasPrefix(candidate, r.lang) {
			lang = candidate
			break
		}
	}
	if lang == "" {
		return nil, nil
	}

	tracks := meta.AutomaticCaptions.Tracks(lang)
	if len(tracks) == 0 || tracks[0].URL == "" {
		return domain.SubtitleNotice(domain.SubtitleAutomaticNoURL), nil
	}

	resp, err := r.fetcher.Fetch(ctx, tracks[0].URL)
	if err != nil {
		return nil, domain.NewBackendError("FetchCaption", err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.SubtitleNotice(domain.SubtitleAutomaticFailed), nil
	}

	return domain.AutomaticSubtitle(resp.Body), nil
}
