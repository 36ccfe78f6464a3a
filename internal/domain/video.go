package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NoSubtitlesAvailable replaces an empty subtitle language list in video info
const NoSubtitlesAvailable = "No subtitles available"

// DownloadRequest is a validated-on-demand download request
type DownloadRequest struct {
	URL        string
	Resolution string // raw path segment, e.g. "720" or "720p"
	Subtitles  bool
}

// Validate checks the request in the order clients observe errors:
// missing url, malformed url, then resolution.
func (r *DownloadRequest) Validate() error {
	if err := ValidateURL(r.URL); err != nil {
		return err
	}
	if _, err := ParseResolution(r.Resolution); err != nil {
		return err
	}
	return nil
}

// Height returns the numeric resolution ceiling
func (r *DownloadRequest) Height() int {
	h, _ := ParseResolution(r.Resolution)
	return h
}

// ValidateURL rejects empty and non-YouTube URLs
func ValidateURL(url string) error {
	if url == "" {
		return NewInputError("url", MsgMissingURL)
	}
	if !IsValidYouTubeURL(url) {
		return NewInputError("url", MsgInvalidURL)
	}
	return nil
}

// ParseResolution parses a pixel height such as "720" or "1080p"
func ParseResolution(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(s), "p"), "P")
	height, err := strconv.Atoi(s)
	if err != nil || height <= 0 {
		return 0, NewInputError("resolution", MsgInvalidResolution)
	}
	return height, nil
}

// SubtitleTrack is a single downloadable rendition of a subtitle language
type SubtitleTrack struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// RequestedSubtitle is a subtitle track selected for download by the backend.
// Filepath is set once the track has been written to disk.
type RequestedSubtitle struct {
	Ext      string `json:"ext"`
	URL      string `json:"url,omitempty"`
	Name     string `json:"name,omitempty"`
	Filepath string `json:"filepath,omitempty"`
}

// TrackMap maps language codes to tracks, keeping the backend's key order
type TrackMap struct {
	langs  []string
	tracks map[string][]SubtitleTrack
}

// Add appends a language, replacing its tracks if already present
func (m *TrackMap) Add(lang string, tracks ...SubtitleTrack) {
	if m.tracks == nil {
		m.tracks = make(map[string][]SubtitleTrack)
	}
	if _, ok := m.tracks[lang]; !ok {
		m.langs = append(m.langs, lang)
	}
	m.tracks[lang] = tracks
}

// Languages returns language codes in insertion order
func (m TrackMap) Languages() []string {
	langs := make([]string, len(m.langs))
	copy(langs, m.langs)
	return langs
}

// Tracks returns the tracks for a language
func (m TrackMap) Tracks(lang string) []SubtitleTrack {
	return m.tracks[lang]
}

// Len returns the number of languages
func (m TrackMap) Len() int {
	return len(m.langs)
}

// UnmarshalJSON decodes a JSON object token by token so key order survives
func (m *TrackMap) UnmarshalJSON(data []byte) error {
	*m = TrackMap{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("track map: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		lang, ok := tok.(string)
		if !ok {
			return fmt.Errorf("track map: expected string key, got %v", tok)
		}
		var tracks []SubtitleTrack
		if err := dec.Decode(&tracks); err != nil {
			return fmt.Errorf("track map: language %q: %w", lang, err)
		}
		m.Add(lang, tracks...)
	}

	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the map as a JSON object in insertion order
func (m TrackMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lang := range m.langs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lang)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.tracks[lang])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// VideoMetadata is the subset of the backend's info document used by the service.
// Optional fields are pointers so a value the backend omits stays null.
// yt-dlp always fills title, substituting a generic one when the site has none.
type VideoMetadata struct {
	ID                 string                        `json:"id"`
	Title              string                        `json:"title"`
	Uploader           *string                       `json:"uploader"`
	Duration           *float64                      `json:"duration"`
	ViewCount          *int64                        `json:"view_count"`
	Description        *string                       `json:"description"`
	UploadDate         *string                       `json:"upload_date"`
	WebpageURL         string                        `json:"webpage_url"`
	Ext                string                        `json:"ext"`
	Filepath           string                        `json:"filepath,omitempty"`
	Filename           string                        `json:"_filename,omitempty"`
	Subtitles          TrackMap                      `json:"subtitles"`
	AutomaticCaptions  TrackMap                      `json:"automatic_captions"`
	RequestedSubtitles map[string]*RequestedSubtitle `json:"requested_subtitles"`
}

// MediaPath returns the final media file location reported by the backend
func (m *VideoMetadata) MediaPath() string {
	if m.Filepath != "" {
		return m.Filepath
	}
	return m.Filename
}

// AvailableSubtitles is a list of subtitle language codes. An empty list is
// encoded as the NoSubtitlesAvailable string.
type AvailableSubtitles []string

func (a AvailableSubtitles) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal(NoSubtitlesAvailable)
	}
	return json.Marshal([]string(a))
}

func (a *AvailableSubtitles) UnmarshalJSON(data []byte) error {
	var langs []string
	if err := json.Unmarshal(data, &langs); err == nil {
		*a = langs
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = nil
	return nil
}

// VideoInfo is the metadata returned by the video info endpoint
type VideoInfo struct {
	Title              string             `json:"title"`
	Author             *string            `json:"author"`
	Length             *float64           `json:"length"`
	Views              *int64             `json:"views"`
	Description        *string            `json:"description"`
	PublishDate        *string            `json:"publish_date"`
	AvailableSubtitles AvailableSubtitles `json:"available_subtitles"`
}

// NewVideoInfo builds a VideoInfo from backend metadata
func NewVideoInfo(meta *VideoMetadata) *VideoInfo {
	return &VideoInfo{
		Title:              meta.Title,
		Author:             meta.Uploader,
		Length:             meta.Duration,
		Views:              meta.ViewCount,
		Description:        meta.Description,
		PublishDate:        meta.UploadDate,
		AvailableSubtitles: AvailableSubtitles(meta.Subtitles.Languages()),
	}
}
