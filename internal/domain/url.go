package domain

import "regexp"

var youtubeURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.*$`)

// IsValidYouTubeURL reports whether url looks like a YouTube watch or short link.
// Only the host is checked; the path is not inspected.
func IsValidYouTubeURL(url string) bool {
	return youtubeURLPattern.MatchString(url)
}
