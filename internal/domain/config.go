package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	Extractor    ExtractorConfig    `mapstructure:"extractor"`
	Captions     CaptionsConfig     `mapstructure:"captions"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	OutputDir      string        `mapstructure:"output_dir"`
	OutputTemplate string        `mapstructure:"output_template"`
	LogsDir        string        `mapstructure:"logs_dir"`
	Timeout        time.Duration `mapstructure:"timeout"` // 0 disables the limit
}

// ExtractorConfig contains yt-dlp specific configuration
type ExtractorConfig struct {
	Binary         string `mapstructure:"binary"`
	CookieFile     string `mapstructure:"cookie_file"`
	SubtitleLang   string `mapstructure:"subtitle_lang"`
	SubtitleFormat string `mapstructure:"subtitle_format"`
}

// CaptionsConfig contains configuration for fetching automatic captions
type CaptionsConfig struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"` // 0 disables the limit
}

// HistoryConfig contains download history configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 5000,
		},
		Download: DownloadConfig{
			OutputDir:      ".",
			OutputTemplate: "%(title)s.%(ext)s",
			LogsDir:        "$HOME/.yt-extract/logs",
			Timeout:        0,
		},
		Extractor: ExtractorConfig{
			Binary:         "yt-dlp",
			CookieFile:     "",
			SubtitleLang:   "en",
			SubtitleFormat: "srt/best",
		},
		Captions: CaptionsConfig{
			FetchTimeout: 0,
		},
		History: HistoryConfig{
			Enabled:      false,
			DatabasePath: "$HOME/.yt-extract/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
