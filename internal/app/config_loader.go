package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/yt-extract-go/internal/domain"
)

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.yt-extract")
		v.AddConfigPath("/etc/yt-extract")
	}

	v.SetEnvPrefix("YTEXTRACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// bindEnvKeys registers every known key so AutomaticEnv also applies when
// the key is absent from the config file.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"server.host", "server.port",
		"download.output_dir", "download.output_template", "download.logs_dir", "download.timeout",
		"extractor.binary", "extractor.cookie_file", "extractor.subtitle_lang", "extractor.subtitle_format",
		"captions.fetch_timeout",
		"history.enabled", "history.database_path",
		"notification.enabled", "notification.method",
		"logging.level", "logging.format", "logging.output_path",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Download.OutputDir = expandPath(config.Download.OutputDir)
	config.Download.LogsDir = expandPath(config.Download.LogsDir)
	config.Extractor.CookieFile = expandPath(config.Extractor.CookieFile)
	config.History.DatabasePath = expandPath(config.History.DatabasePath)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Download.OutputTemplate == "" {
		return fmt.Errorf("download output template not configured")
	}

	if config.Download.Timeout < 0 {
		return fmt.Errorf("download timeout cannot be negative")
	}

	if config.Captions.FetchTimeout < 0 {
		return fmt.Errorf("caption fetch timeout cannot be negative")
	}

	if config.Extractor.Binary == "" {
		return fmt.Errorf("extractor binary not configured")
	}

	if config.Extractor.SubtitleLang == "" {
		config.Extractor.SubtitleLang = "en"
	}

	if config.History.Enabled && config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *domain.Config, path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("server.host", config.Server.Host)
	v.Set("server.port", config.Server.Port)
	v.Set("download.output_dir", config.Download.OutputDir)
	v.Set("download.output_template", config.Download.OutputTemplate)
	v.Set("download.logs_dir", config.Download.LogsDir)
	v.Set("download.timeout", config.Download.Timeout.String())
	v.Set("extractor.binary", config.Extractor.Binary)
	v.Set("extractor.cookie_file", config.Extractor.CookieFile)
	v.Set("extractor.subtitle_lang", config.Extractor.SubtitleLang)
	v.Set("extractor.subtitle_format", config.Extractor.SubtitleFormat)
	v.Set("captions.fetch_timeout", config.Captions.FetchTimeout.String())
	v.Set("history.enabled", config.History.Enabled)
	v.Set("history.database_path", config.History.DatabasePath)
	v.Set("notification.enabled", config.Notification.Enabled)
	v.Set("notification.method", config.Notification.Method)
	v.Set("logging.level", config.Logging.Level)
	v.Set("logging.format", config.Logging.Format)
	v.Set("logging.output_path", config.Logging.OutputPath)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
