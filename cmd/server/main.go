package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/yt-extract-go/api"
	"github.com/yourusername/yt-extract-go/api/handlers"
	"github.com/yourusername/yt-extract-go/internal/app"
	"github.com/yourusername/yt-extract-go/internal/domain"
	"github.com/yourusername/yt-extract-go/internal/infrastructure"
	"github.com/yourusername/yt-extract-go/pkg/logger"
)

var configPath = flag.String("config", "", "Path to config file (default: search ./configs, ~/.yt-extract, /etc/yt-extract)")

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := app.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	// Category logs are written only when a logs directory is configured
	var multiLog *logger.MultiLogger
	if config.Download.LogsDir != "" {
		multiLog, err = logger.NewMultiLogger(logger.MultiLoggerConfig{
			Level:   config.Logging.Level,
			LogsDir: config.Download.LogsDir,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize event logger: %w", err)
		}
		defer multiLog.Close()
	}

	log.Info("Starting yt-extract server",
		zap.String("version", handlers.Version),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("output_dir", config.Download.OutputDir),
		zap.Bool("history", config.History.Enabled))

	extractor := infrastructure.NewYTDLPExtractor(&config.Extractor, &config.Download, multiLog)
	if err := extractor.Available(); err != nil {
		log.Warn("yt-dlp binary not available, requests will fail until it is installed",
			zap.String("binary", config.Extractor.Binary),
			zap.Error(err))
	}

	resolver := app.NewSubtitleResolver(
		infrastructure.NewHTTPCaptionFetcher(config.Captions.FetchTimeout),
		config.Extractor.SubtitleLang,
	)

	opts := []app.ServiceOption{
		app.WithNotifier(infrastructure.NewNotificationService(&config.Notification, log)),
	}
	if multiLog != nil {
		opts = append(opts, app.WithEventLogger(multiLog))
	}

	var history domain.DownloadRepository
	if config.History.Enabled {
		repo, err := openHistory(config.History.DatabasePath)
		if err != nil {
			return err
		}
		defer repo.Close()
		history = repo
		opts = append(opts, app.WithHistory(repo))
	}

	service := app.NewVideoService(extractor, resolver, log, opts...)

	gin.SetMode(gin.ReleaseMode)
	router := api.SetupRouter(api.RouterDeps{
		Service: service,
		Backend: extractor,
		Binary:  config.Extractor.Binary,
		History: history,
		LogsDir: config.Download.LogsDir,
		Logger:  log,
	})

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Received shutdown signal")
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}

func openHistory(dbPath string) (*infrastructure.SQLiteDownloadRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	repo, err := infrastructure.NewSQLiteDownloadRepository(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history: %w", err)
	}
	return repo, nil
}
