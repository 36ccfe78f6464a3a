package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/yt-extract-go/api/handlers"
	"github.com/yourusername/yt-extract-go/api/middleware"
	"github.com/yourusername/yt-extract-go/internal/domain"
)

// RouterDeps holds the collaborators served by the HTTP router
type RouterDeps struct {
	Service handlers.VideoService
	Backend handlers.BackendChecker
	Binary  string
	History domain.DownloadRepository // nil disables the history routes
	LogsDir string                    // empty disables the log routes
	Logger  *zap.Logger
}

// SetupRouter sets up the HTTP router
func SetupRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(deps.Backend, deps.Binary)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	videoHandler := handlers.NewVideoHandler(deps.Service, deps.Logger)
	router.POST("/download/:resolution", videoHandler.Download)
	router.POST("/video_info", videoHandler.VideoInfo)

	v1 := router.Group("/api/v1")
	if deps.History != nil {
		downloadHandler := handlers.NewDownloadHandler(deps.History, deps.Logger)
		downloads := v1.Group("/downloads")
		{
			downloads.GET("", downloadHandler.ListDownloads)
			downloads.GET("/stats", downloadHandler.GetStats)
			downloads.GET("/:id", downloadHandler.GetDownload)
		}
	}
	if deps.LogsDir != "" {
		logHandler := handlers.NewLogHandler(deps.LogsDir)
		v1.GET("/logs/:category", logHandler.GetLogs)
	}

	return router
}
