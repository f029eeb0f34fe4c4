// Package api exposes the engine's collaborator surface over a local HTTP API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flowdrop/flowdrop-go/api/controllers"
	"github.com/flowdrop/flowdrop-go/api/middlewares"
	"github.com/flowdrop/flowdrop-go/api/models"
	"github.com/flowdrop/flowdrop-go/api/progresshub"
	"github.com/flowdrop/flowdrop-go/metrics"
	"github.com/flowdrop/flowdrop-go/tool"
	"github.com/flowdrop/flowdrop-go/transfer"
	"github.com/flowdrop/flowdrop-go/types"
)

// Server is the HTTP front of the upload engine.
type Server struct {
	port       int
	cfg        types.AppConfig
	engineCore *transfer.Engine
	hub        *progresshub.Hub
	thumbnails *models.ThumbnailCache

	engine *gin.Engine
	server *http.Server
	mu     sync.RWMutex
}

// NewServer creates an API server over the given engine and hub.
func NewServer(cfg types.AppConfig, engineCore *transfer.Engine, hub *progresshub.Hub, thumbnails *models.ThumbnailCache) *Server {
	return &Server{
		port:       cfg.Port,
		cfg:        cfg,
		engineCore: engineCore,
		hub:        hub,
		thumbnails: thumbnails,
	}
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middlewares.AllowAllCORS())
	engine.Use(metrics.GinMiddleware())
	engine.Use(gin.Recovery())

	filesCtrl := controllers.NewFilesController(s.engineCore)
	uploadCtrl := controllers.NewUploadController(s.engineCore, s.thumbnails)
	sessionCtrl := controllers.NewSessionController(s.engineCore)
	thumbnailCtrl := controllers.NewThumbnailController(s.thumbnails)
	statusCtrl := controllers.NewStatusController(s.engineCore, s.hub)

	limit := middlewares.RateLimit(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst)

	v1 := engine.Group("/api/flowdrop/v1", middlewares.OnlyAllowLocal)
	{
		v1.GET("/files", filesCtrl.HandleList)
		v1.GET("/files/:id", filesCtrl.HandleGet)
		v1.POST("/files", limit, uploadCtrl.HandleAddFiles)
		v1.DELETE("/files/:id", limit, filesCtrl.HandleRemove)
		v1.POST("/files/clear-completed", limit, filesCtrl.HandleClearCompleted)
		v1.GET("/session", sessionCtrl.HandleCurrentSession)
		v1.GET("/storage", sessionCtrl.HandleStorage)
		v1.GET("/progress-ws", progresshub.HandleProgressWS(s.hub))
		v1.GET("/thumbnail/:token", thumbnailCtrl.HandleThumbnail)
		v1.GET("/create-qr-code", controllers.GenerateQRCode)
		v1.GET("/status", statusCtrl.HandleStatus)
	}

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	engine := s.setupRoutes()

	s.mu.Lock()
	s.engine = engine
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: engine,
	}
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting API server on http://127.0.0.1:%d", s.port)
	return s.server.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
