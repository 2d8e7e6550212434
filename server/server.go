package server

import (
	"context"
	"net/http"
	"time"

	"debatearena/config"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Server wraps the gin engine in an http.Server with graceful shutdown
type Server struct {
	engine *gin.Engine
	srv    *http.Server
}

// New creates a new HTTP server with all routes registered
func New(handler *Handler) *Server {
	cfg := config.Get()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	handler.RegisterRoutes(api)

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      engine,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Start begins serving. Blocks until the server stops.
func (s *Server) Start() error {
	log.WithField("addr", s.srv.Addr).Info("HTTP server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("Shutting down HTTP server")
	return s.srv.Shutdown(ctx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})

		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Debug("Request handled")
		}
	}
}
