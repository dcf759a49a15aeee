// Package http serves the placeholder opening-narration API.
package http

import (
	"net/http"
	"time"

	"github.com/KirkDiggler/mythweaver/internal/clients/opening"
	"github.com/KirkDiggler/mythweaver/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OpeningHandlerConfig holds the handler's dependencies
type OpeningHandlerConfig struct {
	Logger *zap.Logger
}

// OpeningHandler answers POST /api/opening
type OpeningHandler struct {
	log *zap.Logger
}

// NewOpeningHandler creates the handler
func NewOpeningHandler(cfg *OpeningHandlerConfig) *OpeningHandler {
	var l *zap.Logger
	if cfg != nil {
		l = cfg.Logger
	}
	return &OpeningHandler{log: logger.OrNop(l).Named("opening")}
}

// Register mounts the handler. Every method other than POST gets 405.
func (h *OpeningHandler) Register(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, opening.ErrorResponse{Error: "Method not allowed"})
	})
	r.POST(opening.Path, h.Opening)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Opening writes the placeholder scene for the posted universe
func (h *OpeningHandler) Opening(c *gin.Context) {
	var req opening.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug("rejecting opening request", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, opening.ErrorResponse{Error: "Universe description required"})
		return
	}

	text, err := opening.Generate(req.Universe)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, opening.ErrorResponse{Error: "Universe description required"})
		return
	}

	c.JSON(http.StatusOK, opening.Response{Opening: text})
}

// NewRouter builds a gin engine with zap request logging and the opening routes
func NewRouter(log *zap.Logger) *gin.Engine {
	log = logger.OrNop(log)

	r := gin.New()
	r.Use(gin.Recovery(), ZapLogger(log))
	NewOpeningHandler(&OpeningHandlerConfig{Logger: log}).Register(r)
	return r
}

// ZapLogger logs each request except health and metrics probes
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}

		status := c.Writer.Status()
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("Server error", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("Client error", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}
