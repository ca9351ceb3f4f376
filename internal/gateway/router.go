package gateway

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bardlex/minegate/pkg/errors"
)

// NewRouter builds the gin engine serving every gateway route
func NewRouter(h *Handler) (*gin.Engine, error) {
	corsMiddleware, err := h.corsMiddleware()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(requestID(), h.requestLogger(), h.recovery(), corsMiddleware)

	router.GET("/health", h.Health)

	mine := router.Group("/mine")
	{
		limited := h.rateLimited()
		mine.POST("/start", limited, h.StartMining)
		mine.POST("/resume", limited, h.ResumeMining)
		mine.POST("/:session_id/pause", limited, h.PauseMining)
		mine.GET("/:session_id/status", h.GetStatus)
		mine.GET("/:session_id/watch", h.WatchStatus)
	}

	if h.history != nil {
		router.GET("/history", h.ListHistory)
		router.GET("/history/:session_id", h.GetHistory)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Detail: "Not Found",
			Code:   string(errors.ErrorTypeNotFound),
		})
	})

	return router, nil
}

func (h *Handler) corsMiddleware() (gin.HandlerFunc, error) {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", HeaderIdempotencyKey, HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", HeaderRequestID, HeaderIdempotentReplayed},
		MaxAge:        12 * time.Hour,
	}

	if h.allowsAllOrigins() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = h.corsOrigins
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid CORS configuration: %w", err)
	}
	return cors.New(cfg), nil
}

func (h *Handler) allowsAllOrigins() bool {
	if len(h.corsOrigins) == 0 {
		return true
	}
	for _, origin := range h.corsOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// checkOrigin applies the CORS origin list to WebSocket upgrades
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowsAllOrigins() {
		return true
	}
	for _, allowed := range h.corsOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}
