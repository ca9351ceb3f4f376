package gateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bardlex/minegate/pkg/errors"
	"github.com/bardlex/minegate/pkg/log"
)

const rateLimitWindow = time.Minute

// requestID keeps an incoming X-Request-ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(log.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// routeOf returns the matched route template, or "unmatched"
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// requestLogger logs one line per request and feeds the request metric
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)
		route := routeOf(c)
		status := c.Writer.Status()

		h.logger.WithContext(c.Request.Context()).
			LogRequest(c.Request.Method, route, status, duration, c.ClientIP())

		if h.metrics != nil {
			h.metrics.WriteRequestMetric(c.Request.Method, route, status, duration)
		}
	}
}

// recovery turns panics into a generic 500 body
func (h *Handler) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.logger.WithContext(c.Request.Context()).Error("panic recovered",
			"route", routeOf(c),
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Detail: MsgInternal,
			Code:   string(errors.ErrorTypeInternal),
		})
	})
}

// rateLimited caps mutating requests per client IP. Limiter failures let the
// request through.
func (h *Handler) rateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.limiter == nil || h.rateLimit <= 0 {
			c.Next()
			return
		}

		allowed, err := h.limiter.Allow(c.Request.Context(), c.ClientIP(), h.rateLimit, rateLimitWindow)
		if err != nil {
			h.logger.WithContext(c.Request.Context()).WithError(err).Warn("rate limiter failed")
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", "60")
			h.respondError(c, errors.New(errors.ErrorTypeRateLimited, "rate_limit",
				"rate limit exceeded, try again later"))
			return
		}

		c.Next()
	}
}
