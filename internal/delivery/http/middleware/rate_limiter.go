package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/repository"
)

const rateWindow = time.Minute

// RateLimiter returns a middleware that enforces a fixed per-client window.
// maxRequests is the maximum number of requests allowed per minute per client IP.
// If the counter itself fails the request is let through.
func RateLimiter(counter repository.WindowCounter, maxRequests int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxRequests <= 0 || counter == nil {
			c.Next()
			return
		}

		n, err := counter.Incr(c.Request.Context(), c.ClientIP(), rateWindow)
		if err != nil {
			logger.Warn("Rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}

		if n > int64(maxRequests) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Rate limit exceeded. Maximum %d requests per minute.", maxRequests),
			})
			return
		}

		c.Next()
	}
}
