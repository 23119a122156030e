package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	obslogger "github.com/laminkinte/business-development-dashboard-sub000/internal/observability/logger"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/observability/metrics"
	"go.uber.org/zap"
)

// GinMiddleware limits report and load requests per client IP. Without a
// configured redis client the limiter is disabled and requests pass
// through; a redis error also fails open so the dashboard stays usable.
func GinMiddleware(bucket *TokenBucket, m *metrics.Metrics, rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bucket == nil {
			c.Next()
			return
		}

		endpoint := c.FullPath()
		key := "bddash:ratelimit:" + c.ClientIP() + ":" + endpoint

		result, err := bucket.Allow(c.Request.Context(), key, rate, burst)
		if err != nil {
			obslogger.FromContext(c.Request.Context()).Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if !result.Allowed {
			m.RecordRateLimitDenied(c.Request.Context(), endpoint, "token_bucket")
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"type": "rate_limited", "message": "too many requests"},
			})
			return
		}

		m.RecordRateLimitAllowed(c.Request.Context(), endpoint)
		c.Next()
	}
}
