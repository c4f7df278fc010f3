package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// KeyFunc derives the admission key from the inbound request.
type KeyFunc func(c *gin.Context) string

// FixedKey makes every caller share one budget under the given key.
func FixedKey(key string) KeyFunc {
	return func(*gin.Context) string { return key }
}

// ByClientIP gives each caller IP its own budget.
func ByClientIP() KeyFunc {
	return func(c *gin.Context) string { return c.ClientIP() }
}

// Middleware gates every request through the limiter before routing.
// A denial short-circuits with 429; a limiter evaluation failure is a
// server error, never a silent admission.
func Middleware(lim Limiter, keyFn KeyFunc, log *zap.Logger) gin.HandlerFunc {
	if keyFn == nil {
		keyFn = FixedKey(GlobalKey)
	}
	return func(c *gin.Context) {
		key := keyFn(c)

		dec, err := lim.Allow(c.Request.Context(), key)
		if err != nil {
			log.Error("rate limiter check failed",
				zap.String("key", key), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"message": "Internal Server Error"})
			return
		}
		if !dec.Allowed {
			if dec.RetryAfter > 0 {
				secs := int(dec.RetryAfter.Seconds())
				if secs < 1 {
					secs = 1
				}
				c.Header("Retry-After", strconv.Itoa(secs))
			}
			log.Warn("request denied by rate limiter",
				zap.String("key", key),
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"message": "Too Many Requests"})
			return
		}

		c.Next()
	}
}
