package servehttp

import (
	"net/http"
	"time"

	"inventech/common"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiting applies a token bucket per client address. Buckets are evicted
// after a period of inactivity.
func RateLimiting(rps rate.Limit, burst int) gin.HandlerFunc {
	limiters := cache.New(10*time.Minute, 1*time.Minute)

	return func(c *gin.Context) {
		key := c.ClientIP()
		var limiter *rate.Limiter
		if value, found := limiters.Get(key); found {
			limiter = value.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(rps, burst)
			limiters.Set(key, limiter, cache.DefaultExpiration)
		}

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				&common.ErrorBody{Code: "common.rate_limited", Message: "too many requests"})
			return
		}
		c.Next()
	}
}
