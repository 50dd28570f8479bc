package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// KeyedLimiter is a token bucket per key.
type KeyedLimiter interface {
	Allow(key string, capacity, refillPerSec float64) bool
}

// RateLimit rejects clients (by real IP) that exhaust their bucket.
func RateLimit(l KeyedLimiter, capacity, refillPerSec float64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if l == nil || capacity <= 0 {
				return next(c)
			}
			if !l.Allow(c.RealIP(), capacity, refillPerSec) {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"status":  http.StatusTooManyRequests,
					"message": http.StatusText(http.StatusTooManyRequests),
					"data": []map[string]string{{
						"code":    "ERR_RATE_LIMITED",
						"message": "too many requests, slow down",
					}},
				})
			}
			return next(c)
		}
	}
}
