package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// DefaultSubmitRate is the per-IP rate allowed on the form submission routes.
const DefaultSubmitRate = rate.Limit(10)

// MsgTooManyAttempts is returned when a client exceeds the limit.
const MsgTooManyAttempts = "Too many attempts. Please try again later."

// RateLimiter limits form submissions per client IP using echo's in-memory
// store. The burst equals the rate.
func RateLimiter(limit rate.Limit) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		// NewRateLimiterMemoryStore is suitable for single-instance deployments.
		Store: middleware.NewRateLimiterMemoryStore(limit),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			FromContext(c.Request().Context()).Warn("Rate limit exceeded", "client", identifier)
			return c.String(http.StatusTooManyRequests, MsgTooManyAttempts)
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
