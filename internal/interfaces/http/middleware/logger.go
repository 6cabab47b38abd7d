package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"motorhub.backend/pkg/logger"
)

// LoggerMiddleware writes one structured entry per request, tagged with the
// matched route and any errors the handlers attached. Paths in skip are
// health probes and scrapes and are not logged.
func LoggerMiddleware(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		start := time.Now()

		c.Next()

		entry := logger.RequestEntry{
			Method:   c.Request.Method,
			Route:    c.FullPath(),
			Path:     c.Request.URL.Path,
			Status:   c.Writer.Status(),
			Latency:  time.Since(start),
			ClientIP: c.ClientIP(),
		}
		if raw := c.Request.URL.RawQuery; raw != "" {
			entry.Path += "?" + raw
		}
		for _, e := range c.Errors {
			entry.Errors = append(entry.Errors, e.Error())
		}
		// the auth middleware replaces the request, so this context carries the actor id
		logger.LogRequest(c.Request.Context(), entry)
	}
}
