package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/insights/logging"
)

// Context keys the analyze handler sets for StatsMiddleware
const (
	ContextKind     = "analysisKind"
	ContextFallback = "analysisFallback"
)

const saveEvery = 100

// StatsMiddleware tracks visitors and analyze requests
func StatsMiddleware(stats *logging.Statistics, analyzePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		if c.Request.Method != http.MethodPost || c.FullPath() != analyzePath {
			return
		}

		kind := c.GetString(ContextKind)
		fallback := c.GetBool(ContextFallback)
		stats.TrackAnalysis(kind, time.Since(start), c.Writer.Status() >= http.StatusBadRequest, fallback)

		if stats.TotalRequests()%saveEvery == 0 {
			go func() {
				if err := stats.Save(); err != nil {
					slog.Error("failed to save request statistics", "error", err)
				}
			}()
		}
	}
}
