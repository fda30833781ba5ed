// Package api is the JSON HTTP surface of the analysis engine.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/seo-optimizer/insights/analyzer"
	"github.com/seo-optimizer/insights/logging"
	"github.com/seo-optimizer/insights/metrics"
	"github.com/seo-optimizer/insights/middleware"
	"github.com/seo-optimizer/insights/models"
)

const analyzePath = "/api/analyze"

// Options configures the HTTP surface
type Options struct {
	DevMode        bool
	CorsOrigins    []string
	AnalyzeTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server wires the analyzer into gin routes
type Server struct {
	analyzer *analyzer.Analyzer
	stats    *logging.Statistics
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	limiter  *middleware.RateLimiter
	logger   *slog.Logger
	opts     Options
	router   *gin.Engine
}

// NewServer builds the router. m and gatherer may be nil to disable metrics.
func NewServer(a *analyzer.Analyzer, stats *logging.Statistics, m *metrics.Metrics, gatherer prometheus.Gatherer, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		analyzer: a,
		stats:    stats,
		metrics:  m,
		gatherer: gatherer,
		limiter:  middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		logger:   logger,
		opts:     opts,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()

	r.Use(middleware.ErrorHandler(s.logger))
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.CORS(s.opts.CorsOrigins))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
	}
	if s.stats != nil {
		r.Use(middleware.StatsMiddleware(s.stats, analyzePath))
	}

	api := r.Group("/api")
	api.Use(s.limiter.RateLimit())
	{
		api.GET("/health", s.health)
		api.POST("/analyze", s.analyze)
		api.GET("/statistics", s.statistics)
		api.GET("/cache", s.cacheStats)
		api.DELETE("/cache", s.clearCache)
	}

	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(s.gatherer)))
	}

	return r
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Limiter exposes the rate limiter so the caller can schedule cleanup
func (s *Server) Limiter() *middleware.RateLimiter {
	return s.limiter
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"state":  s.analyzer.State(),
	})
}

func (s *Server) analyze(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Malformed request body",
		})
		return
	}

	kind := "other"
	if req.AnalysisKind.Valid() {
		kind = string(req.AnalysisKind)
	}
	c.Set(middleware.ContextKind, kind)

	ctx := c.Request.Context()
	if s.opts.AnalyzeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.AnalyzeTimeout)
		defer cancel()
	}

	result, err := s.analyzer.AnalyzeWithContext(ctx, req)
	if err != nil {
		var verr *models.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": verr.Error(),
				"field": verr.Field,
			})
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Analysis did not complete in time",
			})
		default:
			s.logger.Error("unexpected analyze error", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to analyze input",
			})
		}
		return
	}

	c.Set(middleware.ContextFallback, result.Fallback)
	c.JSON(http.StatusOK, result)
}

func (s *Server) statistics(c *gin.Context) {
	out := gin.H{}
	if s.stats != nil {
		for k, v := range s.stats.GetStatistics(s.opts.DevMode) {
			out[k] = v
		}
	}
	if storage := s.analyzer.GetStats(); storage != nil {
		out["currentMonth"] = storage.GetCurrentStats()
		if s.opts.DevMode {
			out["months"] = storage.GetAllMonths()
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) cacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.analyzer.GetCacheStats())
}

func (s *Server) clearCache(c *gin.Context) {
	s.analyzer.ClearCache()
	c.JSON(http.StatusOK, gin.H{
		"status": "cleared",
	})
}
