package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/seo-optimizer/insights/analyzer"
	"github.com/seo-optimizer/insights/models"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAnalysis(models.KindContent, analyzer.OutcomeOK, 2*time.Millisecond)
	m.ObserveAnalysis(models.Kind("podcast"), analyzer.OutcomeFallback, time.Millisecond)
	m.ObserveAnalysis(models.KindContent, analyzer.OutcomeInvalid, 0)
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.SetCacheEntries(7)

	if got := testutil.ToFloat64(m.analyses.WithLabelValues("content", "ok")); got != 1 {
		t.Errorf("expected 1 ok analysis, got %v", got)
	}
	if got := testutil.ToFloat64(m.analyses.WithLabelValues("unknown", "fallback")); got != 1 {
		t.Errorf("expected malformed kind to be labeled unknown, got %v", got)
	}
	if got := testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")); got != 2 {
		t.Errorf("expected 2 misses, got %v", got)
	}
	if got := testutil.ToFloat64(m.cacheEntries); got != 7 {
		t.Errorf("expected 7 entries, got %v", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 2 {
		t.Errorf("expected duration series for 2 kinds, got %d", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := New(reg)

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", gin.WrapH(Handler(reg)))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/health", "200")); got != 3 {
		t.Errorf("expected 3 health requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("expected 1 unmatched request, got %v", got)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics endpoint, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "seo_insights_http_requests_total") {
		t.Errorf("expected request counter in exposition")
	}
}
