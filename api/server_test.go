package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/seo-optimizer/insights/analyzer"
	"github.com/seo-optimizer/insights/logging"
	"github.com/seo-optimizer/insights/metrics"
	"github.com/seo-optimizer/insights/models"
	"github.com/seo-optimizer/insights/rng"
	"github.com/seo-optimizer/insights/stats"
)

type testEnv struct {
	server   *Server
	analyzer *analyzer.Analyzer
	stats    *logging.Statistics
}

func setupTestServer(t *testing.T, opts Options) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	storage, err := stats.NewStorage(dir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	a, err := analyzer.New(analyzer.DefaultConfig(),
		analyzer.WithRandom(rng.Fixed(0)),
		analyzer.WithStats(storage),
		analyzer.WithRecorder(m),
	)
	if err != nil {
		t.Fatalf("Failed to create analyzer: %v", err)
	}
	t.Cleanup(func() { a.Shutdown() })

	reqStats, err := logging.New(filepath.Join(dir, "statistics.json"))
	if err != nil {
		t.Fatalf("Failed to create statistics: %v", err)
	}

	if opts.RateLimitRPS == 0 {
		opts.RateLimitRPS = 1000
	}
	if opts.RateLimitBurst == 0 {
		opts.RateLimitBurst = 1000
	}
	if opts.CorsOrigins == nil {
		opts.CorsOrigins = []string{"*"}
	}

	return &testEnv{
		server:   NewServer(a, reqStats, m, reg, opts, nil),
		analyzer: a,
		stats:    reqStats,
	}
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	env := setupTestServer(t, Options{})

	w := env.do(http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if body["status"] != "ok" || body["state"] != string(analyzer.StateIdle) {
		t.Errorf("unexpected body %v", body)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	env := setupTestServer(t, Options{})

	w := env.do(http.MethodPost, "/api/analyze", models.AnalysisRequest{
		Text:         "<h1>Title</h1> SEO content with links http://a.com and 5 stats. Is this good?",
		AnalysisKind: models.KindContent,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if result.ID == "" || result.AnalysisKind != models.KindContent {
		t.Errorf("unexpected result header %+v", result)
	}
	if !result.Features.HasHeaders || result.Features.QuestionCount != 1 {
		t.Errorf("unexpected features %+v", result.Features)
	}
	if len(result.Keywords) == 0 || len(result.CompetitorAnalysis.TopCompetitors) == 0 {
		t.Errorf("result not populated: %s", w.Body.String())
	}
	if env.stats.TotalRequests() != 1 {
		t.Errorf("expected request to be tracked, got %d", env.stats.TotalRequests())
	}
}

func TestAnalyzeValidationError(t *testing.T) {
	env := setupTestServer(t, Options{})

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"empty text", models.AnalysisRequest{Text: "", AnalysisKind: models.KindContent}, "text"},
		{"website without url", models.AnalysisRequest{AnalysisKind: models.KindWebsite}, "url"},
		{"malformed json", `{"text": `, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/analyze", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("Failed to decode: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error message")
			}
			if body["field"] != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, body["field"])
			}
		})
	}
}

func TestAnalyzeFallbackEndpoint(t *testing.T) {
	env := setupTestServer(t, Options{})

	w := env.do(http.MethodPost, "/api/analyze", models.AnalysisRequest{Text: "text", AnalysisKind: "podcast"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var result models.AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if !result.Fallback || result.CompetitorAnalysis.RealTimeData {
		t.Errorf("expected fallback result, got %+v", result)
	}

	summary := env.stats.GetStatistics(true)
	if summary["fallbacks"].(int) != 1 {
		t.Errorf("expected fallback to be tracked, got %v", summary["fallbacks"])
	}
}

func TestCacheEndpoints(t *testing.T) {
	env := setupTestServer(t, Options{})
	req := models.AnalysisRequest{Text: "Cache me", AnalysisKind: models.KindKeyword}

	env.do(http.MethodPost, "/api/analyze", req)
	w := env.do(http.MethodPost, "/api/analyze", req)
	var second models.AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if !second.Cached {
		t.Error("expected second result to be served from cache")
	}

	w = env.do(http.MethodGet, "/api/cache", nil)
	var cs analyzer.CacheStats
	if err := json.Unmarshal(w.Body.Bytes(), &cs); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if cs.Entries != 1 || cs.Hits != 1 || cs.Misses != 1 {
		t.Errorf("unexpected cache stats %+v", cs)
	}

	w = env.do(http.MethodDelete, "/api/cache", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if env.analyzer.GetCacheStats().Entries != 0 {
		t.Error("expected cache to be empty after DELETE")
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	env := setupTestServer(t, Options{DevMode: true})
	env.do(http.MethodPost, "/api/analyze", models.AnalysisRequest{Text: "hello", AnalysisKind: models.KindContent})

	w := env.do(http.MethodGet, "/api/statistics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	for _, key := range []string{"totalRequests", "popularKinds", "currentMonth", "months"} {
		if _, ok := body[key]; !ok {
			t.Errorf("expected %q in statistics, got %s", key, w.Body.String())
		}
	}

	var month stats.MonthlyStats
	if err := json.Unmarshal(body["currentMonth"], &month); err != nil {
		t.Fatalf("Failed to decode month: %v", err)
	}
	if month.Analyses != 1 || month.CacheMisses != 1 {
		t.Errorf("unexpected monthly stats %+v", month)
	}
}

func TestAnalyzeCanceled(t *testing.T) {
	env := setupTestServer(t, Options{AnalyzeTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body, _ := json.Marshal(models.AnalysisRequest{Text: "slow", AnalysisKind: models.KindContent})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestRateLimitedAPI(t *testing.T) {
	env := setupTestServer(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 1})

	if w := env.do(http.MethodGet, "/api/health", nil); w.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", w.Code)
	}
	if w := env.do(http.MethodGet, "/api/health", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	// metrics scraping is not rate limited
	if w := env.do(http.MethodGet, "/metrics", nil); w.Code != http.StatusOK {
		t.Fatalf("expected metrics to be served, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestServer(t, Options{})
	env.do(http.MethodPost, "/api/analyze", models.AnalysisRequest{Text: "hello", AnalysisKind: models.KindContent})

	w := env.do(http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, want := range []string{"seo_insights_analyses_total", "seo_insights_competitor_cache_lookups_total"} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("expected %s in exposition", want)
		}
	}
}
