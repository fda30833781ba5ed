// Package analyzer scores submitted text and assembles the full analysis
// result: features, scores, keywords, insights and a cached competitor block.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/seo-optimizer/insights/competitor"
	"github.com/seo-optimizer/insights/models"
	"github.com/seo-optimizer/insights/rng"
	"github.com/seo-optimizer/insights/stats"
)

const (
	searchVolumeBase   = 1000
	searchVolumeSpread = 50000
)

// Analyzer is the single entry point for analysis requests. It is safe for
// concurrent use.
type Analyzer struct {
	rnd       rng.Source
	simulator *competitor.Simulator
	cache     *expirable.LRU[string, models.CompetitorAnalysis]
	cacheSize int
	cacheTTL  time.Duration
	validate  *validator.Validate
	stats     *stats.Storage
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time

	inflight  atomic.Int64
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// Option customizes an Analyzer
type Option func(*Analyzer)

// WithStats persists analysis counters to s
func WithStats(s *stats.Storage) Option {
	return func(a *Analyzer) { a.stats = s }
}

// WithRecorder reports analysis and cache events to r
func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.recorder = r
		}
	}
}

// WithClock overrides the clock used for timestamps and seasonal tables
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// WithRandom replaces the seeded random source
func WithRandom(r rng.Source) Option {
	return func(a *Analyzer) { a.rnd = r }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates a new Analyzer instance
func New(cfg Config, opts ...Option) (*Analyzer, error) {
	if cfg.CacheSize <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", cfg.CacheSize)
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", cfg.CacheTTL)
	}

	a := &Analyzer{
		rnd:       rng.New(cfg.Seed),
		cacheSize: cfg.CacheSize,
		cacheTTL:  cfg.CacheTTL,
		validate:  newValidator(),
		recorder:  noopRecorder{},
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.simulator = competitor.NewSimulator(a.rnd)
	a.cache = expirable.NewLRU[string, models.CompetitorAnalysis](cfg.CacheSize, a.onEvict, cfg.CacheTTL)

	return a, nil
}

func (a *Analyzer) onEvict(key string, _ models.CompetitorAnalysis) {
	a.evictions.Add(1)
	a.logger.Debug("competitor cache eviction", "key", key)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateRequest, models.AnalysisRequest{})
	return v
}

// validateRequest enforces the text/url requirement that depends on the kind
func validateRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.AnalysisRequest)
	if req.AnalysisKind == models.KindWebsite {
		if strings.TrimSpace(req.URL) == "" {
			sl.ReportError(req.URL, "url", "URL", "required_for_website", "")
		}
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		sl.ReportError(req.Text, "text", "Text", "required", "")
	}
}

// Validate checks req and returns a *models.ValidationError when it is malformed.
// An unrecognized kind is not a validation failure.
func (a *Analyzer) Validate(req models.AnalysisRequest) error {
	err := a.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &models.ValidationError{Field: "request", Reason: err.Error()}
	}

	fe := fieldErrs[0]
	reason := "is invalid"
	switch fe.Tag() {
	case "required":
		reason = "must not be empty"
	case "required_for_website":
		reason = "is required for website analysis"
	case "url":
		reason = "must be a valid URL"
	}
	return &models.ValidationError{Field: fe.Field(), Reason: reason}
}

// Analyze runs the full pipeline for req
func (a *Analyzer) Analyze(req models.AnalysisRequest) (*models.AnalysisResult, error) {
	return a.AnalyzeWithContext(context.Background(), req)
}

// AnalyzeWithContext runs the full pipeline for req. The only errors returned
// are validation failures and cancellation of ctx; any internal failure
// yields the fallback result instead.
func (a *Analyzer) AnalyzeWithContext(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	if err := a.Validate(req); err != nil {
		a.recorder.ObserveAnalysis(req.AnalysisKind, OutcomeInvalid, 0)
		a.logger.Debug("rejected analysis request", "kind", req.AnalysisKind, "error", err)
		return nil, err
	}

	a.inflight.Add(1)
	defer a.inflight.Add(-1)

	start := time.Now()
	result, err := a.run(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			a.recorder.ObserveAnalysis(req.AnalysisKind, OutcomeCanceled, time.Since(start))
			return nil, err
		}

		a.logger.Error("analysis failed, returning fallback result",
			"kind", req.AnalysisKind,
			"error", err,
		)
		result = Fallback(req, a.now())
		a.incrementStats(1, 0, 0, 1)
		a.recorder.ObserveAnalysis(req.AnalysisKind, OutcomeFallback, time.Since(start))
		return result, nil
	}

	a.incrementStats(1, 0, 0, 0)
	a.recorder.ObserveAnalysis(req.AnalysisKind, OutcomeOK, time.Since(start))
	a.logger.Debug("analysis complete",
		"id", result.ID,
		"kind", result.AnalysisKind,
		"overall", result.OverallScore,
		"cached", result.Cached,
		"elapsed", time.Since(start),
	)
	return result, nil
}

// run executes each stage in order. Panics are converted to errors so the
// caller can substitute the fallback result.
func (a *Analyzer) run(ctx context.Context, req models.AnalysisRequest) (result *models.AnalysisResult, err error) {
	stage := "features"
	defer func() {
		if r := recover(); r != nil {
			err = &models.InternalComputationError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	now := a.now()
	kind := req.AnalysisKind

	features := ExtractFeatures(req.Text)

	stage = "scores"
	scores, err := CalculateScores(a.rnd, req.Text, kind)
	if err != nil {
		return nil, &models.InternalComputationError{Stage: stage, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stage = "keywords"
	keywords, err := GenerateKeywords(kind, req.Text, now)
	if err != nil {
		return nil, &models.InternalComputationError{Stage: stage, Err: err}
	}
	hashtags, err := GenerateHashtags(kind, req.Text)
	if err != nil {
		return nil, &models.InternalComputationError{Stage: stage, Err: err}
	}
	trending, err := GenerateTrendingTags(kind, req.Text, now)
	if err != nil {
		return nil, &models.InternalComputationError{Stage: stage, Err: err}
	}

	level := CompetitionLevelFor(scores.Overall)

	stage = "insights"
	insights, err := GenerateInsights(InsightInput{
		Scores:           scores,
		CompetitionLevel: level,
		Features:         features,
		Kind:             kind,
		URL:              req.URL,
	})
	if err != nil {
		return nil, &models.InternalComputationError{Stage: stage, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stage = "competitors"
	block, cached := a.competitorAnalysis(competitor.Input{
		Kind:       kind,
		Scores:     scores,
		Domain:     domainOf(req.URL),
		Keywords:   IndustrySignals(kind, keywords),
		TextLength: features.Length,
	})

	return &models.AnalysisResult{
		ID:                 uuid.NewString(),
		AnalysisKind:       kind,
		URL:                req.URL,
		AnalyzedAt:         now,
		OverallScore:       scores.Overall,
		KeywordDensity:     scores.KeywordDensity,
		ReadabilityScore:   scores.Readability,
		TrendingScore:      scores.Trending,
		CompetitionLevel:   level,
		SearchVolume:       searchVolumeBase + a.rnd.Intn(searchVolumeSpread),
		Keywords:           keywords,
		Hashtags:           hashtags,
		TrendingTags:       trending,
		Features:           features,
		CompetitorAnalysis: block,
		Insights:           insights,
		Cached:             cached,
	}, nil
}

// competitorAnalysis returns the cached block for the input's key or
// simulates and caches a new one. A simulator failure degrades to the static
// block, which is never cached.
func (a *Analyzer) competitorAnalysis(in competitor.Input) (models.CompetitorAnalysis, bool) {
	industry := competitor.DetectIndustry(in.Domain, in.Keywords)
	key := cacheKey(in.Kind, industry, in.Scores, in.TextLength)

	if block, ok := a.cache.Get(key); ok {
		a.hits.Add(1)
		a.incrementStats(0, 1, 0, 0)
		a.recorder.ObserveCache(true)
		return block.Clone(), true
	}

	a.misses.Add(1)
	a.incrementStats(0, 0, 1, 0)
	a.recorder.ObserveCache(false)

	block, err := a.simulator.Simulate(in)
	if err != nil {
		a.logger.Warn("competitor simulation failed, using baseline block",
			"kind", in.Kind,
			"error", err,
		)
		return competitor.Fallback(in.Scores.Overall), false
	}

	a.cache.Add(key, block.Clone())
	a.recorder.SetCacheEntries(a.cache.Len())
	return block, false
}

// cacheKey scopes the score fingerprint by kind, industry and text-length
// band so kind-specific and length-gated strings never leak between requests
func cacheKey(kind models.Kind, industry competitor.Industry, s models.Scores, textLength int) string {
	return string(kind) + "|" + industry.String() + "|" + Fingerprint(s) + "|" + competitor.LengthBand(textLength)
}

// domainOf returns the lower-cased host of raw without a leading "www."
func domainOf(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func (a *Analyzer) incrementStats(analyses, hits, misses, fallbacks int) {
	if a.stats != nil {
		a.stats.IncrementStats(analyses, hits, misses, fallbacks)
	}
}

// GetCacheStats returns statistics about the competitor cache
func (a *Analyzer) GetCacheStats() CacheStats {
	return CacheStats{
		Entries:    a.cache.Len(),
		MaxEntries: a.cacheSize,
		TTL:        a.cacheTTL,
		Hits:       a.hits.Load(),
		Misses:     a.misses.Load(),
		Evictions:  a.evictions.Load(),
	}
}

// IsCached reports whether a competitor block for the given key is held and
// not expired
func (a *Analyzer) IsCached(kind models.Kind, industry competitor.Industry, s models.Scores, textLength int) bool {
	return a.cache.Contains(cacheKey(kind, industry, s, textLength))
}

// ClearCache drops every cached competitor block
func (a *Analyzer) ClearCache() {
	a.cache.Purge()
	a.recorder.SetCacheEntries(0)
	a.logger.Info("competitor cache cleared")
}

// State reports whether any analysis is currently running
func (a *Analyzer) State() State {
	if a.inflight.Load() > 0 {
		return StateAnalyzing
	}
	return StateIdle
}

// GetStats returns the statistics storage instance, which may be nil
func (a *Analyzer) GetStats() *stats.Storage {
	return a.stats
}

// Shutdown flushes statistics and drops the cache
func (a *Analyzer) Shutdown() error {
	if a == nil {
		return nil
	}

	if a.stats != nil {
		if err := a.stats.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown stats storage: %w", err)
		}
	}

	a.cache.Purge()
	return nil
}
