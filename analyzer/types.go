package analyzer

import (
	"time"

	"github.com/seo-optimizer/insights/models"
)

// State is the orchestrator's coarse lifecycle state
type State string

const (
	StateIdle      State = "idle"
	StateAnalyzing State = "analyzing"
)

// Outcome labels how a single analyze call ended
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeFallback Outcome = "fallback"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeCanceled Outcome = "canceled"
)

// Config sizes the competitor cache and seeds the random source
type Config struct {
	CacheSize int
	CacheTTL  time.Duration
	// Seed of 0 seeds from the clock
	Seed int64
}

// DefaultConfig mirrors the service defaults
func DefaultConfig() Config {
	return Config{
		CacheSize: 1000,
		CacheTTL:  30 * time.Minute,
	}
}

// CacheStats provides statistics about the competitor cache
type CacheStats struct {
	Entries    int           `json:"entries"`
	MaxEntries int           `json:"maxEntries"`
	TTL        time.Duration `json:"ttl"`
	Hits       int64         `json:"hits"`
	Misses     int64         `json:"misses"`
	Evictions  int64         `json:"evictions"`
}

// Recorder receives analysis and cache events, typically for metrics
type Recorder interface {
	ObserveAnalysis(kind models.Kind, outcome Outcome, elapsed time.Duration)
	ObserveCache(hit bool)
	SetCacheEntries(n int)
}

type noopRecorder struct{}

func (noopRecorder) ObserveAnalysis(models.Kind, Outcome, time.Duration) {}
func (noopRecorder) ObserveCache(bool)                                  {}
func (noopRecorder) SetCacheEntries(int)                                {}
