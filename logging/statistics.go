package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Statistics represents the collected request statistics
type Statistics struct {
	UniqueVisitors   map[string]time.Time `json:"uniqueVisitors"`   // IP -> last visit
	AnalysisRequests int                  `json:"analysisRequests"` // total analyze calls
	ErrorCount       int                  `json:"errorCount"`
	FallbackCount    int                  `json:"fallbackCount"`
	KindCounts       map[string]int       `json:"kindCounts"` // analysisKind -> count
	AverageLatency   float64              `json:"averageLatency"` // milliseconds
	TotalLatency     float64              `json:"totalLatency"`
	LastPersisted    time.Time            `json:"lastPersisted"`

	path  string
	mutex sync.RWMutex
	now   func() time.Time
}

// KindCount pairs an analysis kind with how often it was requested
type KindCount struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// New creates statistics persisted at path, loading any previous state
func New(path string) (*Statistics, error) {
	s := &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		KindCounts:     make(map[string]int),
		path:           path,
		now:            time.Now,
	}
	if err := s.Load(); err != nil {
		return s, err
	}
	return s, nil
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = s.now()
}

// TrackAnalysis records an analyze request. Unknown kinds are grouped under
// "other" so the map stays bounded.
func (s *Statistics) TrackAnalysis(kind string, latency time.Duration, hasError, fallback bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AnalysisRequests++
	if kind == "" {
		kind = "other"
	}
	s.KindCounts[kind]++

	if hasError {
		s.ErrorCount++
	}
	if fallback {
		s.FallbackCount++
	}

	s.TotalLatency += float64(latency.Microseconds()) / 1000
	s.AverageLatency = s.TotalLatency / float64(s.AnalysisRequests)
}

// TotalRequests returns the number of tracked analyze requests
func (s *Statistics) TotalRequests() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.AnalysisRequests
}

func (s *Statistics) uniqueVisitorsLocked() int {
	count := 0
	cutoff := s.now().Add(-24 * time.Hour)
	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}
	return count
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.uniqueVisitorsLocked()
}

func (s *Statistics) popularKindsLocked(n int) []KindCount {
	out := make([]KindCount, 0, len(s.KindCounts))
	for kind, count := range s.KindCounts {
		out = append(out, KindCount{Kind: kind, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// GetPopularKinds returns the n most requested analysis kinds
func (s *Statistics) GetPopularKinds(n int) []KindCount {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.popularKindsLocked(n)
}

func (s *Statistics) errorRateLocked() float64 {
	if s.AnalysisRequests == 0 {
		return 0
	}
	return float64(s.ErrorCount) / float64(s.AnalysisRequests) * 100
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.errorRateLocked()
}

// Prune drops visitors not seen for longer than maxAge
func (s *Statistics) Prune(maxAge time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := s.now().Add(-maxAge)
	removed := 0
	for ip, lastVisit := range s.UniqueVisitors {
		if lastVisit.Before(cutoff) {
			delete(s.UniqueVisitors, ip)
			removed++
		}
	}
	return removed
}

// Save persists the statistics to a temporary file and renames it into place
func (s *Statistics) Save() error {
	s.mutex.Lock()
	s.LastPersisted = s.now()
	data, err := json.Marshal(s)
	s.mutex.Unlock()
	if err != nil {
		return fmt.Errorf("could not encode statistics: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("could not create statistics directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("could not write statistics file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not replace statistics file: %w", err)
	}
	return nil
}

// Load reads the statistics from disk. A missing file is not an error.
func (s *Statistics) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("could not open statistics file: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("could not decode statistics: %w", err)
	}
	if s.UniqueVisitors == nil {
		s.UniqueVisitors = make(map[string]time.Time)
	}
	if s.KindCounts == nil {
		s.KindCounts = make(map[string]int)
	}
	return nil
}

// GetStatistics returns a summary. The per-kind breakdown is only included
// in development mode.
func (s *Statistics) GetStatistics(devMode bool) map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := map[string]interface{}{
		"uniqueVisitors24h": s.uniqueVisitorsLocked(),
		"totalRequests":     s.AnalysisRequests,
		"errorRate":         s.errorRateLocked(),
		"fallbacks":         s.FallbackCount,
		"averageLatencyMs":  s.AverageLatency,
	}
	if devMode {
		out["popularKinds"] = s.popularKindsLocked(5)
	}
	return out
}
