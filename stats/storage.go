package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

const (
	monthLayout   = "2006-01"
	fileName      = "stats.json"
	flushInterval = 5 * time.Minute
	writeDebounce = time.Minute
)

// MonthlyStats holds the analysis counters of one calendar month
type MonthlyStats struct {
	Analyses    int       `json:"analyses"`
	CacheHits   int       `json:"cache_hits"`
	CacheMisses int       `json:"cache_misses"`
	Fallbacks   int       `json:"fallbacks"`
	LastUpdated time.Time `json:"last_updated"`
}

// Storage keeps per-month counters in memory and persists them to a JSON
// file under the data directory
type Storage struct {
	mu        sync.RWMutex
	months    map[string]*MonthlyStats // "YYYY-MM" -> counters
	path      string
	lastFlush time.Time

	dirty     chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	now       func() time.Time
}

// NewStorage opens (or creates) the stats file in dataDir and starts the
// background writer
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dataDir, err)
	}

	s := &Storage{
		months:  make(map[string]*MonthlyStats),
		path:    filepath.Join(dataDir, fileName),
		dirty:   make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		now:     time.Now,
	}
	if err := s.read(); err != nil {
		return nil, err
	}

	go s.writer()
	return s, nil
}

func (s *Storage) read() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	months := make(map[string]*MonthlyStats)
	if err := json.Unmarshal(raw, &months); err != nil {
		return fmt.Errorf("decode %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.months = months
	s.mu.Unlock()
	return nil
}

// write snapshots the counters and replaces the file atomically
func (s *Storage) write() error {
	s.mu.RLock()
	raw, err := json.Marshal(s.months)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), fileName+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// writer persists on demand and on a fixed interval until Shutdown
func (s *Storage) writer() {
	defer close(s.stopped)

	tick := time.NewTicker(flushInterval)
	defer tick.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-s.dirty:
		case <-tick.C:
		}
		if err := s.write(); err != nil {
			slog.Error("stats persistence failed", "path", s.path, "error", err)
		}
	}
}

func (s *Storage) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// IncrementStats adds the given deltas to the current month
func (s *Storage) IncrementStats(analyses, cacheHits, cacheMisses, fallbacks int) {
	now := s.now()
	key := now.Format(monthLayout)

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.months[key]
	if m == nil {
		m = &MonthlyStats{}
		s.months[key] = m
	}
	m.Analyses += analyses
	m.CacheHits += cacheHits
	m.CacheMisses += cacheMisses
	m.Fallbacks += fallbacks
	m.LastUpdated = now

	if now.Sub(s.lastFlush) > writeDebounce {
		s.lastFlush = now
		s.markDirty()
	}
}

// GetCurrentStats returns a copy of this month's counters
func (s *Storage) GetCurrentStats() MonthlyStats {
	m, _ := s.GetMonthlyStats(s.now().Format(monthLayout))
	return m
}

// GetMonthlyStats returns the counters for yearMonth ("YYYY-MM")
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.months[yearMonth]
	if !ok {
		return MonthlyStats{}, false
	}
	return *m, true
}

// GetAllMonths lists every month with counters, newest first
func (s *Storage) GetAllMonths() []string {
	s.mu.RLock()
	keys := slices.Sorted(maps.Keys(s.months))
	s.mu.RUnlock()

	slices.Reverse(keys)
	return keys
}

// Cleanup keeps the current month plus the retainMonths-1 months before it
func (s *Storage) Cleanup(retainMonths int) {
	retainMonths = max(retainMonths, 1)
	y, m, _ := s.now().Date()
	oldest := time.Date(y, m-time.Month(retainMonths-1), 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)

	s.mu.Lock()
	removed := 0
	for key := range s.months {
		// "YYYY-MM" keys order lexically
		if key < oldest {
			delete(s.months, key)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.markDirty()
	}
	slog.Debug("stats cleanup", "retain_months", retainMonths, "removed", removed)
}

// Flush writes the counters to disk synchronously
func (s *Storage) Flush() error {
	return s.write()
}

// Shutdown stops the background writer and persists the final state. It is
// safe to call more than once and on a nil Storage.
func (s *Storage) Shutdown() error {
	if s == nil {
		return nil
	}
	s.closeOnce.Do(func() { close(s.done) })
	<-s.stopped
	return s.write()
}
