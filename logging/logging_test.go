package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json")
	logger.Debug("hidden")
	logger.Info("analysis complete", "kind", "content")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["msg"] != "analysis complete" || entry["kind"] != "content" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug", "text")
	logger.Debug("cache eviction", "key", "content|marketing|60-2-70-55")
	if !strings.Contains(buf.String(), "cache eviction") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestStatistics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statistics.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create statistics: %v", err)
	}

	s.TrackVisitor("10.0.0.1")
	s.TrackVisitor("10.0.0.2")
	s.TrackVisitor("10.0.0.1")
	s.TrackAnalysis("content", 10*time.Millisecond, false, false)
	s.TrackAnalysis("content", 30*time.Millisecond, false, true)
	s.TrackAnalysis("keyword", 20*time.Millisecond, true, false)

	if got := s.GetUniqueVisitorsCount(); got != 2 {
		t.Errorf("expected 2 unique visitors, got %d", got)
	}
	if got := s.TotalRequests(); got != 3 {
		t.Errorf("expected 3 requests, got %d", got)
	}
	if rate := s.GetErrorRate(); rate < 33.3 || rate > 33.4 {
		t.Errorf("unexpected error rate %v", rate)
	}

	popular := s.GetPopularKinds(1)
	if len(popular) != 1 || popular[0].Kind != "content" || popular[0].Count != 2 {
		t.Errorf("unexpected popular kinds %v", popular)
	}

	summary := s.GetStatistics(false)
	if _, ok := summary["popularKinds"]; ok {
		t.Error("per-kind breakdown should be hidden outside development mode")
	}
	if summary["averageLatencyMs"].(float64) != 20 {
		t.Errorf("unexpected average latency %v", summary["averageLatencyMs"])
	}
	if summary["fallbacks"].(int) != 1 {
		t.Errorf("unexpected fallback count %v", summary["fallbacks"])
	}
	if _, ok := s.GetStatistics(true)["popularKinds"]; !ok {
		t.Error("per-kind breakdown should be shown in development mode")
	}

	if err := s.Save(); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	reloaded, err := New(path)
	if err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	if reloaded.TotalRequests() != 3 || reloaded.KindCounts["keyword"] != 1 {
		t.Errorf("statistics not restored: %+v", reloaded.GetStatistics(true))
	}
}

func TestStatisticsPrune(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "statistics.json"))
	if err != nil {
		t.Fatalf("Failed to create statistics: %v", err)
	}
	now := time.Now()
	s.now = func() time.Time { return now.Add(-48 * time.Hour) }
	s.TrackVisitor("stale")
	s.now = func() time.Time { return now }
	s.TrackVisitor("fresh")

	if removed := s.Prune(24 * time.Hour); removed != 1 {
		t.Errorf("expected 1 pruned visitor, got %d", removed)
	}
	if s.GetUniqueVisitorsCount() != 1 {
		t.Errorf("expected 1 visitor left, got %d", s.GetUniqueVisitorsCount())
	}
}
