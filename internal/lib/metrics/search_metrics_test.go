package metrics

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSearchMetrics_RecordSearch(t *testing.T) {
	m := NewSearchMetrics(testLogger())

	m.RecordSearch(100*time.Millisecond, true)
	m.RecordSearch(200*time.Millisecond, false)

	stats := m.GetStats()
	if stats.Search.CallsTotal != 2 {
		t.Errorf("expected 2 searches, got %d", stats.Search.CallsTotal)
	}
	if stats.Search.EmptyResultsTotal != 1 {
		t.Errorf("expected 1 empty result, got %d", stats.Search.EmptyResultsTotal)
	}
	if stats.Search.AvgLatencyMs != 150 {
		t.Errorf("expected avg latency 150ms, got %f", stats.Search.AvgLatencyMs)
	}
	if stats.Search.LastLatencyMs != 200 {
		t.Errorf("expected last latency 200ms, got %d", stats.Search.LastLatencyMs)
	}
}

func TestSearchMetrics_RecordLLMCall(t *testing.T) {
	m := NewSearchMetrics(testLogger())

	m.RecordLLMCall(50*time.Millisecond, nil)
	m.RecordLLMCall(150*time.Millisecond, errors.New("timeout"))

	stats := m.GetStats()
	if stats.LLM.CallsTotal != 2 {
		t.Errorf("expected 2 LLM calls, got %d", stats.LLM.CallsTotal)
	}
	if stats.LLM.ErrorsTotal != 1 {
		t.Errorf("expected 1 LLM error, got %d", stats.LLM.ErrorsTotal)
	}
}

func TestSearchMetrics_InstancesAreIsolated(t *testing.T) {
	a := NewSearchMetrics(testLogger())
	b := NewSearchMetrics(testLogger())

	a.RecordSearch(10*time.Millisecond, true)

	if b.GetStats().Search.CallsTotal != 0 {
		t.Error("instances must not share counters")
	}
}

func TestSearchMetrics_Reset(t *testing.T) {
	m := NewSearchMetrics(testLogger())

	m.RecordSearch(10*time.Millisecond, false)
	m.RecordLLMCall(10*time.Millisecond, errors.New("x"))
	m.Reset()

	stats := m.GetStats()
	if stats.Search.CallsTotal != 0 || stats.LLM.CallsTotal != 0 {
		t.Errorf("expected zeroed stats after reset, got %+v", stats)
	}
}

func TestSearchMetrics_EmptyStats(t *testing.T) {
	m := NewSearchMetrics(testLogger())

	stats := m.GetStats()
	if stats.Search.AvgLatencyMs != 0 || stats.LLM.AvgLatencyMs != 0 {
		t.Errorf("avg latency must be zero without calls, got %+v", stats)
	}
}
