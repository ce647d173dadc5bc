package metrics

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// SearchMetrics — метрики поискового ядра и внешних вызовов.
// Явно внедряемый экземпляр, не глобальный синглтон:
// тесты конструируют изолированные экземпляры.
type SearchMetrics struct {
	log *slog.Logger

	searchesTotal       int64
	emptyResultsTotal   int64
	searchLatencyTotalMs int64
	searchLastLatencyMs  int64

	llmCallsTotal     int64
	llmErrorsTotal    int64
	llmLatencyTotalMs int64
	llmLastLatencyMs  int64
}

// NewSearchMetrics создаёт новый экземпляр метрик.
func NewSearchMetrics(log *slog.Logger) *SearchMetrics {
	return &SearchMetrics{log: log}
}

// RecordSearch записывает выполненный поиск.
func (m *SearchMetrics) RecordSearch(latency time.Duration, hasResults bool) {
	latencyMs := latency.Milliseconds()

	atomic.AddInt64(&m.searchesTotal, 1)
	atomic.AddInt64(&m.searchLatencyTotalMs, latencyMs)
	atomic.StoreInt64(&m.searchLastLatencyMs, latencyMs)
	if !hasResults {
		atomic.AddInt64(&m.emptyResultsTotal, 1)
	}

	if m.log != nil {
		m.log.Debug("search recorded",
			slog.Int64("latency_ms", latencyMs),
			slog.Bool("has_results", hasResults),
		)
	}
}

// RecordLLMCall записывает вызов LLM-сервиса генерации описаний.
func (m *SearchMetrics) RecordLLMCall(latency time.Duration, err error) {
	latencyMs := latency.Milliseconds()

	atomic.AddInt64(&m.llmCallsTotal, 1)
	atomic.AddInt64(&m.llmLatencyTotalMs, latencyMs)
	atomic.StoreInt64(&m.llmLastLatencyMs, latencyMs)
	if err != nil {
		atomic.AddInt64(&m.llmErrorsTotal, 1)
		if m.log != nil {
			m.log.Warn("LLM call failed",
				slog.Int64("latency_ms", latencyMs),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Stats — текущий снимок метрик.
type Stats struct {
	Search GroupStats `json:"search"`
	LLM    GroupStats `json:"llm"`
}

// GroupStats — статистика по одной группе вызовов.
type GroupStats struct {
	CallsTotal        int64   `json:"calls_total"`
	ErrorsTotal       int64   `json:"errors_total,omitempty"`
	EmptyResultsTotal int64   `json:"empty_results_total,omitempty"`
	AvgLatencyMs      float64 `json:"avg_latency_ms"`
	LastLatencyMs     int64   `json:"last_latency_ms"`
}

// GetStats возвращает текущий снимок метрик.
func (m *SearchMetrics) GetStats() Stats {
	searches := atomic.LoadInt64(&m.searchesTotal)
	searchLatency := atomic.LoadInt64(&m.searchLatencyTotalMs)

	llmCalls := atomic.LoadInt64(&m.llmCallsTotal)
	llmLatency := atomic.LoadInt64(&m.llmLatencyTotalMs)

	stats := Stats{
		Search: GroupStats{
			CallsTotal:        searches,
			EmptyResultsTotal: atomic.LoadInt64(&m.emptyResultsTotal),
			LastLatencyMs:     atomic.LoadInt64(&m.searchLastLatencyMs),
		},
		LLM: GroupStats{
			CallsTotal:    llmCalls,
			ErrorsTotal:   atomic.LoadInt64(&m.llmErrorsTotal),
			LastLatencyMs: atomic.LoadInt64(&m.llmLastLatencyMs),
		},
	}

	if searches > 0 {
		stats.Search.AvgLatencyMs = float64(searchLatency) / float64(searches)
	}
	if llmCalls > 0 {
		stats.LLM.AvgLatencyMs = float64(llmLatency) / float64(llmCalls)
	}

	return stats
}

// Reset сбрасывает все метрики.
func (m *SearchMetrics) Reset() {
	atomic.StoreInt64(&m.searchesTotal, 0)
	atomic.StoreInt64(&m.emptyResultsTotal, 0)
	atomic.StoreInt64(&m.searchLatencyTotalMs, 0)
	atomic.StoreInt64(&m.searchLastLatencyMs, 0)
	atomic.StoreInt64(&m.llmCallsTotal, 0)
	atomic.StoreInt64(&m.llmErrorsTotal, 0)
	atomic.StoreInt64(&m.llmLatencyTotalMs, 0)
	atomic.StoreInt64(&m.llmLastLatencyMs, 0)
}
