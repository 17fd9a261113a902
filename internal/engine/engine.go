package engine

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/NikhilShimpy/AskSIEM/internal/analysis"
	"github.com/NikhilShimpy/AskSIEM/internal/metrics"
	"github.com/NikhilShimpy/AskSIEM/internal/model"
	"github.com/NikhilShimpy/AskSIEM/internal/nlq"
	"github.com/NikhilShimpy/AskSIEM/internal/store"
)

// ErrEmptyQuery is the only failure the pipeline propagates: a blank query
// string is a client-input error. Everything else resolves to defaults.
var ErrEmptyQuery = errors.New("empty query")

// maxTableRows caps how many raw events a result carries for display.
const maxTableRows = 100

// Engine runs the query-understanding and analytics pipeline. It is
// stateless per invocation; concurrent HandleQuery calls share only the
// read-only event snapshot supplied by the store.
type Engine struct {
	events  store.EventStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewEngine creates an engine over an event store. metrics may be nil; a nil
// logger falls back to slog.Default().
func NewEngine(events store.EventStore, m *metrics.Metrics, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{events: events, metrics: m, logger: logger}
}

// HandleQuery translates a natural-language question into a filter, runs the
// aggregation pipeline over the store's snapshot, and composes the result.
func (e *Engine) HandleQuery(text string) (*model.QueryResult, error) {
	return e.handleQueryAt(text, time.Now().UTC())
}

func (e *Engine) handleQueryAt(text string, now time.Time) (*model.QueryResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}

	started := time.Now()

	parsed := nlq.Plan(trimmed)
	all := e.events.AllEvents()
	filtered := analysis.FilterEventsAt(all, parsed.Entities, now)
	result := analysis.Aggregate(filtered, parsed.Intent)
	insights := analysis.GenerateInsights(result, parsed.Intent)
	summary := analysis.Summarize(result, parsed)
	chartData := analysis.PrepareChartData(result, parsed.ChartTypes)

	table := filtered
	if len(table) > maxTableRows {
		table = table[:maxTableRows]
	}

	qr := &model.QueryResult{
		Success:     true,
		Query:       trimmed,
		ParsedQuery: parsed,
		Results: model.QueryResults{
			Summary:       summary,
			Insights:      insights,
			ChartData:     chartData,
			Analysis:      result,
			TableData:     table,
			TotalEvents:   result.TotalEvents,
			SampledEvents: len(table),
		},
	}

	if e.metrics != nil {
		e.metrics.QueriesTotal.WithLabelValues(string(parsed.Intent)).Inc()
		e.metrics.QueryDuration.Observe(time.Since(started).Seconds())
		for _, insight := range insights {
			e.metrics.InsightsTotal.WithLabelValues(string(insight.Type)).Inc()
		}
	}

	e.logger.Info("Query processed",
		"intent", parsed.Intent,
		"total_events", result.TotalEvents,
		"insights", len(insights),
		"duration_ms", time.Since(started).Milliseconds())

	return qr, nil
}
