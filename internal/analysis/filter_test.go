package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

var testNow = time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)

func eventAt(id string, ts time.Time) model.SecurityEvent {
	return model.SecurityEvent{
		ID:        id,
		Timestamp: ts,
		EventType: model.EventFailedLogin,
		SourceIP:  "10.0.0.1",
		User:      "alice",
		Severity:  model.SeverityMedium,
		Country:   "US",
		RiskScore: 50,
	}
}

func TestWindowFor_Hours(t *testing.T) {
	w := WindowFor(model.TimeRange{Unit: model.UnitHours, Value: 5}, testNow)
	assert.Equal(t, testNow.Add(-5*time.Hour), w.Start)
	assert.Equal(t, testNow, w.End)
}

func TestWindowFor_Days(t *testing.T) {
	w := WindowFor(model.TimeRange{Unit: model.UnitDays, Value: 3}, testNow)
	assert.Equal(t, testNow.AddDate(0, 0, -3), w.Start)
	assert.Equal(t, testNow, w.End)
}

func TestWindowFor_Weeks(t *testing.T) {
	w := WindowFor(model.TimeRange{Unit: model.UnitWeeks, Value: 2}, testNow)
	assert.Equal(t, testNow.AddDate(0, 0, -14), w.Start)
	assert.Equal(t, testNow, w.End)
}

func TestWindowFor_Today(t *testing.T) {
	w := WindowFor(model.TimeRange{Unit: model.UnitToday, Value: 1}, testNow)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, testNow, w.End)
}

func TestWindowFor_Yesterday(t *testing.T) {
	w := WindowFor(model.TimeRange{Unit: model.UnitYesterday, Value: 1}, testNow)
	assert.Equal(t, time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 8, 19, 23, 59, 59, 0, time.UTC), w.End)
}

func TestWindowFor_UnrecognizedDefaultsTo24h(t *testing.T) {
	w := WindowFor(model.TimeRange{Unit: "fortnight", Value: 2}, testNow)
	assert.Equal(t, testNow.Add(-24*time.Hour), w.Start)
	assert.Equal(t, testNow, w.End)
}

func TestFilterEventsAt_TimeWindow(t *testing.T) {
	events := []model.SecurityEvent{
		eventAt("in-1", testNow.Add(-1*time.Hour)),
		eventAt("out-old", testNow.Add(-30*time.Hour)),
		eventAt("in-2", testNow.Add(-23*time.Hour)),
		eventAt("boundary", testNow.Add(-24*time.Hour)),
	}

	entities := model.QueryEntities{TimeRange: model.DefaultTimeRange(), TopN: 10}
	filtered := FilterEventsAt(events, entities, testNow)

	// The window is inclusive on both boundaries and input order is kept.
	ids := make([]string, 0, len(filtered))
	for _, ev := range filtered {
		ids = append(ids, ev.ID)
	}
	assert.Equal(t, []string{"in-1", "in-2", "boundary"}, ids)
}

func TestFilterEventsAt_EqualityFilters(t *testing.T) {
	base := testNow.Add(-time.Hour)
	events := []model.SecurityEvent{
		eventAt("a", base),
		eventAt("b", base),
		eventAt("c", base),
	}
	events[1].Severity = model.SeverityCritical
	events[1].Country = "IN"
	events[2].Severity = model.SeverityCritical
	events[2].Country = "IN"
	events[2].EventType = model.EventPortScan

	entities := model.QueryEntities{
		TimeRange: model.DefaultTimeRange(),
		Severity:  model.SeverityCritical,
		Country:   "IN",
		EventType: model.EventFailedLogin,
		TopN:      10,
	}

	filtered := FilterEventsAt(events, entities, testNow)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "b", filtered[0].ID)
}

func TestFilterEventsAt_Idempotent(t *testing.T) {
	events := []model.SecurityEvent{
		eventAt("a", testNow.Add(-2*time.Hour)),
		eventAt("b", testNow.Add(-50*time.Hour)),
		eventAt("c", testNow.Add(-10*time.Minute)),
	}
	entities := model.QueryEntities{TimeRange: model.DefaultTimeRange(), TopN: 10}

	once := FilterEventsAt(events, entities, testNow)
	twice := FilterEventsAt(once, entities, testNow)
	assert.Equal(t, once, twice)
}

func TestFilterEventsAt_EmptyResultIsNotAnError(t *testing.T) {
	events := []model.SecurityEvent{eventAt("old", testNow.Add(-100*time.Hour))}
	entities := model.QueryEntities{TimeRange: model.DefaultTimeRange(), TopN: 10}

	filtered := FilterEventsAt(events, entities, testNow)
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestFilterEventsAt_ZeroValueDegeneratesToDefault(t *testing.T) {
	// "last 0 hours" clamps to a 1-hour window rather than an empty one.
	w := WindowFor(model.TimeRange{Unit: model.UnitHours, Value: 0}, testNow)
	assert.Equal(t, testNow.Add(-time.Hour), w.Start)
}
