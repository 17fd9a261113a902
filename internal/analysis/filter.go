package analysis

import (
	"time"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// Window is a closed [Start, End] time interval in UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor computes the filter window for a time range entity relative to
// now. Unrecognized units default to the last 24 hours.
func WindowFor(tr model.TimeRange, now time.Time) Window {
	now = now.UTC()
	value := tr.Value
	if value < 1 {
		value = 1
	}

	switch tr.Unit {
	case model.UnitHours:
		return Window{Start: now.Add(-time.Duration(value) * time.Hour), End: now}
	case model.UnitDays:
		return Window{Start: now.AddDate(0, 0, -value), End: now}
	case model.UnitWeeks:
		return Window{Start: now.AddDate(0, 0, -7*value), End: now}
	case model.UnitToday:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return Window{Start: midnight, End: now}
	case model.UnitYesterday:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start := midnight.AddDate(0, 0, -1)
		return Window{Start: start, End: midnight.Add(-time.Second)}
	default:
		return Window{Start: now.Add(-24 * time.Hour), End: now}
	}
}

// Contains reports whether t lies inside the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// FilterEvents applies the extracted entities to the full event collection:
// the time window first, then equality filters for severity, country and
// event type (AND semantics). Input order is preserved and an empty result
// is not an error.
func FilterEvents(events []model.SecurityEvent, entities model.QueryEntities) []model.SecurityEvent {
	return FilterEventsAt(events, entities, time.Now().UTC())
}

// FilterEventsAt is FilterEvents with an explicit reference time.
func FilterEventsAt(events []model.SecurityEvent, entities model.QueryEntities, now time.Time) []model.SecurityEvent {
	window := WindowFor(entities.TimeRange, now)

	filtered := make([]model.SecurityEvent, 0, len(events))
	for _, ev := range events {
		if !window.Contains(ev.Timestamp) {
			continue
		}
		if entities.Severity != "" && ev.Severity != entities.Severity {
			continue
		}
		if entities.Country != "" && ev.Country != entities.Country {
			continue
		}
		if entities.EventType != "" && ev.EventType != entities.EventType {
			continue
		}
		filtered = append(filtered, ev)
	}
	return filtered
}
