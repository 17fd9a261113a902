package nlq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

func TestExtractEntities_TimeRange(t *testing.T) {
	entities := ExtractEntities("failed login last 5 hours")
	assert.Equal(t, model.TimeRange{Unit: model.UnitHours, Value: 5}, entities.TimeRange)

	entities = ExtractEntities("show events from the last 3 days")
	assert.Equal(t, model.TimeRange{Unit: model.UnitDays, Value: 3}, entities.TimeRange)

	entities = ExtractEntities("port scans in the last 2 weeks")
	assert.Equal(t, model.TimeRange{Unit: model.UnitWeeks, Value: 2}, entities.TimeRange)

	entities = ExtractEntities("what happened yesterday")
	assert.Equal(t, model.TimeRange{Unit: model.UnitYesterday, Value: 1}, entities.TimeRange)

	entities = ExtractEntities("show me events today")
	assert.Equal(t, model.TimeRange{Unit: model.UnitToday, Value: 1}, entities.TimeRange)
}

func TestExtractEntities_ExplicitWindowBeatsToday(t *testing.T) {
	// "last 6 hours" is declared before the generic "today" pattern, so the
	// explicit window wins even when both appear.
	entities := ExtractEntities("compare today with the last 6 hours")
	assert.Equal(t, model.TimeRange{Unit: model.UnitHours, Value: 6}, entities.TimeRange)
}

func TestExtractEntities_Defaults(t *testing.T) {
	entities := ExtractEntities("anything unusual going on")
	assert.Equal(t, model.DefaultTimeRange(), entities.TimeRange)
	assert.Equal(t, 10, entities.TopN)
	assert.Empty(t, entities.Severity)
	assert.Empty(t, entities.Country)
	assert.Empty(t, entities.EventType)
}

func TestExtractEntities_TopNAndCountry(t *testing.T) {
	entities := ExtractEntities("top 20 users from india")
	assert.Equal(t, 20, entities.TopN)
	assert.Equal(t, "IN", entities.Country)
}

func TestExtractEntities_CountryNames(t *testing.T) {
	assert.Equal(t, "CN", ExtractEntities("connections from china").Country)
	assert.Equal(t, "RU", ExtractEntities("events from russia last week").Country)
	assert.Equal(t, "US", ExtractEntities("traffic from usa").Country)
	assert.Equal(t, "DE", ExtractEntities("logins from DE today").Country)
}

func TestExtractEntities_Severity(t *testing.T) {
	assert.Equal(t, model.SeverityCritical, ExtractEntities("critical events today").Severity)
	assert.Equal(t, model.SeverityHigh, ExtractEntities("high severity alerts").Severity)
	assert.Equal(t, model.SeverityLow, ExtractEntities("low priority noise").Severity)
}

func TestExtractEntities_EventType(t *testing.T) {
	assert.Equal(t, model.EventFailedLogin, ExtractEntities("failed logins this week").EventType)
	assert.Equal(t, model.EventSuccessfulLogin, ExtractEntities("successful logins today").EventType)
	assert.Equal(t, model.EventBruteForceAttempt, ExtractEntities("brute force attacks").EventType)
	assert.Equal(t, model.EventMalwareDetected, ExtractEntities("any malware detected").EventType)
	assert.Equal(t, model.EventPortScan, ExtractEntities("port scanning from china").EventType)
}

func TestExtractEntities_NeverFails(t *testing.T) {
	// Unparseable input resolves to defaults, not errors.
	for _, text := range []string{"", "???", "last -3 hours", "top zero users", "🤷"} {
		entities := ExtractEntities(text)
		assert.Equal(t, model.DefaultTimeRange(), entities.TimeRange, "text %q", text)
		assert.Equal(t, 10, entities.TopN, "text %q", text)
	}
}
