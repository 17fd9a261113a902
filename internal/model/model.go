package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is the closed set of security event categories.
type EventType string

const (
	EventFailedLogin          EventType = "failed_login"
	EventSuccessfulLogin      EventType = "successful_login"
	EventMalwareDetected      EventType = "malware_detected"
	EventFirewallBlock        EventType = "firewall_block"
	EventPrivilegeEscalation  EventType = "privilege_escalation"
	EventDataExfiltration     EventType = "data_exfiltration"
	EventPortScan             EventType = "port_scan"
	EventBruteForceAttempt    EventType = "brute_force_attempt"
	EventSuspiciousConnection EventType = "suspicious_connection"
)

// EventTypes lists all valid event types in declaration order.
var EventTypes = []EventType{
	EventFailedLogin,
	EventSuccessfulLogin,
	EventMalwareDetected,
	EventFirewallBlock,
	EventPrivilegeEscalation,
	EventDataExfiltration,
	EventPortScan,
	EventBruteForceAttempt,
	EventSuspiciousConnection,
}

// ParseEventType converts a wire string into an EventType.
func ParseEventType(s string) (EventType, error) {
	for _, et := range EventTypes {
		if string(et) == s {
			return et, nil
		}
	}
	return "", fmt.Errorf("unknown event type %q", s)
}

// UnmarshalJSON rejects unknown event type strings.
func (et *EventType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseEventType(s)
	if err != nil {
		return err
	}
	*et = parsed
	return nil
}

// Severity is the closed set of event severity tiers.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists all valid severities from most to least severe.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity converts a wire string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	for _, sev := range Severities {
		if string(sev) == s {
			return sev, nil
		}
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

// UnmarshalJSON rejects unknown severity strings.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SecurityEvent is an immutable security event record. Events are created by
// the event store and never mutated by the pipeline.
type SecurityEvent struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	EventType     EventType `json:"event_type"`
	SourceIP      string    `json:"source_ip"`
	DestinationIP string    `json:"destination_ip"`
	User          string    `json:"user"`
	Severity      Severity  `json:"severity"`
	Country       string    `json:"country"`
	Message       string    `json:"message"`
	RiskScore     int       `json:"risk_score"`
	BytesSent     int64     `json:"bytes_sent"`
	BytesReceived int64     `json:"bytes_received"`
}

// Validate checks field constraints on an event.
func (e *SecurityEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("event %s: timestamp is required", e.ID)
	}
	if _, err := ParseEventType(string(e.EventType)); err != nil {
		return fmt.Errorf("event %s: %w", e.ID, err)
	}
	if _, err := ParseSeverity(string(e.Severity)); err != nil {
		return fmt.Errorf("event %s: %w", e.ID, err)
	}
	if e.RiskScore < 0 || e.RiskScore > 100 {
		return fmt.Errorf("event %s: risk_score %d out of range [0,100]", e.ID, e.RiskScore)
	}
	if e.BytesSent < 0 || e.BytesReceived < 0 {
		return fmt.Errorf("event %s: byte counters must be non-negative", e.ID)
	}
	return nil
}

// TimeUnit is the semantic unit of an extracted time range.
type TimeUnit string

const (
	UnitHours     TimeUnit = "hours"
	UnitDays      TimeUnit = "days"
	UnitWeeks     TimeUnit = "weeks"
	UnitToday     TimeUnit = "today"
	UnitYesterday TimeUnit = "yesterday"
)

// TimeRange is an extracted relative time window.
type TimeRange struct {
	Unit  TimeUnit `json:"unit"`
	Value int      `json:"value"`
}

// DefaultTimeRange is the window used when the query text names none.
func DefaultTimeRange() TimeRange {
	return TimeRange{Unit: UnitHours, Value: 24}
}

// Intent is the coarse category a query is classified into.
type Intent string

const (
	IntentFailedLogins       Intent = "failed_logins"
	IntentSuccessfulLogins   Intent = "successful_logins"
	IntentBruteForce         Intent = "brute_force"
	IntentMalwareAnalysis    Intent = "malware_analysis"
	IntentGeographicAnalysis Intent = "geographic_analysis"
	IntentTopUsers           Intent = "top_users"
	IntentRiskAnalysis       Intent = "risk_analysis"
	IntentTimeAnalysis       Intent = "time_analysis"
	IntentGeneralSearch      Intent = "general_search"
)

// ChartType identifies one renderable chart payload.
type ChartType string

const (
	ChartTimeline   ChartType = "timeline"
	ChartEventTypes ChartType = "event_types"
	ChartSeverity   ChartType = "severity"
	ChartTopUsers   ChartType = "top_users"
	ChartGeographic ChartType = "geographic"
	ChartRiskGauge  ChartType = "risk_gauge"
)

// QueryEntities holds the structured parameters extracted from query text.
// TimeRange is always populated; the remaining fields are empty when the
// text does not name them.
type QueryEntities struct {
	TimeRange TimeRange `json:"time_range"`
	Severity  Severity  `json:"severity,omitempty"`
	Country   string    `json:"country,omitempty"`
	TopN      int       `json:"top_n"`
	EventType EventType `json:"event_type,omitempty"`
}

// ParsedQuery is the canonical structured form of a natural-language query.
type ParsedQuery struct {
	Intent        Intent        `json:"intent"`
	Entities      QueryEntities `json:"entities"`
	ChartTypes    []ChartType   `json:"chart_types"`
	OriginalQuery string        `json:"original_query"`
}

// DistributionEntry is one group in a group-by-count distribution.
type DistributionEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// RiskStats holds risk-score statistics over a filtered event set.
type RiskStats struct {
	Average float64 `json:"average"`
	Max     int     `json:"max"`
	Min     int     `json:"min"`
}

// Timeline is an hourly event-count series. Labels are ascending
// calendar-hour bucket start times.
type Timeline struct {
	Labels []time.Time `json:"labels"`
	Values []int       `json:"values"`
}

// FailedLoginAnalysis is the sub-analysis for the failed_logins intent.
type FailedLoginAnalysis struct {
	TotalFailed int    `json:"total_failed"`
	UniqueUsers int    `json:"unique_users"`
	UniqueIPs   int    `json:"unique_ips"`
	PeakHour    string `json:"peak_hour"`
}

// BruteForceAnalysis is the sub-analysis for the brute_force intent.
// An IP is suspicious when it produced strictly more than the threshold of
// failed_login/brute_force_attempt events inside the filtered window.
type BruteForceAnalysis struct {
	SuspiciousIPCount int            `json:"suspicious_ip_count"`
	TotalAttempts     int            `json:"total_attempts"`
	SuspiciousIPs     map[string]int `json:"suspicious_ips"`
}

// GeoAnalysis is the sub-analysis for the geographic_analysis intent.
type GeoAnalysis struct {
	UniqueCountries int    `json:"unique_countries"`
	TopCountry      string `json:"top_country"`
	TopCountryCount int    `json:"top_country_count"`
	IndiaCount      int    `json:"india_count"`
}

// AnalysisResult is the aggregate view of a filtered event set. All fields
// are well-defined for an empty set; consumers never branch on missing vs
// empty.
type AnalysisResult struct {
	TotalEvents   int                  `json:"total_events"`
	TimeSpanStart time.Time            `json:"time_span_start"`
	TimeSpanEnd   time.Time            `json:"time_span_end"`
	EventTypeDist []DistributionEntry  `json:"event_type_distribution"`
	SeverityDist  []DistributionEntry  `json:"severity_distribution"`
	UserDist      []DistributionEntry  `json:"user_distribution"`
	SourceIPDist  []DistributionEntry  `json:"source_ip_distribution"`
	CountryDist   []DistributionEntry  `json:"country_distribution"`
	IndiaEvents   int                  `json:"india_events"`
	RiskScores    RiskStats            `json:"risk_scores"`
	Timeline      Timeline             `json:"timeline"`
	FailedLogins  *FailedLoginAnalysis `json:"failed_logins,omitempty"`
	BruteForce    *BruteForceAnalysis  `json:"brute_force,omitempty"`
	Geographic    *GeoAnalysis         `json:"geographic,omitempty"`
}

// InsightType ranks an insight's urgency.
type InsightType string

const (
	InsightInfo    InsightType = "info"
	InsightWarning InsightType = "warning"
	InsightDanger  InsightType = "danger"
)

// Insight is one prioritized warning or recommendation derived from an
// analysis result.
type Insight struct {
	Type           InsightType `json:"type"`
	Title          string      `json:"title"`
	Message        string      `json:"message"`
	Recommendation string      `json:"recommendation"`
}

// ChartSeries is a label/value pair series ready for chart rendering.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// QueryResults is the payload section of a QueryResult.
type QueryResults struct {
	Summary       string                    `json:"summary"`
	Insights      []Insight                 `json:"insights"`
	ChartData     map[ChartType]ChartSeries `json:"chart_data"`
	Analysis      AnalysisResult            `json:"analysis"`
	TableData     []SecurityEvent           `json:"table_data"`
	TotalEvents   int                       `json:"total_events"`
	SampledEvents int                       `json:"sampled_events"`
}

// QueryResult is the composed response for one natural-language query.
type QueryResult struct {
	Success     bool         `json:"success"`
	Query       string       `json:"query"`
	ParsedQuery ParsedQuery  `json:"parsed_query"`
	Results     QueryResults `json:"results"`
}
