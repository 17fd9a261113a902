package nlq

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// timePattern maps a compiled pattern to the unit it extracts. Patterns are
// evaluated in slice order and the first match wins, so explicit "last N
// hours" forms come before the bare "today"/"yesterday" words.
type timePattern struct {
	re   *regexp.Regexp
	unit model.TimeUnit
}

var timePatterns = []timePattern{
	{regexp.MustCompile(`last\s+(\d+)\s+(?:hour|hours|hr|hrs)`), model.UnitHours},
	{regexp.MustCompile(`last\s+(\d+)\s+(?:day|days)`), model.UnitDays},
	{regexp.MustCompile(`last\s+(\d+)\s+(?:week|weeks)`), model.UnitWeeks},
	{regexp.MustCompile(`past\s+(\d+)\s+(?:hour|hours|hr|hrs)`), model.UnitHours},
	{regexp.MustCompile(`past\s+(\d+)\s+(?:day|days)`), model.UnitDays},
	{regexp.MustCompile(`\byesterday\b`), model.UnitYesterday},
	{regexp.MustCompile(`\b(?:today|now)\b`), model.UnitToday},
	{regexp.MustCompile(`last\s+hour\b`), model.UnitHours},
	{regexp.MustCompile(`last\s+day\b`), model.UnitDays},
	{regexp.MustCompile(`last\s+week\b`), model.UnitWeeks},
}

var severityPatterns = []struct {
	re       *regexp.Regexp
	severity model.Severity
}{
	{regexp.MustCompile(`\bcritical\b`), model.SeverityCritical},
	{regexp.MustCompile(`\bhigh\b`), model.SeverityHigh},
	{regexp.MustCompile(`\bmedium\b`), model.SeverityMedium},
	{regexp.MustCompile(`\blow\b`), model.SeverityLow},
}

// countryPatterns maps country names and codes in the query text to ISO-like
// two-letter codes. Name forms come before bare codes so "india" is not
// shadowed by a stray "in" token.
var countryPatterns = []struct {
	re   *regexp.Regexp
	code string
}{
	{regexp.MustCompile(`\bindia\b`), "IN"},
	{regexp.MustCompile(`\b(?:usa|united states|america)\b`), "US"},
	{regexp.MustCompile(`\b(?:uk|united kingdom|britain)\b`), "UK"},
	{regexp.MustCompile(`\bchina\b`), "CN"},
	{regexp.MustCompile(`\brussia\b`), "RU"},
	{regexp.MustCompile(`\bgermany\b`), "DE"},
	{regexp.MustCompile(`\bfrance\b`), "FR"},
	{regexp.MustCompile(`\bjapan\b`), "JP"},
	{regexp.MustCompile(`\bbrazil\b`), "BR"},
	{regexp.MustCompile(`\baustralia\b`), "AU"},
	{regexp.MustCompile(`\bcanada\b`), "CA"},
	{regexp.MustCompile(`\bsingapore\b`), "SG"},
	{regexp.MustCompile(`from\s+([A-Za-z]{2})\b`), ""},
}

var topNPattern = regexp.MustCompile(`top\s+(\d+)`)

// eventTypePatterns maps query phrasing to event types. More specific
// phrasings are listed before generic ones.
var eventTypePatterns = []struct {
	re        *regexp.Regexp
	eventType model.EventType
}{
	{regexp.MustCompile(`\bfailed\s+log(?:in|on)s?\b`), model.EventFailedLogin},
	{regexp.MustCompile(`\b(?:successful|success)\s+log(?:in|on)s?\b`), model.EventSuccessfulLogin},
	{regexp.MustCompile(`\bbrute\s*force\b`), model.EventBruteForceAttempt},
	{regexp.MustCompile(`\b(?:malware|virus|trojan)\b`), model.EventMalwareDetected},
	{regexp.MustCompile(`\bfirewall\b`), model.EventFirewallBlock},
	{regexp.MustCompile(`\bprivilege\s+escalation\b`), model.EventPrivilegeEscalation},
	{regexp.MustCompile(`\b(?:exfiltration|data\s+theft|data\s+leak)\b`), model.EventDataExfiltration},
	{regexp.MustCompile(`\bport\s+scan(?:ning|s)?\b`), model.EventPortScan},
	{regexp.MustCompile(`\bsuspicious\s+connections?\b`), model.EventSuspiciousConnection},
}

const defaultTopN = 10

// ExtractEntities pulls typed parameters out of free query text. The text is
// lower-cased before matching. Extraction never fails: unmatched categories
// resolve to their documented defaults (time range last 24 hours, top N 10,
// severity/country/event type unset).
func ExtractEntities(text string) model.QueryEntities {
	lowered := strings.ToLower(text)

	entities := model.QueryEntities{
		TimeRange: model.DefaultTimeRange(),
		TopN:      defaultTopN,
	}

	for _, tp := range timePatterns {
		m := tp.re.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		value := 1
		if len(m) > 1 && m[1] != "" {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				value = n
			}
		}
		entities.TimeRange = model.TimeRange{Unit: tp.unit, Value: value}
		break
	}

	for _, sp := range severityPatterns {
		if sp.re.MatchString(lowered) {
			entities.Severity = sp.severity
			break
		}
	}

	for _, cp := range countryPatterns {
		m := cp.re.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		if cp.code != "" {
			entities.Country = cp.code
		} else if len(m) > 1 {
			entities.Country = strings.ToUpper(m[1])
		}
		break
	}

	if m := topNPattern.FindStringSubmatch(lowered); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			entities.TopN = n
		}
	}

	for _, ep := range eventTypePatterns {
		if ep.re.MatchString(lowered) {
			entities.EventType = ep.eventType
			break
		}
	}

	return entities
}
