package analysis

import (
	"fmt"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// timePhrase renders a time range entity for human-readable summaries.
// "yesterday" is rendered literally; every other unit renders as
// "in the last {value} {unit}".
func timePhrase(tr model.TimeRange) string {
	switch tr.Unit {
	case model.UnitYesterday:
		return "yesterday"
	case model.UnitToday:
		return "today"
	default:
		return fmt.Sprintf("in the last %d %s", tr.Value, tr.Unit)
	}
}

// Summarize renders a one-paragraph natural-language description of the
// result set, with an intent-specific template and a generic fallback.
func Summarize(result model.AnalysisResult, query model.ParsedQuery) string {
	phrase := timePhrase(query.Entities.TimeRange)

	if result.TotalEvents == 0 {
		return fmt.Sprintf("No security events matched your query %s.", phrase)
	}

	switch query.Intent {
	case model.IntentFailedLogins:
		fa := result.FailedLogins
		if fa != nil && fa.TotalFailed > 0 {
			return fmt.Sprintf(
				"Found %d failed login attempts %s, involving %d unique users and %d unique source IPs.",
				fa.TotalFailed, phrase, fa.UniqueUsers, fa.UniqueIPs)
		}
		return fmt.Sprintf("No failed login attempts were recorded %s.", phrase)

	case model.IntentSuccessfulLogins:
		logins := typeCount(result, model.EventSuccessfulLogin)
		return fmt.Sprintf(
			"Found %d successful logins %s across %d events in total.",
			logins, phrase, result.TotalEvents)

	case model.IntentBruteForce:
		bf := result.BruteForce
		if bf != nil && bf.SuspiciousIPCount > 0 {
			return fmt.Sprintf(
				"Detected %d suspicious source IPs with repeated failed attempts %s (%d attempts in total).",
				bf.SuspiciousIPCount, phrase, bf.TotalAttempts)
		}
		return fmt.Sprintf("No brute force activity detected %s.", phrase)

	case model.IntentGeographicAnalysis:
		geo := result.Geographic
		if geo != nil && geo.TopCountry != "" {
			return fmt.Sprintf(
				"Analyzed %d events %s across %d countries; %s leads with %d events.",
				result.TotalEvents, phrase, geo.UniqueCountries, geo.TopCountry, geo.TopCountryCount)
		}
		return fmt.Sprintf("Analyzed %d events %s with no country information.", result.TotalEvents, phrase)

	default:
		top := ""
		if len(result.EventTypeDist) > 0 {
			top = fmt.Sprintf(" The most common event type was %s (%d events).",
				result.EventTypeDist[0].Key, result.EventTypeDist[0].Count)
		}
		return fmt.Sprintf("Found %d security events %s.%s", result.TotalEvents, phrase, top)
	}
}

func typeCount(result model.AnalysisResult, et model.EventType) int {
	for _, entry := range result.EventTypeDist {
		if entry.Key == string(et) {
			return entry.Count
		}
	}
	return 0
}
