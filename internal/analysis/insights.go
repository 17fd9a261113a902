package analysis

import (
	"fmt"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// indiaActivityThreshold: the regional-activity insight fires when the
// filtered set contains strictly more than this many "IN" events.
const indiaActivityThreshold = 100

// failedLoginDangerThreshold: the failed-login insight fires when the
// filtered set contains strictly more than this many failed logins.
const failedLoginDangerThreshold = 50

// GenerateInsights derives the prioritized insight list for an analysis
// result. Rules run in fixed order and each appends at most one insight.
// An empty result set yields exactly one info insight and stops.
func GenerateInsights(result model.AnalysisResult, intent model.Intent) []model.Insight {
	if result.TotalEvents == 0 {
		return []model.Insight{{
			Type:           model.InsightInfo,
			Title:          "No Events Found",
			Message:        "No security events matched the query filters.",
			Recommendation: "Widen the time range or relax the filters and try again.",
		}}
	}

	var insights []model.Insight

	if elevated := severityCount(result, model.SeverityHigh) + severityCount(result, model.SeverityCritical); elevated > 0 {
		insights = append(insights, model.Insight{
			Type:           model.InsightWarning,
			Title:          "Elevated Severity Events",
			Message:        fmt.Sprintf("%d events with high or critical severity in the result set.", elevated),
			Recommendation: "Review high and critical severity events first.",
		})
	}

	if intent == model.IntentFailedLogins && result.FailedLogins != nil && result.FailedLogins.TotalFailed > failedLoginDangerThreshold {
		insights = append(insights, model.Insight{
			Type:           model.InsightDanger,
			Title:          "High Volume of Failed Logins",
			Message:        fmt.Sprintf("%d failed login attempts from %d unique source IPs.", result.FailedLogins.TotalFailed, result.FailedLogins.UniqueIPs),
			Recommendation: "Check for credential stuffing and consider account lockout policies.",
		})
	}

	if intent == model.IntentBruteForce && result.BruteForce != nil && result.BruteForce.SuspiciousIPCount > 0 {
		insights = append(insights, model.Insight{
			Type:           model.InsightDanger,
			Title:          "Possible Brute Force Attack",
			Message:        fmt.Sprintf("%d source IPs exceeded the failed-attempt threshold.", result.BruteForce.SuspiciousIPCount),
			Recommendation: "Block or rate-limit the suspicious source IPs at the firewall.",
		})
	}

	if result.IndiaEvents > indiaActivityThreshold {
		insights = append(insights, model.Insight{
			Type:           model.InsightInfo,
			Title:          "High Activity from India",
			Message:        fmt.Sprintf("%d events originated from India in the filtered set.", result.IndiaEvents),
			Recommendation: "Verify whether this volume matches expected regional usage.",
		})
	}

	return insights
}

func severityCount(result model.AnalysisResult, severity model.Severity) int {
	for _, entry := range result.SeverityDist {
		if entry.Key == string(severity) {
			return entry.Count
		}
	}
	return 0
}
