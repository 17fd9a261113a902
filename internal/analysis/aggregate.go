package analysis

import (
	"errors"
	"sort"
	"time"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// maxDistributionEntries caps every distribution. The tail is truncated, not
// folded into an "other" bucket.
const maxDistributionEntries = 10

// bruteForceThreshold: a source IP is suspicious when it produced strictly
// more than this many failed_login/brute_force_attempt events in the window.
const bruteForceThreshold = 5

// errInsufficientSpan names the degenerate-timeline condition: no events to
// derive a bucket range from.
var errInsufficientSpan = errors.New("insufficient data for hourly bucketing")

// errExcessiveSpan names the other timeline fallback: a span too wide to
// bucket hourly without an unbounded allocation.
var errExcessiveSpan = errors.New("span too wide for hourly bucketing")

// maxTimelineBuckets bounds the hourly timeline to 90 days of buckets.
const maxTimelineBuckets = 24 * 90

// Aggregate computes the full analysis of a filtered event set. An empty set
// short-circuits to a zero-valued result with empty distributions rather
// than failing. The intent selects which sub-analysis block is attached.
func Aggregate(events []model.SecurityEvent, intent model.Intent) model.AnalysisResult {
	result := model.AnalysisResult{
		TotalEvents:   len(events),
		EventTypeDist: []model.DistributionEntry{},
		SeverityDist:  []model.DistributionEntry{},
		UserDist:      []model.DistributionEntry{},
		SourceIPDist:  []model.DistributionEntry{},
		CountryDist:   []model.DistributionEntry{},
		Timeline:      model.Timeline{Labels: []time.Time{}, Values: []int{}},
	}
	if len(events) == 0 {
		return result
	}

	result.TimeSpanStart, result.TimeSpanEnd = timeSpan(events)

	result.EventTypeDist = distribution(events, func(e model.SecurityEvent) string { return string(e.EventType) })
	result.SeverityDist = distribution(events, func(e model.SecurityEvent) string { return string(e.Severity) })
	result.UserDist = distribution(events, func(e model.SecurityEvent) string { return e.User })
	result.SourceIPDist = distribution(events, func(e model.SecurityEvent) string { return e.SourceIP })
	result.CountryDist = distribution(events, func(e model.SecurityEvent) string { return e.Country })

	// Counted over the full set: the distribution is truncated, and the
	// regional insight must see "IN" even when it falls outside the top ten.
	result.IndiaEvents = countCountry(events, "IN")

	result.RiskScores = riskStats(events)

	timeline, err := hourlyTimeline(events)
	if err != nil {
		// Named fallback: the condition is intentional, not a recovered
		// failure. Empty labels/values, never nil.
		timeline = model.Timeline{Labels: []time.Time{}, Values: []int{}}
	}
	result.Timeline = timeline

	switch intent {
	case model.IntentFailedLogins:
		result.FailedLogins = failedLoginAnalysis(events)
	case model.IntentBruteForce:
		result.BruteForce = bruteForceAnalysis(events)
	case model.IntentGeographicAnalysis:
		result.Geographic = geoAnalysis(events)
	}

	return result
}

func timeSpan(events []model.SecurityEvent) (start, end time.Time) {
	start, end = events[0].Timestamp, events[0].Timestamp
	for _, ev := range events[1:] {
		if ev.Timestamp.Before(start) {
			start = ev.Timestamp
		}
		if ev.Timestamp.After(end) {
			end = ev.Timestamp
		}
	}
	return start, end
}

// distribution counts events per key in a single pass, sorts descending by
// count with ties broken by first-seen order, and keeps the top entries.
func distribution(events []model.SecurityEvent, keyFn func(model.SecurityEvent) string) []model.DistributionEntry {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, ev := range events {
		key := keyFn(ev)
		if _, seen := counts[key]; !seen {
			firstSeen[key] = i
		}
		counts[key]++
	}

	entries := make([]model.DistributionEntry, 0, len(counts))
	for key, count := range counts {
		entries = append(entries, model.DistributionEntry{Key: key, Count: count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Key] < firstSeen[entries[j].Key]
	})

	if len(entries) > maxDistributionEntries {
		entries = entries[:maxDistributionEntries]
	}
	return entries
}

func riskStats(events []model.SecurityEvent) model.RiskStats {
	stats := model.RiskStats{Max: events[0].RiskScore, Min: events[0].RiskScore}
	sum := 0
	for _, ev := range events {
		sum += ev.RiskScore
		if ev.RiskScore > stats.Max {
			stats.Max = ev.RiskScore
		}
		if ev.RiskScore < stats.Min {
			stats.Min = ev.RiskScore
		}
	}
	stats.Average = float64(sum) / float64(len(events))
	return stats
}

// hourlyTimeline buckets events into calendar-hour-aligned UTC windows from
// the earliest to the latest event. Empty buckets between the first and last
// hour are included with count zero.
func hourlyTimeline(events []model.SecurityEvent) (model.Timeline, error) {
	if len(events) == 0 {
		return model.Timeline{}, errInsufficientSpan
	}

	start, end := timeSpan(events)
	firstHour := start.UTC().Truncate(time.Hour)
	lastHour := end.UTC().Truncate(time.Hour)

	bucketCount := int(lastHour.Sub(firstHour)/time.Hour) + 1
	if bucketCount > maxTimelineBuckets {
		return model.Timeline{}, errExcessiveSpan
	}

	timeline := model.Timeline{
		Labels: make([]time.Time, bucketCount),
		Values: make([]int, bucketCount),
	}
	for i := 0; i < bucketCount; i++ {
		timeline.Labels[i] = firstHour.Add(time.Duration(i) * time.Hour)
	}
	for _, ev := range events {
		idx := int(ev.Timestamp.UTC().Truncate(time.Hour).Sub(firstHour) / time.Hour)
		if idx >= 0 && idx < bucketCount {
			timeline.Values[idx]++
		}
	}
	return timeline, nil
}

func failedLoginAnalysis(events []model.SecurityEvent) *model.FailedLoginAnalysis {
	users := make(map[string]struct{})
	ips := make(map[string]struct{})
	var failed []model.SecurityEvent

	for _, ev := range events {
		if ev.EventType != model.EventFailedLogin {
			continue
		}
		failed = append(failed, ev)
		users[ev.User] = struct{}{}
		ips[ev.SourceIP] = struct{}{}
	}

	fa := &model.FailedLoginAnalysis{
		TotalFailed: len(failed),
		UniqueUsers: len(users),
		UniqueIPs:   len(ips),
	}
	if len(failed) == 0 {
		return fa
	}

	timeline, err := hourlyTimeline(failed)
	if err != nil || len(timeline.Values) == 0 {
		return fa
	}
	peak := 0
	for i, v := range timeline.Values {
		if v > timeline.Values[peak] {
			peak = i
		}
	}
	fa.PeakHour = timeline.Labels[peak].Format(time.RFC3339)
	return fa
}

func bruteForceAnalysis(events []model.SecurityEvent) *model.BruteForceAnalysis {
	attempts := make(map[string]int)
	total := 0
	for _, ev := range events {
		if ev.EventType != model.EventFailedLogin && ev.EventType != model.EventBruteForceAttempt {
			continue
		}
		attempts[ev.SourceIP]++
		total++
	}

	suspicious := make(map[string]int)
	for ip, count := range attempts {
		if count > bruteForceThreshold {
			suspicious[ip] = count
		}
	}

	return &model.BruteForceAnalysis{
		SuspiciousIPCount: len(suspicious),
		TotalAttempts:     total,
		SuspiciousIPs:     suspicious,
	}
}

func geoAnalysis(events []model.SecurityEvent) *model.GeoAnalysis {
	countries := distribution(events, func(e model.SecurityEvent) string { return e.Country })

	ga := &model.GeoAnalysis{
		UniqueCountries: distinctCountries(events),
		IndiaCount:      countCountry(events, "IN"),
	}
	if len(countries) > 0 {
		ga.TopCountry = countries[0].Key
		ga.TopCountryCount = countries[0].Count
	}
	return ga
}

func countCountry(events []model.SecurityEvent, country string) int {
	count := 0
	for _, ev := range events {
		if ev.Country == country {
			count++
		}
	}
	return count
}

func distinctCountries(events []model.SecurityEvent) int {
	seen := make(map[string]struct{})
	for _, ev := range events {
		seen[ev.Country] = struct{}{}
	}
	return len(seen)
}
