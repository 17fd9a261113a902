package analysis

import (
	"time"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// Per-chart caps on series length. Distributions are already capped at ten
// entries by the aggregation pass; the geographic chart allows a wider view
// and users a narrower one.
const (
	maxUserChartEntries = 10
	maxGeoChartEntries  = 15
	maxChartsPerQuery   = 4
)

// PrepareChartData reshapes the analysis result into label/value series for
// up to the first four requested chart types. Unrecognized chart types are
// silently skipped, never an error.
func PrepareChartData(result model.AnalysisResult, chartTypes []model.ChartType) map[model.ChartType]model.ChartSeries {
	charts := make(map[model.ChartType]model.ChartSeries)

	requested := chartTypes
	if len(requested) > maxChartsPerQuery {
		requested = requested[:maxChartsPerQuery]
	}

	for _, ct := range requested {
		switch ct {
		case model.ChartTimeline:
			charts[ct] = timelineSeries(result.Timeline)
		case model.ChartEventTypes:
			charts[ct] = distributionSeries(result.EventTypeDist, 0)
		case model.ChartSeverity:
			charts[ct] = distributionSeries(result.SeverityDist, 0)
		case model.ChartTopUsers:
			charts[ct] = distributionSeries(result.UserDist, maxUserChartEntries)
		case model.ChartGeographic:
			charts[ct] = distributionSeries(result.CountryDist, maxGeoChartEntries)
		case model.ChartRiskGauge:
			charts[ct] = riskSeries(result.RiskScores)
		}
	}

	return charts
}

func distributionSeries(entries []model.DistributionEntry, limit int) model.ChartSeries {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	series := model.ChartSeries{Labels: make([]string, 0, len(entries)), Values: make([]int, 0, len(entries))}
	for _, entry := range entries {
		series.Labels = append(series.Labels, entry.Key)
		series.Values = append(series.Values, entry.Count)
	}
	return series
}

func timelineSeries(timeline model.Timeline) model.ChartSeries {
	series := model.ChartSeries{Labels: make([]string, 0, len(timeline.Labels)), Values: make([]int, 0, len(timeline.Values))}
	for i, label := range timeline.Labels {
		series.Labels = append(series.Labels, label.UTC().Format(time.RFC3339))
		series.Values = append(series.Values, timeline.Values[i])
	}
	return series
}

func riskSeries(stats model.RiskStats) model.ChartSeries {
	return model.ChartSeries{
		Labels: []string{"average", "max", "min"},
		Values: []int{int(stats.Average), stats.Max, stats.Min},
	}
}
