package nlq

import (
	"regexp"
	"strings"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// intentRule binds one intent to its ordered pattern list.
type intentRule struct {
	intent   model.Intent
	patterns []*regexp.Regexp
}

// intentRules is a precedence list, not a scored classifier: intents are
// tried in declaration order, and within an intent patterns are tried in
// declaration order. The first intent with any matching pattern wins, so
// text naming tokens for two intents always resolves to the earlier one.
var intentRules = []intentRule{
	{model.IntentFailedLogins, compileAll(
		`failed\s+log(?:in|on)s?`,
		`login\s+failures?`,
		`unsuccessful\s+log(?:in|on)s?`,
		`authentication\s+failures?`,
	)},
	{model.IntentBruteForce, compileAll(
		`brute\s*force`,
		`password\s+attacks?`,
		`repeated\s+(?:login\s+)?attempts?`,
	)},
	{model.IntentSuccessfulLogins, compileAll(
		`successful\s+log(?:in|on)s?`,
		`success\s+log(?:in|on)s?`,
	)},
	{model.IntentMalwareAnalysis, compileAll(
		`malware`,
		`virus(?:es)?`,
		`trojans?`,
		`infections?`,
	)},
	{model.IntentGeographicAnalysis, compileAll(
		`(?:by|per)\s+country`,
		`geographic`,
		`countries`,
		`from\s+(?:india|china|russia|usa|germany|france)`,
		`foreign`,
	)},
	{model.IntentTopUsers, compileAll(
		`top\s+(?:\d+\s+)?users?`,
		`most\s+active\s+users?`,
		`user\s+activity`,
	)},
	{model.IntentRiskAnalysis, compileAll(
		`\brisk(?:\s+scores?|y|iest)?\b`,
		`dangerous`,
		`threat\s+level`,
	)},
	{model.IntentTimeAnalysis, compileAll(
		`timeline`,
		`over\s+time`,
		`hourly`,
		`trends?`,
	)},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}

// intentCharts is a static lookup of the chart types each intent renders.
var intentCharts = map[model.Intent][]model.ChartType{
	model.IntentFailedLogins:       {model.ChartTimeline, model.ChartTopUsers, model.ChartEventTypes},
	model.IntentSuccessfulLogins:   {model.ChartTimeline, model.ChartTopUsers},
	model.IntentBruteForce:         {model.ChartTimeline, model.ChartSeverity, model.ChartEventTypes},
	model.IntentMalwareAnalysis:    {model.ChartTimeline, model.ChartSeverity},
	model.IntentGeographicAnalysis: {model.ChartGeographic, model.ChartTimeline},
	model.IntentTopUsers:           {model.ChartTopUsers, model.ChartTimeline},
	model.IntentRiskAnalysis:       {model.ChartRiskGauge, model.ChartSeverity, model.ChartTimeline},
	model.IntentTimeAnalysis:       {model.ChartTimeline, model.ChartEventTypes},
}

var defaultCharts = []model.ChartType{model.ChartTimeline, model.ChartEventTypes}

// ClassifyIntent assigns exactly one intent to the query text. Text matching
// no intent classifies as general_search.
func ClassifyIntent(text string) model.Intent {
	lowered := strings.ToLower(text)
	for _, rule := range intentRules {
		for _, re := range rule.patterns {
			if re.MatchString(lowered) {
				return rule.intent
			}
		}
	}
	return model.IntentGeneralSearch
}

// ChartTypesFor returns the chart types suggested for an intent.
func ChartTypesFor(intent model.Intent) []model.ChartType {
	if charts, ok := intentCharts[intent]; ok {
		return append([]model.ChartType(nil), charts...)
	}
	return append([]model.ChartType(nil), defaultCharts...)
}
