package nlq

import (
	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// maxChartTypes caps how many chart payloads a single query renders.
const maxChartTypes = 4

// Plan combines intent classification and entity extraction into the
// canonical ParsedQuery. Pure and deterministic for identical input text.
func Plan(text string) model.ParsedQuery {
	intent := ClassifyIntent(text)
	charts := ChartTypesFor(intent)
	if len(charts) > maxChartTypes {
		charts = charts[:maxChartTypes]
	}
	return model.ParsedQuery{
		Intent:        intent,
		Entities:      ExtractEntities(text),
		ChartTypes:    charts,
		OriginalQuery: text,
	}
}
