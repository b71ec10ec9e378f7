// README: Budget estimation from display text with tag-midpoint fallback.
package plan

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/CodeCary80/obviousplan/internal/types"
)

// budgetTagMidpoints maps each budget tag to the midpoint of its typical
// price band, used only when the display text carries no numbers.
var budgetTagMidpoints = map[types.BudgetTag]float64{
	types.BudgetCheap:    15,
	types.BudgetModerate: 45,
	types.BudgetUpscale:  85,
	types.BudgetPremium:  150,
	types.BudgetLuxury:   400,
}

const defaultBudgetMidpoint = 50

// numericRun matches digit runs with optional thousands commas, e.g. "1,200".
var numericRun = regexp.MustCompile(`\d+(?:,\d{3})*`)

// EstimateBudget derives a dollar estimate from a venue's budget display
// text, e.g. "$25-45" → 35, "Free" → 0, "$12" → 12. Text without numbers
// falls back to the tag's midpoint. This is the only place monetary values
// are derived.
func EstimateBudget(displayText string, tag types.BudgetTag) float64 {
	text := strings.ToLower(displayText)
	if strings.Contains(text, "free") {
		return 0
	}

	runs := numericRun.FindAllString(text, 2)
	switch len(runs) {
	case 2:
		return (parseRun(runs[0]) + parseRun(runs[1])) / 2
	case 1:
		return parseRun(runs[0])
	}

	if mid, ok := budgetTagMidpoints[tag]; ok {
		return mid
	}
	return defaultBudgetMidpoint
}

func parseRun(run string) float64 {
	n, _ := strconv.ParseFloat(strings.ReplaceAll(run, ",", ""), 64)
	return n
}
