// Package shopping derives the consolidated shopping list from the weekly
// plan.
package shopping

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"weekly-meal-planner/internal/plan"
)

// aggregated accumulates one group of equivalent ingredients. Display name
// and unit keep the casing of the first occurrence seen.
type aggregated struct {
	name     string
	quantity float64
	unit     string
}

// Aggregate folds every ingredient in the plan into a deduplicated, summed
// and sorted list of display strings. Ingredients group by the normalized
// (unit, name) pair; quantities are summed across all contributing entries.
// Ingredients with an empty or whitespace-only name are skipped.
//
// The result is order-independent: plan keys are walked in sorted order only
// so the first-seen casing tie-break is deterministic.
func Aggregate(p plan.Plan) []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make(map[string]*aggregated)
	for _, key := range keys {
		for _, ing := range p[key].Ingredients {
			name := strings.TrimSpace(ing.Name)
			if name == "" {
				continue
			}

			groupKey := strings.ToLower(ing.Unit) + "-" + strings.ToLower(name)
			group, ok := groups[groupKey]
			if !ok {
				group = &aggregated{name: name, unit: ing.Unit}
				groups[groupKey] = group
			}
			group.quantity += ing.Quantity
		}
	}

	list := make([]string, 0, len(groups))
	for _, group := range groups {
		list = append(list, render(group))
	}
	sort.Strings(list)
	return list
}

// render turns one group into its display string. The sentinel unit is shown
// without a quantity regardless of the accumulated value.
func render(g *aggregated) string {
	if g.unit == plan.UnitToTaste {
		return fmt.Sprintf("%s (%s)", g.name, plan.UnitToTaste)
	}
	return fmt.Sprintf("%s %s - %s", formatQuantity(g.quantity), g.unit, g.name)
}

// formatQuantity rounds to 2 decimal places and strips trailing zeros and a
// dangling decimal point, so 2.00 renders as "2" and 2.50 as "2.5".
func formatQuantity(q float64) string {
	rounded := math.Round(q*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
