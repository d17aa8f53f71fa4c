// Package grid implements the planning grid: cell addressing over the weekly
// plan and the copy primitive shared by the pointer and touch gesture
// pipelines.
package grid

import (
	"weekly-meal-planner/internal/plan"
)

// CopyRequest is the single internal event both gesture adapters resolve to.
type CopyRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Grid gives (day, category) addressed access to a plan. It operates on the
// plan in place; callers own synchronization.
type Grid struct {
	plan plan.Plan
}

// New wraps an existing plan. The plan must be non-nil.
func New(p plan.Plan) *Grid {
	return &Grid{plan: p}
}

// Get returns the entry stored at a cell. The second result is false when
// the cell is empty.
func (g *Grid) Get(dayIndex int, categoryID string) (plan.MealEntry, bool) {
	entry, ok := g.plan[plan.Key(dayIndex, categoryID)]
	return entry, ok
}

// Set stores an entry at a cell, overwriting any previous content.
func (g *Grid) Set(dayIndex int, categoryID string, entry plan.MealEntry) {
	g.plan[plan.Key(dayIndex, categoryID)] = entry
}

// Copy copies the source cell's entry onto the target cell. It reports
// whether anything changed: copying a cell onto itself and copying from an
// empty cell are silent no-ops. The target is overwritten unconditionally
// (last write wins), and the copied ingredient list gets fresh IDs so edits
// to the copy never alias the source.
func (g *Grid) Copy(sourceKey, targetKey string) bool {
	if sourceKey == targetKey {
		return false
	}
	source, ok := g.plan[sourceKey]
	if !ok {
		return false
	}

	g.plan[targetKey] = plan.MealEntry{
		DishName:          source.DishName,
		Ingredients:       plan.CloneIngredients(source.Ingredients),
		PreparationMethod: source.PreparationMethod,
	}
	return true
}

// Apply resolves a gesture-emitted copy request against the grid.
func (g *Grid) Apply(req CopyRequest) bool {
	return g.Copy(req.Source, req.Target)
}
