// Package editor holds the transient edit buffer for a single meal entry.
// Nothing here touches the plan: the buffer is filled, then either committed
// into a complete MealEntry or discarded.
package editor

import (
	"weekly-meal-planner/internal/plan"
)

// Editor buffers one cell's dish name, ingredient rows and preparation text
// until an explicit commit. After Close (commit or cancel) the buffer is
// inert: late suggestion responses are discarded instead of mutating state.
type Editor struct {
	dishName          string
	ingredients       []plan.Ingredient
	preparationMethod string
	closed            bool
}

// New opens an editor. A nil initial entry starts an empty buffer; otherwise
// the entry's fields are copied in so edits never alias the stored plan.
func New(initial *plan.MealEntry) *Editor {
	e := &Editor{}
	if initial != nil {
		e.dishName = initial.DishName
		e.ingredients = append([]plan.Ingredient(nil), initial.Ingredients...)
		e.preparationMethod = initial.PreparationMethod
	}
	return e
}

// DishName returns the buffered dish name.
func (e *Editor) DishName() string {
	return e.dishName
}

// SetDishName updates the buffered dish name.
func (e *Editor) SetDishName(name string) {
	if e.closed {
		return
	}
	e.dishName = name
}

// SetPreparationMethod updates the buffered preparation text.
func (e *Editor) SetPreparationMethod(text string) {
	if e.closed {
		return
	}
	e.preparationMethod = text
}

// Ingredients returns the buffered ingredient rows.
func (e *Editor) Ingredients() []plan.Ingredient {
	return e.ingredients
}

// AddRow appends a blank ingredient row with quantity 1 and the base unit,
// returning its generated ID.
func (e *Editor) AddRow() string {
	if e.closed {
		return ""
	}
	id := plan.NewIngredientID()
	e.ingredients = append(e.ingredients, plan.Ingredient{
		ID:       id,
		Quantity: 1,
		Unit:     plan.BaseUnit,
	})
	return id
}

// RemoveRow deletes the row with the given ID, if present.
func (e *Editor) RemoveRow(id string) {
	if e.closed {
		return
	}
	for i := range e.ingredients {
		if e.ingredients[i].ID == id {
			e.ingredients = append(e.ingredients[:i], e.ingredients[i+1:]...)
			return
		}
	}
}

// UpdateRow applies a field mutation to the row with the given ID.
func (e *Editor) UpdateRow(id string, update func(*plan.Ingredient)) {
	if e.closed {
		return
	}
	for i := range e.ingredients {
		if e.ingredients[i].ID == id {
			update(&e.ingredients[i])
			return
		}
	}
}

// AppendSuggestions appends AI-suggested ingredients to the buffer. The
// current rows are never replaced. A response arriving after the editor was
// closed is silently dropped.
func (e *Editor) AppendSuggestions(suggestions []plan.Ingredient) {
	if e.closed || len(suggestions) == 0 {
		return
	}
	e.ingredients = append(e.ingredients, suggestions...)
}

// Closed reports whether the editor has been committed or cancelled.
func (e *Editor) Closed() bool {
	return e.closed
}

// Commit closes the editor and emits the complete entry.
func (e *Editor) Commit() plan.MealEntry {
	e.closed = true
	return plan.MealEntry{
		DishName:          e.dishName,
		Ingredients:       e.ingredients,
		PreparationMethod: e.preparationMethod,
	}
}

// Cancel discards the buffer with no side effects.
func (e *Editor) Cancel() {
	e.closed = true
}
