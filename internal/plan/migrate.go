package plan

import (
	"encoding/json"
	"strings"
)

// mealEntryJSON mirrors both the current and the legacy stored shapes of a
// meal entry. Legacy records encoded the ingredient list as one
// comma-separated string and kept free-text notes instead of a preparation
// method.
type mealEntryJSON struct {
	DishName          string          `json:"dishName"`
	Ingredients       json.RawMessage `json:"ingredients"`
	PreparationMethod string          `json:"preparationMethod"`
	Notes             string          `json:"notes"`
}

// UnmarshalJSON decodes a meal entry, transparently migrating the legacy
// representation. Migration never touches the stored blob; the upgraded
// shape is only written back on the next save.
func (e *MealEntry) UnmarshalJSON(data []byte) error {
	var raw mealEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.DishName = raw.DishName
	e.PreparationMethod = raw.PreparationMethod
	e.Ingredients = nil

	if len(raw.Ingredients) == 0 || string(raw.Ingredients) == "null" {
		return nil
	}

	var legacy string
	if err := json.Unmarshal(raw.Ingredients, &legacy); err == nil {
		e.Ingredients = migrateLegacyIngredients(legacy)
		if e.PreparationMethod == "" {
			e.PreparationMethod = raw.Notes
		}
		return nil
	}

	return json.Unmarshal(raw.Ingredients, &e.Ingredients)
}

// migrateLegacyIngredients splits a comma-separated ingredient string into
// structured records, preserving order. Each fragment becomes one ingredient
// with quantity 1 and the base unit; empty fragments are dropped.
func migrateLegacyIngredients(s string) []Ingredient {
	var out []Ingredient
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, Ingredient{
			ID:       NewIngredientID(),
			Name:     name,
			Quantity: 1,
			Unit:     BaseUnit,
		})
	}
	return out
}
