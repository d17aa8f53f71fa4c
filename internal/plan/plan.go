package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DaysOfWeek holds the row labels of the planner, Monday first.
var DaysOfWeek = []string{
	"Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado", "Domingo",
}

// Units is the suggested unit list offered by the editor. The set is open
// ended; any string is accepted when stored.
var Units = []string{
	"un", "g", "kg", "ml", "l", "xícara", "colher", "fatia", "pacote", "lata", UnitToTaste,
}

const (
	// UnitToTaste is the sentinel unit meaning quantity is not tracked.
	UnitToTaste = "a gosto"

	// BaseUnit is the default unit for new and migrated ingredients.
	BaseUnit = "un"
)

// MealCategory identifies a meal slot type (e.g. lunch). Name is user
// editable and may be duplicated; ID must be unique.
type MealCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ingredient is one row of a meal entry's ingredient list. The ID is only a
// stable list-editing key, not a global identity.
type Ingredient struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// MealEntry is the content of one (day, category) cell.
type MealEntry struct {
	DishName          string       `json:"dishName"`
	Ingredients       []Ingredient `json:"ingredients"`
	PreparationMethod string       `json:"preparationMethod,omitempty"`
}

// HasContent reports whether the entry shows as filled in the grid. An entry
// with an empty dish name is a distinct stored state but treated as empty.
func (e MealEntry) HasContent() bool {
	return e.DishName != ""
}

// Plan maps composite cell keys ("<dayIndex>-<categoryId>") to entries.
// Absence of a key means the cell is empty.
type Plan map[string]MealEntry

// AppData is the entire persisted state of the application.
type AppData struct {
	Categories []MealCategory `json:"categories"`
	Plan       Plan           `json:"plan"`
}

// DefaultCategories returns the category set used when no stored state
// exists. A fresh slice is returned so callers may mutate it freely.
func DefaultCategories() []MealCategory {
	return []MealCategory{
		{ID: "cafedamanha", Name: "Café da Manhã"},
		{ID: "almoco", Name: "Almoço"},
		{ID: "jantar", Name: "Jantar"},
	}
}

// Defaults returns a fresh AppData with default categories and an empty plan.
func Defaults() AppData {
	return AppData{
		Categories: DefaultCategories(),
		Plan:       Plan{},
	}
}

// Key builds the composite cell key for a day index and category id.
func Key(dayIndex int, categoryID string) string {
	return fmt.Sprintf("%d-%s", dayIndex, categoryID)
}

// ParseKey splits a composite cell key back into its day index and category
// id. It returns an error when the day part is not an integer in [0,6].
func ParseKey(key string) (dayIndex int, categoryID string, err error) {
	day, catID, ok := strings.Cut(key, "-")
	if !ok {
		return 0, "", fmt.Errorf("malformed cell key %q", key)
	}
	dayIndex, err = strconv.Atoi(day)
	if err != nil || dayIndex < 0 || dayIndex > 6 {
		return 0, "", fmt.Errorf("cell key %q: day index out of range", key)
	}
	return dayIndex, catID, nil
}

// NewIngredientID generates a fresh ingredient list key.
func NewIngredientID() string {
	return uuid.NewString()
}

// CloneIngredients deep-copies an ingredient list, assigning each copy a
// newly generated ID so later edits never alias the source list.
func CloneIngredients(src []Ingredient) []Ingredient {
	if src == nil {
		return nil
	}
	out := make([]Ingredient, len(src))
	for i, ing := range src {
		ing.ID = NewIngredientID()
		out[i] = ing
	}
	return out
}

// AddCategory appends a new category with a generated id and the default
// name, and returns it.
func (d *AppData) AddCategory() MealCategory {
	cat := MealCategory{ID: "cat-" + uuid.NewString(), Name: "Nova Refeição"}
	d.Categories = append(d.Categories, cat)
	return cat
}

// RenameCategory sets the name of the category with the given id. It returns
// false when no such category exists.
func (d *AppData) RenameCategory(id, name string) bool {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			d.Categories[i].Name = name
			return true
		}
	}
	return false
}

// RemoveCategory deletes a category and every plan entry addressed to it.
// Removal is rejected when the category does not exist or when it is the
// last remaining one: the category set must never become empty.
func (d *AppData) RemoveCategory(id string) bool {
	if len(d.Categories) <= 1 {
		return false
	}
	idx := -1
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	d.Categories = append(d.Categories[:idx], d.Categories[idx+1:]...)
	for day := range DaysOfWeek {
		delete(d.Plan, Key(day, id))
	}
	return true
}

// CategoryByID returns the category with the given id, if present.
func (d *AppData) CategoryByID(id string) (MealCategory, bool) {
	for _, c := range d.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return MealCategory{}, false
}

// Clone returns a deep copy of the AppData, preserving ingredient IDs.
// Used to hand state to readers without exposing the live maps and slices.
func (d AppData) Clone() AppData {
	out := AppData{
		Categories: append([]MealCategory(nil), d.Categories...),
		Plan:       make(Plan, len(d.Plan)),
	}
	for key, entry := range d.Plan {
		entry.Ingredients = append([]Ingredient(nil), entry.Ingredients...)
		out.Plan[key] = entry
	}
	return out
}
