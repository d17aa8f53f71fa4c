package telegram

import (
	"strings"
	"testing"

	"weekly-meal-planner/internal/metrics"
	"weekly-meal-planner/internal/plan"
)

func TestParseSetMeal(t *testing.T) {
	categories := plan.DefaultCategories()

	tests := []struct {
		name     string
		text     string
		wantOK   bool
		wantDay  int
		wantCat  string
		wantDish string
	}{
		{"CategoryByName", "terça Jantar: Strogonoff", true, 1, "jantar", "Strogonoff"},
		{"CategoryByID", "segunda almoco: Feijoada", true, 0, "almoco", "Feijoada"},
		{"AccentFreeDay", "sabado jantar: Pizza", true, 5, "jantar", "Pizza"},
		{"DayWithSuffix", "quarta-feira almoço: Sopa", true, 2, "almoco", "Sopa"},
		{"MultiWordCategory", "domingo café da manhã: Tapioca", true, 6, "cafedamanha", "Tapioca"},
		{"MissingColon", "terça jantar Strogonoff", false, 0, "", ""},
		{"UnknownDay", "someday jantar: X", false, 0, "", ""},
		{"UnknownCategory", "terça ceia: X", false, 0, "", ""},
		{"EmptyDish", "terça jantar:   ", false, 0, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, ok := parseSetMeal(tc.text, categories)
			if ok != tc.wantOK {
				t.Fatalf("parseSetMeal(%q) ok = %v, want %v", tc.text, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if req.DayIndex != tc.wantDay || req.CategoryID != tc.wantCat || req.DishName != tc.wantDish {
				t.Errorf("parseSetMeal(%q) = %+v", tc.text, req)
			}
		})
	}
}

func TestFormatPlanMessage(t *testing.T) {
	data := plan.Defaults()
	data.Plan[plan.Key(0, "almoco")] = plan.MealEntry{DishName: "Feijoada"}
	data.Plan[plan.Key(6, "jantar")] = plan.MealEntry{DishName: "Pizza"}

	out := formatPlanMessage(data)
	if !strings.Contains(out, "*Segunda*") || !strings.Contains(out, "Almoço: Feijoada") {
		t.Errorf("Expected Monday lunch in output, got:\n%s", out)
	}
	if !strings.Contains(out, "*Domingo*") || !strings.Contains(out, "Jantar: Pizza") {
		t.Errorf("Expected Sunday dinner in output, got:\n%s", out)
	}
	if strings.Contains(out, "*Terça*") {
		t.Error("Days without meals should be omitted")
	}
}

func TestFormatPlanMessageEmpty(t *testing.T) {
	out := formatPlanMessage(plan.Defaults())
	if !strings.Contains(out, "Nenhuma refeição planejada") {
		t.Errorf("Expected empty-plan placeholder, got:\n%s", out)
	}
}

func TestFormatShoppingMessage(t *testing.T) {
	out := formatShoppingMessage([]string{"5 un - Ovo", "Sal (a gosto)"})
	if !strings.Contains(out, "• 5 un - Ovo") || !strings.Contains(out, "• Sal (a gosto)") {
		t.Errorf("Expected both items in output, got:\n%s", out)
	}

	empty := formatShoppingMessage(nil)
	if !strings.Contains(empty, "Nenhum item") {
		t.Errorf("Expected empty-list placeholder, got:\n%s", empty)
	}
}

func TestFormatImportedEntry(t *testing.T) {
	entry := plan.MealEntry{
		DishName: "Moqueca",
		Ingredients: []plan.Ingredient{
			{ID: "i1", Name: "Peixe", Quantity: 600, Unit: "g"},
			{ID: "i2", Name: "Coentro", Quantity: 0, Unit: plan.UnitToTaste},
		},
	}
	out := formatImportedEntry(entry)
	if !strings.Contains(out, "Moqueca") {
		t.Error("Expected dish name in output")
	}
	if !strings.Contains(out, "600 g Peixe") {
		t.Errorf("Expected quantified ingredient line, got:\n%s", out)
	}
	if !strings.Contains(out, "Coentro (a gosto)") {
		t.Errorf("Expected to-taste ingredient line, got:\n%s", out)
	}
}

func TestFormatStatusMessage(t *testing.T) {
	usage := []metrics.DailyUsage{{Date: "2026-08-28", Calls: 12, Failures: 1}}
	health := metrics.SysHealth{AllocMB: 10, SysMB: 40, Goroutines: 8, DBSize: "1.2 MB"}

	out := formatStatusMessage(usage, health)
	if !strings.Contains(out, "2026-08-28") || !strings.Contains(out, "12 chamadas (1 falhas)") {
		t.Errorf("Expected usage line in output, got:\n%s", out)
	}
	if !strings.Contains(out, "1.2 MB") {
		t.Errorf("Expected database size in output, got:\n%s", out)
	}
}
