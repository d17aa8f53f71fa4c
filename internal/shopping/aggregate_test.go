package shopping

import (
	"reflect"
	"strings"
	"testing"

	"weekly-meal-planner/internal/plan"
)

func TestAggregateEmptyPlan(t *testing.T) {
	list := Aggregate(plan.Plan{})
	if len(list) != 0 {
		t.Errorf("Expected empty list, got %v", list)
	}
}

func TestAggregateSumsAcrossEntries(t *testing.T) {
	p := plan.Plan{
		"0-almoco": {
			DishName: "A",
			Ingredients: []plan.Ingredient{
				{ID: "1", Name: "Egg", Quantity: 2, Unit: "un"},
			},
		},
		"1-jantar": {
			DishName: "B",
			Ingredients: []plan.Ingredient{
				{ID: "2", Name: "egg", Quantity: 3, Unit: "UN"},
			},
		},
	}

	list := Aggregate(p)
	if len(list) != 1 {
		t.Fatalf("Expected a single aggregated line, got %v", list)
	}
	// Key "0-almoco" sorts first, so its casing wins.
	if list[0] != "5 un - Egg" {
		t.Errorf("Expected '5 un - Egg', got '%s'", list[0])
	}
}

func TestAggregateGroupsByUnitAndName(t *testing.T) {
	p := plan.Plan{
		"0-almoco": {
			DishName: "A",
			Ingredients: []plan.Ingredient{
				{ID: "1", Name: "Farinha", Quantity: 500, Unit: "g"},
				{ID: "2", Name: "Farinha", Quantity: 1, Unit: "kg"},
				{ID: "3", Name: " Farinha ", Quantity: 250, Unit: "g"},
			},
		},
	}

	list := Aggregate(p)
	want := []string{"1 kg - Farinha", "750 g - Farinha"}
	if !reflect.DeepEqual(list, want) {
		t.Errorf("Expected %v, got %v", want, list)
	}
}

func TestAggregateSkipsEmptyNames(t *testing.T) {
	p := plan.Plan{
		"0-almoco": {
			DishName: "A",
			Ingredients: []plan.Ingredient{
				{ID: "1", Name: "", Quantity: 3, Unit: "un"},
				{ID: "2", Name: "   ", Quantity: 3, Unit: "un"},
				{ID: "3", Name: "Ovo", Quantity: 3, Unit: "un"},
			},
		},
	}

	list := Aggregate(p)
	if len(list) != 1 || list[0] != "3 un - Ovo" {
		t.Errorf("Expected only '3 un - Ovo', got %v", list)
	}
}

func TestAggregateSentinelUnit(t *testing.T) {
	p := plan.Plan{
		"0-almoco": {
			DishName: "A",
			Ingredients: []plan.Ingredient{
				{ID: "1", Name: "Sal", Quantity: 7, Unit: "a gosto"},
			},
		},
	}

	list := Aggregate(p)
	if len(list) != 1 {
		t.Fatalf("Expected 1 line, got %v", list)
	}
	if list[0] != "Sal (a gosto)" {
		t.Errorf("Expected 'Sal (a gosto)', got '%s'", list[0])
	}
	if strings.Contains(list[0], "7") {
		t.Error("Sentinel unit must never render a quantity")
	}
}

func TestAggregateQuantityFormatting(t *testing.T) {
	cases := []struct {
		quantity float64
		want     string
	}{
		{2, "2 un - X"},
		{2.5, "2.5 un - X"},
		{1.234, "1.23 un - X"},
		{1.999, "2 un - X"},
		{0.1 + 0.2, "0.3 un - X"},
	}

	for _, tc := range cases {
		p := plan.Plan{
			"0-almoco": {
				DishName: "A",
				Ingredients: []plan.Ingredient{
					{ID: "1", Name: "X", Quantity: tc.quantity, Unit: "un"},
				},
			},
		}
		list := Aggregate(p)
		if len(list) != 1 || list[0] != tc.want {
			t.Errorf("Quantity %v: expected '%s', got %v", tc.quantity, tc.want, list)
		}
	}
}

func TestAggregateSortsLexicographically(t *testing.T) {
	p := plan.Plan{
		"0-almoco": {
			DishName: "A",
			Ingredients: []plan.Ingredient{
				{ID: "1", Name: "Tomate", Quantity: 4, Unit: "un"},
				{ID: "2", Name: "Arroz", Quantity: 500, Unit: "g"},
				{ID: "3", Name: "Sal", Quantity: 0, Unit: "a gosto"},
			},
		},
	}

	list := Aggregate(p)
	want := []string{"4 un - Tomate", "500 g - Arroz", "Sal (a gosto)"}
	if !reflect.DeepEqual(list, want) {
		t.Errorf("Expected %v, got %v", want, list)
	}
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	entryA := plan.MealEntry{
		DishName:    "A",
		Ingredients: []plan.Ingredient{{ID: "1", Name: "Ovo", Quantity: 2, Unit: "un"}},
	}
	entryB := plan.MealEntry{
		DishName:    "B",
		Ingredients: []plan.Ingredient{{ID: "2", Name: "ovo", Quantity: 3, Unit: "un"}},
	}

	first := Aggregate(plan.Plan{"0-a": entryA, "1-b": entryB})
	second := Aggregate(plan.Plan{"1-b": entryB, "0-a": entryA})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregation depends on construction order: %v vs %v", first, second)
	}
}
