package pdf

import (
	"bytes"
	"testing"

	"weekly-meal-planner/internal/plan"
)

func TestGenerate(t *testing.T) {
	data := plan.Defaults()
	data.Plan[plan.Key(0, "almoco")] = plan.MealEntry{
		DishName: "Feijoada Completa",
		Ingredients: []plan.Ingredient{
			{ID: "i1", Name: "Feijão Preto", Quantity: 500, Unit: "g"},
		},
	}
	list := []string{"500 g - Feijão Preto", "Sal (a gosto)"}

	out, err := Generate(data, list)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty document")
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", out[:8])
	}
}

func TestGenerateEmptyPlan(t *testing.T) {
	out, err := Generate(plan.Defaults(), nil)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestGenerateLongList(t *testing.T) {
	data := plan.Defaults()
	list := make([]string, 0, 80)
	for i := 0; i < 80; i++ {
		list = append(list, "1 un - Item de Teste")
	}
	out, err := Generate(data, list)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty document")
	}
}
