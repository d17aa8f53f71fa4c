// Package suggest asks the configured LLM for ingredient suggestions for a
// dish name. It is a best-effort collaborator: every failure mode collapses
// to an empty suggestion list, logged, never surfaced.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"weekly-meal-planner/internal/llm"
	"weekly-meal-planner/internal/metrics"
	"weekly-meal-planner/internal/plan"
)

// suggestedIngredient is the shape the prompt asks the model to return.
type suggestedIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Service generates ingredient suggestions.
type Service struct {
	textGen      llm.TextGenerator
	metricsStore *metrics.Store
}

// NewService creates a suggestion service. textGen may be nil when no LLM
// backend is configured; suggestions are then always empty. metricsStore may
// be nil to skip usage recording.
func NewService(textGen llm.TextGenerator, metricsStore *metrics.Store) *Service {
	return &Service{textGen: textGen, metricsStore: metricsStore}
}

// Enabled reports whether a text generation backend is configured.
func (s *Service) Enabled() bool {
	return s.textGen != nil
}

// SuggestIngredients returns AI-suggested ingredients for the dish, with
// freshly generated IDs. An empty dish name, a transport error or a
// malformed response all yield an empty list.
func (s *Service) SuggestIngredients(ctx context.Context, dishName string) []plan.Ingredient {
	dishName = strings.TrimSpace(dishName)
	if dishName == "" || s.textGen == nil {
		return nil
	}

	start := time.Now()
	response, err := s.textGen.GenerateContent(ctx, buildPrompt(dishName))
	s.record(time.Since(start), err == nil)
	if err != nil {
		log.Printf("Ingredient suggestion failed for %q: %v", dishName, err)
		return nil
	}

	var raw []suggestedIngredient
	if err := json.Unmarshal([]byte(strings.TrimSpace(response)), &raw); err != nil {
		log.Printf("Failed to parse suggestion response for %q: %v", dishName, err)
		return nil
	}

	ingredients := make([]plan.Ingredient, 0, len(raw))
	for _, item := range raw {
		unit := item.Unit
		if unit == "" {
			unit = plan.BaseUnit
		}
		ingredients = append(ingredients, plan.Ingredient{
			ID:       plan.NewIngredientID(),
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     unit,
		})
	}
	return ingredients
}

func (s *Service) record(latency time.Duration, ok bool) {
	if s.metricsStore == nil {
		return
	}
	err := s.metricsStore.Record(metrics.LLMCall{
		Operation: "suggest",
		Model:     s.textGen.Model(),
		Latency:   latency,
		OK:        ok,
	})
	if err != nil {
		log.Printf("Failed to record suggestion metric: %v", err)
	}
}

func buildPrompt(dishName string) string {
	return fmt.Sprintf(`
Crie uma lista de ingredientes para o prato: "%s".
Estime quantidades para uma receita familiar (4 pessoas).

Retorne APENAS um JSON válido no seguinte formato, sem markdown, sem explicações:
[
  { "name": "Arroz", "quantity": 500, "unit": "g" },
  { "name": "Ovo", "quantity": 4, "unit": "un" }
]

Use unidades padrão como: g, kg, ml, l, un, xícara, colher, dente (para alho), maço, etc.
Se for tempero, use 'a gosto' e quantidade 0.
`, dishName)
}
