// Package importer turns a recipe web page into a meal entry: fetch, strip
// the page down to text, and let the LLM extract the structured recipe.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"weekly-meal-planner/internal/llm"
	"weekly-meal-planner/internal/metrics"
	"weekly-meal-planner/internal/plan"

	"github.com/PuerkitoBio/goquery"
)

// extractedRecipe is the shape the extraction prompt asks the model for.
type extractedRecipe struct {
	DishName    string `json:"dishName"`
	Ingredients []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	} `json:"ingredients"`
	Steps []string `json:"steps"`
}

// Importer fetches and extracts recipes from URLs.
type Importer struct {
	textGen      llm.TextGenerator
	httpClient   *http.Client
	metricsStore *metrics.Store
}

// NewImporter creates an Importer. metricsStore may be nil.
func NewImporter(textGen llm.TextGenerator, metricsStore *metrics.Store) *Importer {
	return &Importer{
		textGen:      textGen,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		metricsStore: metricsStore,
	}
}

// ImportURL fetches the page and returns a complete meal entry with freshly
// generated ingredient IDs. Unlike suggestions, import failures are returned
// to the caller: the user explicitly asked for this URL and deserves to know
// it did not work.
func (im *Importer) ImportURL(ctx context.Context, url string) (plan.MealEntry, error) {
	if im.textGen == nil {
		return plan.MealEntry{}, fmt.Errorf("no text generation backend configured")
	}

	content, err := im.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return plan.MealEntry{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	start := time.Now()
	response, err := im.textGen.GenerateContent(ctx, buildExtractionPrompt(content))
	im.record(time.Since(start), err == nil)
	if err != nil {
		return plan.MealEntry{}, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted extractedRecipe
	if err := json.Unmarshal([]byte(strings.TrimSpace(response)), &extracted); err != nil {
		return plan.MealEntry{}, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if extracted.DishName == "" {
		return plan.MealEntry{}, fmt.Errorf("no recipe found at %s", url)
	}

	entry := plan.MealEntry{
		DishName:          extracted.DishName,
		PreparationMethod: strings.Join(extracted.Steps, "\n"),
	}
	for _, ing := range extracted.Ingredients {
		unit := ing.Unit
		if unit == "" {
			unit = plan.BaseUnit
		}
		entry.Ingredients = append(entry.Ingredients, plan.Ingredient{
			ID:       plan.NewIngredientID(),
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     unit,
		})
	}
	return entry, nil
}

// fetchAndCleanHTML downloads the page and strips everything the extraction
// prompt does not need, to save LLM tokens.
func (im *Importer) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}

	resp, err := im.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}

func (im *Importer) record(latency time.Duration, ok bool) {
	if im.metricsStore == nil {
		return
	}
	err := im.metricsStore.Record(metrics.LLMCall{
		Operation: "import",
		Model:     im.textGen.Model(),
		Latency:   latency,
		OK:        ok,
	})
	if err != nil {
		log.Printf("Failed to record import metric: %v", err)
	}
}

func buildExtractionPrompt(content string) string {
	return fmt.Sprintf(`
Você é um extrator de receitas. Extraia a receita do conteúdo de página abaixo.

Retorne APENAS um JSON válido com esta estrutura, sem markdown, sem explicações:
{
  "dishName": "Nome do Prato",
  "ingredients": [
    { "name": "Arroz", "quantity": 500, "unit": "g" }
  ],
  "steps": ["Passo 1", "Passo 2"]
}

Use unidades padrão como: g, kg, ml, l, un, xícara, colher, fatia, pacote, lata.
Se for tempero sem quantidade definida, use 'a gosto' e quantidade 0.
Se a página não contiver uma receita, retorne {"dishName": ""}.

Conteúdo da página:
%s
`, content)
}
