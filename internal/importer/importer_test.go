package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type mockTextGenerator struct {
	response string
	prompts  []string
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.response, nil
}

func (m *mockTextGenerator) Model() string {
	return "mock-model"
}

const recipePage = `<html><head>
<script>tracking();</script>
<style>body { color: red }</style>
</head><body>
<nav>Home | Receitas</nav>
<h1>Bolo de Cenoura</h1>
<ul><li>3 cenouras</li><li>2 xícaras de farinha</li></ul>
<footer>Rodapé do site</footer>
</body></html>`

func TestImportURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(recipePage))
	}))
	defer srv.Close()

	gen := &mockTextGenerator{
		response: `{
			"dishName": "Bolo de Cenoura",
			"ingredients": [
				{"name": "Cenoura", "quantity": 3, "unit": "un"},
				{"name": "Farinha", "quantity": 2, "unit": "xícara"}
			],
			"steps": ["Bater tudo", "Assar por 40 minutos"]
		}`,
	}
	im := NewImporter(gen, nil)

	entry, err := im.ImportURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ImportURL failed: %v", err)
	}

	if entry.DishName != "Bolo de Cenoura" {
		t.Errorf("Expected dish name 'Bolo de Cenoura', got '%s'", entry.DishName)
	}
	if len(entry.Ingredients) != 2 {
		t.Fatalf("Expected 2 ingredients, got %d", len(entry.Ingredients))
	}
	if entry.Ingredients[0].ID == "" || entry.Ingredients[0].ID == entry.Ingredients[1].ID {
		t.Error("Expected fresh distinct ingredient IDs")
	}
	if entry.PreparationMethod != "Bater tudo\nAssar por 40 minutos" {
		t.Errorf("Unexpected preparation method '%s'", entry.PreparationMethod)
	}

	// The prompt must carry the page text but not scripts or styles.
	if len(gen.prompts) != 1 {
		t.Fatalf("Expected 1 LLM call, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Bolo de Cenoura") || !strings.Contains(prompt, "3 cenouras") {
		t.Error("Expected prompt to contain the page text")
	}
	if strings.Contains(prompt, "tracking()") || strings.Contains(prompt, "color: red") {
		t.Error("Expected scripts and styles to be stripped from the prompt")
	}
	if strings.Contains(prompt, "Rodapé do site") {
		t.Error("Expected footer to be stripped from the prompt")
	}
}

func TestImportURLUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	im := NewImporter(&mockTextGenerator{}, nil)
	if _, err := im.ImportURL(context.Background(), srv.URL); err == nil {
		t.Fatal("Expected an error for a 404 page, got nil")
	}
}

func TestImportURLNoRecipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Sobre nós</body></html>"))
	}))
	defer srv.Close()

	im := NewImporter(&mockTextGenerator{response: `{"dishName": ""}`}, nil)
	if _, err := im.ImportURL(context.Background(), srv.URL); err == nil {
		t.Fatal("Expected an error when the page holds no recipe, got nil")
	}
}

func TestImportURLWithoutBackend(t *testing.T) {
	im := NewImporter(nil, nil)
	if _, err := im.ImportURL(context.Background(), "http://example.test"); err == nil {
		t.Fatal("Expected an error without a text generation backend")
	}
}
