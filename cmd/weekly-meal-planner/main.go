package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"weekly-meal-planner/internal/app"
	"weekly-meal-planner/internal/config"
	"weekly-meal-planner/internal/database"
	"weekly-meal-planner/internal/importer"
	"weekly-meal-planner/internal/llm"
	"weekly-meal-planner/internal/metrics"
	"weekly-meal-planner/internal/server"
	"weekly-meal-planner/internal/store"
	"weekly-meal-planner/internal/suggest"
)

func main() {
	godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	metricsStore := metrics.NewStore(db.SQL)
	go sweepOldMetrics(metricsStore)

	textGen := newTextGenerator(ctx, cfg)
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}

	var suggestSvc *suggest.Service
	var recipeImporter *importer.Importer
	if textGen != nil {
		suggestSvc = suggest.NewService(textGen, metricsStore)
		recipeImporter = importer.NewImporter(textGen, metricsStore)
		log.Printf("AI features enabled via %s", textGen.Model())
	} else {
		log.Println("No LLM key configured; suggestions and recipe import disabled")
	}

	svc := app.NewService(store.New(db.SQL), suggestSvc, recipeImporter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(svc, cfg.AllowedOrigins).Handler(),
	}

	go func() {
		log.Printf("Planner API listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}

// sweepOldMetrics drops LLM call records older than 30 days, once at
// startup and then daily.
func sweepOldMetrics(metricsStore *metrics.Store) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		if err := metricsStore.Cleanup(30); err != nil {
			log.Printf("Warning: failed to clean up old metrics: %v", err)
		}
		<-ticker.C
	}
}

// newTextGenerator picks the LLM backend: Gemini when its key is present,
// Groq as fallback, nil when neither is configured.
func newTextGenerator(ctx context.Context, cfg *config.Config) llm.TextGenerator {
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		return client
	}
	if cfg.GroqAPIKey != "" {
		return llm.NewGroqClient(cfg)
	}
	return nil
}
