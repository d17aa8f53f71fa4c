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
	"weekly-meal-planner/internal/store"
	"weekly-meal-planner/internal/suggest"
	"weekly-meal-planner/internal/telegram"
)

func main() {
	godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramWebhookURL == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL are required for the bot")
	}

	ctx := context.Background()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	metricsStore := metrics.NewStore(db.SQL)
	go sweepOldMetrics(metricsStore)

	var suggestSvc *suggest.Service
	var recipeImporter *importer.Importer
	if cfg.HasLLM() {
		var textGen llm.TextGenerator
		if cfg.GeminiAPIKey != "" {
			textGen, err = llm.NewGeminiClient(ctx, cfg)
			if err != nil {
				log.Fatalf("Failed to initialize Gemini client: %v", err)
			}
		} else {
			textGen = llm.NewGroqClient(cfg)
		}
		if closer, ok := textGen.(llm.Closer); ok {
			defer closer.Close()
		}
		suggestSvc = suggest.NewService(textGen, metricsStore)
		recipeImporter = importer.NewImporter(textGen, metricsStore)
	}

	svc := app.NewService(store.New(db.SQL), suggestSvc, recipeImporter)

	bot, err := telegram.NewBot(cfg, svc, metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}
	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", cfg.Port)
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
