// Package telegram is the chat surface of the planner: a webhook bot that
// reads and edits the same weekly plan the web client does.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"weekly-meal-planner/internal/app"
	"weekly-meal-planner/internal/config"
	"weekly-meal-planner/internal/editor"
	"weekly-meal-planner/internal/metrics"
	"weekly-meal-planner/internal/plan"
)

// Bot wraps the Telegram API around the application service.
type Bot struct {
	api          *tgbotapi.BotAPI
	svc          *app.Service
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the webhook.
func NewBot(cfg *config.Config, svc *app.Service, metricsStore *metrics.Store) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		svc:          svc,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start" || text == "/help" || text == "/ajuda":
		b.reply(msg.Chat.ID, helpMessage())
	case text == "/semana":
		b.reply(msg.Chat.ID, formatPlanMessage(b.svc.Data()))
	case text == "/compras":
		b.reply(msg.Chat.ID, formatShoppingMessage(b.svc.ShoppingList()))
	case text == "/pdf":
		b.handlePDFRequest(msg.Chat.ID)
	case text == "/status":
		b.handleStatusRequest(msg.Chat.ID)
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleImportRequest(msg.Chat.ID, text)
	default:
		b.handleSetMealRequest(msg.Chat.ID, text)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) handlePDFRequest(chatID int64) {
	out, err := b.svc.ExportPDF()
	if err != nil {
		log.Printf("Failed to export PDF: %v", err)
		b.reply(chatID, "❌ Não consegui gerar o PDF.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "plano-semanal.pdf",
		Bytes: out,
	})
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("Failed to send PDF document: %v", err)
	}
}

func (b *Bot) handleStatusRequest(chatID int64) {
	usage, err := b.metricsStore.RecentUsage(7)
	if err != nil {
		log.Printf("Failed to fetch usage metrics: %v", err)
		b.reply(chatID, "❌ Erro ao buscar métricas.")
		return
	}
	health := metrics.GetSysHealth(b.cfg.DatabasePath)
	b.reply(chatID, formatStatusMessage(usage, health))
}

func (b *Bot) handleImportRequest(chatID int64, url string) {
	statusMsg := tgbotapi.NewMessage(chatID, "✂️ *Importando receita...*")
	statusMsg.ParseMode = "Markdown"
	sent, err := b.api.Send(statusMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	entry, err := b.svc.ImportRecipe(ctx, url)
	var finalText string
	if err != nil {
		log.Printf("Error importing recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Erro ao importar:*\n```\n%v\n```", safeErr)
	} else {
		finalText = formatImportedEntry(entry)
	}

	edit := tgbotapi.NewEditMessageText(chatID, sent.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

// handleSetMealRequest handles free-form messages of the shape
// "terça jantar: Strogonoff". Unrecognized messages get the help text.
func (b *Bot) handleSetMealRequest(chatID int64, text string) {
	req, ok := parseSetMeal(text, b.svc.Data().Categories)
	if !ok {
		b.reply(chatID, helpMessage())
		return
	}

	// The chat flow also composes the entry through the edit buffer, so it
	// behaves exactly like the web editor (existing rows kept, suggestions
	// appended, change applied only on commit).
	var initial *plan.MealEntry
	if existing, ok := b.svc.Meal(req.DayIndex, req.CategoryID); ok {
		initial = &existing
	}
	ed := editor.New(initial)
	ed.SetDishName(req.DishName)

	if b.svc.SuggestionsEnabled() && len(ed.Ingredients()) == 0 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		ed.AppendSuggestions(b.svc.SuggestIngredients(ctx, req.DishName))
		cancel()
	}

	entry := ed.Commit()
	if err := b.svc.SaveMeal(req.DayIndex, req.CategoryID, entry); err != nil {
		log.Printf("Failed to save meal from chat: %v", err)
		b.reply(chatID, "❌ Não consegui salvar a refeição.")
		return
	}

	reply := fmt.Sprintf("✅ *%s* marcado para *%s* (%s).", req.DishName, plan.DaysOfWeek[req.DayIndex], req.CategoryName)
	if len(entry.Ingredients) > 0 {
		reply += fmt.Sprintf("\n🥕 %d ingredientes sugeridos adicionados.", len(entry.Ingredients))
	}
	b.reply(chatID, reply)
}
