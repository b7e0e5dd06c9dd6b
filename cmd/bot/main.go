package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"

	arogyabot "github.com/arogya-mitra/arogyabot"
	"github.com/arogya-mitra/arogyabot/internal/config"
	"github.com/arogya-mitra/arogyabot/internal/gateway"
	"github.com/arogya-mitra/arogyabot/internal/handler"
	"github.com/arogya-mitra/arogyabot/internal/middleware"
	"github.com/arogya-mitra/arogyabot/internal/repository"
	"github.com/arogya-mitra/arogyabot/internal/service"
	"github.com/arogya-mitra/arogyabot/internal/session"
	"github.com/arogya-mitra/arogyabot/internal/telegram"
)

func main() {
	// .env is optional, env vars take precedence
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(arogyabot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize services
	userService := service.NewUserService(pool)
	recordService := service.NewRecordService(pool)
	catalogService := service.NewCatalogService(cfg.JanAushadhiURL)

	var speechService *service.SpeechService
	if cfg.OpenAIAPIKey != "" {
		speechService = service.NewSpeechService(cfg.OpenAIAPIKey, cfg.SpeechVoice)
	}

	inference := gateway.NewClient(cfg.BackendURL)

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(),
			middleware.UserLoader(userService),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			switch {
			case update.Message.Voice != nil:
				h.HandleVoice(ctx, b, update)
			case len(update.Message.Photo) > 0:
				h.HandlePhoto(ctx, b, update)
			case update.Message.Location != nil:
				h.HandleLocation(ctx, b, update)
			}
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Per-chat conversation sessions. Voice replies are enabled only when
	// a speech key is configured.
	sessions := session.NewManager(func(chatID int64) *session.Controller {
		var opts []session.Option
		if speechService != nil {
			opts = append(opts, session.WithSpeaker(telegram.NewSpeaker(b, chatID, speechService)))
		}
		return session.NewController(inference, cfg.DefaultLanguage, opts...)
	})

	// Initialize admin notifier
	notifier := telegram.NewNotifier(b, cfg.LogChatID)

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:      b,
		Cfg:      cfg,
		Sessions: sessions,
		Users:    userService,
		Records:  recordService,
		Catalog:  catalogService,
		Notifier: notifier,
	})

	// Register all handlers
	h.Register()

	// Register default text handler for chat messages
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		// Skip commands
		if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
			return
		}
		h.HandleText(ctx, b, update)
	})

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}
