package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/itzfew/eduhub-bot/internal/config"
	"github.com/itzfew/eduhub-bot/internal/delivery/telegram"
	"github.com/itzfew/eduhub-bot/internal/delivery/webhook"
	"github.com/itzfew/eduhub-bot/internal/infra/cashfree"
	"github.com/itzfew/eduhub-bot/internal/infra/postgres"
	"github.com/itzfew/eduhub-bot/internal/infra/postgres/repository"
	"github.com/itzfew/eduhub-bot/internal/infra/telegraph"
	"github.com/itzfew/eduhub-bot/internal/logger"
	"github.com/itzfew/eduhub-bot/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zl.Fatal("failed to initialize bot", zap.Error(err))
	}
	zl.Info("authorized on telegram", zap.String("username", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "chapter",
			Description: "Get quiz questions for a chapter (usage: /chapter living world 2)",
		},
		{
			Command:     "subject",
			Description: "Get quiz questions for a subject (usage: /subject biology 2)",
		},
		{
			Command:     "random",
			Description: "Get random quiz questions",
		},
		{
			Command:     "pyq",
			Description: "Previous year questions across all subjects",
		},
		{
			Command:     "about",
			Description: "About this bot",
		},
		{
			Command:     "pay",
			Description: "Support the project",
		},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
		MaxConns:        cfg.DB.MaxConnections,
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool, zl)
	contentKeyRepo := repository.NewContentKeyRepository(pool)

	messenger := telegram.NewMessenger(bot)
	pages := telegraph.NewClient(
		cfg.Telegraph.ShortName,
		cfg.Telegraph.AuthorName,
		cfg.Telegraph.AuthorURL,
	)
	dispatcher := service.NewDispatcher(questionRepo, messenger, pages, zl)

	var payments telegram.PaymentLinker
	if cfg.Cashfree.AppID != "" && cfg.Cashfree.SecretKey != "" {
		cf := cashfree.NewClient(
			cfg.Cashfree.APIURL,
			cfg.Cashfree.AppID,
			cfg.Cashfree.SecretKey,
			cfg.Cashfree.ReturnURL,
			cfg.Cashfree.NotifyURL,
		)
		payments = cf

		runWebhookServer(ctx, zl, cfg, webhook.NewHandler(cf, messenger, zl, cfg.AdminChatID))
	}

	handler := telegram.NewHandler(
		bot,
		zl,
		dispatcher,
		contentKeyRepo,
		payments,
		cfg.ChannelID,
		cfg.Batch,
	)

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zl.Fatal("handler stopped", zap.Error(err))
	}

	zl.Info("shutdown signal received")
}

// runWebhookServer serves the payment callback endpoint until the root
// context is cancelled.
func runWebhookServer(ctx context.Context, zl *zap.Logger, cfg *config.Config, h http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/api/webhook", h)
	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: mux}

	go func() {
		zl.Info("payment webhook listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("webhook server stopped", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
