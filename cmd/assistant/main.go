package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/ledger-calendar-bot/assistant/api"
	middlewares "github.com/ledger-calendar-bot/assistant/api/middlewares"
	assistant "github.com/ledger-calendar-bot/assistant/assistant"
	auth "github.com/ledger-calendar-bot/assistant/auth"
	calendar "github.com/ledger-calendar-bot/assistant/calendar"
	config "github.com/ledger-calendar-bot/assistant/config"
	ledger "github.com/ledger-calendar-bot/assistant/ledger"
	l "github.com/ledger-calendar-bot/assistant/logger"
	otel "github.com/ledger-calendar-bot/assistant/otel"
	telegram "github.com/ledger-calendar-bot/assistant/telegram"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sethvargo/go-envconfig"
	"google.golang.org/api/option"
)

func main() {
	var config config.Config
	cfg, err := config.Load(envconfig.OsLookuper())
	if err != nil {
		log.Printf("Config load error: %v", err)
		return
	}

	var logger l.Logger
	logger, err = l.NewLogger(cfg.Environment)
	if err != nil {
		log.Printf("Logger init error: %v", err)
		return
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	telemetry := &otel.OpenTelemetryImpl{}
	if cfg.EnableTelemetry {
		if err := telemetry.Init(cfg, registry); err != nil {
			logger.Error("OpenTelemetry init error", err)
			return
		}
	}

	oauthConfig, err := auth.LoadClientConfig(cfg.Google.CredentialsJSON, auth.Scopes...)
	if err != nil {
		logger.Error("Failed to load Google client secret", err)
		return
	}
	session := auth.NewSession(
		oauthConfig,
		&auth.FileTokenStore{Path: cfg.Google.TokenPath},
		&auth.LoopbackConsent{Logger: logger},
		logger.With("component", "auth"),
	)
	if err := session.Acquire(ctx); err != nil {
		logger.Error("Google authorization failed", err)
		return
	}

	loc := cfg.Location()
	sheets, err := ledger.NewSheetsLedger(ctx, cfg.SpreadsheetID, cfg.Google.SheetRange, logger, option.WithTokenSource(session))
	if err != nil {
		logger.Error("Failed to initialize ledger", err)
		return
	}
	events, err := calendar.NewGoogleCalendar(ctx, cfg.Google.CalendarID, loc, logger, option.WithTokenSource(session))
	if err != nil {
		logger.Error("Failed to initialize calendar", err)
		return
	}

	botAPI, err := telegram.Connect(cfg.Telegram)
	if err != nil {
		logger.Error("Telegram init error", err)
		return
	}
	logger.Info("Connected to telegram", "username", botAPI.Self.UserName)

	handler := assistant.NewAssistant(sheets, events, logger, telemetry, loc)
	bot := telegram.NewBot(botAPI, handler, logger.With("component", "telegram"), cfg.Telegram.PollTimeout)

	loggerMiddleware, err := middlewares.NewLoggerMiddleware(logger)
	if err != nil {
		logger.Error("Failed to initialize logger middleware", err)
		return
	}

	router := api.NewRouter(cfg, logger, registry)
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      api.NewEngine(router, loggerMiddleware.Middleware()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting health server", "port", cfg.Server.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ListenAndServe error", err)
		}
	}()

	if err := bot.Run(ctx); err != nil {
		logger.Error("Bot stopped with error", err)
	}
	logger.Info("Shutting down...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("Server Shutdown error", err)
	} else {
		logger.Info("Server gracefully stopped")
	}

	if err := telemetry.Shutdown(ctxShutdown); err != nil {
		logger.Error("Telemetry shutdown error", err)
	}
}
