package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixstiven/wog-agent/internal/adapters/llm"
	"github.com/felixstiven/wog-agent/internal/adapters/storage/memory"
	"github.com/felixstiven/wog-agent/internal/adapters/storage/sheets"
	"github.com/felixstiven/wog-agent/internal/app/chat"
	"github.com/felixstiven/wog-agent/internal/app/leads"
	"github.com/felixstiven/wog-agent/internal/config"
	"github.com/felixstiven/wog-agent/internal/domain"
	"github.com/felixstiven/wog-agent/internal/observability"

	httpadapter "github.com/felixstiven/wog-agent/internal/adapters/http"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.IsDevelopment())

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	var model domain.ModelClient
	if cfg.UseMockModel {
		logger.Warn().Msg("using mock model, replies are canned")
		model = llm.NewMockModel()
	} else {
		gemini, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:          cfg.GoogleAPIKey,
			ModelName:       cfg.ModelName,
			MaxOutputTokens: cfg.MaxOutputTokens,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("creating gemini client")
		}
		model = gemini
	}

	var leadStore domain.LeadStore
	switch cfg.LeadsBackend {
	case "sheets":
		store, err := sheets.NewLeadStore(ctx, sheets.Config{
			SpreadsheetID:     cfg.SheetID,
			CredentialsPath:   cfg.CredentialsPath,
			CredentialsBase64: cfg.CredentialsBase64,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("creating sheets lead store")
		}
		leadStore = store
	default:
		logger.Warn().Msg("using in-memory lead store, leads are lost on restart")
		leadStore = memory.NewLeadStore()
	}

	chatSvc := chat.NewService(model, memory.NewSessionStore(), logger, chat.Options{
		HistoryWindow: cfg.HistoryWindow,
		ModelTimeout:  cfg.ModelTimeout,
	})
	leadsSvc := leads.NewService(leadStore, logger)

	handler := httpadapter.NewServer(chatSvc, leadsSvc, logger, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("model", cfg.ModelName).
			Bool("mock_model", cfg.UseMockModel).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server stopped")
}
