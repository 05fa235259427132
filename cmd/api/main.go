package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mindheaven/mindheaven/backend/internal/config"
	"github.com/mindheaven/mindheaven/backend/internal/handler"
	chatHandler "github.com/mindheaven/mindheaven/backend/internal/handler/chat"
	"github.com/mindheaven/mindheaven/backend/internal/logging"
	"github.com/mindheaven/mindheaven/backend/internal/model/resource"
	"github.com/mindheaven/mindheaven/backend/internal/service/ai"
	"github.com/mindheaven/mindheaven/backend/internal/service/chat"
	"github.com/mindheaven/mindheaven/backend/internal/service/mood"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Setup(os.Stderr, os.Getenv("LOG_LEVEL"))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("failed to load .env file, continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Setup(os.Stderr, cfg.Server.LogLevel)

	resourceStore := resource.NewMemoryStore(resource.Seed())
	chatService := chat.NewService(chat.Limits{
		History:     cfg.Chat.HistoryLimit,
		MoodHistory: cfg.Chat.MoodHistoryLimit,
		MoodWindow:  cfg.Chat.MoodHistoryWindow,
	})

	responder := newResponder(ctx, cfg.AI)
	companion := mood.NewService(responder, mood.Config{CrisisCheck: cfg.AI.CrisisCheck})

	router := handler.NewRouter(handler.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RatePerMinute:  cfg.Chat.RatePerMinute,
		Cookie: chatHandler.CookieOptions{
			Name:   cfg.Server.SessionCookie,
			Secure: cfg.Server.SecureCookie,
		},
	}, resourceStore, chatService, companion)

	startServer(ctx, cfg.Server, router)
}

// newResponder returns nil when no provider is configured; the companion
// service then answers from its pattern bank.
func newResponder(ctx context.Context, cfg config.AIConfig) ai.Responder {
	if !cfg.Enabled() {
		log.Info().Str("provider", cfg.Provider).Msg("AI credentials not configured, using pattern responses")
		return nil
	}

	switch cfg.Provider {
	case config.ProviderArk:
		chatModel, err := cfg.NewChatModel(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("failed to create Ark chat model, continuing without AI")
			return nil
		}
		svc, err := ai.NewService(ctx, chatModel)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize AI service, continuing without AI")
			return nil
		}
		log.Info().Str("provider", cfg.Provider).Msg("AI service initialized successfully")
		return svc
	default:
		responder, err := ai.NewOpenAIResponder(ai.OpenAIOptions{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.OpenAI.Timeout,
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize OpenAI responder, continuing without AI")
			return nil
		}
		log.Info().Str("provider", cfg.Provider).Str("model", cfg.OpenAI.Model).Msg("AI service initialized successfully")
		return responder
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("MindHeaven backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
