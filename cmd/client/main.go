package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mindheaven/mindheaven/backend/internal/client/api"
	"github.com/mindheaven/mindheaven/backend/internal/client/chart"
	"github.com/mindheaven/mindheaven/backend/internal/client/session"
	"github.com/mindheaven/mindheaven/backend/internal/client/tui"
	"github.com/mindheaven/mindheaven/backend/internal/config"
	"github.com/mindheaven/mindheaven/backend/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		serverURL string
		logFile   string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:           "mindheaven",
		Short:         "Talk to MindHeaven from your terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The log file is not open yet; report after logging.SetupFile.
			envErr := loadDotEnv()

			cfg, err := config.LoadClient()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if cmd.Flags().Changed("server") {
				cfg.ServerURL = serverURL
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, envErr)
		},
	}

	cmd.Flags().StringVarP(&serverURL, "server", "s", "", "backend base URL (env MINDHEAVEN_SERVER_URL)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "file to write logs to (env MINDHEAVEN_LOG_FILE)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (env MINDHEAVEN_LOG_LEVEL)")
	return cmd
}

func run(ctx context.Context, cfg *config.ClientConfig, envErr error) error {
	logOutput, err := logging.SetupFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logOutput.Close()

	if envErr != nil {
		log.Warn().Err(envErr).Msg("failed to load .env file, continuing with system environment variables only")
	}

	client, err := api.New(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		return err
	}

	ui := tui.New()
	surface := ui.Surface()
	ctrl := session.New(client, surface,
		session.WithTiming(session.Timing{
			SubmitSettle:    cfg.SubmitSettle,
			ClearSettle:     cfg.ClearSettle,
			ChartDelay:      cfg.ChartDelay,
			HistoryCooldown: cfg.HistoryCooldown,
		}),
		session.WithChart(chart.New(surface.ChartCanvas, surface.ChartContainer,
			chart.WithThrottle(cfg.ChartThrottle),
		)),
	)
	defer ctrl.Close()

	ui.OnSubmit(func(text string) {
		if err := ctrl.Submit(ctx, text); err != nil {
			logRejected("submit", err)
		}
	})
	ui.OnClear(func() {
		if err := ctrl.Clear(ctx); err != nil {
			logRejected("clear", err)
		}
	})

	log.Info().Str("server", cfg.ServerURL).Msg("starting MindHeaven client")
	go ctrl.Bootstrap(ctx)

	return ui.Run(ctx)
}

// loadDotEnv reads .env from the working directory. A missing file is not an
// error.
func loadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func logRejected(action string, err error) {
	if errors.Is(err, session.ErrBusy) || errors.Is(err, session.ErrEmptyMessage) {
		log.Debug().Err(err).Str("action", action).Msg("request ignored")
		return
	}
	log.Warn().Err(err).Str("action", action).Msg("request rejected")
}
