package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"verba.fyi/verba/internal/cli"
	"verba.fyi/verba/internal/config"
	"verba.fyi/verba/internal/history"
	"verba.fyi/verba/internal/httpapi"
	"verba.fyi/verba/internal/langdetect"
	"verba.fyi/verba/internal/logging"
	"verba.fyi/verba/internal/translation"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	host := fs.String("host", "0.0.0.0", "Host interface to bind")
	port := fs.Int("port", 8080, "HTTP port")
	readTimeout := fs.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", 60*time.Second, "HTTP write timeout")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *port <= 0 || *port > 65535 {
		fmt.Fprintln(os.Stderr, "--port must be between 1 and 65535")
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	registry := translation.NewRegistryFromConfig(cfg)
	if len(registry.EnabledIDs()) == 0 {
		logger.Warn().Msg("no translation engines have credentials configured")
	}

	detector := langdetect.New()
	svc := translation.NewService(registry, detector, logger, translation.Options{
		EngineTimeout: cfg.EngineTimeout,
		MaxTextLength: cfg.MaxTextLength,
		KeywordLimit:  cfg.KeywordLimit,
	})

	var store *history.Store
	if cfg.HistoryEnabled() {
		store, err = history.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Error().Err(err).Msg("failed to open history store")
			return 1
		}
		logger.Info().Msg("translation history store enabled")
	} else {
		logger.Info().Msg("translation history store disabled (DATABASE_URL unset)")
	}

	server := httpapi.NewServer(svc, registry.Descriptors(), detector, store, logger, httpapi.Options{
		Host:            *host,
		Port:            *port,
		ReadTimeout:     *readTimeout,
		WriteTimeout:    *writeTimeout,
		ShutdownTimeout: *shutdownTimeout,
		AllowedOrigins:  cfg.CORSAllowedOriginsList(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return 1
	}
	return 0
}
