package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"verba.fyi/verba/internal/cli"
	"verba.fyi/verba/internal/config"
	"verba.fyi/verba/internal/langdetect"
	"verba.fyi/verba/internal/logging"
	"verba.fyi/verba/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	source := fs.String("source", "auto", "Source language (ISO 639-1 or \"auto\")")
	target := fs.String("target", "", "Target language (ISO 639-1, for example: en, zh)")
	engine := fs.String("engine", "", "Engine id (for example: openai, google); empty uses the default")
	model := fs.String("model", "", "Engine-specific model name")
	style := fs.String("style", "", "Translation style (natural, formal, casual, technical, literary)")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "translate requires exactly one text argument")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: verba translate [flags] \"text to translate\"")
		return 2
	}
	text := strings.TrimSpace(fs.Arg(0))
	if text == "" {
		fmt.Fprintln(os.Stderr, "text must not be empty")
		return 2
	}
	if strings.TrimSpace(*target) == "" {
		fmt.Fprintln(os.Stderr, "--target is required")
		return 2
	}

	svc, cleanup := buildService(envLoader)
	if svc == nil {
		return 1
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := svc.Translate(ctx, translation.Request{
		SourceText: text,
		SourceLang: *source,
		TargetLang: *target,
		EngineID:   *engine,
		Model:      *model,
		Style:      translation.Style(*style),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
		return 1
	}

	return printJSON(result)
}

// buildService loads configuration and wires a Service for one-shot commands.
// Returns nil on failure after printing the cause.
func buildService(envLoader *cli.EnvLoader) (*translation.Service, func()) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, func() {}
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return nil, func() {}
	}

	registry := translation.NewRegistryFromConfig(cfg)
	svc := translation.NewService(registry, langdetect.New(), logger, translation.Options{
		EngineTimeout: cfg.EngineTimeout,
		MaxTextLength: cfg.MaxTextLength,
		KeywordLimit:  cfg.KeywordLimit,
	})
	return svc, func() {}
}

func printJSON(value any) int {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
		return 1
	}
	return 0
}
