package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"verba.fyi/verba/internal/cli"
	"verba.fyi/verba/internal/translation"
)

func runCompare(args []string) int {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	source := fs.String("source", "auto", "Source language (ISO 639-1 or \"auto\")")
	target := fs.String("target", "", "Target language (ISO 639-1, for example: en, zh)")
	engines := fs.String("engines", "", "Comma-separated engine ids; empty uses every enabled engine")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "compare requires exactly one text argument")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: verba compare [flags] \"text to translate\"")
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

	engineIDs := splitEngineList(*engines)
	if len(engineIDs) == 0 {
		engineIDs = svc.Registry().EnabledIDs()
	}
	if len(engineIDs) == 0 {
		fmt.Fprintln(os.Stderr, "no translation engines are configured")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := svc.Compare(ctx, translation.CompareRequest{
		SourceText: text,
		SourceLang: *source,
		TargetLang: *target,
		EngineIDs:  engineIDs,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Comparison failed: %v\n", err)
		return 1
	}

	return printJSON(result)
}

func splitEngineList(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
