package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"verba.fyi/verba/internal/cli"
	"verba.fyi/verba/internal/config"
	"verba.fyi/verba/internal/translation"
)

func runEngines(args []string) int {
	fs := flag.NewFlagSet("engines", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	jsonOutput := fs.Bool("json", false, "Print engines as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
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

	registry := translation.NewRegistryFromConfig(cfg)
	descriptors := registry.Descriptors()

	if *jsonOutput {
		return printJSON(descriptors)
	}

	defaultEngine := registry.DefaultEngine()
	for _, desc := range descriptors {
		state := "disabled"
		if desc.Enabled {
			state = "enabled"
		}
		marker := " "
		if desc.ID == defaultEngine && desc.Enabled {
			marker = "*"
		}
		fmt.Printf("%s %-10s %-20s %-8s default model: %s\n",
			marker, desc.ID, desc.DisplayName, state, desc.DefaultModel)
	}
	return 0
}

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	jsonOutput := fs.Bool("json", false, "Print languages as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	options := translation.LanguageOptions()
	if *jsonOutput {
		return printJSON(options)
	}

	for _, option := range options {
		fmt.Printf("%-6s %s\n", option.Code, option.Label)
	}
	return 0
}
