// Command mealbook is a personal recipe book and meal planner.
//
// Usage:
//
//	mealbook [-config file] [-data file] [-backend json|yaml|sqlite|memory] [-seed] [-verbose] [-quiet]
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/mealbook/internal/config"
	"github.com/hammamikhairi/mealbook/internal/conversation"
	"github.com/hammamikhairi/mealbook/internal/display"
	"github.com/hammamikhairi/mealbook/internal/logger"
	"github.com/hammamikhairi/mealbook/internal/recipe"
	"github.com/hammamikhairi/mealbook/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "config file (default: ./mealbook.{yaml,json,toml} if present)")
	dataFile := flag.String("data", "", "recipe data file (overrides config)")
	backend := flag.String("backend", "", "storage backend: json, yaml, sqlite or memory (default: by file extension)")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	seed := flag.Bool("seed", false, "add the sample recipes before starting")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *dataFile != "" {
		cfg.Data.File = *dataFile
	}
	if *backend != "" {
		cfg.Data.Backend = *backend
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *noColor {
		cfg.Display.Color = false
	}

	// Configure logger.
	logLevel := logger.ParseLevel(cfg.Log.Level)
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the prompt stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.Log.File != "" && cfg.Log.File != "stderr" {
		if dir := filepath.Dir(cfg.Log.File); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.Log.File, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}
	log := logger.New(logLevel, logOut)
	defer log.Sync()

	ctx := context.Background()

	// Wire dependencies.
	gateway, err := storage.Open(cfg.Data.Backend, cfg.Data.File, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if c, ok := gateway.(io.Closer); ok {
		defer c.Close()
	}

	store := recipe.NewStore(ctx, gateway, log)
	printer := display.New(os.Stdout, cfg.Display.Color)

	app := &cliApp{
		store:   store,
		parser:  conversation.NewKeywordParser(log),
		printer: printer,
		in:      bufio.NewScanner(os.Stdin),
		cfg:     cfg,
		log:     log,
	}

	printer.Banner()
	if w := store.LoadWarning(); w != nil {
		printer.Error("Warning: could not load %s: %v", cfg.Data.File, w)
		printer.Error("Starting with an empty collection; the file is replaced on the next change.")
	}

	if *seed {
		app.seed(ctx)
	} else if store.Len() == 0 {
		app.offerSamples(ctx)
	}

	printer.Hint("Type 'help' for commands, 'quit' to exit.")
	app.run(ctx)
}
