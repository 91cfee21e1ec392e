package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/conorfennell/cardtally/internal/cli"
	"github.com/conorfennell/cardtally/internal/config"
	"github.com/conorfennell/cardtally/internal/gitsource"
	"github.com/spf13/pflag"
)

func main() {
	// 1. Load config from file, environment, and flags
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Diagnostics go to stderr so they never mix with the session
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 3. Fetch the deck repository if one is configured
	if cfg.Deck.Repo != "" {
		if cfg.Deck.Dir == "" {
			cfg.Deck.Dir, err = gitsource.LocalPath(cfg.Deck.ReposDir, cfg.Deck.Repo)
			if err != nil {
				log.Fatalf("Failed to derive deck directory: %v", err)
			}
		}
		var progress io.Writer = io.Discard
		if cfg.Level() <= slog.LevelDebug {
			progress = os.Stderr
		}
		if err := gitsource.Sync(ctx, cfg.Deck.Repo, cfg.Deck.Dir, progress); err != nil {
			log.Fatalf("Failed to sync deck repository: %v", err)
		}
	}

	// 4. Run the session
	session := cli.New(os.Stdin, os.Stdout, cli.Options{
		ImportFrom: cfg.ImportFrom,
		ExportTo:   cfg.ExportTo,
		DeckDir:    cfg.Deck.Dir,
		Seed:       cfg.Seed,
	})
	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Session %s ended with error: %v", session.ID(), err)
	}
}
