// Command seeder loads a tab-separated word list into the lexicon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/wortlab/mygerman-backend/internal/adapter/postgres"
	"github.com/wortlab/mygerman-backend/internal/adapter/postgres/lexicon"
	"github.com/wortlab/mygerman-backend/internal/app"
	"github.com/wortlab/mygerman-backend/internal/config"
	"github.com/wortlab/mygerman-backend/internal/seeder"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	file := flag.String("file", "", "path to the tab-separated seed file")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall seeding timeout")
	flag.Parse()

	if *file == "" {
		return fmt.Errorf("usage: seeder -file <words.tsv>")
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := app.NewLogger(cfg.Log)

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	records, err := seeder.Parse(f)
	if err != nil {
		return err
	}
	log.Info("seed file parsed", slog.Int("records", len(records)))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	repo := lexicon.New(pool, txm)

	stats, err := seeder.New(log, repo).Seed(ctx, records)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	fmt.Printf("created %d, skipped %d\n", stats.Created, stats.Skipped)
	return nil
}
