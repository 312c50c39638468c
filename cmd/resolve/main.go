// Command resolve runs a single lexical resolution from the command line and
// prints the outcome as JSON. Useful for smoke-testing the engine against a
// live database without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/wortlab/mygerman-backend/internal/adapter/postgres"
	"github.com/wortlab/mygerman-backend/internal/adapter/postgres/lexicon"
	"github.com/wortlab/mygerman-backend/internal/adapter/provider/anthropic"
	"github.com/wortlab/mygerman-backend/internal/app"
	"github.com/wortlab/mygerman-backend/internal/config"
	"github.com/wortlab/mygerman-backend/internal/service/enrichment"
	"github.com/wortlab/mygerman-backend/internal/service/resolver"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	noEnrich := flag.Bool("no-enrich", false, "disable external-model enrichment")
	timeout := flag.Duration("timeout", 60*time.Second, "overall resolution timeout")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: resolve [flags] <word>")
	}
	word := flag.Arg(0)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	repo := lexicon.New(pool, txm)

	rcfg := resolver.Config{
		FuzzyAutoAccept:   cfg.Resolver.FuzzyAutoAccept,
		FuzzyDisplayFloor: cfg.Resolver.FuzzyDisplayFloor,
		FuzzyMinLength:    cfg.Resolver.FuzzyMinLength,
		LengthWindow:      cfg.Resolver.LengthWindow,
		CandidateLimit:    cfg.Resolver.CandidateLimit,
	}

	var svc *resolver.Service
	if *noEnrich || cfg.Enrichment.APIKey == "" {
		svc = resolver.NewService(log, rcfg, repo, nil, repo)
	} else {
		analyzer := anthropic.NewClient(cfg.Enrichment.APIKey, cfg.Enrichment.Model, log)
		enricher := enrichment.NewService(log, enrichment.Config{
			Timeout:   cfg.Enrichment.Timeout,
			CacheSize: cfg.Enrichment.CacheSize,
			CacheTTL:  cfg.Enrichment.CacheTTL,
		}, analyzer, repo)
		svc = resolver.NewService(log, rcfg, repo, enricher, repo)
	}

	result, err := svc.Resolve(ctx, word)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", word, err)
	}

	log.Info("resolution finished",
		slog.String("query", word),
		slog.String("outcome", string(result.Kind)),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
