package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wortlab/mygerman-backend/internal/adapter/postgres"
	"github.com/wortlab/mygerman-backend/internal/adapter/postgres/lexicon"
	"github.com/wortlab/mygerman-backend/internal/adapter/provider/anthropic"
	"github.com/wortlab/mygerman-backend/internal/app"
	"github.com/wortlab/mygerman-backend/internal/config"
	"github.com/wortlab/mygerman-backend/internal/service/enrichment"
	"github.com/wortlab/mygerman-backend/internal/service/resolver"
	"github.com/wortlab/mygerman-backend/internal/transport/middleware"
	"github.com/wortlab/mygerman-backend/internal/transport/rest"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := app.NewLogger(cfg.Log)
	log.Info("starting server",
		slog.String("version", app.BuildVersion()),
		slog.Int("port", cfg.Server.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	repo := lexicon.New(pool, txm)

	var enricher *enrichment.Service
	if cfg.Enrichment.APIKey != "" {
		analyzer := anthropic.NewClient(cfg.Enrichment.APIKey, cfg.Enrichment.Model, log)
		enricher = enrichment.NewService(log, enrichment.Config{
			Timeout:   cfg.Enrichment.Timeout,
			CacheSize: cfg.Enrichment.CacheSize,
			CacheTTL:  cfg.Enrichment.CacheTTL,
		}, analyzer, repo)
	} else {
		log.Warn("enrichment disabled: no API key configured")
	}

	resolverSvc := newResolver(log, cfg, repo, enricher)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", rest.NewHealthHandler(pool, app.BuildVersion()).Health)
	mux.HandleFunc("/v1/resolve", rest.NewResolveHandler(resolverSvc).Resolve)

	handler := middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.Logger(log),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// newResolver wires the resolver service. A nil *enrichment.Service must be
// passed as an untyped nil so the resolver's interface check works.
func newResolver(log *slog.Logger, cfg *config.Config, repo *lexicon.Repo, enricher *enrichment.Service) *resolver.Service {
	rcfg := resolver.Config{
		FuzzyAutoAccept:   cfg.Resolver.FuzzyAutoAccept,
		FuzzyDisplayFloor: cfg.Resolver.FuzzyDisplayFloor,
		FuzzyMinLength:    cfg.Resolver.FuzzyMinLength,
		LengthWindow:      cfg.Resolver.LengthWindow,
		CandidateLimit:    cfg.Resolver.CandidateLimit,
	}
	if enricher == nil {
		return resolver.NewService(log, rcfg, repo, nil, repo)
	}
	return resolver.NewService(log, rcfg, repo, enricher, repo)
}
