package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/nutriplan/internal/metrics"
	"github.com/jonathan/nutriplan/internal/pipeline"
	"github.com/jonathan/nutriplan/internal/server"
	"github.com/jonathan/nutriplan/internal/server/ratelimit"
	"github.com/jonathan/nutriplan/internal/store"
)

var (
	servePort      int
	serveRateLimit float64
	serveStrict    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing plan generation, streaming progress (SSE), the saved plan
and PDF export.

Endpoints:
  POST   /plans           Generate a plan from a profile
  POST   /plans/stream    Generate a plan, streaming progress as server-sent events
  GET    /plans/current   Current session state and plan
  GET    /plans/saved     Saved plan
  PUT    /plans/saved     Save a plan (or the current plan when the body is empty)
  DELETE /plans/saved     Delete the saved plan
  POST   /plans/export    Export a plan (or the current plan) as PDF
  GET    /health          Health check
  GET    /metrics         Prometheus metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080, or PORT)")
	serveCmd.Flags().Float64Var(&serveRateLimit, "rate-limit", 0, "Generation and export requests per minute per client (0 disables)")
	serveCmd.Flags().BoolVar(&serveStrict, "strict", false, "Reject plans whose days are out of weekday order")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("rate-limit") {
		cfg.RateLimit = serveRateLimit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	aggregator, closer, err := newAggregator(ctx, cfg, logger, serveStrict, m)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	planStore, err := store.Open(ctx, cfg.StoreConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = planStore.Close() }()

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Session:   pipeline.NewSession(aggregator),
		Store:     planStore,
		Exporter:  newExporter(cfg, logger, m),
		Metrics:   m,
		RateLimit: ratelimit.LoadConfig(cfg.RateLimit, cfg.RateBurst),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	srv.Restore(ctx)

	logger.Info().
		Int("port", cfg.Port).
		Str("store", cfg.StoreDriver).
		Str("locale", cfg.Locale).
		Msg("starting nutriplan server")
	return srv.Start(ctx)
}
