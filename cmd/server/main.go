package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/yashagw/sjdb/internal/config"
	"github.com/yashagw/sjdb/internal/explain"
	"github.com/yashagw/sjdb/internal/logging"
	"github.com/yashagw/sjdb/internal/metadata"
	"github.com/yashagw/sjdb/internal/plan"
	"github.com/yashagw/sjdb/internal/server"
)

func main() {
	cfg, err := config.Load(os.Getenv("SJDB_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if path := os.Getenv("SJDB_CATALOGUE"); path != "" {
		cfg.Catalogue.Path = path
	}

	logger, closeLog, err := logging.SetupLogger(os.Stdout, logging.Options{
		Level:  cfg.Log.Level,
		SeqURL: cfg.Log.SeqURL,
	})
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := metadata.Open(ctx, cfg.Catalogue.Driver, cfg.Catalogue.Path)
	if err != nil {
		logger.Error("failed to load catalogue", "path", cfg.Catalogue.Path, "error", err)
		return
	}
	logger.Info("catalogue loaded", "path", cfg.Catalogue.Path, "relations", cat.Len())

	estimator := plan.NewEstimator(
		plan.WithStrictCardinality(cfg.Estimator.Strict),
		plan.WithLogger(logger),
	)
	srv := server.New(explain.New(cat, estimator, logger), logger)

	listener, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		logger.Error("failed to listen", "addr", cfg.Server.Addr, "error", err)
		return
	}

	if err := srv.Serve(ctx, listener); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
