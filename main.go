package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"salaryclean/internal/config"
	"salaryclean/internal/etl"
	"salaryclean/internal/logging"
	"salaryclean/internal/secret"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	defer logger.Sync() //nolint:errcheck

	password, err := cfg.ResolvePassword(secret.NewKeychainStore())
	if err != nil {
		logger.Error("Failed to resolve database password", zap.Error(err))
		return err
	}

	diag, err := logging.NewDiagnostics(cfg.Logging.Development)
	if err != nil {
		logger.Error("Failed to build diagnostics logger", zap.Error(err))
		return err
	}
	defer diag.Sync() //nolint:errcheck

	pipeline := &etl.Pipeline{
		Source:      etl.NewExtractor(cfg.Connection(), password, cfg.Database.Table, logger),
		Dest:        &etl.CSVWriter{Path: cfg.Output.Path},
		Logger:      logger,
		Diagnostics: diag,
	}
	if _, err := pipeline.Run(context.Background()); err != nil {
		return err
	}
	logger.Info("Wrote salary CSV", zap.String("path", cfg.Output.Path))
	return nil
}
