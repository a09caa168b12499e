// Command promoaudit validates a remote discount-rule engine against locally
// computed expectations. It loads configuration, parses the input
// spreadsheet, runs the validation pipeline, and writes a styled xlsx report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ykravets/promoaudit/internal/app"
	"github.com/ykravets/promoaudit/internal/config"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file")
	inputPath := flag.String("input", "data.xlsx", "path to input spreadsheet")
	outputPath := flag.String("output", "", "report path (overrides report.output_path)")
	flag.Parse()

	// Bootstrap logger; replaced once the configured level is known.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config",
			slog.String("path", *configPath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if *outputPath != "" {
		cfg.Report.OutputPath = *outputPath
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("promoaudit starting",
		slog.String("config", *configPath),
		slog.String("input", *inputPath),
		slog.String("engine", cfg.Engine.BaseURL),
	)

	application := app.New(cfg, *inputPath, logger)
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("run interrupted")
		} else {
			logger.Error("run failed", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		}
		os.Exit(1)
	}

	logger.Info("promoaudit finished")
}
