// Package app owns the validation run lifecycle: it wires dependencies and
// drives the sequential pipeline from input spreadsheet to finished report.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ykravets/promoaudit/internal/config"
	"github.com/ykravets/promoaudit/internal/dataset"
	"github.com/ykravets/promoaudit/internal/domain"
	"github.com/ykravets/promoaudit/internal/rules"
	"github.com/ykravets/promoaudit/internal/validate"
)

// App is the root application object. It owns the configuration, logger, and
// a list of cleanup functions called in reverse order on shutdown.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	inputPath string
	closers   []func()
}

// New creates a new App that will read products from inputPath.
func New(cfg *config.Config, inputPath string, logger *slog.Logger) *App {
	return &App{
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "app")),
		inputPath: inputPath,
	}
}

// Run executes one validation run end to end. Processing is strictly
// sequential: one login, one catalog fetch, then one tester call per
// (product, scenario) pair. The only fatal remote failure is authentication;
// everything else degrades into per-check statuses.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := a.logger.With(slog.String("run_id", runID))

	deps, cleanup, err := Wire(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	// Step 1: parse the input spreadsheet.
	products, err := dataset.NewReader(a.inputPath, logger).Read()
	if err != nil {
		return fmt.Errorf("app: read input: %w", err)
	}
	if len(products) == 0 {
		return fmt.Errorf("app: no usable product rows in %s", a.inputPath)
	}

	// Step 2: authenticate and load the rule catalog.
	if err := deps.Engine.Login(ctx); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ProductID)
	}

	catalog := deps.Engine.FetchAllRules(ctx)
	grouped := rules.GroupByProduct(catalog, productIDs, a.cfg.Engine.RulePrefix)

	// Step 3: validate every product, five scenarios each, in order.
	validator := validate.New(deps.Engine, a.cfg.Run.Tolerance, a.cfg.Run.StrictMatch, logger)

	reports := make([]domain.ProductReport, 0, len(products))
	for i, p := range products {
		logger.InfoContext(ctx, "validating product",
			slog.Int("index", i+1),
			slog.Int("total", len(products)),
			slog.String("product", p.ProductID),
		)

		scenarios := deps.Generator.Generate(p)
		reports = append(reports, validator.ValidateProduct(ctx, p, scenarios, grouped[p.ProductID]))
	}

	summary := validate.Summarize(runID, reports)

	// Step 4: write, and optionally archive and announce, the report.
	outputPath := a.cfg.Report.OutputPath
	if err := deps.Report.Write(outputPath, summary, reports); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	if deps.Archiver != nil {
		key := path.Join("reports", runID, filepath.Base(outputPath))
		if err := deps.Archiver.ArchiveReport(ctx, key, outputPath); err != nil {
			logger.ErrorContext(ctx, "report archive failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		} else {
			logger.InfoContext(ctx, "report archived", slog.String("key", key))
		}
	}

	if deps.Notifier != nil {
		deps.Notifier.SummaryNotify(ctx, summary)
	}

	logger.InfoContext(ctx, "run finished",
		slog.Int("products", summary.Products),
		slog.Int("with_rules", summary.WithRules),
		slog.Int("without_rules", summary.WithoutRules),
		slog.Int("ok", summary.Totals.OK),
		slog.Int("fail", summary.Totals.Fail),
		slog.Int("error", summary.Totals.Error),
		slog.Int("not_found", summary.Totals.NotFound),
		slog.Float64("mean_difference", summary.MeanDifference),
		slog.Float64("max_difference", summary.MaxDifference),
	)

	return nil
}

// Close tears down all resources in reverse registration order. It is safe
// to call multiple times; subsequent calls are no-ops.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
