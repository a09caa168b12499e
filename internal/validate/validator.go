// Package validate reconciles locally computed expected discounts against the
// values the remote engine actually returns, and aggregates the results.
package validate

import (
	"context"
	"log/slog"
	"math"

	"github.com/ykravets/promoaudit/internal/domain"
	"github.com/ykravets/promoaudit/internal/rules"
)

// Evaluator submits one scenario to the remote tester. Satisfied by
// *promo.Client.
type Evaluator interface {
	TestDiscount(ctx context.Context, productID string, quantity, price float64) domain.EvaluationOutcome
}

// Validator checks a product's scenarios against the remote engine.
type Validator struct {
	evaluator Evaluator
	tolerance float64
	strict    bool
	logger    *slog.Logger
}

// New creates a Validator. tolerance is the maximum allowed absolute
// difference between expected and actual discount for a check to pass. When
// strict is true, scenarios whose quantity no catalog rule covers are
// reported NOT_FOUND instead of being compared.
func New(evaluator Evaluator, tolerance float64, strict bool, logger *slog.Logger) *Validator {
	return &Validator{
		evaluator: evaluator,
		tolerance: tolerance,
		strict:    strict,
		logger:    logger.With(slog.String("component", "validator")),
	}
}

// ValidateProduct runs every scenario of one product, in order, and returns
// the product report. A product with no catalog rules at all short-circuits
// to NO_CATALOG_RULES without a single tester call.
func (v *Validator) ValidateProduct(ctx context.Context, params domain.PricingParameters, scenarios []domain.Scenario, catalogRules []domain.CatalogRule) domain.ProductReport {
	report := domain.ProductReport{
		ProductID:  params.ProductID,
		Price:      params.Price,
		RulesFound: len(catalogRules),
	}

	if len(catalogRules) == 0 {
		report.Status = domain.ProductNoCatalogRules
		v.logger.WarnContext(ctx, "no catalog rules for product",
			slog.String("product", params.ProductID),
		)
		return report
	}

	v.logger.InfoContext(ctx, "checking product",
		slog.String("product", params.ProductID),
		slog.Int("catalog_rules", len(catalogRules)),
	)

	for _, s := range scenarios {
		check := v.checkScenario(ctx, params, s, catalogRules)
		report.Checks = append(report.Checks, check)
		report.Counts.Count(check.Status)
	}

	report.Status = domain.ProductCompleted
	v.logger.InfoContext(ctx, "product checked",
		slog.String("product", params.ProductID),
		slog.Int("ok", report.Counts.OK),
		slog.Int("fail", report.Counts.Fail),
		slog.Int("error", report.Counts.Error),
		slog.Int("not_found", report.Counts.NotFound),
	)

	return report
}

// checkScenario runs the per-scenario state machine: compute expectations,
// call the tester, classify.
func (v *Validator) checkScenario(ctx context.Context, params domain.PricingParameters, s domain.Scenario, catalogRules []domain.CatalogRule) domain.ValidationCheck {
	check := domain.ValidationCheck{
		Scenario:          s.Name,
		Quantity:          s.Quantity,
		PriceNoDiscount:   domain.Round2(s.Quantity * params.Price),
		PriceWithDiscount: s.PriceWithDiscount,
	}
	check.ExpectedDiscount = domain.Round2(check.PriceNoDiscount - s.PriceWithDiscount)

	var matched []domain.CatalogRule
	if v.strict {
		matched = rules.Match(catalogRules, s.Quantity)
		if len(matched) == 0 {
			v.logger.WarnContext(ctx, "no rule covers scenario quantity",
				slog.String("product", params.ProductID),
				slog.String("scenario", string(s.Name)),
				slog.Float64("quantity", s.Quantity),
			)
		}
	}

	outcome := v.evaluator.TestDiscount(ctx, params.ProductID, s.Quantity, params.Price)
	if !outcome.Success {
		check.Status = domain.StatusError
		check.Error = outcome.ErrorMessage
		check.Difference = check.ExpectedDiscount
		v.logger.ErrorContext(ctx, "tester call failed",
			slog.String("product", params.ProductID),
			slog.String("scenario", string(s.Name)),
			slog.String("error", check.Error),
		)
		return check
	}

	check.ActualDiscount = outcome.ActualDiscount
	check.Difference = math.Abs(check.ExpectedDiscount - outcome.ActualDiscount)

	switch {
	case v.strict && len(matched) == 0:
		check.Status = domain.StatusNotFound
	case check.Difference <= v.tolerance:
		check.Status = domain.StatusOK
	default:
		check.Status = domain.StatusFail
	}

	v.logger.InfoContext(ctx, "scenario checked",
		slog.String("product", params.ProductID),
		slog.String("scenario", string(s.Name)),
		slog.Float64("quantity", s.Quantity),
		slog.Float64("expected", check.ExpectedDiscount),
		slog.Float64("actual", check.ActualDiscount),
		slog.String("status", string(check.Status)),
	)

	return check
}
