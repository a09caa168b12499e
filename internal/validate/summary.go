package validate

import (
	"github.com/montanaflynn/stats"

	"github.com/ykravets/promoaudit/internal/domain"
)

// Summarize folds per-product reports into the run-level summary: product and
// check totals plus mean/max absolute difference over the checks that reached
// a numeric comparison.
func Summarize(runID string, reports []domain.ProductReport) domain.RunSummary {
	summary := domain.RunSummary{
		RunID:    runID,
		Products: len(reports),
	}

	var differences []float64
	for _, r := range reports {
		switch r.Status {
		case domain.ProductCompleted:
			summary.WithRules++
		case domain.ProductNoCatalogRules:
			summary.WithoutRules++
		}
		summary.Totals.Add(r.Counts)

		for _, c := range r.Checks {
			if c.Status == domain.StatusOK || c.Status == domain.StatusFail {
				differences = append(differences, c.Difference)
			}
		}
	}

	if mean, err := stats.Mean(differences); err == nil {
		summary.MeanDifference = domain.Round2(mean)
	}
	if max, err := stats.Max(differences); err == nil {
		summary.MaxDifference = domain.Round2(max)
	}

	return summary
}
