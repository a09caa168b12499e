package rules

import (
	"strconv"

	"github.com/ykravets/promoaudit/internal/domain"
)

// Match returns the rules among candidates whose declared quantity-range
// conditions contain quantity. Only two priority tiers participate:
//
//	55: must declare both bounds, matches when lower <= quantity <= upper
//	50: must declare a lower bound only, matches when lower <= quantity
//
// Rules with any other priority, missing nesting, or unparsable condition
// values are silently skipped. The result is a presence signal; the caller
// never reads a discount value from it.
func Match(candidates []domain.CatalogRule, quantity float64) []domain.CatalogRule {
	var matched []domain.CatalogRule
	for _, rule := range candidates {
		if rule.Priority != domain.PriorityBounded && rule.Priority != domain.PriorityOpenEnded {
			continue
		}
		if ruleCovers(rule, quantity) {
			matched = append(matched, rule)
		}
	}
	return matched
}

// ruleCovers walks the rule's scale entries looking for one restriction whose
// bounds contain quantity. Any missing level skips that branch without
// aborting the scan.
func ruleCovers(rule domain.CatalogRule, quantity float64) bool {
	for _, item := range rule.ResultScaleItems {
		for _, result := range item.Results {
			if result.Restriction == nil {
				continue
			}
			lower, upper, hasLower, hasUpper := bounds(result.Restriction.Conditions)

			switch rule.Priority {
			case domain.PriorityBounded:
				if hasLower && hasUpper && lower <= quantity && quantity <= upper {
					return true
				}
			case domain.PriorityOpenEnded:
				if hasLower && !hasUpper && lower <= quantity {
					return true
				}
			}
		}
	}
	return false
}

// bounds extracts the lower/upper bound values from a condition list,
// ignoring conditions with unknown types or unparsable values.
func bounds(conditions []domain.RangeCondition) (lower, upper float64, hasLower, hasUpper bool) {
	for _, cond := range conditions {
		value, err := strconv.ParseFloat(cond.Value, 64)
		if err != nil {
			continue
		}
		switch cond.Type {
		case domain.ConditionNotLess:
			lower, hasLower = value, true
		case domain.ConditionNotMore:
			upper, hasUpper = value, true
		}
	}
	return lower, upper, hasLower, hasUpper
}
