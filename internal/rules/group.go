// Package rules attributes catalog rules to products by display-name
// convention and matches them against scenario quantities.
package rules

import (
	"strings"

	"github.com/ykravets/promoaudit/internal/domain"
)

// GroupByProduct partitions rules per requested product id. A rule belongs to
// a product when its name has the shape "<prefix>_<productID>" or
// "<prefix>_<productID>_<suffix>": the product id is the token before the
// first underscore after the prefix, so trailing suffixes are ignored. Every
// requested product gets an entry, empty when nothing matched.
func GroupByProduct(rules []domain.CatalogRule, productIDs []string, prefix string) map[string][]domain.CatalogRule {
	grouped := make(map[string][]domain.CatalogRule, len(productIDs))
	for _, id := range productIDs {
		grouped[id] = nil
	}

	marker := prefix + "_"
	for _, rule := range rules {
		rest, found := strings.CutPrefix(rule.Name, marker)
		if !found {
			continue
		}
		id, _, _ := strings.Cut(rest, "_")
		if _, wanted := grouped[id]; wanted {
			grouped[id] = append(grouped[id], rule)
		}
	}

	return grouped
}
