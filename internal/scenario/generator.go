// Package scenario derives the five test scenarios for a product from its
// pricing thresholds.
package scenario

import (
	"math"
	"math/rand"
	"time"

	"github.com/ykravets/promoaudit/internal/domain"
)

// Generator produces test scenarios. The random source is injected so runs
// can be made reproducible under a fixed seed.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator using the given random source. Passing nil seeds a
// new source from the current time.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate returns exactly five scenarios for p, in fixed order:
//
//	Rule0:   quantity uniform in [0, k), discounted price = quantity * price
//	Rule1:   quantity uniform in [k, p), discounted price = (price - l) * quantity
//	Rule1_1: quantity = k,               discounted price = (price - l) * k
//	Rule2:   quantity = p * uniform in [1.5, 3.0], discounted price = (price - q) * quantity
//	Rule2_1: quantity = p,               discounted price = (price - q) * p
//
// Every stored value is rounded to two decimals. Inverted thresholds (k > p)
// are tolerated: the Rule1 band is normalized so quantities stay non-negative.
func (g *Generator) Generate(p domain.PricingParameters) []domain.Scenario {
	k := math.Max(p.K, 0)
	lo, hi := k, p.P
	if lo > hi {
		lo, hi = hi, lo
	}

	q0 := domain.Round2(g.rng.Float64() * k)
	q1 := domain.Round2(lo + g.rng.Float64()*(hi-lo))
	q2 := domain.Round2(p.P * (1.5 + g.rng.Float64()*1.5))

	return []domain.Scenario{
		{Name: domain.ScenarioRule0, Quantity: q0, PriceWithDiscount: domain.Round2(q0 * p.Price)},
		{Name: domain.ScenarioRule1, Quantity: q1, PriceWithDiscount: domain.Round2((p.Price - p.L) * q1)},
		{Name: domain.ScenarioRule11, Quantity: p.K, PriceWithDiscount: domain.Round2((p.Price - p.L) * p.K)},
		{Name: domain.ScenarioRule2, Quantity: q2, PriceWithDiscount: domain.Round2((p.Price - p.Q) * q2)},
		{Name: domain.ScenarioRule21, Quantity: p.P, PriceWithDiscount: domain.Round2((p.Price - p.Q) * p.P)},
	}
}
