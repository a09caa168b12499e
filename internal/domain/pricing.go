// Package domain defines the core value types shared across the validation
// run: input pricing parameters, derived test scenarios, remote catalog rules,
// evaluation outcomes, and the per-scenario / per-product / per-run results.
package domain

// PricingParameters is one input row: a product and the four pricing
// thresholds its discount rules are derived from. Immutable once parsed.
type PricingParameters struct {
	ProductID string
	Price     float64

	// Threshold columns, named after their source spreadsheet columns.
	K float64
	L float64
	P float64
	Q float64
}

// ScenarioName identifies one of the five fixed test scenarios derived from a
// product's thresholds.
type ScenarioName string

const (
	ScenarioRule0  ScenarioName = "Rule0"
	ScenarioRule1  ScenarioName = "Rule1"
	ScenarioRule11 ScenarioName = "Rule1_1"
	ScenarioRule2  ScenarioName = "Rule2"
	ScenarioRule21 ScenarioName = "Rule2_1"
)

// ScenarioOrder is the fixed processing order for a product's scenarios.
var ScenarioOrder = []ScenarioName{
	ScenarioRule0,
	ScenarioRule1,
	ScenarioRule11,
	ScenarioRule2,
	ScenarioRule21,
}

// Scenario is one synthetic test case: a quantity to submit to the remote
// tester and the discounted price the engine is expected to produce for it.
type Scenario struct {
	Name              ScenarioName
	Quantity          float64
	PriceWithDiscount float64
}
