package domain

// EvaluationOutcome is the normalized result of one remote tester call. It is
// produced fresh for every (product, scenario) pair and never cached.
type EvaluationOutcome struct {
	Success        bool
	ActualDiscount float64
	ErrorMessage   string
}

// CheckStatus classifies one validation check.
type CheckStatus string

const (
	// StatusOK means expected and actual discount agree within tolerance.
	StatusOK CheckStatus = "OK"
	// StatusFail means the discounts disagree beyond tolerance.
	StatusFail CheckStatus = "FAIL"
	// StatusError means the tester call itself failed.
	StatusError CheckStatus = "ERROR"
	// StatusNotFound means no catalog rule covers the scenario quantity
	// (strict mode only).
	StatusNotFound CheckStatus = "NOT_FOUND"
)

// ValidationCheck is the outcome of reconciling one scenario against the
// remote engine. Immutable once computed.
type ValidationCheck struct {
	Scenario          ScenarioName
	Quantity          float64
	PriceNoDiscount   float64
	PriceWithDiscount float64
	ExpectedDiscount  float64
	ActualDiscount    float64
	Difference        float64
	Status            CheckStatus
	Error             string
}

// ProductStatus classifies a whole product's validation.
type ProductStatus string

const (
	// ProductCompleted means all five scenarios were checked.
	ProductCompleted ProductStatus = "COMPLETED"
	// ProductNoCatalogRules means the catalog held no rules for the product,
	// so no tester calls were made.
	ProductNoCatalogRules ProductStatus = "NO_CATALOG_RULES"
)

// CheckCounts aggregates check statuses.
type CheckCounts struct {
	OK       int
	Fail     int
	Error    int
	NotFound int
}

// Add merges other into c.
func (c *CheckCounts) Add(other CheckCounts) {
	c.OK += other.OK
	c.Fail += other.Fail
	c.Error += other.Error
	c.NotFound += other.NotFound
}

// Count increments the counter matching status.
func (c *CheckCounts) Count(status CheckStatus) {
	switch status {
	case StatusOK:
		c.OK++
	case StatusFail:
		c.Fail++
	case StatusError:
		c.Error++
	case StatusNotFound:
		c.NotFound++
	}
}

// ProductReport is the validation result for one product.
type ProductReport struct {
	ProductID  string
	Price      float64
	Status     ProductStatus
	RulesFound int
	Checks     []ValidationCheck
	Counts     CheckCounts
}

// RunSummary aggregates a whole validation run.
type RunSummary struct {
	RunID          string
	Products       int
	WithRules      int
	WithoutRules   int
	Totals         CheckCounts
	MeanDifference float64
	MaxDifference  float64
}
