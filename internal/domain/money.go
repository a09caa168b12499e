package domain

import "math"

// Round2 rounds x to two decimal places, half away from zero. All derived
// monetary values are stored rounded so expected and actual discounts compare
// on equal footing.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
