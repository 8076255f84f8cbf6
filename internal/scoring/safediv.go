package scoring

import "math"

// SafeDivide returns numerator/denominator, or 0 when the denominator is zero
// or the quotient is not a finite number. Every ratio in this package goes
// through it.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	q := numerator / denominator
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0.0
	}
	return q
}
