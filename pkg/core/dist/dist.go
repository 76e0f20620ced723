// Package dist provides the standard normal distribution primitives used
// by the valuation and option pricing engines. Both functions are closed
// form so the engines carry no statistics dependency.
package dist

import "math"

// Cdf returns the standard normal cumulative distribution at x,
// computed through the Gauss error function identity.
func Cdf(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// Pdf returns the standard normal density at x.
func Pdf(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
