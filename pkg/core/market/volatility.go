package market

import "math"

const (
	// DefaultVolatility is used when no usable price history exists.
	DefaultVolatility = 0.25
	// TradingDays annualizes daily return volatility.
	TradingDays = 252
	// VolWindow is the rolling window length, in return observations.
	VolWindow = 21
)

// EstimateVolatility derives an annualized volatility from a close-price
// series. With more than VolWindow return observations it uses the
// standard deviation of the most recent VolWindow returns; shorter
// series fall back to the whole-sample deviation. An empty series, or a
// non-finite result, yields DefaultVolatility.
func EstimateVolatility(closes []float64) float64 {
	returns := percentReturns(closes)
	if len(returns) < 2 {
		// A sample deviation needs at least two observations.
		return DefaultVolatility
	}

	sample := returns
	if len(returns) > VolWindow {
		sample = returns[len(returns)-VolWindow:]
	}

	sigma := stddev(sample) * math.Sqrt(TradingDays)
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return DefaultVolatility
	}
	return sigma
}

// percentReturns computes consecutive-period percentage returns,
// skipping pairs that would divide by zero.
func percentReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	return returns
}

// stddev is the sample standard deviation (n-1 denominator).
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
