// Package calc composes engine outputs into the headline company
// metrics: enterprise value bridges, equity value and implied share
// price, plus the basic growth arithmetic used by the report layer.
package calc

import "math"

// EquityValue bridges from enterprise value to equity value.
func EquityValue(enterpriseValue, totalDebt, totalCash float64) float64 {
	return enterpriseValue - totalDebt + totalCash
}

// ImpliedSharePrice divides equity value across shares outstanding.
// ok is false when shares outstanding is absent or non-positive.
func ImpliedSharePrice(equityValue, sharesOutstanding float64) (float64, bool) {
	if sharesOutstanding <= 0 {
		return 0, false
	}
	return equityValue / sharesOutstanding, true
}

// MarketCapEnterpriseValue is the quote-derived EV shown in the header
// metrics: market cap plus total debt less cash.
func MarketCapEnterpriseValue(marketCap, totalDebt, totalCash float64) float64 {
	return marketCap + totalDebt - totalCash
}

// GrowthRate is the period-over-period change relative to |prior|.
func GrowthRate(current, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return (current - prior) / math.Abs(prior)
}

// CAGR is the compound annual growth rate between two values.
func CAGR(endingValue, beginningValue float64, years int) float64 {
	if beginningValue == 0 || years == 0 {
		return 0
	}
	return math.Pow(endingValue/beginningValue, 1.0/float64(years)) - 1
}

// UpsidePercent is the percentage gap between an implied price and the
// current market price.
func UpsidePercent(impliedPrice, currentPrice float64) float64 {
	return safeDiv(impliedPrice-currentPrice, currentPrice) * 100
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
