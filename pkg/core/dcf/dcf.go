// Package dcf implements the discounted cash flow projection engine:
// explicit-period free cash flow projection, per-period discounting and
// a Gordon-growth terminal value.
package dcf

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for inputs the engine refuses to price,
// such as an unsupported projection horizon.
var ErrInvalidInput = errors.New("dcf: invalid input")

// AllowedYears are the supported projection horizons.
var AllowedYears = []int{3, 5, 7, 10}

// Input encapsulates all inputs for a single DCF projection.
type Input struct {
	LastFCF            float64 // most recent annual free cash flow, any sign
	GrowthRate         float64 // annual FCF growth, e.g. 0.05
	DiscountRate       float64 // WACC, e.g. 0.09
	TerminalGrowthRate float64 // perpetuity growth, e.g. 0.025
	Years              int     // projection horizon, one of AllowedYears
}

// Projection holds the valuation outputs. TerminalValue and
// TerminalPresentValue are nil when the perpetuity is undefined
// (discount rate <= terminal growth); EnterpriseValue then degrades to
// the sum of the explicit-period present values.
type Projection struct {
	Nominal              []float64
	PresentValues        []float64
	TerminalValue        *float64
	TerminalPresentValue *float64
	EnterpriseValue      float64
}

// Project runs a two-stage DCF: explicit FCF projection over the horizon,
// then a Gordon-growth terminal value discounted back to today.
// Periods are 1-indexed, so period 1 is discounted by one full period.
func Project(input Input) (Projection, error) {
	if !validYears(input.Years) {
		return Projection{}, fmt.Errorf("%w: projection horizon %d (allowed: %v)", ErrInvalidInput, input.Years, AllowedYears)
	}

	nominal := make([]float64, input.Years)
	pv := make([]float64, input.Years)

	var pvTotal float64
	for i := 1; i <= input.Years; i++ {
		fcf := input.LastFCF * math.Pow(1+input.GrowthRate, float64(i))
		nominal[i-1] = fcf
		pv[i-1] = fcf / math.Pow(1+input.DiscountRate, float64(i))
		pvTotal += pv[i-1]
	}

	proj := Projection{
		Nominal:         nominal,
		PresentValues:   pv,
		EnterpriseValue: pvTotal,
	}

	// Gordon growth is only defined when the discount rate exceeds the
	// perpetuity growth rate. Near-singular spreads are left to the
	// caller's judgment; an exact or inverted spread is undefined.
	if input.DiscountRate > input.TerminalGrowthRate {
		tv := nominal[input.Years-1] * (1 + input.TerminalGrowthRate) / (input.DiscountRate - input.TerminalGrowthRate)
		tvPV := tv / math.Pow(1+input.DiscountRate, float64(input.Years))
		proj.TerminalValue = &tv
		proj.TerminalPresentValue = &tvPV
		proj.EnterpriseValue += tvPV
	}

	return proj, nil
}

func validYears(years int) bool {
	for _, y := range AllowedYears {
		if years == y {
			return true
		}
	}
	return false
}
