// Package analysis runs a full single-ticker session: derive the engine
// inputs from a fetched snapshot, project the DCF, and bridge to equity
// value and implied share price. Missing data never fails the session;
// the affected outputs are simply absent from the result.
package analysis

import (
	"fmt"

	"analyst_terminal/pkg/core/calc"
	"analyst_terminal/pkg/core/dcf"
	"analyst_terminal/pkg/core/market"
	"analyst_terminal/pkg/fetch"
)

// Params are the user-adjustable valuation inputs.
type Params struct {
	GrowthRate         float64  `json:"growth_rate"`
	DiscountRate       float64  `json:"discount_rate"`
	TerminalGrowthRate float64  `json:"terminal_growth_rate"`
	Years              int      `json:"years"`
	ManualFCF          *float64 `json:"manual_fcf,omitempty"` // overrides statement-derived FCF
}

// FCF provenance markers.
const (
	FCFDerived = "derived"
	FCFManual  = "manual"
)

// Result is the session output. Pointer fields are nil when the input
// they depend on was unavailable.
type Result struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`

	Price       float64  `json:"price"`
	MarketCapEV *float64 `json:"market_cap_ev,omitempty"` // mcap + debt - cash

	FCF       *float64 `json:"fcf,omitempty"`
	FCFSource string   `json:"fcf_source,omitempty"`

	Projection   *dcf.Projection `json:"projection,omitempty"`
	EquityValue  *float64        `json:"equity_value,omitempty"`
	ImpliedPrice *float64        `json:"implied_price,omitempty"`
	Upside       *float64        `json:"upside_percent,omitempty"`

	Volatility float64 `json:"volatility"`
}

// Run executes the session. It returns an error only for invalid
// parameters; unavailable market data degrades field by field.
func Run(snap fetch.Snapshot, params Params) (Result, error) {
	res := Result{
		Ticker:      snap.Ticker,
		CompanyName: snap.Quote.CompanyName,
		Price:       snap.Quote.Price,
		Volatility:  market.EstimateVolatility(snap.History.Closes()),
	}

	if snap.Quote.MarketCap != nil {
		ev := calc.MarketCapEnterpriseValue(*snap.Quote.MarketCap, deref(snap.Quote.TotalDebt), deref(snap.Quote.TotalCash))
		res.MarketCapEV = &ev
	}

	// FCF: manual override wins, otherwise derive from the cash flow
	// statement. Neither available means no DCF for this session.
	switch {
	case params.ManualFCF != nil:
		res.FCF = params.ManualFCF
		res.FCFSource = FCFManual
	default:
		if fcfValue, ok := market.DeriveFCF(snap.Statements.CashFlow); ok {
			res.FCF = &fcfValue
			res.FCFSource = FCFDerived
		}
	}
	if res.FCF == nil {
		return res, nil
	}

	proj, err := dcf.Project(dcf.Input{
		LastFCF:            *res.FCF,
		GrowthRate:         params.GrowthRate,
		DiscountRate:       params.DiscountRate,
		TerminalGrowthRate: params.TerminalGrowthRate,
		Years:              params.Years,
	})
	if err != nil {
		return Result{}, fmt.Errorf("dcf projection: %w", err)
	}
	res.Projection = &proj

	equity := calc.EquityValue(proj.EnterpriseValue, deref(snap.Quote.TotalDebt), deref(snap.Quote.TotalCash))
	res.EquityValue = &equity

	if snap.Quote.SharesOutstanding != nil {
		if implied, ok := calc.ImpliedSharePrice(equity, *snap.Quote.SharesOutstanding); ok {
			res.ImpliedPrice = &implied
			if res.Price > 0 {
				upside := calc.UpsidePercent(implied, res.Price)
				res.Upside = &upside
			}
		}
	}

	return res, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
