package market

import (
	"math"
	"testing"
)

func TestEstimateVolatilityEmptyHistory(t *testing.T) {
	if got := EstimateVolatility(nil); got != DefaultVolatility {
		t.Errorf("EstimateVolatility(nil) = %v, want %v", got, DefaultVolatility)
	}
	if got := EstimateVolatility([]float64{100}); got != DefaultVolatility {
		t.Errorf("single close = %v, want fallback %v", got, DefaultVolatility)
	}
	// Two closes give one return, still not enough for a sample deviation.
	if got := EstimateVolatility([]float64{100, 101}); got != DefaultVolatility {
		t.Errorf("single return = %v, want fallback %v", got, DefaultVolatility)
	}
}

func TestEstimateVolatilityConstantSeries(t *testing.T) {
	closes := []float64{50, 50, 50, 50, 50}
	if got := EstimateVolatility(closes); got != 0 {
		t.Errorf("flat series vol = %v, want 0", got)
	}
}

func TestEstimateVolatilityWholeSample(t *testing.T) {
	// 10 closes -> 9 returns, below the rolling window: whole-sample
	// stddev annualized by sqrt(252).
	closes := make([]float64, 11)
	price := 100.0
	for i := range closes {
		closes[i] = price
		if i%2 == 0 {
			price *= 1.01
		} else {
			price *= 0.99
		}
	}
	returns := make([]float64, 10)
	for i := 1; i < len(closes); i++ {
		returns[i-1] = closes[i]/closes[i-1] - 1
	}
	want := sampleStd(returns) * math.Sqrt(252)

	got := EstimateVolatility(closes)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("vol = %v, want %v", got, want)
	}
}

func TestEstimateVolatilityRollingWindowSelection(t *testing.T) {
	// 23 closes -> 22 returns (> window): only the most recent 21
	// returns contribute. The early high-variance prefix must not matter.
	calm := make([]float64, 0, 23)
	calm = append(calm, 100, 300) // one violent return, then flat 1% steps
	price := 300.0
	for i := 0; i < 21; i++ {
		price *= 1.01
		calm = append(calm, price)
	}

	got := EstimateVolatility(calm)
	// The trailing 21 returns are all exactly 1%: zero deviation.
	if math.Abs(got) > 1e-9 {
		t.Errorf("vol = %v, want ~0 (violent return outside the window)", got)
	}

	// Exactly 22 closes -> 21 returns: still whole sample, so the
	// violent return now counts and the estimate is large.
	boundary := calm[:22]
	if EstimateVolatility(boundary) < 1 {
		t.Errorf("vol at window boundary = %v, expected the 200%% return to dominate", EstimateVolatility(boundary))
	}
}

func TestEstimateVolatilityZeroCloseSkipped(t *testing.T) {
	// A zero close would divide by zero; the pair is skipped, not NaN.
	got := EstimateVolatility([]float64{100, 0, 100, 101, 102})
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("vol = %v, want finite", got)
	}
}

func sampleStd(xs []float64) float64 {
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func cashFlowFixture() StatementTable {
	return StatementTable{Rows: []Row{
		{Label: "Net Income", Values: []float64{96_995_000_000, 99_803_000_000}},
		{Label: "Depreciation And Amortization", Values: []float64{11_519_000_000, 11_104_000_000}},
		{Label: "Cash Flow From Continuing Operating Activities", Values: []float64{110_543_000_000, 122_151_000_000}},
		{Label: "Purchase Of Property Plant And Equipment", Values: []float64{-10_959_000_000, -10_708_000_000}},
		{Label: "Free Cash Flow", Values: []float64{99_584_000_000, 111_443_000_000}},
	}}
}

func TestDeriveFCF(t *testing.T) {
	fcf, ok := DeriveFCF(cashFlowFixture())
	if !ok {
		t.Fatal("expected FCF to be derivable")
	}
	// OCF 110.543B + capex -10.959B = 99.584B. Capex arrives negative
	// and must not be re-negated.
	want := 110_543_000_000.0 - 10_959_000_000.0
	if math.Abs(fcf-want) > 1 {
		t.Errorf("FCF = %v, want %v", fcf, want)
	}
}

func TestDeriveFCFUnavailable(t *testing.T) {
	if _, ok := DeriveFCF(StatementTable{}); ok {
		t.Error("empty statement should be unavailable")
	}

	noCapex := StatementTable{Rows: []Row{
		{Label: "Cash From Operating Activities", Values: []float64{1000}},
	}}
	if _, ok := DeriveFCF(noCapex); ok {
		t.Error("missing capex row should be unavailable")
	}

	noLabels := StatementTable{Rows: []Row{
		{Label: "Dividends Paid", Values: []float64{-100}},
		{Label: "Share Repurchases", Values: []float64{-200}},
	}}
	if _, ok := DeriveFCF(noLabels); ok {
		t.Error("no matching labels should be unavailable")
	}
}

func TestDeriveFCFEmptyValueColumn(t *testing.T) {
	table := StatementTable{Rows: []Row{
		{Label: "Operating Activities", Values: nil},
		{Label: "Capital Expenditure", Values: []float64{-500}},
	}}
	if _, ok := DeriveFCF(table); ok {
		t.Error("row with no periods should be unavailable")
	}
}

func TestFindRowPriorityOrder(t *testing.T) {
	// Keyword priority wins over row order: "capital expend" is tried
	// before "purchase of property" even when the latter appears first.
	table := StatementTable{Rows: []Row{
		{Label: "Purchase Of Property", Values: []float64{-1}},
		{Label: "Capital Expenditures Reported", Values: []float64{-2}},
	}}
	row, found := table.FindRow(CapexKeywords)
	if !found {
		t.Fatal("expected a match")
	}
	if row.Label != "Capital Expenditures Reported" {
		t.Errorf("matched %q, want the higher-priority keyword's row", row.Label)
	}
}

func TestFindRowCaseInsensitive(t *testing.T) {
	table := StatementTable{Rows: []Row{
		{Label: "TOTAL CASH FROM OPERATING ACTIVITIES", Values: []float64{42}},
	}}
	row, found := table.FindRow(OperatingCashFlowKeywords)
	if !found {
		t.Fatal("case-folded match expected")
	}
	if v, _ := row.MostRecent(); v != 42 {
		t.Errorf("most recent = %v, want 42", v)
	}
}
