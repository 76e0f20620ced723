// Package market derives engine inputs from raw market data: annualized
// volatility from price history, and free cash flow from financial
// statement line items located by fuzzy label matching.
package market

import "strings"

// Row is a single labeled statement line. Values are ordered most recent
// first, matching the column order of the statement source.
type Row struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// StatementTable is an ordered set of statement rows for one statement
// (income, balance sheet, or cash flow).
type StatementTable struct {
	Rows []Row `json:"rows"`
}

// Keyword lists for locating cash flow statement lines. Tried in order;
// the first row whose label contains the keyword wins.
var (
	OperatingCashFlowKeywords = []string{"operat", "cash from operating"}
	CapexKeywords             = []string{"capital expend", "purchase of property"}
)

// FindRow locates the first row whose case-folded label contains any of
// the keywords, honoring keyword priority order.
func (t StatementTable) FindRow(keywords []string) (Row, bool) {
	for _, kw := range keywords {
		needle := strings.ToLower(strings.TrimSpace(kw))
		if needle == "" {
			continue
		}
		for _, row := range t.Rows {
			if strings.Contains(strings.ToLower(row.Label), needle) {
				return row, true
			}
		}
	}
	return Row{}, false
}

// MostRecent returns the row's latest value. ok is false for a row with
// no recorded periods.
func (r Row) MostRecent() (float64, bool) {
	if len(r.Values) == 0 {
		return 0, false
	}
	return r.Values[0], true
}

// DeriveFCF computes free cash flow from a cash flow statement as
// operating cash flow plus capital expenditure. Capex is carried as a
// negative line item in the source statement and is not re-negated.
// ok is false when either line item cannot be located, in which case the
// caller must supply a manual value.
func DeriveFCF(cashFlow StatementTable) (float64, bool) {
	ocfRow, found := cashFlow.FindRow(OperatingCashFlowKeywords)
	if !found {
		return 0, false
	}
	ocf, ok := ocfRow.MostRecent()
	if !ok {
		return 0, false
	}

	capexRow, found := cashFlow.FindRow(CapexKeywords)
	if !found {
		return 0, false
	}
	capex, ok := capexRow.MostRecent()
	if !ok {
		return 0, false
	}

	return ocf + capex, true
}
