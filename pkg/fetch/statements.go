package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"analyst_terminal/pkg/core/market"

	"github.com/PuerkitoBio/goquery"
)

// Statements bundles the three financial statements as label/value
// tables ready for fuzzy row lookup.
type Statements struct {
	Income   market.StatementTable `json:"income"`
	Balance  market.StatementTable `json:"balance"`
	CashFlow market.StatementTable `json:"cash_flow"`
}

// Statements scrapes the three statement pages. A statement that fails
// to fetch comes back empty rather than failing the bundle; the
// derivation layer treats missing rows as unavailable anyway.
func (c *Client) Statements(ctx context.Context, ticker string) (Statements, error) {
	var out Statements
	var firstErr error

	sections := []struct {
		path  string
		table *market.StatementTable
	}{
		{"financials", &out.Income},
		{"balance-sheet", &out.Balance},
		{"cash-flow", &out.CashFlow},
	}

	for _, section := range sections {
		table, err := c.statementTable(ctx, ticker, section.path)
		if err != nil {
			fmt.Printf("[FETCH] %s statement unavailable for %s: %v\n", section.path, ticker, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		*section.table = table
	}

	// Only report failure when nothing at all came back.
	if len(out.Income.Rows) == 0 && len(out.Balance.Rows) == 0 && len(out.CashFlow.Rows) == 0 && firstErr != nil {
		return out, fmt.Errorf("all statements unavailable for %s: %w", ticker, firstErr)
	}
	return out, nil
}

func (c *Client) statementTable(ctx context.Context, ticker, section string) (market.StatementTable, error) {
	pageURL := fmt.Sprintf("%s/quote/%s/%s/", c.pagesBase, url.PathEscape(ticker), section)
	body, err := c.get(ctx, pageURL)
	if err != nil {
		return market.StatementTable{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return market.StatementTable{}, fmt.Errorf("failed to parse %s page: %w", section, err)
	}

	return parseStatementTable(doc), nil
}

// parseStatementTable reads the first table whose rows look like
// "label, value, value, ..." with columns most recent first.
func parseStatementTable(doc *goquery.Document) market.StatementTable {
	var table market.StatementTable

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		label := strings.TrimSpace(cells.First().Text())
		if label == "" {
			return
		}

		var values []float64
		parsedAny := false
		cells.Slice(1, cells.Length()).Each(func(_ int, cell *goquery.Selection) {
			raw := strings.TrimSpace(cell.Text())
			// Statement tables render negatives in parentheses.
			negative := strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")")
			raw = strings.Trim(raw, "()")
			v, err := parseAbbreviated(raw)
			if err != nil {
				return
			}
			if negative {
				v = -v
			}
			values = append(values, v)
			parsedAny = true
		})

		if parsedAny {
			table.Rows = append(table.Rows, market.Row{Label: label, Values: values})
		}
	})

	return table
}
