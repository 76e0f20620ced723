package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// QuoteSummary carries the header metrics and the balance sheet items
// needed for the equity value bridge. Optional fields are pointers:
// nil means the page did not expose the item and the caller must fall
// back to a manual override.
type QuoteSummary struct {
	Ticker            string   `json:"ticker"`
	CompanyName       string   `json:"company_name"`
	Price             float64  `json:"price"`
	MarketCap         *float64 `json:"market_cap,omitempty"`
	SharesOutstanding *float64 `json:"shares_outstanding,omitempty"`
	TotalDebt         *float64 `json:"total_debt,omitempty"`
	TotalCash         *float64 `json:"total_cash,omitempty"`
	Sector            string   `json:"sector,omitempty"`
	Industry          string   `json:"industry,omitempty"`
}

// statistic labels as they appear on the key-statistics page, tried in
// priority order against the scraped table rows.
var (
	marketCapLabels = []string{"market cap"}
	sharesLabels    = []string{"shares outstanding"}
	totalDebtLabels = []string{"total debt"}
	totalCashLabels = []string{"total cash"}
)

// Quote fetches the header quote: live price from the chart endpoint and
// statistics scraped from the key-statistics page. A failed scrape still
// returns the price with the optional fields nil.
func (c *Client) Quote(ctx context.Context, ticker string) (QuoteSummary, error) {
	history, err := c.History(ctx, ticker, "1d")
	if err != nil {
		return QuoteSummary{}, err
	}

	summary := QuoteSummary{
		Ticker:      strings.ToUpper(ticker),
		CompanyName: history.Symbol,
		Price:       history.Price,
	}

	statsURL := fmt.Sprintf("%s/quote/%s/key-statistics/", c.pagesBase, url.PathEscape(ticker))
	body, err := c.get(ctx, statsURL)
	if err != nil {
		fmt.Printf("[FETCH] key statistics unavailable for %s: %v\n", ticker, err)
		return summary, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		fmt.Printf("[FETCH] key statistics parse failed for %s: %v\n", ticker, err)
		return summary, nil
	}

	stats := scrapeLabeledCells(doc)
	summary.MarketCap = lookupStat(stats, marketCapLabels)
	summary.SharesOutstanding = lookupStat(stats, sharesLabels)
	summary.TotalDebt = lookupStat(stats, totalDebtLabels)
	summary.TotalCash = lookupStat(stats, totalCashLabels)

	if name := strings.TrimSpace(doc.Find("h1").First().Text()); name != "" {
		summary.CompanyName = name
	}

	return summary, nil
}

// scrapeLabeledCells walks every two-column table row on the page into a
// normalized label -> raw value map.
func scrapeLabeledCells(doc *goquery.Document) map[string]string {
	stats := make(map[string]string)
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(cells.First().Text()))
		value := strings.TrimSpace(cells.Eq(1).Text())
		if label != "" && value != "" {
			if _, seen := stats[label]; !seen {
				stats[label] = value
			}
		}
	})
	return stats
}

func lookupStat(stats map[string]string, keywords []string) *float64 {
	for _, kw := range keywords {
		for label, raw := range stats {
			if strings.Contains(label, kw) {
				if v, err := parseAbbreviated(raw); err == nil {
					return &v
				}
			}
		}
	}
	return nil
}

// parseAbbreviated converts display numbers like "2.95T", "96.1B",
// "15,550.3M" or "1,234,567" into floats.
func parseAbbreviated(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "N/A" || s == "--" {
		return 0, fmt.Errorf("empty statistic")
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "T"):
		multiplier = 1e12
		s = strings.TrimSuffix(s, "T")
	case strings.HasSuffix(s, "B"):
		multiplier = 1e9
		s = strings.TrimSuffix(s, "B")
	case strings.HasSuffix(s, "M"):
		multiplier = 1e6
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "k"), strings.HasSuffix(s, "K"):
		multiplier = 1e3
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable statistic %q: %w", s, err)
	}
	return v * multiplier, nil
}
