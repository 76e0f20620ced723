// Package report renders an analysis session as a markdown document and
// converts it to HTML for the API's browser view. All formatting lives
// here; the engines emit raw numbers only.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"analyst_terminal/pkg/core/analysis"
	"analyst_terminal/pkg/core/options"
	"analyst_terminal/pkg/fetch"

	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
)

// Document bundles everything one rendered report can include. Options
// and News are optional sections.
type Document struct {
	Analysis analysis.Result
	Call     *options.PricedOption
	Put      *options.PricedOption
	News     []fetch.NewsItem
}

// Build renders the document as markdown.
func Build(doc Document) string {
	var b strings.Builder
	res := doc.Analysis

	if res.CompanyName != "" {
		fmt.Fprintf(&b, "# %s — %s\n\n", res.CompanyName, res.Ticker)
	} else {
		fmt.Fprintf(&b, "# %s\n\n", res.Ticker)
	}

	b.WriteString("## Snapshot\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Price | %s |\n", money(res.Price, 2))
	if res.MarketCapEV != nil {
		fmt.Fprintf(&b, "| Enterprise Value (quote) | %s |\n", money(*res.MarketCapEV, 0))
	}
	fmt.Fprintf(&b, "| Volatility (annualized) | %.2f%% |\n", res.Volatility*100)
	b.WriteString("\n")

	b.WriteString("## DCF Valuation\n\n")
	if res.Projection == nil {
		b.WriteString("Free cash flow could not be derived from the statements; supply a manual FCF to run the DCF.\n\n")
	} else {
		if res.FCF != nil {
			fmt.Fprintf(&b, "Base FCF (%s): %s\n\n", res.FCFSource, money(*res.FCF, 0))
		}
		b.WriteString("| Period | Nominal FCF | Present Value |\n|---|---|---|\n")
		for i := range res.Projection.Nominal {
			fmt.Fprintf(&b, "| Y%d | %s | %s |\n", i+1, money(res.Projection.Nominal[i], 0), money(res.Projection.PresentValues[i], 0))
		}
		if res.Projection.TerminalPresentValue != nil {
			fmt.Fprintf(&b, "| Terminal | — | %s |\n", money(*res.Projection.TerminalPresentValue, 0))
		} else {
			b.WriteString("| Terminal | — | undefined (discount ≤ terminal growth) |\n")
		}
		b.WriteString("\n")

		fmt.Fprintf(&b, "- Enterprise Value: %s\n", money(res.Projection.EnterpriseValue, 0))
		if res.EquityValue != nil {
			fmt.Fprintf(&b, "- Equity Value: %s\n", money(*res.EquityValue, 0))
		}
		if res.ImpliedPrice != nil {
			fmt.Fprintf(&b, "- Implied Price: %s\n", money(*res.ImpliedPrice, 2))
		}
		if res.Upside != nil {
			fmt.Fprintf(&b, "- Upside vs market: %.1f%%\n", *res.Upside)
		}
		b.WriteString("\n")
	}

	if doc.Call != nil || doc.Put != nil {
		b.WriteString("## Options (Black-Scholes)\n\n")
		b.WriteString("| Side | Price | Delta | Gamma | Theta (per year) | Vega | Rho |\n|---|---|---|---|---|---|---|\n")
		writeOptionRow(&b, "Call", doc.Call)
		writeOptionRow(&b, "Put", doc.Put)
		b.WriteString("\n")
	}

	if len(doc.News) > 0 {
		b.WriteString("## News\n\n")
		for _, n := range doc.News {
			line := fmt.Sprintf("- [%s](%s)", n.Title, n.Link)
			if n.Publisher != "" {
				line += fmt.Sprintf(" — %s", n.Publisher)
			}
			if n.Time != "" {
				line += fmt.Sprintf(" (%s)", n.Time)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeOptionRow(b *strings.Builder, side string, priced *options.PricedOption) {
	if priced == nil {
		return
	}
	if priced.Greeks == nil {
		fmt.Fprintf(b, "| %s | %s | n/a | n/a | n/a | n/a | n/a |\n", side, money(priced.Price, 2))
		return
	}
	g := priced.Greeks
	fmt.Fprintf(b, "| %s | %s | %.4f | %.4f | %.2f | %.2f | %.4f |\n",
		side, money(priced.Price, 2), g.Delta, g.Gamma, g.Theta, g.Vega, g.Rho)
}

// HTML converts a markdown report to HTML.
func HTML(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("failed to render report html: %w", err)
	}
	return buf.Bytes(), nil
}

// money renders a dollar amount with thousands separators.
func money(v float64, places int32) string {
	d := decimal.NewFromFloat(v).Round(places)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	text := d.StringFixed(places)
	intPart := text
	var fracPart string
	if i := strings.IndexByte(text, '.'); i >= 0 {
		intPart, fracPart = text[:i], text[i:]
	}

	var grouped strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(ch)
	}

	out := "$" + grouped.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
