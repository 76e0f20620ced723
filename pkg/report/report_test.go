package report

import (
	"strings"
	"testing"

	"analyst_terminal/pkg/core/analysis"
	"analyst_terminal/pkg/core/dcf"
	"analyst_terminal/pkg/core/options"
	"analyst_terminal/pkg/fetch"
)

func fp(v float64) *float64 { return &v }

func resultFixture() analysis.Result {
	tv := 1275.0
	tvPV := 791.77
	return analysis.Result{
		Ticker:      "WYNN",
		CompanyName: "Wynn Resorts, Limited",
		Price:       92.5,
		MarketCapEV: fp(19.65e9),
		FCF:         fp(850e6),
		FCFSource:   analysis.FCFDerived,
		Projection: &dcf.Projection{
			Nominal:              []float64{892.5e6, 937.1e6, 984.0e6},
			PresentValues:        []float64{818.8e6, 788.7e6, 759.8e6},
			TerminalValue:        &tv,
			TerminalPresentValue: &tvPV,
			EnterpriseValue:      2.37e9,
		},
		EquityValue:  fp(-6.78e9),
		ImpliedPrice: fp(-59.74),
		Volatility:   0.31,
	}
}

func TestBuildContainsCoreSections(t *testing.T) {
	md := Build(Document{Analysis: resultFixture()})

	for _, want := range []string{
		"# Wynn Resorts, Limited — WYNN",
		"## Snapshot",
		"## DCF Valuation",
		"Base FCF (derived): $850,000,000",
		"| Y1 | $892,500,000 | $818,800,000 |",
		"Enterprise Value: $2,370,000,000",
		"31.00%",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q\n---\n%s", want, md)
		}
	}
}

func TestBuildUndefinedTerminal(t *testing.T) {
	res := resultFixture()
	res.Projection.TerminalValue = nil
	res.Projection.TerminalPresentValue = nil

	md := Build(Document{Analysis: res})
	if !strings.Contains(md, "undefined (discount ≤ terminal growth)") {
		t.Error("undefined terminal value should be called out, not dropped")
	}
}

func TestBuildWithoutProjection(t *testing.T) {
	res := resultFixture()
	res.Projection = nil
	res.FCF = nil

	md := Build(Document{Analysis: res})
	if !strings.Contains(md, "supply a manual FCF") {
		t.Error("missing-FCF guidance absent")
	}
}

func TestBuildOptionsSection(t *testing.T) {
	call := &options.PricedOption{
		Price:  10.45,
		Greeks: &options.Greeks{Delta: 0.6368, Gamma: 0.0188, Theta: -6.41, Vega: 37.52, Rho: 53.23},
	}
	put := &options.PricedOption{Price: 2.5} // degenerate: no Greeks

	md := Build(Document{Analysis: resultFixture(), Call: call, Put: put})

	if !strings.Contains(md, "Theta (per year)") {
		t.Error("theta column must be labeled per year")
	}
	if !strings.Contains(md, "| Call | $10.45 | 0.6368 |") {
		t.Errorf("call row malformed:\n%s", md)
	}
	if !strings.Contains(md, "| Put | $2.50 | n/a |") {
		t.Errorf("degenerate put row should show n/a Greeks:\n%s", md)
	}
}

func TestBuildNewsSection(t *testing.T) {
	news := []fetch.NewsItem{
		{Title: "Wynn beats estimates", Link: "https://example.com/a", Publisher: "Example Wire", Time: "2026-08-14 12:00"},
		{Title: "No timestamp", Link: "https://example.com/b"},
	}
	md := Build(Document{Analysis: resultFixture(), News: news})

	if !strings.Contains(md, "[Wynn beats estimates](https://example.com/a) — Example Wire (2026-08-14 12:00)") {
		t.Errorf("news line malformed:\n%s", md)
	}
	if !strings.Contains(md, "[No timestamp](https://example.com/b)\n") {
		t.Error("news item without publisher/time should render bare")
	}
}

func TestHTMLConversion(t *testing.T) {
	html, err := HTML("# Title\n\nSome **bold** text.\n")
	if err != nil {
		t.Fatal(err)
	}
	s := string(html)
	if !strings.Contains(s, "<h1") || !strings.Contains(s, "<strong>bold</strong>") {
		t.Errorf("unexpected html: %s", s)
	}
}

func TestMoneyFormatting(t *testing.T) {
	cases := []struct {
		v      float64
		places int32
		want   string
	}{
		{1234567.891, 2, "$1,234,567.89"},
		{1234567.891, 0, "$1,234,568"},
		{-42.5, 2, "-$42.50"},
		{0, 0, "$0"},
		{999, 0, "$999"},
	}
	for _, c := range cases {
		if got := money(c.v, c.places); got != c.want {
			t.Errorf("money(%v, %d) = %q, want %q", c.v, c.places, got, c.want)
		}
	}
}
