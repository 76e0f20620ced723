package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"analyst_terminal/pkg/config"
	"analyst_terminal/pkg/core/analysis"
	"analyst_terminal/pkg/core/options"
	"analyst_terminal/pkg/fetch"
	"analyst_terminal/pkg/report"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	var (
		ticker   = flag.String("ticker", "", "ticker symbol to analyze (required)")
		growth   = flag.Float64("growth", 0, "FCF growth rate override, e.g. 0.05")
		discount = flag.Float64("discount", 0, "discount rate (WACC) override")
		terminal = flag.Float64("terminal", 0, "terminal growth rate override")
		years    = flag.Int("years", 0, "projection horizon (3, 5, 7 or 10)")
		fcf      = flag.Float64("fcf", 0, "manual free cash flow, bypasses derivation")
		days     = flag.Float64("days", 30, "days to expiry for the option table")
		offline  = flag.Bool("offline", false, "skip market data, requires -fcf")
	)
	flag.Parse()

	if *ticker == "" {
		fmt.Fprintln(os.Stderr, "usage: terminal -ticker WYNN [-growth 0.05] [-years 5] ...")
		flag.PrintDefaults()
		os.Exit(2)
	}
	symbol := strings.ToUpper(strings.TrimSpace(*ticker))

	cfg, err := config.Load("config/defaults.yaml")
	if err != nil {
		cfg = config.Builtin()
	}
	cfg, _ = config.ApplyOverrides(cfg, "config/overrides.hjson")

	params := analysis.Params{
		GrowthRate:         cfg.GrowthRate,
		DiscountRate:       cfg.DiscountRate,
		TerminalGrowthRate: cfg.TerminalGrowthRate,
		Years:              cfg.ProjectionYears,
	}
	if *growth != 0 {
		params.GrowthRate = *growth
	}
	if *discount != 0 {
		params.DiscountRate = *discount
	}
	if *terminal != 0 {
		params.TerminalGrowthRate = *terminal
	}
	if *years != 0 {
		params.Years = *years
	}
	if *fcf != 0 {
		params.ManualFCF = fcf
	}

	var snap fetch.Snapshot
	if *offline {
		if params.ManualFCF == nil {
			fmt.Fprintln(os.Stderr, "[ERROR] -offline needs -fcf to value anything")
			os.Exit(2)
		}
		snap = fetch.Snapshot{Ticker: symbol, FetchedAt: time.Now().UTC()}
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		client := fetch.NewClient()
		snap, err = client.Snapshot(ctx, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[ERROR] market data unavailable for %s: %v\n", symbol, err)
			os.Exit(1)
		}
	}

	result, err := analysis.Run(snap, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	doc := report.Document{Analysis: result}

	if result.Price > 0 {
		quote := options.Quote{
			S:     result.Price,
			K:     result.Price,
			T:     *days / 365.0,
			R:     cfg.RiskFreeRate,
			Sigma: result.Volatility,
		}
		quote.Kind = options.Call
		if call, err := options.Price(quote); err == nil {
			doc.Call = &call
		}
		quote.Kind = options.Put
		if put, err := options.Price(quote); err == nil {
			doc.Put = &put
		}
	}

	if !*offline {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if items, err := fetch.NewClient().News(ctx, symbol, cfg.NewsLimit); err == nil {
			doc.News = items
		}
	}

	fmt.Print(report.Build(doc))
}
