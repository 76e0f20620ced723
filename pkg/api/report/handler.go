package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apianalysis "analyst_terminal/pkg/api/analysis"
	"analyst_terminal/pkg/config"
	coreanalysis "analyst_terminal/pkg/core/analysis"
	"analyst_terminal/pkg/core/dcf"
	coreoptions "analyst_terminal/pkg/core/options"
	"analyst_terminal/pkg/core/store"
	"analyst_terminal/pkg/fetch"
	"analyst_terminal/pkg/report"
)

var (
	client    *fetch.Client
	snapshots *store.SnapshotCache
	defaults  config.Defaults
)

// InitHandler wires the handler's collaborators.
func InitHandler(c *fetch.Client, cache *store.SnapshotCache, cfg config.Defaults) {
	client = c
	snapshots = cache
	defaults = cfg
}

// Request mirrors the analysis request plus the option sizing used for
// the report's contract table (an at-the-money straddle by default).
type Request struct {
	apianalysis.Request
	OptionDays float64 `json:"option_days,omitempty"` // default 30
}

// HandleReport renders a full markdown (or HTML) report for one ticker.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}

	snap, err := apianalysis.LoadSnapshot(r.Context(), client, snapshots, ticker)
	if err != nil {
		http.Error(w, fmt.Sprintf("market data unavailable for %s: %v", ticker, err), http.StatusBadGateway)
		return
	}

	result, err := coreanalysis.Run(snap, req.Params(defaults))
	if err != nil {
		if errors.Is(err, dcf.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	doc := report.Document{Analysis: result}

	// At-the-money contract table, matching the terminal's defaults.
	if result.Price > 0 {
		days := req.OptionDays
		if days <= 0 {
			days = 30
		}
		quote := coreoptions.Quote{
			S:     result.Price,
			K:     result.Price,
			T:     days / 365.0,
			R:     defaults.RiskFreeRate,
			Sigma: result.Volatility,
		}
		quote.Kind = coreoptions.Call
		if call, err := coreoptions.Price(quote); err == nil {
			doc.Call = &call
		}
		quote.Kind = coreoptions.Put
		if put, err := coreoptions.Price(quote); err == nil {
			doc.Put = &put
		}
	}

	if items, err := client.News(r.Context(), ticker, defaults.NewsLimit); err == nil {
		doc.News = items
	}

	markdown := report.Build(doc)

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		html, err := report.HTML(markdown)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, markdown)
}
