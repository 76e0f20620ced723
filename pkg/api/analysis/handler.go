package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"analyst_terminal/pkg/config"
	coreanalysis "analyst_terminal/pkg/core/analysis"
	"analyst_terminal/pkg/core/dcf"
	"analyst_terminal/pkg/core/store"
	"analyst_terminal/pkg/fetch"

	"github.com/google/uuid"
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

// Request carries the ticker plus optional parameter overrides; omitted
// fields take the configured defaults.
type Request struct {
	Ticker             string   `json:"ticker"`
	GrowthRate         *float64 `json:"growth_rate,omitempty"`
	DiscountRate       *float64 `json:"discount_rate,omitempty"`
	TerminalGrowthRate *float64 `json:"terminal_growth_rate,omitempty"`
	Years              *int     `json:"years,omitempty"`
	ManualFCF          *float64 `json:"manual_fcf,omitempty"`
}

// Params materializes the request against the configured defaults.
func (req Request) Params(cfg config.Defaults) coreanalysis.Params {
	params := coreanalysis.Params{
		GrowthRate:         cfg.GrowthRate,
		DiscountRate:       cfg.DiscountRate,
		TerminalGrowthRate: cfg.TerminalGrowthRate,
		Years:              cfg.ProjectionYears,
		ManualFCF:          req.ManualFCF,
	}
	if req.GrowthRate != nil {
		params.GrowthRate = *req.GrowthRate
	}
	if req.DiscountRate != nil {
		params.DiscountRate = *req.DiscountRate
	}
	if req.TerminalGrowthRate != nil {
		params.TerminalGrowthRate = *req.TerminalGrowthRate
	}
	if req.Years != nil {
		params.Years = *req.Years
	}
	return params
}

// LoadSnapshot serves a ticker's snapshot from the day cache, fetching
// and caching on a miss. Shared with the report handler.
func LoadSnapshot(ctx context.Context, c *fetch.Client, cache *store.SnapshotCache, ticker string) (fetch.Snapshot, error) {
	if cache != nil {
		if cached, err := cache.Get(ctx, ticker, time.Now()); err == nil && cached != nil {
			fmt.Printf("[ANALYSIS] cache hit for %s\n", ticker)
			return *cached, nil
		}
	}

	snap, err := c.Snapshot(ctx, ticker)
	if err != nil {
		return fetch.Snapshot{}, err
	}
	if cache != nil {
		if err := cache.Save(ctx, &snap); err != nil {
			fmt.Printf("[ANALYSIS] snapshot cache save failed: %v\n", err)
		}
	}
	return snap, nil
}

// HandleAnalyze runs a full valuation session for one ticker.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
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

	requestID := uuid.NewString()
	fmt.Printf("[ANALYSIS] %s request: %s\n", requestID, ticker)

	snap, err := LoadSnapshot(r.Context(), client, snapshots, ticker)
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

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		RequestID string              `json:"request_id"`
		Result    coreanalysis.Result `json:"result"`
	}{requestID, result})
}
