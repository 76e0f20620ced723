package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"analyst_terminal/pkg/config"
	coreoptions "analyst_terminal/pkg/core/options"
)

var defaults config.Defaults

// InitHandler wires the handler's configuration.
func InitHandler(cfg config.Defaults) {
	defaults = cfg
}

// Request is a single manually-parameterized contract. DaysToExpiry is
// converted to year-fraction T internally; RiskFreeRate defaults to the
// configured rate when omitted.
type Request struct {
	S            float64  `json:"s"`
	K            float64  `json:"k"`
	DaysToExpiry float64  `json:"days_to_expiry"`
	RiskFreeRate *float64 `json:"risk_free_rate,omitempty"`
	Sigma        float64  `json:"sigma"`
	Kind         string   `json:"kind"`
}

// HandlePrice prices one option contract.
func HandlePrice(w http.ResponseWriter, r *http.Request) {
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

	kind, err := coreoptions.ParseKind(req.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rate := defaults.RiskFreeRate
	if req.RiskFreeRate != nil {
		rate = *req.RiskFreeRate
	}

	priced, err := coreoptions.Price(coreoptions.Quote{
		S:     req.S,
		K:     req.K,
		T:     req.DaysToExpiry / 365.0,
		R:     rate,
		Sigma: req.Sigma,
		Kind:  kind,
	})
	if err != nil {
		if errors.Is(err, coreoptions.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Printf("[OPTIONS] priced %s S=%v K=%v days=%v\n", kind, req.S, req.K, req.DaysToExpiry)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(priced)
}
