package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"analyst_terminal/pkg/config"
	"analyst_terminal/pkg/fetch"
)

var (
	client   *fetch.Client
	defaults config.Defaults
)

// InitHandler wires the handler's collaborators.
func InitHandler(c *fetch.Client, cfg config.Defaults) {
	client = c
	defaults = cfg
}

// HandleNews serves recent headlines for a ticker.
// GET /api/news?ticker=WYNN&limit=8
func HandleNews(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}

	limit := defaults.NewsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, fmt.Sprintf("invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	items, err := client.News(r.Context(), ticker, limit)
	if err != nil {
		// The feed is best-effort; an upstream failure reads as no news.
		fmt.Printf("[NEWS] fetch failed for %s: %v\n", ticker, err)
		items = []fetch.NewsItem{}
	}
	if items == nil {
		items = []fetch.NewsItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
