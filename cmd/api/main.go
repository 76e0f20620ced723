package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	apianalysis "analyst_terminal/pkg/api/analysis"
	apinews "analyst_terminal/pkg/api/news"
	apioptions "analyst_terminal/pkg/api/options"
	apireport "analyst_terminal/pkg/api/report"
	"analyst_terminal/pkg/config"
	"analyst_terminal/pkg/core/store"
	"analyst_terminal/pkg/fetch"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load("config/defaults.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Failed to load defaults: %v\n", err)
		fmt.Println("  Falling back to built-in assumptions")
		cfg = config.Builtin()
	}
	cfg, err = config.ApplyOverrides(cfg, "config/overrides.hjson")
	if err != nil {
		fmt.Printf("[WARNING] Failed to apply overrides: %v\n", err)
	}

	// Postgres-backed snapshot cache when DATABASE_URL is set, file
	// cache otherwise.
	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[STORE] Postgres unavailable, using file cache: %v\n", err)
	}
	snapshots := store.NewSnapshotCache(store.GetPool(), "")
	defer store.Close()

	client := fetch.NewClient()

	apianalysis.InitHandler(client, snapshots, cfg)
	http.HandleFunc("/api/analysis", apianalysis.HandleAnalyze)

	apioptions.InitHandler(cfg)
	http.HandleFunc("/api/options/price", apioptions.HandlePrice)

	apinews.InitHandler(client, cfg)
	http.HandleFunc("/api/news", apinews.HandleNews)

	apireport.InitHandler(client, snapshots, cfg)
	http.HandleFunc("/api/report", apireport.HandleReport)

	fmt.Printf("API server starting on %s...\n", cfg.ListenAddr)
	fmt.Println("  - POST /api/analysis")
	fmt.Println("  - POST /api/options/price")
	fmt.Println("  - GET  /api/news")
	fmt.Println("  - POST /api/report")

	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
