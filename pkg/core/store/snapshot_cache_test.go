package store

import (
	"context"
	"testing"
	"time"

	"analyst_terminal/pkg/fetch"
)

func TestFileCacheRoundTrip(t *testing.T) {
	cache := NewSnapshotCache(nil, t.TempDir())
	ctx := context.Background()

	fetchedAt := time.Date(2026, 8, 14, 15, 30, 0, 0, time.UTC)
	snap := &fetch.Snapshot{
		Ticker:    "WYNN",
		FetchedAt: fetchedAt,
		Quote:     fetch.QuoteSummary{Ticker: "WYNN", Price: 92.5},
		History: fetch.PriceHistory{
			Symbol: "WYNN",
			Bars: []fetch.Bar{
				{Timestamp: fetchedAt.Add(-24 * time.Hour), Close: 91.0},
				{Timestamp: fetchedAt, Close: 92.5},
			},
		},
	}

	if err := cache.Save(ctx, snap); err != nil {
		t.Fatal(err)
	}

	got, err := cache.Get(ctx, "wynn", fetchedAt)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected a cache hit (ticker lookup is case-insensitive)")
	}
	if got.Quote.Price != 92.5 || len(got.History.Bars) != 2 {
		t.Errorf("round trip mangled snapshot: %+v", got)
	}
}

func TestFileCacheMissByDay(t *testing.T) {
	cache := NewSnapshotCache(nil, t.TempDir())
	ctx := context.Background()

	snap := &fetch.Snapshot{
		Ticker:    "AAPL",
		FetchedAt: time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC),
	}
	if err := cache.Save(ctx, snap); err != nil {
		t.Fatal(err)
	}

	// Next day: stale entry must not be served.
	got, err := cache.Get(ctx, "AAPL", snap.FetchedAt.Add(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("cache keyed by day must miss on the following day")
	}
}

func TestFileCacheMissUnknownTicker(t *testing.T) {
	cache := NewSnapshotCache(nil, t.TempDir())
	got, err := cache.Get(context.Background(), "MSFT", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("expected a miss for an unseen ticker")
	}
}
