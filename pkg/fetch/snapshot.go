package fetch

import (
	"context"
	"fmt"
	"time"
)

// Snapshot bundles everything a single analysis session needs for one
// ticker. It is the unit cached by the store layer.
type Snapshot struct {
	Ticker     string       `json:"ticker"`
	FetchedAt  time.Time    `json:"fetched_at"`
	Quote      QuoteSummary `json:"quote"`
	History    PriceHistory `json:"history"`
	Statements Statements   `json:"statements"`
}

// Snapshot fetches quote, five-year history and statements in one pass.
// The quote is mandatory (no price means nothing to analyze); history
// and statements degrade to empty values.
func (c *Client) Snapshot(ctx context.Context, ticker string) (Snapshot, error) {
	quote, err := c.Quote(ctx, ticker)
	if err != nil {
		return Snapshot{}, fmt.Errorf("quote fetch failed for %s: %w", ticker, err)
	}

	snap := Snapshot{
		Ticker:    quote.Ticker,
		FetchedAt: time.Now().UTC(),
		Quote:     quote,
	}

	if history, err := c.History(ctx, ticker, "5y"); err != nil {
		fmt.Printf("[FETCH] price history unavailable for %s: %v\n", ticker, err)
	} else {
		snap.History = history
	}

	if statements, err := c.Statements(ctx, ticker); err != nil {
		fmt.Printf("[FETCH] statements unavailable for %s: %v\n", ticker, err)
	} else {
		snap.Statements = statements
	}

	return snap, nil
}
