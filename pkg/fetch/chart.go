package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// Bar is one OHLC observation.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
}

// PriceHistory is a timestamp-ordered daily price series plus the quote
// basics the chart endpoint carries in its meta block.
type PriceHistory struct {
	Symbol   string  `json:"symbol"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"` // regular market price at fetch time
	Bars     []Bar   `json:"bars"`
}

// Closes extracts the close column for the volatility estimator.
func (h PriceHistory) Closes() []float64 {
	closes := make([]float64, len(h.Bars))
	for i, b := range h.Bars {
		closes[i] = b.Close
	}
	return closes
}

// chartResponse mirrors the chart API payload. Only the fields the
// terminal consumes are declared.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []float64 `json:"open"`
					High  []float64 `json:"high"`
					Low   []float64 `json:"low"`
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// History fetches a daily OHLC series. rng is a chart API range string
// such as "1y" or "5y".
func (c *Client) History(ctx context.Context, ticker, rng string) (PriceHistory, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d", c.chartBase, url.PathEscape(ticker), url.QueryEscape(rng))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return PriceHistory{}, err
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return PriceHistory{}, fmt.Errorf("failed to parse chart response: %w", err)
	}
	if len(parsed.Chart.Result) == 0 {
		return PriceHistory{}, fmt.Errorf("no chart data for ticker %s", ticker)
	}

	result := parsed.Chart.Result[0]
	history := PriceHistory{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
		Price:    result.Meta.RegularMarketPrice,
	}

	if len(result.Indicators.Quote) == 0 {
		return history, nil
	}
	quote := result.Indicators.Quote[0]

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			// Null buckets decode as zero; skip them rather than feeding
			// phantom -100% returns into the volatility estimate.
			continue
		}
		bar := Bar{
			Timestamp: time.Unix(ts, 0).UTC(),
			Close:     quote.Close[i],
		}
		if i < len(quote.Open) {
			bar.Open = quote.Open[i]
		}
		if i < len(quote.High) {
			bar.High = quote.High[i]
		}
		if i < len(quote.Low) {
			bar.Low = quote.Low[i]
		}
		history.Bars = append(history.Bars, bar)
	}

	return history, nil
}
