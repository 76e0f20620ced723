package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// NewsItem is one headline from the company news feed.
type NewsItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Publisher string `json:"publisher,omitempty"`
	Time      string `json:"time,omitempty"` // "2006-01-02 15:04", empty when unknown
}

type searchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Link                string `json:"link"`
		Publisher           string `json:"publisher"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// News fetches recent headlines for the ticker from the search endpoint.
// A ticker with no coverage yields an empty slice, not an error.
func (c *Client) News(ctx context.Context, ticker string, limit int) ([]NewsItem, error) {
	if limit <= 0 {
		limit = 6
	}

	endpoint := fmt.Sprintf("%s/v1/finance/search?q=%s", c.searchBase, url.QueryEscape(ticker))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}

	items := make([]NewsItem, 0, limit)
	for _, n := range parsed.News {
		if len(items) == limit {
			break
		}
		item := NewsItem{
			Title:     n.Title,
			Link:      n.Link,
			Publisher: n.Publisher,
		}
		if n.ProviderPublishTime > 0 {
			item.Time = time.Unix(n.ProviderPublishTime, 0).UTC().Format("2006-01-02 15:04")
		}
		items = append(items, item)
	}
	return items, nil
}
