package report

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"analyst_terminal/pkg/config"
	"analyst_terminal/pkg/core/store"
	"analyst_terminal/pkg/fetch"
)

const chartFixture = `{"chart":{"result":[{
  "meta":{"currency":"USD","symbol":"WYNN","regularMarketPrice":92.5},
  "timestamp":[1700000000,1700086400],
  "indicators":{"quote":[{"open":[90,91],"high":[92,93],"low":[89,90],"close":[91,92.5]}]}
}],"error":null}}`

const keyStatsFixture = `<html><body><h1>Wynn Resorts, Limited</h1><table>
<tr><td>Market Cap</td><td>10.5B</td></tr>
<tr><td>Shares Outstanding</td><td>113.5M</td></tr>
<tr><td>Total Debt</td><td>12.1B</td></tr>
<tr><td>Total Cash</td><td>2.95B</td></tr>
</table></body></html>`

const cashFlowFixture = `<html><body><table>
<tr><td>Operating Cash Flow</td><td>1,200.0M</td></tr>
<tr><td>Capital Expenditure</td><td>(350.0M)</td></tr>
</table></body></html>`

const searchFixture = `{"news":[
  {"title": "Wynn beats estimates", "link": "https://example.com/a", "publisher": "Example Wire", "providerPublishTime": 1700000000}
]}`

func setupHandler(t *testing.T) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartFixture)
	})
	mux.HandleFunc("/quote/WYNN/key-statistics/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, keyStatsFixture)
	})
	mux.HandleFunc("/quote/WYNN/cash-flow/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cashFlowFixture)
	})
	mux.HandleFunc("/v1/finance/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchFixture)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := fetch.NewClient(
		fetch.WithHTTPClient(srv.Client()),
		fetch.WithBaseURLs(srv.URL, srv.URL, srv.URL),
		fetch.WithRequestSpacing(0),
	)
	InitHandler(client, store.NewSnapshotCache(nil, t.TempDir()), config.Builtin())
}

func postReport(body, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(body))
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	HandleReport(rec, req)
	return rec
}

func TestHandleReportMarkdown(t *testing.T) {
	setupHandler(t)

	rec := postReport(`{"ticker":"wynn"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("content type = %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{"— WYNN", "## Snapshot", "## DCF Valuation", "## Options (Black-Scholes)", "## News", "Wynn beats estimates"} {
		if !strings.Contains(body, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestHandleReportHTML(t *testing.T) {
	setupHandler(t)

	rec := postReport(`{"ticker":"WYNN"}`, "text/html")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if body := rec.Body.String(); !strings.Contains(body, "<h1") {
		t.Error("expected rendered HTML headings")
	}
}

func TestHandleReportMissingTicker(t *testing.T) {
	setupHandler(t)
	if rec := postReport(`{}`, ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestHandleReportInvalidHorizon(t *testing.T) {
	setupHandler(t)
	if rec := postReport(`{"ticker":"WYNN","years":4}`, ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestHandleReportUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client := fetch.NewClient(
		fetch.WithHTTPClient(srv.Client()),
		fetch.WithBaseURLs(srv.URL, srv.URL, srv.URL),
		fetch.WithRequestSpacing(0),
	)
	InitHandler(client, store.NewSnapshotCache(nil, t.TempDir()), config.Builtin())

	rec := postReport(`{"ticker":"WYNN"}`, "")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status %d, want 502", rec.Code)
	}
}
