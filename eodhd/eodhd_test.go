package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
)

const optionsJSON = `{"code":"QQQ.US","exchange":"US","data":[
{"expirationDate":"2027-01-08","options":{"CALL":[{"contractName":"QQQ270108C00380000","strike":380,"lastPrice":11}],"PUT":[]}},
{"expirationDate":"2027-01-22","options":{"CALL":[{"contractName":"QQQ270122C00380000","strike":380,"lastPrice":14}],"PUT":[]}},
{"expirationDate":"2027-01-15","options":{
  "CALL":[{"contractName":"QQQ270115C00380000","strike":380,"lastPrice":12.5,"bid":12,"ask":13}],
  "PUT":[{"contractName":"QQQ270115P00380000","strike":380,"lastPrice":null,"bid":8,"ask":9}]}}]}`

func newServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.URL.Query().Get("api_token"); got != "test-key" {
			t.Errorf("api_token = %q, want test-key", got)
		}
		switch r.URL.Path {
		case "/api/eod/AAPL.US":
			fmt.Fprint(w, `[{"date":"2025-01-14","close":148.5},{"date":"2025-01-15","close":150},{"date":"2025-01-13","close":147}]`)
		case "/api/eod/EMPTY.US":
			fmt.Fprint(w, `[]`)
		case "/api/options/QQQ.US":
			fmt.Fprint(w, optionsJSON)
		case "/api/options/NOOPT.US":
			fmt.Fprint(w, `{"code":"NOOPT.US","data":[]}`)
		default:
			http.Error(w, "Ticker Not Found.", http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	return &Client{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: &http.Client{Transport: &holdings.DailyCache{Base: srv.Client().Transport, Dir: t.TempDir()}},
	}
}

func TestTicker(t *testing.T) {
	for symbol, want := range map[string]string{"AAPL": "AAPL.US", "VOW3.XETRA": "VOW3.XETRA"} {
		if got := Ticker(symbol); got != want {
			t.Errorf("Ticker(%q) = %q, want %q", symbol, got, want)
		}
	}
}

func TestClient_LatestPrice(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, newServer(t, &hits))
	testCases := []struct {
		symbol  string
		want    string
		wantErr error
	}{
		{"AAPL", "150", nil},
		{"EMPTY", "", holdings.ErrNoProviderData},
		{"ZZZZ", "", holdings.ErrNoProviderData},
	}
	for _, tc := range testCases {
		t.Run(tc.symbol, func(t *testing.T) {
			got, err := c.LatestPrice(context.Background(), tc.symbol)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("LatestPrice(%q) error = %v, want %v", tc.symbol, err, tc.wantErr)
			}
			if tc.wantErr == nil && got.String() != tc.want {
				t.Errorf("LatestPrice(%q) = %v, want %v", tc.symbol, got, tc.want)
			}
		})
	}
}

func TestClient_OptionChain(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, newServer(t, &hits))
	ctx := context.Background()

	chain, err := c.OptionChain(ctx, "QQQ", date.MustParse("2027-01-15"))
	if err != nil {
		t.Fatalf("OptionChain() returned error: %v", err)
	}
	if len(chain.Calls) != 1 || len(chain.Puts) != 1 {
		t.Fatalf("OptionChain() = %d calls %d puts, want 1 and 1", len(chain.Calls), len(chain.Puts))
	}
	if chain.Puts[0].Last.Valid {
		t.Errorf("put last = %v, want null", chain.Puts[0].Last)
	}

	if _, err := c.OptionChain(ctx, "QQQ", date.MustParse("2027-01-16")); !errors.Is(err, holdings.ErrChainNotFound) {
		t.Errorf("OptionChain(01/16) error = %v, want %v", err, holdings.ErrChainNotFound)
	}
	if _, err := c.OptionChain(ctx, "NOOPT", date.MustParse("2027-01-15")); !errors.Is(err, holdings.ErrChainNotFound) {
		t.Errorf("OptionChain(NOOPT) error = %v, want %v", err, holdings.ErrChainNotFound)
	}

	exps, err := c.Expirations(ctx, "QQQ")
	if err != nil {
		t.Fatalf("Expirations() returned error: %v", err)
	}
	if len(exps) != 3 {
		t.Errorf("Expirations() = %v, want 3 dates", exps)
	}
	// the options list is fetched once and served from the daily cache.
	if n := hits.Load(); n != 2 {
		t.Errorf("server hit %d times, want 2", n)
	}
}

func TestClient_Resolve(t *testing.T) {
	var hits atomic.Int32
	r := holdings.NewResolver(newTestClient(t, newServer(t, &hits)))
	testCases := []struct {
		symbol string
		want   string
	}{
		{"AAPL", "150"},
		{"QQQ 01/15/2027 380.00 C", "1250"},
		{"QQQ 01/15/2027 380.00 P", "850"},
		// no chain on 01/16, the 01/15 one is the nearest.
		{"QQQ 01/16/2027 380.00 C", "1250"},
		{"QQQ 01/18/2027 380.00 C", "1250"},
		{"QQQ 01/20/2027 380.00 C", "1400"},
	}
	for _, tc := range testCases {
		q := r.Resolve(context.Background(), tc.symbol)
		if price, ok := q.Price(); !ok || price.String() != tc.want {
			t.Errorf("Resolve(%q) = %v, want %v", tc.symbol, q, tc.want)
		}
	}
}
