package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
)

// 2027-01-08, 2027-01-15 and 2027-01-22 at midnight UTC.
const (
	jan08 = 1799366400
	jan15 = 1799971200
	jan22 = 1800576000
)

const chainJSON = `{"optionChain":{"result":[{"underlyingSymbol":"QQQ","expirationDates":[%d,%d,%d],
"options":[{"expirationDate":%d,
"calls":[{"contractSymbol":"QQQ270115C00375000","strike":375.0,"lastPrice":15.0},
         {"contractSymbol":"QQQ270115C00380000","strike":380.0,"lastPrice":12.5,"bid":12.0,"ask":13.0}],
"puts":[{"contractSymbol":"QQQ270115P00380000","strike":380.0,"bid":8.0,"ask":9.0}]}]}],"error":null}}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q, want test-agent", ua)
		}
		switch {
		case r.URL.Path == "/v8/finance/chart/AAPL":
			fmt.Fprint(w, `{"chart":{"result":[{"meta":{"regularMarketPrice":150.0},"indicators":{"quote":[{"close":[149.5]}]}}],"error":null}}`)
		case r.URL.Path == "/v8/finance/chart/MSFT":
			fmt.Fprint(w, `{"chart":{"result":[{"meta":{},"indicators":{"quote":[{"close":[299.0,301.25,null]}]}}],"error":null}}`)
		case r.URL.Path == "/v8/finance/chart/EMPTY":
			fmt.Fprint(w, `{"chart":{"result":[{"meta":{},"indicators":{"quote":[{}]}}],"error":null}}`)
		case r.URL.Path == "/v8/finance/chart/BROKEN":
			http.Error(w, "boom", http.StatusInternalServerError)
		case r.URL.Path == "/v7/finance/options/QQQ":
			switch r.URL.Query().Get("date") {
			case "", fmt.Sprint(jan15):
				fmt.Fprintf(w, chainJSON, jan08, jan15, jan22, jan15)
			default:
				fmt.Fprintf(w, `{"optionChain":{"result":[{"underlyingSymbol":"QQQ","expirationDates":[%d,%d,%d],"options":[]}],"error":null}}`, jan08, jan15, jan22)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return &Client{BaseURL: srv.URL, HTTPClient: srv.Client(), UserAgent: "test-agent"}
}

func TestClient_LatestPrice(t *testing.T) {
	c := newTestClient(newServer(t))
	testCases := []struct {
		symbol  string
		want    string
		wantErr error
	}{
		{"AAPL", "150", nil},
		{"MSFT", "301.25", nil},
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

func TestClient_LatestPrice_ServerError(t *testing.T) {
	c := newTestClient(newServer(t))
	_, err := c.LatestPrice(context.Background(), "BROKEN")
	if err == nil || errors.Is(err, holdings.ErrNoProviderData) {
		t.Errorf("LatestPrice(BROKEN) error = %v, want a transport error", err)
	}
}

func TestClient_Expirations(t *testing.T) {
	c := newTestClient(newServer(t))
	got, err := c.Expirations(context.Background(), "QQQ")
	if err != nil {
		t.Fatalf("Expirations() returned error: %v", err)
	}
	want := []string{"2027-01-08", "2027-01-15", "2027-01-22"}
	if len(got) != len(want) {
		t.Fatalf("Expirations() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("Expirations()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestClient_OptionChain(t *testing.T) {
	c := newTestClient(newServer(t))
	chain, err := c.OptionChain(context.Background(), "QQQ", date.MustParse("2027-01-15"))
	if err != nil {
		t.Fatalf("OptionChain() returned error: %v", err)
	}
	if len(chain.Calls) != 2 || len(chain.Puts) != 1 {
		t.Fatalf("OptionChain() = %d calls %d puts, want 2 and 1", len(chain.Calls), len(chain.Puts))
	}
	put := chain.Puts[0]
	if put.Last.Valid {
		t.Errorf("put last = %v, want null", put.Last)
	}
	if !put.Bid.Valid || put.Bid.Decimal.String() != "8" {
		t.Errorf("put bid = %v, want 8", put.Bid)
	}

	_, err = c.OptionChain(context.Background(), "QQQ", date.MustParse("2027-01-08"))
	if !errors.Is(err, holdings.ErrChainNotFound) {
		t.Errorf("OptionChain(01/08) error = %v, want %v", err, holdings.ErrChainNotFound)
	}
}

func TestClient_Resolve(t *testing.T) {
	r := holdings.NewResolver(newTestClient(newServer(t)))
	testCases := []struct {
		symbol string
		want   string
	}{
		{"AAPL", "150"},
		{"QQQ 01/15/2027 380.00 C", "1250"},
		{"QQQ 01/15/2027 380.00 P", "850"},
	}
	for _, tc := range testCases {
		q := r.Resolve(context.Background(), tc.symbol)
		price, ok := q.Price()
		if !ok || price.String() != tc.want {
			t.Errorf("Resolve(%q) = %v, want %v", tc.symbol, q, tc.want)
		}
	}

	q := r.Resolve(context.Background(), "QQQ 01/16/2027 380.00 C")
	if price, ok := q.Price(); !ok || price.String() != "1250" {
		t.Errorf("Resolve(01/16) = %v, want the 01/15 chain price", q)
	}
}
