package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/agent"
	"github.com/etnz/holdings/eodhd"
	"github.com/etnz/holdings/yahoo"
	"github.com/shopspring/decimal"
)

func TestOutputName(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2027, time.January, 10, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		output string
		want   string
	}{
		{"auto", "portfolio_analysis_20270110_153000.csv"},
		{dir, filepath.Join(dir, "portfolio_analysis_20270110_153000.csv")},
		{"out.csv", "out.csv"},
	}
	for _, tc := range testCases {
		if got := outputName(tc.output, now); got != tc.want {
			t.Errorf("outputName(%q) = %q, want %q", tc.output, got, tc.want)
		}
	}
}

func TestPrintQuotes(t *testing.T) {
	symbols := []string{"AAPL", "ZZZZ"}
	quotes := map[string]holdings.Quotation{
		"AAPL": holdings.NewQuotation("AAPL", decimal.RequireFromString("150")),
		"ZZZZ": holdings.FailedQuotation("ZZZZ", holdings.ErrNoProviderData),
	}

	var buf bytes.Buffer
	failed := printQuotes(&buf, symbols, quotes)
	if failed != 1 {
		t.Errorf("printQuotes() failures = %d, want 1", failed)
	}
	want := "AAPL: 150.00\nZZZZ: no data available\n"
	if got := buf.String(); got != want {
		t.Errorf("printQuotes() output = %q, want %q", got, want)
	}
}

func TestNewMarketData(t *testing.T) {
	cfg := DefaultConfig()
	if _, ok := NewMarketData(cfg).(*yahoo.Client); !ok {
		t.Errorf("default provider is %T, want *yahoo.Client", NewMarketData(cfg))
	}

	cfg.CacheDir = t.TempDir()
	y := NewMarketData(cfg).(*yahoo.Client)
	if _, ok := y.HTTPClient.Transport.(*holdings.DailyCache); !ok {
		t.Errorf("yahoo transport is %T, want the daily cache", y.HTTPClient.Transport)
	}

	cfg.Provider = ProviderEODHD
	cfg.EODHD.APIKey = "key"
	e, ok := NewMarketData(cfg).(*eodhd.Client)
	if !ok {
		t.Fatalf("eodhd provider is %T, want *eodhd.Client", NewMarketData(cfg))
	}
	if e.APIKey != "key" {
		t.Errorf("APIKey = %q, want %q", e.APIKey, "key")
	}
}

func TestNewAnalyst_NotConfigured(t *testing.T) {
	cfg := DefaultConfig()
	for _, provider := range []string{AIGemini, AIClaude} {
		cfg.AI.Provider = provider
		a, err := NewAnalyst(context.Background(), cfg)
		if !errors.Is(err, agent.ErrNotConfigured) {
			t.Errorf("NewAnalyst(%s) error = %v, want ErrNotConfigured", provider, err)
		}
		if a != nil {
			t.Errorf("NewAnalyst(%s) returned an analyst without key", provider)
		}
	}
}
