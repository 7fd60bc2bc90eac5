package holdings

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadHoldings(t *testing.T) {
	input := `Symbol,Shares,Purchase Price
aapl ,10,150.00
QQQ 01/15/2027 380.00 C,1,4500
,5,1
MSFT,abc,300
TSLA,,800
GOOGL,"1,200",100
AMZN,2.5
`
	holdings, err := ReadHoldings(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadHoldings() returned error: %v", err)
	}
	type row struct{ Symbol, Shares string }
	var got []row
	for _, h := range holdings {
		got = append(got, row{h.Symbol, h.Shares.String()})
	}
	want := []row{
		{"AAPL", "10"},
		{"QQQ 01/15/2027 380.00 C", "1"},
		{"AMZN", "2.5"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadHoldings() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadHoldings_MissingColumns(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"no shares", "Symbol,Price\nAAPL,1\n", "Shares"},
		{"no symbol", "Ticker,Shares\nAAPL,1\n", "Symbol"},
		{"empty file", "", "Symbol, Shares"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadHoldings(strings.NewReader(tc.input))
			if !errors.Is(err, ErrMissingColumns) {
				t.Fatalf("ReadHoldings() error = %v, want %v", err, ErrMissingColumns)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("ReadHoldings() error = %q, want it to name %q", err, tc.want)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	holdings := []Holding{NewHolding("AAPL", 10), NewHolding("QQQ 01/15/2027 380.00 C", 1)}
	report := Evaluate(context.Background(), holdings, staticLookup(map[string]string{
		"AAPL":                    "150",
		"QQQ 01/15/2027 380.00 C": "1250",
	}))

	var buf bytes.Buffer
	if err := WriteCSV(&buf, report); err != nil {
		t.Fatalf("WriteCSV() returned error: %v", err)
	}
	want := `Symbol,Shares,Current Price,Current Value,Underlying Ticker,Percentage,Total Value,Holdings Count,Average Holding
AAPL,10,150.00,1500.00,AAPL,54.55,2750.00,2,1375.00
QQQ 01/15/2027 380.00 C,1,1250.00,1250.00,QQQ,45.45,2750.00,2,1375.00
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteCSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestSampleCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := SampleCSV(&buf); err != nil {
		t.Fatalf("SampleCSV() returned error: %v", err)
	}
	holdings, err := ReadHoldings(&buf)
	if err != nil {
		t.Fatalf("ReadHoldings(sample) returned error: %v", err)
	}
	if len(holdings) != 6 {
		t.Fatalf("sample has %d holdings, want 6", len(holdings))
	}
	if got := Classify(holdings[5].Symbol); got != ContractKind {
		t.Errorf("Classify(%q) = %v, want %v", holdings[5].Symbol, got, ContractKind)
	}
}
