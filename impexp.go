package holdings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// this file contains functions to handle the holdings file format.
// It is a plain CSV file with a header row, editable in any spreadsheet.

// Column names of the holdings file.
const (
	ColumnSymbol = "Symbol"
	ColumnShares = "Shares"
)

// ErrMissingColumns is returned by ReadHoldings when a required column is absent.
var ErrMissingColumns = errors.New("missing required columns")

// ReadHoldings reads holdings from a CSV file with a header row.
//
// The Symbol and Shares columns are required, every other column is
// ignored. Rows with an empty symbol or a shares value that is not a finite
// number are skipped.
func ReadHoldings(r io.Reader) ([]Holding, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s, %s", ErrMissingColumns, ColumnSymbol, ColumnShares)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read holdings header: %w", err)
	}

	symbolCol, sharesCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case ColumnSymbol:
			symbolCol = i
		case ColumnShares:
			sharesCol = i
		}
	}
	var missing []string
	if symbolCol < 0 {
		missing = append(missing, ColumnSymbol)
	}
	if sharesCol < 0 {
		missing = append(missing, ColumnShares)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var holdings []Holding
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read holdings: %w", err)
		}
		if symbolCol >= len(record) || sharesCol >= len(record) {
			continue
		}
		symbol := CleanSymbol(record[symbolCol])
		if symbol == "" {
			continue
		}
		shares, ok := parseShares(record[sharesCol])
		if !ok {
			continue
		}
		holdings = append(holdings, Holding{Symbol: symbol, Shares: shares})
	}
	return holdings, nil
}

// parseShares accepts any finite decimal number.
func parseShares(s string) (Quantity, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, false
	}
	q, err := ParseQuantity(s)
	if err != nil {
		return Quantity{}, false
	}
	return q, true
}

// WriteCSV writes the valued holdings of report as a flat table. The
// portfolio statistics are repeated on every row.
func WriteCSV(w io.Writer, report *Report) error {
	cw := csv.NewWriter(w)
	header := []string{
		ColumnSymbol, ColumnShares, "Current Price", "Current Value",
		"Underlying Ticker", "Percentage", "Total Value", "Holdings Count", "Average Holding",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, h := range report.Holdings {
		row := []string{
			h.Symbol,
			h.Shares.String(),
			h.Price.StringFixed(2),
			h.Value.StringFixed(2),
			h.Root,
			h.Percentage.Decimal().StringFixed(2),
			report.TotalValue.StringFixed(2),
			strconv.Itoa(report.Count),
			report.Average.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// sampleHoldings is the content of the template holdings file.
var sampleHoldings = [][]string{
	{ColumnSymbol, ColumnShares},
	{"AAPL", "10"},
	{"GOOGL", "5"},
	{"MSFT", "15"},
	{"TSLA", "20"},
	{"AMZN", "8"},
	{"QQQ 01/15/2027 380.00 C", "5"},
}

// SampleCSV writes a template holdings file.
func SampleCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(sampleHoldings); err != nil {
		return fmt.Errorf("cannot write sample holdings: %w", err)
	}
	return nil
}
