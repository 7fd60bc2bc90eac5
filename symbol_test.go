package holdings

import "testing"

func TestClassify(t *testing.T) {
	testCases := []struct {
		symbol string
		want   Kind
	}{
		{"AAPL", Simple},
		{"  aapl ", Simple},
		{"BRK.B", Simple},
		{"QQQ 01/15/2027 380.00 C", ContractKind},
		{"qqq 01/15/2027 380.00 c", ContractKind},
		{"QQQ  01/15/2027   380 P", ContractKind},
		{"SPY 12/19/2025 450.5 P", ContractKind},
		{"QQQ 02/30/2027 380.00 C", ContractKind}, // shape only
		{"QQQ 1/15/2027 380.00 C", Simple},
		{"QQQ 01/15/27 380.00 C", Simple},
		{"QQQ 01/15/2027 380.00 X", Simple},
		{"QQQ 01/15/2027 C", Simple},
		{"QQQ1 01/15/2027 380.00 C", Simple},
		{"", Simple},
	}
	for _, tc := range testCases {
		t.Run(tc.symbol, func(t *testing.T) {
			if got := Classify(tc.symbol); got != tc.want {
				t.Errorf("Classify(%q) = %v, want %v", tc.symbol, got, tc.want)
			}
		})
	}
}

func TestUnderlyingRoot(t *testing.T) {
	testCases := []struct {
		symbol string
		want   string
	}{
		{"AAPL", "AAPL"},
		{" msft ", "MSFT"},
		{"QQQ 01/15/2027 380.00 C", "QQQ"},
		{"spy 12/19/2025 450.00 p", "SPY"},
		{"QQQ 02/30/2027 380.00 C", "QQQ 02/30/2027 380.00 C"},
	}
	for _, tc := range testCases {
		if got := UnderlyingRoot(tc.symbol); got != tc.want {
			t.Errorf("UnderlyingRoot(%q) = %q, want %q", tc.symbol, got, tc.want)
		}
	}
}

func TestNewInstrument(t *testing.T) {
	inst, err := NewInstrument(" aapl")
	if err != nil {
		t.Fatalf("NewInstrument(aapl) returned error: %v", err)
	}
	if e, ok := inst.(Equity); !ok || e.Symbol() != "AAPL" {
		t.Errorf("NewInstrument(aapl) = %#v, want Equity AAPL", inst)
	}

	inst, err = NewInstrument("QQQ 01/15/2027 380 C")
	if err != nil {
		t.Fatalf("NewInstrument(contract) returned error: %v", err)
	}
	c, ok := inst.(Contract)
	if !ok {
		t.Fatalf("NewInstrument(contract) = %T, want Contract", inst)
	}
	if c.Root() != "QQQ" || c.Kind() != ContractKind {
		t.Errorf("NewInstrument(contract) = %v, want root QQQ", c)
	}

	if _, err := NewInstrument("QQQ 13/15/2027 380.00 C"); err == nil {
		t.Error("NewInstrument(month 13) returned no error")
	}
}
