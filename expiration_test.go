package holdings

import (
	"testing"

	"github.com/etnz/holdings/date"
)

func TestNearestExpiration(t *testing.T) {
	mp := date.MustParse
	testCases := []struct {
		name      string
		requested date.Date
		available []date.Date
		want      date.Date
		wantOK    bool
	}{
		{"exact", mp("2027-01-15"), []date.Date{mp("2027-01-08"), mp("2027-01-15")}, mp("2027-01-15"), true},
		{"closest later", mp("2027-01-15"), []date.Date{mp("2026-12-18"), mp("2027-01-17")}, mp("2027-01-17"), true},
		{"closest earlier", mp("2027-01-15"), []date.Date{mp("2027-01-14"), mp("2027-02-19")}, mp("2027-01-14"), true},
		{"tie picks earliest", mp("2027-01-15"), []date.Date{mp("2027-01-08"), mp("2027-01-22")}, mp("2027-01-08"), true},
		{"tie picks earliest reversed", mp("2027-01-15"), []date.Date{mp("2027-01-22"), mp("2027-01-08")}, mp("2027-01-08"), true},
		{"single", mp("2027-01-15"), []date.Date{mp("2030-01-18")}, mp("2030-01-18"), true},
		{"empty", mp("2027-01-15"), nil, date.Date{}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NearestExpiration(tc.requested, tc.available)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("NearestExpiration(%v, %v) = %v, %v, want %v, %v", tc.requested, tc.available, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
