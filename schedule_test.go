package foliosim

import (
	"testing"
	"time"

	"github.com/tjpapenfuss/foliosim/date"
)

func TestParseFrequency(t *testing.T) {
	testCases := []struct {
		input   string
		want    Frequency
		wantErr bool
	}{
		{"monthly", Monthly, false},
		{"Monthly", Monthly, false},
		{"bimonthly", Bimonthly, false},
		{"weekly", Monthly, true},
		{"", Monthly, true},
	}
	for _, tc := range testCases {
		got, err := ParseFrequency(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFrequency(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
		}
		if err == nil && got != tc.want {
			t.Errorf("ParseFrequency(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestInvestmentDates_monthly(t *testing.T) {
	got := InvestmentDates(date.New(2023, time.January, 15), date.New(2023, time.May, 1), Monthly)
	want := []date.Date{
		date.New(2023, time.January, 15),
		date.New(2023, time.February, 15),
		date.New(2023, time.March, 15),
		date.New(2023, time.April, 15),
	}
	if len(got) != len(want) {
		t.Fatalf("InvestmentDates() returned %d dates, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("InvestmentDates()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestInvestmentDates_bimonthly(t *testing.T) {
	got := InvestmentDates(date.New(2023, time.January, 1), date.New(2023, time.July, 1), Bimonthly)
	want := []date.Date{
		date.New(2023, time.January, 1),
		date.New(2023, time.March, 1),
		date.New(2023, time.May, 1),
		date.New(2023, time.July, 1),
	}
	if len(got) != len(want) {
		t.Fatalf("InvestmentDates() returned %d dates, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("InvestmentDates()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestInvestmentDates_endBeforeStart(t *testing.T) {
	got := InvestmentDates(date.New(2023, time.May, 1), date.New(2023, time.January, 1), Monthly)
	if len(got) != 0 {
		t.Errorf("InvestmentDates() with end before start = %v, want none", got)
	}
}

func TestInvestmentDates_anchoredOnStart(t *testing.T) {
	// Each date is derived from the start, not from the previous date, so a
	// month-end anchor does not drift after normalization.
	got := InvestmentDates(date.New(2023, time.January, 31), date.New(2023, time.June, 1), Monthly)
	for i, d := range got {
		want := date.New(2023, time.January+time.Month(i), 31)
		if d != want {
			t.Errorf("InvestmentDates()[%d] = %s, want %s", i, d, want)
		}
	}
}
