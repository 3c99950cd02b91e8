package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	r := NewRange(New(2025, time.May, 20), Quarterly)
	want := Range{From: New(2025, time.April, 1), To: New(2025, time.June, 30)}
	if r != want {
		t.Errorf("NewRange() = %v, want %v", r, want)
	}
}

func TestSpan(t *testing.T) {
	a := New(2025, time.January, 10)
	b := New(2025, time.March, 5)
	want := Range{From: a, To: b}

	if got := Span(a, b); got != want {
		t.Errorf("Span(a, b) = %v, want %v", got, want)
	}
	// reversed arguments yield the same range
	if got := Span(b, a); got != want {
		t.Errorf("Span(b, a) = %v, want %v", got, want)
	}
	if got := Span(a, a); got != (Range{From: a, To: a}) {
		t.Errorf("Span(a, a) = %v, want the single day", got)
	}
}

func TestRange_Contains(t *testing.T) {
	r := Span(New(2025, time.February, 1), New(2025, time.February, 28))
	testCases := []struct {
		name string
		in   Date
		want bool
	}{
		{"inside", New(2025, time.February, 14), true},
		{"lower boundary", New(2025, time.February, 1), true},
		{"upper boundary", New(2025, time.February, 28), true},
		{"before", New(2025, time.January, 31), false},
		{"after", New(2025, time.March, 1), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.in); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRange_Period(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want Period
		ok   bool
	}{
		{"single day", Span(New(2025, time.July, 28), New(2025, time.July, 28)), Daily, true},
		{"calendar week", NewRange(New(2025, time.July, 30), Weekly), Weekly, true},
		{"calendar month", Span(New(2025, time.February, 1), New(2025, time.February, 28)), Monthly, true},
		{"calendar quarter", Span(New(2025, time.October, 1), New(2025, time.December, 31)), Quarterly, true},
		{"calendar year", Span(New(2025, time.January, 1), New(2025, time.December, 31)), Yearly, true},
		{"partial month", Span(New(2025, time.February, 1), New(2025, time.February, 27)), Daily, false},
		{"two months", Span(New(2025, time.January, 1), New(2025, time.February, 28)), Daily, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.in.Period()
			if got != tc.want || ok != tc.ok {
				t.Errorf("Period() = %v, %v, want %v, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestRange_Identifier(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want string
	}{
		{"day", Span(New(2025, time.July, 28), New(2025, time.July, 28)), "2025-07-28"},
		{"week", NewRange(New(2025, time.July, 30), Weekly), "2025-W31"},
		{"month", NewRange(New(2025, time.July, 30), Monthly), "2025-July"},
		{"quarter", NewRange(New(2025, time.July, 30), Quarterly), "2025-Q3"},
		{"year", NewRange(New(2025, time.July, 30), Yearly), "2025"},
		{"free span", Span(New(2025, time.January, 2), New(2025, time.March, 5)), "2025-01-02_2025-03-05"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Identifier(); got != tc.want {
				t.Errorf("Identifier() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRange_String(t *testing.T) {
	r := Span(New(2025, time.January, 2), New(2025, time.December, 31))
	if got := r.String(); got != "2025-01-02..2025-12-31" {
		t.Errorf("String() = %q", got)
	}
}
