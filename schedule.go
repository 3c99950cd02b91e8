package foliosim

import (
	"fmt"
	"strings"

	"github.com/tjpapenfuss/foliosim/date"
)

// Frequency is the cadence of recurring deposits in a simulation.
type Frequency int

const (
	// Monthly deposits once a month.
	Monthly Frequency = iota
	// Bimonthly deposits every two months.
	Bimonthly
)

func (f Frequency) months() int {
	if f == Bimonthly {
		return 2
	}
	return 1
}

func (f Frequency) String() string {
	if f == Bimonthly {
		return "bimonthly"
	}
	return "monthly"
}

// ParseFrequency parses a deposit frequency from its name.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(s) {
	case "monthly":
		return Monthly, nil
	case "bimonthly":
		return Bimonthly, nil
	default:
		return Monthly, fmt.Errorf("unknown investment frequency %q, want \"monthly\" or \"bimonthly\"", s)
	}
}

// InvestmentDates generates the scheduled deposit dates between start and end
// inclusive, beginning with the start date itself.
//
// Dates are anchored on the start date: the i-th date is start plus i periods,
// so a mid-month anchor keeps its day of month wherever the calendar allows.
func InvestmentDates(start, end date.Date, freq Frequency) []date.Date {
	var dates []date.Date
	for i := 0; ; i++ {
		d := start.AddMonth(i * freq.months())
		if d.After(end) {
			break
		}
		dates = append(dates, d)
	}
	return dates
}
