package date

import (
	"fmt"
	"strings"
)

// Period is a standard calendar unit. It names the bucketing of reports and
// the cadence of recurring schedules.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

var periodNames = [...]string{"daily", "weekly", "monthly", "quarterly", "yearly"}
var periodNouns = [...]string{"day", "week", "month", "quarter", "year"}

func (p Period) String() string {
	if p < Daily || p > Yearly {
		panic(fmt.Sprintf("unknown period %d", int(p)))
	}
	return periodNames[p]
}

// ParsePeriod parses a period name, accepting both the adjective and the noun
// form ("monthly" and "month").
func ParsePeriod(p string) (Period, error) {
	name := strings.ToLower(p)
	for i := range periodNames {
		if name == periodNames[i] || name == periodNouns[i] {
			return Period(i), nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q", p)
}
