package date

import "fmt"

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the calendar period containing d, so NewRange(d, Monthly)
// spans d's month from its first to its last day.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Span returns the range between two dates, swapping them when given in
// reverse order.
func Span(a, b Date) Range {
	if a.After(b) {
		a, b = b, a
	}
	return Range{From: a, To: b}
}

// Contains reports whether the date falls within the range, boundaries
// included.
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// Period reports which standard calendar period the range covers exactly, if
// any. A full calendar month is Monthly, a single day is Daily.
func (r Range) Period() (Period, bool) {
	for p := Daily; p <= Yearly; p++ {
		if NewRange(r.From, p) == r {
			return p, true
		}
	}
	return Daily, false
}

// Identifier returns a short unique name for the range: "2025-07-28" for a
// day, "2025-W31" for a week, "2025-July" for a month, "2025-Q3" for a
// quarter, "2025" for a year. Other ranges fall back to "from_to".
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		year, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return r.From.Format("2006-January")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		panic(fmt.Sprintf("unknown period %d", int(p)))
	}
}

// String formats the range as "from..to".
func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
