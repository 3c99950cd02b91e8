// Package date provides a calendar day type and chronological containers for
// daily series.
package date

import (
	"encoding/json"
	"fmt"
	"iter"
	"time"
)

// readDateFormat accepts single-digit months and days, so "2025-7-1" parses.
const readDateFormat = "2006-1-2"

// DateFormat is the ISO-8601 format dates are written in.
const DateFormat = "2006-01-02"

const Day = 24 * time.Hour

// Date is a calendar day. Nothing below day granularity exists in this
// package, which keeps timezone questions out of the simulation entirely.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
// Out-of-range components roll over the [time.Date] way.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// time anchors the day at midnight UTC, giving every Date a single canonical
// time.Time.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.time().Month() }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// ISOWeek returns the ISO 8601 year and week number of the date.
func (d Date) ISOWeek() (year, week int) { return d.time().ISOWeek() }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// AddMonth returns a new Date with the given number of months added.
//
// Overflow is normalized the [time.Date] way, so Jan 31 + 1 month lands in March.
func (d Date) AddMonth(i int) Date { return New(d.y, d.m+time.Month(i), d.d) }

// Sub returns the number of whole days d - x. Negative if d is before x.
func (d Date) Sub(x Date) int { return int(d.time().Sub(x.time()) / Day) }

// String formats the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Format formats the date according to a [time.Format] layout.
func (d Date) Format(format string) string { return d.time().Format(format) }

// StartOf returns the first day of the calendar period containing d. Weeks
// start on Monday.
func (d Date) StartOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		offset := int(d.Weekday() - time.Monday)
		if offset < 0 {
			offset += 7 // Sunday belongs to the week that started the previous Monday.
		}
		return d.Add(-offset)
	case Monthly:
		return New(d.y, d.m, 1)
	case Quarterly:
		quarter := (d.Month() - 1) / 3
		return New(d.y, time.Month(quarter*3+1), 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		panic("unknown period")
	}
}

// EndOf returns the last day of the calendar period containing d. Month-like
// periods use day 0 of the following month, which normalizes to the last day
// regardless of the month's length.
func (d Date) EndOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return New(d.y, d.m+1, 0)
	case Quarterly:
		quarter := (d.Month() - 1) / 3
		return New(d.y, time.Month(quarter*3+3)+1, 0)
	case Yearly:
		return New(d.y+1, time.January, 0)
	default:
		panic("unknown period")
	}
}

// SamePeriod reports whether d and x fall in the same calendar period.
//
// Two dates share a period iff they share the period's start date, so a
// month/quarter/year boundary crossing is detected by calendar, not by
// counting elapsed days.
func (d Date) SamePeriod(x Date, period Period) bool {
	return d.StartOf(period) == x.StartOf(period)
}

// Parse parses a Date from a string. It is lenient and accepts formats like
// "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := Parse(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// Iterate merges the days of several histories into one iterator, each unique
// day yielded once in chronological order.
func Iterate[T float32 | float64](histories ...History[T]) iter.Seq[Date] {
	series := make([][]Date, 0, len(histories))
	for _, h := range histories {
		series = append(series, h.days)
	}
	return mergeDays(series)
}

// mergeDays walks the sorted series in lockstep: yield the smallest head,
// advance every series sitting on it, repeat until all are consumed.
func mergeDays(series [][]Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		heads := make([]int, len(series))
		for {
			var next Date
			found := false
			for i, h := range heads {
				if h >= len(series[i]) {
					continue
				}
				if on := series[i][h]; !found || on.Before(next) {
					next, found = on, true
				}
			}
			if !found {
				return
			}
			for i, h := range heads {
				if h < len(series[i]) && series[i][h] == next {
					heads[i]++
				}
			}
			if !yield(next) {
				return
			}
		}
	}
}
