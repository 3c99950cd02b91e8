package foliosim

import (
	"sort"

	"github.com/tjpapenfuss/foliosim/date"
)

// longTermDays is the holding period boundary between short term and long
// term capital gains treatment.
const longTermDays = 365

// GainsBucket accumulates realized results split by holding period and sign.
type GainsBucket struct {
	ShortTermGains  Money
	ShortTermLosses Money
	LongTermGains   Money
	LongTermLosses  Money
}

func newGainsBucket(currency string) GainsBucket {
	zero := M(0, currency)
	return GainsBucket{
		ShortTermGains:  zero,
		ShortTermLosses: zero,
		LongTermGains:   zero,
		LongTermLosses:  zero,
	}
}

// add files one realized gain or loss into the matching quadrant.
func (b *GainsBucket) add(gain Money, daysHeld int) {
	short := daysHeld < longTermDays
	switch {
	case short && gain.IsNegative():
		b.ShortTermLosses = b.ShortTermLosses.Add(gain)
	case short:
		b.ShortTermGains = b.ShortTermGains.Add(gain)
	case gain.IsNegative():
		b.LongTermLosses = b.LongTermLosses.Add(gain)
	default:
		b.LongTermGains = b.LongTermGains.Add(gain)
	}
}

// Net returns the sum of all four quadrants.
func (b GainsBucket) Net() Money {
	return b.ShortTermGains.Add(b.ShortTermLosses).Add(b.LongTermGains).Add(b.LongTermLosses)
}

// GainsReport breaks down the realized gains and losses of a period the way a
// tax return wants them: short term against long term, with per-security and
// per-month detail.
type GainsReport struct {
	Range    date.Range
	Currency string
	GainsBucket
	Securities []SecurityGains
	Monthly    []MonthlyGains
}

// SecurityGains holds the realized split of a single security.
type SecurityGains struct {
	Security string
	GainsBucket
}

// MonthlyGains aggregates realized results for one calendar month.
type MonthlyGains struct {
	Month date.Date // first day of the month
	GainsBucket
}

// CalculateGains classifies every sell of the period by holding period, using
// the per-lot figures the ledger already carries.
func CalculateGains(ledger *Ledger, period date.Range, currency string) *GainsReport {
	report := &GainsReport{
		Range:       period,
		Currency:    currency,
		GainsBucket: newGainsBucket(currency),
	}

	bySecurity := make(map[string]*SecurityGains)
	byMonth := make(map[date.Date]*MonthlyGains)

	for _, tx := range ledger.Transactions(ByCommand(CmdSell)) {
		sell := tx.(Sell)
		if !period.Contains(sell.When()) {
			continue
		}

		report.add(sell.Gain, sell.DaysHeld)

		sg, ok := bySecurity[sell.Security]
		if !ok {
			sg = &SecurityGains{Security: sell.Security, GainsBucket: newGainsBucket(currency)}
			bySecurity[sell.Security] = sg
		}
		sg.add(sell.Gain, sell.DaysHeld)

		month := sell.When().StartOf(date.Monthly)
		mg, ok := byMonth[month]
		if !ok {
			mg = &MonthlyGains{Month: month, GainsBucket: newGainsBucket(currency)}
			byMonth[month] = mg
		}
		mg.add(sell.Gain, sell.DaysHeld)
	}

	for _, sg := range bySecurity {
		report.Securities = append(report.Securities, *sg)
	}
	sort.Slice(report.Securities, func(i, j int) bool {
		return report.Securities[i].Security < report.Securities[j].Security
	})

	for _, mg := range byMonth {
		report.Monthly = append(report.Monthly, *mg)
	}
	sort.Slice(report.Monthly, func(i, j int) bool {
		return report.Monthly[i].Month.Before(report.Monthly[j].Month)
	})

	return report
}
