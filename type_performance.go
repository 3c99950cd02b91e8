package foliosim

// Performance compares an ending value against a starting value, typically
// total deposits against final portfolio worth.
type Performance struct {
	Start, End Money
}

func NewPerformance(start, end Money) Performance {
	return Performance{Start: start, End: end}
}

// Change returns the absolute difference End - Start.
func (p Performance) Change() Money {
	return p.End.Sub(p.Start)
}

// Percent returns the relative change, or 0 when the starting value is zero.
func (p Performance) Percent() Percent {
	if p.Start.IsZero() {
		return 0
	}
	return Percent(100 * p.Change().AsFloat() / p.Start.AsFloat())
}
