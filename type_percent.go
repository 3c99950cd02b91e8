package foliosim

import (
	"fmt"
	"math"
)

// Percent is a percentage value, e.g. -10 for a ten percent loss.
type Percent float64

// Equal compares two percentages at display precision, so values that render
// the same compare the same.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

// String formats the percentage with two decimals and a percent sign.
func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// SignedString formats the percentage with an explicit sign, rendering zero
// as "-" so report columns stay quiet.
func (p Percent) SignedString() string {
	s := fmt.Sprintf("%+.2f%%", p)
	if s == "+0.00%" {
		return "-"
	}
	return s
}
