package foliosim

import "fmt"

// SellOrder defines the order in which open lots are consumed by a sell.
type SellOrder int

const (
	// LossFirst consumes lots purchased above the sell price first, largest
	// loss per share first, then winning lots oldest purchase first. This
	// realizes losses before gains and favors long-term gains among winners.
	LossFirst SellOrder = iota
	// MostRecentFirst consumes lots in reverse purchase order regardless of
	// their gain or loss at the sell price.
	MostRecentFirst
)

func (o SellOrder) String() string {
	switch o {
	case LossFirst:
		return "loss-first"
	case MostRecentFirst:
		return "most-recent-first"
	default:
		return "unknown"
	}
}

// ParseSellOrder parses a string into a SellOrder.
func ParseSellOrder(s string) (SellOrder, error) {
	switch s {
	case "loss-first":
		return LossFirst, nil
	case "most-recent-first":
		return MostRecentFirst, nil
	default:
		return 0, fmt.Errorf("unknown sell order: %q", s)
	}
}
