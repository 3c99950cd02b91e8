package renderer

import (
	"fmt"

	"github.com/tjpapenfuss/foliosim"
)

// Transaction renders a transaction to a one line string.
func Transaction(tx foliosim.Transaction) string {
	switch v := tx.(type) {
	case foliosim.Buy:
		return fmt.Sprintf("Bought %s of %s at %s for %s", v.Quantity, v.Security, v.Price, v.Amount)
	case foliosim.Sell:
		return fmt.Sprintf("Sold %s of %s at %s for %s (gain %s, held %dd)",
			v.Quantity, v.Security, v.Price, v.Amount, v.Gain.SignedString(), v.DaysHeld)
	case foliosim.Deposit:
		return fmt.Sprintf("Deposited %s", v.Amount)
	default:
		return string(tx.What())
	}
}
