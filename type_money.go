package foliosim

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an exact monetary amount in a single currency. The zero value is
// zero in the "" currency, which combines freely with any other currency.
type Money struct {
	value      decimal.Decimal // in major units
	cur        string
	fractional bool // true to persist in full digits
}

// M builds a Money from any numeric type without going through float
// conversions that could lose cents.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// Currency returns the ISO currency code, "" when unset.
func (m Money) Currency() string { return m.cur }

// predicates on the amount alone.

func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsPositive() bool { return m.value.IsPositive() }
func (m Money) IsNegative() bool { return m.value.IsNegative() }

// Equal reports whether amount and currency both match.
func (m Money) Equal(n Money) bool { return m.cur == n.cur && m.value.Equal(n.value) }

// Cmp compares the amounts, ignoring the currency.
func (m Money) Cmp(n Money) int { return m.value.Cmp(n.value) }

func (m Money) LessThan(n Money) bool           { return m.Cmp(n) < 0 }
func (m Money) LessThanOrEqual(n Money) bool    { return m.Cmp(n) <= 0 }
func (m Money) GreaterThan(n Money) bool        { return m.Cmp(n) > 0 }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.Cmp(n) >= 0 }

// arithmetic. Amount-with-amount operations merge the currencies and panic on
// a genuine mismatch, so a bug cannot silently add dollars to euros.

func (m Money) Neg() Money        { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: mergeCur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: mergeCur(m, n)} }

// Mul scales a price by a number of shares.
func (m Money) Mul(n Quantity) Money { return Money{value: m.value.Mul(n.value), cur: m.cur} }

// Div splits an amount over a number of shares.
func (m Money) Div(n Quantity) Money { return Money{value: m.value.Div(n.value), cur: m.cur} }

// DivPrice divides an amount by a price, yielding the number of shares it
// buys.
func (m Money) DivPrice(n Money) Quantity { return Quantity{value: m.value.Div(n.value)} }

// Floor rounds the amount down to cents.
func (m Money) Floor() Money { return Money{value: m.value.RoundFloor(2), cur: m.cur} }

// mergeCur resolves the currency of a binary operation. The "" currency is
// weak and takes the other side's.
func mergeCur(a, b Money) string {
	switch {
	case a.cur == "":
		return b.cur
	case b.cur == "":
		return a.cur
	case a.cur != b.cur:
		panic("currency mismatch" + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// AsFloat returns the amount as a float64. Ledger arithmetic stays in exact
// decimals; AsFloat is for ratios and percentages where rounding is accepted.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// currency resolves the full go-money currency for formatting. Building a
// throwaway money.Money is the only way the library hands out a non-nil
// currency for an arbitrary code.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with the currency's symbol and decimal
// conventions.
func (m Money) String() string {
	c := m.currency()
	minor := m.value.Shift(int32(c.Fraction))
	return c.Formatter().Format(minor.IntPart())
}

// SignedString formats the amount with an explicit sign, rendering zero as
// "-" so report columns stay quiet.
func (m Money) SignedString() string {
	switch {
	case m.value.IsZero():
		return "-"
	case m.value.IsPositive():
		return "+" + m.String()
	}
	return m.String()
}

// exact returns a copy that marshals with all its digits instead of rounding
// to the currency's fraction.
func (m Money) exact() Money {
	m.fractional = true
	return m
}

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	amount := m.value
	if !m.fractional {
		amount = amount.Round(int32(m.currency().Fraction))
	}
	w.Append("amount", amount)
	return w.MarshalJSON()
}
