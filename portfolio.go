package foliosim

import (
	"fmt"
	"sort"

	"github.com/tjpapenfuss/foliosim/date"
)

// Portfolio is the aggregate root of a simulation run: the cash balance, the
// per-security holdings built from the lot ledger, and the transaction
// ledger recording every deposit, buy, and sell.
//
// A Portfolio is owned by exactly one simulation run and is mutated in place
// by the policy passes. Cash never goes negative: buys that would overdraw
// are clamped to the affordable share count instead of failing.
type Portfolio struct {
	cash          Money
	currency      string
	holdings      map[string]*Holding
	symbols       []string // deterministic iteration order over holdings
	ledger        *Ledger
	sellOrder     SellOrder
	lastRebalance date.Date
}

// NewPortfolio returns an empty portfolio holding cash in the given currency.
func NewPortfolio(currency string, order SellOrder) *Portfolio {
	return &Portfolio{
		cash:      M(0, currency),
		currency:  currency,
		holdings:  make(map[string]*Holding),
		ledger:    NewLedger(),
		sellOrder: order,
	}
}

// Cash returns the current cash balance.
func (p *Portfolio) Cash() Money { return p.cash }

// Currency returns the portfolio's cash currency.
func (p *Portfolio) Currency() string { return p.currency }

// Ledger returns the append-only transaction record of this portfolio.
func (p *Portfolio) Ledger() *Ledger { return p.ledger }

// LastRebalance returns the date of the last executed rebalance, zero if none.
func (p *Portfolio) LastRebalance() date.Date { return p.lastRebalance }

// Holding returns the holding for a symbol, nil if the symbol was never bought.
func (p *Portfolio) Holding(symbol string) *Holding { return p.holdings[symbol] }

// Holdings returns all holdings sorted by symbol.
func (p *Portfolio) Holdings() []*Holding {
	hs := make([]*Holding, 0, len(p.symbols))
	for _, s := range p.symbols {
		hs = append(hs, p.holdings[s])
	}
	return hs
}

func (p *Portfolio) holding(symbol string) *Holding {
	h, ok := p.holdings[symbol]
	if !ok {
		h = newHolding(symbol, p.currency)
		p.holdings[symbol] = h
		p.symbols = append(p.symbols, symbol)
		sort.Strings(p.symbols)
	}
	return h
}

// Deposit adds cash to the portfolio and records a deposit transaction.
// A non-positive amount is a no-op returning nil.
func (p *Portfolio) Deposit(amount Money, on date.Date, reason string) Transaction {
	if !amount.IsPositive() {
		return nil
	}
	p.cash = p.cash.Add(amount)
	tx := NewDeposit(on, reason, amount)
	p.ledger.Append(tx)
	return tx
}

// Buy purchases shares of a security at the given price, opening a new lot.
//
// The requested share count is clamped down to what the cash balance can
// afford, at fractional-share precision, so a buy never overdraws cash. If
// the affordable count rounds to zero the whole operation is a no-op and a
// nil transaction is returned. Shares and price must be positive.
func (p *Portfolio) Buy(symbol string, shares Quantity, price Money, on date.Date, reason string) (Transaction, error) {
	if !shares.IsPositive() {
		return nil, fmt.Errorf("buy %s: shares must be positive, got %s", symbol, shares)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("buy %s: price must be positive, got %s", symbol, price)
	}

	cost := price.Mul(shares)
	if p.cash.LessThan(cost) {
		shares = p.cash.DivPrice(price).Floor()
		if !shares.IsPositive() {
			return nil, nil
		}
		cost = price.Mul(shares)
	}

	p.holding(symbol).addLot(on, shares, price)
	p.cash = p.cash.Sub(cost)

	tx := NewBuy(on, reason, symbol, shares, price, cost)
	p.ledger.Append(tx)
	return tx, nil
}

// Sell disposes of up to the requested share count of a security, consuming
// open lots in the portfolio's configured sell order.
//
// Each consumed lot yields its own transaction carrying the lot's realized
// gain or loss, return percentage, and holding period. Selling a security
// with no open lots, or more shares than are held, silently sells only what
// is available.
func (p *Portfolio) Sell(symbol string, shares Quantity, price Money, on date.Date, reason string) []Transaction {
	h := p.holdings[symbol]
	if h == nil || !shares.IsPositive() {
		return nil
	}

	var txs []Transaction
	left := shares
	for _, l := range h.Lots.ordered(p.sellOrder, price) {
		if !left.IsPositive() {
			break
		}
		tx := p.sellFromLot(h, l, left, price, on, reason)
		left = left.Sub(tx.Quantity)
		txs = append(txs, tx)
	}
	return txs
}

// sellFromLot consumes shares from one specific lot and records the sale.
// It is the single primitive behind both policy-ordered sells and the
// harvesting pass, which pins the lot it liquidates.
func (p *Portfolio) sellFromLot(h *Holding, l *Lot, shares Quantity, price Money, on date.Date, reason string) Sell {
	sold := l.consume(shares)
	h.removeShares(sold)

	proceeds := price.Mul(sold)
	cost := l.Price.Mul(sold)
	p.cash = p.cash.Add(proceeds)

	gain := proceeds.Sub(cost)
	var gainPct Percent
	if cost.IsPositive() {
		gainPct = Percent(100 * gain.AsFloat() / cost.AsFloat())
	}

	tx := NewSell(on, reason, h.Symbol, sold, price, proceeds, gain, gainPct, l.DaysHeld(on), l.Date)
	p.ledger.Append(tx)
	return tx
}

// InvestedValue values all holdings at the last known price on or before the
// given date. Securities with no price history yet are valued at zero.
func (p *Portfolio) InvestedValue(m *Market, on date.Date) Money {
	total := M(0, p.currency)
	for _, h := range p.Holdings() {
		if h.Shares.IsZero() {
			continue
		}
		if value, ok := m.PriceAsOf(h.Symbol, on); ok {
			total = total.Add(h.MarketValue(M(value, p.currency)))
		}
	}
	return total
}

// TotalValue returns cash plus the invested value on the given date.
func (p *Portfolio) TotalValue(m *Market, on date.Date) Money {
	return p.cash.Add(p.InvestedValue(m, on))
}
