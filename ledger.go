package foliosim

import (
	"fmt"
	"iter"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tjpapenfuss/foliosim/date"
)

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order. The ledger is
// append-only; it is the sole source of truth for performance reporting.
type Ledger struct {
	transactions []Transaction
	securities   map[string]bool // index of tickers seen in transactions
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		securities:   make(map[string]bool),
	}
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Append appends transactions to this ledger and maintains the chronological order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.processTx(txs...)
	l.stableSort() // Ensure the ledger remains sorted after appending
}

func (l *Ledger) processTx(txs ...Transaction) {
	for _, tx := range txs {
		switch v := tx.(type) {
		case Buy:
			l.securities[v.Security] = true
		case Sell:
			l.securities[v.Security] = true
		}
	}
}

// Transactions returns an iterator that yields each transaction in its original order.
//
// A transaction is yielded when every filter accepts it, so with no filter
// every transaction is yielded.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := true
			for _, filter := range filters {
				if !filter(tx) {
					accept = false
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// BySecurity returns a filter accepting transactions on the given ticker.
func BySecurity(ticker string) func(Transaction) bool {
	return func(tx Transaction) bool {
		switch v := tx.(type) {
		case Buy:
			return v.Security == ticker
		case Sell:
			return v.Security == ticker
		default:
			return false
		}
	}
}

// ByCommand returns a filter accepting transactions of the given command type.
func ByCommand(c CommandType) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.What() == c }
}

// ByRange returns a filter accepting transactions dated within the range.
func ByRange(r date.Range) func(Transaction) bool {
	return func(tx Transaction) bool { return r.Contains(tx.When()) }
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// OldestTransactionDate returns the date of the earliest transaction in the
// ledger, the zero date if the ledger is empty.
func (l *Ledger) OldestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction in the
// ledger, the zero date if the ledger is empty.
func (l *Ledger) NewestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// AllSecurities returns the tickers seen in the ledger, sorted.
func (l *Ledger) AllSecurities() []string {
	tickers := make([]string, 0, len(l.securities))
	for t := range l.securities {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// CashBalance computes the total cash in a specific currency on a specific date.
func (l *Ledger) CashBalance(currency string, on date.Date) Money {
	balance := M(decimal.Zero, currency)
	for _, tx := range l.transactions {
		if tx.When().After(on) {
			// The ledger is sorted by date, so it's safe to break.
			break
		}
		switch v := tx.(type) {
		case Deposit:
			if v.Currency() == currency {
				balance = balance.Add(v.Amount)
			}
		case Buy:
			if v.Currency() == currency {
				balance = balance.Sub(v.Amount)
			}
		case Sell:
			if v.Currency() == currency {
				balance = balance.Add(v.Amount)
			}
		}
	}
	return balance
}

// TotalDeposits sums every deposit in the ledger.
func (l *Ledger) TotalDeposits() Money {
	var total Money
	for _, tx := range l.Transactions(ByCommand(CmdDeposit)) {
		total = total.Add(tx.(Deposit).Amount)
	}
	return total
}

// Validate checks every transaction in the ledger.
func (l *Ledger) Validate() error {
	for i, tx := range l.transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}
