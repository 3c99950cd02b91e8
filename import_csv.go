package foliosim

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tjpapenfuss/foliosim/date"
)

// ImportTransactionsCSV reads a legacy transactions CSV export and converts
// it into a ledger.
//
// The file carries one row per transaction with a "type" column of deposit,
// buy or sell. Deposits need a date and an amount; trades add ticker, shares
// and price; sells add gain_loss, gain_loss_pct and days_held. Legacy sells
// do not record the consumed lot, so the lot date is derived as the sale date
// minus the holding period.
func ImportTransactionsCSV(r io.Reader, currency string) (*Ledger, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no transactions to import")
	}

	header := records[0]
	dateCol := findColumn(header, "date", "Date")
	typeCol := findColumn(header, "type", "Type")
	amountCol := findColumn(header, "amount", "Amount")
	if dateCol < 0 || typeCol < 0 || amountCol < 0 {
		return nil, fmt.Errorf(`transactions csv needs "date", "type" and "amount" columns, got %v`, header)
	}
	tickerCol := findColumn(header, "ticker", "Ticker", "Symbol")
	sharesCol := findColumn(header, "shares", "Shares")
	priceCol := findColumn(header, "price", "Price")
	gainCol := findColumn(header, "gain_loss", "Gain/Loss")
	gainPctCol := findColumn(header, "gain_loss_pct", "Gain/Loss %")
	daysCol := findColumn(header, "days_held", "Days Held")
	memoCol := findColumn(header, "description", "Description", "memo")

	var txs []Transaction
	for i, record := range records[1:] {
		row := i + 2 // 1-based, after the header

		cell := func(col int) string {
			if col < 0 || col >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[col])
		}
		number := func(col int, name string) (float64, error) {
			s := cell(col)
			if s == "" {
				return 0, nil
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("row %d: bad %s %q: %w", row, name, s, err)
			}
			return v, nil
		}

		day, err := date.Parse(cell(dateCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		amount, err := number(amountCol, "amount")
		if err != nil {
			return nil, err
		}
		memo := cell(memoCol)

		var tx Transaction
		switch kind := strings.ToLower(cell(typeCol)); kind {
		case "deposit":
			tx = NewDeposit(day, memo, M(amount, currency))
		case "buy", "sell":
			ticker := cell(tickerCol)
			shares, err := number(sharesCol, "shares")
			if err != nil {
				return nil, err
			}
			price, err := number(priceCol, "price")
			if err != nil {
				return nil, err
			}
			if kind == "buy" {
				tx = NewBuy(day, memo, ticker, Q(shares), M(price, currency), M(amount, currency))
				break
			}
			gain, err := number(gainCol, "gain_loss")
			if err != nil {
				return nil, err
			}
			gainPct, err := number(gainPctCol, "gain_loss_pct")
			if err != nil {
				return nil, err
			}
			days, err := number(daysCol, "days_held")
			if err != nil {
				return nil, err
			}
			daysHeld := int(math.Round(days))
			tx = NewSell(day, memo, ticker, Q(shares), M(price, currency), M(amount, currency),
				M(gain, currency), Percent(gainPct), daysHeld, day.Add(-daysHeld))
		case "":
			continue // blank row
		default:
			return nil, fmt.Errorf("row %d: unknown transaction type %q", row, kind)
		}

		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		txs = append(txs, tx)
	}

	ledger := NewLedger()
	ledger.Append(txs...)
	return ledger, nil
}
