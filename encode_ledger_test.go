package foliosim

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tjpapenfuss/foliosim/date"
)

func TestDecodeLedger(t *testing.T) {
	// A multi-line string representing a JSONL stream with all command types
	jsonlStream := `
{"command":"deposit","date":"2023-01-03","memo":"initial investment","amount":10000,"currency":"USD"}
{"command":"buy","date":"2023-01-03","memo":"regular purchase","security":"AAPL","quantity":10,"price":125.07,"amount":1250.7,"currency":"USD"}
{"command":"sell","date":"2023-06-01","memo":"tax-loss harvest","security":"AAPL","quantity":10,"price":110,"amount":1100,"currency":"USD","gain":-150.7,"gainPct":-12.05,"daysHeld":149,"lotDate":"2023-01-03"}
`
	ledger, err := DecodeLedger(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}

	if ledger.Len() != 3 {
		t.Fatalf("DecodeLedger() decoded wrong number of transactions. Got: %d, want: 3", ledger.Len())
	}

	expectedTypes := []reflect.Type{
		reflect.TypeOf(Deposit{}),
		reflect.TypeOf(Buy{}),
		reflect.TypeOf(Sell{}),
	}
	for i, tx := range ledger.Transactions() {
		if reflect.TypeOf(tx) != expectedTypes[i] {
			t.Errorf("Transaction %d has wrong type. Got: %T, want: %v", i, tx, expectedTypes[i])
		}
	}

	// spot-check the per-lot fields of the sell
	var sell Sell
	for _, tx := range ledger.Transactions(ByCommand(CmdSell)) {
		sell = tx.(Sell)
	}
	if !sell.Gain.Equal(USD(-150.7)) {
		t.Errorf("Sell.Gain = %s, want -$150.70", sell.Gain)
	}
	if sell.DaysHeld != 149 {
		t.Errorf("Sell.DaysHeld = %d, want 149", sell.DaysHeld)
	}
	if sell.LotDate != date.New(2023, time.January, 3) {
		t.Errorf("Sell.LotDate = %s, want 2023-01-03", sell.LotDate)
	}
	if sell.Rationale() != HarvestReason {
		t.Errorf("Sell.Rationale() = %q, want %q", sell.Rationale(), HarvestReason)
	}
}

func TestDecodeLedger_unknownCommand(t *testing.T) {
	stream := `{"command":"withdraw","date":"2023-01-03","amount":100,"currency":"USD"}`
	if _, err := DecodeLedger(strings.NewReader(stream)); err == nil {
		t.Error("DecodeLedger() = nil error for an unknown command")
	}
}

func TestDecodeLedger_skipsEmptyLines(t *testing.T) {
	stream := "\n{\"command\":\"deposit\",\"date\":\"2023-01-03\",\"amount\":100,\"currency\":\"USD\"}\n\n"
	ledger, err := DecodeLedger(strings.NewReader(stream))
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}
	if ledger.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ledger.Len())
	}
}

func TestEncodeLedger(t *testing.T) {
	// Deliberately unsorted. tx2 and tx3 share a date: their relative order
	// must survive the stable sort.
	tx1 := NewBuy(date.New(2023, time.August, 3), "", "AAPL", Q(10), USD(100), USD(1000))
	tx2 := NewDeposit(date.New(2023, time.August, 1), "", USD(1000))
	tx3 := NewSell(date.New(2023, time.August, 1), "", "GOOG", Q(5), USD(140), USD(700), USD(50), Percent(7.7), 30, date.New(2023, time.July, 2))

	ledger := NewLedger()
	ledger.Append(tx1, tx2, tx3)

	expectedOrder := []Transaction{tx2, tx3, tx1}
	var want bytes.Buffer
	for _, tx := range expectedOrder {
		if err := EncodeTransaction(&want, tx); err != nil {
			t.Fatalf("failed to encode expected transaction: %v", err)
		}
	}

	var got bytes.Buffer
	if err := EncodeLedger(&got, ledger); err != nil {
		t.Fatalf("EncodeLedger() returned an unexpected error: %v", err)
	}
	if got.String() != want.String() {
		t.Errorf("EncodeLedger() produced incorrect output.\nGot:\n%s\nWant:\n%s", got.String(), want.String())
	}
}

// TestEncodeDecodeLedger verifies that a ledger survives a write and read
// cycle with every field intact.
func TestEncodeDecodeLedger(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewDeposit(date.New(2023, time.January, 3), "initial investment", USD(10000)),
		NewBuy(date.New(2023, time.January, 3), "regular purchase", "AAPL", Q(9.5), USD(105.27), USD(1000.06)),
		NewSell(date.New(2023, time.June, 1), HarvestReason, "AAPL", Q(9.5), USD(85.5), USD(812.25), USD(-187.81), Percent(-18.78), 149, date.New(2023, time.January, 3)),
	)

	var buffer bytes.Buffer
	if err := EncodeLedger(&buffer, ledger); err != nil {
		t.Fatalf("EncodeLedger() returned an unexpected error: %v", err)
	}

	decoded, err := DecodeLedger(&buffer)
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}
	if decoded.Len() != ledger.Len() {
		t.Fatalf("decoded %d transactions, want %d", decoded.Len(), ledger.Len())
	}

	originals := make([]Transaction, 0, ledger.Len())
	for _, tx := range ledger.Transactions() {
		originals = append(originals, tx)
	}
	for i, tx := range decoded.Transactions() {
		if !tx.Equal(originals[i]) {
			t.Errorf("transaction %d changed across the cycle.\nGot:  %+v\nWant: %+v", i, tx, originals[i])
		}
	}
}
