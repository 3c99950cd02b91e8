package foliosim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are numbers in the ledger, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// amountCmd reads the amount/currency field pair shared by every transaction
// that carries money. Embedding it in a temporary struct keeps Money itself
// free of JSON tags.
type amountCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountCmd) Money() Money {
	return M(a.Amount, a.Currency).exact()
}

// DecodeLedger reads a JSONL stream, one transaction per line, and returns
// the transactions as a chronologically sorted ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		tx, err := decodeTransaction(line)
		if err != nil {
			return nil, err
		}
		ledger.Append(tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger.stableSort()
	return ledger, nil
}

// decodeTransaction peeks at the command field to pick the concrete type,
// then unmarshals the full line into it.
func decodeTransaction(line []byte) (Transaction, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(line, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command in line %q: %w", string(line), err)
	}

	switch identifier.Command {
	case CmdDeposit:
		var tx Deposit
		return tx, json.Unmarshal(line, &tx)
	case CmdBuy:
		var tx Buy
		return tx, json.Unmarshal(line, &tx)
	case CmdSell:
		var tx Sell
		return tx, json.Unmarshal(line, &tx)
	}
	return nil, fmt.Errorf("unknown transaction command: %q", identifier.Command)
}

// EncodeTransaction writes one transaction as a single JSON line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	decimal.MarshalJSONWithoutQuotes = true
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger writes every transaction of the ledger in chronological order,
// one JSON object per line. Same-day transactions keep their relative order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.stableSort()
	for _, tx := range ledger.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
