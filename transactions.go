package foliosim

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tjpapenfuss/foliosim/date"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdDeposit CommandType = "deposit"
	CmdBuy     CommandType = "buy"
	CmdSell    CommandType = "sell"
)

// Transaction defines the common interface for the ledger entries a
// simulation produces.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "buy", "sell").
	When() date.Date   // When returns the date on which the transaction occurred.
	Equal(Transaction) bool
	Validate() error
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction (e.g., "buy", "sell").
	Date    date.Date   `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale or note for the transaction.
}

// What returns the command name for the transaction, which is used to identify the type of transaction.
func (t baseCmd) What() CommandType {
	return t.Command
}

// When returns the date of the transaction.
func (t baseCmd) When() date.Date {
	return t.Date
}

// Rationale returns the memo associated with the transaction, which can provide additional context or rationale.
func (t baseCmd) Rationale() string {
	return t.Memo
}

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base command fields.
func (t baseCmd) Validate() error {
	if t.Date.IsZero() {
		return errors.New("transaction date is missing")
	}
	return nil
}

// secCmd is a component for security-based transactions (buy, sell).
type secCmd struct {
	baseCmd
	Security string `json:"security"` // Security is the ticker symbol of the security involved in the transaction.
}

// Validate checks the security command fields.
func (t secCmd) Validate() error {
	if err := t.baseCmd.Validate(); err != nil {
		return err
	}
	if t.Security == "" {
		return errors.New("security ticker is missing")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for secCmd.
func (t secCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("security", t.Security)
	return w.MarshalJSON()
}

// Deposit represents cash entering the portfolio.
type Deposit struct {
	baseCmd
	Amount Money // Amount is the quantity of cash deposited.
}

// NewDeposit creates a new Deposit transaction.
func NewDeposit(day date.Date, memo string, amount Money) Deposit {
	return Deposit{
		baseCmd: baseCmd{Command: CmdDeposit, Date: day, Memo: memo},
		Amount:  amount.exact(),
	}
}

func (t Deposit) Currency() string { return t.Amount.Currency() }

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Deposit.
func (t *Deposit) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		baseCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseCmd = temp.baseCmd
	t.Amount = temp.Money()
	return nil
}

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.baseCmd == o.baseCmd && t.Amount.Equal(o.Amount)
}

// Validate checks that the deposit carries a positive amount.
func (t Deposit) Validate() error {
	if err := t.baseCmd.Validate(); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("deposit amount must be positive, got %s", t.Amount)
	}
	return nil
}

// Buy represents the purchase of a quantity of a security, opening one lot.
type Buy struct {
	secCmd
	Quantity Quantity // Quantity is the number of shares or units bought.
	Price    Money    // Price is the purchase price per share.
	Amount   Money    // Amount is the total cost of the purchase.
}

// NewBuy creates a new Buy transaction.
func NewBuy(day date.Date, memo, security string, quantity Quantity, price, amount Money) Buy {
	return Buy{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdBuy, Date: day, Memo: memo}, Security: security},
		Quantity: quantity,
		Price:    price.exact(),
		Amount:   amount.exact(),
	}
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.value)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
// It handles the custom structure where amount and currency are separate fields.
func (t *Buy) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		secCmd
		amountCmd
		Quantity Quantity        `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Quantity = temp.Quantity
	t.Price = M(temp.Price, temp.Currency).exact()
	t.Amount = temp.Money()
	return nil
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.secCmd == o.secCmd && t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) && t.Amount.Equal(o.Amount)
}

func (t Buy) Currency() string { return t.Amount.Currency() }

// Validate checks that quantity, price and amount are all positive.
func (t Buy) Validate() error {
	if err := t.secCmd.Validate(); err != nil {
		return err
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("buy transaction quantity must be positive, got %s", t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("buy transaction price must be positive, got %s", t.Price)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("buy transaction amount must be positive, got %s", t.Amount)
	}
	return nil
}

// Sell represents the disposal of shares consumed from one single lot.
//
// A sell operation touching several lots emits one Sell per lot, so the
// ledger keeps per-lot realized gain, holding period, and purchase date.
type Sell struct {
	secCmd
	Quantity Quantity  // Quantity is the number of shares sold from the lot.
	Price    Money     // Price is the sale price per share.
	Amount   Money     // Amount is the proceeds of the sale.
	Gain     Money     // Gain is the realized gain (negative for a loss).
	GainPct  Percent   // GainPct is the realized return against the lot cost.
	DaysHeld int       // DaysHeld is the lot's holding period at the sale date.
	LotDate  date.Date // LotDate is the purchase date of the consumed lot.
}

// NewSell creates a new Sell transaction for shares consumed from one lot.
func NewSell(day date.Date, memo, security string, quantity Quantity, price, amount, gain Money, gainPct Percent, daysHeld int, lotDate date.Date) Sell {
	return Sell{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdSell, Date: day, Memo: memo}, Security: security},
		Quantity: quantity,
		Price:    price.exact(),
		Amount:   amount.exact(),
		Gain:     gain.exact(),
		GainPct:  gainPct,
		DaysHeld: daysHeld,
		LotDate:  lotDate,
	}
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.value)
	w.EmbedFrom(t.Amount)
	w.Append("gain", t.Gain.value)
	w.Append("gainPct", t.GainPct)
	w.Append("daysHeld", t.DaysHeld)
	w.Append("lotDate", t.LotDate)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sell.
func (t *Sell) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		secCmd
		amountCmd
		Quantity Quantity        `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
		Gain     decimal.Decimal `json:"gain"`
		GainPct  Percent         `json:"gainPct"`
		DaysHeld int             `json:"daysHeld"`
		LotDate  date.Date       `json:"lotDate"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Quantity = temp.Quantity
	t.Price = M(temp.Price, temp.Currency).exact()
	t.Amount = temp.Money()
	t.Gain = M(temp.Gain, temp.Currency).exact()
	t.GainPct = temp.GainPct
	t.DaysHeld = temp.DaysHeld
	t.LotDate = temp.LotDate
	return nil
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.secCmd == o.secCmd && t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) && t.Amount.Equal(o.Amount) && t.Gain.Equal(o.Gain) &&
		t.GainPct == o.GainPct && t.DaysHeld == o.DaysHeld && t.LotDate == o.LotDate
}

func (t Sell) Currency() string { return t.Amount.Currency() }

// Validate checks that quantity and price are positive and the lot date does
// not postdate the sale.
func (t Sell) Validate() error {
	if err := t.secCmd.Validate(); err != nil {
		return err
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("sell transaction quantity must be positive, got %s", t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("sell transaction price must be positive, got %s", t.Price)
	}
	if t.LotDate.After(t.Date) {
		return fmt.Errorf("sell transaction lot date %s is after the sale date %s", t.LotDate, t.Date)
	}
	return nil
}
