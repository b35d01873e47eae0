package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates an amount that does not parse as a number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates a zero or negative amount.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrTransactionNotRecorded indicates that the funds moved but the
	// transaction record was not appended to the history log.
	ErrTransactionNotRecorded = errors.New("transaction not recorded")
)

// Constants for all transaction types.
const (
	Deposit  = "DEPOSIT"
	Withdraw = "WITHDRAW"
	Transfer = "TRANSFER"
)

// Transaction is an append-only history log entry. For DEPOSIT and WITHDRAW
// the source and destination both name the acted-on account's type.
type Transaction struct {
	Type               string          `json:"type"`
	SourceAccount      string          `json:"sourceAccount"`
	DestinationAccount string          `json:"destinationAccount"`
	Amount             decimal.Decimal `json:"amount"`
	Timestamp          time.Time       `json:"timestamp"`
}

// Description renders the human-readable history line for the transaction.
func (t Transaction) Description() string {
	switch t.Type {
	case Transfer:
		return fmt.Sprintf("$%s from %s to %s", t.Amount, t.SourceAccount, t.DestinationAccount)
	case Deposit:
		return fmt.Sprintf("$%s to %s", t.Amount, t.SourceAccount)
	default:
		return fmt.Sprintf("$%s from %s", t.Amount, t.SourceAccount)
	}
}
