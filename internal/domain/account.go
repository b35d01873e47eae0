// Package domain provides defenitions of all entities.
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNoAccountSelected indicates that the operation needs a selected account.
	ErrNoAccountSelected = errors.New("no account selected")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrNegativeBalance indicates an attempt to set a balance below zero.
	ErrNegativeBalance = errors.New("balance must not be negative")
	// ErrSameAccountTransfer indicates that transfer source and destination are the same account.
	ErrSameAccountTransfer = errors.New("source and destination accounts must differ")
)

// Constants for all supported account types.
const (
	Checking = "CHECKING"
	Savings  = "SAVINGS"
)

// AccountTypes holds all the supported account types.
var AccountTypes = []string{Checking, Savings}

// IsSupportedAccountType returns true if the account type is supported.
func IsSupportedAccountType(accountType string) bool {
	for _, at := range AccountTypes {
		if at == accountType {
			return true
		}
	}

	return false
}

// Account holds the user balance data for a specific account type.
type Account struct {
	AccountID   string          `json:"accountId"`
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}
