package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmailAlreadyExists indicates that a user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials indicates a failed email and PIN check.
	ErrInvalidCredentials = errors.New("invalid email or PIN")
)

// User holds user data.
type User struct {
	UserID         string    `json:"userId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	HashedPIN      string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// CreateUserParams is the input data to create a user and their opening accounts.
//
// AccountType selects which accounts to open: "checking", "savings" or "both".
type CreateUserParams struct {
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	PIN             string          `json:"pin"`
	AccountType     string          `json:"accountType"`
	CheckingBalance decimal.Decimal `json:"checkingBalance"`
	SavingsBalance  decimal.Decimal `json:"savingsBalance"`
}
