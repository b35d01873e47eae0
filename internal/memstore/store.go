// Package memstore provides the in-memory backing store for the devserver.
// It implements the Directory and Ledger data contracts without any
// persistence; state lives for the lifetime of the process.
package memstore

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-client/internal/domain"
)

// Store holds users, their accounts and the append-only transaction logs.
type Store struct {
	mu            sync.RWMutex
	users         map[string]domain.User
	userByEmail   map[string]string
	accounts      map[string]domain.Account
	ownerAccounts map[string][]string
	accountOwner  map[string]string
	transactions  map[string][]domain.Transaction
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:         map[string]domain.User{},
		userByEmail:   map[string]string{},
		accounts:      map[string]domain.Account{},
		ownerAccounts: map[string][]string{},
		accountOwner:  map[string]string{},
		transactions:  map[string][]domain.Transaction{},
	}
}

// CreateUser stores the user together with their opening accounts and
// assigns all ids.
func (s *Store) CreateUser(user domain.User, opening []domain.Account) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userByEmail[user.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyExists
	}

	user.UserID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	s.users[user.UserID] = user
	s.userByEmail[user.Email] = user.UserID

	for _, account := range opening {
		account.AccountID = uuid.NewString()

		s.accounts[account.AccountID] = account
		s.ownerAccounts[user.UserID] = append(s.ownerAccounts[user.UserID], account.AccountID)
		s.accountOwner[account.AccountID] = user.UserID
	}

	return user, nil
}

// GetUserByEmail returns the user registered with the given email.
func (s *Store) GetUserByEmail(email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.userByEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return s.users[userID], nil
}

// ListAccounts returns the user's accounts in creation order.
func (s *Store) ListAccounts(userID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}

	accounts := make([]domain.Account, 0, len(s.ownerAccounts[userID]))
	for _, id := range s.ownerAccounts[userID] {
		accounts = append(accounts, s.accounts[id])
	}

	return accounts, nil
}

// GetAccount returns a single account owned by the user.
func (s *Store) GetAccount(userID, accountID string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok || s.accountOwner[accountID] != userID {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return account, nil
}

// SetBalance overwrites the account balance and returns the updated account.
func (s *Store) SetBalance(userID, accountID string, balance decimal.Decimal) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok || s.accountOwner[accountID] != userID {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if balance.IsNegative() {
		return domain.Account{}, domain.ErrNegativeBalance
	}

	account.Balance = balance
	s.accounts[accountID] = account

	return account, nil
}

// Transfer atomically moves the amount between two accounts of the user.
func (s *Store) Transfer(userID, sourceAccountID, destinationAccountID string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sourceAccountID == destinationAccountID {
		return domain.ErrSameAccountTransfer
	}

	if !amount.IsPositive() {
		return domain.ErrNegativeAmount
	}

	source, ok := s.accounts[sourceAccountID]
	if !ok || s.accountOwner[sourceAccountID] != userID {
		return domain.ErrAccountNotFound
	}

	destination, ok := s.accounts[destinationAccountID]
	if !ok || s.accountOwner[destinationAccountID] != userID {
		return domain.ErrAccountNotFound
	}

	if amount.GreaterThan(source.Balance) {
		return domain.ErrInsufficientBalance
	}

	source.Balance = source.Balance.Sub(amount)
	destination.Balance = destination.Balance.Add(amount)

	s.accounts[sourceAccountID] = source
	s.accounts[destinationAccountID] = destination

	return nil
}

// ListTransactions returns the account's transaction log in append order.
func (s *Store) ListTransactions(accountID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.accounts[accountID]; !ok {
		return nil, domain.ErrAccountNotFound
	}

	log := s.transactions[accountID]
	out := make([]domain.Transaction, len(log))
	copy(out, log)

	return out, nil
}

// AppendTransaction appends a record to the account's transaction log.
func (s *Store) AppendTransaction(accountID string, tx domain.Transaction) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return domain.Transaction{}, domain.ErrAccountNotFound
	}

	s.transactions[accountID] = append(s.transactions[accountID], tx)

	return tx, nil
}
