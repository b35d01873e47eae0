// Package accountsession manages the per-login working set of accounts and
// mediates deposit, withdraw and transfer operations against the Directory
// and Ledger collaborators. Local balances mirror confirmed remote outcomes
// only; validation failures never reach the wire.
package accountsession

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-client/internal/domain"
)

// Directory provides the read-side collaborator interface needed by the session.
//
//go:generate mockgen -source session.go -destination session_mock.go -package accountsession
type Directory interface {
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	GetAccount(ctx context.Context, userID, accountID string) (domain.Account, error)
	ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)
	RecordTransaction(ctx context.Context, accountID string, tx domain.Transaction) (domain.Transaction, error)
}

// Ledger provides the write-side collaborator interface needed by the session.
type Ledger interface {
	UpdateBalance(ctx context.Context, userID, accountID string, balance decimal.Decimal) (domain.Account, error)
	Transfer(ctx context.Context, userID, sourceAccountID, destinationAccountID string, amount decimal.Decimal) error
}

// Session holds the accounts of the logged-in user in a single normalized
// store keyed by account id; the selected account is a lookup into that
// store, never a copy. A Session is created at login and discarded at
// logout. Methods are safe for concurrent use, and mutations are rejected
// with domain.ErrOperationInProgress while a remote call is outstanding.
type Session struct {
	directory Directory
	ledger    Ledger
	userID    string

	mu         sync.Mutex
	accounts   map[string]domain.Account
	order      []string
	selectedID string
	function   domain.Function
	phase      domain.Phase

	now func() time.Time
}

// New returns a session bound to the given user id.
func New(userID string, directory Directory, ledger Ledger) (*Session, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}

	return &Session{
		directory: directory,
		ledger:    ledger,
		userID:    userID,
		accounts:  map[string]domain.Account{},
		phase:     domain.PhaseAccountList,
		now:       time.Now,
	}, nil
}

func parseAmount(amount string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if !value.IsPositive() {
		return decimal.Decimal{}, domain.ErrNegativeAmount
	}

	return value, nil
}

// Phase returns the current session phase.
func (s *Session) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.phase
}

// Accounts returns the cached accounts in the order the Directory listed them.
func (s *Session) Accounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]domain.Account, 0, len(s.order))
	for _, id := range s.order {
		accounts = append(accounts, s.accounts[id])
	}

	return accounts
}

// Selected returns the currently selected account, if any.
func (s *Session) Selected() (domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[s.selectedID]

	return account, ok
}

// LoadAccounts replaces the local account list with the Directory listing.
// On failure the list is left empty and the error is returned; no retry.
func (s *Session) LoadAccounts(ctx context.Context) error {
	l := zerolog.Ctx(ctx)

	if err := s.checkOpen(); err != nil {
		return err
	}

	accounts, err := s.directory.ListAccounts(ctx, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = map[string]domain.Account{}
	s.order = s.order[:0]
	s.selectedID = ""
	s.function = ""
	s.phase = domain.PhaseAccountList

	if err != nil {
		l.Error().Err(err).Msg("loading accounts failed")
		return err
	}

	for _, account := range accounts {
		s.accounts[account.AccountID] = account
		s.order = append(s.order, account.AccountID)
	}

	return nil
}

// Select marks the account as the working account, clears any in-progress
// function selection and overwrites the cached balance with the
// authoritative one from the Directory. Reselecting the already selected
// account is a no-op.
func (s *Session) Select(ctx context.Context, accountID string) error {
	l := zerolog.Ctx(ctx)

	s.mu.Lock()

	if s.phase == domain.PhaseLoggedOut {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}

	if s.selectedID == accountID {
		s.mu.Unlock()
		return nil
	}

	if _, ok := s.accounts[accountID]; !ok {
		s.mu.Unlock()
		return domain.ErrAccountNotFound
	}

	s.selectedID = accountID
	s.function = ""
	s.phase = domain.PhaseAccountSelected
	s.mu.Unlock()

	account, err := s.directory.GetAccount(ctx, s.userID, accountID)
	if err != nil {
		l.Error().Err(err).Str("account_id", accountID).Msg("balance refresh failed")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; ok {
		s.accounts[accountID] = account
	}

	return nil
}

// SelectFunction picks the money operation for the selected account.
func (s *Session) SelectFunction(f domain.Function) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == domain.PhaseLoggedOut {
		return domain.ErrSessionClosed
	}

	if _, ok := s.accounts[s.selectedID]; !ok {
		return domain.ErrNoAccountSelected
	}

	s.function = f
	s.phase = domain.PhaseFunctionSelected

	return nil
}

// Back steps the session one screen back.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case domain.PhaseFunctionSelected:
		s.function = ""
		s.phase = domain.PhaseAccountSelected
	case domain.PhaseAccountSelected, domain.PhaseHistory:
		s.selectedID = ""
		s.function = ""
		s.phase = domain.PhaseAccountList
	}
}

// Continue acknowledges the post-transaction prompt and returns to the
// account list.
func (s *Session) Continue() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhasePrompt {
		return
	}

	s.selectedID = ""
	s.function = ""
	s.phase = domain.PhaseAccountList
}

// Logout closes the session and drops the cached working set. The session
// cannot be reused afterwards; the caller discards it together with the
// stored user identity.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = map[string]domain.Account{}
	s.order = nil
	s.selectedID = ""
	s.function = ""
	s.phase = domain.PhaseLoggedOut
}

func (s *Session) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == domain.PhaseLoggedOut {
		return domain.ErrSessionClosed
	}

	return nil
}

// beginMutation validates that a mutation may start and flips the session
// into the pending phase. It returns the selected account snapshot and the
// phase to restore should the mutation fail.
func (s *Session) beginMutation() (domain.Account, domain.Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == domain.PhaseLoggedOut {
		return domain.Account{}, s.phase, domain.ErrSessionClosed
	}

	if s.phase == domain.PhasePending {
		return domain.Account{}, s.phase, domain.ErrOperationInProgress
	}

	selected, ok := s.accounts[s.selectedID]
	if !ok {
		return domain.Account{}, s.phase, domain.ErrNoAccountSelected
	}

	prev := s.phase
	s.phase = domain.PhasePending

	return selected, prev, nil
}

func (s *Session) settle(phase domain.Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == domain.PhasePending {
		s.phase = phase
	}
}

func (s *Session) setBalance(accountID string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return
	}

	account.Balance = balance
	s.accounts[accountID] = account
}

// Deposit adds the given amount to the selected account. The local balance
// mirrors the value sent to the Ledger and is updated only after the
// mutation call succeeds; a DEPOSIT record is then appended to the history.
func (s *Session) Deposit(ctx context.Context, amount string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	value, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return domain.Transaction{}, err
	}

	selected, prev, err := s.beginMutation()
	if err != nil {
		return domain.Transaction{}, err
	}

	newBalance := selected.Balance.Add(value)

	if _, err := s.ledger.UpdateBalance(ctx, s.userID, selected.AccountID, newBalance); err != nil {
		l.Error().Err(err).Msg("deposit balance update failed")
		s.settle(prev)

		return domain.Transaction{}, err
	}

	s.setBalance(selected.AccountID, newBalance)

	tx := domain.Transaction{
		Type:               domain.Deposit,
		SourceAccount:      selected.AccountType,
		DestinationAccount: selected.AccountType,
		Amount:             value,
		Timestamp:          s.now().UTC(),
	}

	if _, err := s.directory.RecordTransaction(ctx, selected.AccountID, tx); err != nil {
		l.Warn().Err(err).Msg("deposit succeeded but the record was not appended")
		s.settle(prev)

		return tx, domain.ErrTransactionNotRecorded
	}

	s.settle(domain.PhasePrompt)

	return tx, nil
}

// Withdraw subtracts the given amount from the selected account. The amount
// is checked against the locally cached balance; an insufficient balance
// fails without any remote call.
func (s *Session) Withdraw(ctx context.Context, amount string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	value, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return domain.Transaction{}, err
	}

	selected, prev, err := s.beginMutation()
	if err != nil {
		return domain.Transaction{}, err
	}

	if value.GreaterThan(selected.Balance) {
		s.settle(prev)
		return domain.Transaction{}, domain.ErrInsufficientBalance
	}

	newBalance := selected.Balance.Sub(value)

	if _, err := s.ledger.UpdateBalance(ctx, s.userID, selected.AccountID, newBalance); err != nil {
		l.Error().Err(err).Msg("withdraw balance update failed")
		s.settle(prev)

		return domain.Transaction{}, err
	}

	s.setBalance(selected.AccountID, newBalance)

	tx := domain.Transaction{
		Type:               domain.Withdraw,
		SourceAccount:      selected.AccountType,
		DestinationAccount: selected.AccountType,
		Amount:             value,
		Timestamp:          s.now().UTC(),
	}

	if _, err := s.directory.RecordTransaction(ctx, selected.AccountID, tx); err != nil {
		l.Warn().Err(err).Msg("withdraw succeeded but the record was not appended")
		s.settle(prev)

		return tx, domain.ErrTransactionNotRecorded
	}

	s.settle(domain.PhasePrompt)

	return tx, nil
}

// resolveTransfer validates the transfer request against the local cache
// and flips the session into the pending phase.
func (s *Session) resolveTransfer(value decimal.Decimal, sourceType, destinationType string) (source, destination domain.Account, prev domain.Phase, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == domain.PhaseLoggedOut {
		return source, destination, s.phase, domain.ErrSessionClosed
	}

	if s.phase == domain.PhasePending {
		return source, destination, s.phase, domain.ErrOperationInProgress
	}

	var foundSource, foundDestination bool

	// First match wins; at most one account of each type is assumed.
	for _, id := range s.order {
		account := s.accounts[id]

		if !foundSource && account.AccountType == sourceType {
			source = account
			foundSource = true
		}

		if !foundDestination && account.AccountType == destinationType {
			destination = account
			foundDestination = true
		}
	}

	if !foundSource || !foundDestination {
		return source, destination, s.phase, domain.ErrAccountNotFound
	}

	if value.GreaterThan(source.Balance) {
		return source, destination, s.phase, domain.ErrInsufficientBalance
	}

	prev = s.phase
	s.phase = domain.PhasePending

	return source, destination, prev, nil
}

// Transfer moves the given amount between the user's two accounts, resolved
// by account type. On success the source balance decreases and the
// destination balance increases by exactly the amount, conserving their sum.
// If the funds move but the TRANSFER record cannot be appended, the balance
// mirror is still updated and domain.ErrTransactionNotRecorded is returned.
func (s *Session) Transfer(ctx context.Context, amount, sourceType, destinationType string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	value, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return domain.Transaction{}, err
	}

	if sourceType == destinationType {
		return domain.Transaction{}, domain.ErrSameAccountTransfer
	}

	source, destination, prev, err := s.resolveTransfer(value, sourceType, destinationType)
	if err != nil {
		return domain.Transaction{}, err
	}

	if err := s.ledger.Transfer(ctx, s.userID, source.AccountID, destination.AccountID, value); err != nil {
		l.Error().Err(err).Msg("transfer failed")
		s.settle(prev)

		return domain.Transaction{}, err
	}

	s.setBalance(source.AccountID, source.Balance.Sub(value))
	s.setBalance(destination.AccountID, destination.Balance.Add(value))

	tx := domain.Transaction{
		Type:               domain.Transfer,
		SourceAccount:      source.AccountType,
		DestinationAccount: destination.AccountType,
		Amount:             value,
		Timestamp:          s.now().UTC(),
	}

	// The record is attributed to the source account.
	if _, err := s.directory.RecordTransaction(ctx, source.AccountID, tx); err != nil {
		l.Warn().Err(err).Msg("funds moved but the record was not appended")
		s.settle(prev)

		return tx, domain.ErrTransactionNotRecorded
	}

	s.settle(domain.PhasePrompt)

	return tx, nil
}

// History fetches every account's transactions, defaults missing source and
// destination fields to the owning account's type, and returns the merged
// log sorted by timestamp descending. The sort is unstable under equal
// timestamps.
func (s *Session) History(ctx context.Context) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var merged []domain.Transaction

	for _, account := range s.Accounts() {
		transactions, err := s.directory.ListTransactions(ctx, account.AccountID)
		if err != nil {
			l.Error().Err(err).Str("account_id", account.AccountID).Msg("fetching transaction history failed")
			return nil, err
		}

		for _, tx := range transactions {
			if tx.SourceAccount == "" {
				tx.SourceAccount = account.AccountType
			}

			if tx.DestinationAccount == "" {
				tx.DestinationAccount = account.AccountType
			}

			merged = append(merged, tx)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})

	s.mu.Lock()
	if s.phase == domain.PhaseAccountList {
		s.phase = domain.PhaseHistory
	}
	s.mu.Unlock()

	return merged, nil
}
