package memstore

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-client/internal/domain"
)

func seedUser(t *testing.T, store *Store) (domain.User, []domain.Account) {
	t.Helper()

	user, err := store.CreateUser(
		domain.User{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@email.com",
		},
		[]domain.Account{
			{AccountType: domain.Checking, Balance: decimal.NewFromInt(100)},
			{AccountType: domain.Savings, Balance: decimal.NewFromInt(20)},
		},
	)
	require.NoError(t, err)
	require.NotEmpty(t, user.UserID)

	accounts, err := store.ListAccounts(user.UserID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	return user, accounts
}

func TestCreateUser(t *testing.T) {
	store := New()

	user, accounts := seedUser(t, store)
	require.Equal(t, domain.Checking, accounts[0].AccountType)
	require.Equal(t, domain.Savings, accounts[1].AccountType)
	require.NotEmpty(t, accounts[0].AccountID)

	got, err := store.GetUserByEmail("jane@email.com")
	require.NoError(t, err)
	require.Equal(t, user.UserID, got.UserID)

	_, err = store.CreateUser(domain.User{Email: "jane@email.com"}, nil)
	require.EqualError(t, err, domain.ErrEmailAlreadyExists.Error())

	_, err = store.GetUserByEmail("nobody@email.com")
	require.EqualError(t, err, domain.ErrUserNotFound.Error())
}

func TestListAccountsUnknownUser(t *testing.T) {
	store := New()

	_, err := store.ListAccounts("user-missing")
	require.EqualError(t, err, domain.ErrUserNotFound.Error())
}

func TestGetAccount(t *testing.T) {
	store := New()
	user, accounts := seedUser(t, store)

	account, err := store.GetAccount(user.UserID, accounts[0].AccountID)
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(decimal.NewFromInt(100)))

	_, err = store.GetAccount("other-user", accounts[0].AccountID)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())

	_, err = store.GetAccount(user.UserID, "acc-missing")
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestSetBalance(t *testing.T) {
	store := New()
	user, accounts := seedUser(t, store)

	account, err := store.SetBalance(user.UserID, accounts[0].AccountID, decimal.NewFromInt(150))
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(decimal.NewFromInt(150)))

	_, err = store.SetBalance(user.UserID, accounts[0].AccountID, decimal.NewFromInt(-1))
	require.EqualError(t, err, domain.ErrNegativeBalance.Error())

	// The failed update left the balance untouched.
	account, err = store.GetAccount(user.UserID, accounts[0].AccountID)
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(decimal.NewFromInt(150)))
}

func TestTransfer(t *testing.T) {
	store := New()
	user, accounts := seedUser(t, store)

	checkingID := accounts[0].AccountID
	savingsID := accounts[1].AccountID

	testCases := []struct {
		name    string
		source  string
		dest    string
		amount  decimal.Decimal
		wantErr error
	}{
		{name: "SameAccount", source: checkingID, dest: checkingID, amount: decimal.NewFromInt(10), wantErr: domain.ErrSameAccountTransfer},
		{name: "ZeroAmount", source: checkingID, dest: savingsID, amount: decimal.Zero, wantErr: domain.ErrNegativeAmount},
		{name: "UnknownSource", source: "acc-missing", dest: savingsID, amount: decimal.NewFromInt(10), wantErr: domain.ErrAccountNotFound},
		{name: "Insufficient", source: checkingID, dest: savingsID, amount: decimal.NewFromInt(1000), wantErr: domain.ErrInsufficientBalance},
		{name: "OK", source: checkingID, dest: savingsID, amount: decimal.NewFromInt(30)},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			err := store.Transfer(user.UserID, tc.source, tc.dest, tc.amount)
			if tc.wantErr != nil {
				require.EqualError(t, err, tc.wantErr.Error())
				return
			}

			require.NoError(t, err)

			checking, err := store.GetAccount(user.UserID, checkingID)
			require.NoError(t, err)
			savings, err := store.GetAccount(user.UserID, savingsID)
			require.NoError(t, err)

			require.True(t, checking.Balance.Equal(decimal.NewFromInt(70)))
			require.True(t, savings.Balance.Equal(decimal.NewFromInt(50)))
		})
	}
}

func TestTransactionsLog(t *testing.T) {
	store := New()
	_, accounts := seedUser(t, store)

	accountID := accounts[0].AccountID

	_, err := store.ListTransactions("acc-missing")
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())

	log, err := store.ListTransactions(accountID)
	require.NoError(t, err)
	require.Empty(t, log)

	tx := domain.Transaction{
		Type:               domain.Deposit,
		SourceAccount:      domain.Checking,
		DestinationAccount: domain.Checking,
		Amount:             decimal.NewFromInt(50),
		Timestamp:          time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}

	recorded, err := store.AppendTransaction(accountID, tx)
	require.NoError(t, err)
	require.Equal(t, domain.Deposit, recorded.Type)

	log, err = store.ListTransactions(accountID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	require.True(t, log[0].Amount.Equal(decimal.NewFromInt(50)))
}
