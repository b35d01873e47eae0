package directoryclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-client/internal/domain"
	"github.com/go-petr/bank-client/pkg/web"
)

func TestListAccounts(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: "acc-1", AccountType: domain.Checking, Balance: decimal.NewFromInt(100)},
		{AccountID: "acc-2", AccountType: domain.Savings, Balance: decimal.NewFromInt(20)},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/users/user-1/accounts", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(accounts))
	}))
	defer server.Close()

	client := New(server.URL, nil)

	got, err := client.ListAccounts(context.Background(), "user-1")
	require.NoError(t, err)

	if diff := cmp.Diff(accounts, got); diff != "" {
		t.Errorf("client.ListAccounts() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAccountNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(web.Error(domain.ErrAccountNotFound))
	}))
	defer server.Close()

	client := New(server.URL, nil)

	_, err := client.GetAccount(context.Background(), "user-1", "acc-missing")

	var statusErr *web.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	require.Equal(t, domain.ErrAccountNotFound.Error(), statusErr.Message)
}

func TestCreateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users", r.URL.Path)

		var req domain.CreateUserParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "jane@email.com", req.Email)
		require.Equal(t, "both", req.AccountType)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.User{UserID: "user-1", Email: req.Email})
	}))
	defer server.Close()

	client := New(server.URL, nil)

	user, err := client.CreateUser(context.Background(), domain.CreateUserParams{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@email.com",
		Password:        "supersecret",
		PIN:             "4242",
		AccountType:     "both",
		CheckingBalance: decimal.NewFromInt(100),
		SavingsBalance:  decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	require.Equal(t, "user-1", user.UserID)
}

func TestLogin(t *testing.T) {
	testCases := []struct {
		name          string
		authenticated bool
		wantErr       error
	}{
		{name: "OK", authenticated: true},
		{name: "BadCredentials", authenticated: false, wantErr: domain.ErrInvalidCredentials},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/login", r.URL.Path)

				var req loginRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				require.Equal(t, "jane@email.com", req.Email)

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(loginResponse{Authenticated: tc.authenticated, UserID: "user-1"})
			}))
			defer server.Close()

			client := New(server.URL, nil)

			userID, err := client.Login(context.Background(), "jane@email.com", "4242")
			if tc.wantErr != nil {
				require.EqualError(t, err, tc.wantErr.Error())
				require.Empty(t, userID)

				return
			}

			require.NoError(t, err)
			require.Equal(t, "user-1", userID)
		})
	}
}

func TestRecordTransaction(t *testing.T) {
	timestamp := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/accounts/acc-1/transactions", r.URL.Path)

		var tx domain.Transaction
		require.NoError(t, json.NewDecoder(r.Body).Decode(&tx))
		require.Equal(t, domain.Deposit, tx.Type)
		require.True(t, tx.Amount.Equal(decimal.NewFromInt(50)))
		require.True(t, tx.Timestamp.Equal(timestamp))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(tx)
	}))
	defer server.Close()

	client := New(server.URL, nil)

	recorded, err := client.RecordTransaction(context.Background(), "acc-1", domain.Transaction{
		Type:               domain.Deposit,
		SourceAccount:      domain.Checking,
		DestinationAccount: domain.Checking,
		Amount:             decimal.NewFromInt(50),
		Timestamp:          timestamp,
	})
	require.NoError(t, err)
	require.Equal(t, domain.Deposit, recorded.Type)
}

func TestListTransactionsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := New(server.URL, nil)

	_, err := client.ListTransactions(context.Background(), "acc-1")
	require.Error(t, err)
}
