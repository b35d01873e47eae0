// Package directoryclient implements the HTTP client for the Directory
// service, the read-side collaborator providing account and transaction
// lookups plus user creation and login.
package directoryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-petr/bank-client/internal/domain"
	"github.com/go-petr/bank-client/pkg/web"
)

// Client calls the Directory service over the given base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Directory client. A nil httpClient falls back to a client
// without a timeout: failures are only observed on network or HTTP errors.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, wantStatus int) error {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)

	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != wantStatus {
		return web.DecodeError(res)
	}

	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}

	return nil
}

// ListAccounts returns all accounts owned by the given user.
func (c *Client) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	var accounts []domain.Account

	path := fmt.Sprintf("/users/%s/accounts", url.PathEscape(userID))
	if err := c.do(ctx, http.MethodGet, path, nil, &accounts, http.StatusOK); err != nil {
		return nil, err
	}

	return accounts, nil
}

// GetAccount returns a single account with its authoritative balance.
func (c *Client) GetAccount(ctx context.Context, userID, accountID string) (domain.Account, error) {
	var account domain.Account

	path := fmt.Sprintf("/users/%s/accounts/%s", url.PathEscape(userID), url.PathEscape(accountID))
	if err := c.do(ctx, http.MethodGet, path, nil, &account, http.StatusOK); err != nil {
		return account, err
	}

	return account, nil
}

// CreateUser registers a new user together with their opening accounts.
func (c *Client) CreateUser(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	var user domain.User

	if err := c.do(ctx, http.MethodPost, "/users", arg, &user, http.StatusCreated); err != nil {
		return user, err
	}

	return user, nil
}

type loginRequest struct {
	Email string `json:"email"`
	PIN   string `json:"pin"`
}

type loginResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId"`
}

// Login checks the given credentials and returns the user ID on success.
func (c *Client) Login(ctx context.Context, email, pin string) (string, error) {
	var res loginResponse

	req := loginRequest{Email: email, PIN: pin}
	if err := c.do(ctx, http.MethodPost, "/login", req, &res, http.StatusOK); err != nil {
		return "", err
	}

	if !res.Authenticated {
		return "", domain.ErrInvalidCredentials
	}

	return res.UserID, nil
}

// ListTransactions returns the append-only transaction log of the account.
func (c *Client) ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	var transactions []domain.Transaction

	path := fmt.Sprintf("/accounts/%s/transactions", url.PathEscape(accountID))
	if err := c.do(ctx, http.MethodGet, path, nil, &transactions, http.StatusOK); err != nil {
		return nil, err
	}

	return transactions, nil
}

// RecordTransaction appends a transaction record to the account history.
func (c *Client) RecordTransaction(ctx context.Context, accountID string, tx domain.Transaction) (domain.Transaction, error) {
	var recorded domain.Transaction

	path := fmt.Sprintf("/accounts/%s/transactions", url.PathEscape(accountID))
	if err := c.do(ctx, http.MethodPost, path, tx, &recorded, http.StatusCreated); err != nil {
		return recorded, err
	}

	return recorded, nil
}
