// Package ledgerclient implements the HTTP client for the Ledger mutation
// service, the write-side collaborator applying balance changes and transfers.
package ledgerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-client/internal/domain"
	"github.com/go-petr/bank-client/pkg/web"
)

// Client calls the Ledger mutation service over the given base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Ledger client. A nil httpClient falls back to a client
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

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	reqBody := bytes.NewBuffer(nil)

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

	if res.StatusCode != http.StatusOK {
		return web.DecodeError(res)
	}

	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}

	return nil
}

type updateBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

// UpdateBalance sets the account balance to the given value and returns the
// updated account.
func (c *Client) UpdateBalance(ctx context.Context, userID, accountID string, balance decimal.Decimal) (domain.Account, error) {
	var account domain.Account

	path := fmt.Sprintf("/users/%s/accounts/%s", url.PathEscape(userID), url.PathEscape(accountID))
	req := updateBalanceRequest{Balance: balance}

	if err := c.do(ctx, http.MethodPut, path, req, &account); err != nil {
		return account, err
	}

	return account, nil
}

type transferRequest struct {
	SourceAccountID      string          `json:"sourceAccountId"`
	DestinationAccountID string          `json:"destinationAccountId"`
	Amount               decimal.Decimal `json:"amount"`
}

// Transfer moves the given amount between two accounts owned by the user.
func (c *Client) Transfer(ctx context.Context, userID, sourceAccountID, destinationAccountID string, amount decimal.Decimal) error {
	path := fmt.Sprintf("/users/%s/transfer", url.PathEscape(userID))
	req := transferRequest{
		SourceAccountID:      sourceAccountID,
		DestinationAccountID: destinationAccountID,
		Amount:               amount,
	}

	return c.do(ctx, http.MethodPost, path, req, nil)
}
