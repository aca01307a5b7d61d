package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/geocoder89/bankportal/internal/domain/banking"
)

// Calls under /client act on the accounts of the logged-in user.

func (c *Client) MyAccounts(ctx context.Context) ([]banking.Account, error) {
	out := []banking.Account{}

	err := c.do(ctx, call{op: "client.accounts", method: http.MethodGet, path: "/client/accounts", out: &out})
	return out, err
}

func (c *Client) Balance(ctx context.Context, accountNumber string) (banking.Balance, error) {
	var out banking.Balance

	err := c.do(ctx, call{op: "client.balance", method: http.MethodGet, path: "/client/accounts/" + url.PathEscape(accountNumber) + "/balance", out: &out})
	return out, err
}

func (c *Client) Transactions(ctx context.Context, accountNumber string) ([]banking.Transaction, error) {
	out := []banking.Transaction{}

	err := c.do(ctx, call{op: "client.transactions", method: http.MethodGet, path: "/client/accounts/" + url.PathEscape(accountNumber) + "/transactions", out: &out})
	return out, err
}

func (c *Client) SetPin(ctx context.Context, req banking.SetPinRequest) error {
	return c.do(ctx, call{op: "client.set_pin", method: http.MethodPost, path: "/client/accounts/pin", body: req})
}

func (c *Client) Withdraw(ctx context.Context, req banking.TransactionRequest) (banking.Transaction, error) {
	var out banking.Transaction

	err := c.do(ctx, call{op: "client.withdraw", method: http.MethodPost, path: "/client/withdraw", body: req, out: &out})
	return out, err
}
