package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/geocoder89/bankportal/internal/domain/banking"
)

func (c *Client) CreateAccount(ctx context.Context, req banking.CreateAccountRequest) (banking.Account, error) {
	var out banking.Account

	err := c.do(ctx, call{op: "teller.create_account", method: http.MethodPost, path: "/teller/accounts", body: req, out: &out})
	return out, err
}

func (c *Client) TellerAccounts(ctx context.Context) ([]banking.Account, error) {
	out := []banking.Account{}

	err := c.do(ctx, call{op: "teller.accounts", method: http.MethodGet, path: "/teller/accounts", out: &out})
	return out, err
}

func (c *Client) Deposit(ctx context.Context, req banking.TransactionRequest) (banking.Transaction, error) {
	var out banking.Transaction

	err := c.do(ctx, call{op: "teller.deposit", method: http.MethodPost, path: "/teller/deposit", body: req, out: &out})
	return out, err
}

func (c *Client) TellerWithdraw(ctx context.Context, req banking.TransactionRequest) (banking.Transaction, error) {
	var out banking.Transaction

	err := c.do(ctx, call{op: "teller.withdraw", method: http.MethodPost, path: "/teller/withdraw", body: req, out: &out})
	return out, err
}

func (c *Client) TellerTransactions(ctx context.Context, accountNumber string) ([]banking.Transaction, error) {
	out := []banking.Transaction{}

	err := c.do(ctx, call{op: "teller.transactions", method: http.MethodGet, path: "/teller/accounts/" + url.PathEscape(accountNumber) + "/transactions", out: &out})
	return out, err
}

func (c *Client) TellerBalance(ctx context.Context, accountNumber string) (banking.Balance, error) {
	var out banking.Balance

	err := c.do(ctx, call{op: "teller.balance", method: http.MethodGet, path: "/teller/accounts/" + url.PathEscape(accountNumber) + "/balance", out: &out})
	return out, err
}
