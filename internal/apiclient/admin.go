package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/geocoder89/bankportal/internal/domain/banking"
)

func (c *Client) AdminDashboard(ctx context.Context) (banking.DashboardStats, error) {
	var out banking.DashboardStats

	err := c.do(ctx, call{op: "admin.dashboard", method: http.MethodGet, path: "/admin/dashboard", out: &out})
	return out, err
}

func (c *Client) Users(ctx context.Context) ([]banking.User, error) {
	out := []banking.User{}

	err := c.do(ctx, call{op: "admin.users", method: http.MethodGet, path: "/admin/users", out: &out})
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, req banking.RegisterRequest) error {
	return c.do(ctx, call{op: "admin.create_user", method: http.MethodPost, path: "/admin/users", body: req})
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, call{op: "admin.delete_user", method: http.MethodDelete, path: "/admin/users/" + strconv.FormatInt(id, 10)})
}

func (c *Client) Banks(ctx context.Context) ([]banking.Bank, error) {
	out := []banking.Bank{}

	err := c.do(ctx, call{op: "admin.banks", method: http.MethodGet, path: "/admin/banks", out: &out})
	return out, err
}

func (c *Client) AddBank(ctx context.Context, req banking.BankRequest) (banking.Bank, error) {
	var out banking.Bank

	err := c.do(ctx, call{op: "admin.add_bank", method: http.MethodPost, path: "/admin/banks", body: req, out: &out})
	return out, err
}

func (c *Client) UpdateBank(ctx context.Context, id int64, req banking.BankRequest) (banking.Bank, error) {
	var out banking.Bank

	err := c.do(ctx, call{op: "admin.update_bank", method: http.MethodPut, path: "/admin/banks/" + strconv.FormatInt(id, 10), body: req, out: &out})
	return out, err
}

func (c *Client) DeleteBank(ctx context.Context, id int64) error {
	return c.do(ctx, call{op: "admin.delete_bank", method: http.MethodDelete, path: "/admin/banks/" + strconv.FormatInt(id, 10)})
}

func (c *Client) AllAccounts(ctx context.Context) ([]banking.Account, error) {
	out := []banking.Account{}

	err := c.do(ctx, call{op: "admin.accounts", method: http.MethodGet, path: "/admin/accounts", out: &out})
	return out, err
}

// DeleteAccount deactivates an account; the backend keeps the record.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.do(ctx, call{op: "admin.delete_account", method: http.MethodDelete, path: "/admin/accounts/" + strconv.FormatInt(id, 10)})
}

func (c *Client) UpdateAccount(ctx context.Context, id int64, req banking.CreateAccountRequest) (banking.Account, error) {
	var out banking.Account

	err := c.do(ctx, call{op: "admin.update_account", method: http.MethodPut, path: "/admin/accounts/" + strconv.FormatInt(id, 10), body: req, out: &out})
	return out, err
}

func (c *Client) AllTransactions(ctx context.Context) ([]banking.Transaction, error) {
	out := []banking.Transaction{}

	err := c.do(ctx, call{op: "admin.transactions", method: http.MethodGet, path: "/admin/transactions", out: &out})
	return out, err
}
