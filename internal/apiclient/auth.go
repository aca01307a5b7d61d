package apiclient

import (
	"context"
	"net/http"

	"github.com/geocoder89/bankportal/internal/domain/banking"
)

// Login exchanges credentials for a backend token. A 401 here is a bad
// password, not a lost session, so it comes back as *APIError.
func (c *Client) Login(ctx context.Context, req banking.LoginRequest) (banking.LoginResult, error) {
	var out banking.LoginResult

	err := c.do(ctx, call{op: "auth.login", method: http.MethodPost, path: "/auth/login", body: req, out: &out, public: true})
	return out, err
}

func (c *Client) Register(ctx context.Context, req banking.RegisterRequest) error {
	return c.do(ctx, call{op: "auth.register", method: http.MethodPost, path: "/auth/register", body: req, public: true})
}
