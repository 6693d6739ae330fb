package finapi

import (
	"context"
	"net/http"
)

// Login posts credentials. A rejected login is reported through
// AuthResult.Success, not as an error.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	return c.doFlagged(ctx, "/api/login", creds)
}

// Register creates an upstream user. Like Login, the outcome is in the body.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	return c.doFlagged(ctx, "/api/register", reg)
}

// Logout ends the upstream session.
func (c *Client) Logout(ctx context.Context) (*AuthResult, error) {
	return c.doFlagged(ctx, "/api/logout", nil)
}

// Account returns the signed-in user and their accounts. It fails with
// ErrUnauthorized when no session is held.
func (c *Client) Account(ctx context.Context) (*AccountInfo, error) {
	var info AccountInfo
	if err := c.do(ctx, http.MethodGet, "/api/account", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
