package remote

import (
	"context"
	"net/http"

	"github.com/trezcool/gradedesk/core/session"
)

// Login authenticates creds. The caller decides whether to persist the returned identity.
func (c *Client) Login(ctx context.Context, creds session.Credentials) Result[session.Session] {
	r, err := jsonRequest(http.MethodPost, "auth/login", creds, "user", "Login failed")
	if err != nil {
		return failed[session.Session](c.transportFailure(r, err).message)
	}
	return call[session.Session](ctx, c, r, true)
}

func (c *Client) Register(ctx context.Context, acct session.NewAccount) Result[session.Session] {
	r, err := jsonRequest(http.MethodPost, "auth/register", acct, "user", "Registration failed")
	if err != nil {
		return failed[session.Session](c.transportFailure(r, err).message)
	}
	return call[session.Session](ctx, c, r, true)
}

// Logout is best effort; callers usually ignore the result.
func (c *Client) Logout(ctx context.Context) Result[struct{}] {
	return call[struct{}](ctx, c, request{method: http.MethodPost, path: "auth/logout", defaultMsg: "Logout failed"}, false)
}

// Current asks the server who the credential belongs to.
func (c *Client) Current(ctx context.Context) Result[session.Session] {
	return call[session.Session](ctx, c, request{method: http.MethodGet, path: "auth/current", payloadKey: "user", defaultMsg: "Not authenticated"}, true)
}
