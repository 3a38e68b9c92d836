package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// SignInResult is the outcome of a successful sign-in.
type SignInResult struct {
	Token   string
	Expired *time.Time
}

type signInResponse struct {
	Token   string   `json:"token"`
	Expired flexTime `json:"expired"`
}

// SignIn exchanges admin credentials for a bearer token.
func (c *Client) SignIn(ctx context.Context, username, password string) (*SignInResult, error) {
	body := map[string]string{"username": username, "password": password}
	var resp signInResponse
	if err := c.do(ctx, http.MethodPost, "/admin/signin", body, &resp); err != nil {
		return nil, err
	}
	return &SignInResult{Token: resp.Token, Expired: resp.Expired.ptr()}, nil
}

// Check probes whether the current credential is still accepted. The body is
// empty on purpose; only the Authorization header matters.
func (c *Client) Check(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/user/check", nil, nil)
}

// Logout invalidates the session server-side. Best effort: the local
// credential is cleared regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

// flexTime decodes the service's expiry field, which arrives as either epoch
// milliseconds or an RFC3339 string depending on the endpoint version.
type flexTime struct {
	t *time.Time
}

func (f *flexTime) ptr() *time.Time { return f.t }

func (f *flexTime) UnmarshalJSON(b []byte) error {
	var millis int64
	if err := json.Unmarshal(b, &millis); err == nil && millis > 0 {
		t := time.UnixMilli(millis)
		f.t = &t
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil && s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			f.t = &t
		}
		return nil
	}
	// Unknown shape: keep the credential expiry-less rather than failing login.
	return nil
}
