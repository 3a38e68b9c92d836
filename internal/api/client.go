package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keybtech/shopcli/internal/config"
	"github.com/keybtech/shopcli/internal/credential"
)

// TokenSource supplies the current credential, if any. Satisfied by
// *credential.Store.
type TokenSource interface {
	Load() (*credential.Credential, error)
}

// Client performs HTTP requests against the remote catalog/cart/auth
// service. When a credential is present it rides along verbatim in the
// Authorization header (the service expects the raw token, no Bearer
// prefix). No retries, no caching.
type Client struct {
	base   string
	path   string
	http   *http.Client
	tokens TokenSource
	log    *zap.Logger
}

// New builds a client from config. log may be zap.NewNop() in tests.
func New(cfg config.APIConfig, tokens TokenSource, log *zap.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(cfg.Base, "/"),
		path:   cfg.Path,
		http:   &http.Client{Timeout: cfg.Timeout()},
		tokens: tokens,
		log:    log,
	}
}

// shopPath prefixes p with the shop-specific API segment.
func (c *Client) shopPath(p string) string {
	return "/api/" + c.path + p
}

// do sends one request and decodes a successful JSON body into out (out may
// be nil). Non-2xx responses become *APIError with the body's message;
// failures to get a response at all become *TransportError.
func (c *Client) do(ctx context.Context, method, p string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+p, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if cred, err := c.tokens.Load(); err == nil && cred != nil {
		req.Header.Set("Authorization", cred.Token)
	} else if err != nil {
		c.log.Warn("credential load failed", zap.Error(err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", p),
			zap.Error(err))
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("path", p),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: bodyMessage(raw)}
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// bodyMessage digs the human-readable message out of an error body. The
// service sends message as either a string or a list of strings.
func bodyMessage(raw []byte) string {
	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Message) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Message, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(envelope.Message, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}
