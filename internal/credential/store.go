package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const credFileName = "credentials.json"

// EnvToken overrides the stored credential when set. Handy for CI and
// one-off scripted runs.
const EnvToken = "SHOPCLI_TOKEN"

// Credential is the single process-wide authentication slot: an opaque
// bearer token plus its expiry. Validity is decided only by the remote
// service; nothing here inspects the token beyond the expiry fallback.
type Credential struct {
	Token     string     `json:"token"`
	Source    string     `json:"source"`     // "env" | "file"
	CreatedAt time.Time  `json:"created_at"` // when we saved to file
	ExpiresAt *time.Time `json:"expires_at"` // optional (server-provided or JWT exp)
}

// Expired reports whether the credential carries an expiry in the past.
// A credential without an expiry is never locally expired.
func (c *Credential) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// Store reads and writes the credential file under a base directory
// (~/.shopcli by default). One named slot, written through immediately.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. Tests pass a temp dir.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// DefaultStore roots the store in the user's home directory.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home: %w", err)
	}
	return NewStore(filepath.Join(home, ".shopcli")), nil
}

func (s *Store) path() string { return filepath.Join(s.dir, credFileName) }

// Load returns the current credential, or (nil, nil) when not logged in.
func (s *Store) Load() (*Credential, error) {
	// 1) env override
	if env := strings.TrimSpace(os.Getenv(EnvToken)); env != "" {
		return &Credential{Token: stripBearer(env), Source: "env"}, nil
	}

	// 2) file
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // not logged in
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credential
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	c.Token = stripBearer(c.Token)
	return &c, nil
}

// Save persists the token with owner-only permissions. When the server
// did not hand back an expiry, it is recovered from the token's exp claim
// where possible.
func (s *Store) Save(token string, expires *time.Time) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if expires == nil {
		expires = expiryFromToken(token)
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	c := Credential{
		Token:     token,
		Source:    "file",
		CreatedAt: time.Now(),
		ExpiresAt: expires,
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(s.path(), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Clear removes the stored credential. Clearing an empty slot is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// expiryFromToken extracts the exp claim without verifying the signature.
// The remote service issues JWTs; verification is its job, not ours.
func expiryFromToken(token string) *time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time
	return &t
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
