package client

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie the backend keeps its token in.
const SessionCookie = "token"

// Session describes the token currently held in the jar. Its claims are read
// without verification; only the backend can vouch for the token.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ParseSession decodes token's claims.
func ParseSession(token string) (Session, error) {
	var claims sessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Session{}, fmt.Errorf("parse session token: %w", err)
	}
	s := Session{Token: token, Username: claims.Username}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Session returns the session cookie held for the backend, if any.
func (c *Client) Session() (Session, bool) {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name != SessionCookie || ck.Value == "" {
			continue
		}
		s, err := ParseSession(ck.Value)
		if err != nil {
			return Session{Token: ck.Value}, true
		}
		return s, true
	}
	return Session{}, false
}

// Restore seeds the jar with a previously saved token.
func (c *Client) Restore(token string) {
	c.http.Jar.SetCookies(c.base, []*http.Cookie{{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	}})
}

// DefaultSessionFile is where the CLI keeps its token unless configured.
func DefaultSessionFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "inventory-ui", "session"), nil
}

// LoadSession restores the token saved at path into the jar. A missing file
// or an expired token leaves the jar untouched and is not an error.
func (c *Client) LoadSession(path string) (bool, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return false, nil
	}
	if s, err := ParseSession(token); err == nil && s.Expired(time.Now()) {
		return false, nil
	}
	c.Restore(token)
	return true, nil
}

// SaveSession writes the jar's token to path, or removes path when the jar
// holds no session (after a logout, for instance).
func (c *Client) SaveSession(path string) error {
	s, ok := c.Session()
	if !ok {
		return ClearSession(path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.WriteFile(path, []byte(s.Token+"\n"), 0o600); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ClearSession removes the session file; a missing file is fine.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
