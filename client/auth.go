package client

import (
	"context"
	"net/http"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is what the signup form sends; the password confirmation and
// terms checkbox stay on the client.
type Registration struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type User struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// AuthResponse is the body of a successful login or registration.
type AuthResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, r Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout ends the session; the backend expires the cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

func (c *Client) Profile(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/api/profile", nil, &u)
	return u, err
}
