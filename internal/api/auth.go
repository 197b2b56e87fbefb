package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/shiftdesk/shiftdesk/internal/apperr"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// Login exchanges credentials for an access token. A 401 here means bad
// credentials rather than an expired session.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return LoginResponse{}, apperr.Wrap(err)
	}
	var out LoginResponse
	if err := c.do(req, "", &out); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.KindAuth {
			return LoginResponse{}, apperr.Auth("invalid email or password")
		}
		return LoginResponse{}, err
	}
	return out, nil
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register creates an account. Kept for the dev workflow against the stub
// server; the production backend restricts it.
func (c *Client) Register(ctx context.Context, email, password, role string) (RegisterResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", RegisterRequest{Email: email, Password: password, Role: role})
	if err != nil {
		return RegisterResponse{}, apperr.Wrap(err)
	}
	var out RegisterResponse
	if err := c.do(req, "", &out); err != nil {
		return RegisterResponse{}, err
	}
	return out, nil
}
