// Package auth wraps the external identity provider as an opaque capability.
// Session issuance and token refresh stay the provider's concern; this
// package only exposes sign-up, sign-in, and token verification.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// User is the provider's view of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an issued access token plus its owner.
type Session struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

// Identity is the identity-provider capability.
type Identity interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	Verify(ctx context.Context, accessToken string) (*User, error)
}

// ProviderError carries the provider's status and message verbatim.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity: provider error (status %d): %s", e.Status, e.Message)
}

// GoTrueClient talks to a GoTrue-compatible identity endpoint over REST.
type GoTrueClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewGoTrueClient(baseURL, apiKey string) *GoTrueClient {
	return &GoTrueClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *GoTrueClient) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.token(ctx, "/signup", credentials{Email: email, Password: password})
}

func (c *GoTrueClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.token(ctx, "/token?grant_type=password", credentials{Email: email, Password: password})
}

func (c *GoTrueClient) token(ctx context.Context, path string, creds credentials) (*Session, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, providerError(resp)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("identity: decode session: %w", err)
	}
	return &session, nil
}

// Verify resolves an access token to its user, or a ProviderError when the
// token is invalid or expired.
func (c *GoTrueClient) Verify(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, providerError(resp)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("identity: decode user: %w", err)
	}
	return &user, nil
}

func providerError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &ProviderError{Status: resp.StatusCode, Message: string(msg)}
}
