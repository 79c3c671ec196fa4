// Package auth talks to the hosted identity service over its REST API
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thenoetrevino/dealboard/internal/config"
	"github.com/thenoetrevino/dealboard/internal/models"
)

const maxResponseBytes = 1 << 20

// Config holds configuration for creating an identity Client
type Config struct {
	// URL is the project URL; requests go to URL + "/auth/v1"
	URL     string
	AnonKey string

	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	Now        func() time.Time
}

// ConfigFrom maps the application config onto a client config
func ConfigFrom(cfg config.IdentityConfig, timeout time.Duration) Config {
	return Config{URL: cfg.URL, AnonKey: cfg.AnonKey, Timeout: timeout}
}

// Client is a thin identity-service client. Tokens pass through untouched.
type Client struct {
	baseURL    string
	anonKey    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient validates the project URL and builds a client
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.AnonKey == "" {
		return nil, ErrNotConfigured
	}
	if err := config.ValidateURL(cfg.URL); err != nil {
		return nil, fmt.Errorf("identity url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/") + "/auth/v1",
		anonKey:    cfg.AnonKey,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
		now:        now,
	}, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c credentials) validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return ErrMissingEmail
	}
	if c.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

// SignIn exchanges an email and password for a session
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	creds := credentials{Email: strings.TrimSpace(email), Password: password}
	if err := creds.validate(); err != nil {
		return nil, err
	}

	var resp apiSession
	query := url.Values{"grant_type": []string{"password"}}
	if err := c.do(ctx, http.MethodPost, "/token", query, "", creds, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		return nil, ErrNoSession
	}

	c.logger.Info("signed in", "user_id", resp.User.ID)
	return resp.toSession(c.now()), nil
}

// SignUp registers a new account. When the provider requires email
// confirmation no session is returned and the session result is nil.
func (c *Client) SignUp(ctx context.Context, email, password string, profile Profile) (*models.User, *Session, error) {
	creds := credentials{Email: strings.TrimSpace(email), Password: password}
	if err := creds.validate(); err != nil {
		return nil, nil, err
	}

	body := struct {
		credentials
		Data Profile `json:"data"`
	}{credentials: creds, Data: profile}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/signup", nil, "", body, &raw); err != nil {
		return nil, nil, err
	}

	// with auto-confirm the provider answers with a session, otherwise with the bare user
	var withSession apiSession
	if err := json.Unmarshal(raw, &withSession); err == nil && withSession.AccessToken != "" && withSession.User != nil {
		session := withSession.toSession(c.now())
		user := session.User
		return &user, session, nil
	}

	var user apiUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, nil, fmt.Errorf("decoding sign-up response: %w", err)
	}
	if user.ID == "" {
		return nil, nil, fmt.Errorf("decoding sign-up response: no user id")
	}
	model := user.toModel()
	return &model, nil, nil
}

// SignOut revokes the access token on the provider side
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return ErrMissingToken
	}
	return c.do(ctx, http.MethodPost, "/logout", nil, accessToken, nil, nil)
}

// GetUser returns the user behind an access token
func (c *Client) GetUser(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, ErrMissingToken
	}

	var user apiUser
	if err := c.do(ctx, http.MethodGet, "/user", nil, accessToken, nil, &user); err != nil {
		return nil, err
	}
	model := user.toModel()
	return &model, nil
}

// UpdatePassword sets a new password for the signed-in user
func (c *Client) UpdatePassword(ctx context.Context, accessToken, password string) (*models.User, error) {
	if accessToken == "" {
		return nil, ErrMissingToken
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	var user apiUser
	body := map[string]string{"password": password}
	if err := c.do(ctx, http.MethodPut, "/user", nil, accessToken, body, &user); err != nil {
		return nil, err
	}
	model := user.toModel()
	return &model, nil
}

// ResetPasswordForEmail sends a recovery email whose link returns to redirectTo
func (c *Client) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrMissingEmail
	}

	var query url.Values
	if redirectTo != "" {
		query = url.Values{"redirect_to": []string{redirectTo}}
	}
	return c.do(ctx, http.MethodPost, "/recover", query, "", map[string]string{"email": email}, nil)
}

// ExchangeRecoveryToken turns the token from a password-reset link into a
// session. The token is forwarded exactly as received.
func (c *Client) ExchangeRecoveryToken(ctx context.Context, tokenHash string) (*Session, error) {
	if tokenHash == "" {
		return nil, ErrMissingToken
	}

	var resp apiSession
	body := map[string]string{"type": "recovery", "token_hash": tokenHash}
	if err := c.do(ctx, http.MethodPost, "/verify", nil, "", body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		return nil, ErrNoSession
	}
	return resp.toSession(c.now()), nil
}

// Refresh trades a refresh token for a new session
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, ErrMissingToken
	}

	var resp apiSession
	query := url.Values{"grant_type": []string{"refresh_token"}}
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/token", query, "", body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		return nil, ErrNoSession
	}
	return resp.toSession(c.now()), nil
}

// do sends one request. bearer defaults to the anon key. out may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, bearer string, payload, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("identity service timed out: %w", err)
		}
		return fmt.Errorf("identity service unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading identity response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseAPIError(resp.StatusCode, data)
		c.logger.Warn("identity call failed", "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding identity response: %w", err)
	}
	return nil
}

// parseAPIError reads whichever of the provider's error shapes is present
func parseAPIError(status int, body []byte) *APIError {
	var shape struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		ErrorCode        string `json:"error_code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	_ = json.Unmarshal(body, &shape)

	apiErr := &APIError{StatusCode: status, Code: shape.ErrorCode}
	for _, candidate := range []string{shape.ErrorDescription, shape.Msg, shape.Message, shape.Error} {
		if candidate != "" {
			apiErr.Message = candidate
			break
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	if apiErr.Code == "" && shape.ErrorDescription != "" {
		apiErr.Code = shape.Error
	}
	return apiErr
}
