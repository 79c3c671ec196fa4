package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

const testAnonKey = "anon-key"

var fixedNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewTLSServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		URL:        server.URL,
		AnonKey:    testAnonKey,
		Timeout:    time.Second,
		HTTPClient: server.Client(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:        func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return client
}

const userJSON = `{
	"id": "u-1",
	"email": "ada@example.com",
	"created_at": "2025-01-01T00:00:00Z",
	"last_sign_in_at": "2026-03-31T08:00:00Z",
	"user_metadata": {"full_name": "Ada Lovelace", "company": "", "avatar_url": null, "theme": "dark"}
}`

const sessionJSON = `{
	"access_token": "at-123",
	"token_type": "bearer",
	"expires_in": 3600,
	"refresh_token": "rt-456",
	"user": ` + userJSON + `
}`

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// ============================================================================
// CONSTRUCTION
// ============================================================================

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(Config{URL: "http://abc.supabase.co", AnonKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https")
}

// ============================================================================
// SIGN IN / SIGN UP
// ============================================================================

func TestSignIn(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, testAnonKey, r.Header.Get("apikey"))

		var creds credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ada@example.com", creds.Email)
		assert.Equal(t, "secret", creds.Password)

		writeJSON(w, http.StatusOK, sessionJSON)
	})
	client := newTestClient(t, mux)

	session, err := client.SignIn(context.Background(), " ada@example.com ", "secret")
	require.NoError(t, err)

	assert.Equal(t, "at-123", session.AccessToken)
	assert.Equal(t, "rt-456", session.RefreshToken)
	assert.True(t, session.ExpiresAt.Equal(fixedNow.Add(time.Hour)))

	user := session.User
	assert.Equal(t, "u-1", user.ID)
	require.NotNil(t, user.FullName)
	assert.Equal(t, "Ada Lovelace", *user.FullName)
	assert.Nil(t, user.Company, "empty metadata becomes nil")
	assert.Nil(t, user.AvatarURL)
	require.NotNil(t, user.LastSignInAt)
}

func TestSignInProviderError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)
	})
	client := newTestClient(t, mux)

	_, err := client.SignIn(context.Background(), "ada@example.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
	assert.Equal(t, "invalid_grant", apiErr.Code)
}

func TestSignInRequiresCredentials(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, http.NewServeMux())

	_, err := client.SignIn(context.Background(), "", "x")
	assert.ErrorIs(t, err, ErrMissingEmail)
	_, err = client.SignIn(context.Background(), "a@b.test", "")
	assert.ErrorIs(t, err, ErrMissingPassword)
}

func TestSignUpWithConfirmation(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Analytical Engines", data["company"])

		writeJSON(w, http.StatusOK, userJSON)
	})
	client := newTestClient(t, mux)

	user, session, err := client.SignUp(context.Background(), "ada@example.com", "secret", Profile{Company: "Analytical Engines"})
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, "u-1", user.ID)
}

func TestSignUpWithAutoConfirm(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionJSON)
	})
	client := newTestClient(t, mux)

	user, session, err := client.SignUp(context.Background(), "ada@example.com", "secret", Profile{})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "at-123", session.AccessToken)
	assert.Equal(t, "u-1", user.ID)
}

// ============================================================================
// TOKEN-BEARING CALLS
// ============================================================================

func TestGetUserUsesBearer(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer at-123", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, userJSON)
	})
	client := newTestClient(t, mux)

	user, err := client.GetUser(context.Background(), "at-123")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = client.GetUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestUpdatePassword(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "n3w", body["password"])
		writeJSON(w, http.StatusOK, userJSON)
	})
	client := newTestClient(t, mux)

	_, err := client.UpdatePassword(context.Background(), "at-123", "n3w")
	require.NoError(t, err)

	_, err = client.UpdatePassword(context.Background(), "at-123", "")
	assert.ErrorIs(t, err, ErrMissingPassword)
}

func TestSignOut(t *testing.T) {
	t.Parallel()

	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "Bearer at-123", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, mux)

	require.NoError(t, client.SignOut(context.Background(), "at-123"))
	assert.True(t, called)
}

// ============================================================================
// PASSWORD RECOVERY
// ============================================================================

func TestResetPasswordForEmail(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/recover", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://app.example.com/reset", r.URL.Query().Get("redirect_to"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		writeJSON(w, http.StatusOK, `{}`)
	})
	client := newTestClient(t, mux)

	err := client.ResetPasswordForEmail(context.Background(), "ada@example.com", "https://app.example.com/reset")
	require.NoError(t, err)
}

func TestExchangeRecoveryTokenPassesTokenThrough(t *testing.T) {
	t.Parallel()

	const token = "pkce_abc+/=="
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/verify", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "recovery", body["type"])
		assert.Equal(t, token, body["token_hash"])
		writeJSON(w, http.StatusOK, sessionJSON)
	})
	client := newTestClient(t, mux)

	session, err := client.ExchangeRecoveryToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "at-123", session.AccessToken)
}

func TestExchangeRecoveryTokenWithoutSession(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/verify", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	})
	client := newTestClient(t, mux)

	_, err := client.ExchangeRecoveryToken(context.Background(), "t")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		writeJSON(w, http.StatusOK, sessionJSON)
	})
	client := newTestClient(t, mux)

	session, err := client.Refresh(context.Background(), "rt-456")
	require.NoError(t, err)
	assert.Equal(t, "rt-456", session.RefreshToken)
}

// ============================================================================
// ERROR PARSING
// ============================================================================

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		message string
		code    string
	}{
		{"oauth style", 400, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`, "Invalid login credentials", "invalid_grant"},
		{"msg style", 422, `{"code":422,"error_code":"weak_password","msg":"Password should be at least 6 characters"}`, "Password should be at least 6 characters", "weak_password"},
		{"message style", 429, `{"message":"Too many requests"}`, "Too many requests", ""},
		{"not json", 502, `<html>bad gateway</html>`, "Bad Gateway", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := parseAPIError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}
