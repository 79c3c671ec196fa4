package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/cli"
	clitest "github.com/thenoetrevino/dealboard/internal/testutil/cli"
)

// ============================================================================
// Test Helpers
// ============================================================================

const (
	goodPassword = "correct-horse"
	userBody     = `{"id":"u-1","email":"ada@example.com","created_at":"2025-01-01T00:00:00Z",
		"user_metadata":{"full_name":"Ada Lovelace","company":"Analytical Engines"}}`
	sessionBody = `{"access_token":"at-1","refresh_token":"rt-1","expires_in":3600,"user":` + userBody + `}`
)

// identityServer fakes the identity REST endpoints dealboard calls
type identityServer struct {
	mu         sync.Mutex
	signupBody string // response for /signup; a bare user means confirmation is required
	loggedOut  bool
	newPass    string
	tokenHash  string
	resetEmail string
}

func (s *identityServer) handler() http.Handler {
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
	decode := func(r *http.Request) map[string]any {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		return body
	}

	mux.HandleFunc("POST /auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		if decode(r)["password"] != goodPassword {
			write(w, http.StatusBadRequest, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)
			return
		}
		write(w, http.StatusOK, sessionBody)
	})
	mux.HandleFunc("POST /auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		write(w, http.StatusOK, s.signupBody)
	})
	mux.HandleFunc("POST /auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.loggedOut = r.Header.Get("Authorization") == "Bearer at-1"
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, strings.Replace(userBody, "Ada Lovelace", "Ada King", 1))
	})
	mux.HandleFunc("PUT /auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		password, _ := decode(r)["password"].(string)
		s.mu.Lock()
		s.newPass = password
		s.mu.Unlock()
		write(w, http.StatusOK, userBody)
	})
	mux.HandleFunc("POST /auth/v1/recover", func(w http.ResponseWriter, r *http.Request) {
		email, _ := decode(r)["email"].(string)
		s.mu.Lock()
		s.resetEmail = email
		s.mu.Unlock()
		write(w, http.StatusOK, `{}`)
	})
	mux.HandleFunc("POST /auth/v1/verify", func(w http.ResponseWriter, r *http.Request) {
		hash, _ := decode(r)["token_hash"].(string)
		s.mu.Lock()
		s.tokenHash = hash
		s.mu.Unlock()
		write(w, http.StatusOK, sessionBody)
	})
	return mux
}

type identityState struct {
	loggedOut  bool
	newPass    string
	tokenHash  string
	resetEmail string
}

// snapshot copies the recorded fields under the lock
func (s *identityServer) snapshot() identityState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return identityState{loggedOut: s.loggedOut, newPass: s.newPass, tokenHash: s.tokenHash, resetEmail: s.resetEmail}
}

func setupIdentity(t *testing.T) (*app.App, *identityServer) {
	t.Helper()
	srv := &identityServer{signupBody: userBody}
	cfg, opt := clitest.RemoteServer(t, srv.handler())
	return clitest.SetupCLITestWithConfig(t, cfg, opt), srv
}

func login(t *testing.T, a *app.App) {
	t.Helper()
	_, err := clitest.ExecuteCLICommand(t, a, LoginCmd(), []string{"--email", "ada@example.com", "--password", goodPassword})
	require.NoError(t, err)
}

// ============================================================================
// login / whoami / logout
// ============================================================================

func TestLogin(t *testing.T) {
	a, _ := setupIdentity(t)

	cmd := LoginCmd()
	cmd.SetIn(strings.NewReader(goodPassword + "\n"))
	out, err := clitest.ExecuteCLICommand(t, a, cmd, []string{"--email", "ada@example.com", "--password-stdin", "--json"})
	require.NoError(t, err)

	var result struct {
		User struct {
			ID       string `json:"id"`
			FullName string `json:"full_name"`
		} `json:"user"`
		AccessToken string `json:"access_token"`
	}
	clitest.DecodeData(t, out, &result)
	assert.Equal(t, "u-1", result.User.ID)
	assert.Equal(t, "Ada Lovelace", result.User.FullName)
	assert.Empty(t, result.AccessToken, "tokens are never printed")

	out, err = clitest.ExecuteCLICommand(t, a, WhoamiCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Analytical Engines")
}

func TestLogin_PasswordFromEnv(t *testing.T) {
	a, _ := setupIdentity(t)
	t.Setenv(PasswordEnv, goodPassword)

	out, err := clitest.ExecuteCLICommand(t, a, LoginCmd(), []string{"--email", "ada@example.com", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "u-1\n", out)
}

func TestLogin_Failures(t *testing.T) {
	a, _ := setupIdentity(t)
	t.Setenv(PasswordEnv, "")

	t.Run("wrong password carries the provider message", func(t *testing.T) {
		res := clitest.Run(t, a, LoginCmd(), []string{"--email", "ada@example.com", "--password", "nope"})
		require.Error(t, res.Err)
		assert.Equal(t, cli.ExitError, res.ExitCode())
		assert.Contains(t, res.Stderr, "Invalid login credentials")
	})

	t.Run("no password anywhere", func(t *testing.T) {
		res := clitest.Run(t, a, LoginCmd(), []string{"--email", "ada@example.com", "--json"})
		assert.Equal(t, cli.ExitUsage, res.ExitCode())
		assert.Equal(t, "INVALID_USAGE", clitest.ErrorCode(t, res.Stdout))
	})

	t.Run("missing email", func(t *testing.T) {
		res := clitest.Run(t, a, LoginCmd(), []string{"--password", goodPassword})
		assert.Equal(t, cli.ExitUsage, res.ExitCode())
	})
}

func TestWhoami_NotSignedIn(t *testing.T) {
	a, _ := setupIdentity(t)

	res := clitest.Run(t, a, WhoamiCmd(), []string{"--json"})
	require.Error(t, res.Err)
	assert.Equal(t, cli.ExitUsage, res.ExitCode())
	assert.Equal(t, "NOT_SIGNED_IN", clitest.ErrorCode(t, res.Stdout))
}

func TestWhoami_Refresh(t *testing.T) {
	a, _ := setupIdentity(t)
	login(t, a)

	out, err := clitest.ExecuteCLICommand(t, a, WhoamiCmd(), []string{"--refresh"})
	require.NoError(t, err)
	assert.Contains(t, out, "Ada King")
}

func TestLogout(t *testing.T) {
	a, srv := setupIdentity(t)
	login(t, a)

	out, err := clitest.ExecuteCLICommand(t, a, LogoutCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")
	assert.True(t, srv.snapshot().loggedOut, "remote token revoked with the session's access token")

	res := clitest.Run(t, a, LogoutCmd(), nil)
	assert.Equal(t, cli.ExitUsage, res.ExitCode(), "second logout has no session")
}

// ============================================================================
// signup
// ============================================================================

func TestSignup(t *testing.T) {
	t.Run("needs confirmation", func(t *testing.T) {
		a, _ := setupIdentity(t)

		out, err := clitest.ExecuteCLICommand(t, a, SignupCmd(), []string{
			"--email", "ada@example.com", "--full-name", "Ada Lovelace", "--password", goodPassword,
		})
		require.NoError(t, err)
		assert.Contains(t, out, "Check ada@example.com for a confirmation link")

		res := clitest.Run(t, a, WhoamiCmd(), nil)
		assert.Error(t, res.Err, "no session until the email is confirmed")
	})

	t.Run("auto confirmed", func(t *testing.T) {
		a, srv := setupIdentity(t)
		srv.mu.Lock()
		srv.signupBody = sessionBody
		srv.mu.Unlock()

		out, err := clitest.ExecuteCLICommand(t, a, SignupCmd(), []string{"--email", "ada@example.com", "--password", goodPassword, "--json"})
		require.NoError(t, err)

		var result signupResult
		clitest.DecodeData(t, out, &result)
		assert.False(t, result.NeedsConfirmation)

		_, err = clitest.ExecuteCLICommand(t, a, WhoamiCmd(), nil)
		assert.NoError(t, err)
	})

	t.Run("password rules", func(t *testing.T) {
		a, _ := setupIdentity(t)

		res := clitest.Run(t, a, SignupCmd(), []string{"--email", "ada@example.com", "--password", "short"})
		assert.Equal(t, cli.ExitValidation, res.ExitCode())

		res = clitest.Run(t, a, SignupCmd(), []string{"--email", "ada@example.com", "--password", goodPassword, "--confirm", "different"})
		assert.Equal(t, cli.ExitValidation, res.ExitCode())
		assert.Contains(t, res.Stderr, "passwords do not match")
	})
}

// ============================================================================
// password / reset / recover
// ============================================================================

func TestPasswordChange(t *testing.T) {
	a, srv := setupIdentity(t)
	login(t, a)

	out, err := clitest.ExecuteCLICommand(t, a, PasswordCmd(), []string{"--password", "a-new-password"})
	require.NoError(t, err)
	assert.Contains(t, out, "Password changed")
	assert.Equal(t, "a-new-password", srv.snapshot().newPass)
}

func TestReset(t *testing.T) {
	a, srv := setupIdentity(t)

	out, err := clitest.ExecuteCLICommand(t, a, ResetCmd(), []string{"--email", "ada@example.com"})
	require.NoError(t, err)
	assert.Contains(t, out, "reset link is on its way")
	assert.Equal(t, "ada@example.com", srv.snapshot().resetEmail)
}

func TestRecover(t *testing.T) {
	a, srv := setupIdentity(t)

	out, err := clitest.ExecuteCLICommand(t, a, RecoverCmd(), []string{"--token", "pkce_a+b/c=", "--password", "a-new-password", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "u-1\n", out)
	assert.Equal(t, "pkce_a+b/c=", srv.snapshot().tokenHash)
	assert.Equal(t, "a-new-password", srv.snapshot().newPass)

	_, err = clitest.ExecuteCLICommand(t, a, WhoamiCmd(), nil)
	assert.NoError(t, err, "recovery signs the user in")
}

func TestIdentityDisabled(t *testing.T) {
	a := clitest.SetupCLITest(t)

	res := clitest.Run(t, a, LoginCmd(), []string{"--email", "ada@example.com", "--password", goodPassword, "--json"})
	require.Error(t, res.Err)
	assert.Equal(t, "IDENTITY_DISABLED", clitest.ErrorCode(t, res.Stdout))
}
