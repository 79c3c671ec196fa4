// Package cli holds helpers for command tests. It lives apart from testutil
// so service tests can import testutil without pulling in the app.
package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/config"
	"github.com/thenoetrevino/dealboard/internal/logging"
	"github.com/thenoetrevino/dealboard/internal/testutil"
)

// SetupCLITest builds an App on an in-memory database with the built-in
// pipelines and nothing remote configured
func SetupCLITest(t *testing.T, opts ...app.Option) *app.App {
	t.Helper()
	return SetupCLITestWithConfig(t, config.Default(), opts...)
}

// SetupCLITestWithConfig is SetupCLITest with a caller-supplied config
func SetupCLITestWithConfig(t *testing.T, cfg *config.Config, opts ...app.Option) *app.App {
	t.Helper()

	db := testutil.SetupTestDB(t)
	base := []app.Option{
		app.WithDB(db),
		app.WithLogger(logging.New(io.Discard, logging.ParseLevel("debug"))),
	}

	a, err := app.New(context.Background(), cfg, append(base, opts...)...)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	t.Cleanup(func() {
		_ = a.Close()
	})
	return a
}

// RemoteServer starts a TLS test server and returns a config whose webhook
// and identity URLs all point at it, plus the option that makes the App
// trust its certificate
func RemoteServer(t *testing.T, h http.Handler) (*config.Config, app.Option) {
	t.Helper()

	srv := httptest.NewTLSServer(h)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.Webhooks.FollowUp = srv.URL + "/webhook/follow-up"
	cfg.Webhooks.Blacklist = srv.URL + "/webhook/blacklist"
	cfg.Webhooks.RecentLeads = srv.URL + "/webhook/recent-leads"
	cfg.Webhooks.Scraper = srv.URL + "/webhook/scraper"
	cfg.Identity.URL = srv.URL
	cfg.Identity.AnonKey = "test-anon-key"

	return cfg, app.WithHTTPClient(srv.Client())
}
