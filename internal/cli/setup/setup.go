// Package setup holds the cli command that writes the config file
// e.g., dealboard setup ...
package setup

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/config"
)

// endpoint ties a webhook flag to its config field
type endpoint struct {
	flag string
	path string // appended to --webhook-base
	get  func(*config.WebhookConfig) *string
}

var endpoints = []endpoint{
	{"follow-up", "follow-up", func(w *config.WebhookConfig) *string { return &w.FollowUp }},
	{"blacklist", "blacklist", func(w *config.WebhookConfig) *string { return &w.Blacklist }},
	{"recent-leads", "recent-leads", func(w *config.WebhookConfig) *string { return &w.RecentLeads }},
	{"scraper", "scraper", func(w *config.WebhookConfig) *string { return &w.Scraper }},
}

// SetupCmd returns the setup command
func SetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Point dealboard at your identity service and workflow webhooks",
		Long: `Write the identity and webhook settings into the config file. Only the
flags you pass change; everything else in the file is kept.

Examples:
  # Configure the identity service
  dealboard setup --identity-url=https://xyz.supabase.co --anon-key=eyJhbGci...

  # All four webhooks under one n8n instance (<base>/follow-up, <base>/blacklist, ...)
  dealboard setup --webhook-base=https://flows.example.com/webhook

  # Show what is configured
  dealboard setup --check
`,
		RunE: handler.Command(handler.Func(runSetup), parseSetupFlags),
	}

	cmd.Flags().String("identity-url", "", "Identity service project URL")
	cmd.Flags().String("anon-key", "", "Identity service public API key")
	cmd.Flags().String("redirect-url", "", "Where password-reset emails link back to")
	cmd.Flags().String("webhook-base", "", "Base URL for all four webhooks")
	for _, e := range endpoints {
		cmd.Flags().String(e.flag, "", fmt.Sprintf("URL of the %s webhook", e.flag))
	}
	cmd.Flags().String("seed-file", "", "JSONC file that replaces the built-in pipelines")
	cmd.Flags().Bool("check", false, "Only report what is configured")

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseSetupFlags(cmd *cobra.Command) error {
	for _, name := range []string{"identity-url", "redirect-url", "webhook-base", "follow-up", "blacklist", "recent-leads", "scraper"} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		raw, _ := cmd.Flags().GetString(name)
		if err := config.ValidateURL(strings.TrimSpace(raw)); err != nil {
			return cli.Usagef("--%s: %v", name, err)
		}
	}
	return nil
}

func runSetup(ctx context.Context, args *handler.Arguments) (any, error) {
	path := cli.ConfigPathFromContext(ctx)
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return nil, fmt.Errorf("locating config file: %w", err)
		}
		path = p
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	if args.GetBool("check") {
		return newStatus(path, cfg, false), nil
	}

	changed := apply(cfg, args)
	if !changed {
		return nil, cli.Usagef("nothing to change; pass at least one setting or --check")
	}
	if err := cfg.SaveTo(path); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return newStatus(path, cfg, true), nil
}

// apply copies set flags into cfg and reports whether anything changed
func apply(cfg *config.Config, args *handler.Arguments) bool {
	changed := false
	set := func(flag string, field *string) {
		if v := args.StringPtr(flag); v != nil {
			*field = strings.TrimSpace(*v)
			changed = true
		}
	}

	set("identity-url", &cfg.Identity.URL)
	set("anon-key", &cfg.Identity.AnonKey)
	set("redirect-url", &cfg.Identity.RedirectURL)
	set("seed-file", &cfg.Board.SeedFile)

	if base := args.StringPtr("webhook-base"); base != nil {
		root := strings.TrimRight(strings.TrimSpace(*base), "/")
		for _, e := range endpoints {
			*e.get(&cfg.Webhooks) = root + "/" + e.path
		}
		changed = true
	}
	// explicit endpoint flags win over the base
	for _, e := range endpoints {
		set(e.flag, e.get(&cfg.Webhooks))
	}
	return changed
}

type status struct {
	Path     string          `json:"path"`
	Saved    bool            `json:"saved"`
	Identity bool            `json:"identity"`
	Webhooks map[string]bool `json:"webhooks"`
	SeedFile string          `json:"seed_file,omitempty"`
}

func newStatus(path string, cfg *config.Config, saved bool) status {
	s := status{
		Path:     path,
		Saved:    saved,
		Identity: cfg.Identity.URL != "" && cfg.Identity.AnonKey != "",
		Webhooks: make(map[string]bool, len(endpoints)),
		SeedFile: cfg.Board.SeedFile,
	}
	for _, e := range endpoints {
		s.Webhooks[e.flag] = config.ValidateURL(*e.get(&cfg.Webhooks)) == nil
	}
	return s
}

// GetID implements quiet output
func (s status) GetID() string {
	return s.Path
}

// Render implements cli.Renderer
func (s status) Render(w io.Writer) error {
	mark := func(ok bool) string {
		if ok {
			return styles.SuccessStyle.Render("✓ configured")
		}
		return styles.ErrorStyle.Render("✗ missing")
	}

	if s.Saved {
		fmt.Fprintf(w, "✓ Wrote %s\n\n", s.Path)
	} else {
		fmt.Fprintf(w, "%s %s\n\n", styles.LabelStyle.Render("Config:"), s.Path)
	}
	fmt.Fprintf(w, "  %-14s %s\n", "identity", mark(s.Identity))
	for _, e := range endpoints {
		fmt.Fprintf(w, "  %-14s %s\n", e.flag, mark(s.Webhooks[e.flag]))
	}
	if s.SeedFile != "" {
		fmt.Fprintf(w, "  %-14s %s\n", "seed file", s.SeedFile)
	}
	return nil
}
