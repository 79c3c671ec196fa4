// Package config loads dealboard's YAML configuration
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for values the user rarely sets
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultSessionTTL     = 24 * time.Hour
	DefaultRecentLimit    = 50
)

// Config represents the application configuration
type Config struct {
	Identity    IdentityConfig `yaml:"identity"`
	Webhooks    WebhookConfig  `yaml:"webhooks"`
	Board       BoardConfig    `yaml:"board"`
	Session     SessionConfig  `yaml:"session"`
	LogLevel    string         `yaml:"log_level"`
	KeyMappings KeyMappings    `yaml:"key_mappings"`
	Theme       Theme          `yaml:"theme"`
}

// IdentityConfig points at the hosted auth service
type IdentityConfig struct {
	URL     string `yaml:"url"`      // project URL, e.g. https://xyz.supabase.co
	AnonKey string `yaml:"anon_key"` // public API key sent with every request
	// RedirectURL is where password-reset emails send the user back to
	RedirectURL string `yaml:"redirect_url"`
}

// WebhookConfig holds the workflow endpoints
type WebhookConfig struct {
	FollowUp    string        `yaml:"follow_up"`
	Blacklist   string        `yaml:"blacklist"`
	RecentLeads string        `yaml:"recent_leads"`
	Scraper     string        `yaml:"scraper"`
	Timeout     time.Duration `yaml:"timeout"`
	RecentLimit int           `yaml:"recent_limit"`
}

// BoardConfig controls the pipeline board
type BoardConfig struct {
	// SeedFile replaces the built-in pipelines with a JSONC file
	SeedFile    string `yaml:"seed_file"`
	ColumnWidth int    `yaml:"column_width"`
}

// SessionConfig controls the local session blob
type SessionConfig struct {
	TTL    time.Duration `yaml:"ttl"`
	DBPath string        `yaml:"db_path"`
}

// Default returns a config with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads config from the user's config directory.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom reads a specific config file. A missing file yields defaults.
func LoadFrom(configPath string) (*Config, error) {
	cfg, err := readFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile is LoadFrom without environment overrides, for editing the file
func LoadFile(configPath string) (*Config, error) {
	cfg, err := readFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func readFile(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", configPath, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", configPath, err)
		}
	}
	return &cfg, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config to configPath, creating its directory
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// the anon key is public, but webhook URLs often embed secrets
	return os.WriteFile(configPath, data, 0o600)
}

// Path returns the path to the config file
func Path() (string, error) {
	if p := os.Getenv("DEALBOARD_CONFIG"); p != "" {
		return p, nil
	}

	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "dealboard", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "dealboard", "config.yaml"), nil
}

// applyEnv lets DEALBOARD_* variables override file values
func (c *Config) applyEnv() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"DEALBOARD_IDENTITY_URL", &c.Identity.URL},
		{"DEALBOARD_IDENTITY_ANON_KEY", &c.Identity.AnonKey},
		{"DEALBOARD_WEBHOOK_FOLLOW_UP", &c.Webhooks.FollowUp},
		{"DEALBOARD_WEBHOOK_BLACKLIST", &c.Webhooks.Blacklist},
		{"DEALBOARD_WEBHOOK_RECENT_LEADS", &c.Webhooks.RecentLeads},
		{"DEALBOARD_WEBHOOK_SCRAPER", &c.Webhooks.Scraper},
		{"DEALBOARD_SEED_FILE", &c.Board.SeedFile},
		{"DEALBOARD_LOG_LEVEL", &c.LogLevel},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}

	if v := os.Getenv("DEALBOARD_WEBHOOK_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.Webhooks.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Webhooks.Timeout <= 0 {
		c.Webhooks.Timeout = DefaultRequestTimeout
	}
	if c.Webhooks.RecentLimit <= 0 {
		c.Webhooks.RecentLimit = DefaultRecentLimit
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = DefaultSessionTTL
	}
	if c.Board.ColumnWidth <= 0 {
		c.Board.ColumnWidth = 30
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.KeyMappings.applyDefaults()
	c.Theme.ApplyDefaults()
}

// ValidateURL checks that an endpoint is an absolute https URL with a host
func ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("url is not configured")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("url %q must use https", raw)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}
