// Package webhook calls the external workflow endpoints that back lead actions
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/thenoetrevino/dealboard/internal/config"
	"github.com/thenoetrevino/dealboard/internal/models"
)

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 1 << 20

// Endpoint names one of the workflow webhooks
type Endpoint string

const (
	EndpointFollowUp    Endpoint = "follow-up"
	EndpointBlacklist   Endpoint = "blacklist"
	EndpointRecentLeads Endpoint = "recent-leads"
	EndpointScraper     Endpoint = "scraper"
)

// Config holds configuration for creating a webhook Client
type Config struct {
	FollowUpURL    string
	BlacklistURL   string
	RecentLeadsURL string
	ScraperURL     string

	// Timeout bounds every call. Defaults to config.DefaultRequestTimeout.
	Timeout time.Duration

	// HTTPClient defaults to a client with no timeout of its own.
	HTTPClient *http.Client

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// ConfigFrom maps the application config onto a client config
func ConfigFrom(cfg config.WebhookConfig) Config {
	return Config{
		FollowUpURL:    cfg.FollowUp,
		BlacklistURL:   cfg.Blacklist,
		RecentLeadsURL: cfg.RecentLeads,
		ScraperURL:     cfg.Scraper,
		Timeout:        cfg.Timeout,
	}
}

// Client posts to and reads from the workflow webhooks. It never retries.
type Client struct {
	urls       map[Endpoint]string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// ScrapeAck is the scraper workflow's acknowledgement
type ScrapeAck struct {
	JobID   string `json:"job_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewClient creates a client. URLs are validated per call so a missing
// endpoint only disables the action that needs it.
func NewClient(cfg Config) *Client {
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

	return &Client{
		urls: map[Endpoint]string{
			EndpointFollowUp:    cfg.FollowUpURL,
			EndpointBlacklist:   cfg.BlacklistURL,
			EndpointRecentLeads: cfg.RecentLeadsURL,
			EndpointScraper:     cfg.ScraperURL,
		},
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Configured reports whether endpoint has a usable URL
func (c *Client) Configured(endpoint Endpoint) bool {
	return config.ValidateURL(c.urls[endpoint]) == nil
}

// SubmitFollowUp schedules a follow-up reminder
func (c *Client) SubmitFollowUp(ctx context.Context, followUp models.FollowUp) error {
	_, err := c.do(ctx, EndpointFollowUp, http.MethodPost, nil, followUp)
	return err
}

// SubmitBlacklist adds an email or domain to the scrape blacklist
func (c *Client) SubmitBlacklist(ctx context.Context, entry models.BlacklistEntry) error {
	_, err := c.do(ctx, EndpointBlacklist, http.MethodPost, nil, entry)
	return err
}

// SubmitScrape starts a scraper run
func (c *Client) SubmitScrape(ctx context.Context, query models.ScrapeQuery) (*ScrapeAck, error) {
	body, err := c.do(ctx, EndpointScraper, http.MethodPost, nil, query)
	if err != nil {
		return nil, err
	}

	ack := &ScrapeAck{}
	if len(bytes.TrimSpace(body)) == 0 {
		return ack, nil
	}
	if err := json.Unmarshal(body, ack); err != nil {
		// workflows often answer with plain text
		ack.Message = string(bytes.TrimSpace(body))
	}
	return ack, nil
}

// FetchRecentLeads returns up to limit of the newest leads. A limit of
// zero leaves the choice to the workflow.
func (c *Client) FetchRecentLeads(ctx context.Context, limit int) ([]models.Lead, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}

	body, err := c.do(ctx, EndpointRecentLeads, http.MethodGet, query, nil)
	if err != nil {
		return nil, err
	}

	return decodeLeads(body)
}

// decodeLeads accepts a bare array or an object with a "leads" array and
// requires every lead to carry an id and a name
func decodeLeads(body []byte) ([]models.Lead, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	var leads []models.Lead
	if trimmed[0] == '{' {
		var wrapped struct {
			Leads *[]models.Lead `json:"leads"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if wrapped.Leads == nil {
			return nil, fmt.Errorf("%w: missing leads field", ErrMalformedResponse)
		}
		leads = *wrapped.Leads
	} else if err := json.Unmarshal(trimmed, &leads); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for i, lead := range leads {
		if lead.ID == "" {
			return nil, fmt.Errorf("%w: lead %d has no id", ErrMalformedResponse, i)
		}
		if lead.Name == "" {
			return nil, fmt.Errorf("%w: lead %s has no name", ErrMalformedResponse, lead.ID)
		}
	}

	if leads == nil {
		leads = []models.Lead{}
	}
	return leads, nil
}

// do validates the endpoint URL, sends the request under the client
// timeout, and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, endpoint Endpoint, method string, query url.Values, payload any) ([]byte, error) {
	raw := c.urls[endpoint]
	if err := config.ValidateURL(raw); err != nil {
		return nil, &ValidationError{Field: string(endpoint) + " url", Message: err.Error()}
	}

	target, err := url.Parse(raw)
	if err != nil {
		return nil, &ValidationError{Field: string(endpoint) + " url", Message: err.Error()}
	}
	if len(query) > 0 {
		merged := target.Query()
		for k, vs := range query {
			merged[k] = vs
		}
		target.RawQuery = merged.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &ValidationError{Field: "payload", Message: err.Error()}
		}
		body = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, newNetworkError(endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("webhook request failed", "endpoint", endpoint, "error", err)
		return nil, newNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.Warn("reading webhook response failed", "endpoint", endpoint, "error", err)
		return nil, newNetworkError(endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("webhook returned error status",
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"body", truncate(string(data), 200))
		return nil, &NetworkError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("status %s", resp.Status),
		}
	}

	c.logger.Debug("webhook call succeeded",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start))
	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
