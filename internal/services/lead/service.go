package lead

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/webhook"
)

const (
	MaxLimit          = 500
	maxMessageLength  = 1000
	defaultFollowUpIn = 3 * 24 * time.Hour
)

var domainPattern = regexp.MustCompile(`(?i)^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)+$`)

// Client is the slice of the webhook client the service needs
type Client interface {
	SubmitFollowUp(ctx context.Context, followUp models.FollowUp) error
	SubmitBlacklist(ctx context.Context, entry models.BlacklistEntry) error
	SubmitScrape(ctx context.Context, query models.ScrapeQuery) (*webhook.ScrapeAck, error)
	FetchRecentLeads(ctx context.Context, limit int) ([]models.Lead, error)
}

// Service defines all lead-related business operations
type Service interface {
	ScheduleFollowUp(ctx context.Context, req FollowUpRequest) (models.FollowUp, error)
	Blacklist(ctx context.Context, req BlacklistRequest) (models.BlacklistEntry, error)
	Scrape(ctx context.Context, req ScrapeRequest) (*webhook.ScrapeAck, error)
	RecentLeads(ctx context.Context, req RecentLeadsRequest) ([]models.Lead, error)
}

// FollowUpRequest asks for a reminder about a contact
type FollowUpRequest struct {
	Email   string
	Name    string
	Message string
	DueAt   time.Time // Optional: zero means three days from now
}

// BlacklistRequest excludes an email, a domain, or both
type BlacklistRequest struct {
	Email  string
	Domain string
	Reason string
}

// ScrapeRequest starts a scraping run
type ScrapeRequest struct {
	Keyword  string
	Location string
	Limit    int
}

// RecentLeadsRequest fetches, then filters and sorts locally
type RecentLeadsRequest struct {
	Limit  int
	Filter string
	Sort   SortOrder
}

// service implements Service interface
type service struct {
	client Client
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates a new lead service
func NewService(client Client, logger *slog.Logger) Service {
	return newService(client, logger, time.Now)
}

func newService(client Client, logger *slog.Logger, now func() time.Time) *service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{client: client, now: now, logger: logger}
}

// ScheduleFollowUp validates the contact and posts the reminder
func (s *service) ScheduleFollowUp(ctx context.Context, req FollowUpRequest) (models.FollowUp, error) {
	email, err := ValidateEmail(req.Email)
	if err != nil {
		return models.FollowUp{}, err
	}
	message := strings.TrimSpace(req.Message)
	if len(message) > maxMessageLength {
		return models.FollowUp{}, ErrMessageTooLong
	}

	now := s.now()
	due := req.DueAt
	if due.IsZero() {
		due = now.Add(defaultFollowUpIn)
	}
	if due.Before(now) {
		return models.FollowUp{}, ErrDueDateInThePast
	}

	followUp := models.FollowUp{
		Email:   email,
		Name:    strings.TrimSpace(req.Name),
		Message: message,
		DueAt:   due.UTC(),
	}
	if err := s.client.SubmitFollowUp(ctx, followUp); err != nil {
		return models.FollowUp{}, fmt.Errorf("scheduling follow-up: %w", err)
	}

	s.logger.Info("follow-up scheduled", "email", email, "due_at", followUp.DueAt)
	return followUp, nil
}

// Blacklist validates whichever of email and domain is present and posts it
func (s *service) Blacklist(ctx context.Context, req BlacklistRequest) (models.BlacklistEntry, error) {
	entry := models.BlacklistEntry{Reason: strings.TrimSpace(req.Reason)}

	if strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Domain) == "" {
		return models.BlacklistEntry{}, ErrEmptyBlacklist
	}
	if strings.TrimSpace(req.Email) != "" {
		email, err := ValidateEmail(req.Email)
		if err != nil {
			return models.BlacklistEntry{}, err
		}
		entry.Email = email
	}
	if strings.TrimSpace(req.Domain) != "" {
		domain, err := ValidateDomain(req.Domain)
		if err != nil {
			return models.BlacklistEntry{}, err
		}
		entry.Domain = domain
	}

	if err := s.client.SubmitBlacklist(ctx, entry); err != nil {
		return models.BlacklistEntry{}, fmt.Errorf("submitting blacklist: %w", err)
	}

	s.logger.Info("blacklist submitted", "email", entry.Email, "domain", entry.Domain)
	return entry, nil
}

// Scrape validates the query and starts the scraper workflow
func (s *service) Scrape(ctx context.Context, req ScrapeRequest) (*webhook.ScrapeAck, error) {
	query := models.ScrapeQuery{
		Keyword:  strings.TrimSpace(req.Keyword),
		Location: strings.TrimSpace(req.Location),
		Limit:    req.Limit,
	}
	if query.Keyword == "" {
		return nil, ErrEmptyKeyword
	}
	if query.Location == "" {
		return nil, ErrEmptyLocation
	}
	if err := validateLimit(query.Limit); err != nil {
		return nil, err
	}

	ack, err := s.client.SubmitScrape(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("starting scrape: %w", err)
	}

	s.logger.Info("scrape started", "keyword", query.Keyword, "location", query.Location, "limit", query.Limit)
	return ack, nil
}

// RecentLeads fetches the newest leads and applies the local filter and sort
func (s *service) RecentLeads(ctx context.Context, req RecentLeadsRequest) ([]models.Lead, error) {
	if err := validateLimit(req.Limit); err != nil {
		return nil, err
	}

	leads, err := s.client.FetchRecentLeads(ctx, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetching recent leads: %w", err)
	}

	leads = FilterLeads(leads, req.Filter)
	SortLeads(leads, req.Sort)
	if len(leads) > req.Limit {
		leads = leads[:req.Limit]
	}
	return leads, nil
}

// ValidateEmail trims and checks a bare address (no display name)
func ValidateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", ErrEmptyEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	at := strings.LastIndex(email, "@")
	if _, err := ValidateDomain(email[at+1:]); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return email, nil
}

// ValidateDomain accepts "example.com" or "@example.com" and returns it lowercased
func ValidateDomain(raw string) (string, error) {
	domain := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "@"))
	if len(domain) > 253 || !domainPattern.MatchString(domain) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, raw)
	}
	return domain, nil
}

func validateLimit(limit int) error {
	if limit < 1 || limit > MaxLimit {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	return nil
}

// SortOrder picks how the recent-leads table is ordered
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortName   SortOrder = "name"
)

// ParseSortOrder accepts the sort names, defaulting to newest
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortName:
		return order, nil
	}
	return "", fmt.Errorf("unknown sort order %q (want newest, oldest, or name)", s)
}

// SortLeads orders leads in place. Ties keep their incoming order.
func SortLeads(leads []models.Lead, order SortOrder) {
	switch order {
	case SortOldest:
		slices.SortStableFunc(leads, func(a, b models.Lead) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortName:
		slices.SortStableFunc(leads, func(a, b models.Lead) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	default:
		slices.SortStableFunc(leads, func(a, b models.Lead) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

// FilterLeads keeps leads whose name, company, email, location, or status
// contains term, ignoring case. A blank term keeps everything.
func FilterLeads(leads []models.Lead, term string) []models.Lead {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return leads
	}
	out := make([]models.Lead, 0, len(leads))
	for _, l := range leads {
		for _, field := range []string{l.Name, l.Company, l.Email, l.Location, l.Status} {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
