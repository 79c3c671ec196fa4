package lead

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/webhook"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// mockClient records every call for later verification
type mockClient struct {
	mu sync.Mutex

	FollowUps []models.FollowUp
	Entries   []models.BlacklistEntry
	Queries   []models.ScrapeQuery
	Limits    []int

	Leads []models.Lead
	Err   error
}

func (m *mockClient) SubmitFollowUp(ctx context.Context, followUp models.FollowUp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FollowUps = append(m.FollowUps, followUp)
	return m.Err
}

func (m *mockClient) SubmitBlacklist(ctx context.Context, entry models.BlacklistEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
	return m.Err
}

func (m *mockClient) SubmitScrape(ctx context.Context, query models.ScrapeQuery) (*webhook.ScrapeAck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return &webhook.ScrapeAck{Status: "queued"}, nil
}

func (m *mockClient) FetchRecentLeads(ctx context.Context, limit int) ([]models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Limits = append(m.Limits, limit)
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Lead(nil), m.Leads...), nil
}

var testNow = time.Date(2026, 2, 10, 15, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*service, *mockClient) {
	t.Helper()
	client := &mockClient{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newService(client, logger, func() time.Time { return testNow }), client
}

func sampleLeads() []models.Lead {
	return []models.Lead{
		{ID: "l1", Name: "bravo dental", Location: "Austin", CreatedAt: testNow.Add(-3 * time.Hour)},
		{ID: "l2", Name: "Alpha Roofing", Email: "hi@alpha.test", CreatedAt: testNow.Add(-1 * time.Hour)},
		{ID: "l3", Name: "Charlie Dental", Status: "contacted", CreatedAt: testNow.Add(-2 * time.Hour)},
	}
}

func ids(leads []models.Lead) []string {
	out := make([]string, 0, len(leads))
	for _, l := range leads {
		out = append(out, string(l.ID))
	}
	return out
}

// ============================================================================
// VALIDATION HELPERS
// ============================================================================

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{" ada@example.com ", "ada@example.com", nil},
		{"first.last+tag@sub.example.co", "first.last+tag@sub.example.co", nil},
		{"", "", ErrEmptyEmail},
		{"ada", "", ErrInvalidEmail},
		{"ada@", "", ErrInvalidEmail},
		{"ada@localhost", "", ErrInvalidEmail},
		{"Ada <ada@example.com>", "", ErrInvalidEmail},
		{"ada@exa mple.com", "", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ValidateEmail(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDomain(t *testing.T) {
	t.Parallel()

	got, err := ValidateDomain(" @Spam.Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "spam.example.com", got)

	for _, bad := range []string{"", "nodot", "-lead.com", "a..b.com", "under_score.com", strings.Repeat("a", 64) + ".com"} {
		_, err := ValidateDomain(bad)
		assert.ErrorIs(t, err, ErrInvalidDomain, bad)
	}
}

// ============================================================================
// FOLLOW-UP
// ============================================================================

func TestScheduleFollowUp(t *testing.T) {
	t.Parallel()
	svc, client := setupService(t)

	due := testNow.Add(48 * time.Hour)
	got, err := svc.ScheduleFollowUp(context.Background(), FollowUpRequest{
		Email:   "buyer@acme.test",
		Name:    " Buyer ",
		Message: "renewal call",
		DueAt:   due,
	})
	require.NoError(t, err)
	assert.Equal(t, "Buyer", got.Name)
	require.Len(t, client.FollowUps, 1)
	assert.True(t, client.FollowUps[0].DueAt.Equal(due))
}

func TestScheduleFollowUpDefaultsDueDate(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	got, err := svc.ScheduleFollowUp(context.Background(), FollowUpRequest{Email: "buyer@acme.test"})
	require.NoError(t, err)
	assert.True(t, got.DueAt.Equal(testNow.Add(72*time.Hour)))
}

func TestScheduleFollowUpValidation(t *testing.T) {
	t.Parallel()
	svc, client := setupService(t)

	tests := []struct {
		name    string
		req     FollowUpRequest
		wantErr error
	}{
		{"missing email", FollowUpRequest{}, ErrEmptyEmail},
		{"bad email", FollowUpRequest{Email: "nope"}, ErrInvalidEmail},
		{"past date", FollowUpRequest{Email: "a@b.test", DueAt: testNow.Add(-time.Minute)}, ErrDueDateInThePast},
		{"long message", FollowUpRequest{Email: "a@b.test", Message: strings.Repeat("m", 1001)}, ErrMessageTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ScheduleFollowUp(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, client.FollowUps, "validation failures never reach the webhook")
}

func TestScheduleFollowUpWrapsClientError(t *testing.T) {
	t.Parallel()
	svc, client := setupService(t)
	client.Err = &webhook.NetworkError{Endpoint: webhook.EndpointFollowUp, StatusCode: 500}

	_, err := svc.ScheduleFollowUp(context.Background(), FollowUpRequest{Email: "a@b.test"})
	var nErr *webhook.NetworkError
	require.ErrorAs(t, err, &nErr)
	assert.Equal(t, 500, nErr.StatusCode)
}

// ============================================================================
// BLACKLIST
// ============================================================================

func TestBlacklist(t *testing.T) {
	t.Parallel()
	svc, client := setupService(t)

	entry, err := svc.Blacklist(context.Background(), BlacklistRequest{Domain: "@Spam.test", Reason: " bounced "})
	require.NoError(t, err)
	assert.Equal(t, models.BlacklistEntry{Domain: "spam.test", Reason: "bounced"}, entry)
	require.Len(t, client.Entries, 1)

	_, err = svc.Blacklist(context.Background(), BlacklistRequest{Email: "x@spam.test", Domain: "spam.test"})
	require.NoError(t, err)
	assert.Len(t, client.Entries, 2)
}

func TestBlacklistValidation(t *testing.T) {
	t.Parallel()
	svc, client := setupService(t)

	_, err := svc.Blacklist(context.Background(), BlacklistRequest{Reason: "why"})
	assert.ErrorIs(t, err, ErrEmptyBlacklist)

	_, err = svc.Blacklist(context.Background(), BlacklistRequest{Email: "broken"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Blacklist(context.Background(), BlacklistRequest{Domain: "nodot"})
	assert.ErrorIs(t, err, ErrInvalidDomain)

	assert.Empty(t, client.Entries)
}

// ============================================================================
// SCRAPE
// ============================================================================

func TestScrape(t *testing.T) {
	t.Parallel()
	svc, client := setupService(t)

	ack, err := svc.Scrape(context.Background(), ScrapeRequest{Keyword: " dentists ", Location: "Austin, TX", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, "queued", ack.Status)
	require.Len(t, client.Queries, 1)
	assert.Equal(t, models.ScrapeQuery{Keyword: "dentists", Location: "Austin, TX", Limit: 50}, client.Queries[0])
}

func TestScrapeValidation(t *testing.T) {
	t.Parallel()
	svc, client := setupService(t)

	tests := []struct {
		name    string
		req     ScrapeRequest
		wantErr error
	}{
		{"no keyword", ScrapeRequest{Location: "x", Limit: 1}, ErrEmptyKeyword},
		{"no location", ScrapeRequest{Keyword: "x", Limit: 1}, ErrEmptyLocation},
		{"zero limit", ScrapeRequest{Keyword: "x", Location: "y"}, ErrInvalidLimit},
		{"limit too high", ScrapeRequest{Keyword: "x", Location: "y", Limit: 501}, ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Scrape(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, client.Queries)
}

// ============================================================================
// RECENT LEADS
// ============================================================================

func TestRecentLeadsSortsAndFilters(t *testing.T) {
	t.Parallel()
	svc, client := setupService(t)
	client.Leads = sampleLeads()

	leads, err := svc.RecentLeads(context.Background(), RecentLeadsRequest{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"l2", "l3", "l1"}, ids(leads), "newest first by default")
	assert.Equal(t, []int{10}, client.Limits)

	leads, err = svc.RecentLeads(context.Background(), RecentLeadsRequest{Limit: 10, Filter: "DENTAL", Sort: SortName})
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l3"}, ids(leads))

	leads, err = svc.RecentLeads(context.Background(), RecentLeadsRequest{Limit: 2, Sort: SortOldest})
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l3"}, ids(leads))
}

func TestRecentLeadsErrors(t *testing.T) {
	t.Parallel()
	svc, client := setupService(t)

	_, err := svc.RecentLeads(context.Background(), RecentLeadsRequest{Limit: 0})
	assert.ErrorIs(t, err, ErrInvalidLimit)

	client.Err = webhook.ErrMalformedResponse
	_, err = svc.RecentLeads(context.Background(), RecentLeadsRequest{Limit: 5})
	assert.True(t, errors.Is(err, webhook.ErrMalformedResponse))
}

func TestFilterLeadsBlankTerm(t *testing.T) {
	t.Parallel()
	leads := sampleLeads()
	assert.Equal(t, leads, FilterLeads(leads, "   "))
	assert.Equal(t, []string{"l3"}, ids(FilterLeads(leads, "contacted")))
	assert.Equal(t, []string{"l2"}, ids(FilterLeads(leads, "alpha.test")))
}

func TestParseSortOrder(t *testing.T) {
	t.Parallel()

	order, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortNewest, order)

	order, err = ParseSortOrder(" Name ")
	require.NoError(t, err)
	assert.Equal(t, SortName, order)

	_, err = ParseSortOrder("random")
	assert.Error(t, err)
}
