package models

import (
	"time"

	"github.com/thenoetrevino/dealboard/internal/types"
)

// Lead is a prospect returned by the recent-leads workflow
type Lead struct {
	ID        types.LeadID `json:"id"`
	Name      string       `json:"name"`
	Company   string       `json:"company,omitempty"`
	Email     string       `json:"email,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Website   string       `json:"website,omitempty"`
	Location  string       `json:"location,omitempty"`
	Source    string       `json:"source,omitempty"`
	Status    string       `json:"status,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// FollowUp asks the workflow to schedule a reminder for a contact
type FollowUp struct {
	Email   string    `json:"email"`
	Name    string    `json:"name,omitempty"`
	Message string    `json:"message,omitempty"`
	DueAt   time.Time `json:"due_at"`
}

// BlacklistEntry excludes an email or domain from future scraping
type BlacklistEntry struct {
	Email  string `json:"email,omitempty"`
	Domain string `json:"domain,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ScrapeQuery starts a lead-scraping run
type ScrapeQuery struct {
	Keyword  string `json:"keyword"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
}
