package domain

import (
	"strings"
	"time"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusProposal  LeadStatus = "proposal"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

var leadStatuses = map[LeadStatus]struct{}{
	LeadStatusNew:       {},
	LeadStatusContacted: {},
	LeadStatusQualified: {},
	LeadStatusProposal:  {},
	LeadStatusWon:       {},
	LeadStatusLost:      {},
}

func (s LeadStatus) Valid() bool {
	_, ok := leadStatuses[s]
	return ok
}

// CanTransitionTo reports whether a lead may move from s to next.
// Closed leads (won/lost) can only be reopened as contacted.
func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case LeadStatusWon, LeadStatusLost:
		return next == LeadStatusContacted
	default:
		return next != LeadStatusNew
	}
}

// Attribution carries the marketing parameters captured on the landing session.
type Attribution struct {
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	UTMTerm     string `json:"utm_term,omitempty"`
	UTMContent  string `json:"utm_content,omitempty"`
	GCLID       string `json:"gclid,omitempty"`
	FBCLID      string `json:"fbclid,omitempty"`
	MSCLKID     string `json:"msclkid,omitempty"`
}

// Channel returns the best guess of the acquisition channel for reporting.
func (a Attribution) Channel() string {
	switch {
	case a.GCLID != "":
		return "google_ads"
	case a.FBCLID != "":
		return "meta_ads"
	case a.MSCLKID != "":
		return "microsoft_ads"
	case a.UTMSource != "":
		return strings.ToLower(a.UTMSource)
	default:
		return "direct"
	}
}

type Client struct {
	ID             int64       `json:"id"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	Company        *string     `json:"company"`
	Nationality    *string     `json:"nationality"`
	BudgetMin      *float64    `json:"budget_min"`
	BudgetMax      *float64    `json:"budget_max"`
	PreferredAreas []string    `json:"preferred_areas"`
	PropertyType   *string     `json:"property_type"`
	LeadSource     string      `json:"lead_source"`
	Status         LeadStatus  `json:"status"`
	Notes          *string     `json:"notes"`
	SessionID      *string     `json:"session_id"`
	Attribution    Attribution `json:"attribution"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type ClientFilters struct {
	Status *LeadStatus
	Source string
	Search string
	Pagination
}

type UpdateClientRequest struct {
	ID             int64       `json:"-"`
	FirstName      *string     `json:"first_name"`
	LastName       *string     `json:"last_name"`
	Phone          *string     `json:"phone"`
	Company        *string     `json:"company"`
	Nationality    *string     `json:"nationality"`
	BudgetMin      *float64    `json:"budget_min"`
	BudgetMax      *float64    `json:"budget_max"`
	PreferredAreas []string    `json:"preferred_areas"`
	PropertyType   *string     `json:"property_type"`
	Status         *LeadStatus `json:"status"`
	Notes          *string     `json:"notes"`
}

// NormalizeEmail lower-cases the address and strips every blank.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	return strings.ReplaceAll(email, " ", "")
}
