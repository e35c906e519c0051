/*
Package clients manages the customer roster of the CRM.

A client is a person at a company the business has (or wants) a relationship
with. Records track contact details, pipeline status, revenue rollups, and
follow-up scheduling.
*/
package clients

import "time"

// Pipeline status values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusProspect = "prospect"
	StatusFormer   = "former"
)

// Acquisition source values.
const (
	SourceInquiry      = "inquiry"
	SourceReferral     = "referral"
	SourceColdOutreach = "cold_outreach"
	SourceConference   = "conference"
	SourceSocialMedia  = "social_media"
	SourceOther        = "other"
)

// Statuses lists all valid pipeline status values.
func Statuses() []string {
	return []string{StatusActive, StatusInactive, StatusProspect, StatusFormer}
}

// Sources lists all valid acquisition source values.
func Sources() []string {
	return []string{SourceInquiry, SourceReferral, SourceColdOutreach, SourceConference, SourceSocialMedia, SourceOther}
}

// Address is the client's postal address, stored flattened.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// Client represents one customer record.
type Client struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Company       string     `json:"company,omitempty"`
	Position      string     `json:"position,omitempty"`
	Address       Address    `json:"address"`
	Website       string     `json:"website,omitempty"`
	Industry      string     `json:"industry,omitempty"`
	Status        string     `json:"status"`
	Source        string     `json:"source,omitempty"`
	AssignedTo    *string    `json:"assignedTo,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	TotalProjects int        `json:"totalProjects"`
	TotalRevenue  float64    `json:"totalRevenue"`
	LastContact   *time.Time `json:"lastContact,omitempty"`
	NextFollowUp  *time.Time `json:"nextFollowUp,omitempty"`
	IsArchived    bool       `json:"isArchived"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// FullName returns the display name used in audit descriptions.
func (client *Client) FullName() string {
	return client.FirstName + " " + client.LastName
}

// Filter narrows client listings.
type Filter struct {
	Search     string // matches name, email, or company
	Status     string
	Industry   string
	AssignedTo string
	Archived   *bool
}
