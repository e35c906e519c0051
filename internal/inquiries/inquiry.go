/*
Package inquiries handles contact-form submissions from the public website.

Creation is the only unauthenticated write in the whole API: the website's
contact form posts here directly. Everything else (triage, assignment,
deletion) is staff-only.
*/
package inquiries

import "time"

// Triage status values.
const (
	StatusUnread     = "unread"
	StatusRead       = "read"
	StatusInProgress = "in_progress"
	StatusReplied    = "replied"
	StatusResolved   = "resolved"
	StatusArchived   = "archived"
)

// Priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Statuses lists all valid triage status values.
func Statuses() []string {
	return []string{StatusUnread, StatusRead, StatusInProgress, StatusReplied, StatusResolved, StatusArchived}
}

// Priorities lists all valid priority values.
func Priorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Inquiry is one contact-form submission.
type Inquiry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Category   string    `json:"category,omitempty"`
	Priority   string    `json:"priority"`
	Status     string    `json:"status"`
	Source     string    `json:"source,omitempty"`
	AssignedTo *string   `json:"assignedTo,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Filter narrows inquiry listings.
type Filter struct {
	Search     string // matches name, email, or subject
	Status     string
	Priority   string
	AssignedTo string
}
