// Package projects manages client engagements from planning to delivery.
package projects

import "time"

// Lifecycle status values.
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in_progress"
	StatusOnHold     = "on_hold"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Statuses lists all valid lifecycle status values.
func Statuses() []string {
	return []string{StatusPlanning, StatusInProgress, StatusOnHold, StatusCompleted, StatusCancelled}
}

// Priorities lists all valid priority values.
func Priorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Project is one client engagement.
type Project struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	ClientID       *string    `json:"clientId,omitempty"`
	AssignedTo     []string   `json:"assignedTo"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	Category       string     `json:"category,omitempty"`
	Services       []string   `json:"services"`
	Budget         float64    `json:"budget"`
	EstimatedHours float64    `json:"estimatedHours"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Tags           []string   `json:"tags"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Filter narrows project listings.
type Filter struct {
	Search     string // matches title or description
	Status     string
	Priority   string
	ClientID   string
	AssignedTo string // matches any member of the assignment list
}
