package activity

import "time"

// Severity ranks how sensitive a recorded action is.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Category groups entries by the area of the system they touch.
const (
	CategoryAuth     = "auth"
	CategoryUser     = "user"
	CategoryClient   = "client"
	CategoryInquiry  = "inquiry"
	CategoryProject  = "project"
	CategorySettings = "settings"
	CategorySystem   = "system"
)

// Well-known action identifiers. Free-form actions are also accepted.
const (
	ActionLogin          = "LOGIN"
	ActionLogout         = "LOGOUT"
	ActionChangePassword = "CHANGE_PASSWORD"
	ActionCreateUser     = "CREATE_USER"
	ActionUpdateUser     = "UPDATE_USER"
	ActionDeleteUser     = "DELETE_USER"
	ActionResetPassword  = "RESET_PASSWORD"
	ActionCreateClient   = "CREATE_CLIENT"
	ActionUpdateClient   = "UPDATE_CLIENT"
	ActionDeleteClient   = "DELETE_CLIENT"
	ActionCreateInquiry  = "CREATE_INQUIRY"
	ActionUpdateInquiry  = "UPDATE_INQUIRY"
	ActionDeleteInquiry  = "DELETE_INQUIRY"
	ActionCreateProject  = "CREATE_PROJECT"
	ActionUpdateProject  = "UPDATE_PROJECT"
	ActionDeleteProject  = "DELETE_PROJECT"
	ActionUpdateSettings = "UPDATE_SETTINGS"
	ActionSetup          = "SETUP"
)

// Entry is one append-only audit trail record.
type Entry struct {
	ID          string         `json:"id"`
	ActorID     string         `json:"actorId"`
	Action      string         `json:"action"`
	Resource    string         `json:"resource"`
	ResourceID  *string        `json:"resourceId,omitempty"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	IPAddress   string         `json:"ipAddress,omitempty"`
	UserAgent   string         `json:"userAgent,omitempty"`
	Severity    string         `json:"severity"`
	Category    string         `json:"category"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Options carries the optional attributes of an audit entry.
type Options struct {
	ResourceID string
	Metadata   map[string]any
	IPAddress  string
	UserAgent  string
	Severity   string // defaults to SeverityLow
	Category   string // defaults to CategorySystem
}

// Filter narrows audit trail listings.
type Filter struct {
	Category string
	Severity string
	ActorID  string
	Action   string
	From     *time.Time
	To       *time.Time
}
