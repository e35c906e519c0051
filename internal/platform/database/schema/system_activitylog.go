package schema

// SystemActivityLogTable represents the 'system.activitylog' table
type SystemActivityLogTable struct {
	Table       string
	ID          string
	ActorID     string
	Action      string
	Resource    string
	ResourceID  string
	Description string
	Metadata    string
	IPAddress   string
	UserAgent   string
	Severity    string
	Category    string
	CreatedAt   string
}

// SystemActivityLog is the schema definition for system.activitylog
var SystemActivityLog = SystemActivityLogTable{
	Table:       "system.activitylog",
	ID:          "id",
	ActorID:     "actorid",
	Action:      "action",
	Resource:    "resource",
	ResourceID:  "resourceid",
	Description: "description",
	Metadata:    "metadata",
	IPAddress:   "ipaddress",
	UserAgent:   "useragent",
	Severity:    "severity",
	Category:    "category",
	CreatedAt:   "createdat",
}

// Columns returns all standard column names
func (t SystemActivityLogTable) Columns() []string {
	return []string{
		t.ID, t.ActorID, t.Action, t.Resource, t.ResourceID,
		t.Description, t.Metadata, t.IPAddress, t.UserAgent, t.Severity,
		t.Category, t.CreatedAt,
	}
}
