package schema

// CRMProjectTable represents the 'crm.project' table
type CRMProjectTable struct {
	Table          string
	ID             string
	Title          string
	Description    string
	ClientID       string
	AssignedTo     string
	Status         string
	Priority       string
	Category       string
	Services       string
	Budget         string
	EstimatedHours string
	StartDate      string
	Deadline       string
	Tags           string
	CreatedAt      string
	UpdatedAt      string
}

// CRMProject is the schema definition for crm.project
var CRMProject = CRMProjectTable{
	Table:          "crm.project",
	ID:             "id",
	Title:          "title",
	Description:    "description",
	ClientID:       "clientid",
	AssignedTo:     "assignedto",
	Status:         "status",
	Priority:       "priority",
	Category:       "category",
	Services:       "services",
	Budget:         "budget",
	EstimatedHours: "estimatedhours",
	StartDate:      "startdate",
	Deadline:       "deadline",
	Tags:           "tags",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns all standard column names
func (t CRMProjectTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.ClientID, t.AssignedTo, t.Status,
		t.Priority, t.Category, t.Services, t.Budget, t.EstimatedHours,
		t.StartDate, t.Deadline, t.Tags, t.CreatedAt, t.UpdatedAt,
	}
}
