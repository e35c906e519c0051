package schema

// CRMInquiryTable represents the 'crm.inquiry' table
type CRMInquiryTable struct {
	Table      string
	ID         string
	Name       string
	Email      string
	Phone      string
	Company    string
	Subject    string
	Message    string
	Category   string
	Priority   string
	Status     string
	Source     string
	AssignedTo string
	CreatedAt  string
	UpdatedAt  string
}

// CRMInquiry is the schema definition for crm.inquiry
var CRMInquiry = CRMInquiryTable{
	Table:      "crm.inquiry",
	ID:         "id",
	Name:       "name",
	Email:      "email",
	Phone:      "phone",
	Company:    "company",
	Subject:    "subject",
	Message:    "message",
	Category:   "category",
	Priority:   "priority",
	Status:     "status",
	Source:     "source",
	AssignedTo: "assignedto",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns returns all standard column names
func (t CRMInquiryTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Phone, t.Company, t.Subject, t.Message,
		t.Category, t.Priority, t.Status, t.Source, t.AssignedTo,
		t.CreatedAt, t.UpdatedAt,
	}
}
