package schema

// CRMClientTable represents the 'crm.client' table
type CRMClientTable struct {
	Table         string
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Company       string
	Position      string
	Street        string
	City          string
	State         string
	Zip           string
	Country       string
	Website       string
	Industry      string
	Status        string
	Source        string
	AssignedTo    string
	Tags          string
	TotalProjects string
	TotalRevenue  string
	LastContact   string
	NextFollowUp  string
	IsArchived    string
	CreatedAt     string
	UpdatedAt     string
}

// CRMClient is the schema definition for crm.client
var CRMClient = CRMClientTable{
	Table:         "crm.client",
	ID:            "id",
	FirstName:     "firstname",
	LastName:      "lastname",
	Email:         "email",
	Phone:         "phone",
	Company:       "company",
	Position:      "position",
	Street:        "street",
	City:          "city",
	State:         "state",
	Zip:           "zip",
	Country:       "country",
	Website:       "website",
	Industry:      "industry",
	Status:        "status",
	Source:        "source",
	AssignedTo:    "assignedto",
	Tags:          "tags",
	TotalProjects: "totalprojects",
	TotalRevenue:  "totalrevenue",
	LastContact:   "lastcontact",
	NextFollowUp:  "nextfollowup",
	IsArchived:    "isarchived",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t CRMClientTable) Columns() []string {
	return []string{
		t.ID, t.FirstName, t.LastName, t.Email, t.Phone, t.Company,
		t.Position, t.Street, t.City, t.State, t.Zip, t.Country,
		t.Website, t.Industry, t.Status, t.Source, t.AssignedTo, t.Tags,
		t.TotalProjects, t.TotalRevenue, t.LastContact, t.NextFollowUp,
		t.IsArchived, t.CreatedAt, t.UpdatedAt,
	}
}
