package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Role        string
	IsActive    string
	Phone       string
	Department  string
	AvatarURL   string
	LastLoginAt string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	FirstName:   "firstname",
	LastName:    "lastname",
	Email:       "email",
	Password:    "passwordhash",
	Role:        "role",
	IsActive:    "isactive",
	Phone:       "phone",
	Department:  "department",
	AvatarURL:   "avatarurl",
	LastLoginAt: "lastloginat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.FirstName, t.LastName, t.Email, t.Password, t.Role,
		t.IsActive, t.Phone, t.Department, t.AvatarURL, t.LastLoginAt,
		t.CreatedAt, t.UpdatedAt,
	}
}
