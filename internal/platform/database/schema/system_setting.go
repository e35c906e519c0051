package schema

// SystemSettingTable represents the 'system.setting' table (singleton row)
type SystemSettingTable struct {
	Table     string
	ID        string
	Data      string
	UpdatedBy string
	UpdatedAt string
}

var SystemSetting = SystemSettingTable{
	Table:     "system.setting",
	ID:        "id",
	Data:      "data",
	UpdatedBy: "updatedby",
	UpdatedAt: "updatedat",
}
