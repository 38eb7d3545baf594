package schema

// AdminRoleTable represents the 'admin.role' table
type AdminRoleTable struct {
	Table       string
	ID          string
	Name        string
	DisplayName string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// AdminRole is the schema definition for admin.role
var AdminRole = AdminRoleTable{
	Table:       "admin.role",
	ID:          "id",
	Name:        "name",
	DisplayName: "displayname",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t AdminRoleTable) Columns() []string {
	return []string{t.ID, t.Name, t.DisplayName, t.Description, t.CreatedAt, t.UpdatedAt}
}
