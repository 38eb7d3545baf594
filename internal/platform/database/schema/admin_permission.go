package schema

// AdminPermissionTable represents the 'admin.permission' table
type AdminPermissionTable struct {
	Table       string
	ID          string
	Name        string
	DisplayName string
	Description string
	Category    string
	CreatedAt   string
}

// AdminPermission is the schema definition for admin.permission
var AdminPermission = AdminPermissionTable{
	Table:       "admin.permission",
	ID:          "id",
	Name:        "name",
	DisplayName: "displayname",
	Description: "description",
	Category:    "category",
	CreatedAt:   "createdat",
}

func (t AdminPermissionTable) Columns() []string {
	return []string{t.ID, t.Name, t.DisplayName, t.Description, t.Category, t.CreatedAt}
}
