package schema

// AdminUserTable represents the 'admin.user' table
type AdminUserTable struct {
	Table              string
	ID                 string
	Username           string
	PasswordHash       string
	MustChangePassword string
	RoleID             string
	CustomPermissions  string
	VereinID           string
	LastLogin          string
	CreatedAt          string
	UpdatedAt          string
}

// AdminUser is the schema definition for admin.user
var AdminUser = AdminUserTable{
	Table:              `admin."user"`,
	ID:                 "id",
	Username:           "username",
	PasswordHash:       "passwordhash",
	MustChangePassword: "mustchangepassword",
	RoleID:             "roleid",
	CustomPermissions:  "custompermissions",
	VereinID:           "vereinid",
	LastLogin:          "lastlogin",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

func (t AdminUserTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.PasswordHash, t.MustChangePassword, t.RoleID,
		t.CustomPermissions, t.VereinID, t.LastLogin, t.CreatedAt, t.UpdatedAt,
	}
}
