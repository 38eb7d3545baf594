package schema

// AdminRolePermissionTable represents the 'admin.rolepermission' join table
type AdminRolePermissionTable struct {
	Table        string
	RoleID       string
	PermissionID string
}

// AdminRolePermission is the schema definition for admin.rolepermission
var AdminRolePermission = AdminRolePermissionTable{
	Table:        "admin.rolepermission",
	RoleID:       "roleid",
	PermissionID: "permissionid",
}
