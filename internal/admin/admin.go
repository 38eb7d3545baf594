// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package admin manages editorial accounts, roles, and the permission model
gating every admin endpoint.

# Permission Model

A user's effective permissions are the union of their role's default
permissions and their personal custom permissions. Two global rules are
applied after the union:

  - Names under the "verein.news." prefix are hard-excluded. Club news is
    maintained by the clubs themselves, so no portal account may ever hold
    such a permission, regardless of role or custom grants.
  - The wildcard "*" grants everything (except exclusions). When present,
    the effective set collapses to just the wildcard.

Resolution happens per request, so a role change takes effect on the
user's next call without reissuing tokens.
*/
package admin

import (
	"sort"
	"strings"
	"time"
)

// Wildcard grants every non-excluded permission.
const Wildcard = "*"

// # Permission Names

const (
	PermGalleryView   = "shared_gallery.view"
	PermGalleryEdit   = "shared_gallery.edit"
	PermGalleryDelete = "shared_gallery.delete"

	PermPortraitsView   = "portraits.view"
	PermPortraitsEdit   = "portraits.edit"
	PermPortraitsDelete = "portraits.delete"

	PermNewsView   = "news.view"
	PermNewsEdit   = "news.edit"
	PermNewsDelete = "news.delete"

	PermEventsView   = "events.view"
	PermEventsEdit   = "events.edit"
	PermEventsDelete = "events.delete"

	PermVereineView   = "vereine.view"
	PermVereineEdit   = "vereine.edit"
	PermVereineDelete = "vereine.delete"

	PermUsersView   = "users.view"
	PermUsersEdit   = "users.edit"
	PermUsersDelete = "users.delete"
)

// excludedPrefixes lists permission namespaces no account may hold.
var excludedPrefixes = []string{"verein.news."}

// IsExcluded reports whether a permission name is globally forbidden.
func IsExcluded(name string) bool {
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

/*
EffectivePermissions computes the permission set a user actually holds.

Description: Unions the role defaults with the custom grants, removes the
excluded namespaces, and collapses to the wildcard when present. The result
is sorted and duplicate-free, so resolving twice yields an identical slice.

Parameters:
  - roleDefaults: []string (nil for a roleless user)
  - custom: []string

Returns:
  - []string: The normalized effective set
*/
func EffectivePermissions(roleDefaults, custom []string) []string {
	seen := map[string]struct{}{}
	var effective []string

	include := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || IsExcluded(name) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		effective = append(effective, name)
	}

	for _, name := range roleDefaults {
		include(name)
	}
	for _, name := range custom {
		include(name)
	}

	if _, ok := seen[Wildcard]; ok {
		return []string{Wildcard}
	}

	sort.Strings(effective)
	return effective
}

/*
HasPermission reports whether an effective set grants one permission.

Description: Excluded names are denied even against the wildcard.

Parameters:
  - effective: []string (As produced by [EffectivePermissions])
  - name: string

Returns:
  - bool: Whether the permission is granted
*/
func HasPermission(effective []string, name string) bool {
	if IsExcluded(name) {
		return false
	}

	for _, held := range effective {
		if held == Wildcard || held == name {
			return true
		}
	}
	return false
}

// NormalizeCustomPermissions sanitizes a custom grant list before storage.
// It applies the same exclusion and wildcard rules as resolution, so the
// stored list equals what the user would effectively hold from it.
func NormalizeCustomPermissions(custom []string) []string {
	normalized := EffectivePermissions(nil, custom)
	if normalized == nil {
		return []string{}
	}
	return normalized
}

// # Entities

// AdminUser is an editorial account of the portal backend.
type AdminUser struct {
	ID                 string     `json:"id"`
	Username           string     `json:"username"`
	PasswordHash       string     `json:"-"`
	MustChangePassword bool       `json:"must_change_password"`
	RoleID             *string    `json:"role_id,omitempty"`
	Role               *Role      `json:"role,omitempty"`
	CustomPermissions  []string   `json:"custom_permissions"`
	// VereinID associates the account with a club it manages. Stored by
	// value, like report targets: deleting the club does not touch the
	// account, the dangling id just stops resolving.
	VereinID  *string    `json:"verein_id,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Effective returns the user's resolved permission set.
func (user *AdminUser) Effective() []string {
	var roleDefaults []string
	if user.Role != nil {
		roleDefaults = user.Role.Permissions
	}
	return EffectivePermissions(roleDefaults, user.CustomPermissions)
}

// Role bundles a named set of default permissions.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description *string   `json:"description,omitempty"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Permission is one grantable permission in the catalog.
type Permission struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category"`
}

// # Field Identifiers

const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldRoleID      = "role_id"
	FieldPermissions = "custom_permissions"
)
