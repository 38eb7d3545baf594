// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package admin_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enniomrk/wendessen-api/internal/admin"
	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/pkg/pointer"
)

// memoryStore keeps accounts and roles in maps, standing in for the
// Postgres repository.
type memoryStore struct {
	users map[string]*admin.AdminUser
	roles map[string]*admin.Role
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: map[string]*admin.AdminUser{},
		roles: map[string]*admin.Role{},
	}
}

func (store *memoryStore) FindUserByID(_ context.Context, id string) (*admin.AdminUser, error) {
	user, ok := store.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (store *memoryStore) FindUserByUsername(_ context.Context, username string) (*admin.AdminUser, error) {
	for _, user := range store.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *memoryStore) ListUsers(_ context.Context, limit, offset int) ([]*admin.AdminUser, int, error) {
	var users []*admin.AdminUser
	for _, user := range store.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })

	total := len(users)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return users[offset:end], total, nil
}

func (store *memoryStore) CreateUser(_ context.Context, user *admin.AdminUser) error {
	for _, existing := range store.users {
		if existing.Username == user.Username {
			return apperr.Conflict("Username already taken")
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	store.users[user.ID] = user
	return nil
}

func (store *memoryStore) UpdateUserAccess(_ context.Context, user *admin.AdminUser) error {
	if _, ok := store.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	user.UpdatedAt = time.Now()
	store.users[user.ID] = user
	return nil
}

func (store *memoryStore) UpdatePassword(_ context.Context, id, passwordHash string, mustChange bool) error {
	user, ok := store.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = passwordHash
	user.MustChangePassword = mustChange
	return nil
}

func (store *memoryStore) TouchLastLogin(_ context.Context, id string) error {
	user, ok := store.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	now := time.Now()
	user.LastLogin = &now
	return nil
}

func (store *memoryStore) DeleteUser(_ context.Context, id string) (bool, error) {
	if _, ok := store.users[id]; !ok {
		return false, nil
	}
	delete(store.users, id)
	return true, nil
}

func (store *memoryStore) ListRoles(_ context.Context) ([]*admin.Role, error) {
	var roles []*admin.Role
	for _, role := range store.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

func (store *memoryStore) FindRoleByID(_ context.Context, id string) (*admin.Role, error) {
	role, ok := store.roles[id]
	if !ok {
		return nil, apperr.NotFound("Role")
	}
	return role, nil
}

func (store *memoryStore) ListPermissions(_ context.Context) ([]*admin.Permission, error) {
	return nil, nil
}

func newTestService() (*admin.Service, *memoryStore) {
	store := newMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return admin.NewService(store, logger), store
}

func seedUser(store *memoryStore) *admin.AdminUser {
	user := &admin.AdminUser{
		ID:                "user-anna",
		Username:          "anna",
		CustomPermissions: []string{admin.PermNewsEdit},
	}
	store.users[user.ID] = user
	return user
}

/*
TestUpdateUserAccess_PartialUpdate verifies that each aspect of an account's
access is only touched when its field is present.
*/
func TestUpdateUserAccess_PartialUpdate(t *testing.T) {
	service, store := newTestService()
	store.roles["role-redakteur"] = &admin.Role{
		ID:          "role-redakteur",
		Name:        "redakteur",
		Permissions: []string{admin.PermNewsView, admin.PermNewsEdit},
	}
	seedUser(store)

	t.Run("empty_input_changes_nothing", func(t *testing.T) {
		user, err := service.UpdateUserAccess(context.Background(), "user-anna", admin.UpdateAccessInput{})
		require.NoError(t, err)

		assert.Nil(t, user.RoleID)
		assert.Nil(t, user.VereinID)
		assert.Equal(t, []string{admin.PermNewsEdit}, user.CustomPermissions)
	})

	t.Run("assigns_role_and_club", func(t *testing.T) {
		input := admin.UpdateAccessInput{
			RoleID:   pointer.To("role-redakteur"),
			VereinID: pointer.To("verein-feuerwehr"),
		}

		user, err := service.UpdateUserAccess(context.Background(), "user-anna", input)
		require.NoError(t, err)

		require.NotNil(t, user.RoleID)
		assert.Equal(t, "role-redakteur", *user.RoleID)
		require.NotNil(t, user.VereinID)
		assert.Equal(t, "verein-feuerwehr", *user.VereinID)
		// Grants were omitted, so they survive untouched.
		assert.Equal(t, []string{admin.PermNewsEdit}, user.CustomPermissions)
	})

	t.Run("empty_string_detaches_club_only", func(t *testing.T) {
		user, err := service.UpdateUserAccess(context.Background(), "user-anna", admin.UpdateAccessInput{
			VereinID: pointer.To(""),
		})
		require.NoError(t, err)

		assert.Nil(t, user.VereinID)
		require.NotNil(t, user.RoleID)
		assert.Equal(t, "role-redakteur", *user.RoleID)
	})

	t.Run("empty_string_detaches_role", func(t *testing.T) {
		user, err := service.UpdateUserAccess(context.Background(), "user-anna", admin.UpdateAccessInput{
			RoleID: pointer.To(""),
		})
		require.NoError(t, err)

		assert.Nil(t, user.RoleID)
		assert.Nil(t, user.Role)
	})

	t.Run("grants_are_normalized", func(t *testing.T) {
		user, err := service.UpdateUserAccess(context.Background(), "user-anna", admin.UpdateAccessInput{
			CustomPermissions: pointer.To([]string{admin.PermGalleryView, "verein.news.delete"}),
		})
		require.NoError(t, err)

		assert.Equal(t, []string{admin.PermGalleryView}, user.CustomPermissions)
	})

	t.Run("unknown_role_errors", func(t *testing.T) {
		_, err := service.UpdateUserAccess(context.Background(), "user-anna", admin.UpdateAccessInput{
			RoleID: pointer.To("role-unbekannt"),
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
	})

	t.Run("unknown_user_errors", func(t *testing.T) {
		_, err := service.UpdateUserAccess(context.Background(), "user-weg", admin.UpdateAccessInput{})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
	})
}

/*
TestCreateUser_WithClub verifies the club association is stored on creation.
*/
func TestCreateUser_WithClub(t *testing.T) {
	service, store := newTestService()

	created, err := service.CreateUser(context.Background(), admin.CreateUserInput{
		Username: "ortsbrandmeister",
		VereinID: pointer.To("verein-feuerwehr"),
	})
	require.NoError(t, err)

	require.NotNil(t, created.VereinID)
	assert.Equal(t, "verein-feuerwehr", *created.VereinID)
	assert.NotEmpty(t, created.InitialPassword)

	stored := store.users[created.ID]
	require.NotNil(t, stored)
	require.NotNil(t, stored.VereinID)
	assert.Equal(t, "verein-feuerwehr", *stored.VereinID)
}
