// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivePermissions(t *testing.T) {
	testCases := []struct {
		name         string
		roleDefaults []string
		custom       []string
		expected     []string
	}{
		{
			name:         "union_of_role_and_custom",
			roleDefaults: []string{PermGalleryView, PermGalleryEdit},
			custom:       []string{PermNewsView},
			expected:     []string{PermNewsView, PermGalleryEdit, PermGalleryView},
		},
		{
			name:         "duplicates_collapse",
			roleDefaults: []string{PermGalleryView},
			custom:       []string{PermGalleryView},
			expected:     []string{PermGalleryView},
		},
		{
			name:         "excluded_namespace_is_dropped",
			roleDefaults: []string{PermGalleryView, "verein.news.edit"},
			custom:       []string{"verein.news.delete"},
			expected:     []string{PermGalleryView},
		},
		{
			name:         "wildcard_collapses_everything",
			roleDefaults: []string{PermGalleryEdit},
			custom:       []string{Wildcard, "verein.news.delete"},
			expected:     []string{Wildcard},
		},
		{
			name:         "roleless_user_keeps_custom_grants",
			roleDefaults: nil,
			custom:       []string{PermEventsView},
			expected:     []string{PermEventsView},
		},
		{
			name:         "empty_inputs_yield_empty_set",
			roleDefaults: nil,
			custom:       nil,
			expected:     nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := EffectivePermissions(testCase.roleDefaults, testCase.custom)
			assert.ElementsMatch(t, testCase.expected, result)
		})
	}
}

func TestEffectivePermissions_IsAFixedPoint(t *testing.T) {
	once := EffectivePermissions([]string{PermGalleryEdit, Wildcard}, []string{"verein.news.edit"})
	twice := EffectivePermissions(once, nil)

	require.Equal(t, once, twice)
}

func TestEffectivePermissions_IsSorted(t *testing.T) {
	result := EffectivePermissions(
		[]string{PermVereineView, PermEventsEdit},
		[]string{PermGalleryDelete},
	)

	require.Equal(t, []string{PermEventsEdit, PermGalleryDelete, PermVereineView}, result)
}

func TestHasPermission(t *testing.T) {
	testCases := []struct {
		name       string
		effective  []string
		permission string
		expected   bool
	}{
		{
			name:       "exact_match_grants",
			effective:  []string{PermGalleryView},
			permission: PermGalleryView,
			expected:   true,
		},
		{
			name:       "missing_permission_denies",
			effective:  []string{PermGalleryView},
			permission: PermGalleryDelete,
			expected:   false,
		},
		{
			name:       "wildcard_grants_everything",
			effective:  []string{Wildcard},
			permission: PermUsersDelete,
			expected:   true,
		},
		{
			name:       "wildcard_never_grants_excluded_namespace",
			effective:  []string{Wildcard},
			permission: "verein.news.edit",
			expected:   false,
		},
		{
			name:       "empty_set_denies",
			effective:  nil,
			permission: PermGalleryView,
			expected:   false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, HasPermission(testCase.effective, testCase.permission))
		})
	}
}

func TestIsExcluded(t *testing.T) {
	assert.True(t, IsExcluded("verein.news.edit"))
	assert.True(t, IsExcluded("verein.news.anything.else"))
	assert.False(t, IsExcluded("verein.news"))
	assert.False(t, IsExcluded(PermVereineEdit))
	assert.False(t, IsExcluded(Wildcard))
}

func TestNormalizeCustomPermissions(t *testing.T) {
	t.Run("never_returns_nil", func(t *testing.T) {
		require.NotNil(t, NormalizeCustomPermissions(nil))
		require.Empty(t, NormalizeCustomPermissions(nil))
	})

	t.Run("wildcard_collapse_matches_resolution", func(t *testing.T) {
		stored := NormalizeCustomPermissions([]string{PermGalleryEdit, Wildcard, "verein.news.delete"})
		require.Equal(t, []string{Wildcard}, stored)
	})
}

func TestAdminUser_Effective(t *testing.T) {
	role := &Role{
		ID:          "role-1",
		Name:        "redakteur",
		Permissions: []string{PermNewsView, PermNewsEdit},
	}

	user := &AdminUser{
		Role:              role,
		CustomPermissions: []string{PermGalleryView},
	}

	effective := user.Effective()
	assert.ElementsMatch(t, []string{PermNewsView, PermNewsEdit, PermGalleryView}, effective)

	t.Run("roleless_user", func(t *testing.T) {
		orphan := &AdminUser{CustomPermissions: []string{PermEventsView}}
		assert.Equal(t, []string{PermEventsView}, orphan.Effective())
	})
}

func TestUnmarshalPermissions(t *testing.T) {
	t.Run("null_column_yields_empty_slice", func(t *testing.T) {
		var grants []string
		require.NoError(t, unmarshalPermissions(nil, &grants))
		require.NotNil(t, grants)
		assert.Empty(t, grants)
	})

	t.Run("excluded_names_are_dropped_on_read", func(t *testing.T) {
		raw := []byte(`["shared_gallery.view","verein.news.delete"]`)

		var grants []string
		require.NoError(t, unmarshalPermissions(raw, &grants))
		assert.Equal(t, []string{PermGalleryView}, grants)
	})

	t.Run("all_excluded_yields_empty_slice", func(t *testing.T) {
		raw := []byte(`["verein.news.edit","verein.news.delete"]`)

		var grants []string
		require.NoError(t, unmarshalPermissions(raw, &grants))
		require.NotNil(t, grants)
		assert.Empty(t, grants)
	})

	t.Run("malformed_json_errors", func(t *testing.T) {
		var grants []string
		assert.Error(t, unmarshalPermissions([]byte(`{"not":"a list"}`), &grants))
	})
}
