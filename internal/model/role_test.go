package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionsFor(t *testing.T) {
	tests := []struct {
		role  string
		perms []string
	}{
		{RoleAdmin, []string{PermView, PermTranslate, PermReview, PermManageTranslations, PermManageLanguages, PermManageUsers}},
		{RoleManager, []string{PermView, PermTranslate, PermReview, PermManageTranslations}},
		{RoleTranslator, []string{PermView, PermTranslate}},
		{RoleViewer, []string{PermView}},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.ElementsMatch(t, tt.perms, PermissionsFor(tt.role))
		})
	}
}

func TestPermissionsForUnknownRole(t *testing.T) {
	assert.Empty(t, PermissionsFor("superuser"))
	assert.Empty(t, PermissionsFor(""))
}

func TestPermissionsForReturnsCopy(t *testing.T) {
	perms := PermissionsFor(RoleViewer)
	perms[0] = "tampered"
	assert.Equal(t, []string{PermView}, PermissionsFor(RoleViewer))
}

func TestRoleHas(t *testing.T) {
	assert.True(t, RoleHas(RoleAdmin, PermManageUsers))
	assert.True(t, RoleHas(RoleManager, PermReview))
	assert.True(t, RoleHas(RoleTranslator, PermTranslate))
	assert.True(t, RoleHas(RoleViewer, PermView))

	assert.False(t, RoleHas(RoleManager, PermManageUsers))
	assert.False(t, RoleHas(RoleManager, PermManageLanguages))
	assert.False(t, RoleHas(RoleTranslator, PermReview))
	assert.False(t, RoleHas(RoleViewer, PermTranslate))
	assert.False(t, RoleHas("superuser", PermView))
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleManager, RoleTranslator, RoleViewer} {
		assert.True(t, ValidRole(role))
	}
	assert.False(t, ValidRole("root"))
	assert.False(t, ValidRole(""))
}

func TestValidPermission(t *testing.T) {
	for _, perm := range AllPermissions {
		assert.True(t, ValidPermission(perm))
	}
	assert.False(t, ValidPermission("manage_keys"))
	assert.False(t, ValidPermission(""))
}
