package service

import (
	"testing"

	"github.com/IDobkov90/ufc/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		role       model.Role
		permission string
		want       bool
	}{
		{model.RoleAdmin, "MODERATE_TOPICS", true},
		{model.RoleAdmin, "DELETE_ANY_POST", true},
		{model.RoleAdmin, "ANYTHING_AT_ALL", true},
		{model.RoleModerator, "MODERATE_TOPICS", true},
		{model.RoleModerator, "MODERATE_POSTS", true},
		{model.RoleModerator, "VIEW_REPORTS", true},
		{model.RoleModerator, "DELETE_ANY_POST", false},
		{model.RoleUser, "VIEW_TOPICS", true},
		{model.RoleUser, "CREATE_POST", true},
		{model.RoleUser, "MODERATE_TOPICS", false},
		{model.Role("GHOST"), "VIEW_TOPICS", false},
		{model.RoleUser, "", false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, HasPermission(tc.role, tc.permission),
			"role=%s permission=%s", tc.role, tc.permission)
	}
}

func TestCanModify(t *testing.T) {
	assert.True(t, CanModify(1, 1, model.RoleUser), "owner edits own content")
	assert.False(t, CanModify(2, 1, model.RoleUser), "stranger cannot")
	assert.True(t, CanModify(2, 1, model.RoleModerator))
	assert.True(t, CanModify(2, 1, model.RoleAdmin))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, model.RoleUser.Valid())
	assert.True(t, model.RoleModerator.Valid())
	assert.True(t, model.RoleAdmin.Valid())
	assert.False(t, model.Role("SUPERUSER").Valid())
}
