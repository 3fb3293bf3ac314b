package service

import (
	"strings"

	"github.com/IDobkov90/ufc/internal/model"
)

// Permission tags follow a prefix convention; the table below is the single
// place that maps a role to the prefixes it may use. Adding a role is a data
// change, not new conditionals.
var rolePrefixes = map[model.Role][]string{
	model.RoleModerator: {"MODERATE_", "VIEW_"},
	model.RoleUser:      {"VIEW_", "CREATE_"},
}

// HasPermission reports whether the role may use the given permission tag.
// Admin passes everything; unknown roles and tags fail closed.
func HasPermission(role model.Role, permission string) bool {
	if role == model.RoleAdmin {
		return true
	}
	for _, prefix := range rolePrefixes[role] {
		if strings.HasPrefix(permission, prefix) {
			return true
		}
	}
	return false
}

// CanModify reports whether the actor may edit or delete content owned by
// ownerID: the owner themselves, or any moderator/admin.
func CanModify(actorID, ownerID uint, role model.Role) bool {
	if actorID == ownerID {
		return true
	}
	return role == model.RoleModerator || role == model.RoleAdmin
}
