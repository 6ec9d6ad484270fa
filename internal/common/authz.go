package common

import (
	"slices"

	"planit/internal/models"
)

// AuthorizeSelfOrAdmin passes when caller is the requested user or an admin.
func AuthorizeSelfOrAdmin(requestedID models.ID, caller *models.User) error {
	if caller == nil {
		return NewUnauthenticated("User not authenticated")
	}
	if caller.ID == requestedID || caller.Role == models.RoleAdmin {
		return nil
	}
	return NewForbidden("Forbidden: Access denied")
}

// AuthorizeRole passes when caller holds one of the allowed roles.
func AuthorizeRole(allowed []models.Role, caller *models.User) error {
	if caller == nil {
		return NewUnauthenticated("User not authenticated")
	}
	if slices.Contains(allowed, caller.Role) {
		return nil
	}
	return NewForbidden("Forbidden: Access denied")
}
