package auth

import (
	"github.com/arvindh/interntrack/internal/app/approval"
	"github.com/arvindh/interntrack/internal/app/models"
)

// CanDecide reports whether a user may decide at the given chain position:
// the user must be faculty and hold the matching capability. Pure check, the
// caller's capability set travels with the authenticated user.
func CanDecide(user *models.User, role approval.Role) bool {
	if user == nil || user.Role != models.RoleFaculty {
		return false
	}
	return user.HoldsRole(role)
}

// IsFaculty reports whether the user holds a faculty account
func IsFaculty(user *models.User) bool {
	return user != nil && user.Role == models.RoleFaculty
}

// IsStudent reports whether the user holds a student account
func IsStudent(user *models.User) bool {
	return user != nil && user.Role == models.RoleStudent
}

// ChainRoles filters the user's capability set down to valid chain roles.
func ChainRoles(user *models.User) []approval.Role {
	if user == nil {
		return nil
	}
	var roles []approval.Role
	for _, r := range user.FacultyRoles {
		if r.IsValid() {
			roles = append(roles, r)
		}
	}
	return roles
}
