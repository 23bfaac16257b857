package models

import (
	"time"

	"github.com/arvindh/interntrack/internal/app/approval"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             int64           `json:"id" db:"id" example:"1"`
	Name           string          `json:"name" db:"name" example:"Priya Raman"`
	Email          string          `json:"email" db:"email" example:"priya@college.edu"`
	Password       string          `json:"-" db:"password"` // hashed, excluded from JSON
	Role           RoleType        `json:"role" db:"role" example:"student"`
	Department     string          `json:"department" db:"department" example:"CSE"`
	RegisterNumber *string         `json:"registerNumber,omitempty" db:"register_number" example:"CS20230042"`
	FacultyRoles   []approval.Role `json:"facultyRoles,omitempty" db:"faculty_roles"` // approval capabilities, faculty only
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// HoldsRole reports whether the user carries the given approval capability.
func (u *User) HoldsRole(role approval.Role) bool {
	for _, r := range u.FacultyRoles {
		if r == role {
			return true
		}
	}
	return false
}
