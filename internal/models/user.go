package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User roles. Role checks are case-insensitive everywhere; the
// canonical lowercase form is what gets stored.
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) HasRole(roles ...string) bool {
	for _, role := range roles {
		if strings.EqualFold(u.Role, role) {
			return true
		}
	}
	return false
}
