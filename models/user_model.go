package models

import "gorm.io/gorm"

type Role string

const (
	RoleOperator   Role = "operator"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOperator, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role may edit or delete boxes and units.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	gorm.Model
	Email string `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Name  string `json:"name"`
	Role  Role   `json:"role" gorm:"size:20;default:'operator';not null"`
}
