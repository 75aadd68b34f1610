package user

import (
	"time"

	"hirepulse/internal/common"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
)

func IsKnownRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleRecruiter, RoleCandidate:
		return true
	default:
		return false
	}
}

// User is an account. Accounts are never hard-deleted; deactivation flips
// IsActive and every authenticated request re-checks it.
type User struct {
	ID           common.ID  `json:"id" bson:"_id"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Role         Role       `json:"role" bson:"role"`
	FullName     string     `json:"full_name" bson:"full_name"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}
