package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the authorization level of a user.
type Role string

const (
	RoleManager   Role = "manager"
	RoleAttendant Role = "attendant"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleAttendant
}

func (r Role) IsManager() bool {
	return r == RoleManager
}

// User represents a staff member of the store.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
