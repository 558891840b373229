package domain

import (
	"strings"
	"time"
)

// Role governs which routes and actions a user may reach.
type Role string

const (
	RoleWorker     Role = "worker"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleWorker, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// PresenceStatus records whether an employee is on duty.
type PresenceStatus string

const (
	StatusPresent PresenceStatus = "present"
	StatusAbsent  PresenceStatus = "absent"
)

func (s PresenceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Toggle flips present to absent and anything else to present.
func (s PresenceStatus) Toggle() PresenceStatus {
	if s == StatusPresent {
		return StatusAbsent
	}
	return StatusPresent
}

// User is an employee account. Every user can sign in; Role decides what
// they see once signed in.
type User struct {
	ID           string         `json:"id" bson:"_id"`
	Email        string         `json:"email" bson:"email"`
	PasswordHash string         `json:"-" bson:"password_hash,omitempty"`
	FirstName    string         `json:"first_name" bson:"first_name"`
	LastName     string         `json:"last_name" bson:"last_name"`
	Role         Role           `json:"role" bson:"role"`
	Status       PresenceStatus `json:"status" bson:"status"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// LandingPath is where a client should send the user right after sign-in.
func (u User) LandingPath() string {
	if u.Role == RoleAdmin {
		return "/admin"
	}
	return "/dashboard"
}
