package models

import "time"

// TeamRole controls what a member may do when authentication is enabled.
type TeamRole string

const (
	RoleAdmin   TeamRole = "admin"
	RoleManager TeamRole = "manager"
	RoleUser    TeamRole = "user"
)

// PresenceStatus is a team member's availability.
type PresenceStatus string

const (
	PresenceActive  PresenceStatus = "active"
	PresenceAway    PresenceStatus = "away"
	PresenceBusy    PresenceStatus = "busy"
	PresenceOffline PresenceStatus = "offline"
)

// TeamMember is a warehouse employee. PasswordHash is only set for members allowed to log in.
type TeamMember struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         TeamRole       `json:"role"`
	Department   string         `json:"department,omitempty"`
	Phone        *string        `json:"phone,omitempty"`
	Avatar       *string        `json:"avatar,omitempty"`
	Status       PresenceStatus `json:"status"`
	PasswordHash string         `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
}
