package models

import "time"

// SnapshotMember keeps the password hash that TeamMember hides from API responses.
type SnapshotMember struct {
	TeamMember
	PasswordHash string `json:"password_hash,omitempty"`
}

// Snapshot is the serialisable form of the whole in-memory state.
type Snapshot struct {
	ID          int64            `json:"id,omitempty"`
	Items       []InventoryItem  `json:"items"`
	Categories  []Category       `json:"categories"`
	Locations   []Location       `json:"locations"`
	Sales       []Sale           `json:"sales"`
	Tasks       []Task           `json:"tasks"`
	TeamMembers []SnapshotMember `json:"team_members"`
	QRHistory   []QRHistoryEntry `json:"qr_history"`
	CreatedAt   time.Time        `json:"created_at"`
}
