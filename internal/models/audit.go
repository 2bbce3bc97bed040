package models

import "time"

type AuditLog struct {
	ID         int64     `db:"id" json:"id"`
	UserID     *int64    `db:"user_id" json:"user_id,omitempty"`
	Username   *string   `db:"username" json:"username,omitempty"`
	Action     string    `db:"action" json:"action"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	EntityID   *int64    `db:"entity_id" json:"entity_id,omitempty"`
	Details    string    `db:"details" json:"details,omitempty"`
	IP         string    `db:"ip" json:"ip"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

func (a *AuditLog) Actor() string {
	if a.Username != nil {
		return *a.Username
	}
	return "-"
}
