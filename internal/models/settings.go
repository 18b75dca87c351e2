package models

import "time"

// Online status values.
const (
	StatusOnline  = "online"
	StatusAway    = "away"
	StatusOffline = "offline"
)

// Settings is a member's profile and preferences.
type Settings struct {
	UserID               string    `db:"user_id" json:"user_id"`
	DisplayName          string    `db:"display_name" json:"display_name"`
	Status               string    `db:"status" json:"status"`
	Bio                  string    `db:"bio" json:"bio"`
	NotificationsEnabled bool      `db:"notifications_enabled" json:"notifications_enabled"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultSettings is what a member sees before saving anything.
func DefaultSettings(userID string) Settings {
	return Settings{UserID: userID, Status: StatusOnline, NotificationsEnabled: true}
}

// StatusColor maps the online status to the indicator colour.
func StatusColor(status string) string {
	switch status {
	case StatusOnline:
		return "green"
	case StatusAway:
		return "orange"
	case StatusOffline:
		return "red"
	default:
		return "gray"
	}
}
