package models

import (
	"strconv"
	"time"
)

// Chat types.
const (
	ChatTypeTeam    = "team"
	ChatTypePrivate = "private"
)

// Chat is a team or private conversation.
type Chat struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	AvatarURL string    `db:"avatar_url" json:"avatar_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// HasAvatar reports whether the chat should render a picture instead of the placeholder.
func (c Chat) HasAvatar() bool {
	return c.AvatarURL != ""
}

// DisplayName falls back to the id when a chat was stored without a name.
func (c Chat) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return strconv.Itoa(c.ID)
}
