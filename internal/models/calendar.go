package models

import "time"

// CalendarEvent is a team event pinned to a day. Recurrence holds an optional RRULE.
type CalendarEvent struct {
	ID         int       `db:"id" json:"id"`
	Day        string    `db:"day" json:"day"`
	Name       string    `db:"name" json:"name"`
	Location   string    `db:"location" json:"location"`
	Recurrence string    `db:"recurrence" json:"recurrence,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AgendaItem is one occurrence of an event as rendered in the agenda.
type AgendaItem struct {
	EventID  int    `json:"event_id"`
	Name     string `json:"name"`
	Location string `json:"data"`
	Day      string `json:"day"`

	// HasLocation is false when Location is only the blank placeholder.
	HasLocation bool `json:"-"`
}

// Announcement is a team notice.
type Announcement struct {
	ID          int       `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Day         string    `db:"day" json:"day"`
	PostedAt    time.Time `db:"posted_at" json:"posted_at"`
}
