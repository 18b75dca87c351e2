package models

import "time"

// Message is an append-only chat message.
type Message struct {
	ID        int       `db:"id" json:"id"`
	ChatID    int       `db:"chat_id" json:"chat_id"`
	SenderID  string    `db:"sender_id" json:"sender_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SnapshotEvent is what live subscribers receive: the whole current view of a
// collection, never a delta.
type SnapshotEvent struct {
	Type    string `json:"type"`
	Topic   string `json:"topic"`
	Version int64  `json:"version"`
	Data    any    `json:"data"`
}
