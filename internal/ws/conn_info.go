package ws

import "time"

// ConnInfo identifies a live subscription in ws_events and logs.
type ConnInfo struct {
	ConnID      string
	UserID      string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}
