package models

// Screens a route can target.
const (
	ScreenCalendar     = "Calendar"
	ScreenConversation = "Conversation"
)

// Route tells the client which screen to open and with what parameters.
type Route struct {
	Screen string      `json:"screen"`
	Params RouteParams `json:"params"`
}

// RouteParams are forwarded untouched to the destination screen.
type RouteParams struct {
	Day                  string `json:"day,omitempty"`
	Location             string `json:"location,omitempty"`
	ShowCreateEventModal bool   `json:"show_create_event_modal,omitempty"`
	ChatID               int    `json:"chat_id,omitempty"`
}
