package ws

import (
	"context"
	"fmt"
	"time"

	"gameplan-service/internal/display"
	"gameplan-service/internal/models"
	"gameplan-service/internal/repositories"
)

// Feeds loads the collections behind each topic and republishes them after
// writes.
type Feeds struct {
	hub      *Hub
	chats    repositories.ChatRepository
	messages repositories.MessageRepository
	loc      *time.Location
}

func NewFeeds(hub *Hub, chats repositories.ChatRepository, messages repositories.MessageRepository, loc *time.Location) *Feeds {
	return &Feeds{hub: hub, chats: chats, messages: messages, loc: loc}
}

// ChatList is the loader for TopicChats.
func (f *Feeds) ChatList(ctx context.Context) (any, error) {
	chats, err := f.chats.ListChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return chats, nil
}

// Timeline returns the loader for a chat's message topic. Messages are sent
// in day sections.
func (f *Feeds) Timeline(chatID int) Loader {
	return func(ctx context.Context) (any, error) {
		msgs, err := f.messages.ListMessages(ctx, chatID)
		if err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		return GroupMessages(msgs, f.loc), nil
	}
}

// GroupMessages sections a chat timeline by the local day of each message.
func GroupMessages(msgs []models.Message, loc *time.Location) []display.Section[models.Message] {
	return display.Sections(display.GroupByDay(msgs, func(m models.Message) string {
		return display.DayKey(m.CreatedAt, loc)
	}))
}

// RefreshChats reloads the chat list and publishes it.
func (f *Feeds) RefreshChats(ctx context.Context) error {
	data, err := f.ChatList(ctx)
	if err != nil {
		return err
	}
	return f.hub.Publish(TopicChats, data)
}

// RefreshMessages reloads one chat's timeline and publishes it.
func (f *Feeds) RefreshMessages(ctx context.Context, chatID int) error {
	data, err := f.Timeline(chatID)(ctx)
	if err != nil {
		return err
	}
	return f.hub.Publish(ChatTopic(chatID), data)
}

// ChatDeleted pushes an empty timeline to anyone still watching the chat and
// retires its topic.
func (f *Feeds) ChatDeleted(_ context.Context, chatID int) error {
	topic := ChatTopic(chatID)
	var err error
	if f.hub.Subscribers(topic) > 0 {
		err = f.hub.Publish(topic, []display.Section[models.Message]{})
	}
	f.hub.Retire(topic)
	return err
}
