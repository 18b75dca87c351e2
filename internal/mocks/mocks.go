package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gameplan-service/internal/models"
)

type ChatRepositoryMock struct {
	mock.Mock
}

func (m *ChatRepositoryMock) CreateChat(ctx context.Context, name, chatType, avatarURL string) (models.Chat, error) {
	args := m.Called(ctx, name, chatType, avatarURL)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Error(1)
}

func (m *ChatRepositoryMock) GetChat(ctx context.Context, chatID int) (models.Chat, error) {
	args := m.Called(ctx, chatID)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Error(1)
}

func (m *ChatRepositoryMock) ListChats(ctx context.Context) ([]models.Chat, error) {
	args := m.Called(ctx)
	var list []models.Chat
	if val := args.Get(0); val != nil {
		list = val.([]models.Chat)
	}
	return list, args.Error(1)
}

func (m *ChatRepositoryMock) DeleteChat(ctx context.Context, chatID int) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, chatID int, senderID, text string) (models.Message, error) {
	args := m.Called(ctx, chatID, senderID, text)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListMessages(ctx context.Context, chatID int) ([]models.Message, error) {
	args := m.Called(ctx, chatID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

type EventRepositoryMock struct {
	mock.Mock
}

func (m *EventRepositoryMock) CreateEvent(ctx context.Context, event models.CalendarEvent) (models.CalendarEvent, error) {
	args := m.Called(ctx, event)
	var out models.CalendarEvent
	if val := args.Get(0); val != nil {
		out = val.(models.CalendarEvent)
	}
	return out, args.Error(1)
}

func (m *EventRepositoryMock) ListEvents(ctx context.Context, from, to string) ([]models.CalendarEvent, error) {
	args := m.Called(ctx, from, to)
	var events []models.CalendarEvent
	if val := args.Get(0); val != nil {
		events = val.([]models.CalendarEvent)
	}
	return events, args.Error(1)
}

func (m *EventRepositoryMock) DeleteEvent(ctx context.Context, eventID int) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type AnnouncementRepositoryMock struct {
	mock.Mock
}

func (m *AnnouncementRepositoryMock) CreateAnnouncement(ctx context.Context, title, description, day string) (models.Announcement, error) {
	args := m.Called(ctx, title, description, day)
	var out models.Announcement
	if val := args.Get(0); val != nil {
		out = val.(models.Announcement)
	}
	return out, args.Error(1)
}

func (m *AnnouncementRepositoryMock) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	args := m.Called(ctx)
	var list []models.Announcement
	if val := args.Get(0); val != nil {
		list = val.([]models.Announcement)
	}
	return list, args.Error(1)
}

func (m *AnnouncementRepositoryMock) DeleteAnnouncement(ctx context.Context, announcementID int) error {
	args := m.Called(ctx, announcementID)
	return args.Error(0)
}

func (m *AnnouncementRepositoryMock) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	var n int64
	if val := args.Get(0); val != nil {
		n = val.(int64)
	}
	return n, args.Error(1)
}

type SettingsRepositoryMock struct {
	mock.Mock
}

func (m *SettingsRepositoryMock) GetSettings(ctx context.Context, userID string) (models.Settings, error) {
	args := m.Called(ctx, userID)
	var s models.Settings
	if val := args.Get(0); val != nil {
		s = val.(models.Settings)
	}
	return s, args.Error(1)
}

func (m *SettingsRepositoryMock) SaveSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	args := m.Called(ctx, settings)
	var s models.Settings
	if val := args.Get(0); val != nil {
		s = val.(models.Settings)
	}
	return s, args.Error(1)
}

// LiveFeedMock stands in for the websocket feeds handlers refresh after writes.
type LiveFeedMock struct {
	mock.Mock
}

func (m *LiveFeedMock) RefreshChats(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *LiveFeedMock) RefreshMessages(ctx context.Context, chatID int) error {
	return m.Called(ctx, chatID).Error(0)
}

func (m *LiveFeedMock) ChatDeleted(ctx context.Context, chatID int) error {
	return m.Called(ctx, chatID).Error(0)
}
