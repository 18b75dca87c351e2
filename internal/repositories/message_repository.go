package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"gameplan-service/internal/models"
)

// MessageRepository defines interactions for chat messages. Messages are
// append-only.
type MessageRepository interface {
	CreateMessage(ctx context.Context, chatID int, senderID, text string) (models.Message, error)
	ListMessages(ctx context.Context, chatID int) ([]models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage appends a message to a chat.
func (r *MessageRepo) CreateMessage(ctx context.Context, chatID int, senderID, text string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (chat_id, sender_id, text) VALUES ($1, $2, $3) RETURNING id, chat_id, sender_id, text, created_at`, chatID, senderID, text).
		StructScan(&msg)
	return msg, err
}

// ListMessages returns the chat's messages ordered by creation time.
func (r *MessageRepo) ListMessages(ctx context.Context, chatID int) ([]models.Message, error) {
	msgs := []models.Message{}
	err := r.db.SelectContext(ctx, &msgs, `SELECT id, chat_id, sender_id, text, created_at FROM messages WHERE chat_id=$1 ORDER BY created_at ASC, id ASC`, chatID)
	return msgs, err
}
