package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"gameplan-service/internal/models"
)

var ErrChatNotFound = errors.New("chat not found")

// ChatRepository abstracts chat persistence.
type ChatRepository interface {
	CreateChat(ctx context.Context, name, chatType, avatarURL string) (models.Chat, error)
	GetChat(ctx context.Context, chatID int) (models.Chat, error)
	ListChats(ctx context.Context) ([]models.Chat, error)
	DeleteChat(ctx context.Context, chatID int) error
}

// ChatRepo is a sqlx implementation of ChatRepository.
type ChatRepo struct {
	db *sqlx.DB
}

// NewChatRepo constructs a ChatRepo.
func NewChatRepo(db *sqlx.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// CreateChat stores a new chat.
func (r *ChatRepo) CreateChat(ctx context.Context, name, chatType, avatarURL string) (models.Chat, error) {
	var chat models.Chat
	err := r.db.QueryRowxContext(ctx, `INSERT INTO chats (name, type, avatar_url) VALUES ($1, $2, $3) RETURNING id, name, type, avatar_url, created_at`, name, chatType, avatarURL).
		StructScan(&chat)
	return chat, err
}

// GetChat fetches a chat by id.
func (r *ChatRepo) GetChat(ctx context.Context, chatID int) (models.Chat, error) {
	var chat models.Chat
	err := r.db.GetContext(ctx, &chat, `SELECT id, name, type, avatar_url, created_at FROM chats WHERE id=$1`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, ErrChatNotFound
	}
	return chat, err
}

// ListChats returns every chat, oldest first.
func (r *ChatRepo) ListChats(ctx context.Context) ([]models.Chat, error) {
	chats := []models.Chat{}
	err := r.db.SelectContext(ctx, &chats, `SELECT id, name, type, avatar_url, created_at FROM chats ORDER BY created_at ASC, id ASC`)
	return chats, err
}

// DeleteChat removes a chat; its messages go with it.
func (r *ChatRepo) DeleteChat(ctx context.Context, chatID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chats WHERE id=$1`, chatID)
	if err != nil {
		return err
	}
	return expectAffected(res, ErrChatNotFound)
}

func expectAffected(res sql.Result, notFound error) error {
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}
