package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"gameplan-service/internal/models"
)

// SettingsRepository stores per-member settings.
type SettingsRepository interface {
	GetSettings(ctx context.Context, userID string) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) (models.Settings, error)
}

// SettingsRepo is a sqlx implementation of SettingsRepository.
type SettingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo constructs a SettingsRepo.
func NewSettingsRepo(db *sqlx.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetSettings returns saved settings, or the defaults when none exist yet.
func (r *SettingsRepo) GetSettings(ctx context.Context, userID string) (models.Settings, error) {
	var s models.Settings
	err := r.db.GetContext(ctx, &s, `SELECT user_id, display_name, status, bio, notifications_enabled, updated_at FROM member_settings WHERE user_id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(userID), nil
	}
	return s, err
}

// SaveSettings upserts the member's settings.
func (r *SettingsRepo) SaveSettings(ctx context.Context, s models.Settings) (models.Settings, error) {
	var saved models.Settings
	err := r.db.QueryRowxContext(ctx, `INSERT INTO member_settings (user_id, display_name, status, bio, notifications_enabled, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            display_name = EXCLUDED.display_name,
            status = EXCLUDED.status,
            bio = EXCLUDED.bio,
            notifications_enabled = EXCLUDED.notifications_enabled,
            updated_at = NOW()
        RETURNING user_id, display_name, status, bio, notifications_enabled, updated_at`,
		s.UserID, s.DisplayName, s.Status, s.Bio, s.NotificationsEnabled).StructScan(&saved)
	return saved, err
}
