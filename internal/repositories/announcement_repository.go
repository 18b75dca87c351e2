package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"gameplan-service/internal/models"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

// AnnouncementRepository abstracts announcement persistence.
type AnnouncementRepository interface {
	CreateAnnouncement(ctx context.Context, title, description, day string) (models.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, announcementID int) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AnnouncementRepo is a sqlx implementation of AnnouncementRepository.
type AnnouncementRepo struct {
	db *sqlx.DB
}

// NewAnnouncementRepo constructs an AnnouncementRepo.
func NewAnnouncementRepo(db *sqlx.DB) *AnnouncementRepo {
	return &AnnouncementRepo{db: db}
}

var announcementColumns = []string{"id", "title", "description", dayColumn("day"), "posted_at"}

// CreateAnnouncement stores a new announcement.
func (r *AnnouncementRepo) CreateAnnouncement(ctx context.Context, title, description, day string) (models.Announcement, error) {
	query, args, err := psql.Insert("announcements").
		Columns("title", "description", "day").
		Values(title, description, day).
		Suffix("RETURNING " + joinColumns(announcementColumns)).
		ToSql()
	if err != nil {
		return models.Announcement{}, fmt.Errorf("build insert: %w", err)
	}

	var a models.Announcement
	err = r.db.QueryRowxContext(ctx, query, args...).StructScan(&a)
	return a, err
}

// ListAnnouncements returns announcements, newest first.
func (r *AnnouncementRepo) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	query, args, err := psql.Select(announcementColumns...).
		From("announcements").
		OrderBy("posted_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	out := []models.Announcement{}
	err = r.db.SelectContext(ctx, &out, query, args...)
	return out, err
}

// DeleteAnnouncement removes a single announcement.
func (r *AnnouncementRepo) DeleteAnnouncement(ctx context.Context, announcementID int) error {
	query, args, err := psql.Delete("announcements").Where(sq.Eq{"id": announcementID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectAffected(res, ErrAnnouncementNotFound)
}

// DeleteOlderThan purges announcements posted before cutoff.
func (r *AnnouncementRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete("announcements").Where(sq.Lt{"posted_at": cutoff}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
