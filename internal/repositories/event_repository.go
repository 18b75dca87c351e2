package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"gameplan-service/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

// EventRepository abstracts calendar event persistence.
type EventRepository interface {
	CreateEvent(ctx context.Context, event models.CalendarEvent) (models.CalendarEvent, error)
	ListEvents(ctx context.Context, from, to string) ([]models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, eventID int) error
}

// EventRepo is a sqlx implementation of EventRepository.
type EventRepo struct {
	db *sqlx.DB
}

// NewEventRepo constructs an EventRepo.
func NewEventRepo(db *sqlx.DB) *EventRepo {
	return &EventRepo{db: db}
}

var eventColumns = []string{"id", dayColumn("day"), "name", "location", "recurrence", "created_at"}

// CreateEvent stores an event.
func (r *EventRepo) CreateEvent(ctx context.Context, event models.CalendarEvent) (models.CalendarEvent, error) {
	query, args, err := psql.Insert("calendar_events").
		Columns("day", "name", "location", "recurrence").
		Values(event.Day, event.Name, event.Location, event.Recurrence).
		Suffix("RETURNING " + joinColumns(eventColumns)).
		ToSql()
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("build insert: %w", err)
	}

	var created models.CalendarEvent
	err = r.db.QueryRowxContext(ctx, query, args...).StructScan(&created)
	return created, err
}

// ListEvents returns events that can occur within [from, to]: single events
// inside the window and recurring events that started on or before to.
func (r *EventRepo) ListEvents(ctx context.Context, from, to string) ([]models.CalendarEvent, error) {
	query, args, err := listEventsQuery(from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	events := []models.CalendarEvent{}
	err = r.db.SelectContext(ctx, &events, query, args...)
	return events, err
}

func listEventsQuery(from, to string) sq.SelectBuilder {
	return psql.Select(eventColumns...).
		From("calendar_events").
		Where(sq.LtOrEq{"day": to}).
		Where(sq.Or{
			sq.GtOrEq{"day": from},
			sq.NotEq{"recurrence": ""},
		}).
		OrderBy("day ASC", "id ASC")
}

// DeleteEvent removes an event.
func (r *EventRepo) DeleteEvent(ctx context.Context, eventID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id=$1`, eventID)
	if err != nil {
		return err
	}
	return expectAffected(res, ErrEventNotFound)
}
