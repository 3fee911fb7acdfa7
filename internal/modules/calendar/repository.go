package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// EventRepository defines the data access contract for calendar events.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id string) (*Event, error)

	// ListOverlapping returns events that overlap [from, to), ordered by
	// start time.
	ListOverlapping(ctx context.Context, from, to time.Time) ([]Event, error)

	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}

// eventRepository implements EventRepository with MariaDB queries.
type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a calendar event repository.
func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, description, location, starts_at, ends_at, all_day, created_by, created_at`

func scanEvent(scan func(dest ...any) error) (*Event, error) {
	e := &Event{}
	err := scan(
		&e.ID, &e.Title, &e.Description, &e.Location,
		&e.StartsAt, &e.EndsAt, &e.AllDay, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new event row.
func (r *eventRepository) Create(ctx context.Context, e *Event) error {
	query := `INSERT INTO calendar_events
	          (id, title, description, location, starts_at, ends_at, all_day, created_by, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Title, e.Description, e.Location,
		e.StartsAt, e.EndsAt, e.AllDay, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// FindByID retrieves one event. Returns CodeEventNotFound if absent.
func (r *eventRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = ?`

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.CodeEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return e, nil
}

// ListOverlapping returns events overlapping the window. An event overlaps
// when it starts before the window ends and ends after the window starts.
func (r *eventRepository) ListOverlapping(ctx context.Context, from, to time.Time) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events
	          WHERE starts_at < ? AND ends_at > ?
	          ORDER BY starts_at ASC`

	rows, err := r.db.QueryContext(ctx, query, to, from)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		events = append(events, *e)
	}

	return events, rows.Err()
}

// Update rewrites the mutable fields of an event.
func (r *eventRepository) Update(ctx context.Context, e *Event) error {
	query := `UPDATE calendar_events
	          SET title = ?, description = ?, location = ?, starts_at = ?, ends_at = ?, all_day = ?
	          WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, e.Location, e.StartsAt, e.EndsAt, e.AllDay, e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.New(apperror.CodeEventNotFound)
	}
	return nil
}

// Delete removes an event.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.New(apperror.CodeEventNotFound)
	}
	return nil
}
