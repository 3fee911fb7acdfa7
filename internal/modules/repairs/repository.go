package repairs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// TicketRepository defines the data access contract for repair tickets.
type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	FindByID(ctx context.Context, id string) (*Ticket, error)
	ListByReporter(ctx context.Context, reporterID string) ([]Ticket, error)
	ListAll(ctx context.Context, status Status) ([]Ticket, error)
	UpdateStatus(ctx context.Context, id string, status Status, staffNote string) error
}

// ticketRepository implements TicketRepository with MariaDB queries.
type ticketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a repair ticket repository.
func NewTicketRepository(db *sql.DB) TicketRepository {
	return &ticketRepository{db: db}
}

const ticketColumns = `id, reporter_id, title, description, location, status, staff_note, created_at, updated_at`

func scanTicket(scan func(dest ...any) error) (*Ticket, error) {
	t := &Ticket{}
	err := scan(
		&t.ID, &t.ReporterID, &t.Title, &t.Description, &t.Location,
		&t.Status, &t.StaffNote, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a new ticket row.
func (r *ticketRepository) Create(ctx context.Context, t *Ticket) error {
	query := `INSERT INTO repair_tickets
	          (id, reporter_id, title, description, location, status, staff_note, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, '', ?)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.ReporterID, t.Title, t.Description, t.Location, t.Status, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting ticket: %w", err)
	}
	return nil
}

// FindByID retrieves one ticket. Returns CodeTicketNotFound if absent.
func (r *ticketRepository) FindByID(ctx context.Context, id string) (*Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM repair_tickets WHERE id = ?`

	t, err := scanTicket(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.CodeTicketNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying ticket: %w", err)
	}
	return t, nil
}

// ListByReporter returns the reporter's own tickets, newest first.
func (r *ticketRepository) ListByReporter(ctx context.Context, reporterID string) ([]Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM repair_tickets
	          WHERE reporter_id = ? ORDER BY created_at DESC`

	return r.queryTickets(ctx, query, reporterID)
}

// ListAll returns every ticket, optionally filtered by status, newest first.
func (r *ticketRepository) ListAll(ctx context.Context, status Status) ([]Ticket, error) {
	if status == "" {
		query := `SELECT ` + ticketColumns + ` FROM repair_tickets ORDER BY created_at DESC`
		return r.queryTickets(ctx, query)
	}
	query := `SELECT ` + ticketColumns + ` FROM repair_tickets
	          WHERE status = ? ORDER BY created_at DESC`
	return r.queryTickets(ctx, query, status)
}

func (r *ticketRepository) queryTickets(ctx context.Context, query string, args ...any) ([]Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		t, err := scanTicket(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning ticket row: %w", err)
		}
		tickets = append(tickets, *t)
	}

	return tickets, rows.Err()
}

// UpdateStatus moves a ticket to a new status and records the staff note.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status Status, staffNote string) error {
	query := `UPDATE repair_tickets SET status = ?, staff_note = ?, updated_at = NOW()
	          WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, staffNote, id)
	if err != nil {
		return fmt.Errorf("updating ticket status: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.New(apperror.CodeTicketNotFound)
	}
	return nil
}
