package announcements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// AnnouncementRepository defines the data access contract for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *Announcement) error
	FindByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, offset, limit int) ([]Announcement, int, error)
	Update(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id string) error
}

// announcementRepository implements AnnouncementRepository with MariaDB
// queries.
type announcementRepository struct {
	db *sql.DB
}

// NewAnnouncementRepository creates an announcement repository.
func NewAnnouncementRepository(db *sql.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

const announcementColumns = `id, title, body, author_id, pinned, created_at, updated_at`

// Create inserts a new announcement row.
func (r *announcementRepository) Create(ctx context.Context, a *Announcement) error {
	query := `INSERT INTO announcements (id, title, body, author_id, pinned, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Title, a.Body, a.AuthorID, a.Pinned, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting announcement: %w", err)
	}
	return nil
}

// FindByID retrieves one announcement.
// Returns CodeAnnouncementNotFound if no such row exists.
func (r *announcementRepository) FindByID(ctx context.Context, id string) (*Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = ?`

	a := &Announcement{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Body, &a.AuthorID, &a.Pinned, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.CodeAnnouncementNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying announcement: %w", err)
	}
	return a, nil
}

// List returns one page of announcements plus the total count. Pinned posts
// sort first, then newest first.
func (r *announcementRepository) List(ctx context.Context, offset, limit int) ([]Announcement, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM announcements`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting announcements: %w", err)
	}

	query := `SELECT ` + announcementColumns + ` FROM announcements
	          ORDER BY pinned DESC, created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing announcements: %w", err)
	}
	defer rows.Close()

	var items []Announcement
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Body, &a.AuthorID, &a.Pinned, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scanning announcement row: %w", err)
		}
		items = append(items, a)
	}

	return items, total, rows.Err()
}

// Update rewrites the mutable fields of an announcement.
func (r *announcementRepository) Update(ctx context.Context, a *Announcement) error {
	query := `UPDATE announcements SET title = ?, body = ?, pinned = ?, updated_at = NOW()
	          WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, a.Title, a.Body, a.Pinned, a.ID)
	if err != nil {
		return fmt.Errorf("updating announcement: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.New(apperror.CodeAnnouncementNotFound)
	}
	return nil
}

// Delete removes an announcement.
func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting announcement: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.New(apperror.CodeAnnouncementNotFound)
	}
	return nil
}
