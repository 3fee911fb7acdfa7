package staffcodes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// StaffCodeRepository defines the data access contract for staff codes.
type StaffCodeRepository interface {
	Create(ctx context.Context, code *StaffCode) error
	FindByCode(ctx context.Context, code string) (*StaffCode, error)
	List(ctx context.Context) ([]StaffCode, error)
	Revoke(ctx context.Context, id string) error

	// ConsumeUse increments use_count only while it is below max_uses.
	// Returns false when the budget was already spent -- the conditional
	// update makes concurrent redemptions safe without a transaction.
	ConsumeUse(ctx context.Context, id string) (bool, error)
}

// staffCodeRepository implements StaffCodeRepository with MariaDB queries.
type staffCodeRepository struct {
	db *sql.DB
}

// NewStaffCodeRepository creates a staff code repository.
func NewStaffCodeRepository(db *sql.DB) StaffCodeRepository {
	return &staffCodeRepository{db: db}
}

const codeColumns = `id, code, max_uses, use_count, created_by, created_at, expires_at, revoked_at`

// Create inserts a new staff code row.
func (r *staffCodeRepository) Create(ctx context.Context, code *StaffCode) error {
	query := `INSERT INTO staff_codes (id, code, max_uses, use_count, created_by, created_at, expires_at)
	          VALUES (?, ?, ?, 0, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		code.ID, code.Code, code.MaxUses, code.CreatedBy, code.CreatedAt, code.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("inserting staff code: %w", err)
	}
	return nil
}

// FindByCode retrieves a staff code by its code string.
// Returns CodeInvalidStaffCode if no such code exists.
func (r *staffCodeRepository) FindByCode(ctx context.Context, code string) (*StaffCode, error) {
	query := `SELECT ` + codeColumns + ` FROM staff_codes WHERE code = ?`

	sc := &StaffCode{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&sc.ID, &sc.Code, &sc.MaxUses, &sc.UseCount,
		&sc.CreatedBy, &sc.CreatedAt, &sc.ExpiresAt, &sc.RevokedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.CodeInvalidStaffCode)
	}
	if err != nil {
		return nil, fmt.Errorf("querying staff code: %w", err)
	}
	return sc, nil
}

// List returns all staff codes, newest first.
func (r *staffCodeRepository) List(ctx context.Context) ([]StaffCode, error) {
	query := `SELECT ` + codeColumns + ` FROM staff_codes ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing staff codes: %w", err)
	}
	defer rows.Close()

	var codes []StaffCode
	for rows.Next() {
		var sc StaffCode
		if err := rows.Scan(
			&sc.ID, &sc.Code, &sc.MaxUses, &sc.UseCount,
			&sc.CreatedBy, &sc.CreatedAt, &sc.ExpiresAt, &sc.RevokedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning staff code row: %w", err)
		}
		codes = append(codes, sc)
	}

	return codes, rows.Err()
}

// Revoke stamps revoked_at so the code can no longer be redeemed.
func (r *staffCodeRepository) Revoke(ctx context.Context, id string) error {
	query := `UPDATE staff_codes SET revoked_at = NOW() WHERE id = ? AND revoked_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("revoking staff code: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.New(apperror.CodeInvalidStaffCode)
	}
	return nil
}

// ConsumeUse spends one use of the code if budget remains.
func (r *staffCodeRepository) ConsumeUse(ctx context.Context, id string) (bool, error) {
	query := `UPDATE staff_codes SET use_count = use_count + 1
	          WHERE id = ? AND use_count < max_uses AND revoked_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("consuming staff code use: %w", err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}
