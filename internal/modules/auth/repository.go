package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// AccountRepository defines the data access contract for account operations.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error

	// Password reset.
	CreateResetToken(ctx context.Context, accountID, email, tokenHash string, expiresAt time.Time) error
	FindResetToken(ctx context.Context, tokenHash string) (accountID string, expiresAt time.Time, usedAt *time.Time, err error)
	MarkResetTokenUsed(ctx context.Context, tokenHash string) error
}

// accountRepository implements AccountRepository with hand-written MariaDB
// queries.
type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates an account repository backed by the given DB pool.
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, email, name, password_hash, type, level, grade, class, role, created_at, last_login_at`

// scanAccount reads one account row in accountColumns order.
func scanAccount(row *sql.Row) (*Account, error) {
	account := &Account{}
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Name,
		&account.PasswordHash,
		&account.Type,
		&account.Level,
		&account.Grade,
		&account.Class,
		&account.Role,
		&account.CreatedAt,
		&account.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Create inserts a new account row.
func (r *accountRepository) Create(ctx context.Context, account *Account) error {
	query := `INSERT INTO accounts (id, email, name, password_hash, type, level, grade, class, role, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.Name,
		account.PasswordHash,
		account.Type,
		account.Level,
		account.Grade,
		account.Class,
		account.Role,
		account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}

	return nil
}

// FindByID retrieves an account by its UUID.
// Returns CodeAccountNotFound if no account exists with this ID.
func (r *accountRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.CodeAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying account by id: %w", err)
	}

	return account, nil
}

// FindByEmail retrieves an account by email address.
// Returns CodeAccountNotFound if no account exists with this email.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = ?`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.CodeAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying account by email: %w", err)
	}

	return account, nil
}

// EmailExists returns true if an account with the given email already exists.
// Used during registration to check for duplicates before hashing the password.
func (r *accountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE email = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}

	return exists, nil
}

// UpdateLastLogin sets the last_login_at timestamp to now for the given account.
func (r *accountRepository) UpdateLastLogin(ctx context.Context, id string) error {
	query := `UPDATE accounts SET last_login_at = NOW() WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}

	return nil
}

// UpdatePassword sets a new password hash for an account.
func (r *accountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.New(apperror.CodeAccountNotFound)
	}
	return nil
}

// Delete removes an account row. Related rows (reset tokens, tickets) are
// removed by ON DELETE CASCADE in the schema.
func (r *accountRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM accounts WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.New(apperror.CodeAccountNotFound)
	}
	return nil
}

// --- Password Reset ---

// CreateResetToken inserts a new password reset token. The tokenHash is
// SHA-256(plaintext_token) -- plaintext is never stored.
func (r *accountRepository) CreateResetToken(ctx context.Context, accountID, email, tokenHash string, expiresAt time.Time) error {
	query := `INSERT INTO password_reset_tokens (account_id, email, token_hash, expires_at)
	          VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, accountID, email, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("creating reset token: %w", err)
	}
	return nil
}

// FindResetToken looks up a reset token by its hash. Returns the associated
// account ID, expiry, and used_at (nil if unused).
func (r *accountRepository) FindResetToken(ctx context.Context, tokenHash string) (string, time.Time, *time.Time, error) {
	query := `SELECT account_id, expires_at, used_at
	          FROM password_reset_tokens WHERE token_hash = ?`
	var accountID string
	var expiresAt time.Time
	var usedAt *time.Time
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(&accountID, &expiresAt, &usedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, nil, apperror.New(apperror.CodeInvalidResetToken)
	}
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("finding reset token: %w", err)
	}
	return accountID, expiresAt, usedAt, nil
}

// MarkResetTokenUsed stamps the used_at column so the token can't be reused.
func (r *accountRepository) MarkResetTokenUsed(ctx context.Context, tokenHash string) error {
	query := `UPDATE password_reset_tokens SET used_at = NOW() WHERE token_hash = ?`
	_, err := r.db.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return fmt.Errorf("marking reset token used: %w", err)
	}
	return nil
}
