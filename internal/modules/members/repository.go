package members

import (
	"context"
	"database/sql"
	"fmt"
)

// MemberRepository defines the read-only data access contract for rosters.
type MemberRepository interface {
	ListByClass(ctx context.Context, grade, class int) ([]Member, error)
	ListGroups(ctx context.Context) ([]ClassGroup, error)
}

// memberRepository implements MemberRepository with MariaDB queries against
// the accounts table.
type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a roster repository.
func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

// ListByClass returns the students of one grade/class, sorted by name.
func (r *memberRepository) ListByClass(ctx context.Context, grade, class int) ([]Member, error) {
	query := `SELECT id, email, name, type, grade, class, created_at, last_login_at
	          FROM accounts
	          WHERE type = 'stu' AND grade = ? AND class = ?
	          ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, grade, class)
	if err != nil {
		return nil, fmt.Errorf("listing roster: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(
			&m.ID, &m.Email, &m.Name, &m.Type,
			&m.Grade, &m.Class, &m.CreatedAt, &m.LastLoginAt,
		); err != nil {
			return nil, fmt.Errorf("scanning roster row: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// ListGroups returns every populated grade/class bucket with its student
// count.
func (r *memberRepository) ListGroups(ctx context.Context) ([]ClassGroup, error) {
	query := `SELECT grade, class, COUNT(*)
	          FROM accounts
	          WHERE type = 'stu' AND grade > 0
	          GROUP BY grade, class
	          ORDER BY grade ASC, class ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing class groups: %w", err)
	}
	defer rows.Close()

	var groups []ClassGroup
	for rows.Next() {
		var g ClassGroup
		if err := rows.Scan(&g.Grade, &g.Class, &g.Count); err != nil {
			return nil, fmt.Errorf("scanning class group row: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}
