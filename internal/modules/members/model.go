// Package members exposes staff-facing roster views over the registered
// accounts. It reads the same accounts table the auth module writes but
// never touches credentials.
package members

import "time"

// Member is the roster view of an account. No password hash, no role
// internals.
type Member struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Grade       int        `json:"grade,omitempty"`
	Class       int        `json:"class,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ClassGroup is one grade/class bucket with its member count, used for the
// roster overview.
type ClassGroup struct {
	Grade int `json:"grade"`
	Class int `json:"class"`
	Count int `json:"count"`
}
