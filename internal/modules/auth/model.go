// Package auth handles account management and authentication for Lumina:
// staff-code-gated registration, login/logout over the session core,
// active-session listing, password reset, and account deletion.
//
// This is a CORE module -- every other module's protected routes depend on
// the session middleware it is wired to.
package auth

import (
	"time"
)

// Account type constants. Students register as "stu", association staff as
// "staff" (requires a staff code), everyone else as "normal".
const (
	TypeNormal  = "normal"
	TypeStaff   = "staff"
	TypeStudent = "stu"
)

// Account represents a registered member. This is the domain model used
// throughout the application. Database scanning and JSON marshaling use
// this struct directly.
type Account struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"` // Never expose in JSON responses.
	Type         string     `json:"type"`
	Level        int        `json:"level"`
	Grade        *int       `json:"grade,omitempty"`
	Class        *int       `json:"class,omitempty"`
	Role         *string    `json:"role,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// IsStaff reports whether the account is an association staff account.
func (a *Account) IsStaff() bool {
	return a.Type == TypeStaff
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted on sign-up.
type RegisterRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Type      string `json:"type"`
	StaffCode string `json:"staff_code"`
	Grade     *int   `json:"grade"`
	Class     *int   `json:"class"`
}

// LoginRequest holds the credentials submitted on login. The login type
// comes from the Login-Type header, not the body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetRequest asks for a password reset email.
type ResetRequest struct {
	Email string `json:"email"`
}

// ResetConfirmRequest completes a password reset.
type ResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the validated input for creating a new account.
type RegisterInput struct {
	Email     string
	Name      string
	Password  string
	Type      string
	StaffCode string
	Grade     *int
	Class     *int
}

// LoginInput is the validated input for authenticating an account. ClientIP
// and the user agent fields feed the issued session's record and summary.
type LoginInput struct {
	Email     string
	Password  string
	LoginType string
	ClientIP  string
	UserAgent string
}

// LoginResult is what a successful login returns to the handler: the
// encrypted session token (transport is the handler's policy) and the
// authenticated account.
type LoginResult struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
}
