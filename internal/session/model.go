// Package session is the authentication core of Lumina. It owns session
// issuance, verification, and revocation: opaque encrypted tokens handed to
// clients, Redis-backed session records keyed by the raw identifier, and a
// per-user summary list used for the "active sessions" view and revocation.
//
// Route handlers never touch Redis or the token format directly -- they go
// through Service and the RequireSession middleware.
package session

import (
	"strings"
	"time"
)

// LoginType selects the session lifetime policy declared by the client.
type LoginType string

const (
	// LoginTypeWeb is a short-lived browser session.
	LoginTypeWeb LoginType = "WEB"

	// LoginTypeApp is a long-lived mobile-app session.
	LoginTypeApp LoginType = "APP"
)

// ParseLoginType validates a client-declared login type. The zero value and
// anything outside the two-member enum are rejected.
func ParseLoginType(s string) (LoginType, bool) {
	switch LoginType(s) {
	case LoginTypeWeb, LoginTypeApp:
		return LoginType(s), true
	default:
		return "", false
	}
}

// Record is the server-side session state stored under the raw session
// identifier. It is retrievable only by that exact identifier and is invalid
// once past ExpiresAt -- enforced both by the Redis TTL and by an explicit
// comparison at verification time.
type Record struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	// IP is the truncated prefix form of the client address captured at
	// issuance. Used for binding, not full precision.
	IP string `json:"ip"`

	LoginType LoginType `json:"loginType"`
}

// Expired reports whether the record is logically past its lifetime.
func (r *Record) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Summary is the lightweight per-session entry kept in the per-user list.
// It exists so a user can see and revoke their active sessions without the
// server scanning the whole keyspace.
type Summary struct {
	SessionID string    `json:"sessionId"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
	IP        string    `json:"ip"`
	LoginType LoginType `json:"loginType"`
}

// TruncateIP reduces an address to its first `groups` colon-delimited
// groups. This tolerates minor address rotation within the same prefix and
// avoids storing full-precision client addresses. Plain IPv4 addresses have
// no colons and pass through whole.
func TruncateIP(ip string, groups int) string {
	if groups < 1 || !strings.Contains(ip, ":") {
		return ip
	}
	parts := strings.Split(ip, ":")
	if len(parts) <= groups {
		return ip
	}
	return strings.Join(parts[:groups], ":")
}
