// Package staffcodes manages the invitation codes that gate staff
// registration. Staff-level members issue codes with a use budget and an
// optional expiry; the auth module consumes one use per staff sign-up.
package staffcodes

import "time"

// StaffCode represents an issued registration code.
type StaffCode struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	MaxUses   int        `json:"max_uses"`
	UseCount  int        `json:"use_count"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// Usable reports whether the code can still be redeemed at the given time.
func (sc *StaffCode) Usable(now time.Time) bool {
	if sc.RevokedAt != nil {
		return false
	}
	if sc.ExpiresAt != nil && now.After(*sc.ExpiresAt) {
		return false
	}
	return sc.UseCount < sc.MaxUses
}

// --- DTOs ---

// IssueRequest holds the data submitted when issuing a new code.
type IssueRequest struct {
	MaxUses   int    `json:"max_uses"`
	ExpiresIn string `json:"expires_in"` // Go duration string, e.g. "168h". Empty = no expiry.
}
