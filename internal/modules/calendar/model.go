// Package calendar implements the association's shared event calendar.
// Staff maintain the events; members browse them month by month.
package calendar

import "time"

// Event represents one calendar entry. Multi-day events are allowed; the
// month listing returns every event that overlaps the requested month.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	AllDay      bool      `json:"all_day"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- DTOs ---

// CreateRequest holds the data submitted when creating an event.
// Timestamps are RFC 3339.
type CreateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	AllDay      bool      `json:"all_day"`
}

// UpdateRequest holds the data submitted when editing an event.
// Nil pointers mean "leave unchanged".
type UpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	AllDay      *bool      `json:"all_day"`
}
