// Package repairs implements the facility repair ticket system. Any member
// can report broken equipment; staff work the queue through a fixed status
// flow: received -> in_progress -> resolved or rejected.
package repairs

import "time"

// Status is the lifecycle state of a repair ticket.
type Status string

const (
	StatusReceived   Status = "received"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// transitions holds the allowed status graph. Terminal states have no
// outgoing edges.
var transitions = map[Status][]Status{
	StatusReceived:   {StatusInProgress, StatusRejected},
	StatusInProgress: {StatusResolved, StatusRejected},
}

// CanTransition reports whether a ticket may move from one status to
// another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseStatus validates a status string from the wire.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusReceived, StatusInProgress, StatusResolved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

// Ticket represents one repair report.
type Ticket struct {
	ID          string     `json:"id"`
	ReporterID  string     `json:"reporter_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Status      Status     `json:"status"`
	StaffNote   string     `json:"staff_note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// --- DTOs ---

// CreateRequest holds the data submitted when reporting a repair.
type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// StatusRequest holds the data submitted when staff move a ticket.
type StatusRequest struct {
	Status    string `json:"status"`
	StaffNote string `json:"staff_note"`
}
