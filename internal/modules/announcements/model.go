// Package announcements implements the association's news board: staff
// publish posts, everyone reads them.
package announcements

import "time"

// Announcement represents one published post.
type Announcement struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	AuthorID  string     `json:"author_id"`
	Pinned    bool       `json:"pinned"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// --- DTOs ---

// CreateRequest holds the data submitted when publishing an announcement.
type CreateRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

// UpdateRequest holds the data submitted when editing an announcement.
// Nil pointers mean "leave unchanged".
type UpdateRequest struct {
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Pinned *bool   `json:"pinned"`
}

// ListResult is a page of announcements plus the total count for paging UIs.
type ListResult struct {
	Items []Announcement `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
