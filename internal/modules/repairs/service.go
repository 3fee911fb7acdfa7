package repairs

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

const (
	maxTicketTitleLength = 200
	maxTicketBodyLength  = 5000
)

// TicketService defines the business logic contract for repair tickets.
type TicketService interface {
	Create(ctx context.Context, reporterID string, req CreateRequest) (*Ticket, error)
	Get(ctx context.Context, requesterID string, isStaff bool, id string) (*Ticket, error)
	ListOwn(ctx context.Context, reporterID string) ([]Ticket, error)
	ListAll(ctx context.Context, statusFilter string) ([]Ticket, error)
	SetStatus(ctx context.Context, id string, req StatusRequest) (*Ticket, error)
}

type ticketService struct {
	repo TicketRepository
}

// NewTicketService creates a new repair ticket service.
func NewTicketService(repo TicketRepository) TicketService {
	return &ticketService{repo: repo}
}

// Create files a new repair report. Tickets always start as received.
func (s *ticketService) Create(ctx context.Context, reporterID string, req CreateRequest) (*Ticket, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	location := strings.TrimSpace(req.Location)
	if title == "" || description == "" || location == "" {
		return nil, apperror.New(apperror.CodeMissingRequiredFields)
	}
	if len(title) > maxTicketTitleLength || len(description) > maxTicketBodyLength {
		return nil, apperror.New(apperror.CodePayloadTooLarge)
	}

	t := &Ticket{
		ID:          uuid.NewString(),
		ReporterID:  reporterID,
		Title:       title,
		Description: description,
		Location:    location,
		Status:      StatusReceived,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperror.NewInternal(err)
	}

	slog.Info("repair ticket filed",
		slog.String("ticket_id", t.ID),
		slog.String("reporter_id", reporterID),
	)
	return t, nil
}

// Get returns one ticket. Non-staff requesters can only see their own
// tickets; someone else's ticket reads as not found rather than forbidden
// so ids can't be probed.
func (s *ticketService) Get(ctx context.Context, requesterID string, isStaff bool, id string) (*Ticket, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isStaff && t.ReporterID != requesterID {
		return nil, apperror.New(apperror.CodeTicketNotFound)
	}
	return t, nil
}

// ListOwn returns the requester's own tickets.
func (s *ticketService) ListOwn(ctx context.Context, reporterID string) ([]Ticket, error) {
	tickets, err := s.repo.ListByReporter(ctx, reporterID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return tickets, nil
}

// ListAll returns the full queue for staff, optionally filtered by status.
func (s *ticketService) ListAll(ctx context.Context, statusFilter string) ([]Ticket, error) {
	var status Status
	if statusFilter != "" {
		parsed, ok := ParseStatus(statusFilter)
		if !ok {
			return nil, apperror.New(apperror.CodeInvalidTicketStatus)
		}
		status = parsed
	}

	tickets, err := s.repo.ListAll(ctx, status)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return tickets, nil
}

// SetStatus moves a ticket along the status graph. Any move the graph
// doesn't allow, including out of a terminal state, fails with
// CodeInvalidTicketStatus.
func (s *ticketService) SetStatus(ctx context.Context, id string, req StatusRequest) (*Ticket, error) {
	to, ok := ParseStatus(req.Status)
	if !ok {
		return nil, apperror.New(apperror.CodeInvalidTicketStatus)
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(t.Status, to) {
		return nil, apperror.New(apperror.CodeInvalidTicketStatus).
			WithDetails(map[string]any{"from": string(t.Status), "to": string(to)})
	}

	note := strings.TrimSpace(req.StaffNote)
	if err := s.repo.UpdateStatus(ctx, id, to, note); err != nil {
		return nil, err
	}

	slog.Info("repair ticket moved",
		slog.String("ticket_id", id),
		slog.String("from", string(t.Status)),
		slog.String("to", string(to)),
	)

	t.Status = to
	t.StaffNote = note
	now := time.Now().UTC()
	t.UpdatedAt = &now
	return t, nil
}
