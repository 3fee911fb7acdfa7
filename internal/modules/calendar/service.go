package calendar

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

const maxEventTitleLength = 200

// EventService defines the business logic contract for calendar events.
type EventService interface {
	Create(ctx context.Context, createdBy string, req CreateRequest) (*Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	Month(ctx context.Context, year int, month time.Month) ([]Event, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Event, error)
	Delete(ctx context.Context, id string) error
}

type eventService struct {
	repo EventRepository
}

// NewEventService creates a new calendar event service.
func NewEventService(repo EventRepository) EventService {
	return &eventService{repo: repo}
}

// Create adds a new event to the calendar.
func (s *eventService) Create(ctx context.Context, createdBy string, req CreateRequest) (*Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return nil, apperror.New(apperror.CodeMissingRequiredFields)
	}
	if len(title) > maxEventTitleLength {
		return nil, apperror.New(apperror.CodePayloadTooLarge)
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperror.New(apperror.CodeMissingRequiredFields).
			WithDetails(map[string]any{"field": "ends_at", "reason": "must be after starts_at"})
	}

	e := &Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		StartsAt:    req.StartsAt.UTC(),
		EndsAt:      req.EndsAt.UTC(),
		AllDay:      req.AllDay,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, apperror.NewInternal(err)
	}

	slog.Info("calendar event created",
		slog.String("event_id", e.ID),
		slog.Time("starts_at", e.StartsAt),
	)
	return e, nil
}

// Get returns one event by id.
func (s *eventService) Get(ctx context.Context, id string) (*Event, error) {
	return s.repo.FindByID(ctx, id)
}

// Month returns every event overlapping the given calendar month (UTC).
func (s *eventService) Month(ctx context.Context, year int, month time.Month) ([]Event, error) {
	if year < 2000 || year > 2200 || month < time.January || month > time.December {
		return nil, apperror.New(apperror.CodeMissingRequiredFields).
			WithDetails(map[string]any{"field": "year/month"})
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	events, err := s.repo.ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return events, nil
}

// Update edits an event in place. Absent fields keep their values; the
// resulting start/end pair is re-validated as a whole.
func (s *eventService) Update(ctx context.Context, id string, req UpdateRequest) (*Event, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.New(apperror.CodeMissingRequiredFields)
		}
		if len(title) > maxEventTitleLength {
			return nil, apperror.New(apperror.CodePayloadTooLarge)
		}
		e.Title = title
	}
	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
	}
	if req.Location != nil {
		e.Location = strings.TrimSpace(*req.Location)
	}
	if req.StartsAt != nil {
		e.StartsAt = req.StartsAt.UTC()
	}
	if req.EndsAt != nil {
		e.EndsAt = req.EndsAt.UTC()
	}
	if req.AllDay != nil {
		e.AllDay = *req.AllDay
	}

	if !e.EndsAt.After(e.StartsAt) {
		return nil, apperror.New(apperror.CodeMissingRequiredFields).
			WithDetails(map[string]any{"field": "ends_at", "reason": "must be after starts_at"})
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an event.
func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("calendar event deleted", slog.String("event_id", id))
	return nil
}
