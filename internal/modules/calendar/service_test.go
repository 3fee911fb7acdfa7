package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// --- Mock Repository ---

// mockEventRepo implements EventRepository for testing.
type mockEventRepo struct {
	createFn          func(ctx context.Context, e *Event) error
	findByIDFn        func(ctx context.Context, id string) (*Event, error)
	listOverlappingFn func(ctx context.Context, from, to time.Time) ([]Event, error)
	updateFn          func(ctx context.Context, e *Event) error
	deleteFn          func(ctx context.Context, id string) error
}

func (m *mockEventRepo) Create(ctx context.Context, e *Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, e)
	}
	return nil
}

func (m *mockEventRepo) FindByID(ctx context.Context, id string) (*Event, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.New(apperror.CodeEventNotFound)
}

func (m *mockEventRepo) ListOverlapping(ctx context.Context, from, to time.Time) ([]Event, error) {
	if m.listOverlappingFn != nil {
		return m.listOverlappingFn(ctx, from, to)
	}
	return nil, nil
}

func (m *mockEventRepo) Update(ctx context.Context, e *Event) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, e)
	}
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func assertCode(t *testing.T, err error, want apperror.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.Error, got %T: %v", err, err)
	}
	if appErr.Code != want {
		t.Errorf("expected code %s, got %s", want, appErr.Code)
	}
}

// --- Create Tests ---

func TestCreate_Success(t *testing.T) {
	var created *Event
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, e *Event) error {
			created = e
			return nil
		},
	}

	starts := time.Date(2026, time.September, 12, 9, 0, 0, 0, time.UTC)
	svc := NewEventService(repo)
	e, err := svc.Create(context.Background(), "staff-1", CreateRequest{
		Title:    " Open house ",
		StartsAt: starts,
		EndsAt:   starts.Add(3 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected event to be persisted")
	}
	if e.Title != "Open house" {
		t.Errorf("expected trimmed title, got %q", e.Title)
	}
	if e.CreatedBy != "staff-1" {
		t.Errorf("expected creator staff-1, got %s", e.CreatedBy)
	}
}

func TestCreate_EndBeforeStart(t *testing.T) {
	starts := time.Date(2026, time.September, 12, 9, 0, 0, 0, time.UTC)
	svc := NewEventService(&mockEventRepo{})

	_, err := svc.Create(context.Background(), "staff-1", CreateRequest{
		Title:    "Backwards",
		StartsAt: starts,
		EndsAt:   starts.Add(-time.Hour),
	})
	assertCode(t, err, apperror.CodeMissingRequiredFields)

	// Zero-length events are rejected too.
	_, err = svc.Create(context.Background(), "staff-1", CreateRequest{
		Title:    "Instant",
		StartsAt: starts,
		EndsAt:   starts,
	})
	assertCode(t, err, apperror.CodeMissingRequiredFields)
}

func TestCreate_MissingTimes(t *testing.T) {
	svc := NewEventService(&mockEventRepo{})
	_, err := svc.Create(context.Background(), "staff-1", CreateRequest{Title: "No times"})
	assertCode(t, err, apperror.CodeMissingRequiredFields)
}

// --- Month Tests ---

func TestMonth_WindowBounds(t *testing.T) {
	var gotFrom, gotTo time.Time
	repo := &mockEventRepo{
		listOverlappingFn: func(ctx context.Context, from, to time.Time) ([]Event, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}

	svc := NewEventService(repo)
	if _, err := svc.Month(context.Background(), 2026, time.February); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFrom := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !gotFrom.Equal(wantFrom) || !gotTo.Equal(wantTo) {
		t.Errorf("expected window [%v, %v), got [%v, %v)", wantFrom, wantTo, gotFrom, gotTo)
	}
}

func TestMonth_DecemberRollsOver(t *testing.T) {
	var gotTo time.Time
	repo := &mockEventRepo{
		listOverlappingFn: func(ctx context.Context, from, to time.Time) ([]Event, error) {
			gotTo = to
			return nil, nil
		},
	}

	svc := NewEventService(repo)
	if _, err := svc.Month(context.Background(), 2026, time.December); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantTo := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !gotTo.Equal(wantTo) {
		t.Errorf("expected window end %v, got %v", wantTo, gotTo)
	}
}

func TestMonth_BadInputs(t *testing.T) {
	svc := NewEventService(&mockEventRepo{})

	_, err := svc.Month(context.Background(), 2026, time.Month(13))
	assertCode(t, err, apperror.CodeMissingRequiredFields)

	_, err = svc.Month(context.Background(), 1850, time.May)
	assertCode(t, err, apperror.CodeMissingRequiredFields)
}

// --- Update Tests ---

func TestUpdate_RevalidatesTimePair(t *testing.T) {
	starts := time.Date(2026, time.September, 12, 9, 0, 0, 0, time.UTC)
	repo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id string) (*Event, error) {
			return &Event{ID: "e-1", Title: "t", StartsAt: starts, EndsAt: starts.Add(time.Hour)}, nil
		},
	}

	// Moving the start past the existing end must fail even though the new
	// start is valid on its own.
	newStart := starts.Add(2 * time.Hour)
	svc := NewEventService(repo)
	_, err := svc.Update(context.Background(), "e-1", UpdateRequest{StartsAt: &newStart})
	assertCode(t, err, apperror.CodeMissingRequiredFields)
}

func TestUpdate_PartialFields(t *testing.T) {
	starts := time.Date(2026, time.September, 12, 9, 0, 0, 0, time.UTC)
	var saved *Event
	repo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id string) (*Event, error) {
			return &Event{
				ID: "e-1", Title: "Old", Location: "Gym",
				StartsAt: starts, EndsAt: starts.Add(time.Hour),
			}, nil
		},
		updateFn: func(ctx context.Context, e *Event) error {
			saved = e
			return nil
		},
	}

	title := "New"
	svc := NewEventService(repo)
	e, err := svc.Update(context.Background(), "e-1", UpdateRequest{Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected update to be persisted")
	}
	if e.Title != "New" || e.Location != "Gym" {
		t.Errorf("expected only title changed, got title=%q location=%q", e.Title, e.Location)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewEventService(&mockEventRepo{})
	title := "x"
	_, err := svc.Update(context.Background(), "missing", UpdateRequest{Title: &title})
	assertCode(t, err, apperror.CodeEventNotFound)
}
