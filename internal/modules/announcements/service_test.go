package announcements

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// --- Mock Repository ---

// mockAnnouncementRepo implements AnnouncementRepository for testing.
type mockAnnouncementRepo struct {
	createFn   func(ctx context.Context, a *Announcement) error
	findByIDFn func(ctx context.Context, id string) (*Announcement, error)
	listFn     func(ctx context.Context, offset, limit int) ([]Announcement, int, error)
	updateFn   func(ctx context.Context, a *Announcement) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockAnnouncementRepo) Create(ctx context.Context, a *Announcement) error {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	return nil
}

func (m *mockAnnouncementRepo) FindByID(ctx context.Context, id string) (*Announcement, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.New(apperror.CodeAnnouncementNotFound)
}

func (m *mockAnnouncementRepo) List(ctx context.Context, offset, limit int) ([]Announcement, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockAnnouncementRepo) Update(ctx context.Context, a *Announcement) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, a)
	}
	return nil
}

func (m *mockAnnouncementRepo) Delete(ctx context.Context, id string) error {
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
	var created *Announcement
	repo := &mockAnnouncementRepo{
		createFn: func(ctx context.Context, a *Announcement) error {
			created = a
			return nil
		},
	}

	svc := NewAnnouncementService(repo)
	a, err := svc.Create(context.Background(), "staff-1", CreateRequest{
		Title: "  Sports day moved  ",
		Body:  "The sports day now takes place on Friday.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected announcement to be persisted")
	}
	if a.Title != "Sports day moved" {
		t.Errorf("expected trimmed title, got %q", a.Title)
	}
	if a.AuthorID != "staff-1" {
		t.Errorf("expected author staff-1, got %s", a.AuthorID)
	}
	if a.ID == "" {
		t.Error("expected id to be generated")
	}
}

func TestCreate_MissingFields(t *testing.T) {
	svc := NewAnnouncementService(&mockAnnouncementRepo{})

	_, err := svc.Create(context.Background(), "staff-1", CreateRequest{Title: "Only a title"})
	assertCode(t, err, apperror.CodeMissingRequiredFields)

	_, err = svc.Create(context.Background(), "staff-1", CreateRequest{Body: "Only a body"})
	assertCode(t, err, apperror.CodeMissingRequiredFields)
}

func TestCreate_OversizedBody(t *testing.T) {
	svc := NewAnnouncementService(&mockAnnouncementRepo{})
	_, err := svc.Create(context.Background(), "staff-1", CreateRequest{
		Title: "Big",
		Body:  strings.Repeat("x", maxBodyLength+1),
	})
	assertCode(t, err, apperror.CodePayloadTooLarge)
}

// --- List Tests ---

func TestList_ClampsPaging(t *testing.T) {
	var gotOffset, gotLimit int
	repo := &mockAnnouncementRepo{
		listFn: func(ctx context.Context, offset, limit int) ([]Announcement, int, error) {
			gotOffset, gotLimit = offset, limit
			return nil, 0, nil
		},
	}

	svc := NewAnnouncementService(repo)
	result, err := svc.List(context.Background(), -5, 9999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOffset != 0 {
		t.Errorf("expected offset 0 for clamped page, got %d", gotOffset)
	}
	if gotLimit != maxPageLimit {
		t.Errorf("expected limit clamped to %d, got %d", maxPageLimit, gotLimit)
	}
	if result.Page != 1 || result.Limit != maxPageLimit {
		t.Errorf("expected echoed clamped paging, got page=%d limit=%d", result.Page, result.Limit)
	}
}

func TestList_SecondPageOffset(t *testing.T) {
	var gotOffset int
	repo := &mockAnnouncementRepo{
		listFn: func(ctx context.Context, offset, limit int) ([]Announcement, int, error) {
			gotOffset = offset
			return []Announcement{{ID: "a-21"}}, 42, nil
		},
	}

	svc := NewAnnouncementService(repo)
	result, err := svc.List(context.Background(), 2, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOffset != 20 {
		t.Errorf("expected offset 20 for page 2, got %d", gotOffset)
	}
	if result.Total != 42 {
		t.Errorf("expected total 42, got %d", result.Total)
	}
}

// --- Update Tests ---

func TestUpdate_PartialFields(t *testing.T) {
	existing := &Announcement{
		ID:        "a-1",
		Title:     "Old title",
		Body:      "Old body",
		AuthorID:  "staff-1",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	var saved *Announcement
	repo := &mockAnnouncementRepo{
		findByIDFn: func(ctx context.Context, id string) (*Announcement, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, a *Announcement) error {
			saved = a
			return nil
		},
	}

	newTitle := "New title"
	pinned := true
	svc := NewAnnouncementService(repo)
	a, err := svc.Update(context.Background(), "a-1", UpdateRequest{Title: &newTitle, Pinned: &pinned})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected update to be persisted")
	}
	if a.Title != "New title" {
		t.Errorf("expected new title, got %q", a.Title)
	}
	if a.Body != "Old body" {
		t.Errorf("expected body unchanged, got %q", a.Body)
	}
	if !a.Pinned {
		t.Error("expected pinned to be set")
	}
}

func TestUpdate_EmptyTitleRejected(t *testing.T) {
	repo := &mockAnnouncementRepo{
		findByIDFn: func(ctx context.Context, id string) (*Announcement, error) {
			return &Announcement{ID: "a-1", Title: "t", Body: "b"}, nil
		},
	}

	blank := "   "
	svc := NewAnnouncementService(repo)
	_, err := svc.Update(context.Background(), "a-1", UpdateRequest{Title: &blank})
	assertCode(t, err, apperror.CodeMissingRequiredFields)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewAnnouncementService(&mockAnnouncementRepo{})
	title := "x"
	_, err := svc.Update(context.Background(), "missing", UpdateRequest{Title: &title})
	assertCode(t, err, apperror.CodeAnnouncementNotFound)
}

// --- Delete Tests ---

func TestDelete_NotFound(t *testing.T) {
	repo := &mockAnnouncementRepo{
		deleteFn: func(ctx context.Context, id string) error {
			return apperror.New(apperror.CodeAnnouncementNotFound)
		},
	}

	svc := NewAnnouncementService(repo)
	err := svc.Delete(context.Background(), "missing")
	assertCode(t, err, apperror.CodeAnnouncementNotFound)
}
