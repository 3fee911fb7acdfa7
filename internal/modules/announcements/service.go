package announcements

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	maxTitleLength   = 200
	maxBodyLength    = 20000
)

// AnnouncementService defines the business logic contract for announcements.
type AnnouncementService interface {
	Create(ctx context.Context, authorID string, req CreateRequest) (*Announcement, error)
	Get(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, page, limit int) (*ListResult, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Announcement, error)
	Delete(ctx context.Context, id string) error
}

type announcementService struct {
	repo AnnouncementRepository
}

// NewAnnouncementService creates a new announcement service.
func NewAnnouncementService(repo AnnouncementRepository) AnnouncementService {
	return &announcementService{repo: repo}
}

// Create publishes a new announcement.
func (s *announcementService) Create(ctx context.Context, authorID string, req CreateRequest) (*Announcement, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if title == "" || body == "" {
		return nil, apperror.New(apperror.CodeMissingRequiredFields)
	}
	if len(title) > maxTitleLength || len(body) > maxBodyLength {
		return nil, apperror.New(apperror.CodePayloadTooLarge)
	}

	a := &Announcement{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		AuthorID:  authorID,
		Pinned:    req.Pinned,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, apperror.NewInternal(err)
	}

	slog.Info("announcement published",
		slog.String("announcement_id", a.ID),
		slog.String("author_id", authorID),
	)
	return a, nil
}

// Get returns one announcement by id.
func (s *announcementService) Get(ctx context.Context, id string) (*Announcement, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page. Out-of-range paging inputs clamp to sane values
// rather than erroring; an empty page past the end is a valid result.
func (s *announcementService) List(ctx context.Context, page, limit int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &ListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Update edits an announcement in place. Absent fields keep their values.
func (s *announcementService) Update(ctx context.Context, id string, req UpdateRequest) (*Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.New(apperror.CodeMissingRequiredFields)
		}
		if len(title) > maxTitleLength {
			return nil, apperror.New(apperror.CodePayloadTooLarge)
		}
		a.Title = title
	}
	if req.Body != nil {
		body := strings.TrimSpace(*req.Body)
		if body == "" {
			return nil, apperror.New(apperror.CodeMissingRequiredFields)
		}
		if len(body) > maxBodyLength {
			return nil, apperror.New(apperror.CodePayloadTooLarge)
		}
		a.Body = body
	}
	if req.Pinned != nil {
		a.Pinned = *req.Pinned
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an announcement.
func (s *announcementService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("announcement deleted", slog.String("announcement_id", id))
	return nil
}
