package staffcodes

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// codeAlphabet excludes visually ambiguous characters (0/O, 1/I/L) so codes
// survive being read aloud or written on a whiteboard.
const (
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 10
	maxUsesCap   = 100
)

// StaffCodeService defines the business logic contract for staff codes.
type StaffCodeService interface {
	Issue(ctx context.Context, issuedBy string, req IssueRequest) (*StaffCode, error)
	List(ctx context.Context) ([]StaffCode, error)
	Revoke(ctx context.Context, id string) error

	// Redeem consumes one use of the code. Satisfies auth's registration gate.
	Redeem(ctx context.Context, code string) error
}

type staffCodeService struct {
	repo StaffCodeRepository
	now  func() time.Time
}

// NewStaffCodeService creates a new staff code service.
func NewStaffCodeService(repo StaffCodeRepository) StaffCodeService {
	return &staffCodeService{repo: repo, now: time.Now}
}

// Issue mints a new random code with the requested use budget and optional
// expiry.
func (s *staffCodeService) Issue(ctx context.Context, issuedBy string, req IssueRequest) (*StaffCode, error) {
	if req.MaxUses < 1 || req.MaxUses > maxUsesCap {
		return nil, apperror.New(apperror.CodeMissingRequiredFields).
			WithDetails(map[string]any{"field": "max_uses"})
	}

	var expiresAt *time.Time
	if req.ExpiresIn != "" {
		d, err := time.ParseDuration(req.ExpiresIn)
		if err != nil || d <= 0 {
			return nil, apperror.New(apperror.CodeMissingRequiredFields).
				WithDetails(map[string]any{"field": "expires_in"})
		}
		t := s.now().UTC().Add(d)
		expiresAt = &t
	}

	code, err := randomCode()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("generating staff code: %w", err))
	}

	sc := &StaffCode{
		ID:        uuid.NewString(),
		Code:      code,
		MaxUses:   req.MaxUses,
		CreatedBy: issuedBy,
		CreatedAt: s.now().UTC(),
		ExpiresAt: expiresAt,
	}
	if err := s.repo.Create(ctx, sc); err != nil {
		return nil, apperror.NewInternal(err)
	}

	slog.Info("staff code issued",
		slog.String("code_id", sc.ID),
		slog.Int("max_uses", sc.MaxUses),
	)
	return sc, nil
}

// List returns all issued codes.
func (s *staffCodeService) List(ctx context.Context) ([]StaffCode, error) {
	codes, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return codes, nil
}

// Revoke disables a code by id.
func (s *staffCodeService) Revoke(ctx context.Context, id string) error {
	if err := s.repo.Revoke(ctx, id); err != nil {
		return err
	}
	slog.Info("staff code revoked", slog.String("code_id", id))
	return nil
}

// Redeem spends one use of the code. Unknown, revoked, and expired codes
// all report as invalid; a known, live code with no budget left reports as
// exhausted.
func (s *staffCodeService) Redeem(ctx context.Context, code string) error {
	if code == "" {
		return apperror.New(apperror.CodeInvalidStaffCode)
	}

	sc, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if sc.RevokedAt != nil || (sc.ExpiresAt != nil && s.now().After(*sc.ExpiresAt)) {
		return apperror.New(apperror.CodeInvalidStaffCode)
	}

	ok, err := s.repo.ConsumeUse(ctx, sc.ID)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if !ok {
		return apperror.New(apperror.CodeStaffCodeExhausted)
	}
	return nil
}

// randomCode draws codeLength characters from codeAlphabet using crypto/rand.
func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
