package members

import (
	"context"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// MemberService defines the business logic contract for rosters.
type MemberService interface {
	Roster(ctx context.Context, grade, class int) ([]Member, error)
	Groups(ctx context.Context) ([]ClassGroup, error)
}

type memberService struct {
	repo MemberRepository
}

// NewMemberService creates a new roster service.
func NewMemberService(repo MemberRepository) MemberService {
	return &memberService{repo: repo}
}

// Roster returns the students of one grade/class. An unknown but
// well-formed class is an empty roster, not an error.
func (s *memberService) Roster(ctx context.Context, grade, class int) ([]Member, error) {
	if grade < 1 || grade > 12 || class < 1 || class > 30 {
		return nil, apperror.New(apperror.CodeMissingRequiredFields).
			WithDetails(map[string]any{"field": "grade/class"})
	}

	members, err := s.repo.ListByClass(ctx, grade, class)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return members, nil
}

// Groups returns the populated grade/class buckets.
func (s *memberService) Groups(ctx context.Context) ([]ClassGroup, error) {
	groups, err := s.repo.ListGroups(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return groups, nil
}
