package members

import (
	"context"
	"errors"
	"testing"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// mockMemberRepo implements MemberRepository for testing.
type mockMemberRepo struct {
	listByClassFn func(ctx context.Context, grade, class int) ([]Member, error)
	listGroupsFn  func(ctx context.Context) ([]ClassGroup, error)
}

func (m *mockMemberRepo) ListByClass(ctx context.Context, grade, class int) ([]Member, error) {
	if m.listByClassFn != nil {
		return m.listByClassFn(ctx, grade, class)
	}
	return nil, nil
}

func (m *mockMemberRepo) ListGroups(ctx context.Context) ([]ClassGroup, error) {
	if m.listGroupsFn != nil {
		return m.listGroupsFn(ctx)
	}
	return nil, nil
}

func TestRoster_BoundsChecked(t *testing.T) {
	svc := NewMemberService(&mockMemberRepo{})

	tests := []struct {
		name         string
		grade, class int
	}{
		{"zero grade", 0, 1},
		{"grade too high", 13, 1},
		{"zero class", 2, 0},
		{"class too high", 2, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Roster(context.Background(), tt.grade, tt.class)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var appErr *apperror.Error
			if !errors.As(err, &appErr) || appErr.Code != apperror.CodeMissingRequiredFields {
				t.Errorf("expected %s, got %v", apperror.CodeMissingRequiredFields, err)
			}
		})
	}
}

func TestRoster_EmptyClassIsNotAnError(t *testing.T) {
	svc := NewMemberService(&mockMemberRepo{})
	members, err := svc.Roster(context.Background(), 3, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("expected empty roster, got %d members", len(members))
	}
}

func TestRoster_PassesCoordinates(t *testing.T) {
	var gotGrade, gotClass int
	repo := &mockMemberRepo{
		listByClassFn: func(ctx context.Context, grade, class int) ([]Member, error) {
			gotGrade, gotClass = grade, class
			return []Member{{ID: "m-1", Name: "Alice"}}, nil
		},
	}

	svc := NewMemberService(repo)
	members, err := svc.Roster(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotGrade != 2 || gotClass != 3 {
		t.Errorf("expected (2,3), got (%d,%d)", gotGrade, gotClass)
	}
	if len(members) != 1 {
		t.Errorf("expected 1 member, got %d", len(members))
	}
}
