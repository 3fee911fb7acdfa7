package school

import (
	"context"
	"time"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// SchoolService defines the business logic contract for campus proxies.
type SchoolService interface {
	Meals(ctx context.Context, date string) ([]Meal, error)
	Timetable(ctx context.Context, grade, class int) ([]TimetableEntry, error)
}

type schoolService struct {
	client Client
}

// NewSchoolService creates a new campus proxy service.
func NewSchoolService(client Client) SchoolService {
	return &schoolService{client: client}
}

// Meals returns the menus for one date. Dates are YYYY-MM-DD; an empty date
// means today (UTC).
func (s *schoolService) Meals(ctx context.Context, date string) ([]Meal, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperror.New(apperror.CodeMissingRequiredFields).
			WithDetails(map[string]any{"field": "date", "reason": "want YYYY-MM-DD"})
	}

	return s.client.Meals(ctx, date)
}

// Timetable returns one class's weekly schedule.
func (s *schoolService) Timetable(ctx context.Context, grade, class int) ([]TimetableEntry, error) {
	if grade < 1 || grade > 12 || class < 1 || class > 30 {
		return nil, apperror.New(apperror.CodeMissingRequiredFields).
			WithDetails(map[string]any{"field": "grade/class"})
	}

	return s.client.Timetable(ctx, grade, class)
}
