package school

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.SchoolConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
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

func TestMeals_Success(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date":"2026-09-12","service":"lunch","dishes":["rice","soup"]}]`))
	}))

	meals, err := client.Meals(context.Background(), "2026-09-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/meals?date=2026-09-12" {
		t.Errorf("unexpected upstream path %q", gotPath)
	}
	if len(meals) != 1 || meals[0].Service != "lunch" {
		t.Errorf("unexpected meals payload: %+v", meals)
	}
}

func TestTimetable_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grade") != "2" || r.URL.Query().Get("class") != "3" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"weekday":1,"period":1,"subject":"Math"}]`))
	}))

	entries, err := client.Timetable(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Subject != "Math" {
		t.Errorf("unexpected timetable payload: %+v", entries)
	}
}

func TestClient_UpstreamErrorStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.Meals(context.Background(), "2026-09-12")
	assertCode(t, err, apperror.CodeUpstreamError)
}

func TestClient_UpstreamGarbageBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))

	_, err := client.Meals(context.Background(), "2026-09-12")
	assertCode(t, err, apperror.CodeUpstreamError)
}

func TestClient_UpstreamUnreachable(t *testing.T) {
	// Point at a server that has already been shut down.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	client := NewClient(config.SchoolConfig{BaseURL: addr, Timeout: time.Second})
	_, err := client.Meals(context.Background(), "2026-09-12")
	assertCode(t, err, apperror.CodeUpstreamUnavailable)
}

// --- Service Tests ---

// mockClient implements Client for service-level tests.
type mockClient struct {
	mealsFn     func(ctx context.Context, date string) ([]Meal, error)
	timetableFn func(ctx context.Context, grade, class int) ([]TimetableEntry, error)
}

func (m *mockClient) Meals(ctx context.Context, date string) ([]Meal, error) {
	if m.mealsFn != nil {
		return m.mealsFn(ctx, date)
	}
	return nil, nil
}

func (m *mockClient) Timetable(ctx context.Context, grade, class int) ([]TimetableEntry, error) {
	if m.timetableFn != nil {
		return m.timetableFn(ctx, grade, class)
	}
	return nil, nil
}

func TestService_MealsDefaultsToToday(t *testing.T) {
	var gotDate string
	svc := NewSchoolService(&mockClient{
		mealsFn: func(ctx context.Context, date string) ([]Meal, error) {
			gotDate = date
			return nil, nil
		},
	})

	if _, err := svc.Meals(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Now().UTC().Format("2006-01-02")
	if gotDate != want {
		t.Errorf("expected default date %s, got %s", want, gotDate)
	}
}

func TestService_MealsRejectsBadDate(t *testing.T) {
	svc := NewSchoolService(&mockClient{})
	_, err := svc.Meals(context.Background(), "12/09/2026")
	assertCode(t, err, apperror.CodeMissingRequiredFields)
}

func TestService_TimetableRejectsBadClass(t *testing.T) {
	svc := NewSchoolService(&mockClient{})
	_, err := svc.Timetable(context.Background(), 0, 5)
	assertCode(t, err, apperror.CodeMissingRequiredFields)
}
