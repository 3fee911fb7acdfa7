package school

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/config"
)

// maxUpstreamBody caps how much of an upstream response we will read.
const maxUpstreamBody = 1 << 20

// Client defines the campus-system access contract. The HTTP implementation
// is swapped for a mock in service tests.
type Client interface {
	Meals(ctx context.Context, date string) ([]Meal, error)
	Timetable(ctx context.Context, grade, class int) ([]TimetableEntry, error)
}

// httpClient talks to the campus API over HTTP.
type httpClient struct {
	base   string
	client *http.Client
}

// NewClient creates a campus API client from configuration.
func NewClient(cfg config.SchoolConfig) Client {
	return &httpClient{
		base:   cfg.BaseURL,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Meals fetches the menus served on the given date.
func (c *httpClient) Meals(ctx context.Context, date string) ([]Meal, error) {
	var meals []Meal
	err := c.getJSON(ctx, "/meals?date="+url.QueryEscape(date), &meals)
	if err != nil {
		return nil, err
	}
	return meals, nil
}

// Timetable fetches one class's weekly schedule.
func (c *httpClient) Timetable(ctx context.Context, grade, class int) ([]TimetableEntry, error) {
	var entries []TimetableEntry
	path := fmt.Sprintf("/timetable?grade=%d&class=%d", grade, class)
	if err := c.getJSON(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// getJSON performs one upstream GET and decodes the JSON body into out.
// Transport failures map to CodeUpstreamUnavailable; anything the upstream
// answers that we can't use maps to CodeUpstreamError.
func (c *httpClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("building upstream request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return apperror.Wrap(apperror.CodeUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused, then report.
		io.CopyN(io.Discard, resp.Body, 512)
		return apperror.New(apperror.CodeUpstreamError).
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	body := io.LimitReader(resp.Body, maxUpstreamBody)
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return apperror.Wrap(apperror.CodeUpstreamError, fmt.Errorf("decoding upstream body: %w", err))
	}
	return nil
}
