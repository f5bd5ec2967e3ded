package jarvis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
)

func (c *Client) Contests(ctx context.Context) ([]model.Contest, error) {
	var contests []model.Contest
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/contests"}, &contests); err != nil {
		return nil, err
	}
	return contests, nil
}

func (c *Client) Stats(ctx context.Context, token string) (*model.StatsSnapshot, error) {
	var stats model.StatsSnapshot
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/stats", token: token}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DailyActivity returns the per-day counts, for one platform when platform is set.
func (c *Client) DailyActivity(ctx context.Context, token, platform string) ([]model.DailyActivity, error) {
	req := request{method: http.MethodGet, path: "/api/stats/daily", token: token}
	if platform != "" {
		req.query = url.Values{"platform": {platform}}
	}
	var out struct {
		Days []model.DailyActivity `json:"days"`
	}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Days, nil
}

func (c *Client) Problems(ctx context.Context, token string, query url.Values) (*model.ProblemPage, error) {
	var page model.ProblemPage
	req := request{method: http.MethodGet, path: "/api/stats/problems", query: query, token: token}
	if err := c.do(ctx, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) PlatformDetails(ctx context.Context, token string, platform model.Platform) (*model.PlatformDetails, error) {
	var details model.PlatformDetails
	req := request{
		method: http.MethodGet,
		path:   "/api/stats/" + url.PathEscape(string(platform)),
		query:  url.Values{"detailed": {"true"}},
		token:  token,
	}
	if err := c.do(ctx, req, &details); err != nil {
		return nil, err
	}
	if details.Platform == "" {
		details.Platform = string(platform)
	}
	return &details, nil
}

func (c *Client) TopProblems(ctx context.Context, query url.Values) (*model.TopProblemPage, error) {
	var page model.TopProblemPage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/stats/top-problems", query: query}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) DSAPatterns(ctx context.Context) ([]model.DSAPattern, error) {
	var out struct {
		Patterns []model.DSAPattern `json:"patterns"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/stats/dsa-patterns"}, &out); err != nil {
		return nil, err
	}
	return out.Patterns, nil
}

// CreateReminder returns the decoded body even on a 409, so callers can read
// the id of the reminder that already exists.
func (c *Client) CreateReminder(ctx context.Context, in model.CreateReminderRequest) (model.ReminderResult, error) {
	var res model.ReminderResult
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/reminders", body: in}, &res)
	var se *StatusError
	if errors.As(err, &se) && errors.Is(err, common.ErrConflict) {
		_ = json.Unmarshal(se.Body, &res)
	}
	return res, err
}

func (c *Client) DeleteReminder(ctx context.Context, in model.DeleteReminderRequest) (model.ReminderResult, error) {
	var res model.ReminderResult
	err := c.do(ctx, request{method: http.MethodDelete, path: "/api/reminders", body: in}, &res)
	return res, err
}

func (c *Client) Reminders(ctx context.Context, email string) ([]model.Reminder, error) {
	var out struct {
		Success   bool             `json:"success"`
		Reminders []model.Reminder `json:"reminders"`
		Error     string           `json:"error"`
	}
	path := "/api/reminders/" + url.PathEscape(email)
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("listing reminders: %s: %w", out.Error, common.ErrUpstream)
	}
	return out.Reminders, nil
}

// CalendarEvents lists every reminder event; callers filter by user.
func (c *Client) CalendarEvents(ctx context.Context) ([]model.CalendarEvent, error) {
	var out struct {
		Success bool                  `json:"success"`
		Events  []model.CalendarEvent `json:"events"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/reminders/calendar"}, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("failed to load calendar events: %w", common.ErrUpstream)
	}
	return out.Events, nil
}

func (c *Client) Accounts(ctx context.Context, token string) (model.Accounts, error) {
	var out struct {
		Accounts model.Accounts `json:"accounts"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/accounts", token: token}, &out); err != nil {
		return model.Accounts{}, err
	}
	return out.Accounts, nil
}

// SaveAccounts is judged by status code only.
func (c *Client) SaveAccounts(ctx context.Context, token string, accounts model.Accounts) error {
	body := struct {
		Accounts model.Accounts `json:"accounts"`
	}{accounts}
	return c.do(ctx, request{method: http.MethodPost, path: "/api/accounts", token: token, body: body}, nil)
}

func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	var out struct {
		User *model.User `json:"user"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/auth/me", token: token}, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("no user for token: %w", common.ErrUnauthorized)
	}
	return out.User, nil
}

func (c *Client) GoogleAuthURL(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/auth/google/url"}, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("empty auth url: %w", common.ErrMalformedResponse)
	}
	return out.URL, nil
}
