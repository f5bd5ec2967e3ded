package handler

import (
	"net/url"
	"time"

	"codejarvis/internal/app/service"
	"codejarvis/internal/domain/calendar"
	"codejarvis/internal/domain/model"
)

type landingPage struct {
	Error string
}

// homePage is everything the home template reads. Only the fields of the
// active tab and overlay are filled.
type homePage struct {
	Now       time.Time
	Tab       model.Tab
	Tabs      []model.Tab
	Overlay   model.Overlay
	Flash     *model.Flash
	Platforms []model.Platform
	Data      *service.HomeData

	Calendar    calendar.MonthGrid
	CalendarErr error

	Contests  service.ContestView
	Reminders map[string]model.ReminderState

	Patterns    []model.DSAPattern
	PatternsErr error
	Pattern     *model.DSAPattern
	Top         service.TopProblemsView

	Practice  []model.PracticeProblem
	Languages []model.Language

	Details    *model.PlatformDetails
	DetailsErr error
	History    service.HistoryView
}

func (p homePage) PlatformStats(platform model.Platform) model.PlatformStats {
	return p.Data.Stats.Platform(platform)
}

func (p homePage) ReminderState(c model.Contest) model.ReminderState {
	if state, ok := p.Reminders[c.ReminderKey()]; ok {
		return state
	}
	return model.ReminderNone
}

func homeURL(tab model.Tab, overlay model.Overlay) string {
	q := overlay.Query()
	if tab != model.TabDashboard {
		q.Set("tab", string(tab))
	}
	if len(q) == 0 {
		return "/home"
	}
	return "/home?" + q.Encode()
}

func (p homePage) TabURL(tab model.Tab) string { return homeURL(tab, model.NoOverlay()) }
func (p homePage) CloseURL() string            { return homeURL(p.Tab, model.NoOverlay()) }

// OverlayURL opens the settings or problem-history overlay on the current tab.
func (p homePage) OverlayURL(kind string) string {
	return homeURL(p.Tab, model.ParseOverlay(url.Values{"overlay": {kind}}))
}

func (p homePage) PlatformURL(platform model.Platform) string {
	return homeURL(p.Tab, model.PlatformOverlay(platform))
}

func (p homePage) PatternURL(id string) string {
	return homeURL(p.Tab, model.PatternOverlay(id))
}

// ReturnURL brings a form post back to the contest list it came from.
func (p homePage) ReturnURL() string {
	q := url.Values{}
	q.Set("tab", string(model.TabContests))
	f := p.Contests.Filter
	if f.Platform != "" && f.Platform != model.FilterAll {
		q.Set("contest_platform", f.Platform)
	}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if f.Next7Only {
		q.Set("next7", "1")
	}
	return "/home?" + q.Encode()
}
