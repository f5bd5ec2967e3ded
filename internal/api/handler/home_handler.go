package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"codejarvis/internal/api/middleware"
	"codejarvis/internal/app/service"
	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/web"

	"github.com/go-chi/chi/v5"
)

// Services bundles what the dashboard handlers need.
type Services struct {
	Sessions  *service.SessionService
	Dashboard *service.DashboardService
	Contests  *service.ContestService
	Reminders *service.ReminderService
	Stats     *service.StatsService
	Problems  *service.ProblemService
	Settings  *service.SettingsService
	CodeSpace *service.ExecutionJobService
}

type HomeHandler struct {
	svc   Services
	pages *web.Renderer
	now   func() time.Time
}

func NewHomeHandler(svc Services, pages *web.Renderer) *HomeHandler {
	return &HomeHandler{svc: svc, pages: pages, now: time.Now}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/home", h.home)
	r.Get("/home/activity", h.activity)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := middleware.GetSessionFromContext(ctx)
	q := r.URL.Query()
	now := h.now()

	page := homePage{
		Now:       now,
		Tab:       model.ParseTab(q.Get("tab")),
		Tabs:      model.Tabs,
		Overlay:   model.ParseOverlay(q),
		Platforms: model.Platforms,
	}
	page.Data = h.svc.Dashboard.Load(ctx, session, now)
	if page.Data.User != nil {
		h.svc.Sessions.RememberEmail(ctx, session, page.Data.Email)
	}

	switch page.Tab {
	case model.TabDashboard:
		page.Calendar, page.CalendarErr = h.svc.Dashboard.Calendar(ctx, page.Data.Email, now)
		if page.CalendarErr != nil {
			log.Printf("WARN: %v", page.CalendarErr)
		}
	case model.TabContests:
		filter := model.ContestFilter{
			Platform:  q.Get("contest_platform"),
			Search:    q.Get("q"),
			Next7Only: q.Get("next7") == "1",
		}
		page.Contests = h.svc.Contests.View(page.Data.Contests, filter, now)
		states, err := h.svc.Reminders.States(ctx, session.ID, page.Contests.Contests)
		if err != nil {
			log.Printf("WARN: %v", err)
		}
		page.Reminders = states
	case model.TabDSARush:
		page.Patterns, page.PatternsErr = h.svc.Problems.Patterns(ctx)
		page.Top = h.svc.Problems.TopProblems(ctx, session.ID, nil, 0)
	case model.TabCodeSpace:
		page.Practice = h.svc.CodeSpace.Problems()
		page.Languages = h.svc.CodeSpace.Languages()
	}

	switch page.Overlay.Kind {
	case model.OverlayPlatformDetail:
		page.Details, page.DetailsErr = h.svc.Stats.PlatformDetails(ctx, session, page.Overlay.Platform)
	case model.OverlayProblemHistory:
		page.History = h.svc.Problems.OpenHistory(ctx, session, page.Data.Accounts)
	case model.OverlayPattern:
		if page.Patterns == nil && page.PatternsErr == nil {
			page.Patterns, page.PatternsErr = h.svc.Problems.Patterns(ctx)
		}
		if p, ok := service.FindPattern(page.Patterns, page.Overlay.PatternID); ok {
			page.Pattern = &p
		}
	}

	page.Flash = h.svc.Sessions.Flash(ctx, session.ID)
	h.pages.Render(w, http.StatusOK, "home", page)
}

// activity renders the heatmap fragment, for one platform when ?platform= is
// set. A request superseded by a newer hover answers 204.
func (h *HomeHandler) activity(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	grid, err := h.svc.Stats.Activity(r.Context(), session, r.URL.Query().Get("platform"), h.now())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		common.RespondWithDomainError(w, err)
		return
	}
	h.pages.Render(w, http.StatusOK, "heatmap", grid)
}
