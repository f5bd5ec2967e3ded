package handler

import (
	"context"
	"errors"
	"net/http"

	"codejarvis/internal/api/middleware"
	"codejarvis/internal/app/service"
	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/web"

	"github.com/go-chi/chi/v5"
)

// ProblemHandler serves the fragments of the problem-history panel and the
// top-problems browser.
type ProblemHandler struct {
	problemService *service.ProblemService
	pages          *web.Renderer
}

func NewProblemHandler(ps *service.ProblemService, pages *web.Renderer) *ProblemHandler {
	return &ProblemHandler{problemService: ps, pages: pages}
}

func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Post("/home/problems/filter", h.updateFilter)
	r.Post("/home/problems/reset", h.resetFilter)
	r.Get("/home/top-problems", h.topProblems)
}

func (h *ProblemHandler) updateFilter(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	view, err := h.problemService.UpdateFilter(r.Context(), session, r.FormValue("field"), r.FormValue("value"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	h.renderHistory(w, view)
}

func (h *ProblemHandler) resetFilter(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	view := h.problemService.ResetFilter(r.Context(), session)
	h.renderHistory(w, view)
}

// renderHistory drops responses whose fetch a newer filter change cancelled;
// the newer request renders the panel.
func (h *ProblemHandler) renderHistory(w http.ResponseWriter, view service.HistoryView) {
	if errors.Is(view.Err, context.Canceled) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.pages.Render(w, http.StatusOK, "problem_history", view)
}

// topProblems refetches with the filter from the query when one is given,
// otherwise with the stored one (the "show more" case).
func (h *ProblemHandler) topProblems(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	q := r.URL.Query()

	var filter *model.TopProblemFilter
	if q.Has("platform") || q.Has("difficulty") || q.Has("category") || q.Has("topic") {
		filter = &model.TopProblemFilter{
			Platform:   q.Get("platform"),
			Difficulty: q.Get("difficulty"),
			Category:   q.Get("category"),
			Topic:      q.Get("topic"),
		}
	}
	shown := parsePositiveInt(q.Get("shown"), service.TopProblemsStep)

	view := h.problemService.TopProblems(r.Context(), session.ID, filter, shown)
	h.pages.Render(w, http.StatusOK, "top_problems", view)
}
