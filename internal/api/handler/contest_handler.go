package handler

import (
	"log"
	"net/http"
	"strings"

	"codejarvis/internal/api/middleware"
	"codejarvis/internal/app/service"
	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

const defaultContestReturn = "/home?tab=contests"

type ContestHandler struct {
	reminderService *service.ReminderService
}

func NewContestHandler(rs *service.ReminderService) *ContestHandler {
	return &ContestHandler{reminderService: rs}
}

func (h *ContestHandler) RegisterRoutes(r chi.Router) {
	r.Post("/home/contests/remind", h.toggleReminder)
}

// toggleReminder flips the reminder of the contest described by the form.
// Script callers asking for JSON get the resulting state; plain form posts
// are redirected back to the list.
func (h *ContestHandler) toggleReminder(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	wantsJSON := strings.Contains(r.Header.Get("Accept"), "application/json")

	contest, err := contestFromForm(r)
	if err != nil {
		if wantsJSON {
			common.RespondWithDomainError(w, err)
			return
		}
		http.Redirect(w, r, defaultContestReturn, http.StatusSeeOther)
		return
	}

	res, err := h.reminderService.Toggle(r.Context(), session.ID, session.Email, contest)
	if err != nil {
		log.Printf("WARN: Reminder toggle for %q rejected: %v", contest.DisplayName(), err)
		if wantsJSON {
			common.RespondWithDomainError(w, err)
			return
		}
	} else if wantsJSON {
		common.RespondWithJSON(w, http.StatusOK, res)
		return
	}
	// Script callers show the message themselves.
	h.reminderService.FlashResult(r.Context(), session.ID, res)
	http.Redirect(w, r, safeReturn(r.FormValue("return")), http.StatusSeeOther)
}

func contestFromForm(r *http.Request) (model.Contest, error) {
	if err := r.ParseForm(); err != nil {
		return model.Contest{}, common.Errorf("invalid form: %v: %w", err, common.ErrBadRequest)
	}
	c := model.Contest{
		Platform: strings.TrimSpace(r.PostFormValue("platform")),
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		URL:      strings.TrimSpace(r.PostFormValue("url")),
	}
	if c.Platform == "" || c.Name == "" {
		return model.Contest{}, common.Errorf("platform and name are required: %w", common.ErrValidation)
	}
	start, err := model.ParseTimestamp(r.PostFormValue("start"))
	if err != nil {
		return model.Contest{}, common.Errorf("invalid contest start: %v: %w", err, common.ErrValidation)
	}
	c.Start = start
	c.DurationMinutes = parsePositiveInt(r.PostFormValue("duration"), 0)
	return c, nil
}

// safeReturn keeps redirects on the dashboard.
func safeReturn(target string) string {
	if strings.HasPrefix(target, "/home") && !strings.HasPrefix(target, "//") {
		return target
	}
	return defaultContestReturn
}
