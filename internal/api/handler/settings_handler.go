package handler

import (
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"strings"

	"codejarvis/internal/api/middleware"
	"codejarvis/internal/app/service"
	"codejarvis/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

const (
	settingsURL         = "/home?overlay=settings"
	maxProfileFormBytes = 32 << 20
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(ss *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: ss}
}

func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/settings/accounts", h.saveAccounts)
	r.Post("/settings/profile", h.saveProfile)
}

// Both actions report through the session flash and land back on the
// settings overlay.
func (h *SettingsHandler) saveAccounts(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	accounts := model.Accounts{
		Codeforces: strings.TrimSpace(r.FormValue("codeforces")),
		LeetCode:   strings.TrimSpace(r.FormValue("leetcode")),
		AtCoder:    strings.TrimSpace(r.FormValue("atcoder")),
		CodeChef:   strings.TrimSpace(r.FormValue("codechef")),
	}
	if err := h.settingsService.SaveAccounts(r.Context(), session, accounts); err != nil {
		log.Printf("WARN: %v", err)
	}
	http.Redirect(w, r, settingsURL, http.StatusSeeOther)
}

func (h *SettingsHandler) saveProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	if err := r.ParseMultipartForm(maxProfileFormBytes); err != nil && err != http.ErrNotMultipart {
		log.Printf("WARN: Invalid profile form: %v", err)
	}

	update := service.ProfileUpdate{
		EmailReminders: r.FormValue("emailReminders") != "",
		Newsletter:     r.FormValue("newsletter") != "",
	}
	avatar, err := avatarDataURI(r)
	if err != nil {
		log.Printf("WARN: Failed to read avatar upload: %v", err)
	}
	update.Avatar = avatar

	if _, err := h.settingsService.SaveProfile(r.Context(), session, session.Email, update); err != nil {
		log.Printf("WARN: %v", err)
	}
	http.Redirect(w, r, settingsURL, http.StatusSeeOther)
}

// avatarDataURI reads the uploaded avatar into a data URI. No file means no
// change.
func avatarDataURI(r *http.Request) (string, error) {
	file, header, err := r.FormFile("avatar")
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", nil
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
