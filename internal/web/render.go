// Package web renders the dashboard pages and the fragments the page
// scripts swap in.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"codejarvis/internal/domain/calendar"
	"codejarvis/internal/domain/model"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named template into a buffer first, so a failing
// template never leaves a half-written page behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("ERROR: Failed to render template %s: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"platformName": platformName,
		"color":        model.PlatformColor,
		"localTime":    func(t time.Time) string { return t.Local().Format("Mon, Jan 2 · 15:04") },
		"shortDate":    func(t time.Time) string { return t.Local().Format("Jan 2") },
		"weekday":      func(t time.Time) string { return t.Local().Format("Mon") },
		"timeUntil":    calendar.TimeUntil,
		"join":         strings.Join,
		"options":      Options,
		"selected":     selected,
		"itoa":         func(i int) string { return fmt.Sprint(i) },
		"safeURL":      func(s string) template.URL { return template.URL(s) },
	}
}

func platformName(s string) string {
	if p, ok := model.ParsePlatform(s); ok {
		return p.DisplayName()
	}
	return s
}

func selected(current, value string) template.HTMLAttr {
	if current == value {
		return "selected"
	}
	return ""
}
