package model

import "strings"

type ReminderState string

const (
	ReminderNone    ReminderState = "none"
	ReminderPending ReminderState = "pending"
	ReminderActive  ReminderState = "active"
)

// ReminderKey is the derived contest identity used before the server has
// issued an id.
func ReminderKey(platform, contestName, contestURL string) string {
	return platform + ":" + contestName + ":" + contestURL
}

// ReminderSet maps reminder keys to the server-issued reminder id. An empty id
// means the server never told us one.
type ReminderSet map[string]string

func (s ReminderSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s ReminderSet) Add(key, reminderID string) {
	s[key] = reminderID
}

func (s ReminderSet) Remove(key string) {
	delete(s, key)
}

func (s ReminderSet) ID(key string) string {
	return s[key]
}

// KeyForID finds the local key a server reminder id was stored under.
func (s ReminderSet) KeyForID(reminderID string) (string, bool) {
	if reminderID == "" {
		return "", false
	}
	for k, id := range s {
		if id == reminderID {
			return k, true
		}
	}
	return "", false
}

// Reminder is a reminder record as listed by the remote API.
type Reminder struct {
	ID          string    `json:"id"`
	UserEmail   string    `json:"user_email"`
	ContestName string    `json:"contest_name"`
	ContestURL  string    `json:"contest_url"`
	ContestTime Timestamp `json:"contest_time"`
	Platform    string    `json:"platform"`
}

// Key derives the reminder key from the "<Platform>: <Name>" contest name.
func (r Reminder) Key() (string, bool) {
	platform, name, ok := strings.Cut(r.ContestName, ": ")
	if !ok {
		return "", false
	}
	return ReminderKey(platform, name, r.ContestURL), true
}

type CreateReminderRequest struct {
	UserEmail   string `json:"user_email"`
	ContestName string `json:"contest_name"`
	ContestURL  string `json:"contest_url"`
	ContestTime string `json:"contest_time"`
	Platform    string `json:"platform"`
}

type DeleteReminderRequest struct {
	UserEmail   string `json:"user_email"`
	ContestName string `json:"contest_name"`
	ContestURL  string `json:"contest_url"`
	ReminderID  string `json:"reminder_id,omitempty"`
}

type ReminderResult struct {
	Success    bool   `json:"success"`
	ReminderID string `json:"reminder_id"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// CalendarEvent is one of the user's reminders as shown on the month grid.
type CalendarEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Start     Timestamp `json:"start"`
	URL       string    `json:"url"`
	Platform  string    `json:"platform"`
	UserEmail string    `json:"user_email"`
}

func (e CalendarEvent) Color() string { return PlatformColor(e.Platform) }
