package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"codejarvis/internal/domain/calendar"
	"codejarvis/internal/domain/model"
)

// DashboardService loads everything the home page needs on every visit.
type DashboardService struct {
	api       RemoteAPI
	stats     *StatsService
	contests  *ContestService
	settings  *SettingsService
	reminders *ReminderService
}

func NewDashboardService(api RemoteAPI, stats *StatsService, contests *ContestService, settings *SettingsService, reminders *ReminderService) *DashboardService {
	return &DashboardService{api: api, stats: stats, contests: contests, settings: settings, reminders: reminders}
}

// HomeData holds each fetch result next to its own error. Partial failure
// is normal; a nil User means the token was rejected and the page renders
// signed out.
type HomeData struct {
	User        *model.User
	UserErr     error
	Email       string
	Stats       *model.StatsSnapshot
	StatsErr    error
	Activity    calendar.ActivityGrid
	ActivityErr error
	Contests    []model.Contest
	ContestsErr error
	Accounts    model.Accounts
	AccountsErr error
	Preferences model.Preferences
}

// Avatar prefers the locally saved image over the provider picture.
func (d *HomeData) Avatar() string {
	if d.Preferences.Avatar != "" {
		return d.Preferences.Avatar
	}
	if d.User != nil {
		return d.User.Picture
	}
	return ""
}

func (s *DashboardService) Load(ctx context.Context, session *model.Session, now time.Time) *HomeData {
	data := &HomeData{}

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		data.User, data.UserErr = s.api.Me(ctx, session.Token)
	}()
	go func() {
		defer wg.Done()
		data.Stats, data.StatsErr = s.stats.Snapshot(ctx, session)
	}()
	go func() {
		defer wg.Done()
		data.Activity, data.ActivityErr = s.stats.Activity(ctx, session, "", now)
	}()
	go func() {
		defer wg.Done()
		data.Contests, data.ContestsErr = s.contests.List(ctx)
	}()
	go func() {
		defer wg.Done()
		data.Accounts, data.AccountsErr = s.settings.Accounts(ctx, session)
	}()
	wg.Wait()

	for name, err := range map[string]error{
		"user": data.UserErr, "stats": data.StatsErr, "activity": data.ActivityErr,
		"contests": data.ContestsErr, "accounts": data.AccountsErr,
	} {
		if err != nil {
			log.Printf("WARN: Home %s fetch failed for session %s: %v", name, session.ID, err)
		}
	}

	data.Email = session.Email
	if data.User != nil && data.User.Email != "" {
		data.Email = data.User.Email
	}
	data.Preferences = s.settings.Preferences(ctx, data.Email)

	if data.User != nil && len(data.Contests) > 0 {
		if err := s.reminders.Reconcile(ctx, session.ID, data.Email); err != nil {
			log.Printf("WARN: Reminder reconciliation failed for session %s: %v", session.ID, err)
		}
	}
	return data
}

// Calendar lays out the user's reminder events on the current month.
func (s *DashboardService) Calendar(ctx context.Context, email string, now time.Time) (calendar.MonthGrid, error) {
	if email == "" {
		return calendar.BuildMonthGrid(now, nil), nil
	}
	events, err := s.api.CalendarEvents(ctx)
	if err != nil {
		return calendar.BuildMonthGrid(now, nil), fmt.Errorf("error fetching calendar events: %w", err)
	}
	return calendar.BuildMonthGrid(now, calendar.EventsForUser(events, email)), nil
}
