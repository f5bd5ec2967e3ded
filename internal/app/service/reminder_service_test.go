package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
)

var round900 = model.Contest{
	Platform:        "Codeforces",
	Name:            "Round 900",
	Start:           model.Timestamp{Time: time.Date(2024, 9, 20, 14, 35, 0, 0, time.UTC)},
	DurationMinutes: 120,
	URL:             "https://codeforces.com/contests/1875",
}

func TestReminderService_CreateThenDelete(t *testing.T) {
	repos := newTestRepos(t)
	api := &fakeAPI{}
	var created model.CreateReminderRequest
	api.createFn = func(in model.CreateReminderRequest) (model.ReminderResult, error) {
		created = in
		return model.ReminderResult{Success: true, ReminderID: "r-7"}, nil
	}
	svc := NewReminderService(api, repos.reminders, repos.flashes)
	ctx := context.Background()

	res, err := svc.Toggle(ctx, "s", "coder@example.com", round900)
	if err != nil {
		t.Fatalf("Toggle create: %v", err)
	}
	if res.State != model.ReminderActive || res.Message != "Reminder created successfully! Check your email." {
		t.Errorf("unexpected result %+v", res)
	}
	if created.ContestName != "Codeforces: Round 900" || created.ContestTime != "2024-09-20T14:35:00Z" || created.Platform != "Codeforces" {
		t.Errorf("unexpected create body %+v", created)
	}
	set, _ := repos.reminders.FindSet(ctx, "s")
	if !set.Has(round900.ReminderKey()) || set.ID(round900.ReminderKey()) != "r-7" {
		t.Fatalf("key missing after create: %+v", set)
	}
	if got := repos.flash(t, "s"); got != "" {
		t.Errorf("Toggle should not flash by itself, got %q", got)
	}
	svc.FlashResult(ctx, "s", res)
	if repos.flash(t, "s") != res.Message {
		t.Errorf("flash = %q", repos.flash(t, "s"))
	}

	res, err = svc.Toggle(ctx, "s", "coder@example.com", round900)
	if err != nil {
		t.Fatalf("Toggle delete: %v", err)
	}
	if res.State != model.ReminderNone || res.Message != "Reminder removed successfully!" {
		t.Errorf("unexpected result %+v", res)
	}
	if len(api.deletes) != 1 || api.deletes[0].ReminderID != "r-7" {
		t.Errorf("delete should send the stored id, got %+v", api.deletes)
	}
	set, _ = repos.reminders.FindSet(ctx, "s")
	if set.Has(round900.ReminderKey()) {
		t.Errorf("key still present after delete")
	}
}

func TestReminderService_ConflictIsActive(t *testing.T) {
	repos := newTestRepos(t)
	api := &fakeAPI{createFn: func(model.CreateReminderRequest) (model.ReminderResult, error) {
		return model.ReminderResult{ReminderID: "r-old"}, fmt.Errorf("remote api returned 409: %w", common.ErrConflict)
	}}
	svc := NewReminderService(api, repos.reminders, repos.flashes)

	res, err := svc.Toggle(context.Background(), "s", "coder@example.com", round900)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if res.State != model.ReminderActive {
		t.Errorf("State = %s, want active", res.State)
	}
	if res.Message != "Reminder already exists for this contest" {
		t.Errorf("Message = %q", res.Message)
	}
	set, _ := repos.reminders.FindSet(context.Background(), "s")
	if set.ID(round900.ReminderKey()) != "r-old" {
		t.Errorf("conflict id not stored: %+v", set)
	}
}

func TestReminderService_Failures(t *testing.T) {
	tests := []struct {
		name    string
		create  func(model.CreateReminderRequest) (model.ReminderResult, error)
		message string
	}{
		{
			name: "unsuccessful body with error",
			create: func(model.CreateReminderRequest) (model.ReminderResult, error) {
				return model.ReminderResult{Success: false, Error: "Contest already started"}, nil
			},
			message: "Contest already started",
		},
		{
			name: "upstream error without message",
			create: func(model.CreateReminderRequest) (model.ReminderResult, error) {
				return model.ReminderResult{}, common.ErrUpstream
			},
			message: "Failed to create reminder",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newTestRepos(t)
			svc := NewReminderService(&fakeAPI{createFn: tt.create}, repos.reminders, repos.flashes)
			res, err := svc.Toggle(context.Background(), "s", "coder@example.com", round900)
			if err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			if res.State != model.ReminderNone || res.Message != tt.message {
				t.Errorf("unexpected result %+v", res)
			}
		})
	}
}

func TestReminderService_DeleteFailureStaysActive(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	set := model.ReminderSet{}
	set.Add(round900.ReminderKey(), "r-1")
	repos.reminders.SaveSet(ctx, "s", set)

	api := &fakeAPI{deleteFn: func(model.DeleteReminderRequest) (model.ReminderResult, error) {
		return model.ReminderResult{}, common.ErrServiceUnavailable
	}}
	svc := NewReminderService(api, repos.reminders, repos.flashes)

	res, _ := svc.Toggle(ctx, "s", "coder@example.com", round900)
	if res.State != model.ReminderActive || res.Message != "Failed to remove reminder" {
		t.Errorf("unexpected result %+v", res)
	}
	set, _ = repos.reminders.FindSet(ctx, "s")
	if !set.Has(round900.ReminderKey()) {
		t.Errorf("key should survive a failed delete")
	}
}

func TestReminderService_RequiresEmail(t *testing.T) {
	repos := newTestRepos(t)
	api := &fakeAPI{createFn: func(model.CreateReminderRequest) (model.ReminderResult, error) {
		t.Errorf("no request expected without an email")
		return model.ReminderResult{}, nil
	}}
	svc := NewReminderService(api, repos.reminders, repos.flashes)

	res, err := svc.Toggle(context.Background(), "s", "", round900)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if res.Message != "Please sign in to set reminders" || res.State != model.ReminderNone {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestReminderService_RejectsConcurrentToggle(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	if ok, _ := repos.reminders.AcquirePending(ctx, "s", round900.ReminderKey()); !ok {
		t.Fatalf("could not take pending marker")
	}
	svc := NewReminderService(&fakeAPI{}, repos.reminders, repos.flashes)

	res, err := svc.Toggle(ctx, "s", "coder@example.com", round900)
	if !errors.Is(err, common.ErrReminderPending) {
		t.Fatalf("expected ErrReminderPending, got %v", err)
	}
	if res.State != model.ReminderPending {
		t.Errorf("State = %s", res.State)
	}

	states, _ := svc.States(ctx, "s", []model.Contest{round900})
	if states[round900.ReminderKey()] != model.ReminderPending {
		t.Errorf("States = %+v", states)
	}
}

func TestReminderService_ReconcileByIDThenKey(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	known := model.ReminderSet{}
	known.Add(round900.ReminderKey(), "r-1")
	repos.reminders.SaveSet(ctx, "s", known)

	api := &fakeAPI{reminders: []model.Reminder{
		// The server renamed the contest; the id still ties it to our key.
		{ID: "r-1", ContestName: "Codeforces: Codeforces Round #900 (Div. 2)", ContestURL: round900.URL},
		{ID: "r-2", ContestName: "LeetCode: Weekly Contest 400", ContestURL: "https://leetcode.com/contest/weekly-contest-400"},
	}}
	svc := NewReminderService(api, repos.reminders, repos.flashes)

	if err := svc.Reconcile(ctx, "s", "coder@example.com"); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	set, _ := repos.reminders.FindSet(ctx, "s")
	if set.ID(round900.ReminderKey()) != "r-1" {
		t.Errorf("renamed contest lost its reminder: %+v", set)
	}
	leet := model.ReminderKey("LeetCode", "Weekly Contest 400", "https://leetcode.com/contest/weekly-contest-400")
	if set.ID(leet) != "r-2" {
		t.Errorf("derived key missing: %+v", set)
	}
	if len(set) != 2 {
		t.Errorf("expected exactly 2 keys, got %+v", set)
	}

	if err := svc.Reconcile(ctx, "s", "coder@example.com"); err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if api.reminderCalls != 1 {
		t.Errorf("reconciliation ran %d times, want once per session", api.reminderCalls)
	}
}

func TestReminderService_ReconcileRetriesAfterFailure(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	api := &fakeAPI{
		reminders:    []model.Reminder{{ID: "r-1", ContestName: "Codeforces: Round 900", ContestURL: round900.URL}},
		reminderErrs: []error{common.ErrServiceUnavailable},
	}
	svc := NewReminderService(api, repos.reminders, repos.flashes)

	if err := svc.Reconcile(ctx, "s", "coder@example.com"); !errors.Is(err, common.ErrServiceUnavailable) {
		t.Fatalf("first Reconcile = %v, want ErrServiceUnavailable", err)
	}
	if err := svc.Reconcile(ctx, "s", "coder@example.com"); err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if api.reminderCalls != 2 {
		t.Errorf("Reminders called %d times, want 2", api.reminderCalls)
	}
	set, _ := repos.reminders.FindSet(ctx, "s")
	if set.ID(round900.ReminderKey()) != "r-1" {
		t.Errorf("server reminder not stored after retry: %+v", set)
	}

	if err := svc.Reconcile(ctx, "s", "coder@example.com"); err != nil {
		t.Fatalf("third Reconcile: %v", err)
	}
	if api.reminderCalls != 2 {
		t.Errorf("a successful reconcile should not run again, calls = %d", api.reminderCalls)
	}
}

func TestReminderService_StatesMixesPendingAndActive(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	weekly := model.Contest{Platform: "LeetCode", Name: "Weekly Contest 400", URL: "https://leetcode.com/contest/weekly-contest-400"}
	other := model.Contest{Platform: "AtCoder", Name: "ABC 370", URL: "https://atcoder.jp/contests/abc370"}

	set := model.ReminderSet{}
	set.Add(round900.ReminderKey(), "r-1")
	set.Add(weekly.ReminderKey(), "r-2")
	repos.reminders.SaveSet(ctx, "s", set)
	repos.reminders.AcquirePending(ctx, "s", weekly.ReminderKey())
	svc := NewReminderService(&fakeAPI{}, repos.reminders, repos.flashes)

	states, err := svc.States(ctx, "s", []model.Contest{round900, weekly, other})
	if err != nil {
		t.Fatalf("States: %v", err)
	}
	want := map[string]model.ReminderState{
		round900.ReminderKey(): model.ReminderActive,
		weekly.ReminderKey():   model.ReminderPending,
		other.ReminderKey():    model.ReminderNone,
	}
	for key, state := range want {
		if states[key] != state {
			t.Errorf("state[%s] = %s, want %s", key, states[key], state)
		}
	}
}
