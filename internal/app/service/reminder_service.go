package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/domain/repository"
	"codejarvis/internal/platform/jarvis"
)

const (
	msgReminderCreated      = "Reminder created successfully! Check your email."
	msgReminderExists       = "Reminder already exists for this contest"
	msgReminderCreateFailed = "Failed to create reminder"
	msgReminderRemoved      = "Reminder removed successfully!"
	msgReminderRemoveFailed = "Failed to remove reminder"
	msgReminderSignInNeeded = "Please sign in to set reminders"
	msgReminderInProgress   = "A reminder update for this contest is already in progress"
)

type ReminderService struct {
	api          RemoteAPI
	reminderRepo repository.ReminderRepository
	flasher
}

func NewReminderService(api RemoteAPI, reminderRepo repository.ReminderRepository, flashRepo repository.FlashRepository) *ReminderService {
	return &ReminderService{api: api, reminderRepo: reminderRepo, flasher: flasher{flashes: flashRepo}}
}

// ToggleResult is the state a contest's reminder ended in and the message
// shown for it.
type ToggleResult struct {
	State   model.ReminderState `json:"state"`
	Message string              `json:"message"`
	Kind    model.FlashKind     `json:"kind"`
}

// States reports the reminder state of every listed contest, keyed by
// reminder key.
func (s *ReminderService) States(ctx context.Context, sessionID string, contests []model.Contest) (map[string]model.ReminderState, error) {
	set, err := s.reminderRepo.FindSet(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}
	keys := make([]string, len(contests))
	for i, c := range contests {
		keys[i] = c.ReminderKey()
	}
	pending, err := s.reminderRepo.PendingKeys(ctx, sessionID, keys)
	if err != nil {
		log.Printf("WARN: Failed to read pending reminders for session %s: %v", sessionID, err)
	}

	states := make(map[string]model.ReminderState, len(keys))
	for _, key := range keys {
		switch {
		case pending[key]:
			states[key] = model.ReminderPending
		case set.Has(key):
			states[key] = model.ReminderActive
		default:
			states[key] = model.ReminderNone
		}
	}
	return states, nil
}

// Reconcile replaces the stored set with the server's reminders, once per
// session. Server ids already known keep the key they were stored under;
// unknown ones fall back to the derived key. A failed attempt releases the
// marker so the next load tries again.
func (s *ReminderService) Reconcile(ctx context.Context, sessionID, email string) (err error) {
	if email == "" {
		return nil
	}
	first, err := s.reminderRepo.MarkReconciled(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to mark reconciliation: %w", err)
	}
	if !first {
		return nil
	}
	defer func() {
		if err == nil {
			return
		}
		if cErr := s.reminderRepo.ClearReconciled(context.WithoutCancel(ctx), sessionID); cErr != nil {
			log.Printf("ERROR: Failed to release reconcile marker for session %s: %v", sessionID, cErr)
		}
	}()

	remote, err := s.api.Reminders(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check existing reminders: %w", err)
	}
	current, err := s.reminderRepo.FindSet(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}

	next := model.ReminderSet{}
	for _, r := range remote {
		if key, ok := current.KeyForID(r.ID); ok {
			next.Add(key, r.ID)
			continue
		}
		if key, ok := r.Key(); ok {
			next.Add(key, r.ID)
		}
	}
	if err := s.reminderRepo.SaveSet(ctx, sessionID, next); err != nil {
		return fmt.Errorf("failed to save reminders: %w", err)
	}
	log.Printf("INFO: Reconciled %d reminders for session %s", len(next), sessionID)
	return nil
}

// Toggle creates the reminder when none exists and deletes it otherwise.
// A second toggle for the same contest while one is pending returns
// common.ErrReminderPending without touching the remote API. The result is
// not flashed; form callers pass it to FlashResult.
func (s *ReminderService) Toggle(ctx context.Context, sessionID, email string, contest model.Contest) (ToggleResult, error) {
	if email == "" {
		return ToggleResult{State: model.ReminderNone, Message: msgReminderSignInNeeded, Kind: model.FlashError}, nil
	}

	key := contest.ReminderKey()
	acquired, err := s.reminderRepo.AcquirePending(ctx, sessionID, key)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("failed to lock reminder: %w", err)
	}
	if !acquired {
		return ToggleResult{State: model.ReminderPending, Message: msgReminderInProgress, Kind: model.FlashInfo}, common.ErrReminderPending
	}
	defer func() {
		if err := s.reminderRepo.ReleasePending(context.WithoutCancel(ctx), sessionID, key); err != nil {
			log.Printf("ERROR: Failed to release reminder lock %s: %v", key, err)
		}
	}()

	set, err := s.reminderRepo.FindSet(ctx, sessionID)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("failed to load reminders: %w", err)
	}

	var res ToggleResult
	if set.Has(key) {
		res = s.remove(ctx, email, contest, set)
	} else {
		res = s.create(ctx, email, contest, set)
	}

	if err := s.reminderRepo.SaveSet(ctx, sessionID, set); err != nil {
		return ToggleResult{}, fmt.Errorf("failed to save reminders: %w", err)
	}
	return res, nil
}

// FlashResult shows the toggle outcome on the next page render.
func (s *ReminderService) FlashResult(ctx context.Context, sessionID string, res ToggleResult) {
	if res.Message == "" {
		return
	}
	s.flash(ctx, sessionID, res.Message, res.Kind, model.FlashDefaultDelay)
}

func (s *ReminderService) create(ctx context.Context, email string, contest model.Contest, set model.ReminderSet) ToggleResult {
	req := model.CreateReminderRequest{
		UserEmail:   email,
		ContestName: contest.DisplayName(),
		ContestURL:  contest.URL,
		ContestTime: contest.Start.Format(time.RFC3339),
		Platform:    contest.Platform,
	}
	out, err := s.api.CreateReminder(ctx, req)
	switch {
	case err == nil && out.Success:
		set.Add(contest.ReminderKey(), out.ReminderID)
		return ToggleResult{State: model.ReminderActive, Message: msgReminderCreated, Kind: model.FlashSuccess}
	case errors.Is(err, common.ErrConflict):
		set.Add(contest.ReminderKey(), out.ReminderID)
		return ToggleResult{State: model.ReminderActive, Message: msgReminderExists, Kind: model.FlashInfo}
	}
	log.Printf("WARN: Create reminder for %q failed: %v", contest.DisplayName(), err)
	return ToggleResult{State: model.ReminderNone, Message: failureMessage(err, out, msgReminderCreateFailed), Kind: model.FlashError}
}

func (s *ReminderService) remove(ctx context.Context, email string, contest model.Contest, set model.ReminderSet) ToggleResult {
	key := contest.ReminderKey()
	req := model.DeleteReminderRequest{
		UserEmail:   email,
		ContestName: contest.DisplayName(),
		ContestURL:  contest.URL,
		ReminderID:  set.ID(key),
	}
	out, err := s.api.DeleteReminder(ctx, req)
	if err == nil && out.Success {
		set.Remove(key)
		return ToggleResult{State: model.ReminderNone, Message: msgReminderRemoved, Kind: model.FlashSuccess}
	}
	log.Printf("WARN: Delete reminder for %q failed: %v", contest.DisplayName(), err)
	return ToggleResult{State: model.ReminderActive, Message: failureMessage(err, out, msgReminderRemoveFailed), Kind: model.FlashError}
}

// failureMessage prefers the server's own error text.
func failureMessage(err error, out model.ReminderResult, fallback string) string {
	if msg := jarvis.ServerMessage(err); msg != "" {
		return msg
	}
	if err == nil && out.Error != "" {
		return out.Error
	}
	return fallback
}
