package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/platform/kv"
)

// pendingTTL bounds how long a crashed toggle can block its contest.
const pendingTTL = 30 * time.Second

type ReminderRepository interface {
	FindSet(ctx context.Context, sessionID string) (model.ReminderSet, error)
	SaveSet(ctx context.Context, sessionID string, set model.ReminderSet) error
	// MarkReconciled reports whether this call was the first for the session.
	MarkReconciled(ctx context.Context, sessionID string) (bool, error)
	// ClearReconciled lets the next load reconcile again.
	ClearReconciled(ctx context.Context, sessionID string) error
	// AcquirePending claims the toggle for key; false means one is in flight.
	AcquirePending(ctx context.Context, sessionID, key string) (bool, error)
	ReleasePending(ctx context.Context, sessionID, key string) error
	// PendingKeys reports which of keys have a toggle in flight.
	PendingKeys(ctx context.Context, sessionID string, keys []string) (map[string]bool, error)
	DeleteAll(ctx context.Context, sessionID string) error
}

type kvReminderRepository struct {
	store kv.Store
}

func NewKVReminderRepository(store kv.Store) ReminderRepository {
	return &kvReminderRepository{store: store}
}

func reminderSetKey(sessionID string) string  { return "reminders:" + sessionID }
func reconciledKey(sessionID string) string   { return "reminders:reconciled:" + sessionID }
func pendingKey(sessionID, key string) string { return "reminders:pending:" + sessionID + ":" + key }

func (r *kvReminderRepository) FindSet(ctx context.Context, sessionID string) (model.ReminderSet, error) {
	set := model.ReminderSet{}
	if err := kv.GetJSON(ctx, r.store, reminderSetKey(sessionID), &set); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.ReminderSet{}, nil
		}
		return model.ReminderSet{}, fmt.Errorf("kvReminderRepository.FindSet: %w", err)
	}
	if set == nil {
		set = model.ReminderSet{}
	}
	return set, nil
}

func (r *kvReminderRepository) SaveSet(ctx context.Context, sessionID string, set model.ReminderSet) error {
	if err := kv.SetJSON(ctx, r.store, reminderSetKey(sessionID), set, 0); err != nil {
		return fmt.Errorf("kvReminderRepository.SaveSet: %w", err)
	}
	return nil
}

func (r *kvReminderRepository) MarkReconciled(ctx context.Context, sessionID string) (bool, error) {
	ok, err := r.store.SetNX(ctx, reconciledKey(sessionID), []byte("1"), 0)
	if err != nil {
		return false, fmt.Errorf("kvReminderRepository.MarkReconciled: %w", err)
	}
	return ok, nil
}

func (r *kvReminderRepository) ClearReconciled(ctx context.Context, sessionID string) error {
	if err := r.store.Delete(ctx, reconciledKey(sessionID)); err != nil {
		return fmt.Errorf("kvReminderRepository.ClearReconciled: %w", err)
	}
	return nil
}

func (r *kvReminderRepository) AcquirePending(ctx context.Context, sessionID, key string) (bool, error) {
	ok, err := r.store.SetNX(ctx, pendingKey(sessionID, key), []byte("1"), pendingTTL)
	if err != nil {
		return false, fmt.Errorf("kvReminderRepository.AcquirePending: %w", err)
	}
	return ok, nil
}

func (r *kvReminderRepository) ReleasePending(ctx context.Context, sessionID, key string) error {
	if err := r.store.Delete(ctx, pendingKey(sessionID, key)); err != nil {
		return fmt.Errorf("kvReminderRepository.ReleasePending: %w", err)
	}
	return nil
}

func (r *kvReminderRepository) PendingKeys(ctx context.Context, sessionID string, keys []string) (map[string]bool, error) {
	storeKeys := make([]string, len(keys))
	for i, key := range keys {
		storeKeys[i] = pendingKey(sessionID, key)
	}
	found, err := r.store.GetMany(ctx, storeKeys)
	if err != nil {
		return nil, fmt.Errorf("kvReminderRepository.PendingKeys: %w", err)
	}
	pending := make(map[string]bool, len(found))
	for i, key := range keys {
		if _, ok := found[storeKeys[i]]; ok {
			pending[key] = true
		}
	}
	return pending, nil
}

// DeleteAll drops the set and the reconcile marker on logout.
func (r *kvReminderRepository) DeleteAll(ctx context.Context, sessionID string) error {
	for _, key := range []string{reminderSetKey(sessionID), reconciledKey(sessionID)} {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("kvReminderRepository.DeleteAll: %w", err)
		}
	}
	return nil
}
