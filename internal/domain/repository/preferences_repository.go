package repository

import (
	"context"
	"errors"
	"fmt"

	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/platform/kv"
)

// PreferencesRepository keeps the settings panel state per user email. The
// avatar lives here too, independent of the profile picture the API reports.
type PreferencesRepository interface {
	Find(ctx context.Context, email string) (model.Preferences, error)
	Save(ctx context.Context, email string, prefs model.Preferences) error
}

type kvPreferencesRepository struct {
	store kv.Store
}

func NewKVPreferencesRepository(store kv.Store) PreferencesRepository {
	return &kvPreferencesRepository{store: store}
}

func preferencesKey(email string) string { return "prefs:" + email }

// Find returns the defaults when nothing was saved yet.
func (r *kvPreferencesRepository) Find(ctx context.Context, email string) (model.Preferences, error) {
	prefs := model.DefaultPreferences()
	if email == "" {
		return prefs, nil
	}
	if err := kv.GetJSON(ctx, r.store, preferencesKey(email), &prefs); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.DefaultPreferences(), nil
		}
		return model.DefaultPreferences(), fmt.Errorf("kvPreferencesRepository.Find: %w", err)
	}
	return prefs, nil
}

func (r *kvPreferencesRepository) Save(ctx context.Context, email string, prefs model.Preferences) error {
	if email == "" {
		return fmt.Errorf("preferences need a user email: %w", common.ErrValidation)
	}
	if err := kv.SetJSON(ctx, r.store, preferencesKey(email), prefs, 0); err != nil {
		return fmt.Errorf("kvPreferencesRepository.Save: %w", err)
	}
	return nil
}
