package service

import (
	"context"
	"fmt"
	"log"

	"codejarvis/internal/domain/model"
	"codejarvis/internal/domain/repository"
)

const (
	msgAccountsLinked     = "Accounts linked"
	msgAccountsSaveFailed = "Failed to save accounts"
	msgProfileUpdated     = "Profile updated"
	msgProfileSaveFailed  = "Failed to update profile"
)

type SettingsService struct {
	api       RemoteAPI
	prefsRepo repository.PreferencesRepository
	flasher
}

func NewSettingsService(api RemoteAPI, prefsRepo repository.PreferencesRepository, flashRepo repository.FlashRepository) *SettingsService {
	return &SettingsService{api: api, prefsRepo: prefsRepo, flasher: flasher{flashes: flashRepo}}
}

func (s *SettingsService) Accounts(ctx context.Context, session *model.Session) (model.Accounts, error) {
	accounts, err := s.api.Accounts(ctx, session.Token)
	if err != nil {
		return model.Accounts{}, fmt.Errorf("failed to load accounts: %w", err)
	}
	return accounts, nil
}

func (s *SettingsService) Preferences(ctx context.Context, email string) model.Preferences {
	prefs, err := s.prefsRepo.Find(ctx, email)
	if err != nil {
		log.Printf("WARN: Failed to load preferences for %s: %v", email, err)
	}
	return prefs
}

// SaveAccounts posts the handles and trusts the status code alone.
func (s *SettingsService) SaveAccounts(ctx context.Context, session *model.Session, accounts model.Accounts) error {
	if err := s.api.SaveAccounts(ctx, session.Token, accounts); err != nil {
		log.Printf("ERROR: Failed to save accounts for session %s: %v", session.ID, err)
		s.flash(ctx, session.ID, msgAccountsSaveFailed, model.FlashError, model.FlashAccountsDelay)
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	s.flash(ctx, session.ID, msgAccountsLinked, model.FlashSuccess, model.FlashAccountsDelay)
	return nil
}

// ProfileUpdate carries the preference toggles and, when a new file was
// chosen, the avatar as a data URI. An empty Avatar keeps the stored one.
type ProfileUpdate struct {
	EmailReminders bool
	Newsletter     bool
	Avatar         string
}

// SaveProfile persists preferences and the avatar locally, keyed by email.
func (s *SettingsService) SaveProfile(ctx context.Context, session *model.Session, email string, update ProfileUpdate) (model.Preferences, error) {
	prefs := s.Preferences(ctx, email)
	prefs.EmailReminders = update.EmailReminders
	prefs.Newsletter = update.Newsletter
	if update.Avatar != "" {
		prefs.Avatar = update.Avatar
	}
	if err := s.prefsRepo.Save(ctx, email, prefs); err != nil {
		s.flash(ctx, session.ID, msgProfileSaveFailed, model.FlashError, model.FlashProfileDelay)
		return prefs, fmt.Errorf("failed to save profile: %w", err)
	}
	s.flash(ctx, session.ID, msgProfileUpdated, model.FlashSuccess, model.FlashProfileDelay)
	return prefs, nil
}
