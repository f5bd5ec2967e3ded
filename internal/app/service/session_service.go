package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"codejarvis/internal/common"
	"codejarvis/internal/common/security"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/domain/repository"

	"github.com/google/uuid"
)

// SessionService is the single owner of the browser session: one accessor
// (Current) and one mutator per transition (Login, Logout).
type SessionService struct {
	sessionRepo  repository.SessionRepository
	reminderRepo repository.ReminderRepository
	filterRepo   repository.FilterRepository
	flashRepo    repository.FlashRepository
	api          RemoteAPI
	inflight     *Canceler
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	reminderRepo repository.ReminderRepository,
	filterRepo repository.FilterRepository,
	flashRepo repository.FlashRepository,
	api RemoteAPI,
	inflight *Canceler,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		reminderRepo: reminderRepo,
		filterRepo:   filterRepo,
		flashRepo:    flashRepo,
		api:          api,
		inflight:     inflight,
	}
}

// LoginURL asks the remote API where the OAuth flow starts.
func (s *SessionService) LoginURL(ctx context.Context) (string, error) {
	u, err := s.api.GoogleAuthURL(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get login url: %w", err)
	}
	return u, nil
}

// Login stores the bearer token from the OAuth callback. The token is not
// validated here; the first authenticated fetch does that.
func (s *SessionService) Login(ctx context.Context, token string) (*model.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, common.Errorf("missing token: %w", common.ErrBadRequest)
	}

	session := &model.Session{
		ID:        uuid.NewString(),
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}
	if identity, err := security.IdentityFromBearer(token); err == nil {
		session.Email = identity.Email
		session.Name = identity.Name
	} else {
		log.Printf("WARN: Bearer token claims unreadable, email will come from /api/auth/me: %v", err)
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	log.Printf("INFO: Session %s created for %q", session.ID, session.Email)
	return session, nil
}

func (s *SessionService) Current(ctx context.Context, sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, common.ErrNoSession
	}
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNoSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// RememberEmail backfills the session email from the loaded profile when the
// bearer token carried none.
func (s *SessionService) RememberEmail(ctx context.Context, session *model.Session, email string) {
	if email == "" || session.Email == email {
		return
	}
	session.Email = email
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		log.Printf("WARN: Failed to store email for session %s: %v", session.ID, err)
	}
}

// Logout drops the session and everything keyed by it.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	s.inflight.CancelSession(sessionID)
	if err := s.reminderRepo.DeleteAll(ctx, sessionID); err != nil {
		log.Printf("WARN: Failed to clear reminders for session %s: %v", sessionID, err)
	}
	if err := s.filterRepo.DeleteAll(ctx, sessionID); err != nil {
		log.Printf("WARN: Failed to clear filters for session %s: %v", sessionID, err)
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	log.Printf("INFO: Session %s logged out", sessionID)
	return nil
}

// Flash returns the live transient message for the session, if any.
func (s *SessionService) Flash(ctx context.Context, sessionID string) *model.Flash {
	f, err := s.flashRepo.Find(ctx, sessionID)
	if err != nil {
		log.Printf("WARN: Failed to read flash for session %s: %v", sessionID, err)
		return nil
	}
	return f
}
