package repository

import (
	"context"
	"errors"
	"fmt"

	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/platform/kv"
)

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	FindByID(ctx context.Context, id string) (*model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id string) error
}

type kvSessionRepository struct {
	store kv.Store
}

func NewKVSessionRepository(store kv.Store) SessionRepository {
	return &kvSessionRepository{store: store}
}

func sessionKey(id string) string { return "session:" + id }

// Create stores the session without expiry; sessions end on logout only.
func (r *kvSessionRepository) Create(ctx context.Context, session *model.Session) error {
	if err := kv.SetJSON(ctx, r.store, sessionKey(session.ID), session, 0); err != nil {
		return fmt.Errorf("kvSessionRepository.Create: %w", err)
	}
	return nil
}

func (r *kvSessionRepository) FindByID(ctx context.Context, id string) (*model.Session, error) {
	session := &model.Session{}
	if err := kv.GetJSON(ctx, r.store, sessionKey(id), session); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("kvSessionRepository.FindByID: %w", err)
	}
	return session, nil
}

func (r *kvSessionRepository) Update(ctx context.Context, session *model.Session) error {
	if _, err := r.FindByID(ctx, session.ID); err != nil {
		return fmt.Errorf("kvSessionRepository.Update: %w", err)
	}
	if err := kv.SetJSON(ctx, r.store, sessionKey(session.ID), session, 0); err != nil {
		return fmt.Errorf("kvSessionRepository.Update: %w", err)
	}
	return nil
}

func (r *kvSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("kvSessionRepository.Delete: %w", err)
	}
	return nil
}
