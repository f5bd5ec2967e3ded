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

// FlashRepository holds the one transient message per session. A message
// disappears once its display delay has passed.
type FlashRepository interface {
	Set(ctx context.Context, sessionID string, flash model.Flash, delay time.Duration) error
	Find(ctx context.Context, sessionID string) (*model.Flash, error)
}

type kvFlashRepository struct {
	store kv.Store
}

func NewKVFlashRepository(store kv.Store) FlashRepository {
	return &kvFlashRepository{store: store}
}

func flashKey(sessionID string) string { return "flash:" + sessionID }

func (r *kvFlashRepository) Set(ctx context.Context, sessionID string, flash model.Flash, delay time.Duration) error {
	if err := kv.SetJSON(ctx, r.store, flashKey(sessionID), flash, delay); err != nil {
		return fmt.Errorf("kvFlashRepository.Set: %w", err)
	}
	return nil
}

// Find returns nil, nil when there is no live message.
func (r *kvFlashRepository) Find(ctx context.Context, sessionID string) (*model.Flash, error) {
	flash := &model.Flash{}
	if err := kv.GetJSON(ctx, r.store, flashKey(sessionID), flash); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("kvFlashRepository.Find: %w", err)
	}
	return flash, nil
}
