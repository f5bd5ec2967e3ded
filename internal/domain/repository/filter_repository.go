package repository

import (
	"context"
	"errors"
	"fmt"

	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/platform/kv"
)

// FilterRepository persists the problem-history and top-problems filter
// records per session.
type FilterRepository interface {
	FindProblemFilter(ctx context.Context, sessionID string) (model.ProblemFilter, error)
	SaveProblemFilter(ctx context.Context, sessionID string, f model.ProblemFilter) error
	FindTopProblemFilter(ctx context.Context, sessionID string) (model.TopProblemFilter, error)
	SaveTopProblemFilter(ctx context.Context, sessionID string, f model.TopProblemFilter) error
	DeleteAll(ctx context.Context, sessionID string) error
}

type kvFilterRepository struct {
	store kv.Store
}

func NewKVFilterRepository(store kv.Store) FilterRepository {
	return &kvFilterRepository{store: store}
}

func problemFilterKey(sessionID string) string    { return "filters:problems:" + sessionID }
func topProblemFilterKey(sessionID string) string { return "filters:top:" + sessionID }

func (r *kvFilterRepository) FindProblemFilter(ctx context.Context, sessionID string) (model.ProblemFilter, error) {
	f := model.DefaultProblemFilter()
	if err := kv.GetJSON(ctx, r.store, problemFilterKey(sessionID), &f); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.DefaultProblemFilter(), nil
		}
		return model.DefaultProblemFilter(), fmt.Errorf("kvFilterRepository.FindProblemFilter: %w", err)
	}
	return f, nil
}

func (r *kvFilterRepository) SaveProblemFilter(ctx context.Context, sessionID string, f model.ProblemFilter) error {
	if err := kv.SetJSON(ctx, r.store, problemFilterKey(sessionID), f, 0); err != nil {
		return fmt.Errorf("kvFilterRepository.SaveProblemFilter: %w", err)
	}
	return nil
}

func (r *kvFilterRepository) FindTopProblemFilter(ctx context.Context, sessionID string) (model.TopProblemFilter, error) {
	f := model.DefaultTopProblemFilter()
	if err := kv.GetJSON(ctx, r.store, topProblemFilterKey(sessionID), &f); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.DefaultTopProblemFilter(), nil
		}
		return model.DefaultTopProblemFilter(), fmt.Errorf("kvFilterRepository.FindTopProblemFilter: %w", err)
	}
	return f.Normalized(), nil
}

func (r *kvFilterRepository) SaveTopProblemFilter(ctx context.Context, sessionID string, f model.TopProblemFilter) error {
	if err := kv.SetJSON(ctx, r.store, topProblemFilterKey(sessionID), f.Normalized(), 0); err != nil {
		return fmt.Errorf("kvFilterRepository.SaveTopProblemFilter: %w", err)
	}
	return nil
}

func (r *kvFilterRepository) DeleteAll(ctx context.Context, sessionID string) error {
	for _, key := range []string{problemFilterKey(sessionID), topProblemFilterKey(sessionID)} {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("kvFilterRepository.DeleteAll: %w", err)
		}
	}
	return nil
}
