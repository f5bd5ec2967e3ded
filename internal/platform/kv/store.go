package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"codejarvis/internal/common"
)

// Store is the durable key-value storage behind sessions, preferences,
// reminder sets and execution jobs. A zero ttl means no expiry.
// Get returns common.ErrNotFound for missing or expired keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany reads keys in one round trip. Missing or expired keys are
	// absent from the result.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

func GetJSON(ctx context.Context, s Store, key string, dst interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func SetJSON(ctx context.Context, s Store, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Set(ctx, key, data, ttl)
}

func notFound(key string) error {
	return fmt.Errorf("key %s: %w", key, common.ErrNotFound)
}
