package kv

import (
	"context"
	"errors"
	"testing"
	"time"

	"codejarvis/internal/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(rdb, "test:")
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func stores(t *testing.T) map[string]Store {
	rs, _ := newRedisStore(t)
	return map[string]Store{
		"redis":  rs,
		"sqlite": newSQLiteStore(t),
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "missing")
			if !errors.Is(err, common.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, "k", []byte("v1"), 0); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, "k", []byte("v2"), 0); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, err := s.Get(ctx, "k")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != "v2" {
				t.Errorf("expected v2, got %q", got)
			}
			if err := s.Delete(ctx, "k"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, "k"); !errors.Is(err, common.ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestStore_SetNX(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := s.SetNX(ctx, "marker", []byte("1"), 0)
			if err != nil || !ok {
				t.Fatalf("first SetNX = %v, %v; want true, nil", ok, err)
			}
			ok, err = s.SetNX(ctx, "marker", []byte("2"), 0)
			if err != nil || ok {
				t.Fatalf("second SetNX = %v, %v; want false, nil", ok, err)
			}
			got, _ := s.Get(ctx, "marker")
			if string(got) != "1" {
				t.Errorf("marker overwritten: %q", got)
			}
		})
	}
}

func TestStore_GetMany(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s.Set(ctx, "a", []byte("1"), 0)
			s.Set(ctx, "c", []byte("3"), time.Minute)

			got, err := s.GetMany(ctx, []string{"a", "b", "c"})
			if err != nil {
				t.Fatalf("GetMany: %v", err)
			}
			if len(got) != 2 || string(got["a"]) != "1" || string(got["c"]) != "3" {
				t.Errorf("GetMany = %q", got)
			}
			if _, ok := got["b"]; ok {
				t.Errorf("missing key reported present")
			}

			empty, err := s.GetMany(ctx, nil)
			if err != nil || len(empty) != 0 {
				t.Errorf("GetMany(nil) = %v, %v", empty, err)
			}
		})
	}
}

func TestStore_JSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	type prefs struct {
		Newsletter bool `json:"newsletter"`
	}
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := SetJSON(ctx, s, "prefs", prefs{Newsletter: true}, 0); err != nil {
				t.Fatalf("SetJSON: %v", err)
			}
			var got prefs
			if err := GetJSON(ctx, s, "prefs", &got); err != nil {
				t.Fatalf("GetJSON: %v", err)
			}
			if !got.Newsletter {
				t.Errorf("expected newsletter=true")
			}
		})
	}
}

func TestRedisStore_Expiry(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()
	if err := s.Set(ctx, "flash", []byte("hi"), 2*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(3 * time.Second)
	if _, err := s.Get(ctx, "flash"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected expired key, got %v", err)
	}
}

func TestSQLiteStore_Expiry(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "flash", []byte("hi"), 2*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := s.Get(ctx, "flash"); err != nil {
		t.Fatalf("expected live key, got %v", err)
	}

	now = now.Add(3 * time.Second)
	if got, _ := s.GetMany(ctx, []string{"flash"}); len(got) != 0 {
		t.Errorf("GetMany returned expired key: %q", got)
	}
	if _, err := s.Get(ctx, "flash"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected expired key, got %v", err)
	}

	ok, err := s.SetNX(ctx, "flash", []byte("again"), time.Second)
	if err != nil || !ok {
		t.Errorf("SetNX over expired key = %v, %v; want true, nil", ok, err)
	}
}
