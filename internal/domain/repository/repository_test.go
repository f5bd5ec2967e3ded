package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/platform/kv"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisStore(t *testing.T) (kv.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := kv.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "codejarvis:")
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func setupSQLiteStore(t *testing.T) kv.Store {
	t.Helper()
	store, err := kv.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	store, _ := setupRedisStore(t)
	repo := NewKVSessionRepository(store)
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "nope"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	s := &model.Session{ID: "s1", Token: "tok", Email: "a@b.c", CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.FindByID(ctx, "s1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Token != "tok" || got.Email != "a@b.c" {
		t.Errorf("unexpected session %+v", got)
	}

	got.Email = "new@b.c"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if again, _ := repo.FindByID(ctx, "s1"); again.Email != "new@b.c" {
		t.Errorf("Update not persisted: %+v", again)
	}
	if err := repo.Update(ctx, &model.Session{ID: "ghost"}); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Update of a missing session should fail with ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, "s1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPreferencesRepository_Defaults(t *testing.T) {
	repo := NewKVPreferencesRepository(setupSQLiteStore(t))
	ctx := context.Background()

	prefs, err := repo.Find(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !prefs.EmailReminders || prefs.Newsletter {
		t.Errorf("unexpected defaults %+v", prefs)
	}

	prefs.Avatar = "data:image/png;base64,AAAA"
	if err := repo.Save(ctx, "a@b.c", prefs); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := repo.Find(ctx, "a@b.c")
	if got.Avatar != prefs.Avatar {
		t.Errorf("avatar not persisted: %+v", got)
	}

	if err := repo.Save(ctx, "", prefs); !errors.Is(err, common.ErrValidation) {
		t.Errorf("expected ErrValidation for empty email, got %v", err)
	}
}

func TestFlashRepository_ExpiresAfterDelay(t *testing.T) {
	store, mr := setupRedisStore(t)
	repo := NewKVFlashRepository(store)
	ctx := context.Background()

	flash := model.Flash{Message: "Accounts linked", Kind: model.FlashSuccess}
	if err := repo.Set(ctx, "s1", flash, model.FlashAccountsDelay); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := repo.Find(ctx, "s1")
	if err != nil || got == nil || got.Message != "Accounts linked" {
		t.Fatalf("Find = %+v, %v", got, err)
	}

	mr.FastForward(model.FlashAccountsDelay + time.Millisecond)
	got, err = repo.Find(ctx, "s1")
	if err != nil || got != nil {
		t.Errorf("expected expired flash, got %+v, %v", got, err)
	}
}

func TestReminderRepository_SetAndMarkers(t *testing.T) {
	redisStore, _ := setupRedisStore(t)
	for name, store := range map[string]kv.Store{"redis": redisStore, "sqlite": setupSQLiteStore(t)} {
		t.Run(name, func(t *testing.T) {
			repo := NewKVReminderRepository(store)
			ctx := context.Background()

			set, err := repo.FindSet(ctx, "s1")
			if err != nil || len(set) != 0 {
				t.Fatalf("FindSet on empty = %v, %v", set, err)
			}
			set.Add("Codeforces:Round:u", "r-1")
			if err := repo.SaveSet(ctx, "s1", set); err != nil {
				t.Fatalf("SaveSet: %v", err)
			}
			got, _ := repo.FindSet(ctx, "s1")
			if got.ID("Codeforces:Round:u") != "r-1" {
				t.Errorf("unexpected set %+v", got)
			}

			first, _ := repo.MarkReconciled(ctx, "s1")
			second, _ := repo.MarkReconciled(ctx, "s1")
			if !first || second {
				t.Errorf("MarkReconciled = %v then %v, want true then false", first, second)
			}
			if err := repo.ClearReconciled(ctx, "s1"); err != nil {
				t.Fatalf("ClearReconciled: %v", err)
			}
			if retry, _ := repo.MarkReconciled(ctx, "s1"); !retry {
				t.Errorf("marker should be free after ClearReconciled")
			}

			ok, _ := repo.AcquirePending(ctx, "s1", "k")
			again, _ := repo.AcquirePending(ctx, "s1", "k")
			if !ok || again {
				t.Errorf("AcquirePending = %v then %v", ok, again)
			}
			pending, err := repo.PendingKeys(ctx, "s1", []string{"k", "other"})
			if err != nil {
				t.Fatalf("PendingKeys: %v", err)
			}
			if !pending["k"] || pending["other"] {
				t.Errorf("PendingKeys = %v, want only k", pending)
			}
			if err := repo.ReleasePending(ctx, "s1", "k"); err != nil {
				t.Fatalf("ReleasePending: %v", err)
			}
			if pending, _ := repo.PendingKeys(ctx, "s1", []string{"k"}); pending["k"] {
				t.Errorf("expected released")
			}

			if err := repo.DeleteAll(ctx, "s1"); err != nil {
				t.Fatalf("DeleteAll: %v", err)
			}
			if again, _ := repo.MarkReconciled(ctx, "s1"); !again {
				t.Errorf("marker should be cleared by DeleteAll")
			}
		})
	}
}

func TestFilterRepository(t *testing.T) {
	store, _ := setupRedisStore(t)
	repo := NewKVFilterRepository(store)
	ctx := context.Background()

	f, err := repo.FindProblemFilter(ctx, "s1")
	if err != nil || f != model.DefaultProblemFilter() {
		t.Fatalf("FindProblemFilter default = %+v, %v", f, err)
	}
	f.Verdict = "OK"
	if err := repo.SaveProblemFilter(ctx, "s1", f); err != nil {
		t.Fatalf("SaveProblemFilter: %v", err)
	}
	if got, _ := repo.FindProblemFilter(ctx, "s1"); got.Verdict != "OK" {
		t.Errorf("verdict not persisted: %+v", got)
	}

	if err := repo.SaveTopProblemFilter(ctx, "s1", model.TopProblemFilter{Topic: "graphs"}); err != nil {
		t.Fatalf("SaveTopProblemFilter: %v", err)
	}
	top, _ := repo.FindTopProblemFilter(ctx, "s1")
	if top.Topic != "graphs" || top.Platform != model.FilterAll {
		t.Errorf("unexpected top filter %+v", top)
	}
}

func TestExecutionJobRepository(t *testing.T) {
	store, mr := setupRedisStore(t)
	repo := NewKVExecutionJobRepository(store, time.Hour)
	ctx := context.Background()

	job := &model.ExecutionJob{ID: "j1", SessionID: "s1", Kind: model.JobKindRun, ProblemID: 1, Code: "x", Status: model.JobStatusIdle}
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.CreatedAt.IsZero() {
		t.Errorf("CreatedAt not set")
	}

	msg := "boom"
	if err := repo.UpdateJobStatus(ctx, "j1", model.JobStatusFailed, &msg); err != nil {
		t.Fatalf("UpdateJobStatus: %v", err)
	}
	got, err := repo.GetJobByID(ctx, "j1")
	if err != nil {
		t.Fatalf("GetJobByID: %v", err)
	}
	if got.Status != model.JobStatusFailed || got.LastError == nil || *got.LastError != "boom" {
		t.Errorf("unexpected job %+v", got)
	}
	if got.SessionID != "s1" || got.Code != "x" {
		t.Errorf("owner or code lost: %+v", got)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := repo.GetJobByID(ctx, "j1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected job to expire, got %v", err)
	}
}
