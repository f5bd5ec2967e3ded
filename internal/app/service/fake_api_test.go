package service

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/domain/repository"
	"codejarvis/internal/platform/kv"
)

// fakeAPI records calls and answers from its fields.
type fakeAPI struct {
	mu sync.Mutex

	contests    []model.Contest
	contestsErr error
	stats       *model.StatsSnapshot
	statsErr    error
	days        []model.DailyActivity
	problems    *model.ProblemPage
	problemsErr error
	top         *model.TopProblemPage
	patterns    []model.DSAPattern
	user        *model.User
	userErr     error
	accounts    model.Accounts
	saveErr     error
	reminders   []model.Reminder
	events      []model.CalendarEvent

	createFn func(model.CreateReminderRequest) (model.ReminderResult, error)
	deleteFn func(model.DeleteReminderRequest) (model.ReminderResult, error)

	problemQueries []url.Values
	topQueries     []url.Values
	dailyPlatforms []string
	deletes        []model.DeleteReminderRequest
	reminderCalls  int

	// reminderErrs fail successive Reminders calls, one error each.
	reminderErrs []error
}

func (f *fakeAPI) Contests(ctx context.Context) ([]model.Contest, error) {
	return f.contests, f.contestsErr
}

func (f *fakeAPI) Stats(ctx context.Context, token string) (*model.StatsSnapshot, error) {
	return f.stats, f.statsErr
}

func (f *fakeAPI) DailyActivity(ctx context.Context, token, platform string) ([]model.DailyActivity, error) {
	f.mu.Lock()
	f.dailyPlatforms = append(f.dailyPlatforms, platform)
	f.mu.Unlock()
	return f.days, nil
}

func (f *fakeAPI) Problems(ctx context.Context, token string, query url.Values) (*model.ProblemPage, error) {
	f.mu.Lock()
	f.problemQueries = append(f.problemQueries, query)
	f.mu.Unlock()
	if f.problemsErr != nil {
		return nil, f.problemsErr
	}
	if f.problems == nil {
		return &model.ProblemPage{}, nil
	}
	return f.problems, nil
}

func (f *fakeAPI) PlatformDetails(ctx context.Context, token string, platform model.Platform) (*model.PlatformDetails, error) {
	return &model.PlatformDetails{Platform: string(platform), Connected: true}, nil
}

func (f *fakeAPI) TopProblems(ctx context.Context, query url.Values) (*model.TopProblemPage, error) {
	f.mu.Lock()
	f.topQueries = append(f.topQueries, query)
	f.mu.Unlock()
	if f.top == nil {
		return &model.TopProblemPage{}, nil
	}
	return f.top, nil
}

func (f *fakeAPI) DSAPatterns(ctx context.Context) ([]model.DSAPattern, error) {
	return f.patterns, nil
}

func (f *fakeAPI) CreateReminder(ctx context.Context, in model.CreateReminderRequest) (model.ReminderResult, error) {
	if f.createFn == nil {
		return model.ReminderResult{Success: true, ReminderID: "r-new"}, nil
	}
	return f.createFn(in)
}

func (f *fakeAPI) DeleteReminder(ctx context.Context, in model.DeleteReminderRequest) (model.ReminderResult, error) {
	f.mu.Lock()
	f.deletes = append(f.deletes, in)
	f.mu.Unlock()
	if f.deleteFn == nil {
		return model.ReminderResult{Success: true}, nil
	}
	return f.deleteFn(in)
}

func (f *fakeAPI) Reminders(ctx context.Context, email string) ([]model.Reminder, error) {
	f.mu.Lock()
	f.reminderCalls++
	var err error
	if len(f.reminderErrs) > 0 {
		err, f.reminderErrs = f.reminderErrs[0], f.reminderErrs[1:]
	}
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.reminders, nil
}

func (f *fakeAPI) CalendarEvents(ctx context.Context) ([]model.CalendarEvent, error) {
	return f.events, nil
}

func (f *fakeAPI) Accounts(ctx context.Context, token string) (model.Accounts, error) {
	return f.accounts, nil
}

func (f *fakeAPI) SaveAccounts(ctx context.Context, token string, accounts model.Accounts) error {
	return f.saveErr
}

func (f *fakeAPI) Me(ctx context.Context, token string) (*model.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	if f.user == nil {
		return nil, common.ErrUnauthorized
	}
	return f.user, nil
}

func (f *fakeAPI) GoogleAuthURL(ctx context.Context) (string, error) {
	return "https://accounts.example.com/o/oauth2", nil
}

type testRepos struct {
	store     kv.Store
	sessions  repository.SessionRepository
	reminders repository.ReminderRepository
	filters   repository.FilterRepository
	flashes   repository.FlashRepository
	prefs     repository.PreferencesRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	store, err := kv.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return testRepos{
		store:     store,
		sessions:  repository.NewKVSessionRepository(store),
		reminders: repository.NewKVReminderRepository(store),
		filters:   repository.NewKVFilterRepository(store),
		flashes:   repository.NewKVFlashRepository(store),
		prefs:     repository.NewKVPreferencesRepository(store),
	}
}

func (r testRepos) flash(t *testing.T, sessionID string) string {
	t.Helper()
	f, err := r.flashes.Find(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("reading flash: %v", err)
	}
	if f == nil {
		return ""
	}
	return f.Message
}

var testSession = &model.Session{ID: "sess-1", Token: "tok", Email: "coder@example.com"}
