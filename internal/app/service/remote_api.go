package service

import (
	"context"
	"net/url"

	"codejarvis/internal/domain/model"
)

// RemoteAPI is the subset of the CodeJarvis API the dashboard consumes.
// *jarvis.Client satisfies it.
type RemoteAPI interface {
	Contests(ctx context.Context) ([]model.Contest, error)
	Stats(ctx context.Context, token string) (*model.StatsSnapshot, error)
	DailyActivity(ctx context.Context, token, platform string) ([]model.DailyActivity, error)
	Problems(ctx context.Context, token string, query url.Values) (*model.ProblemPage, error)
	PlatformDetails(ctx context.Context, token string, platform model.Platform) (*model.PlatformDetails, error)
	TopProblems(ctx context.Context, query url.Values) (*model.TopProblemPage, error)
	DSAPatterns(ctx context.Context) ([]model.DSAPattern, error)
	CreateReminder(ctx context.Context, in model.CreateReminderRequest) (model.ReminderResult, error)
	DeleteReminder(ctx context.Context, in model.DeleteReminderRequest) (model.ReminderResult, error)
	Reminders(ctx context.Context, email string) ([]model.Reminder, error)
	CalendarEvents(ctx context.Context) ([]model.CalendarEvent, error)
	Accounts(ctx context.Context, token string) (model.Accounts, error)
	SaveAccounts(ctx context.Context, token string, accounts model.Accounts) error
	Me(ctx context.Context, token string) (*model.User, error)
	GoogleAuthURL(ctx context.Context) (string, error)
}
