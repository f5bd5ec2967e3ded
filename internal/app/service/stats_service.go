package service

import (
	"context"
	"fmt"
	"time"

	"codejarvis/internal/domain/calendar"
	"codejarvis/internal/domain/model"
)

type StatsService struct {
	api      RemoteAPI
	inflight *Canceler
}

func NewStatsService(api RemoteAPI, inflight *Canceler) *StatsService {
	return &StatsService{api: api, inflight: inflight}
}

func (s *StatsService) Snapshot(ctx context.Context, session *model.Session) (*model.StatsSnapshot, error) {
	stats, err := s.api.Stats(ctx, session.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return stats, nil
}

// Activity builds the 13-week heatmap, for one platform when platform is
// set. A newer call for the same session cancels an older one still waiting.
func (s *StatsService) Activity(ctx context.Context, session *model.Session, platform string, now time.Time) (calendar.ActivityGrid, error) {
	if platform != "" {
		p, ok := model.ParsePlatform(platform)
		if !ok {
			return calendar.ActivityGrid{}, fmt.Errorf("unknown platform %q: %w", platform, errUnknownPlatform)
		}
		platform = string(p)
	}

	ctx, done := s.inflight.Start(ctx, session.ID, PurposeActivity)
	defer done()

	days, err := s.api.DailyActivity(ctx, session.Token, platform)
	if err != nil {
		return calendar.ActivityGrid{}, fmt.Errorf("failed to load daily activity: %w", err)
	}
	return calendar.BuildActivityGrid(now, days), nil
}

// PlatformDetails backs the platform overlay. The remote API answers with
// connected=false and a message for unlinked platforms.
func (s *StatsService) PlatformDetails(ctx context.Context, session *model.Session, platform model.Platform) (*model.PlatformDetails, error) {
	details, err := s.api.PlatformDetails(ctx, session.Token, platform)
	if err != nil {
		return nil, fmt.Errorf("failed to load platform details: %w", err)
	}
	return details, nil
}
