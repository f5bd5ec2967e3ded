package service

import (
	"context"
	"fmt"
	"time"

	"codejarvis/internal/domain/calendar"
	"codejarvis/internal/domain/model"
)

type ContestService struct {
	api RemoteAPI
}

func NewContestService(api RemoteAPI) *ContestService {
	return &ContestService{api: api}
}

// ContestView is the contest list after filtering, plus the 7-day strip.
type ContestView struct {
	Filter   model.ContestFilter
	Total    int
	Contests []model.Contest
	Strip    []calendar.StripDay
}

func (s *ContestService) List(ctx context.Context) ([]model.Contest, error) {
	contests, err := s.api.Contests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contests: %w", err)
	}
	return contests, nil
}

// View applies the filter once over the unfiltered list, keeping server order.
func (s *ContestService) View(all []model.Contest, filter model.ContestFilter, now time.Time) ContestView {
	if filter.Platform == "" {
		filter.Platform = model.FilterAll
	}
	return ContestView{
		Filter:   filter,
		Total:    len(all),
		Contests: filter.Apply(all, now),
		Strip:    calendar.BuildWeekStrip(now, all, filter),
	}
}
