package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"codejarvis/internal/domain/model"
	"codejarvis/internal/domain/repository"

	"github.com/gosimple/slug"
)

const (
	historyOpenLimit   = 50
	historyOpenDays    = 90
	historyFilterLimit = 200
	topProblemsLimit   = 100
	TopProblemsStep    = 6

	msgNoLinkedAccounts = "Connect your coding accounts in Settings to see your problem history"
	msgNoRecentProblems = "No recent problems found. Try solving some problems and refresh!"
)

type ProblemService struct {
	api        RemoteAPI
	filterRepo repository.FilterRepository
	inflight   *Canceler
	flasher
}

func NewProblemService(api RemoteAPI, filterRepo repository.FilterRepository, flashRepo repository.FlashRepository, inflight *Canceler) *ProblemService {
	return &ProblemService{
		api:        api,
		filterRepo: filterRepo,
		inflight:   inflight,
		flasher:    flasher{flashes: flashRepo},
	}
}

// HistoryView is the problem-history overlay. Err is set when the fetch
// failed; the overlay is shown regardless.
type HistoryView struct {
	Filter   model.ProblemFilter
	Problems []model.ProblemRecord
	Total    int
	Err      error
}

func (v HistoryView) HasActiveFilters() bool { return v.Filter.HasActiveFilters() }

// OpenHistory resets the panel filters and loads the most recent problems.
func (s *ProblemService) OpenHistory(ctx context.Context, session *model.Session, accounts model.Accounts) HistoryView {
	view := HistoryView{Filter: model.DefaultProblemFilter()}
	if err := s.filterRepo.SaveProblemFilter(ctx, session.ID, view.Filter); err != nil {
		log.Printf("WARN: Failed to reset problem filter for session %s: %v", session.ID, err)
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(historyOpenLimit))
	q.Set("days", strconv.Itoa(historyOpenDays))
	page, err := s.fetch(ctx, session, q)
	if err != nil {
		view.Err = err
		s.flash(ctx, session.ID, fmt.Sprintf("Failed to load problem history: %v", err), model.FlashError, model.FlashLongDelay)
		return view
	}

	view.Problems, view.Total = page.Problems, page.Total
	switch {
	case len(page.Problems) > 0:
		s.flash(ctx, session.ID, fmt.Sprintf("Loaded %d recent problems", len(page.Problems)), model.FlashSuccess, model.FlashDefaultDelay)
	case accounts.Empty():
		s.flash(ctx, session.ID, msgNoLinkedAccounts, model.FlashInfo, model.FlashLongDelay)
	default:
		s.flash(ctx, session.ID, msgNoRecentProblems, model.FlashInfo, model.FlashLongDelay)
	}
	return view
}

// UpdateFilter changes one field and refetches with every field set.
func (s *ProblemService) UpdateFilter(ctx context.Context, session *model.Session, field, value string) (HistoryView, error) {
	current, err := s.filterRepo.FindProblemFilter(ctx, session.ID)
	if err != nil {
		return HistoryView{}, err
	}
	next, err := current.With(field, value)
	if err != nil {
		return HistoryView{Filter: current}, err
	}
	return s.applyFilter(ctx, session, next), nil
}

// ResetFilter restores the defaults and issues exactly one fetch.
func (s *ProblemService) ResetFilter(ctx context.Context, session *model.Session) HistoryView {
	return s.applyFilter(ctx, session, model.DefaultProblemFilter())
}

func (s *ProblemService) applyFilter(ctx context.Context, session *model.Session, f model.ProblemFilter) HistoryView {
	view := HistoryView{Filter: f}
	if err := s.filterRepo.SaveProblemFilter(ctx, session.ID, f); err != nil {
		log.Printf("WARN: Failed to save problem filter for session %s: %v", session.ID, err)
	}

	ctx, done := s.inflight.Start(ctx, session.ID, PurposeProblems)
	defer done()

	page, err := s.fetch(ctx, session, f.Query(historyFilterLimit))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("INFO: Problem history fetch for session %s superseded", session.ID)
		} else {
			log.Printf("ERROR: Failed to fetch filtered problems: %v", err)
		}
		view.Err = err
		return view
	}
	view.Problems, view.Total = page.Problems, page.Total
	return view
}

func (s *ProblemService) fetch(ctx context.Context, session *model.Session, q url.Values) (*model.ProblemPage, error) {
	page, err := s.api.Problems(ctx, session.Token, q)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// TopProblemsView is the top-problems browser with its "show more" window.
type TopProblemsView struct {
	Filter          model.TopProblemFilter
	Problems        []model.TopProblem
	AvailableTopics []string
	Shown           int
	Err             error
}

func (v TopProblemsView) Visible() []model.TopProblem {
	if v.Shown >= len(v.Problems) {
		return v.Problems
	}
	return v.Problems[:v.Shown]
}

func (v TopProblemsView) HasMore() bool  { return v.Shown < len(v.Problems) }
func (v TopProblemsView) NextShown() int { return v.Shown + TopProblemsStep }

// TopProblems loads the browser. A nil filter reuses the session's stored one.
func (s *ProblemService) TopProblems(ctx context.Context, sessionID string, filter *model.TopProblemFilter, shown int) TopProblemsView {
	if shown < TopProblemsStep {
		shown = TopProblemsStep
	}
	view := TopProblemsView{Shown: shown}

	if filter != nil {
		view.Filter = filter.Normalized()
		if err := s.filterRepo.SaveTopProblemFilter(ctx, sessionID, view.Filter); err != nil {
			log.Printf("WARN: Failed to save top problem filter for session %s: %v", sessionID, err)
		}
	} else {
		f, err := s.filterRepo.FindTopProblemFilter(ctx, sessionID)
		if err != nil {
			log.Printf("WARN: Failed to load top problem filter for session %s: %v", sessionID, err)
		}
		view.Filter = f
	}

	page, err := s.api.TopProblems(ctx, view.Filter.Query(topProblemsLimit))
	if err != nil {
		log.Printf("ERROR: Failed to fetch top problems: %v", err)
		view.Err = fmt.Errorf("failed to fetch top problems: %w", err)
		return view
	}
	view.Problems = page.Problems
	view.AvailableTopics = page.AvailableTopics
	return view
}

func (s *ProblemService) Patterns(ctx context.Context) ([]model.DSAPattern, error) {
	patterns, err := s.api.DSAPatterns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dsa patterns: %w", err)
	}
	return patterns, nil
}

// FindPattern matches ids loosely ("Two Pointers" and "two-pointers").
func FindPattern(patterns []model.DSAPattern, id string) (model.DSAPattern, bool) {
	want := slug.Make(id)
	for _, p := range patterns {
		if slug.Make(p.ID) == want {
			return p, true
		}
	}
	return model.DSAPattern{}, false
}
