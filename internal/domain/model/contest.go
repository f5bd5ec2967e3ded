package model

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
)

const upcomingWindow = 7 * 24 * time.Hour

type Contest struct {
	Platform        string    `json:"platform"`
	Name            string    `json:"name"`
	Start           Timestamp `json:"start"`
	DurationMinutes int       `json:"durationMinutes"`
	URL             string    `json:"url"`
}

// Slug is a stable identifier for forms and anchors.
func (c Contest) Slug() string {
	return slug.Make(c.Platform + " " + c.Name)
}

// DisplayName is the "<Platform>: <Name>" form the reminder API stores.
func (c Contest) DisplayName() string {
	return c.Platform + ": " + c.Name
}

func (c Contest) ReminderKey() string {
	return ReminderKey(c.Platform, c.Name, c.URL)
}

func (c Contest) Color() string { return PlatformColor(c.Platform) }

func (c Contest) End() time.Time {
	return c.Start.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

type ContestFilter struct {
	Platform  string `json:"platform"`
	Search    string `json:"search"`
	Next7Only bool   `json:"next7Only"`
}

func DefaultContestFilter() ContestFilter {
	return ContestFilter{Platform: FilterAll}
}

// MatchesListing applies the platform and name filters only.
func (f ContestFilter) MatchesListing(c Contest) bool {
	if f.Platform != "" && f.Platform != FilterAll && !strings.EqualFold(c.Platform, f.Platform) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Matches applies all three filters relative to now.
func (f ContestFilter) Matches(c Contest, now time.Time) bool {
	if !f.MatchesListing(c) {
		return false
	}
	if f.Next7Only {
		start := c.Start.Time
		if start.Before(now) || start.After(now.Add(upcomingWindow)) {
			return false
		}
	}
	return true
}

// Apply returns the matching contests in server order, in a single pass.
func (f ContestFilter) Apply(contests []Contest, now time.Time) []Contest {
	out := make([]Contest, 0, len(contests))
	for _, c := range contests {
		if f.Matches(c, now) {
			out = append(out, c)
		}
	}
	return out
}
