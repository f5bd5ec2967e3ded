// Package calendar derives the month grid, the 13-week activity heatmap and
// the 7-day contest strip from already-fetched data. All functions are pure;
// "now" is always passed in and its location decides what a calendar day is.
package calendar

import (
	"fmt"
	"time"

	"codejarvis/internal/domain/model"
)

const (
	ActivityWeeks = 13
	ActivityDays  = ActivityWeeks * 7
	StripDays     = 7

	isoDate = "2006-01-02"
)

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

type DayCell struct {
	Date   time.Time
	Day    int
	Today  bool
	Events []model.CalendarEvent
}

type MonthGrid struct {
	Year   int
	Month  time.Month
	Days   int
	Offset int // leading blanks, Sunday = 0
	// Cells holds Offset nil entries followed by one cell per day.
	Cells []*DayCell
}

func (g MonthGrid) Title() string {
	return fmt.Sprintf("%s %d", g.Month, g.Year)
}

// Weeks splits Cells into rows of seven, padding the last row with nils.
func (g MonthGrid) Weeks() [][]*DayCell {
	var weeks [][]*DayCell
	for i := 0; i < len(g.Cells); i += 7 {
		row := make([]*DayCell, 7)
		copy(row, g.Cells[i:min(i+7, len(g.Cells))])
		weeks = append(weeks, row)
	}
	return weeks
}

// BuildMonthGrid lays out the month containing now. Events are bucketed by
// their local calendar date; time of day is kept on the event for display.
func BuildMonthGrid(now time.Time, events []model.CalendarEvent) MonthGrid {
	loc := now.Location()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())

	g := MonthGrid{
		Year:   now.Year(),
		Month:  now.Month(),
		Days:   days,
		Offset: offset,
		Cells:  make([]*DayCell, offset, offset+days),
	}
	for d := 1; d <= days; d++ {
		date := time.Date(g.Year, g.Month, d, 0, 0, 0, 0, loc)
		g.Cells = append(g.Cells, &DayCell{Date: date, Day: d, Today: sameDay(date, now)})
	}
	for _, e := range events {
		start := e.Start.In(loc)
		if start.Year() != g.Year || start.Month() != g.Month {
			continue
		}
		cell := g.Cells[offset+start.Day()-1]
		cell.Events = append(cell.Events, e)
	}
	return g
}

// IntensityBand maps a daily count to one of five heatmap bands.
func IntensityBand(count int) int {
	switch {
	case count <= 0:
		return 0
	case count >= 4:
		return 4
	default:
		return count
	}
}

type ActivityCell struct {
	Date  string
	Count int
	Band  int
}

// ActivityGrid is 13 columns (weeks) of 7 cells, oldest first.
type ActivityGrid struct {
	Weeks [ActivityWeeks][7]ActivityCell
	Total int
	Empty bool
}

// BuildActivityGrid buckets samples into the 91 days ending today. Dates
// absent from samples count as zero.
func BuildActivityGrid(today time.Time, samples []model.DailyActivity) ActivityGrid {
	counts := make(map[string]int, len(samples))
	for _, s := range samples {
		if s.Date == "" {
			continue
		}
		counts[s.Date] = s.Count
	}

	start := midnight(today).AddDate(0, 0, -(ActivityDays - 1))
	g := ActivityGrid{Empty: len(samples) == 0}
	for i := 0; i < ActivityDays; i++ {
		key := start.AddDate(0, 0, i).Format(isoDate)
		count := counts[key]
		g.Weeks[i/7][i%7] = ActivityCell{Date: key, Count: count, Band: IntensityBand(count)}
		if count > 0 {
			g.Total += count
		}
	}
	return g
}

type StripDay struct {
	Date  time.Time
	Count int
}

// BuildWeekStrip counts, for each of the next seven local days, the contests
// passing the platform and search filters that start on that day.
func BuildWeekStrip(now time.Time, contests []model.Contest, filter model.ContestFilter) []StripDay {
	base := midnight(now)
	strip := make([]StripDay, StripDays)
	for i := range strip {
		strip[i].Date = base.AddDate(0, 0, i)
	}
	end := base.AddDate(0, 0, StripDays)
	for _, c := range contests {
		if !filter.MatchesListing(c) {
			continue
		}
		start := c.Start.In(now.Location())
		if start.Before(base) || !start.Before(end) {
			continue
		}
		day := midnight(start)
		for i := range strip {
			if strip[i].Date.Equal(day) {
				strip[i].Count++
				break
			}
		}
	}
	return strip
}

// TimeUntil renders the countdown shown next to a calendar event.
func TimeUntil(now, start time.Time) string {
	diff := start.Sub(now)
	if diff <= 0 {
		return "Started"
	}
	days := int(diff / (24 * time.Hour))
	hours := int(diff%(24*time.Hour)) / int(time.Hour)
	minutes := int(diff%time.Hour) / int(time.Minute)
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// EventsForUser keeps the calendar events belonging to email.
func EventsForUser(events []model.CalendarEvent, email string) []model.CalendarEvent {
	out := make([]model.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.UserEmail == email {
			out = append(out, e)
		}
	}
	return out
}
