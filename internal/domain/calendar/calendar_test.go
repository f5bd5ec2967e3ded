package calendar

import (
	"testing"
	"time"

	"codejarvis/internal/domain/model"
)

func ts(t time.Time) model.Timestamp { return model.Timestamp{Time: t} }

func TestIntensityBand(t *testing.T) {
	tests := []struct {
		count, want int
	}{
		{-3, 0}, {0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}, {17, 4},
	}
	for _, tt := range tests {
		if got := IntensityBand(tt.count); got != tt.want {
			t.Errorf("IntensityBand(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestBuildMonthGrid_LeadingBlanks(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		offset int
		days   int
	}{
		// September 2024 starts on a Sunday.
		{"sunday start", time.Date(2024, 9, 15, 10, 0, 0, 0, time.UTC), 0, 30},
		// June 2024 starts on a Saturday.
		{"saturday start", time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), 6, 30},
		{"leap february", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 4, 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := BuildMonthGrid(tt.now, nil)
			if g.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", g.Offset, tt.offset)
			}
			if g.Days != tt.days {
				t.Errorf("Days = %d, want %d", g.Days, tt.days)
			}
			if len(g.Cells) != tt.offset+tt.days {
				t.Fatalf("len(Cells) = %d", len(g.Cells))
			}
			for i := 0; i < tt.offset; i++ {
				if g.Cells[i] != nil {
					t.Errorf("cell %d should be blank", i)
				}
			}
			if first := g.Cells[tt.offset]; first == nil || first.Day != 1 {
				t.Errorf("first day cell = %+v", first)
			}
			if len(g.Cells) > 42 {
				t.Errorf("grid exceeds 42 cells")
			}
		})
	}
}

func TestBuildMonthGrid_BucketsByLocalDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 9, 10, 12, 0, 0, 0, loc)
	events := []model.CalendarEvent{
		// 20:00 UTC on the 11th is the 12th in IST.
		{ID: "a", Start: ts(time.Date(2024, 9, 11, 20, 0, 0, 0, time.UTC))},
		{ID: "b", Start: ts(time.Date(2024, 9, 12, 9, 0, 0, 0, loc))},
		{ID: "c", Start: ts(time.Date(2024, 10, 1, 9, 0, 0, 0, loc))},
	}

	g := BuildMonthGrid(now, events)
	day12 := g.Cells[g.Offset+11]
	if len(day12.Events) != 2 {
		t.Fatalf("expected 2 events on the 12th, got %d", len(day12.Events))
	}
	if day11 := g.Cells[g.Offset+10]; len(day11.Events) != 0 {
		t.Errorf("expected no events on the 11th, got %d", len(day11.Events))
	}
	if !g.Cells[g.Offset+9].Today {
		t.Errorf("the 10th should be marked today")
	}
	if g.Title() != "September 2024" {
		t.Errorf("Title = %q", g.Title())
	}
}

func TestBuildActivityGrid(t *testing.T) {
	today := time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)
	samples := []model.DailyActivity{
		{Date: "2024-03-31", Count: 5},
		{Date: "2024-01-01", Count: 2},
		{Date: "2023-12-31", Count: 9}, // outside the window
	}

	g := BuildActivityGrid(today, samples)
	first := g.Weeks[0][0]
	if first.Date != "2024-01-01" {
		t.Errorf("window start = %s, want 2024-01-01", first.Date)
	}
	if first.Count != 2 || first.Band != 2 {
		t.Errorf("first cell = %+v", first)
	}
	last := g.Weeks[ActivityWeeks-1][6]
	if last.Date != "2024-03-31" || last.Band != 4 {
		t.Errorf("last cell = %+v", last)
	}
	if g.Weeks[5][3].Count != 0 {
		t.Errorf("missing date should default to zero")
	}
	if g.Total != 7 {
		t.Errorf("Total = %d, want 7", g.Total)
	}
	if g.Empty {
		t.Errorf("grid with samples should not be empty")
	}
}

func TestBuildWeekStrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	contests := []model.Contest{
		{Platform: "Codeforces", Name: "Round 1", Start: ts(now.Add(2 * time.Hour))},
		{Platform: "LeetCode", Name: "Weekly", Start: ts(now.AddDate(0, 0, 3))},
		{Platform: "Codeforces", Name: "Round 2", Start: ts(now.AddDate(0, 0, 3))},
		{Platform: "AtCoder", Name: "ABC", Start: ts(now.AddDate(0, 0, 8))},
	}

	strip := BuildWeekStrip(now, contests, model.ContestFilter{Platform: "codeforces"})
	if len(strip) != StripDays {
		t.Fatalf("len = %d", len(strip))
	}
	if strip[0].Count != 1 || strip[3].Count != 1 {
		t.Errorf("unexpected counts %+v", strip)
	}
	total := 0
	for _, d := range strip {
		total += d.Count
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
}

func TestTimeUntil(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		start time.Time
		want  string
	}{
		{now.Add(-time.Minute), "Started"},
		{now.Add(2*24*time.Hour + 5*time.Hour), "2d 5h"},
		{now.Add(3*time.Hour + 20*time.Minute), "3h 20m"},
		{now.Add(45 * time.Minute), "45m"},
	}
	for _, tt := range tests {
		if got := TimeUntil(now, tt.start); got != tt.want {
			t.Errorf("TimeUntil(%v) = %q, want %q", tt.start.Sub(now), got, tt.want)
		}
	}
}

func TestEventsForUser(t *testing.T) {
	events := []model.CalendarEvent{{ID: "1", UserEmail: "a@x"}, {ID: "2", UserEmail: "b@x"}}
	got := EventsForUser(events, "a@x")
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("unexpected %+v", got)
	}
}
