package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type ProblemRecord struct {
	Platform   string    `json:"platform"`
	Title      string    `json:"title"`
	Difficulty string    `json:"difficulty"`
	Verdict    string    `json:"verdict"`
	Tags       []string  `json:"tags"`
	Date       Timestamp `json:"date"`
	Language   string    `json:"language"`
	Rating     int       `json:"rating"`
	URL        string    `json:"url"`
}

func (p ProblemRecord) Color() string { return PlatformColor(p.Platform) }

// Accepted reports the judge verdicts that mean a solve.
func (p ProblemRecord) Accepted() bool {
	switch strings.ToUpper(p.Verdict) {
	case "OK", "AC", "ACCEPTED":
		return true
	}
	return false
}

type ProblemPage struct {
	Problems []ProblemRecord `json:"problems"`
	Total    int             `json:"total"`
	Filters  map[string]any  `json:"filters"`
}

const (
	ProblemFieldPlatform   = "platform"
	ProblemFieldDifficulty = "difficulty"
	ProblemFieldVerdict    = "verdict"
	ProblemFieldTags       = "tags"
	ProblemFieldSort       = "sort"
	ProblemFieldOrder      = "order"
	ProblemFieldDays       = "days"
)

// ProblemFilter is the problem-history filter panel record. Filtering is done
// by the remote API; the dashboard only serialises it.
type ProblemFilter struct {
	Platform   string `json:"platform"`
	Difficulty string `json:"difficulty"`
	Verdict    string `json:"verdict"`
	Tags       string `json:"tags"`
	Sort       string `json:"sort"`
	Order      string `json:"order"`
	Days       int    `json:"days"`
}

func DefaultProblemFilter() ProblemFilter {
	return ProblemFilter{
		Platform:   FilterAll,
		Difficulty: FilterAll,
		Verdict:    FilterAll,
		Tags:       "",
		Sort:       "date",
		Order:      "desc",
		Days:       90,
	}
}

// HasActiveFilters drives the filter badge only.
func (f ProblemFilter) HasActiveFilters() bool {
	return f != DefaultProblemFilter()
}

// With returns a copy with one field changed.
func (f ProblemFilter) With(field, value string) (ProblemFilter, error) {
	switch field {
	case ProblemFieldPlatform:
		f.Platform = value
	case ProblemFieldDifficulty:
		f.Difficulty = value
	case ProblemFieldVerdict:
		f.Verdict = value
	case ProblemFieldTags:
		f.Tags = value
	case ProblemFieldSort:
		f.Sort = value
	case ProblemFieldOrder:
		if value != "asc" && value != "desc" {
			return f, fmt.Errorf("order must be asc or desc: %w", errInvalidFilter)
		}
		f.Order = value
	case ProblemFieldDays:
		days, err := strconv.Atoi(value)
		if err != nil || days <= 0 {
			return f, fmt.Errorf("days must be a positive integer: %w", errInvalidFilter)
		}
		f.Days = days
	default:
		return f, fmt.Errorf("unknown filter field %q: %w", field, errInvalidFilter)
	}
	return f, nil
}

// Query serialises every field, defaults included.
func (f ProblemFilter) Query(limit int) url.Values {
	q := url.Values{}
	q.Set("platform", f.Platform)
	q.Set("difficulty", f.Difficulty)
	q.Set("verdict", f.Verdict)
	q.Set("tags", f.Tags)
	q.Set("sort", f.Sort)
	q.Set("order", f.Order)
	q.Set("days", strconv.Itoa(f.Days))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

type TopProblem struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Platform   string   `json:"platform"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
	URL        string   `json:"url"`
	Rating     int      `json:"rating"`
}

func (p TopProblem) Color() string { return PlatformColor(p.Platform) }

type TopProblemPage struct {
	Problems        []TopProblem `json:"problems"`
	AvailableTopics []string     `json:"availableTopics"`
	Total           int          `json:"total"`
}

type TopProblemFilter struct {
	Platform   string `json:"platform"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
	Topic      string `json:"topic"`
}

func DefaultTopProblemFilter() TopProblemFilter {
	return TopProblemFilter{Platform: FilterAll, Difficulty: FilterAll, Category: FilterAll, Topic: FilterAll}
}

func (f TopProblemFilter) HasActiveFilters() bool {
	return f != DefaultTopProblemFilter()
}

// Normalized replaces empty fields with FilterAll.
func (f TopProblemFilter) Normalized() TopProblemFilter {
	for _, field := range []*string{&f.Platform, &f.Difficulty, &f.Category, &f.Topic} {
		if *field == "" {
			*field = FilterAll
		}
	}
	return f
}

func (f TopProblemFilter) Query(limit int) url.Values {
	f = f.Normalized()
	q := url.Values{}
	q.Set("platform", f.Platform)
	q.Set("difficulty", f.Difficulty)
	q.Set("category", f.Category)
	q.Set("topic", f.Topic)
	q.Set("limit", strconv.Itoa(limit))
	return q
}

type PatternProblem struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Difficulty string `json:"difficulty"`
}

type DSAPattern struct {
	ID         string           `json:"id"`
	Day        int              `json:"day"`
	Title      string           `json:"title"`
	Icon       string           `json:"icon"`
	Color      string           `json:"color"`
	Difficulty string           `json:"difficulty"`
	Problems   []PatternProblem `json:"problems"`
}
