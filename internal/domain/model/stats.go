package model

type TopicLevel string

const (
	TopicWeak      TopicLevel = "weak"
	TopicImproving TopicLevel = "improving"
	TopicGood      TopicLevel = "good"
	TopicStrong    TopicLevel = "strong"
)

type MaxRating struct {
	Platform string `json:"platform"`
	Value    int    `json:"value"`
}

type Overview struct {
	TotalContests  int            `json:"totalContests"`
	MaxRating      MaxRating      `json:"maxRating"`
	ProblemsSolved map[string]int `json:"problemsSolved"`
}

type PlatformStats struct {
	Username      string     `json:"username"`
	TotalSolved   int        `json:"totalSolved"`
	Easy          int        `json:"easy"`
	Medium        int        `json:"medium"`
	Hard          int        `json:"hard"`
	Rank          FlexString `json:"rank"`
	Streak        int        `json:"streak"`
	ContestCount  int        `json:"contestCount"`
	Rating        int        `json:"rating"`
	MaxRating     int        `json:"maxRating"`
	Connected     bool       `json:"connected"`
	LastActive    string     `json:"lastActive"`
	PlatformColor string     `json:"platformColor"`
}

type Topic struct {
	Name  string     `json:"name"`
	Level TopicLevel `json:"level"`
}

type StatsSnapshot struct {
	Overview    Overview                 `json:"overview"`
	PerPlatform map[string]PlatformStats `json:"perPlatform"`
	Topics      []Topic                  `json:"topics"`
}

// Platform returns the per-platform block, zero-valued when missing.
func (s *StatsSnapshot) Platform(p Platform) PlatformStats {
	if s == nil || s.PerPlatform == nil {
		return PlatformStats{}
	}
	return s.PerPlatform[string(p)]
}

type DailyActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type RecentSubmission struct {
	Title    string `json:"title"`
	Verdict  string `json:"verdict"`
	Language string `json:"language"`
	TimeAgo  string `json:"timeAgo"`
	URL      string `json:"url"`
}

type ContestResult struct {
	Name         string `json:"name"`
	Date         string `json:"date"`
	Rank         int    `json:"rank"`
	RatingChange int    `json:"ratingChange"`
	NewRating    int    `json:"newRating"`
}

// PlatformDetails backs the platform-detail overlay.
type PlatformDetails struct {
	Platform          string             `json:"platform"`
	Connected         bool               `json:"connected"`
	Username          string             `json:"username"`
	Message           string             `json:"message"`
	Error             string             `json:"error"`
	TotalSolved       int                `json:"totalSolved"`
	Rating            int                `json:"rating"`
	MaxRating         int                `json:"maxRating"`
	ContestCount      int                `json:"contestCount"`
	Streak            int                `json:"streak"`
	Easy              int                `json:"easy"`
	Medium            int                `json:"medium"`
	Hard              int                `json:"hard"`
	Rank              FlexString         `json:"rank"`
	RecentActivity    string             `json:"recentActivity"`
	Strengths         []string           `json:"strengths"`
	Badges            []Badge            `json:"badges"`
	RecentSubmissions []RecentSubmission `json:"recentSubmissions"`
	ContestHistory    []ContestResult    `json:"contestHistory"`
}
