package web

type Option struct {
	Value string
	Label string
}

var filterOptions = map[string][]Option{
	"platform": {
		{"all", "All Platforms"}, {"codeforces", "Codeforces"}, {"leetcode", "LeetCode"}, {"atcoder", "AtCoder"},
	},
	"difficulty": {
		{"all", "All Difficulties"}, {"easy", "Easy"}, {"medium", "Medium"}, {"hard", "Hard"},
	},
	"verdict": {
		{"all", "All Verdicts"}, {"AC", "Accepted"}, {"WA", "Wrong Answer"}, {"TLE", "Time Limit Exceeded"},
		{"MLE", "Memory Limit Exceeded"}, {"RE", "Runtime Error"},
	},
	"days": {
		{"7", "Last 7 days"}, {"30", "Last 30 days"}, {"90", "Last 90 days"}, {"180", "Last 6 months"}, {"365", "Last year"},
	},
	"sort": {
		{"date", "Date"}, {"difficulty", "Difficulty"}, {"platform", "Platform"},
	},
	"order": {
		{"desc", "Descending"}, {"asc", "Ascending"},
	},
	"category": {
		{"all", "All Categories"}, {"classic", "Classic Problems"}, {"interview", "Interview Prep"},
		{"contest", "Contest Problems"}, {"beginner", "Beginner Friendly"},
	},
	"contestPlatform": {
		{"all", "All platforms"}, {"Codeforces", "Codeforces"}, {"LeetCode", "LeetCode"}, {"AtCoder", "AtCoder"}, {"CodeChef", "CodeChef"},
	},
}

// Options returns the select options of a filter field.
func Options(field string) []Option {
	return filterOptions[field]
}
