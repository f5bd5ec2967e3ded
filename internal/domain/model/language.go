package model

// Language is a CodeSpace editor language with its starter template.
type Language struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Template string `json:"template"`
}

type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// PracticeProblem is a CodeSpace sample problem.
type PracticeProblem struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Difficulty  string     `json:"difficulty"`
	Platform    string     `json:"platform"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Examples    []Example  `json:"examples"`
	Constraints []string   `json:"constraints"`
	TestCases   []TestCase `json:"testCases"`
}

var Languages = []Language{
	{ID: "javascript", Name: "JavaScript", Template: "// Write your solution here\nfunction solution() {\n    \n}"},
	{ID: "python", Name: "Python", Template: "# Write your solution here\ndef solution():\n    pass"},
	{ID: "cpp", Name: "C++", Template: "// Write your solution here\n#include <iostream>\nusing namespace std;\n\nint main() {\n    \n    return 0;\n}"},
	{ID: "java", Name: "Java", Template: "// Write your solution here\npublic class Solution {\n    public static void main(String[] args) {\n        \n    }\n}"},
}

func LanguageByID(id string) (Language, bool) {
	for _, l := range Languages {
		if l.ID == id {
			return l, true
		}
	}
	return Language{}, false
}

var PracticeProblems = []PracticeProblem{
	{
		ID:         1,
		Title:      "Two Sum",
		Difficulty: "Easy",
		Platform:   "leetcode",
		URL:        "https://leetcode.com/problems/two-sum/",
		Description: "Given an array of integers nums and an integer target, return indices of the two numbers such that they add up to target.\n\n" +
			"You may assume that each input would have exactly one solution, and you may not use the same element twice.",
		Examples: []Example{
			{Input: "nums = [2,7,11,15], target = 9", Output: "[0,1]", Explanation: "Because nums[0] + nums[1] == 9, we return [0, 1]."},
			{Input: "nums = [3,2,4], target = 6", Output: "[1,2]"},
		},
		Constraints: []string{"2 <= nums.length <= 10^4", "-10^9 <= nums[i] <= 10^9", "Only one valid answer exists."},
		TestCases: []TestCase{
			{Input: "[2,7,11,15], 9", Expected: "[0,1]"},
			{Input: "[3,2,4], 6", Expected: "[1,2]"},
		},
	},
	{
		ID:          2,
		Title:       "Valid Parentheses",
		Difficulty:  "Easy",
		Platform:    "leetcode",
		URL:         "https://leetcode.com/problems/valid-parentheses/",
		Description: "Given a string s containing just the characters '(', ')', '{', '}', '[' and ']', determine if the input string is valid.",
		Examples: []Example{
			{Input: `s = "()"`, Output: "true"},
			{Input: `s = "()[]{}"`, Output: "true"},
		},
		Constraints: []string{"1 <= s.length <= 10^4", "s consists of parentheses only '()[]{}'."},
		TestCases: []TestCase{
			{Input: `"()"`, Expected: "true"},
			{Input: `"()[]{}"`, Expected: "true"},
		},
	},
}

func PracticeProblemByID(id int) (PracticeProblem, bool) {
	for _, p := range PracticeProblems {
		if p.ID == id {
			return p, true
		}
	}
	return PracticeProblem{}, false
}
