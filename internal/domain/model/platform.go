package model

import "strings"

type Platform string

const (
	PlatformLeetCode   Platform = "leetcode"
	PlatformCodeforces Platform = "codeforces"
	PlatformAtCoder    Platform = "atcoder"
	PlatformCodeChef   Platform = "codechef"

	// FilterAll disables a filter field.
	FilterAll = "all"

	FallbackPlatformColor = "#6B7280"
)

var Platforms = []Platform{PlatformLeetCode, PlatformCodeforces, PlatformAtCoder, PlatformCodeChef}

var platformColors = map[Platform]string{
	PlatformLeetCode:   "#FFA116",
	PlatformCodeforces: "#1F8ACB",
	PlatformAtCoder:    "#3F7FBF",
	PlatformCodeChef:   "#5B4638",
}

var platformNames = map[Platform]string{
	PlatformLeetCode:   "LeetCode",
	PlatformCodeforces: "Codeforces",
	PlatformAtCoder:    "AtCoder",
	PlatformCodeChef:   "CodeChef",
}

// ParsePlatform accepts any casing ("LeetCode", "leetcode").
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	_, ok := platformColors[p]
	return p, ok
}

// PlatformColor returns the brand colour, or FallbackPlatformColor for
// anything that is not one of the four judges.
func PlatformColor(platform string) string {
	p, ok := ParsePlatform(platform)
	if !ok {
		return FallbackPlatformColor
	}
	return platformColors[p]
}

func (p Platform) DisplayName() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return string(p)
}

func (p Platform) Color() string { return PlatformColor(string(p)) }
