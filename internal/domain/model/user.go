package model

import (
	"time"
)

type User struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// Session is the dashboard's handle on a signed-in browser. The bearer token
// is never sent back to the browser.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Accounts are the per-platform handles linked to the user.
type Accounts struct {
	Codeforces string `json:"codeforces"`
	LeetCode   string `json:"leetcode"`
	AtCoder    string `json:"atcoder"`
	CodeChef   string `json:"codechef"`
}

func (a Accounts) Handle(p Platform) string {
	switch p {
	case PlatformCodeforces:
		return a.Codeforces
	case PlatformLeetCode:
		return a.LeetCode
	case PlatformAtCoder:
		return a.AtCoder
	case PlatformCodeChef:
		return a.CodeChef
	}
	return ""
}

// Empty is true when no platform handle is linked.
func (a Accounts) Empty() bool {
	return a == Accounts{}
}

// Merge fills fields of a from the non-empty fields of other.
func (a Accounts) Merge(other Accounts) Accounts {
	if other.Codeforces != "" {
		a.Codeforces = other.Codeforces
	}
	if other.LeetCode != "" {
		a.LeetCode = other.LeetCode
	}
	if other.AtCoder != "" {
		a.AtCoder = other.AtCoder
	}
	if other.CodeChef != "" {
		a.CodeChef = other.CodeChef
	}
	return a
}

type Preferences struct {
	EmailReminders bool   `json:"emailReminders"`
	Newsletter     bool   `json:"newsletter"`
	Avatar         string `json:"avatar"`
}

func DefaultPreferences() Preferences {
	return Preferences{EmailReminders: true}
}
