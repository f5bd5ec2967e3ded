package model

type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabDSARush   Tab = "dsa-rush"
	TabContests  Tab = "contests"
	TabCodeSpace Tab = "codespace"
)

var Tabs = []Tab{TabDashboard, TabDSARush, TabContests, TabCodeSpace}

func ParseTab(s string) Tab {
	for _, t := range Tabs {
		if string(t) == s {
			return t
		}
	}
	return TabDashboard
}

func (t Tab) Label() string {
	switch t {
	case TabDSARush:
		return "DSA CodeRush"
	case TabContests:
		return "Contests"
	case TabCodeSpace:
		return "CodeSpace"
	}
	return "Dashboard"
}
