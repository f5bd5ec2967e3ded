package model

import (
	"net/url"
)

type OverlayKind string

const (
	OverlayNone           OverlayKind = ""
	OverlaySettings       OverlayKind = "settings"
	OverlayPlatformDetail OverlayKind = "platform"
	OverlayProblemHistory OverlayKind = "problems"
	OverlayPattern        OverlayKind = "pattern"
)

// Overlay is the single modal shown over the home page. Only the field that
// belongs to Kind is set.
type Overlay struct {
	Kind      OverlayKind
	Platform  Platform
	PatternID string
}

func NoOverlay() Overlay                   { return Overlay{} }
func SettingsOverlay() Overlay             { return Overlay{Kind: OverlaySettings} }
func ProblemHistoryOverlay() Overlay       { return Overlay{Kind: OverlayProblemHistory} }
func PlatformOverlay(p Platform) Overlay   { return Overlay{Kind: OverlayPlatformDetail, Platform: p} }
func PatternOverlay(id string) Overlay     { return Overlay{Kind: OverlayPattern, PatternID: id} }
func (o Overlay) Open() bool               { return o.Kind != OverlayNone }
func (o Overlay) Is(kind OverlayKind) bool { return o.Kind == kind }

// ParseOverlay reads ?overlay=<kind>&platform=<p>&pattern=<id>. Anything
// incomplete or unknown resolves to no overlay.
func ParseOverlay(q url.Values) Overlay {
	switch OverlayKind(q.Get("overlay")) {
	case OverlaySettings:
		return SettingsOverlay()
	case OverlayProblemHistory:
		return ProblemHistoryOverlay()
	case OverlayPlatformDetail:
		if p, ok := ParsePlatform(q.Get("platform")); ok {
			return PlatformOverlay(p)
		}
	case OverlayPattern:
		if id := q.Get("pattern"); id != "" {
			return PatternOverlay(id)
		}
	}
	return NoOverlay()
}

func (o Overlay) Query() url.Values {
	q := url.Values{}
	if o.Kind == OverlayNone {
		return q
	}
	q.Set("overlay", string(o.Kind))
	switch o.Kind {
	case OverlayPlatformDetail:
		q.Set("platform", string(o.Platform))
	case OverlayPattern:
		q.Set("pattern", o.PatternID)
	}
	return q
}
