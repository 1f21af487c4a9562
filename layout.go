package main

import (
	"math"

	"github.com/termfolio/termfolio/wm"
)

// Role identifies what a desktop window shows. It decides the window's
// size, anchoring and automatic position.
type Role int

const (
	RoleIntro Role = iota
	RoleNav
	RoleBGM
	RolePosts
	RoleAbout
	RolePost
	RoleDebug
	RolePalette
)

func (r Role) String() string {
	switch r {
	case RoleIntro:
		return "intro"
	case RoleNav:
		return "nav"
	case RoleBGM:
		return "bgm"
	case RolePosts:
		return "posts"
	case RoleAbout:
		return "about"
	case RolePost:
		return "post"
	case RoleDebug:
		return "debug"
	case RolePalette:
		return "palette"
	}
	return "unknown"
}

// narrowWidth is the column count below which the decorative windows stack
// vertically instead of spreading out.
const narrowWidth = 80

// Decorative windows are center-anchored; content windows open from the
// top-left corner.
func (r Role) Floating() bool {
	switch r {
	case RoleIntro, RoleNav, RoleBGM:
		return true
	}
	return false
}

// Decorative reports whether closing the window is refused.
func (r Role) Decorative() bool {
	return r.Floating()
}

type sizeRule struct {
	hint   wm.Size // preferred size; zero means the viewport's extent
	fx, fy float64 // max share of the viewport
}

var sizeRules = map[Role]sizeRule{
	RoleIntro:   {wm.Size{Width: 72, Height: 7}, 0.92, 1},
	RoleNav:     {wm.Size{Width: 36, Height: 7}, 0.78, 1},
	RoleBGM:     {wm.Size{Width: 34, Height: 8}, 0.8, 1},
	RolePosts:   {wm.Size{Width: 64, Height: 20}, 0.9, 0.9},
	RoleAbout:   {wm.Size{Width: 64, Height: 20}, 0.9, 0.9},
	RolePost:    {wm.Size{Width: 76, Height: 24}, 0.96, 0.9},
	RoleDebug:   {wm.Size{Width: 50}, 0.6, 1},
	RolePalette: {wm.Size{Width: 50, Height: 12}, 0.9, 0.6},
}

// NormalSize is the preferred size of a window with this role, before it is
// fitted to a viewport.
func (r Role) NormalSize() wm.Size {
	return sizeRules[r].hint
}

// fitSize fits a size hint into vp. A zero dimension fills the viewport.
func fitSize(r Role, hint, vp wm.Size) wm.Size {
	rule := sizeRules[r]
	fit := func(want, extent, share float64) float64 {
		if want == 0 {
			return math.Max(0, extent)
		}
		if share == 0 {
			share = 1
		}
		return math.Max(0, math.Min(want, math.Floor(extent*share)))
	}
	return wm.Size{
		Width:  fit(hint.Width, vp.Width, rule.fx),
		Height: fit(hint.Height, vp.Height, rule.fy),
	}
}

// InitialPosition is the automatic position of the nth window of role r (n
// counts earlier windows of the same role) in a viewport, clamped so that a
// window of size sz stays inside it.
func (r Role) InitialPosition(vp, sz wm.Size, n int) wm.Position {
	narrow := vp.Width < narrowWidth
	var p wm.Position
	switch r {
	case RoleIntro:
		p = wm.Position{X: 0, Y: -1}
		if narrow {
			p.Y = -4
		}
	case RoleNav:
		p = wm.Position{X: 26, Y: 6}
		if narrow {
			p = wm.Position{X: 0, Y: 8}
		}
	case RoleBGM:
		p = wm.Position{X: -26, Y: 10}
		if narrow {
			p = wm.Position{X: 0, Y: 16}
		}
	case RolePosts:
		p = wm.Position{X: 2, Y: 1}
	case RoleAbout:
		p = wm.Position{X: 6, Y: 2}
	case RolePost:
		p = wm.Position{X: float64(10 + 3*n), Y: float64(3 + n)}
	case RoleDebug:
		p = wm.Position{X: vp.Width - sz.Width, Y: 0}
	case RolePalette:
		p = wm.Position{X: math.Floor((vp.Width - sz.Width) / 2), Y: 1}
	}
	return wm.DragBounds(vp, sz, r.Floating()).Clamp(p)
}
