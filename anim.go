package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termfolio/termfolio/wm"
)

// frameInterval is the heartbeat that drives every animation.
const frameInterval = 50 * time.Millisecond

// shrinkFrames is the length of the minimize and restore animations.
const shrinkFrames = 6

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// shrink interpolates a window between its normal and minimized transforms.
type shrink struct {
	from, to wm.Transform
	frame    int
}

func newShrink(from, to wm.Transform) *shrink {
	return &shrink{from: from, to: to}
}

// step advances one frame and reports whether the animation is still
// running.
func (s *shrink) step() bool {
	if s.frame < shrinkFrames {
		s.frame++
	}
	return s.frame < shrinkFrames
}

func (s *shrink) current() wm.Transform {
	t := float64(s.frame) / shrinkFrames
	return wm.Lerp(s.from, s.to, t*t*(3-2*t))
}
