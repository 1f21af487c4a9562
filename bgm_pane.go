package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// BGMPane is the music credit card. There is no audio in a terminal; the
// player keeps a play clock so the controls behave like the real thing.
type BGMPane struct {
	title    string
	credit   string
	url      string
	duration time.Duration

	playing bool
	muted   bool
	elapsed time.Duration
	last    time.Time
	keys    KeyMap
}

// NewBGMPane creates the BGM window content.
func NewBGMPane(title string, bgm BGMConfig, keys KeyMap) *BGMPane {
	return &BGMPane{
		title:    title,
		credit:   bgm.Credit,
		url:      bgm.URL,
		duration: time.Duration(bgm.Seconds) * time.Second,
		muted:    true,
		keys:     keys,
	}
}

func (b *BGMPane) Title() string { return b.title }

// Playing reports whether the clock is running.
func (b *BGMPane) Playing() bool { return b.playing }

// Toggle starts or pauses playback.
func (b *BGMPane) Toggle() {
	b.playing = !b.playing
	b.last = time.Time{}
}

func (b *BGMPane) Advance(now time.Time) {
	if !b.playing {
		return
	}
	if !b.last.IsZero() {
		b.elapsed += now.Sub(b.last)
	}
	b.last = now
	if b.duration > 0 && b.elapsed >= b.duration {
		b.elapsed %= b.duration
	}
}

func clock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// Layout rows of the content area.
const (
	bgmControlsRow = 1
	bgmPlayCols    = 5 // "  ▶  " / "  ❚❚ "
)

func (b *BGMPane) Render(w, h int) string {
	icon := "▶"
	if b.playing {
		icon = "❚❚"
	}
	vol := "vol ▮▮▮▯▯"
	if b.muted {
		vol = "muted"
	}
	bar := ""
	if barW := w - 4; barW > 0 && b.duration > 0 {
		filled := int(float64(barW) * float64(b.elapsed) / float64(b.duration))
		bar = "  " + strings.Repeat("━", filled) + strings.Repeat("─", barW-filled)
	}
	lines := []string{
		"  BGM",
		fmt.Sprintf("  %-2s  %s / %s  %s", icon, clock(b.elapsed), clock(b.duration), vol),
		bar,
		"",
		"  " + b.credit,
		"  " + b.url,
	}
	return strings.Join(lines[:min(len(lines), h)], "\n")
}

func (b *BGMPane) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, b.keys.Select):
		b.Toggle()
	case msg.String() == "m":
		b.muted = !b.muted
	default:
		return false
	}
	return true
}

func (b *BGMPane) HandleMouse(x, y int, msg tea.MouseMsg) bool {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return false
	}
	if y == bgmControlsRow && x < bgmPlayCols {
		b.Toggle()
		return true
	}
	return false
}
