package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Typewriter timing.
const (
	typeDelay   = 90 * time.Millisecond
	deleteDelay = 50 * time.Millisecond
	holdDelay   = 1400 * time.Millisecond
	gapDelay    = 400 * time.Millisecond
	blinkPeriod = 900 * time.Millisecond
)

// IntroPane is the terminal window: a fixed headline and a line that types
// and erases phrases in turn.
type IntroPane struct {
	title    string
	headline string
	phrases  [][]rune

	phrase   int
	n        int // runes of the phrase currently shown
	deleting bool
	due      time.Time
	cursorOn bool
}

// NewIntroPane creates the intro window content. An empty phrase list shows
// only the headline.
func NewIntroPane(title, headline string, phrases []string) *IntroPane {
	p := &IntroPane{title: title, headline: headline, cursorOn: true}
	for _, s := range phrases {
		if s != "" {
			p.phrases = append(p.phrases, []rune(s))
		}
	}
	return p
}

func (p *IntroPane) Title() string { return p.title }

// Text returns the partially typed phrase.
func (p *IntroPane) Text() string {
	if len(p.phrases) == 0 {
		return ""
	}
	return string(p.phrases[p.phrase][:p.n])
}

// delay is how long the current state is shown before the next step.
func (p *IntroPane) delay() time.Duration {
	full := p.n == len(p.phrases[p.phrase])
	switch {
	case !p.deleting && full:
		return holdDelay
	case p.deleting && p.n == 0:
		return gapDelay
	case p.deleting:
		return deleteDelay
	default:
		return typeDelay
	}
}

func (p *IntroPane) step() {
	full := p.n == len(p.phrases[p.phrase])
	switch {
	case !p.deleting && full:
		p.deleting = true
	case p.deleting && p.n == 0:
		p.deleting = false
		p.phrase = (p.phrase + 1) % len(p.phrases)
	case p.deleting:
		p.n--
	default:
		p.n++
	}
}

// Advance applies every step that has come due by now.
func (p *IntroPane) Advance(now time.Time) {
	p.cursorOn = now.UnixMilli()/blinkPeriod.Milliseconds()%2 == 0
	if len(p.phrases) == 0 {
		return
	}
	if p.due.IsZero() || now.Sub(p.due) > time.Minute {
		// First frame, or the program was suspended.
		p.due = now.Add(p.delay())
		return
	}
	for !now.Before(p.due) {
		p.step()
		p.due = p.due.Add(p.delay())
	}
}

func (p *IntroPane) Render(w, h int) string {
	cursor := " "
	if p.cursorOn {
		cursor = "█"
	}
	lines := []string{
		"",
		"  $ " + p.headline,
		"  $ " + p.Text() + cursor,
	}
	return strings.Join(lines[:min(len(lines), h)], "\n")
}

func (p *IntroPane) HandleKey(msg tea.KeyMsg) bool { return false }

func (p *IntroPane) HandleMouse(x, y int, msg tea.MouseMsg) bool { return false }
