package main

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const debugLogLimit = 500

// logRing holds the most recent debug log lines. With mirror set, lines are
// also written to the standard logger (the -log file).
type logRing struct {
	lines  []string
	mirror bool
}

func (l *logRing) add(line string) {
	l.lines = append(l.lines, line)
	if len(l.lines) > debugLogLimit {
		l.lines = l.lines[len(l.lines)-debugLogLimit:]
	}
	if l.mirror {
		log.Print(line)
	}
}

// DebugPane displays the debug log using a viewport
type DebugPane struct {
	viewport viewport.Model
	log      *logRing
	lastLen  int
	lastTail string
}

// NewDebugPane creates a debug pane over the given log
func NewDebugPane(l *logRing) *DebugPane {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return &DebugPane{viewport: vp, log: l}
}

func (d *DebugPane) Title() string {
	return "debug"
}

func (d *DebugPane) Render(w, h int) string {
	d.viewport.Width = w
	d.viewport.Height = h
	d.viewport.SetContent(strings.Join(d.log.lines, "\n"))

	// Follow the tail while new lines arrive. The ring is capped, so compare
	// the last line too.
	n := len(d.log.lines)
	tail := ""
	if n > 0 {
		tail = d.log.lines[n-1]
	}
	if n != d.lastLen || tail != d.lastTail {
		d.viewport.GotoBottom()
		d.lastLen, d.lastTail = n, tail
	}
	return d.viewport.View()
}

func (d *DebugPane) HandleKey(msg tea.KeyMsg) bool {
	var cmd tea.Cmd
	before := d.viewport.YOffset
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd != nil || d.viewport.YOffset != before
}

func (d *DebugPane) HandleMouse(x, y int, msg tea.MouseMsg) bool {
	var cmd tea.Cmd
	before := d.viewport.YOffset
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd != nil || d.viewport.YOffset != before
}
