package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown pre-renders markdown for terminal display at the given width.
func RenderMarkdown(markdown string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// DocPane displays rendered markdown in a window: the about page and
// individual posts.
type DocPane struct {
	title    string
	markdown string
	status   string // shown instead of content while loading or on error
	lines    []string
	width    int // width lines were rendered at
	height   int
	scroll   int
	keys     KeyMap
}

// NewDocPane creates a pane showing markdown.
func NewDocPane(title, markdown string, keys KeyMap) *DocPane {
	return &DocPane{title: title, markdown: markdown, keys: keys}
}

// SetMarkdown replaces the content and scrolls back to the top.
func (d *DocPane) SetMarkdown(title, markdown string) {
	d.title = title
	d.markdown = markdown
	d.status = ""
	d.lines = nil
	d.scroll = 0
}

// SetStatus shows a one-line message in place of the content.
func (d *DocPane) SetStatus(status string) {
	d.status = status
}

func (d *DocPane) Title() string {
	return d.title
}

func (d *DocPane) layout(w int) {
	if d.lines != nil && d.width == w {
		return
	}
	rendered := RenderMarkdown(d.markdown, w)
	d.lines = strings.Split(strings.Trim(rendered, "\n"), "\n")
	d.width = w
	d.clampScroll()
}

func (d *DocPane) Render(w, h int) string {
	if d.status != "" {
		return d.status
	}
	d.height = h
	d.layout(w)

	body := h
	if len(d.lines) > h {
		body = h - 1 // scroll indicator
	}
	d.clampScroll()
	end := min(d.scroll+body, len(d.lines))

	var sb strings.Builder
	for i := d.scroll; i < end; i++ {
		sb.WriteString(d.lines[i])
		if i < end-1 {
			sb.WriteRune('\n')
		}
	}

	// Scroll position indicator on last line
	if len(d.lines) > h {
		sb.WriteRune('\n')
		pos := fmt.Sprintf(" %d/%d ", d.scroll+1, len(d.lines))
		if pad := w - len(pos); pad > 0 {
			sb.WriteString(strings.Repeat("─", pad))
		}
		sb.WriteString(pos)
	}
	return sb.String()
}

func (d *DocPane) HandleKey(msg tea.KeyMsg) bool {
	page := max(d.height-2, 1)
	switch {
	case key.Matches(msg, d.keys.Up):
		d.scrollBy(-1)
	case key.Matches(msg, d.keys.Down):
		d.scrollBy(1)
	case key.Matches(msg, d.keys.PgUp):
		d.scrollBy(-page)
	case key.Matches(msg, d.keys.PgDn):
		d.scrollBy(page)
	case key.Matches(msg, d.keys.Home):
		d.scroll = 0
	case key.Matches(msg, d.keys.End):
		d.scroll = len(d.lines)
		d.clampScroll()
	default:
		return false
	}
	return true
}

func (d *DocPane) HandleMouse(x, y int, msg tea.MouseMsg) bool {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		d.scrollBy(-3)
		return true
	case tea.MouseButtonWheelDown:
		d.scrollBy(3)
		return true
	}
	return false
}

func (d *DocPane) scrollBy(n int) {
	d.scroll += n
	d.clampScroll()
}

func (d *DocPane) clampScroll() {
	limit := len(d.lines) - max(d.height-1, 1)
	if d.scroll > limit {
		d.scroll = limit
	}
	if d.scroll < 0 {
		d.scroll = 0
	}
}
