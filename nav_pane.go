package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// NavTarget is where a navigation button leads.
type NavTarget int

const (
	NavAbout NavTarget = iota
	NavPosts
	NavGitHub
)

type navButton struct {
	label  string
	target NavTarget
}

// NavPane is the "view me" window: buttons that open the content windows.
type NavPane struct {
	title    string
	buttons  []navButton
	selected int
	keys     KeyMap
	status   string

	// OnSelect is called when a button is activated
	OnSelect func(NavTarget)
}

// NewNavPane creates the navigation window content.
func NewNavPane(title string, keys KeyMap) *NavPane {
	return &NavPane{
		title: title,
		buttons: []navButton{
			{"About Me", NavAbout},
			{"View Posts", NavPosts},
			{"My github", NavGitHub},
		},
		keys: keys,
	}
}

func (n *NavPane) Title() string { return n.title }

// SetStatus shows a line under the buttons.
func (n *NavPane) SetStatus(s string) { n.status = s }

// Buttons render as [ label ] on rows 1, 2, 3 of the content area.
const navFirstRow = 1

func (n *NavPane) Render(w, h int) string {
	lines := []string{""}
	for i, b := range n.buttons {
		marker := "  "
		if i == n.selected {
			marker = "> "
		}
		lines = append(lines, "  "+marker+"[ "+b.label+" ]")
	}
	if n.status != "" {
		lines = append(lines, "  "+n.status)
	}
	return strings.Join(lines[:min(len(lines), h)], "\n")
}

func (n *NavPane) activate(i int) {
	if i < 0 || i >= len(n.buttons) {
		return
	}
	n.selected = i
	if n.OnSelect != nil {
		n.OnSelect(n.buttons[i].target)
	}
}

func (n *NavPane) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, n.keys.Up):
		if n.selected > 0 {
			n.selected--
		}
	case key.Matches(msg, n.keys.Down):
		if n.selected < len(n.buttons)-1 {
			n.selected++
		}
	case key.Matches(msg, n.keys.Select):
		n.activate(n.selected)
	default:
		return false
	}
	return true
}

func (n *NavPane) HandleMouse(x, y int, msg tea.MouseMsg) bool {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return false
	}
	i := y - navFirstRow
	if i < 0 || i >= len(n.buttons) {
		return false
	}
	n.activate(i)
	return true
}
