package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Command represents an executable command in the palette
type Command struct {
	Name string
	Help string
}

// Palette command names.
const (
	CmdPosts       = "posts"
	CmdAbout       = "about"
	CmdDebug       = "debug"
	CmdMinimizeAll = "minimize all"
	CmdRestoreAll  = "restore all"
	CmdResetLayout = "reset layout"
	CmdQuit        = "quit"
)

// DefaultCommands is the palette's command list.
var DefaultCommands = []Command{
	{CmdPosts, "open the post list"},
	{CmdAbout, "open the about page"},
	{CmdDebug, "toggle the debug log"},
	{CmdMinimizeAll, "dock every window"},
	{CmdRestoreAll, "restore every docked window"},
	{CmdResetLayout, "restore windows to their automatic positions"},
	{CmdQuit, "exit termfolio"},
}

// CommandPalette is a searchable command list
type CommandPalette struct {
	commands     []Command
	filtered     []Command
	query        string
	selected     int
	scrollOffset int // First visible item index
	keys         KeyMap

	// SelectedAction is set when a command is chosen
	SelectedAction string
}

// NewCommandPalette creates a command palette with the given commands
func NewCommandPalette(commands []Command, keys KeyMap) *CommandPalette {
	return &CommandPalette{
		commands: commands,
		filtered: commands,
		keys:     keys,
	}
}

func (c *CommandPalette) filter() {
	c.filtered = nil
	q := strings.ToLower(c.query)
	for _, cmd := range c.commands {
		if q == "" || strings.Contains(strings.ToLower(cmd.Name), q) ||
			strings.Contains(strings.ToLower(cmd.Help), q) {
			c.filtered = append(c.filtered, cmd)
		}
	}
	c.selected = min(c.selected, max(len(c.filtered)-1, 0))
	c.scrollOffset = 0
}

func (c *CommandPalette) Title() string {
	return "commands"
}

// Filtered returns the commands matching the query.
func (c *CommandPalette) Filtered() []Command {
	return c.filtered
}

func (c *CommandPalette) Render(w, h int) string {
	var sb strings.Builder
	sb.WriteString(": " + c.query + "▏\n")
	sb.WriteString(strings.Repeat("─", w))

	listH := max(h-2, 1)
	c.adjustScroll(listH)

	nameW := max(w/3, 12)
	for i := c.scrollOffset; i < len(c.filtered) && i < c.scrollOffset+listH; i++ {
		cmd := c.filtered[i]
		marker := "  "
		if i == c.selected {
			marker = "> "
		}
		line := marker + fitLine(ansi.Truncate(cmd.Name, nameW, "…"), nameW) + " " + cmd.Help
		sb.WriteString("\n" + ansi.Truncate(line, w, ""))
	}
	return sb.String()
}

func (c *CommandPalette) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, c.keys.Up):
		if c.selected > 0 {
			c.selected--
		}
	case key.Matches(msg, c.keys.Down):
		if c.selected < len(c.filtered)-1 {
			c.selected++
		}
	case key.Matches(msg, c.keys.Select):
		if c.selected < len(c.filtered) {
			c.SelectedAction = c.filtered[c.selected].Name
		}
	case msg.Type == tea.KeyBackspace:
		if r := []rune(c.query); len(r) > 0 {
			c.query = string(r[:len(r)-1])
			c.filter()
		}
	case msg.Type == tea.KeySpace:
		c.query += " "
		c.filter()
	case msg.Type == tea.KeyRunes:
		c.query += string(msg.Runes)
		c.filter()
	default:
		return false
	}
	return true
}

// adjustScroll keeps the selection visible in a list of listH rows
func (c *CommandPalette) adjustScroll(listH int) {
	if c.selected >= c.scrollOffset+listH {
		c.scrollOffset = c.selected - listH + 1
	}
	if c.selected < c.scrollOffset {
		c.scrollOffset = c.selected
	}
}

func (c *CommandPalette) HandleMouse(x, y int, msg tea.MouseMsg) bool {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress || y < 2 {
		return false
	}
	idx := c.scrollOffset + y - 2 // query line and separator
	if idx >= 0 && idx < len(c.filtered) {
		c.selected = idx
		c.SelectedAction = c.filtered[idx].Name
		return true
	}
	return false
}
