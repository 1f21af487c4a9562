package wm

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDockTrayEmpty(t *testing.T) {
	tray := NewDockTray(NewDockRegistry())
	assert.True(t, tray.Empty())
	assert.Equal(t, "", tray.Render(80))
	assert.False(t, tray.Click(80, 10))
}

func TestDockTrayLayoutRightAligned(t *testing.T) {
	dock := NewDockRegistry()
	dock.Register(DockEntry{ID: "a", Label: "Terminal"})
	dock.Register(DockEntry{ID: "b", Label: "BGM"})
	tray := NewDockTray(dock)

	buttons := tray.Layout(60)
	require.Len(t, buttons, 2)
	last := buttons[1]
	assert.Equal(t, 60-2, last.X+last.Width)
	assert.Equal(t, last.X-1, buttons[0].X+buttons[0].Width)

	row := ansi.Strip(tray.Render(60))
	assert.Equal(t, 60, ansi.StringWidth(row))
	assert.True(t, strings.Contains(row, "TERMINAL"))
	assert.True(t, strings.Contains(row, "BGM"))
}

func TestDockTrayClickRestores(t *testing.T) {
	scope := NewScope(Options{})
	w := NewWindow(scope, Config{Title: "view me", DockLabel: "View Me"})
	w.Mount()
	w.Minimize()

	tray := NewDockTray(scope.Dock)
	buttons := tray.Layout(40)
	require.Len(t, buttons, 1)
	assert.False(t, tray.Click(40, buttons[0].X-1))
	assert.True(t, tray.Click(40, buttons[0].X))
	assert.False(t, w.Minimized())
	assert.True(t, tray.Empty())
}

func TestDockTrayDropsOverflow(t *testing.T) {
	dock := NewDockRegistry()
	dock.Register(DockEntry{ID: "a", Label: "aaaaaaaaaa"})
	dock.Register(DockEntry{ID: "b", Label: "bbbbbbbbbb"})
	tray := NewDockTray(dock)

	buttons := tray.Layout(18)
	require.Len(t, buttons, 1)
	assert.Equal(t, WindowID("b"), buttons[0].Entry.ID)
}
