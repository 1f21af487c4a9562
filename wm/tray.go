package wm

import (
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// TrayButton is one laid-out restore button, in tray-row columns.
type TrayButton struct {
	Entry DockEntry
	X     int
	Width int
}

// DockTray renders the dock's entries as a row of restore buttons. It only
// reads the dock; restoring goes through each entry's callback.
type DockTray struct {
	dock   *DockRegistry
	margin int // columns kept free at the right edge
	gap    int

	ButtonStyle lipgloss.Style
	DotStyle    lipgloss.Style
}

// NewDockTray creates a tray over dock.
func NewDockTray(dock *DockRegistry) *DockTray {
	if dock == nil {
		panic(ErrNoScope)
	}
	return &DockTray{
		dock:   dock,
		margin: 2,
		gap:    1,
		ButtonStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("120")).
			Background(lipgloss.Color("22")),
		DotStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("41")).
			Background(lipgloss.Color("22")),
	}
}

// Items iterates over the docked entries.
func (t *DockTray) Items() iter.Seq[DockEntry] {
	return t.dock.Items()
}

// Empty reports whether there is nothing to render.
func (t *DockTray) Empty() bool {
	return t.dock.Len() == 0
}

func buttonText(label string) string {
	return " ● " + strings.ToUpper(label) + " "
}

// Layout right-aligns the buttons in a row of the given width. Buttons that
// do not fit are dropped from the left.
func (t *DockTray) Layout(width int) []TrayButton {
	var buttons []TrayButton
	for e := range t.Items() {
		buttons = append(buttons, TrayButton{Entry: e, Width: ansi.StringWidth(buttonText(e.Label))})
	}
	x := width - t.margin
	for i := len(buttons) - 1; i >= 0; i-- {
		x -= buttons[i].Width
		if x < 0 {
			return buttons[i+1:]
		}
		buttons[i].X = x
		x -= t.gap
	}
	return buttons
}

// Render returns the tray row, or "" when the dock is empty.
func (t *DockTray) Render(width int) string {
	if t.Empty() || width <= 0 {
		return ""
	}
	var sb strings.Builder
	col := 0
	for _, b := range t.Layout(width) {
		sb.WriteString(strings.Repeat(" ", b.X-col))
		text := buttonText(b.Entry.Label)
		dot := strings.Index(text, "●")
		sb.WriteString(t.ButtonStyle.Render(text[:dot]))
		sb.WriteString(t.DotStyle.Render("●"))
		sb.WriteString(t.ButtonStyle.Render(text[dot+len("●"):]))
		col = b.X + b.Width
	}
	if col < width {
		sb.WriteString(strings.Repeat(" ", width-col))
	}
	return sb.String()
}

// HitTest returns the entry whose button covers column x.
func (t *DockTray) HitTest(width, x int) (DockEntry, bool) {
	for _, b := range t.Layout(width) {
		if x >= b.X && x < b.X+b.Width {
			return b.Entry, true
		}
	}
	return DockEntry{}, false
}

// Click restores the entry under column x and reports whether one was hit.
func (t *DockTray) Click(width, x int) bool {
	e, ok := t.HitTest(width, x)
	if ok {
		e.Restore()
	}
	return ok
}
