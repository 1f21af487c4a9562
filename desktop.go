package main

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/termfolio/termfolio/wm"
)

// HitZone represents where a mouse press landed on a window
type HitZone int

const (
	ZoneNone HitZone = iota
	ZoneTitleBar
	ZoneClose
	ZoneMinimize
	ZoneMaximize
	ZoneBorder
	ZoneContent
)

// PaneContent defines what a window can display
type PaneContent interface {
	// Render returns the content string to display within window borders
	// w, h are the content area dimensions (inside borders)
	Render(w, h int) string

	// HandleKey processes keyboard input when this window has focus
	// Returns true if the key was consumed
	HandleKey(msg tea.KeyMsg) bool

	// HandleMouse processes mouse input within this window's bounds
	// x, y are relative to the window's content area
	HandleMouse(x, y int, msg tea.MouseMsg) bool

	// Title returns the window's title
	Title() string
}

// Commander is implemented by content that starts background work from
// input. Cmd returns the pending command, if any, and clears it.
type Commander interface {
	Cmd() tea.Cmd
}

// Animator is implemented by content that changes with time.
type Animator interface {
	Advance(now time.Time)
}

// Title bar controls, left to right: close, minimize, maximize.
const controls = "[x][-][+]"

// DeskWindow is a wm window and the content it shows.
type DeskWindow struct {
	*wm.Window
	Role    Role
	Content PaneContent
	nth     int // earlier windows of the same role, for cascading
}

type cellRect struct {
	x, y, w, h int
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func toCells(r wm.Rect) cellRect {
	return cellRect{
		x: int(math.Round(r.X)),
		y: int(math.Round(r.Y)),
		w: int(math.Round(r.Width)),
		h: int(math.Round(r.Height)),
	}
}

// CellRect is the window's on-screen rectangle in cells.
func (dw *DeskWindow) CellRect() cellRect {
	return toCells(dw.Rect())
}

func showControls(w int) bool {
	return w-2 >= len(controls)+2
}

// Zone determines where a screen cell falls within the window
func (dw *DeskWindow) Zone(x, y int) HitZone {
	r := dw.CellRect()
	if !r.contains(x, y) {
		return ZoneNone
	}
	relX, relY := x-r.x, y-r.y
	if relY == 0 {
		if showControls(r.w) && relX >= 1 && relX < 1+len(controls) {
			switch (relX - 1) / 3 {
			case 0:
				return ZoneClose
			case 1:
				return ZoneMinimize
			default:
				return ZoneMaximize
			}
		}
		return ZoneTitleBar
	}
	if relY == r.h-1 || relX == 0 || relX == r.w-1 {
		return ZoneBorder
	}
	return ZoneContent
}

// frame renders the window with borders and content
func (dw *DeskWindow) frame(w, h int, focused bool) []string {
	if w < 2 || h < 2 {
		return nil
	}
	tl, tr, bl, br, hz, vt := "┌", "┐", "└", "┘", "─", "│"
	if focused {
		tl, tr, bl, br, hz, vt = "╔", "╗", "╚", "╝", "═", "║"
	}
	cw, ch := w-2, h-2

	content := ""
	if cw > 0 && ch > 0 {
		content = ansi.Strip(dw.Content.Render(cw, ch))
		content = strings.ReplaceAll(content, "\t", "    ")
	}
	contentLines := strings.Split(content, "\n")

	lines := make([]string, 0, h)
	lines = append(lines, tl+titleBar(dw.Content.Title(), cw, hz)+tr)
	for i := 0; i < ch; i++ {
		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, vt+fitLine(line, cw)+vt)
	}
	lines = append(lines, bl+strings.Repeat(hz, cw)+br)
	return lines
}

// titleBar lays out the controls on the left and the title on the right.
func titleBar(title string, w int, hz string) string {
	if !showControls(w + 2) {
		return strings.Repeat(hz, w)
	}
	room := w - len(controls) - 3
	if room < 1 {
		return controls + strings.Repeat(hz, w-len(controls))
	}
	title = ansi.Truncate(title, room, "…")
	pad := w - len(controls) - ansi.StringWidth(title) - 2
	return controls + strings.Repeat(hz, pad) + " " + title + " "
}

func fitLine(s string, w int) string {
	s = ansi.Truncate(s, w, "")
	if n := ansi.StringWidth(s); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return s
}

func outline(w, h int) []string {
	if w < 2 || h < 2 {
		return nil
	}
	lines := []string{"┌" + strings.Repeat("─", w-2) + "┐"}
	for i := 0; i < h-2; i++ {
		lines = append(lines, "│"+strings.Repeat(" ", w-2)+"│")
	}
	return append(lines, "└"+strings.Repeat("─", w-2)+"┘")
}

// Desktop tracks every window sharing one wm.Scope, plus the close gate
// shown when a decorative window refuses to close.
type Desktop struct {
	scope   *wm.Scope
	Tray    *wm.DockTray
	windows map[wm.WindowID]*DeskWindow
	focused wm.WindowID
	vp      wm.Size
	anims   map[wm.WindowID]*shrink
	opened  map[Role]int

	gate    bool
	denyMsg string

	log func(format string, args ...any)
}

// NewDesktop creates an empty desktop with its own registries.
func NewDesktop(opts wm.Options, denyMsg string, logf func(string, ...any)) *Desktop {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	d := &Desktop{
		scope:   wm.NewScope(opts),
		windows: make(map[wm.WindowID]*DeskWindow),
		anims:   make(map[wm.WindowID]*shrink),
		opened:  make(map[Role]int),
		denyMsg: denyMsg,
		log:     logf,
	}
	d.Tray = wm.NewDockTray(d.scope.Dock)
	d.scope.Stack.Subscribe(func() {
		d.log("stack: %s", d.describeStack())
	})
	d.scope.Dock.Subscribe(func() {
		d.log("dock: %d item(s)", d.scope.Dock.Len())
	})
	return d
}

func (d *Desktop) describeStack() string {
	var parts []string
	for _, id := range d.scope.Stack.Order() {
		name := id.Short()
		if dw := d.windows[id]; dw != nil {
			name = dw.Role.String()
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " < ")
}

// Scope returns the desktop's registries.
func (d *Desktop) Scope() *wm.Scope {
	return d.scope
}

// Viewport returns the area windows live in.
func (d *Desktop) Viewport() wm.Size {
	return d.vp
}

// Open mounts a new window showing content and focuses it.
func (d *Desktop) Open(role Role, dockLabel string, content PaneContent) *DeskWindow {
	dw := &DeskWindow{Role: role, Content: content, nth: d.opened[role]}
	d.opened[role]++
	cfg := wm.Config{
		Title:        content.Title(),
		DockLabel:    dockLabel,
		Floating:     role.Floating(),
		NormalSize:   role.NormalSize(),
		OnTransition: d.transitioned,
	}
	if role.Decorative() {
		cfg.OnCloseRequest = d.OpenGate
	} else {
		cfg.OnCloseRequest = func() { d.Close(dw.ID()) }
	}
	dw.Window = wm.NewWindow(d.scope, cfg)
	d.windows[dw.ID()] = dw
	dw.Mount()
	d.measure(dw)
	d.Focus(dw.ID())
	d.log("open %s %s", role, dw.ID().Short())
	return dw
}

// Close unmounts and forgets a window.
func (d *Desktop) Close(id wm.WindowID) {
	dw := d.windows[id]
	if dw == nil {
		return
	}
	dw.Unmount()
	delete(d.windows, id)
	delete(d.anims, id)
	d.log("close %s %s", dw.Role, id.Short())
	if d.focused == id {
		d.focused = ""
		if top := d.topInteractive(); top != nil {
			d.focused = top.ID()
		}
	}
}

func (d *Desktop) transitioned(w *wm.Window, from, to wm.State) {
	d.log("%s: %s → %s", w.ID().Short(), from, to)
	dw := d.windows[w.ID()]
	if dw == nil {
		return
	}
	d.measure(dw)
	switch {
	case to == wm.Minimized:
		d.anims[w.ID()] = newShrink(w.NormalTransform(), w.MinimizedTransform())
		if d.focused == w.ID() {
			d.focused = ""
			if top := d.topInteractive(); top != nil {
				d.focused = top.ID()
			}
		}
	case from == wm.Minimized:
		d.anims[w.ID()] = newShrink(w.MinimizedTransform(), w.NormalTransform())
		// Focus without raising; restoring leaves the stack alone.
		d.focused = w.ID()
	}
}

// measure feeds the window its viewport, its size for the current state and
// its automatic position.
func (d *Desktop) measure(dw *DeskWindow) {
	dw.SetViewport(d.vp)
	dw.SetSize(fitSize(dw.Role, dw.SizeHint(), d.vp))
	normal := fitSize(dw.Role, dw.Role.NormalSize(), d.vp)
	dw.SetInitialPosition(dw.Role.InitialPosition(d.vp, normal, dw.nth))
}

// Resize records a new viewport and re-lays out every window.
func (d *Desktop) Resize(vp wm.Size) {
	d.vp = vp
	for _, dw := range d.windows {
		d.measure(dw)
	}
}

// Windows returns the mounted windows from bottom to top.
func (d *Desktop) Windows() []*DeskWindow {
	var out []*DeskWindow
	for _, id := range d.scope.Stack.Order() {
		if dw := d.windows[id]; dw != nil {
			out = append(out, dw)
		}
	}
	return out
}

// Get returns a window by id
func (d *Desktop) Get(id wm.WindowID) *DeskWindow {
	return d.windows[id]
}

// Find returns the topmost window with the given role.
func (d *Desktop) Find(role Role) *DeskWindow {
	ws := d.Windows()
	for i := len(ws) - 1; i >= 0; i-- {
		if ws[i].Role == role {
			return ws[i]
		}
	}
	return nil
}

// WindowAt returns the topmost interactive window at the given cell.
func (d *Desktop) WindowAt(x, y int) *DeskWindow {
	ws := d.Windows()
	for i := len(ws) - 1; i >= 0; i-- {
		if ws[i].Interactive() && ws[i].Zone(x, y) != ZoneNone {
			return ws[i]
		}
	}
	return nil
}

func (d *Desktop) topInteractive() *DeskWindow {
	ws := d.Windows()
	for i := len(ws) - 1; i >= 0; i-- {
		if ws[i].Interactive() {
			return ws[i]
		}
	}
	return nil
}

// Focus focuses a window and raises it to the top
func (d *Desktop) Focus(id wm.WindowID) {
	dw := d.windows[id]
	if dw == nil || !dw.Interactive() {
		return
	}
	d.focused = id
	dw.PointerDown()
}

// Unfocus clears keyboard focus.
func (d *Desktop) Unfocus() {
	d.focused = ""
}

// Focused returns the window receiving keys, or nil.
func (d *Desktop) Focused() *DeskWindow {
	dw := d.windows[d.focused]
	if dw == nil || !dw.Interactive() {
		return nil
	}
	return dw
}

// FocusNext raises the bottom-most interactive window, so repeated calls
// visit every window.
func (d *Desktop) FocusNext() {
	for _, dw := range d.Windows() {
		if dw.Interactive() {
			if dw.ID() != d.focused {
				d.Focus(dw.ID())
			}
			return
		}
	}
}

// MinimizeAll docks every window.
func (d *Desktop) MinimizeAll() {
	for _, dw := range d.Windows() {
		dw.Minimize()
	}
}

// RestoreAll restores every docked window through its dock entry.
func (d *Desktop) RestoreAll() {
	for e := range d.Tray.Items() {
		e.Restore()
	}
}

// RestoreLast restores the most recently docked window.
func (d *Desktop) RestoreLast() bool {
	var last wm.DockEntry
	found := false
	for e := range d.Tray.Items() {
		last, found = e, true
	}
	if found {
		last.Restore()
	}
	return found
}

// ResetLayout restores every window and returns it to its automatic
// position.
func (d *Desktop) ResetLayout() {
	d.RestoreAll()
	for _, dw := range d.Windows() {
		dw.ResetPosition()
		d.measure(dw)
	}
}

// OpenGate shows the close-refused box.
func (d *Desktop) OpenGate() {
	d.gate = true
	d.log("close refused")
}

// GateOpen reports whether the close-refused box is showing.
func (d *Desktop) GateOpen() bool { return d.gate }

// DismissGate hides the close-refused box.
func (d *Desktop) DismissGate() { d.gate = false }

const (
	gateTitle  = "ACCESS DENY"
	gateButton = "[ Accept ]"
	gateWidth  = 46
)

func (d *Desktop) gateLines() []string {
	inner := gateWidth - 4
	body := strings.Split(ansi.Wrap(d.denyMsg, inner, ""), "\n")
	lines := []string{
		"╭" + strings.Repeat("─", gateWidth-2) + "╮",
		"│ " + fitLine(gateTitle, inner) + " │",
		"│ " + fitLine("", inner) + " │",
	}
	for _, l := range body {
		lines = append(lines, "│ "+fitLine(l, inner)+" │")
	}
	lines = append(lines,
		"│ "+fitLine("", inner)+" │",
		"│ "+fitLine(strings.Repeat(" ", inner-len(gateButton))+gateButton, inner)+" │",
		"╰"+strings.Repeat("─", gateWidth-2)+"╯",
	)
	return lines
}

func (d *Desktop) gateRect() cellRect {
	h := len(d.gateLines())
	return cellRect{
		x: (int(d.vp.Width) - gateWidth) / 2,
		y: (int(d.vp.Height) - h) / 2,
		w: gateWidth,
		h: h,
	}
}

// GateClick handles a press while the gate is open and reports whether it
// dismissed the gate.
func (d *Desktop) GateClick(x, y int) bool {
	r := d.gateRect()
	btnX := r.x + 2 + (gateWidth - 4 - len(gateButton))
	if y == r.y+r.h-2 && x >= btnX && x < btnX+len(gateButton) {
		d.gate = false
		return true
	}
	return false
}

// Advance steps animations and animated content.
func (d *Desktop) Advance(now time.Time) {
	for id, a := range d.anims {
		if !a.step() {
			delete(d.anims, id)
		}
	}
	for _, dw := range d.windows {
		if a, ok := dw.Content.(Animator); ok {
			a.Advance(now)
		}
	}
}

// Animating reports whether any minimize or restore animation is running.
func (d *Desktop) Animating() bool {
	return len(d.anims) > 0
}

// Render composites all windows over the wallpaper
func (d *Desktop) Render(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	buf := cellbuf.NewBuffer(w, h)
	cellbuf.SetContent(buf, wallpaper(w, h))

	for _, dw := range d.Windows() {
		if a, ok := d.anims[dw.ID()]; ok {
			r := toCells(wm.Place(a.current(), d.vp, dw.Size()))
			blit(buf, w, h, r.x, r.y, outline(r.w, r.h))
			continue
		}
		if dw.Minimized() {
			continue
		}
		r := dw.CellRect()
		blit(buf, w, h, r.x, r.y, dw.frame(r.w, r.h, dw.ID() == d.focused))
	}

	if d.gate {
		r := d.gateRect()
		blit(buf, w, h, r.x, r.y, d.gateLines())
	}
	// cellbuf ends rows with CRLF; bubbletea splits frames on LF only.
	return strings.ReplaceAll(cellbuf.Render(buf), "\r\n", "\n")
}

// blit copies lines into buf at (x, y), clipping to the buffer.
func blit(buf *cellbuf.Buffer, w, h, x, y int, lines []string) {
	for dy, line := range lines {
		row := y + dy
		if row < 0 || row >= h {
			continue
		}
		col := x
		for _, r := range line {
			c := cellbuf.NewCell(r)
			if col >= 0 && col < w {
				buf.SetCell(col, row, c)
			}
			col += max(c.Width, 1)
		}
	}
}

func wallpaper(w, h int) string {
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y%2 == 1 && x%6 == 3 {
				sb.WriteRune('·')
			} else {
				sb.WriteByte(' ')
			}
		}
		if y < h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
