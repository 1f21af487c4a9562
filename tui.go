package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/termfolio/termfolio/blogapi"
	"github.com/termfolio/termfolio/wm"
)

// Model holds all state for the TUI.
type Model struct {
	cfg    Config
	source *PostSource

	// Debug log (shared with the debug window)
	logs *logRing

	desk *Desktop
	nav  *NavPane

	// Help
	help help.Model
	keys KeyMap

	// Terminal dimensions
	width  int
	height int
}

// NewModel creates the desktop and mounts the decorative windows.
func NewModel(cfg Config, source *PostSource, logs *logRing) Model {
	if logs == nil {
		logs = &logRing{}
	}
	if cfg.Accent != "" {
		AccentColor = lipgloss.Color(cfg.Accent)
	}
	m := Model{
		cfg:    cfg,
		source: source,
		logs:   logs,
		help:   help.New(),
		keys:   cfg.ToKeyMap(),
		width:  80,
		height: 24,
	}
	m.desk = NewDesktop(wm.Options{BaseZIndex: cfg.BaseZIndex}, cfg.DenyMessage, logs.addf)
	m.desk.Tray.DotStyle = m.desk.Tray.DotStyle.Foreground(AccentColor)
	m.desk.Resize(m.viewport())
	m.mountDesktop()
	return m
}

func (l *logRing) addf(format string, args ...any) {
	l.add(fmt.Sprintf(format, args...))
}

func (m *Model) log(format string, args ...any) {
	m.logs.addf(format, args...)
}

// mountDesktop opens the fixed set of decorative windows.
func (m *Model) mountDesktop() {
	m.desk.Open(RoleBGM, "BGM", NewBGMPane("very nice music", m.cfg.BGM, m.keys))
	m.nav = NewNavPane("view me", m.keys)
	m.nav.OnSelect = m.navigate
	m.desk.Open(RoleNav, "View Me", m.nav)
	m.desk.Open(RoleIntro, "Terminal", NewIntroPane(m.cfg.Handle, m.cfg.Headline, m.cfg.Phrases))
}

// Desktop exposes the window manager, for tests.
func (m Model) Desktop() *Desktop {
	return m.desk
}

// viewport is the screen area above the dock tray and help line.
func (m Model) viewport() wm.Size {
	h := m.height - 1 - m.helpHeight()
	return wm.Size{Width: float64(m.width), Height: float64(max(h, 0))}
}

func (m Model) helpHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	rows := 1
	for _, col := range m.keys.FullHelp() {
		rows = max(rows, len(col))
	}
	return rows
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(nextFrame(), m.pendingCmds())
}

// pendingCmds collects the fetches windows have queued. Input to one window
// can open others, so every window is asked.
func (m Model) pendingCmds() tea.Cmd {
	var cmds []tea.Cmd
	for _, dw := range m.desk.Windows() {
		if c, ok := dw.Content.(Commander); ok {
			if cmd := c.Cmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.desk.Resize(m.viewport())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.BlurMsg:
		// Losing the terminal's focus ends a drag like a release would.
		if holder := m.desk.Scope().Capture.Holder(); holder != nil {
			m.log("blur: ending drag")
			holder.EndDrag()
		}
		return m, nil

	case frameMsg:
		m.desk.Advance(time.Time(msg))
		return m, nextFrame()

	case postsLoadedMsg:
		if msg.target.Loaded(msg) {
			if msg.err != nil {
				m.log("posts: %v", msg.err)
			} else {
				m.log("posts: %d loaded (cached=%v)", len(msg.posts), msg.cached)
			}
		}
		return m, nil

	case postLoadedMsg:
		return m.handlePost(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// The close gate is modal
	if m.desk.GateOpen() {
		switch {
		case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.CloseWindow), msg.Type == tea.KeySpace:
			m.desk.DismissGate()
		}
		return m, nil
	}

	// Global shortcuts (always work regardless of focus)
	switch {
	case key.Matches(msg, m.keys.ToggleDebug):
		m.toggleDebug()
		return m, nil

	case key.Matches(msg, m.keys.CommandPalette):
		m.togglePalette()
		return m, nil

	case key.Matches(msg, m.keys.CycleWindow):
		m.desk.FocusNext()
		return m, nil

	case key.Matches(msg, m.keys.RestoreLast):
		m.desk.RestoreLast()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.desk.Resize(m.viewport())
		return m, nil
	}

	fw := m.desk.Focused()
	if fw == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.CloseWindow):
		fw.RequestClose()
		return m, nil
	case key.Matches(msg, m.keys.MinimizeWindow):
		fw.Minimize()
		return m, nil
	case key.Matches(msg, m.keys.MaximizeWindow):
		fw.ToggleMaximize()
		return m, nil
	}

	fw.Content.HandleKey(msg)
	return m.afterInput(fw)
}

// afterInput runs palette selections and collects queued commands.
func (m Model) afterInput(dw *DeskWindow) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if p, ok := dw.Content.(*CommandPalette); ok && p.SelectedAction != "" {
		action := p.SelectedAction
		p.SelectedAction = ""
		m.desk.Close(dw.ID())
		cmd = m.runCommand(action)
	}
	return m, tea.Batch(cmd, m.pendingCmds())
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	pointer := wm.Position{X: float64(msg.X), Y: float64(msg.Y)}

	// A dragging window holds the pointer until release
	if holder := m.desk.Scope().Capture.Holder(); holder != nil {
		switch msg.Action {
		case tea.MouseActionMotion:
			holder.DragTo(pointer)
		case tea.MouseActionRelease:
			holder.EndDrag()
		}
		return m, nil
	}

	vp := m.viewport()
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if m.desk.GateOpen() {
			m.desk.GateClick(msg.X, msg.Y)
			return m, nil
		}
		if msg.Y == int(vp.Height) {
			if m.desk.Tray.Click(m.width, msg.X) {
				m.log("tray: restore at column %d", msg.X)
			}
			return m, nil
		}
	}
	if m.desk.GateOpen() {
		return m, nil
	}

	dw := m.desk.WindowAt(msg.X, msg.Y)
	if dw == nil {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.desk.Unfocus()
		}
		return m, nil
	}

	r := dw.CellRect()
	relX, relY := msg.X-r.x-1, msg.Y-r.y-1

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		dw.Content.HandleMouse(relX, relY, msg)
		return m.afterInput(dw)
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch dw.Zone(msg.X, msg.Y) {
	case ZoneTitleBar:
		m.desk.Focus(dw.ID())
		dw.BeginDrag(pointer)
		return m, nil
	case ZoneClose:
		dw.PointerDown()
		dw.RequestClose()
		return m, nil
	case ZoneMinimize:
		dw.PointerDown()
		dw.Minimize()
		return m, nil
	case ZoneMaximize:
		m.desk.Focus(dw.ID())
		dw.ToggleMaximize()
		return m, nil
	case ZoneContent:
		m.desk.Focus(dw.ID())
		dw.Content.HandleMouse(relX, relY, msg)
		return m.afterInput(dw)
	default:
		m.desk.Focus(dw.ID())
		return m, nil
	}
}

func (m *Model) navigate(target NavTarget) {
	switch target {
	case NavAbout:
		m.openAbout()
	case NavPosts:
		m.openPosts()
	case NavGitHub:
		m.nav.SetStatus(m.cfg.GitHubURL)
		m.log("github: %s", m.cfg.GitHubURL)
	}
}

// openSingleton focuses an existing window with the role, restoring it if
// docked, and reports whether there was one.
func (m *Model) openSingleton(role Role) bool {
	dw := m.desk.Find(role)
	if dw == nil {
		return false
	}
	dw.Restore()
	m.desk.Focus(dw.ID())
	return true
}

func (m *Model) openAbout() {
	if m.openSingleton(RoleAbout) {
		return
	}
	m.desk.Open(RoleAbout, "About", NewDocPane("about me", aboutMarkdown, m.keys))
}

func (m *Model) openPosts() {
	if m.openSingleton(RolePosts) {
		return
	}
	posts := NewPostsPane(m.source, m.keys)
	posts.OnOpen = m.openPost
	m.desk.Open(RolePosts, "Posts", posts)
}

// openPost shows the list copy of a post at once and refreshes it from the
// source.
func (m *Model) openPost(post blogapi.Post) {
	for _, dw := range m.desk.Windows() {
		if p, ok := dw.Content.(*postPane); ok && p.id == post.ID {
			dw.Restore()
			m.desk.Focus(dw.ID())
			return
		}
	}
	p := newPostPane(post, m.keys)
	p.pending = fetchPost(m.source, p.DocPane, post.ID)
	m.desk.Open(RolePost, fmt.Sprintf("Post #%d", post.ID), p)
}

func (m Model) handlePost(msg postLoadedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err != nil:
		msg.target.SetStatus("error: " + msg.err.Error())
		m.log("post %d: %v", msg.id, msg.err)
		return m, nil
	case msg.post == nil:
		msg.target.SetStatus("post not found")
		m.log("post %d: not found", msg.id)
		return m, nil
	}
	title := msg.post.Title
	if msg.cached {
		title += " (cached)"
	}
	msg.target.SetMarkdown(title, postMarkdown(*msg.post))
	return m, nil
}

// postPane is a DocPane for one post, with the refresh fetch it queued.
type postPane struct {
	*DocPane
	id      int
	pending tea.Cmd
}

func newPostPane(post blogapi.Post, keys KeyMap) *postPane {
	return &postPane{DocPane: NewDocPane(post.Title, postMarkdown(post), keys), id: post.ID}
}

func (p *postPane) Cmd() tea.Cmd {
	cmd := p.pending
	p.pending = nil
	return cmd
}

func postMarkdown(post blogapi.Post) string {
	var sb strings.Builder
	sb.WriteString("# " + post.Title + "\n\n")
	var meta []string
	if post.CreatedAt != nil {
		meta = append(meta, post.CreatedAt.Format("2006-01-02"))
	}
	for _, t := range post.Tags {
		meta = append(meta, "#"+t)
	}
	if len(meta) > 0 {
		sb.WriteString("*" + strings.Join(meta, " · ") + "*\n\n")
	}
	sb.WriteString(post.Content)
	return sb.String()
}

func (m *Model) toggleDebug() {
	if dw := m.desk.Find(RoleDebug); dw != nil {
		m.desk.Close(dw.ID())
		return
	}
	m.desk.Open(RoleDebug, "Debug", NewDebugPane(m.logs))
}

func (m *Model) togglePalette() {
	if dw := m.desk.Find(RolePalette); dw != nil {
		m.desk.Close(dw.ID())
		return
	}
	m.desk.Open(RolePalette, "Commands", NewCommandPalette(DefaultCommands, m.keys))
}

func (m *Model) runCommand(name string) tea.Cmd {
	m.log("command: %s", name)
	switch name {
	case CmdPosts:
		m.openPosts()
	case CmdAbout:
		m.openAbout()
	case CmdDebug:
		m.toggleDebug()
	case CmdMinimizeAll:
		m.desk.MinimizeAll()
	case CmdRestoreAll:
		m.desk.RestoreAll()
	case CmdResetLayout:
		m.desk.ResetLayout()
	case CmdQuit:
		return tea.Quit
	}
	return nil
}

func (m Model) View() string {
	w, h := m.width, m.height
	if w < 20 || h < 5 {
		return "termfolio needs a larger terminal\n"
	}
	vp := m.viewport()

	base := m.desk.Render(w, int(vp.Height))

	tray := m.desk.Tray.Render(w)
	if tray == "" {
		tray = strings.Repeat(" ", w)
	}

	m.help.Width = w
	return base + "\n" + tray + "\n" + m.help.View(m.keys)
}
