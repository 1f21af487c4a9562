package wm

import "fmt"

// State is the interaction state of a Window.
type State int

const (
	Normal State = iota
	Dragging
	Minimized
	Maximized
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Dragging:
		return "dragging"
	case Minimized:
		return "minimized"
	case Maximized:
		return "maximized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config describes a window at construction.
type Config struct {
	Title           string
	DockLabel       string
	InitialPosition Position
	// Floating windows are anchored at the viewport center; others at the
	// top-left corner.
	Floating bool
	// NormalSize and MaximizedSize are rendering hints for the host. The
	// window never interprets them.
	NormalSize    Size
	MaximizedSize Size
	// OnCloseRequest is called when the close control is activated. If nil
	// the control does nothing. The window is not unmounted either way.
	OnCloseRequest func()
	// OnTransition, if set, is called after every state change.
	OnTransition func(w *Window, from, to State)
}

// Window is one draggable, minimizable, maximizable panel.
//
// Its position has two tiers. The committed position is the source of truth
// at rest. While a drag is in progress the clamped pointer position is kept
// separately as the live position and only used for rendering; it is
// committed on release.
type Window struct {
	id    WindowID
	scope *Scope
	cfg   Config

	mounted   bool
	position  Position // committed
	live      Position // mid-drag
	saved     Position // pre-maximize
	dragging  bool
	minimized bool
	maximized bool
	userMoved bool

	dragStart  Position // pointer at drag start
	dragOrigin Position // committed position at drag start

	viewport Size
	size     Size // last measured rendered size
}

// NewWindow creates a window in scope. It panics with an error wrapping
// ErrNoScope if scope is nil or incomplete.
func NewWindow(scope *Scope, cfg Config) *Window {
	if !scope.valid() {
		panic(fmt.Errorf("%w: NewWindow(%q)", ErrNoScope, cfg.Title))
	}
	if cfg.DockLabel == "" {
		cfg.DockLabel = cfg.Title
	}
	return &Window{
		id:       NewWindowID(),
		scope:    scope,
		cfg:      cfg,
		position: cfg.InitialPosition,
		live:     cfg.InitialPosition,
		saved:    cfg.InitialPosition,
	}
}

// Mount registers the window with the stack, and with the dock if it was
// minimized when last unmounted.
func (w *Window) Mount() {
	if w.mounted {
		return
	}
	w.mounted = true
	w.scope.Stack.Register(w.id)
	if w.minimized {
		w.scope.Dock.Register(w.dockEntry())
	}
}

// Unmount ends any drag and removes the window from the stack and the dock.
func (w *Window) Unmount() {
	if !w.mounted {
		return
	}
	w.endDrag()
	w.scope.Stack.Unregister(w.id)
	w.scope.Dock.Unregister(w.id)
	w.mounted = false
}

func (w *Window) ID() WindowID      { return w.id }
func (w *Window) Title() string     { return w.cfg.Title }
func (w *Window) DockLabel() string { return w.cfg.DockLabel }
func (w *Window) Floating() bool    { return w.cfg.Floating }
func (w *Window) Mounted() bool     { return w.mounted }
func (w *Window) Dragging() bool    { return w.dragging }
func (w *Window) Minimized() bool   { return w.minimized }
func (w *Window) Maximized() bool   { return w.maximized }

// UserMoved reports whether the user has repositioned the window by dragging
// or maximizing it.
func (w *Window) UserMoved() bool { return w.userMoved }

// Interactive reports whether the window receives pointer input.
// Minimized windows are transparent to the pointer.
func (w *Window) Interactive() bool { return w.mounted && !w.minimized }

// State returns the current state. A minimized window reports Minimized even
// if it was maximized before minimizing.
func (w *Window) State() State {
	switch {
	case w.minimized:
		return Minimized
	case w.dragging:
		return Dragging
	case w.maximized:
		return Maximized
	default:
		return Normal
	}
}

// Position returns the committed position.
func (w *Window) Position() Position { return w.position }

// LivePosition returns the position to render: the live drag position while
// dragging, the origin while maximized, the committed position otherwise.
func (w *Window) LivePosition() Position {
	switch {
	case w.maximized:
		return Position{}
	case w.dragging:
		return w.live
	default:
		return w.position
	}
}

// ZIndex returns the window's stacking depth.
func (w *Window) ZIndex() int {
	return w.scope.Stack.ZIndex(w.id)
}

// SizeHint returns the configured size for the current maximize state.
func (w *Window) SizeHint() Size {
	if w.maximized {
		return w.cfg.MaximizedSize
	}
	return w.cfg.NormalSize
}

// SetViewport records the viewport size.
func (w *Window) SetViewport(vp Size) {
	w.viewport = Size{Width: measure(vp.Width), Height: measure(vp.Height)}
}

// SetSize records the window's rendered size.
func (w *Window) SetSize(sz Size) {
	w.size = Size{Width: measure(sz.Width), Height: measure(sz.Height)}
}

// Viewport returns the last recorded viewport size.
func (w *Window) Viewport() Size { return w.viewport }

// Size returns the last recorded window size.
func (w *Window) Size() Size { return w.size }

// Bounds returns the drag clamp bounds from the last measurements.
func (w *Window) Bounds() Bounds {
	return DragBounds(w.viewport, w.size, w.cfg.Floating)
}

// SetInitialPosition updates the automatic layout position. It only moves the
// window if the user has not repositioned it and it is neither minimized nor
// maximized.
func (w *Window) SetInitialPosition(p Position) {
	w.cfg.InitialPosition = p
	if w.userMoved || w.maximized || w.minimized {
		return
	}
	w.position = p
	w.live = p
}

// ResetPosition forgets any user placement and returns the window to its
// automatic position, leaving maximized state. Minimized windows are left
// alone.
func (w *Window) ResetPosition() {
	if w.minimized || !w.mounted {
		return
	}
	w.transition(func() {
		w.endDrag()
		w.userMoved = false
		w.maximized = false
		w.position = w.cfg.InitialPosition
		w.live = w.position
		w.saved = w.position
	})
}

// SetDockLabel changes the dock label, updating the dock entry in place if
// the window is minimized.
func (w *Window) SetDockLabel(label string) {
	w.cfg.DockLabel = label
	if w.minimized {
		w.scope.Dock.Register(w.dockEntry())
	}
}

// PointerDown raises the window. It is safe to call for every press on the
// window, whether or not it starts a drag.
func (w *Window) PointerDown() {
	if !w.Interactive() {
		return
	}
	w.scope.Stack.BringToFront(w.id)
}

// BeginDrag starts dragging from a press on the title bar at pointer. It
// raises the window either way and reports whether a drag started. Minimized
// and maximized windows do not drag.
func (w *Window) BeginDrag(pointer Position) bool {
	if !w.Interactive() {
		return false
	}
	w.scope.Stack.BringToFront(w.id)
	if w.maximized || w.dragging {
		return false
	}
	w.transition(func() {
		w.userMoved = true
		w.dragging = true
		w.dragStart = pointer
		w.dragOrigin = w.position
		w.live = w.position
		w.scope.Capture.acquire(w)
	})
	return true
}

// DragTo moves the live position to follow pointer, clamped to the viewport.
func (w *Window) DragTo(pointer Position) {
	if !w.dragging {
		return
	}
	candidate := w.dragOrigin.Add(pointer.Sub(w.dragStart))
	w.live = w.Bounds().Clamp(candidate)
}

// EndDrag commits the live position. Losing the pointer (focus loss, a
// cancelled gesture) should be reported through EndDrag as well.
func (w *Window) EndDrag() {
	if !w.dragging {
		return
	}
	w.transition(w.endDrag)
}

func (w *Window) endDrag() {
	if !w.dragging {
		return
	}
	w.dragging = false
	w.position = w.live
	w.scope.Capture.release(w)
}

// Minimize hides the window and docks it.
func (w *Window) Minimize() {
	if w.minimized || !w.mounted {
		return
	}
	w.transition(func() {
		w.endDrag()
		w.minimized = true
		w.scope.Dock.Register(w.dockEntry())
	})
}

// Restore undocks a minimized window.
func (w *Window) Restore() {
	if !w.minimized {
		return
	}
	w.transition(func() {
		w.minimized = false
		w.scope.Dock.Unregister(w.id)
	})
}

// ToggleMaximize maximizes the window, or restores the position saved when
// it was maximized.
func (w *Window) ToggleMaximize() {
	if w.minimized || !w.mounted {
		return
	}
	w.transition(func() {
		w.endDrag()
		w.userMoved = true
		if w.maximized {
			w.maximized = false
			w.position = w.saved
		} else {
			w.maximized = true
			w.saved = w.position
			w.position = Position{}
		}
		w.live = w.position
	})
}

// RequestClose asks the owner to close the window and reports whether
// anyone was listening.
func (w *Window) RequestClose() bool {
	if w.cfg.OnCloseRequest == nil {
		return false
	}
	w.cfg.OnCloseRequest()
	return true
}

// Transform returns the render transform for the current state.
func (w *Window) Transform() Transform {
	switch {
	case w.minimized:
		return w.MinimizedTransform()
	case w.maximized:
		return Transform{Scale: 1}
	default:
		p := w.LivePosition()
		return Transform{X: p.X, Y: p.Y, Scale: 1, Centered: w.cfg.Floating}
	}
}

// NormalTransform is the transform the window has when not minimized.
func (w *Window) NormalTransform() Transform {
	if w.maximized {
		return Transform{Scale: 1}
	}
	return Transform{X: w.position.X, Y: w.position.Y, Scale: 1, Centered: w.cfg.Floating}
}

// MinimizedTransform is the shrink-toward-the-dock target: the committed
// position pushed toward the bottom-right corner, less the inset, scaled
// down.
func (w *Window) MinimizedTransform() Transform {
	inset := w.scope.minimizeInset
	offX := w.viewport.Width/2 - w.size.Width/2 - inset
	offY := w.viewport.Height/2 - w.size.Height/2 - inset
	return Transform{
		X:        w.position.X + offX,
		Y:        w.position.Y + offY,
		Scale:    w.scope.minimizeScale,
		Centered: w.cfg.Floating,
	}
}

// Rect places the window in viewport coordinates using its current
// transform.
func (w *Window) Rect() Rect {
	return Place(w.Transform(), w.viewport, w.size)
}

func (w *Window) dockEntry() DockEntry {
	return DockEntry{ID: w.id, Label: w.cfg.DockLabel, OnRestore: w.Restore}
}

func (w *Window) transition(fn func()) {
	from := w.State()
	fn()
	if to := w.State(); to != from && w.cfg.OnTransition != nil {
		w.cfg.OnTransition(w, from, to)
	}
}
