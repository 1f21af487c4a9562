// Package wm implements floating windows that can be dragged, minimized to a
// dock and maximized, plus the registries that arbitrate stacking order and
// docking between them.
//
// A group of windows shares one Scope. Windows never reference each other;
// the scope's StackRegistry, DockRegistry and pointer Capture are the only
// shared state. Nothing in the package is safe for concurrent use: every
// call is expected from a single UI event loop.
package wm

import "errors"

// ErrNoScope is the panic value (wrapped) raised when a window is created
// without a registry scope. That is always a wiring bug in the caller.
var ErrNoScope = errors.New("wm: window used outside a registry scope")

// Default minimize animation target parameters.
const (
	DefaultMinimizeInset = 24
	DefaultMinimizeScale = 0.1
)

// Options configures a Scope.
type Options struct {
	BaseZIndex    int
	MinimizeInset float64 // distance of the minimize target from the viewport corner
	MinimizeScale float64 // scale applied to minimized windows
}

// Scope groups the shared services for one set of windows.
type Scope struct {
	Stack   *StackRegistry
	Dock    *DockRegistry
	Capture *Capture

	minimizeInset float64
	minimizeScale float64
}

// NewScope creates a scope with fresh registries. Zero option fields take
// their defaults.
func NewScope(opts Options) *Scope {
	base := opts.BaseZIndex
	if base == 0 {
		base = DefaultBaseZIndex
	}
	inset := opts.MinimizeInset
	if inset == 0 {
		inset = DefaultMinimizeInset
	}
	scale := opts.MinimizeScale
	if scale == 0 {
		scale = DefaultMinimizeScale
	}
	return &Scope{
		Stack:         NewStackRegistry(base),
		Dock:          NewDockRegistry(),
		Capture:       &Capture{},
		minimizeInset: inset,
		minimizeScale: scale,
	}
}

func (s *Scope) valid() bool {
	return s != nil && s.Stack != nil && s.Dock != nil && s.Capture != nil
}

// Capture records which window currently owns the pointer. A dragging window
// holds it until the drag ends; the host routes every move and release to
// the holder instead of hit-testing.
type Capture struct {
	holder *Window
}

// Holder returns the window holding the pointer, or nil.
func (c *Capture) Holder() *Window {
	return c.holder
}

func (c *Capture) acquire(w *Window) {
	c.holder = w
}

func (c *Capture) release(w *Window) {
	if c.holder == w {
		c.holder = nil
	}
}
