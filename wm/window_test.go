package wm

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWindow(t *testing.T, scope *Scope, cfg Config) *Window {
	t.Helper()
	w := NewWindow(scope, cfg)
	w.Mount()
	w.SetViewport(Size{Width: 800, Height: 600})
	w.SetSize(Size{Width: 200, Height: 100})
	return w
}

func TestNewWindowOutsideScopePanics(t *testing.T) {
	for name, scope := range map[string]*Scope{
		"nil":     nil,
		"empty":   {},
		"no dock": {Stack: NewStackRegistry(0), Capture: &Capture{}},
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				err, ok := r.(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, ErrNoScope))
			}()
			NewWindow(scope, Config{Title: "x"})
		})
	}
}

func TestWindowIDsAreUnique(t *testing.T) {
	scope := NewScope(Options{})
	a := NewWindow(scope, Config{})
	b := NewWindow(scope, Config{})
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEmpty(t, a.ID())
}

func TestWindowMountRegisters(t *testing.T) {
	scope := NewScope(Options{})
	w := NewWindow(scope, Config{Title: "t"})
	assert.Equal(t, 0, scope.Stack.Len())
	w.Mount()
	w.Mount()
	assert.Equal(t, []WindowID{w.ID()}, scope.Stack.Order())
	w.Unmount()
	assert.Equal(t, 0, scope.Stack.Len())
}

func TestWindowDragClampFloating(t *testing.T) {
	scope := NewScope(Options{})
	w := newTestWindow(t, scope, Config{Floating: true})

	require.True(t, w.BeginDrag(Position{X: 10, Y: 10}))
	assert.Equal(t, Dragging, w.State())
	assert.Same(t, w, scope.Capture.Holder())

	w.DragTo(Position{X: 1010, Y: 10})
	assert.Equal(t, Position{X: 300, Y: 0}, w.LivePosition())
	assert.Equal(t, Position{}, w.Position(), "committed position changes only on release")

	w.EndDrag()
	assert.Equal(t, Normal, w.State())
	assert.Equal(t, Position{X: 300, Y: 0}, w.Position())
	assert.Nil(t, scope.Capture.Holder())
}

func TestWindowDragClampAnchored(t *testing.T) {
	scope := NewScope(Options{})
	w := newTestWindow(t, scope, Config{InitialPosition: Position{X: 50, Y: 50}})

	w.BeginDrag(Position{})
	w.DragTo(Position{X: -500, Y: 900})
	w.EndDrag()
	assert.Equal(t, Position{X: 0, Y: 500}, w.Position())
}

func TestWindowDragUnmeasured(t *testing.T) {
	scope := NewScope(Options{})
	w := NewWindow(scope, Config{Floating: true})
	w.Mount()
	w.SetViewport(Size{Width: math.NaN(), Height: -3})
	w.SetSize(Size{Width: math.Inf(1), Height: 10})

	w.BeginDrag(Position{})
	w.DragTo(Position{X: 100, Y: math.NaN()})
	w.EndDrag()
	p := w.Position()
	assert.Equal(t, Position{}, p)
	assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
}

func TestWindowDragDelta(t *testing.T) {
	scope := NewScope(Options{})
	w := newTestWindow(t, scope, Config{Floating: true, InitialPosition: Position{X: -20, Y: 5}})

	w.BeginDrag(Position{X: 100, Y: 100})
	w.DragTo(Position{X: 130, Y: 90})
	w.DragTo(Position{X: 140, Y: 80})
	w.EndDrag()
	assert.Equal(t, Position{X: 20, Y: -15}, w.Position())
}

func TestWindowMinimizeRestore(t *testing.T) {
	scope := NewScope(Options{BaseZIndex: 20})
	a := newTestWindow(t, scope, Config{Title: "a"})
	b := newTestWindow(t, scope, Config{Title: "b", DockLabel: "Bee"})
	c := newTestWindow(t, scope, Config{Title: "c"})

	za, zb, zc := a.ZIndex(), b.ZIndex(), c.ZIndex()
	assert.Equal(t, []int{20, 21, 22}, []int{za, zb, zc})

	b.Minimize()
	assert.Equal(t, Minimized, b.State())
	assert.False(t, b.Interactive())
	assert.Equal(t, zb, b.ZIndex())

	entries := collect(scope.Dock)
	require.Len(t, entries, 1)
	assert.Equal(t, b.ID(), entries[0].ID)
	assert.Equal(t, "Bee", entries[0].Label)

	// Minimized windows ignore the pointer.
	assert.False(t, b.BeginDrag(Position{}))
	b.PointerDown()
	assert.Equal(t, zb, b.ZIndex())

	a.Minimize()
	entries[0].Restore()
	assert.Equal(t, Normal, b.State())
	_, docked := scope.Dock.Lookup(b.ID())
	assert.False(t, docked)
	_, docked = scope.Dock.Lookup(a.ID())
	assert.True(t, docked, "restoring b leaves a's entry")
	assert.Equal(t, za, a.ZIndex())
	assert.Equal(t, zc, c.ZIndex())
}

func TestWindowMinimizeEndsDrag(t *testing.T) {
	scope := NewScope(Options{})
	w := newTestWindow(t, scope, Config{Floating: true})
	w.BeginDrag(Position{})
	w.DragTo(Position{X: 40})
	w.Minimize()

	assert.False(t, w.Dragging())
	assert.Nil(t, scope.Capture.Holder())
	assert.Equal(t, Position{X: 40}, w.Position())
	w.DragTo(Position{X: 80})
	assert.Equal(t, Position{X: 40}, w.Position())
}

func TestWindowRemountWhileMinimized(t *testing.T) {
	scope := NewScope(Options{})
	w := newTestWindow(t, scope, Config{Title: "w"})
	w.Minimize()
	w.Unmount()
	assert.Equal(t, 0, scope.Dock.Len())

	w.Mount()
	assert.True(t, w.Minimized())
	e, docked := scope.Dock.Lookup(w.ID())
	require.True(t, docked, "a remounted minimized window is docked again")
	e.Restore()
	assert.True(t, w.Interactive())
	assert.Equal(t, 0, scope.Dock.Len())
}

func TestWindowDockEntryMatchesMinimized(t *testing.T) {
	scope := NewScope(Options{})
	w := newTestWindow(t, scope, Config{})
	check := func() {
		_, docked := scope.Dock.Lookup(w.ID())
		assert.Equal(t, w.Minimized(), docked)
	}
	check()
	w.Minimize()
	check()
	w.Minimize()
	assert.Equal(t, 1, scope.Dock.Len())
	w.SetDockLabel("renamed")
	e, _ := scope.Dock.Lookup(w.ID())
	assert.Equal(t, "renamed", e.Label)
	w.Restore()
	check()
	w.Minimize()
	w.Unmount()
	assert.Equal(t, 0, scope.Dock.Len())
}

func TestWindowMaximizeRoundTrip(t *testing.T) {
	scope := NewScope(Options{})
	start := Position{X: 123.5, Y: -42}
	w := newTestWindow(t, scope, Config{Floating: true, InitialPosition: start})

	w.ToggleMaximize()
	assert.Equal(t, Maximized, w.State())
	assert.Equal(t, Position{}, w.LivePosition())
	assert.Equal(t, Transform{Scale: 1}, w.Transform())
	assert.False(t, w.BeginDrag(Position{}), "maximized windows do not drag")

	w.ToggleMaximize()
	assert.Equal(t, Normal, w.State())
	assert.Equal(t, start, w.Position())
}

func TestWindowMaximizeThenMinimize(t *testing.T) {
	scope := NewScope(Options{})
	w := newTestWindow(t, scope, Config{InitialPosition: Position{X: 5, Y: 5}})
	w.ToggleMaximize()
	w.Minimize()
	w.ToggleMaximize()
	assert.Equal(t, Minimized, w.State(), "toggle is ignored while minimized")
	w.Restore()
	assert.Equal(t, Maximized, w.State())
	w.ToggleMaximize()
	assert.Equal(t, Position{X: 5, Y: 5}, w.Position())
}

func TestWindowInitialPositionPrecedence(t *testing.T) {
	scope := NewScope(Options{})
	w := newTestWindow(t, scope, Config{Floating: true})

	w.SetInitialPosition(Position{X: 10, Y: 10})
	assert.Equal(t, Position{X: 10, Y: 10}, w.Position())

	w.BeginDrag(Position{})
	w.DragTo(Position{X: 5})
	w.EndDrag()
	w.SetInitialPosition(Position{X: -99, Y: -99})
	assert.Equal(t, Position{X: 15, Y: 10}, w.Position(), "user placement wins")
}

func TestWindowInitialPositionIgnoredWhileMinimized(t *testing.T) {
	scope := NewScope(Options{})
	w := newTestWindow(t, scope, Config{})
	w.Minimize()
	w.SetInitialPosition(Position{X: 3})
	assert.Equal(t, Position{}, w.Position())
}

func TestWindowResetPosition(t *testing.T) {
	scope := NewScope(Options{})
	w := newTestWindow(t, scope, Config{Floating: true, InitialPosition: Position{X: 4, Y: 2}})

	w.BeginDrag(Position{})
	w.DragTo(Position{X: 50, Y: 50})
	w.EndDrag()
	w.ToggleMaximize()
	require.True(t, w.Maximized())

	w.ResetPosition()
	assert.False(t, w.Maximized())
	assert.False(t, w.UserMoved())
	assert.Equal(t, Position{X: 4, Y: 2}, w.Position())

	w.SetInitialPosition(Position{X: 7})
	assert.Equal(t, Position{X: 7}, w.Position(), "automatic layout applies again")
}

func TestWindowRequestClose(t *testing.T) {
	scope := NewScope(Options{})
	inert := newTestWindow(t, scope, Config{})
	assert.False(t, inert.RequestClose())
	assert.True(t, inert.Mounted())

	closed := 0
	w := newTestWindow(t, scope, Config{OnCloseRequest: func() { closed++ }})
	w.Minimize()
	assert.True(t, w.RequestClose())
	assert.Equal(t, 1, closed)
	assert.True(t, w.Mounted(), "close requests do not unmount")
}

func TestWindowPointerDownRaises(t *testing.T) {
	scope := NewScope(Options{BaseZIndex: 20})
	a := newTestWindow(t, scope, Config{})
	b := newTestWindow(t, scope, Config{})
	a.PointerDown()
	assert.Equal(t, 21, a.ZIndex())
	assert.Equal(t, 20, b.ZIndex())
	b.BeginDrag(Position{})
	assert.Equal(t, 21, b.ZIndex())
}

func TestWindowTransitions(t *testing.T) {
	scope := NewScope(Options{})
	var seen [][2]State
	w := newTestWindow(t, scope, Config{OnTransition: func(_ *Window, from, to State) {
		seen = append(seen, [2]State{from, to})
	}})
	w.BeginDrag(Position{})
	w.EndDrag()
	w.EndDrag()
	w.ToggleMaximize()
	w.Minimize()
	w.Restore()
	assert.Equal(t, [][2]State{
		{Normal, Dragging},
		{Dragging, Normal},
		{Normal, Maximized},
		{Maximized, Minimized},
		{Minimized, Maximized},
	}, seen)
}

func TestWindowMinimizedTransform(t *testing.T) {
	scope := NewScope(Options{})
	w := newTestWindow(t, scope, Config{Floating: true, InitialPosition: Position{X: 10, Y: 20}})
	w.Minimize()
	tr := w.Transform()
	// 800/2 - 200/2 - 24 = 276, 600/2 - 100/2 - 24 = 226
	assert.Equal(t, Transform{X: 286, Y: 246, Scale: DefaultMinimizeScale, Centered: true}, tr)

	mid := Lerp(w.NormalTransform(), tr, 0.5)
	assert.InDelta(t, 148, mid.X, 1e-9)
	assert.InDelta(t, 0.55, mid.Scale, 1e-9)
}
