package wm

import "slices"

// DefaultBaseZIndex is the depth of the back-most window.
const DefaultBaseZIndex = 20

// StackRegistry tracks the front-to-back order of live windows. The last id
// in the order is the front-most. It is not safe for concurrent use; all
// calls are expected from the UI event loop.
type StackRegistry struct {
	base      int
	order     []WindowID
	listeners listeners
}

// NewStackRegistry creates an empty registry whose back-most window sits at
// base.
func NewStackRegistry(base int) *StackRegistry {
	return &StackRegistry{base: base}
}

// Base returns the depth of the back-most window.
func (s *StackRegistry) Base() int {
	return s.base
}

// Register appends id if it is not already present.
func (s *StackRegistry) Register(id WindowID) {
	if slices.Contains(s.order, id) {
		return
	}
	s.order = append(s.order, id)
	s.listeners.notify()
}

// Unregister removes id. Unknown ids are ignored.
func (s *StackRegistry) Unregister(id WindowID) {
	i := slices.Index(s.order, id)
	if i < 0 {
		return
	}
	s.order = slices.Delete(s.order, i, i+1)
	s.listeners.notify()
}

// BringToFront moves id to the front, registering it if needed. Calling it
// for the window already in front changes nothing.
func (s *StackRegistry) BringToFront(id WindowID) {
	i := slices.Index(s.order, id)
	switch {
	case i < 0:
		s.order = append(s.order, id)
	case i == len(s.order)-1:
		return
	default:
		s.order = append(slices.Delete(s.order, i, i+1), id)
	}
	s.listeners.notify()
}

// ZIndex returns base plus the position of id in the order, or base for an
// unknown id.
func (s *StackRegistry) ZIndex(id WindowID) int {
	i := slices.Index(s.order, id)
	if i < 0 {
		return s.base
	}
	return s.base + i
}

// Order returns a copy of the order, back-most first.
func (s *StackRegistry) Order() []WindowID {
	return slices.Clone(s.order)
}

// Front returns the front-most id, if any.
func (s *StackRegistry) Front() (WindowID, bool) {
	if len(s.order) == 0 {
		return "", false
	}
	return s.order[len(s.order)-1], true
}

// Len returns the number of registered windows.
func (s *StackRegistry) Len() int {
	return len(s.order)
}

// Subscribe registers fn to run after every change to the order. The
// returned func removes it.
func (s *StackRegistry) Subscribe(fn func()) (cancel func()) {
	return s.listeners.add(fn)
}
