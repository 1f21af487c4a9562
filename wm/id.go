package wm

import "github.com/google/uuid"

// WindowID identifies one Window for its whole lifetime. It is the join key
// into the stack and dock registries.
type WindowID string

// NewWindowID returns a fresh random id.
func NewWindowID() WindowID {
	return WindowID(uuid.NewString())
}

func (id WindowID) String() string {
	return string(id)
}

// Short returns the first eight characters, for logs.
func (id WindowID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}
