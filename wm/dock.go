package wm

import (
	"iter"
	"slices"
)

// DockEntry is a restorable minimized window.
type DockEntry struct {
	ID        WindowID
	Label     string
	OnRestore func()
}

// Restore invokes the entry's restore callback, if it has one.
func (e DockEntry) Restore() {
	if e.OnRestore != nil {
		e.OnRestore()
	}
}

// DockRegistry holds one entry per minimized window, in minimize order.
// Like StackRegistry it is meant for the UI event loop only.
type DockRegistry struct {
	entries   []DockEntry
	listeners listeners
}

// NewDockRegistry creates an empty dock.
func NewDockRegistry() *DockRegistry {
	return &DockRegistry{}
}

// Register adds entry, replacing an existing entry with the same id in place.
func (d *DockRegistry) Register(entry DockEntry) {
	if i := d.index(entry.ID); i >= 0 {
		d.entries[i] = entry
	} else {
		d.entries = append(d.entries, entry)
	}
	d.listeners.notify()
}

// Unregister removes the entry for id. Unknown ids are ignored.
func (d *DockRegistry) Unregister(id WindowID) {
	i := d.index(id)
	if i < 0 {
		return
	}
	d.entries = slices.Delete(d.entries, i, i+1)
	d.listeners.notify()
}

// Lookup returns the entry for id.
func (d *DockRegistry) Lookup(id WindowID) (DockEntry, bool) {
	if i := d.index(id); i >= 0 {
		return d.entries[i], true
	}
	return DockEntry{}, false
}

// Items iterates over the current entries. Each call starts over from the
// entries present at that moment, so a restore callback invoked from inside
// the loop does not disturb the iteration.
func (d *DockRegistry) Items() iter.Seq[DockEntry] {
	return func(yield func(DockEntry) bool) {
		for _, e := range slices.Clone(d.entries) {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of docked windows.
func (d *DockRegistry) Len() int {
	return len(d.entries)
}

// Subscribe registers fn to run after every change to the dock.
func (d *DockRegistry) Subscribe(fn func()) (cancel func()) {
	return d.listeners.add(fn)
}

func (d *DockRegistry) index(id WindowID) int {
	return slices.IndexFunc(d.entries, func(e DockEntry) bool { return e.ID == id })
}
