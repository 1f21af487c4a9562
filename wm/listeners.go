package wm

// listeners is a small change-notification list shared by the registries.
type listeners struct {
	next int
	fns  map[int]func()
	keys []int // registration order
}

func (l *listeners) add(fn func()) func() {
	if l.fns == nil {
		l.fns = make(map[int]func())
	}
	key := l.next
	l.next++
	l.fns[key] = fn
	l.keys = append(l.keys, key)
	return func() {
		delete(l.fns, key)
		for i, k := range l.keys {
			if k == key {
				l.keys = append(l.keys[:i], l.keys[i+1:]...)
				break
			}
		}
	}
}

func (l *listeners) notify() {
	// Snapshot so a listener may unsubscribe itself.
	keys := append([]int(nil), l.keys...)
	for _, k := range keys {
		if fn, ok := l.fns[k]; ok {
			fn()
		}
	}
}
