package table

import (
	"slices"

	"github.com/chazu/luny/variable"
)

// ChangeEvent describes one successful write. Previous is Null when the
// write created the slot.
type ChangeEvent struct {
	Name     string
	Current  variable.Variable
	Previous variable.Variable
}

type watcher struct {
	fn func(ChangeEvent)
}

// OnChange registers fn to run synchronously after every successful write
// while change events are enabled. The returned function unregisters it.
func (t *Table) OnChange(fn func(ChangeEvent)) (cancel func()) {
	w := &watcher{fn: fn}
	t.watchers = append(t.watchers, w)
	return func() {
		t.watchers = slices.DeleteFunc(t.watchers, func(x *watcher) bool { return x == w })
	}
}

func (t *Table) changed(name string, current, previous variable.Variable) {
	if !t.events || len(t.watchers) == 0 {
		return
	}
	ev := ChangeEvent{Name: name, Current: current, Previous: previous}
	// Watchers may unregister themselves while being called.
	for _, w := range slices.Clone(t.watchers) {
		w.fn(ev)
	}
}
