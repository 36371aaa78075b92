package table

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/luny/variable"
)

// Table maps names to Variables in insertion order.
type Table struct {
	id       uuid.UUID
	slots    map[string]VarHandle
	order    []VarHandle
	events   bool
	watchers []*watcher
	log      commonlog.Logger
}

// New creates an empty Table.
func New(opts ...Option) *Table {
	cfg := newTableConfig(opts)
	id := uuid.New()
	log := cfg.log
	if log == nil {
		log = commonlog.GetLogger("luny.table")
	}
	return &Table{
		id:     id,
		slots:  make(map[string]VarHandle),
		events: cfg.events,
		log:    commonlog.NewKeyValueLogger(log, "table", id.String()),
	}
}

// ID identifies the table in log output.
func (t *Table) ID() uuid.UUID { return t.id }

// ChangeEvents reports whether writes raise change events.
func (t *Table) ChangeEvents() bool { return t.events }

// ---------------------------------------------------------------------------
// Indexer
// ---------------------------------------------------------------------------

// Get returns the Variable stored under name. A missing name reads as the
// Null Variable, whose AsString is "" and whose numeric accessors are 0.
func (t *Table) Get(name string) variable.Variable {
	v, _ := t.Lookup(name)
	return v
}

// Lookup is Get with an explicit presence result.
func (t *Table) Lookup(name string) (variable.Variable, bool) {
	h, ok := t.slots[name]
	if !ok {
		return variable.Null(), false
	}
	return h.Variable(), true
}

// Set stores x under name, creating a scalar slot if the name is new. x is
// converted with variable.New. Writing to a constant fails with
// variable.ErrInvalidOperation; writing a value a typed slot cannot hold
// fails with variable.ErrInvalidCast. A failed write changes nothing.
func (t *Table) Set(name string, x any) error {
	h, ok := t.slots[name]
	if !ok {
		h = t.add(t.newScalar(name, false))
	}
	return write(h, x)
}

func (t *Table) Has(name string) bool {
	_, ok := t.slots[name]
	return ok
}

// Count is the number of slots.
func (t *Table) Count() int { return len(t.order) }

// Names returns the slot names in insertion order.
func (t *Table) Names() []string {
	names := make([]string, len(t.order))
	for i, h := range t.order {
		names[i] = h.Name()
	}
	return names
}

// All yields every name and value in insertion order. The table may be
// modified during iteration; the sequence covers the slots present when
// iteration started.
func (t *Table) All() iter.Seq2[string, variable.Variable] {
	return func(yield func(string, variable.Variable) bool) {
		for _, h := range slices.Clone(t.order) {
			if !yield(h.Name(), h.Variable()) {
				return
			}
		}
	}
}

// Remove deletes the slot for name and detaches its handle.
func (t *Table) Remove(name string) bool {
	h, ok := t.slots[name]
	if !ok {
		return false
	}
	delete(t.slots, name)
	t.order = slices.DeleteFunc(t.order, func(x VarHandle) bool { return x == h })
	h.base().detach()
	return true
}

// RemoveAll deletes every slot, constants included.
func (t *Table) RemoveAll() {
	for _, h := range t.order {
		h.base().detach()
	}
	t.log.Debug("removed all slots", "count", len(t.order))
	clear(t.slots)
	t.order = nil
}

// ResetValues resets every non-constant slot to its zero value in place.
// Handles stay attached and no change events are raised.
func (t *Table) ResetValues() {
	for _, h := range t.order {
		h.Reset()
	}
	t.log.Debug("reset values", "count", len(t.order))
}

// ---------------------------------------------------------------------------
// Constants and handles
// ---------------------------------------------------------------------------

// DefineConstant creates a read-only scalar slot. It fails with
// variable.ErrInvalidOperation if name is already in use, whether by a
// constant or not.
func (t *Table) DefineConstant(name string, x any) (*ScalarHandle, error) {
	if err := t.checkUndefined(name); err != nil {
		return nil, err
	}
	h := t.newScalar(name, true)
	h.value = variable.Named(x, name)
	t.add(h)
	return h, nil
}

// GetHandle returns the scalar handle for name, creating a Null slot if
// the name is new. Repeated calls return the same handle. A typed slot
// fails with variable.ErrInvalidCast.
func (t *Table) GetHandle(name string) (*ScalarHandle, error) {
	h, ok := t.slots[name]
	if !ok {
		t.log.Debug("materialised slot", "name", name, "type", "Variable")
		return t.add(t.newScalar(name, false)).(*ScalarHandle), nil
	}
	sh, ok := h.(*ScalarHandle)
	if !ok {
		t.log.Debug("rejected handle cast", "name", name, "have", h.Type().String(), "want", "Variable")
		return nil, fmt.Errorf("%w: %q holds %s, not a scalar", variable.ErrInvalidCast, name, h.Type())
	}
	return sh, nil
}

// Handle returns the handle for name without creating one.
func (t *Table) Handle(name string) (VarHandle, bool) {
	h, ok := t.slots[name]
	return h, ok
}

func (t *Table) String() string {
	var b strings.Builder
	b.WriteString("Table{")
	for i, h := range t.order {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(h.Name())
		b.WriteByte('=')
		b.WriteString(h.Variable().String())
	}
	b.WriteByte('}')
	return b.String()
}

func (t *Table) checkUndefined(name string) error {
	if _, ok := t.slots[name]; ok {
		t.log.Debug("rejected constant definition", "name", name)
		return fmt.Errorf("%w: %q is already defined", variable.ErrInvalidOperation, name)
	}
	return nil
}

func (t *Table) newScalar(name string, constant bool) *ScalarHandle {
	return &ScalarHandle{slot: slot{table: t, name: name, constant: constant, log: t.log}}
}

func (t *Table) add(h VarHandle) VarHandle {
	t.slots[h.Name()] = h
	t.order = append(t.order, h)
	return h
}
