package table

import (
	"fmt"
	"reflect"

	"github.com/chazu/luny/variable"
)

// GetHandleOf returns the typed handle for name, creating a slot holding
// the zero T if the name is new. Repeated calls with the same T return the
// same handle. A scalar slot, or a slot of another type, fails with
// variable.ErrInvalidCast.
func GetHandleOf[T any](t *Table, name string) (*Handle[T], error) {
	h, ok := t.slots[name]
	if !ok {
		t.log.Debug("materialised slot", "name", name, "type", reflect.TypeFor[T]().String())
		return t.add(newHandle[T](t, name, false)).(*Handle[T]), nil
	}
	return As[T](h)
}

// DefineConstantOf creates a read-only typed slot holding v.
func DefineConstantOf[T any](t *Table, name string, v T) (*Handle[T], error) {
	if err := t.checkUndefined(name); err != nil {
		return nil, err
	}
	h := newHandle[T](t, name, true)
	h.value = v
	t.add(h)
	return h, nil
}

// Get reads name as a T. Typed slots of type T are read directly; any
// other slot goes through variable.As. Missing names and unsupported
// conversions yield the zero T.
func Get[T any](t *Table, name string) T {
	h, ok := t.slots[name]
	if !ok {
		var zero T
		return zero
	}
	if th, ok := h.(*Handle[T]); ok {
		return th.value
	}
	v, _ := variable.TryAs[T](h.Variable())
	return v
}

// As narrows h to a typed handle. It fails with variable.ErrInvalidCast
// when h is a scalar handle or holds a different type.
func As[T any](h VarHandle) (*Handle[T], error) {
	th, ok := h.(*Handle[T])
	if !ok {
		s := h.base()
		s.log.Debug("rejected handle cast", "name", s.name, "have", h.Type().String(), "want", reflect.TypeFor[T]().String())
		return nil, fmt.Errorf("%w: %q holds %s, not %s", variable.ErrInvalidCast, s.name, h.Type(), reflect.TypeFor[T]())
	}
	return th, nil
}

// TryAs is As without the error.
func TryAs[T any](h VarHandle) (*Handle[T], bool) {
	th, ok := h.(*Handle[T])
	return th, ok
}

func newHandle[T any](t *Table, name string, constant bool) *Handle[T] {
	return &Handle[T]{slot: slot{table: t, name: name, constant: constant, log: t.log}}
}
