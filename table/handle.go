package table

import (
	"fmt"
	"reflect"

	"github.com/tliron/commonlog"

	"github.com/chazu/luny/variable"
)

// VarHandle is a stable reference to one slot of a Table. It is
// implemented by *ScalarHandle and *Handle[T].
type VarHandle interface {
	Name() string
	IsConstant() bool

	// Variable returns the slot's value as a Variable.
	Variable() variable.Variable

	// Reset sets the slot to its zero value. Constants are left alone.
	Reset()

	// Type is variable.Variable for scalar handles and T for Handle[T].
	Type() reflect.Type

	// Attached is false once the slot has been removed from its table.
	Attached() bool

	base() *slot
	assign(x any) (previous variable.Variable, err error)
}

// slot is the state shared by every handle kind.
type slot struct {
	table    *Table
	name     string
	constant bool
	log      commonlog.Logger
}

func (s *slot) Name() string     { return s.name }
func (s *slot) IsConstant() bool { return s.constant }
func (s *slot) Attached() bool   { return s.table != nil }
func (s *slot) base() *slot      { return s }
func (s *slot) detach()          { s.table = nil }

// write is the single path by which slots change value. Constant slots
// are rejected before anything is touched. Detached handles still accept
// writes but no longer notify their former table.
func write(h VarHandle, x any) error {
	s := h.base()
	if s.constant {
		s.log.Debug("rejected write to constant", "name", s.name)
		return fmt.Errorf("%w: %q is a constant", variable.ErrInvalidOperation, s.name)
	}
	prev, err := h.assign(x)
	if err != nil {
		s.log.Debug("rejected write", "name", s.name, "error", err.Error())
		return err
	}
	if s.table != nil {
		s.table.changed(s.name, h.Variable(), prev)
	}
	return nil
}

// ---------------------------------------------------------------------------
// ScalarHandle
// ---------------------------------------------------------------------------

// ScalarHandle refers to a slot holding a Variable.
type ScalarHandle struct {
	slot
	value variable.Variable
}

func (h *ScalarHandle) Value() variable.Variable    { return h.value }
func (h *ScalarHandle) Variable() variable.Variable { return h.value }
func (h *ScalarHandle) Type() reflect.Type          { return reflect.TypeFor[variable.Variable]() }

// Set converts x with variable.New and stores it.
func (h *ScalarHandle) Set(x any) error {
	return write(h, x)
}

func (h *ScalarHandle) Reset() {
	if h.constant {
		return
	}
	h.value = variable.Null()
}

func (h *ScalarHandle) assign(x any) (variable.Variable, error) {
	prev := h.value
	h.value = variable.Named(x, h.name)
	return prev, nil
}

// ---------------------------------------------------------------------------
// Handle[T]
// ---------------------------------------------------------------------------

// Handle refers to a typed slot that stores a T directly.
type Handle[T any] struct {
	slot
	value T
}

func (h *Handle[T]) Value() T           { return h.value }
func (h *Handle[T]) Type() reflect.Type { return reflect.TypeFor[T]() }

// Variable converts the stored T with variable.New, so numeric, string and
// vector types keep their own tags.
func (h *Handle[T]) Variable() variable.Variable {
	return variable.New(h.value)
}

// Set stores v and raises a change event.
func (h *Handle[T]) Set(v T) error {
	return write(h, v)
}

// SetInitialValue stores v without raising a change event. It fails on
// constants like Set does.
func (h *Handle[T]) SetInitialValue(v T) error {
	if h.constant {
		return fmt.Errorf("%w: %q is a constant", variable.ErrInvalidOperation, h.name)
	}
	h.value = v
	return nil
}

func (h *Handle[T]) Reset() {
	if h.constant {
		return
	}
	var zero T
	h.value = zero
}

// assign accepts a T, or anything variable.As can turn into one.
func (h *Handle[T]) assign(x any) (variable.Variable, error) {
	v, ok := x.(T)
	if !ok {
		var err error
		v, err = variable.As[T](variable.New(x))
		if err != nil {
			return variable.Null(), fmt.Errorf("%w: cannot store %T in %q of type %s",
				variable.ErrInvalidCast, x, h.name, h.Type())
		}
	}
	prev := h.Variable()
	h.value = v
	return prev, nil
}
