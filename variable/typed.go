package variable

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/xxh3"
)

// Value is the read contract shared by Variable and Typed.
type Value interface {
	Kind() Kind
	AsBoolean() bool
	AsDouble() float64
	AsNumber() Number
	AsString() string
	AsVector2() Vector2
	AsVector3() Vector3
	String() string
}

// Hasher is implemented by payload types that supply their own hash. The
// hash must agree with the type's Equal method (or with reflect.DeepEqual
// when the type has none).
type Hasher interface {
	Hash() uint64
}

// payload is the type-erased form of a Typed held by a Struct Variable.
type payload interface {
	box() any
	isNil() bool
	String() string
}

// payloadEncMode encodes struct payloads deterministically for hashing.
var payloadEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("variable: failed to create CBOR enc mode: %v", err))
	}
	payloadEncMode = em
}

// Typed holds a value of type T directly, without boxing it into an
// interface. It is tagged KindVector2 or KindVector3 when T is Vector2 or
// Vector3, and KindStruct otherwise.
type Typed[T any] struct {
	value T
}

// NewTyped wraps v.
func NewTyped[T any](v T) Typed[T] {
	return Typed[T]{value: v}
}

// Value returns the payload.
func (t Typed[T]) Value() T {
	return t.value
}

func (t Typed[T]) Kind() Kind {
	return kindFor[T]()
}

func kindFor[T any]() Kind {
	var zero T
	switch any(zero).(type) {
	case Vector2:
		return KindVector2
	case Vector3:
		return KindVector3
	}
	return KindStruct
}

// AsBoolean is true for any non-nil payload.
func (t Typed[T]) AsBoolean() bool { return !t.isNil() }

// Struct payloads carry no numeric interpretation.
func (t Typed[T]) AsDouble() float64 { return 0 }
func (t Typed[T]) AsNumber() Number  { return 0 }

// AsString defers to the payload's own text form.
func (t Typed[T]) AsString() string {
	if t.isNil() {
		return ""
	}
	return fmt.Sprint(t.value)
}

func (t Typed[T]) AsVector2() Vector2 {
	v, _ := any(t.value).(Vector2)
	return v
}

func (t Typed[T]) AsVector3() Vector3 {
	v, _ := any(t.value).(Vector3)
	return v
}

func (t Typed[T]) String() string {
	return t.AsString()
}

// Equal uses T's own Equal(T) bool method when it has one, and
// reflect.DeepEqual otherwise.
func (t Typed[T]) Equal(o Typed[T]) bool {
	if eq, ok := any(t.value).(interface{ Equal(T) bool }); ok {
		return eq.Equal(o.value)
	}
	return reflect.DeepEqual(any(t.value), any(o.value))
}

// Hash is consistent with Equal.
func (t Typed[T]) Hash() uint64 {
	return hashBoxed(any(t.value))
}

// Variable converts t to the tagged union. Vector payloads are copied
// inline; any other payload is held behind the payload interface.
func (t Typed[T]) Variable() Variable {
	switch v := any(t.value).(type) {
	case Vector2:
		return FromVector2(v)
	case Vector3:
		return FromVector3(v)
	}
	return Variable{kind: KindStruct, obj: t}
}

func (t Typed[T]) box() any {
	return any(t.value)
}

func (t Typed[T]) isNil() bool {
	v := any(t.value)
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// equalBoxed compares two type-erased payloads: same dynamic type, then
// the type's Equal method if it has one, then reflect.DeepEqual.
func equalBoxed(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if m, ok := ta.MethodByName("Equal"); ok && isEqualMethod(m.Type, ta) {
		out := m.Func.Call([]reflect.Value{reflect.ValueOf(a), reflect.ValueOf(b)})
		return out[0].Bool()
	}
	return reflect.DeepEqual(a, b)
}

// isEqualMethod matches func(recv T, other T) bool.
func isEqualMethod(fn reflect.Type, t reflect.Type) bool {
	return fn.NumIn() == 2 && fn.In(1) == t && fn.NumOut() == 1 && fn.Out(0).Kind() == reflect.Bool
}

// hashBoxed hashes a payload with its own Hash method when available and
// with xxh3 over its canonical CBOR encoding otherwise. Payloads CBOR
// cannot encode hash by type name alone.
func hashBoxed(v any) uint64 {
	if v == nil {
		return 0
	}
	if h, ok := v.(Hasher); ok {
		return h.Hash()
	}
	data, err := payloadEncMode.Marshal(v)
	if err != nil {
		return xxh3.HashString(reflect.TypeOf(v).String())
	}
	return xxh3.Hash(data)
}
