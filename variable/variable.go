package variable

import (
	"encoding/binary"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/zeebo/xxh3"
)

// NameUnavailable is what Name reports when names are not retained.
const NameUnavailable = "(N/A)"

// Variable is an immutable tagged union of Null, Boolean, Number, String
// and struct payloads. The zero Variable is Null.
//
// Vector2 and Vector3 payloads are stored inline; any other struct payload
// is held behind a type-erased Typed.
type Variable struct {
	kind Kind
	num  float64 // Number value, or 1/0 for Boolean
	str  string
	vec  [3]float32
	obj  payload
	name string // only set when Debug
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// Null returns the Null Variable.
func Null() Variable { return Variable{} }

func FromBool(b bool) Variable {
	return Variable{kind: KindBoolean, num: float64(NumberFromBool(b))}
}

func FromNumber(n Number) Variable {
	return Variable{kind: KindNumber, num: float64(n)}
}

func FromFloat64(f float64) Variable { return FromNumber(Number(f)) }
func FromInt(i int) Variable         { return FromNumber(NumberOf(i)) }
func FromInt64(i int64) Variable     { return FromNumber(NumberOf(i)) }

func FromString(s string) Variable {
	return Variable{kind: KindString, str: s}
}

func FromVector2(v Vector2) Variable {
	return Variable{kind: KindVector2, vec: [3]float32{v.X, v.Y, 0}}
}

func FromVector3(v Vector3) Variable {
	return Variable{kind: KindVector3, vec: [3]float32{v.X, v.Y, v.Z}}
}

// FromStruct wraps an arbitrary payload. Vector payloads keep their
// specialised tags.
func FromStruct[T any](v T) Variable {
	return NewTyped(v).Variable()
}

// New converts a Go value to a Variable: nil is Null, bool is Boolean,
// any Go integer or float (and Number) is Number, string is String. A
// Variable passes through and a Typed converts itself. Anything else
// becomes a Struct payload.
func New(x any) Variable {
	switch v := x.(type) {
	case nil:
		return Variable{}
	case Variable:
		return v
	case interface{ Variable() Variable }:
		return v.Variable()
	case bool:
		return FromBool(v)
	case string:
		return FromString(v)
	case Vector2:
		return FromVector2(v)
	case Vector3:
		return FromVector3(v)
	}
	if n, ok := numberOf(x); ok {
		return FromNumber(n)
	}
	return Variable{kind: KindStruct, obj: Typed[any]{value: x}}
}

// Named is New with a diagnostic name. The name is dropped unless Debug.
func Named(x any, name string) Variable {
	v := New(x)
	if Debug {
		v.name = name
	}
	return v
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (v Variable) Kind() Kind { return v.kind }

// Name returns the diagnostic name, or NameUnavailable.
func (v Variable) Name() string {
	if v.name == "" {
		return NameUnavailable
	}
	return v.name
}

func (v Variable) IsNull() bool { return v.kind == KindNull }

// AsBoolean is the Boolean value. Struct payloads are true unless nil;
// every other tag is false.
func (v Variable) AsBoolean() bool {
	switch v.kind {
	case KindBoolean:
		return v.num != 0
	case KindVector2, KindVector3:
		return true
	case KindStruct:
		return !v.obj.isNil()
	}
	return false
}

// AsNumber is the Number value, or 0 for any other tag.
func (v Variable) AsNumber() Number {
	if v.kind != KindNumber {
		return 0
	}
	return Number(v.num)
}

func (v Variable) AsDouble() float64 { return v.AsNumber().Float64() }
func (v Variable) AsSingle() float32 { return v.AsNumber().Float32() }
func (v Variable) AsInt32() int32    { return v.AsNumber().Int32() }
func (v Variable) AsInt64() int64    { return v.AsNumber().Int64() }

// AsString is the String value, or the text of a struct payload. Null,
// Boolean and Number yield "".
func (v Variable) AsString() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindVector2, KindVector3, KindStruct:
		return v.String()
	}
	return ""
}

func (v Variable) AsVector2() Vector2 {
	if v.kind != KindVector2 {
		return Vector2{}
	}
	return Vector2{X: v.vec[0], Y: v.vec[1]}
}

func (v Variable) AsVector3() Vector3 {
	if v.kind != KindVector3 {
		return Vector3{}
	}
	return Vector3{X: v.vec[0], Y: v.vec[1], Z: v.vec[2]}
}

// IsTrue is the Boolean value, or the truthiness of a Number.
func (v Variable) IsTrue() bool {
	switch v.kind {
	case KindBoolean:
		return v.num != 0
	case KindNumber:
		return Number(v.num).Bool()
	}
	return false
}

// IsHigh reports a Number (or Boolean, as 1/0) of magnitude 0.5 or more.
func (v Variable) IsHigh() bool {
	if v.kind != KindNumber && v.kind != KindBoolean {
		return false
	}
	return math.Abs(v.num) >= 0.5
}

// IsNormalized reports a Number within [-1, 1], allowing for rounding.
func (v Variable) IsNormalized() bool {
	return v.kind == KindNumber && math.Abs(v.num) <= 1+1e-9
}

// Length is the rune count of a String, 0 otherwise.
func (v Variable) Length() int {
	if v.kind != KindString {
		return 0
	}
	return utf8.RuneCountInString(v.str)
}

func (v Variable) String() string {
	switch v.kind {
	case KindNull:
		return "Null"
	case KindBoolean:
		return strconv.FormatBool(v.num != 0)
	case KindNumber:
		return Number(v.num).String()
	case KindString:
		return v.str
	case KindVector2:
		return v.AsVector2().String()
	case KindVector3:
		return v.AsVector3().String()
	case KindStruct:
		return v.obj.String()
	}
	return v.kind.String()
}

// boxed returns the payload as a plain Go value: nil, bool, float64,
// string, Vector2, Vector3 or the struct payload.
func (v Variable) boxed() any {
	switch v.kind {
	case KindBoolean:
		return v.num != 0
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindVector2:
		return v.AsVector2()
	case KindVector3:
		return v.AsVector3()
	case KindStruct:
		return v.obj.box()
	}
	return nil
}

// ---------------------------------------------------------------------------
// Equality and hashing
// ---------------------------------------------------------------------------

// Equal compares tag and payload. Names are not compared.
func (v Variable) Equal(o Variable) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBoolean:
		return v.num == o.num
	case KindNumber:
		return Number(v.num).Equal(Number(o.num))
	case KindString:
		return v.str == o.str
	case KindVector2:
		return v.AsVector2().Equal(o.AsVector2())
	case KindVector3:
		return v.AsVector3().Equal(o.AsVector3())
	case KindStruct:
		return equalBoxed(v.obj.box(), o.obj.box())
	}
	return false
}

// Equals compares v against a Variable, a Typed, or a bare Go value of the
// matching tag. A bare value of any other tag is unequal; nil is never
// equal, not even to Null.
func (v Variable) Equals(x any) bool {
	switch o := x.(type) {
	case nil:
		return false
	case Variable:
		return v.Equal(o)
	case interface{ Variable() Variable }:
		return v.Equal(o.Variable())
	case bool:
		return v.kind == KindBoolean && (v.num != 0) == o
	case string:
		return v.kind == KindString && v.str == o
	case Vector2:
		return v.kind == KindVector2 && v.AsVector2().Equal(o)
	case Vector3:
		return v.kind == KindVector3 && v.AsVector3().Equal(o)
	}
	if n, ok := numberOf(x); ok {
		return v.kind == KindNumber && Number(v.num).Equal(n)
	}
	return v.kind == KindStruct && equalBoxed(v.obj.box(), x)
}

// Equal compares two operands of which at least one is usually a Variable.
// The result does not depend on operand order.
func Equal(a, b any) bool {
	if va, ok := a.(Variable); ok {
		return va.Equals(b)
	}
	if vb, ok := b.(Variable); ok {
		return vb.Equals(a)
	}
	if a == nil || b == nil {
		return false
	}
	return New(a).Equals(b)
}

// Hash is consistent with Equal. The tag seeds the hash so that, for
// example, true and 1 differ.
func (v Variable) Hash() uint64 {
	var h uint64
	switch v.kind {
	case KindBoolean, KindNumber:
		h = Number(v.num).Hash()
	case KindString:
		h = xxh3.HashString(v.str)
	case KindVector2:
		h = v.AsVector2().Hash()
	case KindVector3:
		h = v.AsVector3().Hash()
	case KindStruct:
		h = hashBoxed(v.obj.box())
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], h)
	return xxh3.HashSeed(buf[:], uint64(v.kind))
}
