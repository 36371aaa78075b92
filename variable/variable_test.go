package variable

import (
	"errors"
	"math"
	"testing"
)

type point struct {
	X, Y int
}

// caseless compares by its own Equal method.
type caseless struct {
	s string
}

func (c caseless) Equal(o caseless) bool {
	return len(c.s) == len(o.s)
}

func (c caseless) Hash() uint64 { return uint64(len(c.s)) }

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestZeroVariableIsNull(t *testing.T) {
	var v Variable
	if v.Kind() != KindNull {
		t.Errorf("zero Variable kind = %s, want Null", v.Kind())
	}
	if !v.IsNull() {
		t.Error("IsNull should be true for the zero Variable")
	}
	if !v.Equal(Null()) {
		t.Error("zero Variable should equal Null()")
	}
	if v.String() != "Null" {
		t.Errorf("String() = %q, want Null", v.String())
	}
	if v.Length() != 0 {
		t.Errorf("Length() = %d, want 0", v.Length())
	}
	if v.AsString() != "" {
		t.Errorf("AsString() = %q, want empty", v.AsString())
	}
	if v.AsBoolean() {
		t.Error("AsBoolean() should be false for Null")
	}
}

func TestNewDispatch(t *testing.T) {
	tests := []struct {
		in   any
		want Kind
	}{
		{nil, KindNull},
		{true, KindBoolean},
		{42, KindNumber},
		{uint8(3), KindNumber},
		{1.5, KindNumber},
		{Number(2), KindNumber},
		{"hi", KindString},
		{Vec2(1, 2), KindVector2},
		{Vec3(1, 2, 3), KindVector3},
		{point{1, 2}, KindStruct},
		{&point{1, 2}, KindStruct},
		{NewTyped(point{1, 2}), KindStruct},
		{NewTyped(Vec2(1, 2)), KindVector2},
		{FromString("x"), KindString},
	}
	for _, tt := range tests {
		if got := New(tt.in).Kind(); got != tt.want {
			t.Errorf("New(%#v).Kind() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFromStruct(t *testing.T) {
	v := FromStruct(point{3, 4})
	if v.Kind() != KindStruct {
		t.Fatalf("kind = %s, want Struct", v.Kind())
	}
	p, err := As[point](v)
	if err != nil {
		t.Fatalf("As[point] failed: %v", err)
	}
	if p != (point{3, 4}) {
		t.Errorf("As[point] = %v, want {3 4}", p)
	}

	if got := FromStruct(Vec3(1, 2, 3)).Kind(); got != KindVector3 {
		t.Errorf("FromStruct(Vector3).Kind() = %s, want Vector3", got)
	}
}

func TestName(t *testing.T) {
	v := Named(10, "health")
	want := NameUnavailable
	if Debug {
		want = "health"
	}
	if got := v.Name(); got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
	if got := New(10).Name(); got != NameUnavailable {
		t.Errorf("unnamed Name() = %q, want %q", got, NameUnavailable)
	}
	if !v.Equal(New(10)) {
		t.Error("names should not take part in equality")
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func TestAccessorDefaults(t *testing.T) {
	vars := map[string]Variable{
		"null":   Null(),
		"bool":   FromBool(true),
		"number": FromFloat64(123.45),
		"string": FromString("text"),
	}

	if got := vars["null"].AsString(); got != "" {
		t.Errorf("null AsString = %q, want empty", got)
	}
	if got := vars["number"].AsString(); got != "" {
		t.Errorf("number AsString = %q, want empty", got)
	}
	if got := vars["bool"].AsString(); got != "" {
		t.Errorf("bool AsString = %q, want empty", got)
	}
	if got := vars["string"].AsDouble(); got != 0 {
		t.Errorf("string AsDouble = %v, want 0", got)
	}
	if got := vars["bool"].AsDouble(); got != 0 {
		t.Errorf("bool AsDouble = %v, want 0", got)
	}
	if vars["number"].AsBoolean() {
		t.Error("number AsBoolean should be false")
	}
	if vars["string"].AsBoolean() {
		t.Error("string AsBoolean should be false")
	}
	if got := vars["string"].AsVector2(); got != (Vector2{}) {
		t.Errorf("string AsVector2 = %v, want zero", got)
	}

	n := vars["number"]
	if got := n.AsDouble(); got != 123.45 {
		t.Errorf("AsDouble = %v, want 123.45", got)
	}
	if got := n.AsSingle(); got != float32(123.45) {
		t.Errorf("AsSingle = %v, want 123.45", got)
	}
	if got := n.AsInt32(); got != 123 {
		t.Errorf("AsInt32 = %d, want 123", got)
	}
	if got := n.AsInt64(); got != 123 {
		t.Errorf("AsInt64 = %d, want 123", got)
	}
	if got := n.AsNumber(); got != 123.45 {
		t.Errorf("AsNumber = %v, want 123.45", got)
	}
}

func TestVectorAccessors(t *testing.T) {
	v2 := FromVector2(Vec2(1, 2))
	if got := v2.AsVector2(); got != Vec2(1, 2) {
		t.Errorf("AsVector2 = %v, want (1, 2)", got)
	}
	if got := v2.AsVector3(); got != (Vector3{}) {
		t.Errorf("Vector2 AsVector3 = %v, want zero", got)
	}
	if got := v2.String(); got != "(1, 2)" {
		t.Errorf("String() = %q, want (1, 2)", got)
	}
	if got := v2.AsString(); got != "(1, 2)" {
		t.Errorf("AsString() = %q, want (1, 2)", got)
	}
	if !v2.AsBoolean() {
		t.Error("vector AsBoolean should be true")
	}

	v3 := FromVector3(Vec3(1, 2.5, -3))
	if got := v3.AsVector3(); got != Vec3(1, 2.5, -3) {
		t.Errorf("AsVector3 = %v, want (1, 2.5, -3)", got)
	}
	if got := v3.String(); got != "(1, 2.5, -3)" {
		t.Errorf("String() = %q, want (1, 2.5, -3)", got)
	}
}

func TestIsTrue(t *testing.T) {
	tests := []struct {
		v    Variable
		want bool
	}{
		{FromBool(true), true},
		{FromBool(false), false},
		{FromFloat64(1), true},
		{FromFloat64(0), false},
		{FromFloat64(1e-13), true},
		{FromString("true"), false},
		{Null(), false},
	}
	for _, tt := range tests {
		if got := tt.v.IsTrue(); got != tt.want {
			t.Errorf("%v.IsTrue() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestIsHighAndNormalized(t *testing.T) {
	tests := []struct {
		v          Variable
		high, norm bool
	}{
		{FromFloat64(0.5), true, true},
		{FromFloat64(0.49), false, true},
		{FromFloat64(-0.75), true, true},
		{FromFloat64(1), true, true},
		{FromFloat64(1 + 1e-12), true, true},
		{FromFloat64(1.01), true, false},
		{FromFloat64(-2), true, false},
		{FromBool(true), true, false},
		{FromString("1"), false, false},
		{Null(), false, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsHigh(); got != tt.high {
			t.Errorf("%v.IsHigh() = %v, want %v", tt.v, got, tt.high)
		}
		if got := tt.v.IsNormalized(); got != tt.norm {
			t.Errorf("%v.IsNormalized() = %v, want %v", tt.v, got, tt.norm)
		}
	}
}

func TestLength(t *testing.T) {
	if got := FromString("héllo").Length(); got != 5 {
		t.Errorf("Length() = %d, want 5", got)
	}
	if got := FromFloat64(12345).Length(); got != 0 {
		t.Errorf("number Length() = %d, want 0", got)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		v    Variable
		want string
	}{
		{Null(), "Null"},
		{FromBool(true), "true"},
		{FromFloat64(123.45), "123.45"},
		{FromString("abc"), "abc"},
		{FromStruct(point{1, 2}), "{1 2}"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// As / TryAs
// ---------------------------------------------------------------------------

func TestAsSupported(t *testing.T) {
	n := FromFloat64(123.45)
	if got, err := As[float64](n); err != nil || got != 123.45 {
		t.Errorf("As[float64] = %v, %v; want 123.45", got, err)
	}
	if got, err := As[int](n); err != nil || got != 123 {
		t.Errorf("As[int] = %v, %v; want 123", got, err)
	}
	if got, err := As[Number](n); err != nil || got != 123.45 {
		t.Errorf("As[Number] = %v, %v; want 123.45", got, err)
	}
	if got, err := As[meters](n); err != nil || got != 123.45 {
		t.Errorf("As[meters] = %v, %v; want 123.45", got, err)
	}
	if got, err := As[bool](FromBool(true)); err != nil || !got {
		t.Errorf("As[bool] = %v, %v; want true", got, err)
	}
	if got, err := As[string](FromString("s")); err != nil || got != "s" {
		t.Errorf("As[string] = %q, %v; want s", got, err)
	}
	if got, err := As[Vector2](FromVector2(Vec2(1, 2))); err != nil || got != Vec2(1, 2) {
		t.Errorf("As[Vector2] = %v, %v; want (1, 2)", got, err)
	}
	if got, err := As[Variable](n); err != nil || !got.Equal(n) {
		t.Errorf("As[Variable] = %v, %v; want itself", got, err)
	}
}

func TestAsAny(t *testing.T) {
	tests := []struct {
		v    Variable
		want any
	}{
		{Null(), nil},
		{FromBool(true), true},
		{FromFloat64(123.45), 123.45},
		{FromString("s"), "s"},
		{FromVector3(Vec3(1, 2, 3)), Vec3(1, 2, 3)},
		{FromStruct(point{1, 2}), point{1, 2}},
	}
	for _, tt := range tests {
		got, err := As[any](tt.v)
		if err != nil {
			t.Errorf("As[any](%v) failed: %v", tt.v, err)
			continue
		}
		if got != tt.want {
			t.Errorf("As[any](%v) = %#v, want %#v", tt.v, got, tt.want)
		}
	}
}

func TestAsNotSupported(t *testing.T) {
	check := func(name string, err error) {
		t.Helper()
		if !errors.Is(err, ErrNotSupported) {
			t.Errorf("%s: error = %v, want ErrNotSupported", name, err)
		}
	}

	_, err := As[string](FromFloat64(123.45))
	check("number as string", err)
	_, err = As[float64](FromBool(true))
	check("bool as float64", err)
	_, err = As[float64](FromString("123"))
	check("string as float64", err)
	_, err = As[float64](Null())
	check("null as float64", err)
	_, err = As[bool](FromFloat64(1))
	check("number as bool", err)
	_, err = As[Vector3](FromVector2(Vec2(1, 2)))
	check("Vector2 as Vector3", err)
	_, err = As[point](FromStruct(Vec2(1, 2)))
	check("Vector2 as point", err)
	_, err = As[*point](FromStruct(point{1, 2}))
	check("point as *point", err)

	if _, ok := TryAs[string](FromFloat64(1)); ok {
		t.Error("TryAs[string] on a number should fail")
	}
	if got, ok := TryAs[int32](FromFloat64(7.9)); !ok || got != 7 {
		t.Errorf("TryAs[int32] = %d, %v; want 7, true", got, ok)
	}
}

// ---------------------------------------------------------------------------
// Equality and hashing
// ---------------------------------------------------------------------------

var (
	nan32     = float32(math.NaN())
	negZero32 = float32(math.Copysign(0, -1))
)

func TestEqualSameTag(t *testing.T) {
	tests := []struct {
		a, b Variable
		want bool
	}{
		{Null(), Null(), true},
		{FromBool(true), FromBool(true), true},
		{FromBool(true), FromBool(false), false},
		{FromFloat64(10), FromInt(10), true},
		{FromFloat64(math.NaN()), FromFloat64(math.NaN()), true},
		{FromString("a"), FromString("a"), true},
		{FromString("a"), FromString("b"), false},
		{FromVector2(Vec2(1, 2)), FromVector2(Vec2(1, 2)), true},
		{FromVector2(Vec2(nan32, 0)), FromVector2(Vec2(nan32, 0)), true},
		{FromVector2(Vec2(nan32, 0)), FromVector2(Vec2(nan32, 1)), false},
		{FromVector3(Vec3(0, nan32, nan32)), FromVector3(Vec3(0, nan32, nan32)), true},
		{FromVector3(Vec3(negZero32, 1, 2)), FromVector3(Vec3(0, 1, 2)), true},
		{FromStruct(point{1, 2}), New(point{1, 2}), true},
		{FromStruct(point{1, 2}), FromStruct(point{2, 1}), false},
		{FromStruct(caseless{"abc"}), FromStruct(caseless{"xyz"}), true},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Equal(tt.a); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestEqualReflexive(t *testing.T) {
	vars := []Variable{
		Null(),
		FromFloat64(math.NaN()),
		FromFloat64(math.Inf(-1)),
		FromVector2(Vec2(nan32, 0)),
		FromVector3(Vec3(nan32, nan32, nan32)),
		FromStruct(point{1, 2}),
	}
	for _, v := range vars {
		if !v.Equal(v) {
			t.Errorf("%v.Equal(itself) = false", v)
		}
		if !v.Equals(v) {
			t.Errorf("%v.Equals(itself) = false", v)
		}
		if !Equal(v, v) {
			t.Errorf("Equal(%v, %v) = false", v, v)
		}
	}
	if !FromVector2(Vec2(nan32, 0)).Equals(Vec2(nan32, 0)) {
		t.Error("NaN vector Variable should equal the bare vector")
	}
}

func TestEqualAcrossTags(t *testing.T) {
	vars := []Variable{
		Null(),
		FromBool(true),
		FromFloat64(1),
		FromString("1"),
		FromVector2(Vec2(1, 0)),
		FromVector3(Vec3(1, 0, 0)),
		FromStruct(point{1, 0}),
	}
	for i, a := range vars {
		for j, b := range vars {
			if i != j && a.Equal(b) {
				t.Errorf("%s.Equal(%s) = true, want false", a.Kind(), b.Kind())
			}
		}
	}
}

func TestEqualsPrimitive(t *testing.T) {
	tests := []struct {
		v    Variable
		x    any
		want bool
	}{
		{FromFloat64(10), 10, true},
		{FromFloat64(10), 10.0, true},
		{FromFloat64(10), Number(10), true},
		{FromFloat64(10), 11, false},
		{FromFloat64(1), true, false},
		{FromBool(true), true, true},
		{FromBool(true), 1, false},
		{FromString("abc"), "abc", true},
		{FromString("10"), 10, false},
		{FromVector2(Vec2(1, 2)), Vec2(1, 2), true},
		{FromStruct(point{1, 2}), point{1, 2}, true},
		{FromStruct(point{1, 2}), NewTyped(point{1, 2}), true},
		{Null(), nil, false},
	}
	for _, tt := range tests {
		if got := tt.v.Equals(tt.x); got != tt.want {
			t.Errorf("%v.Equals(%#v) = %v, want %v", tt.v, tt.x, got, tt.want)
		}
		// Operand order must not matter.
		if got := Equal(tt.x, tt.v); got != tt.want {
			t.Errorf("Equal(%#v, %v) = %v, want %v", tt.x, tt.v, got, tt.want)
		}
		if got := Equal(tt.v, tt.x); got != tt.want {
			t.Errorf("Equal(%v, %#v) = %v, want %v", tt.v, tt.x, got, tt.want)
		}
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	pairs := [][2]Variable{
		{FromFloat64(10), FromInt(10)},
		{FromFloat64(0), FromFloat64(math.Copysign(0, -1))},
		{FromFloat64(math.NaN()), FromFloat64(math.NaN())},
		{FromString("abc"), FromString("abc")},
		{FromVector2(Vec2(0, 1)), FromVector2(Vec2(negZero32, 1))},
		{FromVector2(Vec2(nan32, 1)), FromVector2(Vec2(math.Float32frombits(0x7FC00042), 1))},
		{FromVector3(Vec3(1, nan32, 2)), FromVector3(Vec3(1, -nan32, 2))},
		{FromStruct(point{1, 2}), New(point{1, 2})},
		{FromStruct(caseless{"abc"}), FromStruct(caseless{"xyz"})},
	}
	for _, p := range pairs {
		if !p[0].Equal(p[1]) {
			t.Errorf("%v should equal %v", p[0], p[1])
			continue
		}
		if p[0].Hash() != p[1].Hash() {
			t.Errorf("Hash(%v) != Hash(%v)", p[0], p[1])
		}
	}

	if FromFloat64(10).Hash() == FromFloat64(20).Hash() {
		t.Error("10 and 20 should hash differently")
	}
	if FromBool(true).Hash() == FromFloat64(1).Hash() {
		t.Error("true and 1 should hash differently")
	}
}
