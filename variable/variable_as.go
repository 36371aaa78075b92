package variable

import (
	"fmt"
	"reflect"
)

// As extracts v's payload as T. Conversions are narrow:
//
//   - Number converts to any Go integer or float type and to Number;
//   - Boolean to bool, String to string;
//   - Vector2, Vector3 and Struct payloads to their exact type;
//   - any tag to any (nil for Null, float64 for Number) and to Variable.
//
// Every other combination fails with ErrNotSupported.
func As[T any](v Variable) (T, error) {
	var out T
	if v.read(&out) {
		return out, nil
	}
	if v.kind == KindStruct {
		if x, ok := v.obj.box().(T); ok {
			return x, nil
		}
	}
	return out, fmt.Errorf("%w: %s variable as %s", ErrNotSupported, v.kind, reflect.TypeFor[T]())
}

// TryAs is As without the error.
func TryAs[T any](v Variable) (T, bool) {
	out, err := As[T](v)
	return out, err == nil
}

// read stores v into *dst when the tag permits it.
func (v Variable) read(dst any) bool {
	switch p := dst.(type) {
	case *any:
		*p = v.boxed()
		return true
	case *Variable:
		*p = v
		return true
	case *bool:
		if v.kind != KindBoolean {
			return false
		}
		*p = v.num != 0
		return true
	case *string:
		if v.kind != KindString {
			return false
		}
		*p = v.str
		return true
	case *Vector2:
		if v.kind != KindVector2 {
			return false
		}
		*p = v.AsVector2()
		return true
	case *Vector3:
		if v.kind != KindVector3 {
			return false
		}
		*p = v.AsVector3()
		return true
	}

	if v.kind != KindNumber {
		return false
	}
	n := Number(v.num)
	switch p := dst.(type) {
	case *Number:
		*p = n
	case *float64:
		*p = n.Float64()
	case *float32:
		*p = n.Float32()
	case *int:
		*p = n.Int()
	case *int8:
		*p = n.Int8()
	case *int16:
		*p = n.Int16()
	case *int32:
		*p = n.Int32()
	case *int64:
		*p = n.Int64()
	case *uint:
		*p = n.Uint()
	case *uint8:
		*p = n.Uint8()
	case *uint16:
		*p = n.Uint16()
	case *uint32:
		*p = n.Uint32()
	case *uint64:
		*p = n.Uint64()
	default:
		rv := reflect.ValueOf(dst).Elem()
		if !isNumericKind(rv.Kind()) {
			return false
		}
		setNamedNumeric(rv, n)
	}
	return true
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
