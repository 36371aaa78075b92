package variable

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/apd/v3"
	"golang.org/x/exp/constraints"
)

// Number is the numeric case of a Variable: a single float64.
//
// Conversions are explicit. Integer targets truncate toward zero and
// saturate at the target's range; NaN converts to zero. Arithmetic is only
// defined between Numbers (see Apply for the dynamically typed form).
type Number float64

// Epsilon is the magnitude a Number must exceed to count as true.
const Epsilon = math.SmallestNonzeroFloat64

// Numeric is the set of Go types a Number converts to and from.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// NumberOf creates a Number from any integer or floating point value.
func NumberOf[T Numeric](v T) Number {
	return Number(float64(v))
}

// NumberFromBool returns 1 for true and 0 for false.
func NumberFromBool(b bool) Number {
	if b {
		return 1
	}
	return 0
}

// NumberFromString parses s as an invariant-culture number. Empty and
// unparseable strings yield 0.
func NumberFromString(s string) Number {
	n, err := ParseNumber(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseNumber is the strict form of NumberFromString.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty number", ErrInvalidArgument)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Overflow parses to an infinity, which is a valid Number.
		if errors.Is(err, strconv.ErrRange) {
			return Number(f), nil
		}
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, s)
	}
	return Number(f), nil
}

// NumberFromDuration returns d in seconds.
func NumberFromDuration(d time.Duration) Number {
	return Number(d.Seconds())
}

// NumberFromTime maps an instant to seconds since the Unix epoch, with the
// fraction carrying the sub-second part. Every instant from year 1 to 9999
// maps; resolution is about a microsecond today and 30µs near year 9999.
func NumberFromTime(t time.Time) Number {
	return Number(float64(t.Unix()) + float64(t.Nanosecond())/1e9)
}

// Instants outside [minInstant, maxInstant] saturate.
var (
	minInstant = time.Time{}.Unix()
	maxInstant = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// NumberFromDecimal converts an arbitrary precision decimal. Nil and
// non-finite decimals that cannot be parsed yield 0.
func NumberFromDecimal(d *apd.Decimal) Number {
	if d == nil {
		return 0
	}
	f, err := d.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return Number(f)
}

// ---------------------------------------------------------------------------
// Conversion
// ---------------------------------------------------------------------------

func saturateInt(f float64, lo, hi int64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f <= float64(lo):
		return lo
	case f >= float64(hi):
		return hi
	}
	return int64(f)
}

func saturateUint(f float64, hi uint64) uint64 {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= float64(hi):
		return hi
	}
	return uint64(f)
}

func (n Number) Float64() float64 { return float64(n) }
func (n Number) Float32() float32 { return float32(n) }

func (n Number) Int() int     { return int(saturateInt(float64(n), math.MinInt, math.MaxInt)) }
func (n Number) Int8() int8   { return int8(saturateInt(float64(n), math.MinInt8, math.MaxInt8)) }
func (n Number) Int16() int16 { return int16(saturateInt(float64(n), math.MinInt16, math.MaxInt16)) }
func (n Number) Int32() int32 { return int32(saturateInt(float64(n), math.MinInt32, math.MaxInt32)) }
func (n Number) Int64() int64 { return saturateInt(float64(n), math.MinInt64, math.MaxInt64) }

func (n Number) Uint() uint     { return uint(saturateUint(float64(n), math.MaxUint)) }
func (n Number) Uint8() uint8   { return uint8(saturateUint(float64(n), math.MaxUint8)) }
func (n Number) Uint16() uint16 { return uint16(saturateUint(float64(n), math.MaxUint16)) }
func (n Number) Uint32() uint32 { return uint32(saturateUint(float64(n), math.MaxUint32)) }
func (n Number) Uint64() uint64 { return saturateUint(float64(n), math.MaxUint64) }

// Rune converts n to a character code, saturating at 0 and unicode.MaxRune.
func (n Number) Rune() rune {
	return rune(saturateInt(float64(n), 0, unicode.MaxRune))
}

// Bool reports whether the magnitude of n exceeds Epsilon.
func (n Number) Bool() bool {
	return math.Abs(float64(n)) > Epsilon
}

// Duration interprets n as seconds, saturating at the range of
// time.Duration.
func (n Number) Duration() time.Duration {
	return time.Duration(saturateInt(float64(n)*float64(time.Second), math.MinInt64, math.MaxInt64))
}

// Time is the inverse of NumberFromTime. The result is in UTC and saturates
// at year 1 and the end of year 9999; NaN maps to the Unix epoch.
func (n Number) Time() time.Time {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return time.Unix(0, 0).UTC()
	case f <= float64(minInstant):
		return time.Unix(minInstant, 0).UTC()
	case f >= float64(maxInstant+1):
		return time.Unix(maxInstant, 999999999).UTC()
	}
	sec := math.Floor(f)
	return time.Unix(int64(sec), int64(math.Round((f-sec)*1e9))).UTC()
}

// Decimal returns the exact decimal value of n's float64. Values that have
// no decimal form yield zero.
func (n Number) Decimal() *apd.Decimal {
	d, err := new(apd.Decimal).SetFloat64(float64(n))
	if err != nil {
		return apd.New(0, 0)
	}
	return d
}

// IsNaN reports whether n is NaN.
func (n Number) IsNaN() bool {
	return math.IsNaN(float64(n))
}

// NumberAs converts n to any numeric type with the same saturation rules as the
// fixed-width methods.
func NumberAs[T Numeric](n Number) T {
	var out T
	switch p := any(&out).(type) {
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
	case *uintptr:
		*p = uintptr(saturateUint(float64(n), math.MaxUint))
	default:
		setNamedNumeric(reflect.ValueOf(&out).Elem(), n)
	}
	return out
}

// setNamedNumeric handles defined types such as `type Meters float64`.
func setNamedNumeric(rv reflect.Value, n Number) {
	bits := rv.Type().Bits()
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(float64(n))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		lo := int64(-1) << (bits - 1)
		hi := int64(uint64(1)<<(bits-1) - 1)
		rv.SetInt(saturateInt(float64(n), lo, hi))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		rv.SetUint(saturateUint(float64(n), ^uint64(0)>>(64-bits)))
	}
}

// numberOf extracts a Number from a Number, a Number-tagged Variable, or a
// Go integer or float. Booleans and strings are never numbers.
func numberOf(x any) (Number, bool) {
	switch v := x.(type) {
	case Number:
		return v, true
	case float64:
		return Number(v), true
	case float32:
		return Number(v), true
	case int:
		return NumberOf(v), true
	case int8:
		return NumberOf(v), true
	case int16:
		return NumberOf(v), true
	case int32:
		return NumberOf(v), true
	case int64:
		return NumberOf(v), true
	case uint:
		return NumberOf(v), true
	case uint8:
		return NumberOf(v), true
	case uint16:
		return NumberOf(v), true
	case uint32:
		return NumberOf(v), true
	case uint64:
		return NumberOf(v), true
	case uintptr:
		return NumberOf(v), true
	case Variable:
		if v.kind == KindNumber {
			return Number(v.num), true
		}
	}
	return 0, false
}
