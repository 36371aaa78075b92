package variable

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/zeebo/xxh3"
)

// ---------------------------------------------------------------------------
// Arithmetic
// ---------------------------------------------------------------------------

// Op is a binary arithmetic operator.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
}

func (n Number) Add(o Number) Number { return n + o }
func (n Number) Sub(o Number) Number { return n - o }
func (n Number) Mul(o Number) Number { return n * o }
func (n Number) Div(o Number) Number { return n / o }

// Mod is the truncated remainder; its sign follows n.
func (n Number) Mod(o Number) Number { return Number(math.Mod(float64(n), float64(o))) }

func (n Number) Neg() Number  { return -n }
func (n Number) Plus() Number { return n }

// Apply evaluates lhs op rhs for dynamically typed operands. Each operand
// must be a Number, a Number-tagged Variable, or a Go integer or float.
// Boolean and string operands, in either position, fail with
// ErrInvalidOperation rather than being coerced.
func Apply(op Op, lhs, rhs any) (Number, error) {
	a, err := operand(op, lhs)
	if err != nil {
		return 0, err
	}
	b, err := operand(op, rhs)
	if err != nil {
		return 0, err
	}

	switch op {
	case OpAdd:
		return a.Add(b), nil
	case OpSub:
		return a.Sub(b), nil
	case OpMul:
		return a.Mul(b), nil
	case OpDiv:
		return a.Div(b), nil
	case OpMod:
		return a.Mod(b), nil
	}
	return 0, fmt.Errorf("%w: unknown operator %s", ErrInvalidOperation, op)
}

func operand(op Op, x any) (Number, error) {
	if n, ok := numberOf(x); ok {
		return n, nil
	}
	if v, ok := x.(Variable); ok {
		return 0, fmt.Errorf("%w: operator %s on a %s variable", ErrInvalidOperation, op, v.kind)
	}
	return 0, fmt.Errorf("%w: operator %s on a %T operand", ErrInvalidOperation, op, x)
}

// ---------------------------------------------------------------------------
// Equality and ordering
// ---------------------------------------------------------------------------

// Equal uses value identity: NaN equals NaN, and 0 equals -0.
func (n Number) Equal(o Number) bool {
	return n == o || (n.IsNaN() && o.IsNaN())
}

// Equals compares n against a Number or a raw integer or float. Any other
// operand is unequal.
func (n Number) Equals(x any) bool {
	o, ok := numberOf(x)
	return ok && n.Equal(o)
}

// Compare orders NaN below every other value and equal to itself.
func (n Number) Compare(o Number) int {
	return cmp.Compare(float64(n), float64(o))
}

// CompareTo compares n against a Number or a raw integer or float. A nil
// operand sorts below every Number; any other type fails with
// ErrInvalidArgument.
func (n Number) CompareTo(x any) (int, error) {
	if x == nil {
		return 1, nil
	}
	o, ok := numberOf(x)
	if !ok {
		return 0, fmt.Errorf("%w: cannot compare Number with %T", ErrInvalidArgument, x)
	}
	return n.Compare(o), nil
}

// The relational helpers follow the operators: false when either side is NaN.
func (n Number) Less(o Number) bool         { return n < o }
func (n Number) LessEqual(o Number) bool    { return n <= o }
func (n Number) Greater(o Number) bool      { return n > o }
func (n Number) GreaterEqual(o Number) bool { return n >= o }

// Hash is consistent with Equal.
func (n Number) Hash() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], canonicalBits(float64(n)))
	return xxh3.Hash(buf[:])
}

// canonicalBits folds -0 into 0 and every NaN payload into one.
func canonicalBits(f float64) uint64 {
	switch {
	case f == 0:
		return 0
	case math.IsNaN(f):
		return 0x7FF8000000000001
	}
	return math.Float64bits(f)
}
