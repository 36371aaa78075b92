package variable

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/zeebo/xxh3"
)

// Vector2 is a 2-component float32 vector. A Variable holding one is tagged
// KindVector2 and stores it inline.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a 3-component float32 vector, tagged KindVector3.
type Vector3 struct {
	X, Y, Z float32
}

func Vec2(x, y float32) Vector2    { return Vector2{X: x, Y: y} }
func Vec3(x, y, z float32) Vector3 { return Vector3{X: x, Y: y, Z: z} }

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vector2) String() string {
	return "(" + formatComponent(v.X) + ", " + formatComponent(v.Y) + ")"
}

func (v Vector3) String() string {
	return "(" + formatComponent(v.X) + ", " + formatComponent(v.Y) + ", " + formatComponent(v.Z) + ")"
}

// Equal compares componentwise. NaN components equal each other and -0
// equals 0.
func (v Vector2) Equal(o Vector2) bool {
	return sameComponent(v.X, o.X) && sameComponent(v.Y, o.Y)
}

func (v Vector3) Equal(o Vector3) bool {
	return sameComponent(v.X, o.X) && sameComponent(v.Y, o.Y) && sameComponent(v.Z, o.Z)
}

// Hash is consistent with Equal.
func (v Vector2) Hash() uint64 {
	return hashComponents(v.X, v.Y)
}

// Hash is consistent with Equal.
func (v Vector3) Hash() uint64 {
	return hashComponents(v.X, v.Y, v.Z)
}

func formatComponent(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func sameComponent(a, b float32) bool {
	return a == b || (a != a && b != b)
}

func hashComponents(cs ...float32) uint64 {
	var buf [12]byte
	for i, c := range cs {
		bits := math.Float32bits(c)
		switch {
		case c == 0:
			bits = 0
		case c != c:
			bits = 0x7FC00001
		}
		binary.LittleEndian.PutUint32(buf[i*4:], bits)
	}
	return xxh3.Hash(buf[:len(cs)*4])
}
