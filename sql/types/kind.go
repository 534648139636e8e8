// Package types defines the scalar Kind system of the query execution core:
// the tagged Value union and the promotion/cast-cost table
// that drives implicit-cast insertion and expression
// evaluation.
package types

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// Kind tags the scalar type carried by a Value.
type Kind int

const (
	// Undefined is the kind of a Value with no meaningful content; it acts
	// as the NULL of this system and forms its own equality group in
	// GroupBy.
	Undefined Kind = iota
	Int32
	Float32
	Chars
	Bool
)

func (k Kind) String() string {
	switch k {
	case Int32:
		return "INT"
	case Float32:
		return "FLOAT"
	case Chars:
		return "CHAR"
	case Bool:
		return "BOOLEAN"
	default:
		return "UNDEFINED"
	}
}

// Value is a tagged scalar over {Int32, Float32, Chars(len), Bool, Undefined}.
// It carries its Kind and either an inline primitive or a byte run (for
// Chars).
type Value struct {
	Kind Kind

	i32 int32
	f32 float32
	b   bool
	s   []byte
	// CharLen is the declared length of a Chars value's backing column.
	// Comparisons do not read it: compareChars works on the stored bytes
	// and their actual length.
	CharLen int
}

// Undef is the canonical Undefined value.
var Undef = Value{Kind: Undefined}

func NewInt32(v int32) Value     { return Value{Kind: Int32, i32: v} }
func NewFloat32(v float32) Value { return Value{Kind: Float32, f32: v} }
func NewBool(v bool) Value       { return Value{Kind: Bool, b: v} }
func NewChars(v string, declaredLen int) Value {
	return Value{Kind: Chars, s: []byte(v), CharLen: declaredLen}
}

func (v Value) Int32() int32    { return v.i32 }
func (v Value) Float32() float32 { return v.f32 }
func (v Value) Bool() bool      { return v.b }
func (v Value) Chars() string   { return string(v.s) }

// String renders the value the way miniob's own
// TupleCell::to_string does: plain for numbers and booleans, raw text for
// Chars, "NULL" for Undefined.
func (v Value) String() string {
	switch v.Kind {
	case Int32:
		return strconv.FormatInt(int64(v.i32), 10)
	case Float32:
		return strconv.FormatFloat(float64(v.f32), 'f', 2, 32)
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Chars:
		return string(v.s)
	default:
		return "NULL"
	}
}

// castCost is the promotion table implicit-cast insertion and expression
// negative cost means the cast is not legal; the table is intentionally
// sparse (only the promotions the reference C++ engine supports).
var castCost = map[[2]Kind]int{
	{Int32, Float32}: 1,
	{Float32, Int32}: 2,
	{Int32, Bool}:    1,
	{Bool, Int32}:    1,
	{Float32, Bool}:  2,
	{Bool, Float32}:  2,
}

// CastCost returns the cost of casting a value of kind from to kind to, or
// -1 if the cast is not legal. Casting a kind to itself is always free.
func CastCost(from, to Kind) int {
	if from == to {
		return 0
	}
	if c, ok := castCost[[2]Kind{from, to}]; ok {
		return c
	}
	return -1
}

// Cast converts v to target, applying only promotions declared in
// castCost; anything else is the caller's Unsupported error to raise.
func Cast(v Value, target Kind) (Value, error) {
	if v.Kind == target {
		return v, nil
	}
	if CastCost(v.Kind, target) < 0 {
		return Value{}, fmt.Errorf("unsupported cast from %s to %s", v.Kind, target)
	}
	switch target {
	case Int32:
		switch v.Kind {
		case Float32:
			return NewInt32(int32(v.f32)), nil
		case Bool:
			if v.b {
				return NewInt32(1), nil
			}
			return NewInt32(0), nil
		}
	case Float32:
		switch v.Kind {
		case Int32:
			return NewFloat32(float32(v.i32)), nil
		case Bool:
			if v.b {
				return NewFloat32(1), nil
			}
			return NewFloat32(0), nil
		}
	case Bool:
		switch v.Kind {
		case Int32:
			return NewBool(v.i32 != 0), nil
		case Float32:
			return NewBool(v.f32 != 0), nil
		}
	}
	return Value{}, fmt.Errorf("unsupported cast from %s to %s", v.Kind, target)
}

// Comparable reports whether two kinds can be compared, possibly after
// Int<->Float promotion.
func Comparable(a, b Kind) bool {
	if a == b {
		return true
	}
	numeric := func(k Kind) bool { return k == Int32 || k == Float32 }
	return numeric(a) && numeric(b)
}

// Compare orders two values: Int<->Float promotes the Int
// side to Float; Chars compares length-aware byte-wise; Bool compares as
// 0/1. It returns an error if the kinds are not Comparable.
func Compare(a, b Value) (int, error) {
	if !Comparable(a.Kind, b.Kind) {
		return 0, fmt.Errorf("cannot compare %s with %s", a.Kind, b.Kind)
	}
	switch a.Kind {
	case Int32:
		if b.Kind == Int32 {
			return compareInt(int64(a.i32), int64(b.i32)), nil
		}
		return compareFloat(float64(a.i32), float64(b.f32)), nil
	case Float32:
		if b.Kind == Float32 {
			return compareFloat(float64(a.f32), float64(b.f32)), nil
		}
		return compareFloat(float64(a.f32), float64(b.i32)), nil
	case Bool:
		return compareInt(boolToInt(a.b), boolToInt(b.b)), nil
	case Chars:
		return compareChars(a, b), nil
	default:
		return 0, fmt.Errorf("cannot compare undefined values")
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// compareChars compares length-aware: the shorter-declared-length run is
// padded conceptually by comparing only over the shared prefix, then by
// length, matching TupleCell::compare in the reference C++ engine.
func compareChars(a, b Value) int {
	la, lb := len(a.s), len(b.s)
	n := la
	if lb < n {
		n = lb
	}
	for i := 0; i < n; i++ {
		if a.s[i] != b.s[i] {
			if a.s[i] < b.s[i] {
				return -1
			}
			return 1
		}
	}
	return compareInt(int64(la), int64(lb))
}

// ParseKind maps the parser's declared SQL type name to a Kind, used when
// building catalog column metadata from a CREATE TABLE statement.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "INT", "INTEGER":
		return Int32, nil
	case "FLOAT":
		return Float32, nil
	case "CHAR", "CHAR(n)", "STRING_T", "VARCHAR":
		return Chars, nil
	case "BOOL", "BOOLEAN":
		return Bool, nil
	default:
		return Undefined, fmt.Errorf("unknown SQL type %q", name)
	}
}

// ToFloat32 is a small convenience wrapper over spf13/cast used when
// coercing externally-supplied literals (e.g. from LOAD DATA INFILE rows)
// into typed Values, mirroring go-mysql-server's use of spf13/cast for loose
// literal coercion.
func ToFloat32(v interface{}) (float32, error) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if f > math.MaxFloat32 || f < -math.MaxFloat32 {
		return 0, fmt.Errorf("value %v overflows float32", v)
	}
	return float32(f), nil
}

// ToInt32 coerces an externally-supplied literal into an int32.
func ToInt32(v interface{}) (int32, error) {
	i, err := cast.ToInt64E(v)
	if err != nil {
		return 0, err
	}
	if i > math.MaxInt32 || i < math.MinInt32 {
		return 0, fmt.Errorf("value %v overflows int32", v)
	}
	return int32(i), nil
}
