package expression

import (
	"fmt"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// CompOp is the comparison operator of a Comparison node.
// NoOp sits above every real operator so "comp < NoOp" excludes it and any future non-comparison sentinel.
type CompOp int

const (
	Eq CompOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
	NoOp
)

func (op CompOp) String() string {
	switch op {
	case Eq:
		return "="
	case Ne:
		return "<>"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// Comparison evaluates both sides and maps Value ordering to a boolean via
// Op. Kinds must be Comparable, possibly after an already-
// inserted Cast.
type Comparison struct {
	Op          CompOp
	Left, Right Expression
}

// NewComparison builds a Comparison node.
func NewComparison(op CompOp, left, right Expression) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right}
}

func NewEquals(l, r Expression) *Comparison      { return NewComparison(Eq, l, r) }
func NewNotEquals(l, r Expression) *Comparison   { return NewComparison(Ne, l, r) }
func NewLessThan(l, r Expression) *Comparison    { return NewComparison(Lt, l, r) }
func NewLessOrEqual(l, r Expression) *Comparison { return NewComparison(Le, l, r) }
func NewGreaterThan(l, r Expression) *Comparison { return NewComparison(Gt, l, r) }
func NewGreaterOrEqual(l, r Expression) *Comparison {
	return NewComparison(Ge, l, r)
}

func (c *Comparison) Eval(t sql.Tuple) (types.Value, error) {
	lv, err := c.Left.Eval(t)
	if err != nil {
		return types.Value{}, err
	}
	rv, err := c.Right.Eval(t)
	if err != nil {
		return types.Value{}, err
	}
	cmp, err := types.Compare(lv, rv)
	if err != nil {
		return types.Value{}, err
	}
	var result bool
	switch c.Op {
	case Eq:
		result = cmp == 0
	case Ne:
		result = cmp != 0
	case Lt:
		result = cmp < 0
	case Le:
		result = cmp <= 0
	case Gt:
		result = cmp > 0
	case Ge:
		result = cmp >= 0
	default:
		return types.Value{}, fmt.Errorf("unsupported comparison operator %v", c.Op)
	}
	return types.NewBool(result), nil
}

func (c *Comparison) ValueType() types.Kind  { return types.Bool }
func (c *Comparison) Children() []Expression { return []Expression{c.Left, c.Right} }
func (c *Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Left.String(), c.Op, c.Right.String())
}

// Pushable reports whether this atom is eligible for predicate push-down
//: a Comparison with Op < NoOp (always true for a real
// CompOp) whose sides are each a Field or a Literal.
func (c *Comparison) Pushable() bool {
	if c.Op >= NoOp {
		return false
	}
	sideOK := func(e Expression) bool {
		switch e.(type) {
		case *Field, *Literal:
			return true
		default:
			return false
		}
	}
	return sideOK(c.Left) && sideOK(c.Right)
}
