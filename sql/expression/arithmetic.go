package expression

import (
	"fmt"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// ArithOp is the operator of an Arithmetic node.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// Arithmetic evaluates two numeric operands and combines them with Op. The
// result is Float32 iff either side is Float32, otherwise Int32.
type Arithmetic struct {
	Op          ArithOp
	Left, Right Expression
}

// NewArithmetic builds an Arithmetic node.
func NewArithmetic(op ArithOp, left, right Expression) *Arithmetic {
	return &Arithmetic{Op: op, Left: left, Right: right}
}

func (a *Arithmetic) Eval(t sql.Tuple) (types.Value, error) {
	lv, err := a.Left.Eval(t)
	if err != nil {
		return types.Value{}, err
	}
	rv, err := a.Right.Eval(t)
	if err != nil {
		return types.Value{}, err
	}
	if lv.Kind != types.Int32 && lv.Kind != types.Float32 {
		return types.Value{}, fmt.Errorf("arithmetic over non-numeric kind %s", lv.Kind)
	}
	if rv.Kind != types.Int32 && rv.Kind != types.Float32 {
		return types.Value{}, fmt.Errorf("arithmetic over non-numeric kind %s", rv.Kind)
	}
	if lv.Kind == types.Float32 || rv.Kind == types.Float32 {
		lf, rf := toFloat(lv), toFloat(rv)
		res, err := applyFloat(a.Op, lf, rf)
		if err != nil {
			return types.Value{}, err
		}
		return types.NewFloat32(res), nil
	}
	res, err := applyInt(a.Op, lv.Int32(), rv.Int32())
	if err != nil {
		return types.Value{}, err
	}
	return types.NewInt32(res), nil
}

func toFloat(v types.Value) float32 {
	if v.Kind == types.Float32 {
		return v.Float32()
	}
	return float32(v.Int32())
}

func applyFloat(op ArithOp, l, r float32) (float32, error) {
	switch op {
	case Add:
		return l + r, nil
	case Sub:
		return l - r, nil
	case Mul:
		return l * r, nil
	case Div:
		if r == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return l / r, nil
	default:
		return 0, fmt.Errorf("unsupported arithmetic operator %v", op)
	}
}

func applyInt(op ArithOp, l, r int32) (int32, error) {
	switch op {
	case Add:
		return l + r, nil
	case Sub:
		return l - r, nil
	case Mul:
		return l * r, nil
	case Div:
		if r == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return l / r, nil
	default:
		return 0, fmt.Errorf("unsupported arithmetic operator %v", op)
	}
}

func (a *Arithmetic) ValueType() types.Kind {
	if a.Left.ValueType() == types.Float32 || a.Right.ValueType() == types.Float32 {
		return types.Float32
	}
	return types.Int32
}

func (a *Arithmetic) Children() []Expression { return []Expression{a.Left, a.Right} }
func (a *Arithmetic) String() string {
	return fmt.Sprintf("%s %s %s", a.Left.String(), a.Op, a.Right.String())
}
