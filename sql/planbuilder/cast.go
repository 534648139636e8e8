package planbuilder

import (
	"github.com/oceanbase/miniob-sub003/internal/rc"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// InsertCasts walks e and, at every Comparison whose sides disagree in
// kind, inserts the implicit Cast the cast-cost table prescribes: compute the
// cost of casting each side to the other's kind, pick the cheaper legal
// direction, and fold the cast immediately if that side is already a
// constant Literal. A Comparison where neither direction is legal fails
// with Unsupported.
func InsertCasts(e expression.Expression) (expression.Expression, error) {
	switch n := e.(type) {
	case *expression.Comparison:
		left, err := InsertCasts(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := InsertCasts(n.Right)
		if err != nil {
			return nil, err
		}
		left, right, err = balanceKinds(left, right)
		if err != nil {
			return nil, err
		}
		return expression.NewComparison(n.Op, left, right), nil
	case *expression.Conjunction:
		children := make([]expression.Expression, len(n.Children()))
		for i, c := range n.Children() {
			cc, err := InsertCasts(c)
			if err != nil {
				return nil, err
			}
			children[i] = cc
		}
		return expression.NewConjunction(n.Type, children), nil
	case *expression.Arithmetic:
		left, err := InsertCasts(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := InsertCasts(n.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewArithmetic(n.Op, left, right), nil
	case *expression.Cast:
		child, err := InsertCasts(n.Child)
		if err != nil {
			return nil, err
		}
		return expression.NewCast(child, n.Target), nil
	default:
		return e, nil
	}
}

// balanceKinds reconciles l and r's kinds for a Comparison, following
// §4.2's promotion-cost rule: equal kinds are left untouched; otherwise the
// cheaper legal direction is cast, ties broken toward casting the left
// side, folding immediately when that side is a constant Literal.
func balanceKinds(l, r expression.Expression) (expression.Expression, expression.Expression, error) {
	lk, rk := l.ValueType(), r.ValueType()
	if lk == rk {
		return l, r, nil
	}
	costLR := types.CastCost(lk, rk)
	costRL := types.CastCost(rk, lk)
	if costLR < 0 && costRL < 0 {
		return nil, nil, rc.ErrUnsupported.New("cannot compare " + lk.String() + " with " + rk.String())
	}
	if costRL < 0 || (costLR >= 0 && costLR <= costRL) {
		cast, err := castSide(l, rk)
		if err != nil {
			return nil, nil, err
		}
		return cast, r, nil
	}
	cast, err := castSide(r, lk)
	if err != nil {
		return nil, nil, err
	}
	return l, cast, nil
}

// castSide wraps e in a Cast to target, folding immediately if e is
// already a constant Literal.
func castSide(e expression.Expression, target types.Kind) (expression.Expression, error) {
	if lit, ok := e.(*expression.Literal); ok {
		v, err := types.Cast(lit.Val, target)
		if err != nil {
			return nil, rc.ErrUnsupported.New(err.Error())
		}
		return expression.NewLiteral(v), nil
	}
	return expression.NewCast(e, target), nil
}
