package expression_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// countingExpr records how many times Eval was called, to prove
// short-circuit evaluation actually skips later children.
type countingExpr struct {
	val   types.Value
	evals *int
}

func (c countingExpr) Eval(sql.Tuple) (types.Value, error) {
	*c.evals++
	return c.val, nil
}
func (c countingExpr) ValueType() types.Kind        { return types.Bool }
func (c countingExpr) Children() []expression.Expression { return nil }
func (c countingExpr) String() string               { return fmt.Sprintf("%v", c.val) }

func TestConjunctionAndShortCircuitsOnFirstFalse(t *testing.T) {
	evals := 0
	first := countingExpr{val: types.NewBool(false), evals: &evals}
	second := countingExpr{val: types.NewBool(true), evals: &evals}
	and := expression.NewAnd(first, second)

	v, err := and.Eval(nil)
	require.NoError(t, err)
	require.False(t, v.Bool())
	require.Equal(t, 1, evals)
}

func TestConjunctionOrShortCircuitsOnFirstTrue(t *testing.T) {
	evals := 0
	first := countingExpr{val: types.NewBool(true), evals: &evals}
	second := countingExpr{val: types.NewBool(false), evals: &evals}
	or := expression.NewOr(first, second)

	v, err := or.Eval(nil)
	require.NoError(t, err)
	require.True(t, v.Bool())
	require.Equal(t, 1, evals)
}

func TestConjunctionAndOverEmptyChildrenIsTrue(t *testing.T) {
	and := expression.NewAnd()
	v, err := and.Eval(nil)
	require.NoError(t, err)
	require.True(t, v.Bool())
}

func TestConjunctionOrOverEmptyChildrenIsFalse(t *testing.T) {
	or := expression.NewOr()
	v, err := or.Eval(nil)
	require.NoError(t, err)
	require.False(t, v.Bool())
}

func TestAtomsSplitsAndConjunctionIntoLeaves(t *testing.T) {
	a := expression.NewLiteral(types.NewBool(true))
	b := expression.NewLiteral(types.NewBool(false))
	c := expression.NewLiteral(types.NewBool(true))
	conj := expression.NewAnd(a, expression.NewAnd(b, c))

	atoms := expression.Atoms(conj)
	require.Equal(t, []expression.Expression{a, b, c}, atoms)
}

func TestAtomsLeavesOrConjunctionAsOneAtom(t *testing.T) {
	a := expression.NewLiteral(types.NewBool(true))
	b := expression.NewLiteral(types.NewBool(false))
	or := expression.NewOr(a, b)

	atoms := expression.Atoms(or)
	require.Equal(t, []expression.Expression{or}, atoms)
}

func TestAtomsOnNonConjunctionReturnsItself(t *testing.T) {
	lit := expression.NewLiteral(types.NewInt32(1))
	require.Equal(t, []expression.Expression{lit}, expression.Atoms(lit))
}
