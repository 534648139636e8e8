package expression_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

func TestComparisonEvaluatesEachOperator(t *testing.T) {
	tests := []struct {
		op   expression.CompOp
		l, r int32
		want bool
	}{
		{expression.Eq, 2, 2, true},
		{expression.Eq, 2, 3, false},
		{expression.Ne, 2, 3, true},
		{expression.Lt, 2, 3, true},
		{expression.Le, 3, 3, true},
		{expression.Gt, 3, 2, true},
		{expression.Ge, 3, 3, true},
	}
	for _, tt := range tests {
		cmp := expression.NewComparison(tt.op, expression.NewLiteral(types.NewInt32(tt.l)), expression.NewLiteral(types.NewInt32(tt.r)))
		v, err := cmp.Eval(nil)
		require.NoError(t, err)
		require.Equal(t, tt.want, v.Bool(), "%s %v %v", tt.op, tt.l, tt.r)
	}
}

func TestComparisonPromotesIntToFloat(t *testing.T) {
	cmp := expression.NewEquals(expression.NewLiteral(types.NewInt32(2)), expression.NewLiteral(types.NewFloat32(2.0)))
	v, err := cmp.Eval(nil)
	require.NoError(t, err)
	require.True(t, v.Bool())
}

func TestComparisonPushableOnlyForFieldOrLiteralAtoms(t *testing.T) {
	field := expression.NewField("t", "a", "", types.Int32)
	lit := expression.NewLiteral(types.NewInt32(1))
	require.True(t, expression.NewEquals(field, lit).Pushable())

	nested := expression.NewArithmetic(expression.Add, field, lit)
	require.False(t, expression.NewEquals(nested, lit).Pushable())
}

func TestCastAppliesDeclaredPromotion(t *testing.T) {
	cast := expression.NewCast(expression.NewLiteral(types.NewInt32(3)), types.Float32)
	v, err := cast.Eval(nil)
	require.NoError(t, err)
	require.Equal(t, types.Float32, v.Kind)
	require.Equal(t, float32(3), v.Float32())
}

func TestCastRejectsUndeclaredPromotion(t *testing.T) {
	cast := expression.NewCast(expression.NewLiteral(types.NewChars("x", 1)), types.Int32)
	_, err := cast.Eval(nil)
	require.Error(t, err)
}

func TestArithmeticPromotesToFloatWhenEitherSideIsFloat(t *testing.T) {
	add := expression.NewArithmetic(expression.Add, expression.NewLiteral(types.NewInt32(1)), expression.NewLiteral(types.NewFloat32(1.5)))
	v, err := add.Eval(nil)
	require.NoError(t, err)
	require.Equal(t, types.Float32, v.Kind)
	require.Equal(t, float32(2.5), v.Float32())
}

func TestArithmeticDivisionByZeroErrors(t *testing.T) {
	div := expression.NewArithmetic(expression.Div, expression.NewLiteral(types.NewInt32(1)), expression.NewLiteral(types.NewInt32(0)))
	_, err := div.Eval(nil)
	require.Error(t, err)
}
