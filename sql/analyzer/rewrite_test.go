package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceanbase/miniob-sub003/catalog"
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/analyzer"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/plan"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

func newTable(name string) *catalog.Table {
	return catalog.NewTable(name, sql.Schema{
		{Name: "id", Table: name, Kind: types.Int32},
	})
}

func TestSimplifyConstantsFoldsComparison(t *testing.T) {
	tbl := newTable("t")
	scan := plan.NewTableGet(tbl, plan.ReadOnly)
	lit := expression.NewEquals(expression.NewLiteral(types.NewInt32(1)), expression.NewLiteral(types.NewInt32(1)))
	pred := plan.NewPredicate(lit, scan)

	out, err := analyzer.Rewrite(pred, analyzer.DefaultRules)
	require.NoError(t, err)
	// 1 = 1 folds to true, then FoldPredicate hoists it away entirely.
	require.Equal(t, "TableGet(t)", out.String())
}

func TestFoldPredicateDropsFalseSubtree(t *testing.T) {
	tbl := newTable("t")
	scan := plan.NewTableGet(tbl, plan.ReadOnly)
	lit := expression.NewEquals(expression.NewLiteral(types.NewInt32(1)), expression.NewLiteral(types.NewInt32(2)))
	pred := plan.NewPredicate(lit, scan)

	out, err := analyzer.Rewrite(pred, analyzer.DefaultRules)
	require.NoError(t, err)
	require.Equal(t, "Empty", out.String())
}

func TestPushDownIntoTableGet(t *testing.T) {
	tbl := newTable("t")
	scan := plan.NewTableGet(tbl, plan.ReadOnly)
	field := expression.NewField("t", "id", "", types.Int32)
	cmp := expression.NewEquals(field, expression.NewLiteral(types.NewInt32(2)))
	pred := plan.NewPredicate(cmp, scan)

	out, err := analyzer.Rewrite(pred, analyzer.DefaultRules)
	require.NoError(t, err)
	tg, ok := out.(*plan.TableGet)
	require.True(t, ok)
	require.Len(t, tg.Predicates, 1)
}

func TestPushDownRoutesJoinAtomsToCorrectSide(t *testing.T) {
	a, b := newTable("a"), newTable("b")
	left := plan.NewTableGet(a, plan.ReadOnly)
	right := plan.NewTableGet(b, plan.ReadOnly)
	join := plan.NewJoin(left, right, nil)

	fa := expression.NewField("a", "id", "", types.Int32)
	fb := expression.NewField("b", "id", "", types.Int32)
	onlyLeft := expression.NewEquals(fa, expression.NewLiteral(types.NewInt32(1)))
	crossSide := expression.NewEquals(fa, fb)
	conj := expression.NewAnd(onlyLeft, crossSide)
	pred := plan.NewPredicate(conj, join)

	out, err := analyzer.Rewrite(pred, analyzer.DefaultRules)
	require.NoError(t, err)
	j, ok := out.(*plan.Join)
	require.True(t, ok, "expected residual Join, got %s", out.String())
	require.NotNil(t, j.Filter, "cross-table atom should remain at the join")
	leftPred, ok := j.Left.(*plan.TableGet)
	require.True(t, ok)
	require.Len(t, leftPred.Predicates, 1, "single-table atom should push into the left scan")
}

func TestRewriteIsIdempotentAtFixedPoint(t *testing.T) {
	tbl := newTable("t")
	scan := plan.NewTableGet(tbl, plan.ReadOnly)
	field := expression.NewField("t", "id", "", types.Int32)
	cmp := expression.NewEquals(field, expression.NewLiteral(types.NewInt32(2)))
	pred := plan.NewPredicate(cmp, scan)

	once, err := analyzer.Rewrite(pred, analyzer.DefaultRules)
	require.NoError(t, err)
	twice, err := analyzer.Rewrite(once, analyzer.DefaultRules)
	require.NoError(t, err)
	require.Equal(t, once.String(), twice.String())
}
