package planbuilder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceanbase/miniob-sub003/parse"
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/plan"
	"github.com/oceanbase/miniob-sub003/sql/planbuilder"
)

func buildStmt(t *testing.T, db sql.Database, sqlText string) plan.LogicalNode {
	t.Helper()
	stmt := resolve(t, db, sqlText)
	node, err := planbuilder.Build(stmt)
	require.NoError(t, err)
	return node
}

func TestBuildSelectSingleTableShape(t *testing.T) {
	db := newDB(usersTable())
	node := buildStmt(t, db, "SELECT id, name FROM users WHERE id = 1;")

	proj, ok := node.(*plan.Projection)
	require.True(t, ok)
	require.Len(t, proj.Exprs, 2)

	pred, ok := proj.Child.(*plan.Predicate)
	require.True(t, ok)

	get, ok := pred.Child.(*plan.TableGet)
	require.True(t, ok)
	require.Equal(t, "users", get.Table.Name())
	require.Equal(t, plan.ReadOnly, get.Mode)
}

func TestBuildSelectNoWhereSkipsPredicate(t *testing.T) {
	db := newDB(usersTable())
	node := buildStmt(t, db, "SELECT id FROM users;")
	proj := node.(*plan.Projection)
	_, ok := proj.Child.(*plan.TableGet)
	require.True(t, ok)
}

func TestBuildSelectMultiTableLeftDeepJoin(t *testing.T) {
	db := newDB(usersTable(), ordersTable())
	node := buildStmt(t, db, "SELECT users.id FROM users, orders WHERE users.id = orders.user_id;")
	proj := node.(*plan.Projection)
	pred := proj.Child.(*plan.Predicate)
	join, ok := pred.Child.(*plan.Join)
	require.True(t, ok)
	left, ok := join.Left.(*plan.TableGet)
	require.True(t, ok)
	require.Equal(t, "users", left.Table.Name())
	right, ok := join.Right.(*plan.TableGet)
	require.True(t, ok)
	require.Equal(t, "orders", right.Table.Name())
}

func TestBuildSelectGroupByOmitsOuterProjection(t *testing.T) {
	db := newDB(ordersTable())
	node := buildStmt(t, db, "SELECT user_id, COUNT(*) FROM orders GROUP BY user_id;")
	gb, ok := node.(*plan.GroupBy)
	require.True(t, ok)
	require.Len(t, gb.GroupExprs, 1)
	require.Len(t, gb.Aggregates, 1)
}

func TestBuildSelectNonGroupedColumnFails(t *testing.T) {
	db := newDB(ordersTable())
	ast, err := parse.Parse("SELECT amount, COUNT(*) FROM orders GROUP BY user_id;")
	require.NoError(t, err)
	stmt, err := planbuilder.Resolve(db, ast)
	require.NoError(t, err)
	_, err = planbuilder.Build(stmt)
	require.Error(t, err)
}

func TestBuildDeleteShape(t *testing.T) {
	db := newDB(usersTable())
	node := buildStmt(t, db, "DELETE FROM users WHERE id = 1;")
	del, ok := node.(*plan.Delete)
	require.True(t, ok)
	pred, ok := del.Child.(*plan.Predicate)
	require.True(t, ok)
	get := pred.Child.(*plan.TableGet)
	require.Equal(t, plan.ReadWrite, get.Mode)
}

func TestBuildDeleteWithoutWhereHasBareScan(t *testing.T) {
	db := newDB(usersTable())
	node := buildStmt(t, db, "DELETE FROM users;")
	del := node.(*plan.Delete)
	_, ok := del.Child.(*plan.TableGet)
	require.True(t, ok)
}

func TestBuildUpdateShape(t *testing.T) {
	db := newDB(usersTable())
	node := buildStmt(t, db, "UPDATE users SET name = 'bob' WHERE id = 1;")
	upd, ok := node.(*plan.Update)
	require.True(t, ok)
	require.Equal(t, "name", upd.Field)
	_, ok = upd.Child.(*plan.Predicate)
	require.True(t, ok)
}

func TestBuildExplainWrapsChild(t *testing.T) {
	db := newDB(usersTable())
	node := buildStmt(t, db, "EXPLAIN SELECT id FROM users;")
	ex, ok := node.(*plan.Explain)
	require.True(t, ok)
	_, ok = ex.Child.(*plan.Projection)
	require.True(t, ok)
}

func TestBuildInsertCasts(t *testing.T) {
	db := newDB(usersTable())
	node := buildStmt(t, db, "SELECT id FROM users WHERE id = 1;")
	proj := node.(*plan.Projection)
	pred := proj.Child.(*plan.Predicate)
	cmp, ok := pred.Expr.(*expression.Comparison)
	require.True(t, ok)
	_, isField := cmp.Left.(*expression.Field)
	require.True(t, isField)
	_, isLiteral := cmp.Right.(*expression.Literal)
	require.True(t, isLiteral)
}
