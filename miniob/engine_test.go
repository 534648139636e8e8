package miniob_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceanbase/miniob-sub003/catalog"
	"github.com/oceanbase/miniob-sub003/miniob"
	"github.com/oceanbase/miniob-sub003/sql"
)

func newEngine() (*miniob.Engine, *sql.Context, *miniob.Session) {
	db := catalog.NewDatabase("test")
	return miniob.New(db, nil), sql.NewEmptyContext(), miniob.NewSession()
}

func exec(t *testing.T, e *miniob.Engine, ctx *sql.Context, sess *miniob.Session, query string) *miniob.Result {
	t.Helper()
	res, err := e.Execute(ctx, sess, query)
	require.NoError(t, err, query)
	return res
}

func TestEndToEndTableScanWithPushedDownPredicate(t *testing.T) {
	e, ctx, sess := newEngine()
	exec(t, e, ctx, sess, "CREATE TABLE t (id INT, name CHAR(8));")
	exec(t, e, ctx, sess, "INSERT INTO t VALUES (1, 'ab');")
	exec(t, e, ctx, sess, "INSERT INTO t VALUES (2, 'cd');")

	res := exec(t, e, ctx, sess, "SELECT id FROM t WHERE id = 2;")
	require.Equal(t, []string{"id"}, res.Columns)
	require.Equal(t, [][]string{{"2"}}, res.Rows)

	explain := exec(t, e, ctx, sess, "EXPLAIN SELECT id FROM t WHERE id = 2;")
	require.Contains(t, explain.Rows[0][0], "TABLE_SCAN(t)")
}

func TestEndToEndIndexScan(t *testing.T) {
	e, ctx, sess := newEngine()
	exec(t, e, ctx, sess, "CREATE TABLE t (id INT, name CHAR(8));")
	exec(t, e, ctx, sess, "INSERT INTO t VALUES (1, 'ab');")
	exec(t, e, ctx, sess, "INSERT INTO t VALUES (2, 'cd');")
	exec(t, e, ctx, sess, "CREATE INDEX idx ON t (id);")

	res := exec(t, e, ctx, sess, "SELECT name FROM t WHERE id = 1;")
	require.Equal(t, [][]string{{"ab"}}, res.Rows)

	explain := exec(t, e, ctx, sess, "EXPLAIN SELECT name FROM t WHERE id = 1;")
	require.Contains(t, explain.Rows[0][0], "INDEX_SCAN(idx)")
}

func TestEndToEndJoinKeepsPredicateAtJoin(t *testing.T) {
	e, ctx, sess := newEngine()
	exec(t, e, ctx, sess, "CREATE TABLE a (x INT);")
	exec(t, e, ctx, sess, "CREATE TABLE b (y INT);")
	exec(t, e, ctx, sess, "INSERT INTO a VALUES (1);")
	exec(t, e, ctx, sess, "INSERT INTO a VALUES (2);")
	exec(t, e, ctx, sess, "INSERT INTO b VALUES (2);")
	exec(t, e, ctx, sess, "INSERT INTO b VALUES (3);")

	res := exec(t, e, ctx, sess, "SELECT a.x, b.y FROM a, b WHERE a.x = b.y;")
	require.Equal(t, []string{"a.x", "b.y"}, res.Columns)
	require.Equal(t, [][]string{{"2", "2"}}, res.Rows)

	explain := exec(t, e, ctx, sess, "EXPLAIN SELECT a.x, b.y FROM a, b WHERE a.x = b.y;")
	require.Contains(t, explain.Rows[0][0], "NESTED_LOOP_JOIN")
}

func TestEndToEndDeleteThenEmptyScan(t *testing.T) {
	e, ctx, sess := newEngine()
	exec(t, e, ctx, sess, "CREATE TABLE t (id INT, name CHAR(8));")
	exec(t, e, ctx, sess, "INSERT INTO t VALUES (1, 'ab');")
	exec(t, e, ctx, sess, "INSERT INTO t VALUES (2, 'cd');")

	exec(t, e, ctx, sess, "DELETE FROM t WHERE id > 0;")
	res := exec(t, e, ctx, sess, "SELECT * FROM t;")
	require.Empty(t, res.Rows)
}

func TestEndToEndConstantFoldingDropsTautology(t *testing.T) {
	e, ctx, sess := newEngine()
	exec(t, e, ctx, sess, "CREATE TABLE t (id INT, name CHAR(8));")
	exec(t, e, ctx, sess, "INSERT INTO t VALUES (1, 'ab');")
	exec(t, e, ctx, sess, "INSERT INTO t VALUES (2, 'cd');")

	plain := exec(t, e, ctx, sess, "SELECT id FROM t WHERE id = 2;")
	folded := exec(t, e, ctx, sess, "SELECT id FROM t WHERE 1 = 1 AND id = 2;")
	require.Equal(t, plain.Rows, folded.Rows)
}

func TestBeginCommitRollback(t *testing.T) {
	e, ctx, sess := newEngine()
	exec(t, e, ctx, sess, "CREATE TABLE t (id INT, name CHAR(8));")

	exec(t, e, ctx, sess, "BEGIN;")
	exec(t, e, ctx, sess, "INSERT INTO t VALUES (1, 'ab');")
	exec(t, e, ctx, sess, "ROLLBACK;")
	res := exec(t, e, ctx, sess, "SELECT * FROM t;")
	require.Empty(t, res.Rows)

	exec(t, e, ctx, sess, "BEGIN;")
	exec(t, e, ctx, sess, "INSERT INTO t VALUES (1, 'ab');")
	exec(t, e, ctx, sess, "COMMIT;")
	res = exec(t, e, ctx, sess, "SELECT * FROM t;")
	require.Len(t, res.Rows, 1)
}

func TestDoubleBeginErrors(t *testing.T) {
	e, ctx, sess := newEngine()
	exec(t, e, ctx, sess, "BEGIN;")
	_, err := e.Execute(ctx, sess, "BEGIN;")
	require.Error(t, err)
}

func TestDDLAndIntrospection(t *testing.T) {
	e, ctx, sess := newEngine()
	exec(t, e, ctx, sess, "CREATE TABLE t (id INT, name CHAR(8));")

	show := exec(t, e, ctx, sess, "SHOW TABLES;")
	require.Equal(t, [][]string{{"t"}}, show.Rows)

	desc := exec(t, e, ctx, sess, "DESC t;")
	require.Len(t, desc.Rows, 2)

	exec(t, e, ctx, sess, "CREATE INDEX idx ON t (id);")
	exec(t, e, ctx, sess, "DROP INDEX idx ON t;")

	exec(t, e, ctx, sess, "DROP TABLE t;")
	show = exec(t, e, ctx, sess, "SHOW TABLES;")
	require.Empty(t, show.Rows)
}

func TestHelpAndExit(t *testing.T) {
	e, ctx, sess := newEngine()
	help := exec(t, e, ctx, sess, "HELP;")
	require.NotEmpty(t, help.Rows)

	exit := exec(t, e, ctx, sess, "EXIT;")
	require.True(t, exit.Exit)
}

func TestCalcStmtBareExpression(t *testing.T) {
	e, ctx, sess := newEngine()
	res := exec(t, e, ctx, sess, "SELECT 1 + 2;")
	require.Equal(t, [][]string{{"3"}}, res.Rows)
}

func TestSchemaErrorOnMissingTable(t *testing.T) {
	e, ctx, sess := newEngine()
	_, err := e.Execute(ctx, sess, "SELECT id FROM nope;")
	require.Error(t, err)
}

func TestIncomparableKindsAreUnsupportedAtPlanTime(t *testing.T) {
	e, ctx, sess := newEngine()
	exec(t, e, ctx, sess, "CREATE TABLE t (id INT, name CHAR(8));")
	_, err := e.Execute(ctx, sess, "SELECT id FROM t WHERE name = 1;")
	require.Error(t, err)
}

func TestLoadDataInsertsCoercedRows(t *testing.T) {
	e, ctx, sess := newEngine()
	exec(t, e, ctx, sess, "CREATE TABLE t (id INT, name CHAR(8));")

	path := t.TempDir() + "/rows.txt"
	require.NoError(t, os.WriteFile(path, []byte("1|ab\n2|cd\n"), 0o644))

	res := exec(t, e, ctx, sess, "LOAD DATA INFILE '"+path+"' INTO TABLE t;")
	require.Equal(t, "SUCCESS", res.Status)

	got := exec(t, e, ctx, sess, "SELECT id FROM t WHERE id = 2;")
	require.Equal(t, [][]string{{"2"}}, got.Rows)
}
