package parse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceanbase/miniob-sub003/parse"
)

func TestParseCreateTable(t *testing.T) {
	stmt, err := parse.Parse("CREATE TABLE t (id INT, name CHAR(8));")
	require.NoError(t, err)
	ct, ok := stmt.(*parse.CreateTableStmt)
	require.True(t, ok)
	require.Equal(t, "t", ct.Name)
	require.Equal(t, []parse.ColumnDef{
		{Name: "id", Type: "INT"},
		{Name: "name", Type: "CHAR", Length: 8},
	}, ct.Columns)
}

func TestParseInsertMultiRow(t *testing.T) {
	stmt, err := parse.Parse("INSERT INTO t VALUES (1, 'ab'), (2, 'cd');")
	require.NoError(t, err)
	ins, ok := stmt.(*parse.InsertStmt)
	require.True(t, ok)
	require.Equal(t, "t", ins.Table)
	require.Len(t, ins.Values, 2)
	require.Equal(t, int64(1), ins.Values[0][0].Int)
	require.Equal(t, "ab", ins.Values[0][1].Str)
}

func TestParseSelectWhere(t *testing.T) {
	stmt, err := parse.Parse("SELECT id FROM t WHERE id = 2;")
	require.NoError(t, err)
	sel, ok := stmt.(*parse.SelectStmt)
	require.True(t, ok)
	require.Equal(t, []string{"t"}, sel.Tables)
	require.Len(t, sel.Items, 1)
	cmp, ok := sel.Where.(*parse.Comparison)
	require.True(t, ok)
	require.Equal(t, parse.OpEq, cmp.Op)
}

func TestParseSelectStar(t *testing.T) {
	stmt, err := parse.Parse("SELECT * FROM t;")
	require.NoError(t, err)
	sel := stmt.(*parse.SelectStmt)
	require.Len(t, sel.Items, 1)
	require.NotNil(t, sel.Items[0].Star)
}

func TestParseJoinWhere(t *testing.T) {
	stmt, err := parse.Parse("SELECT a.x, b.y FROM a, b WHERE a.x = b.y;")
	require.NoError(t, err)
	sel := stmt.(*parse.SelectStmt)
	require.Equal(t, []string{"a", "b"}, sel.Tables)
	require.Len(t, sel.Items, 2)
}

func TestParseDeleteWhere(t *testing.T) {
	stmt, err := parse.Parse("DELETE FROM t WHERE id > 0;")
	require.NoError(t, err)
	del := stmt.(*parse.DeleteStmt)
	require.Equal(t, "t", del.Table)
	cmp := del.Where.(*parse.Comparison)
	require.Equal(t, parse.OpGt, cmp.Op)
}

func TestParseExplainSelect(t *testing.T) {
	stmt, err := parse.Parse("EXPLAIN SELECT id FROM t WHERE id = 2;")
	require.NoError(t, err)
	ex := stmt.(*parse.ExplainStmt)
	_, ok := ex.Inner.(*parse.SelectStmt)
	require.True(t, ok)
}

func TestParseAndOrPrecedence(t *testing.T) {
	stmt, err := parse.Parse("SELECT id FROM t WHERE id = 1 OR id = 2 AND id = 3;")
	require.NoError(t, err)
	sel := stmt.(*parse.SelectStmt)
	logical, ok := sel.Where.(*parse.Logical)
	require.True(t, ok)
	require.Equal(t, parse.LogOr, logical.Op)
	right, ok := logical.Right.(*parse.Logical)
	require.True(t, ok)
	require.Equal(t, parse.LogAnd, right.Op)
}

func TestParseCreateIndexAndDrop(t *testing.T) {
	stmt, err := parse.Parse("CREATE INDEX idx ON t (id);")
	require.NoError(t, err)
	ci := stmt.(*parse.CreateIndexStmt)
	require.Equal(t, "idx", ci.Index)
	require.Equal(t, "t", ci.Table)
	require.Equal(t, "id", ci.Column)

	stmt, err = parse.Parse("DROP INDEX idx ON t;")
	require.NoError(t, err)
	di := stmt.(*parse.DropIndexStmt)
	require.Equal(t, "idx", di.Index)
}

func TestParseLoadData(t *testing.T) {
	stmt, err := parse.Parse("LOAD DATA INFILE '/tmp/data.csv' INTO TABLE t;")
	require.NoError(t, err)
	ld := stmt.(*parse.LoadDataStmt)
	require.Equal(t, "/tmp/data.csv", ld.Path)
	require.Equal(t, "t", ld.Table)
}

func TestParseUpdateWhere(t *testing.T) {
	stmt, err := parse.Parse("UPDATE t SET name = 'z' WHERE id = 1;")
	require.NoError(t, err)
	up := stmt.(*parse.UpdateStmt)
	require.Equal(t, "name", up.Column)
	require.Equal(t, "z", up.Value.Str)
}

func TestParseBareSelectArithmetic(t *testing.T) {
	stmt, err := parse.Parse("SELECT 1 + 2;")
	require.NoError(t, err)
	sel := stmt.(*parse.SelectStmt)
	require.Nil(t, sel.Tables)
	_, ok := sel.Items[0].Expr.(*parse.Arithmetic)
	require.True(t, ok)
}
