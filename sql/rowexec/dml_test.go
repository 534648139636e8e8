package rowexec_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceanbase/miniob-sub003/catalog"
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/rowexec"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

func newTestTable(t *testing.T, name string, rows ...sql.Row) (*catalog.Table, *sql.Context) {
	t.Helper()
	schema := sql.Schema{
		{Table: name, Name: "id", Kind: types.Int32},
		{Table: name, Name: "val", Kind: types.Int32},
	}
	tbl := catalog.NewTable(name, schema)
	ctx := sql.NewEmptyContext().WithTxn(catalog.NewTxn())
	for _, row := range rows {
		_, err := ctx.Txn.InsertRecord(ctx, tbl, row)
		require.NoError(t, err)
	}
	return tbl, ctx
}

func scanAll(t *testing.T, ctx *sql.Context, tbl *catalog.Table) []sql.Row {
	t.Helper()
	scanner, err := tbl.Scanner(ctx)
	require.NoError(t, err)
	defer scanner.Close()
	var rows []sql.Row
	for {
		rec, err := scanner.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		rows = append(rows, rec.Row)
	}
	return rows
}

func TestInsertOpInsertsEveryValueRow(t *testing.T) {
	tbl := catalog.NewTable("t", sql.Schema{
		{Table: "t", Name: "id", Kind: types.Int32},
	})
	ctx := sql.NewEmptyContext().WithTxn(catalog.NewTxn())

	op := rowexec.NewInsertOp(tbl, []sql.Row{
		sql.NewRow(types.NewInt32(1)),
		sql.NewRow(types.NewInt32(2)),
	})
	require.NoError(t, op.Open(ctx))
	_, err := op.Next(ctx)
	require.Equal(t, io.EOF, err)
	require.NoError(t, op.Close())

	rows := scanAll(t, ctx, tbl)
	require.Len(t, rows, 2)
}

func TestDeleteOpDeletesEveryScannedRecord(t *testing.T) {
	tbl, ctx := newTestTable(t, "t",
		sql.NewRow(types.NewInt32(1), types.NewInt32(10)),
		sql.NewRow(types.NewInt32(2), types.NewInt32(20)),
	)
	scanner := rowexec.NewTableScan(tbl, nil)

	op := rowexec.NewDeleteOp(tbl, scanner)
	require.NoError(t, op.Open(ctx))
	_, err := op.Next(ctx)
	require.Equal(t, io.EOF, err)
	require.NoError(t, op.Close())

	require.Empty(t, scanAll(t, ctx, tbl))
}

func TestUpdateOpRewritesTargetColumn(t *testing.T) {
	tbl, ctx := newTestTable(t, "t",
		sql.NewRow(types.NewInt32(1), types.NewInt32(10)),
	)
	scanner := rowexec.NewTableScan(tbl, nil)

	op := rowexec.NewUpdateOp(tbl, 1, expression.NewLiteral(types.NewInt32(99)), scanner)
	require.NoError(t, op.Open(ctx))
	_, err := op.Next(ctx)
	require.Equal(t, io.EOF, err)
	require.NoError(t, op.Close())

	rows := scanAll(t, ctx, tbl)
	require.Len(t, rows, 1)
	require.Equal(t, int32(99), rows[0][1].Int32())
}

func TestDMLOpsHaveNoOutputSchema(t *testing.T) {
	tbl := catalog.NewTable("t", sql.Schema{{Table: "t", Name: "id", Kind: types.Int32}})
	require.Nil(t, rowexec.NewDeleteOp(tbl, nil).Schema())
	require.Nil(t, rowexec.NewUpdateOp(tbl, 0, nil, nil).Schema())
	require.Nil(t, rowexec.NewInsertOp(tbl, nil).Schema())
}
