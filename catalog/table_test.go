package catalog_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceanbase/miniob-sub003/catalog"
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

func schema() sql.Schema {
	return sql.Schema{
		{Name: "id", Table: "t", Kind: types.Int32},
		{Name: "name", Table: "t", Kind: types.Chars},
	}
}

func TestTableInsertAndScan(t *testing.T) {
	tbl := catalog.NewTable("t", schema())
	txn := catalog.NewTxn()
	ctx := sql.NewEmptyContext()

	_, err := txn.InsertRecord(ctx, tbl, sql.NewRow(types.NewInt32(1), types.NewChars("a", 10)))
	require.NoError(t, err)
	_, err = txn.InsertRecord(ctx, tbl, sql.NewRow(types.NewInt32(2), types.NewChars("b", 10)))
	require.NoError(t, err)

	scanner, err := tbl.Scanner(ctx)
	require.NoError(t, err)
	var got []int32
	for {
		rec, err := scanner.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, rec.Row[0].Int32())
	}
	require.Equal(t, []int32{1, 2}, got)
}

func TestTableDeleteRemovesFromScan(t *testing.T) {
	tbl := catalog.NewTable("t", schema())
	txn := catalog.NewTxn()
	ctx := sql.NewEmptyContext()

	rid, err := txn.InsertRecord(ctx, tbl, sql.NewRow(types.NewInt32(1), types.NewChars("a", 10)))
	require.NoError(t, err)
	require.NoError(t, txn.DeleteRecord(ctx, tbl, rid))

	scanner, err := tbl.Scanner(ctx)
	require.NoError(t, err)
	_, err = scanner.Next()
	require.Equal(t, io.EOF, err)
}

func TestTxnRollbackUndoesInsertAndDelete(t *testing.T) {
	tbl := catalog.NewTable("t", schema())
	ctx := sql.NewEmptyContext()

	txn1 := catalog.NewTxn()
	rid, err := txn1.InsertRecord(ctx, tbl, sql.NewRow(types.NewInt32(1), types.NewChars("a", 10)))
	require.NoError(t, err)
	require.NoError(t, txn1.Commit(ctx))

	txn2 := catalog.NewTxn()
	require.NoError(t, txn2.DeleteRecord(ctx, tbl, rid))
	require.NoError(t, txn2.Rollback(ctx))

	rec, err := txn2.GetRecord(ctx, tbl, rid)
	require.NoError(t, err)
	require.Equal(t, int32(1), rec.Row[0].Int32())
}

func TestDropIndexRemovesIt(t *testing.T) {
	tbl := catalog.NewTable("t", schema())
	require.NoError(t, tbl.CreateIndex("t_id", "id"))
	require.Len(t, tbl.Indexes(), 1)

	require.NoError(t, tbl.DropIndex("t_id"))
	require.Empty(t, tbl.Indexes())
}

func TestDropIndexUnknownNameErrors(t *testing.T) {
	tbl := catalog.NewTable("t", schema())
	require.Error(t, tbl.DropIndex("nope"))
}

func TestIndexScannerOrdersByKey(t *testing.T) {
	tbl := catalog.NewTable("t", schema())
	require.NoError(t, tbl.CreateIndex("t_id", "id"))
	txn := catalog.NewTxn()
	ctx := sql.NewEmptyContext()

	for _, v := range []int32{3, 1, 2} {
		_, err := txn.InsertRecord(ctx, tbl, sql.NewRow(types.NewInt32(v), types.NewChars("x", 10)))
		require.NoError(t, err)
	}

	scanner, err := tbl.IndexScanner(ctx, "t_id", types.Undef, types.Undef, false, false)
	require.NoError(t, err)
	var order []int32
	for {
		rid, err := scanner.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		rec, err := txn.GetRecord(ctx, tbl, rid)
		require.NoError(t, err)
		order = append(order, rec.Row[0].Int32())
	}
	require.Equal(t, []int32{1, 2, 3}, order)
}
