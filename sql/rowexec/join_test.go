package rowexec_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/rowexec"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

func TestNestedLoopJoinEmitsMatchingPairs(t *testing.T) {
	left := newSliceOp(sql.Schema{{Table: "a", Name: "x", Kind: types.Int32}}, [][]types.Value{
		{types.NewInt32(1)},
		{types.NewInt32(2)},
	})
	right := newSliceOp(sql.Schema{{Table: "b", Name: "y", Kind: types.Int32}}, [][]types.Value{
		{types.NewInt32(2)},
		{types.NewInt32(3)},
	})
	schema := append(append(sql.Schema{}, left.schema...), right.schema...)
	join := rowexec.NewNestedLoopJoin(left, right, nil, schema)

	ctx := sql.NewEmptyContext()
	require.NoError(t, join.Open(ctx))
	defer join.Close()

	var pairs [][2]int32
	for {
		tup, err := join.Next(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		lv, err := tup.Cell(0)
		require.NoError(t, err)
		rv, err := tup.Cell(1)
		require.NoError(t, err)
		pairs = append(pairs, [2]int32{lv.Int32(), rv.Int32()})
	}
	require.Equal(t, [][2]int32{{1, 2}, {1, 3}, {2, 2}, {2, 3}}, pairs)
}

// TestNestedLoopJoinClosesLeftAfterRightOpenFails is the regression coverage
// for the open/close balance invariant: left.Open succeeds, right.Open
// fails, and the already-opened left child must still be closed by the
// caller's Close, exactly as miniob.drain relies on.
func TestNestedLoopJoinClosesLeftAfterRightOpenFails(t *testing.T) {
	left := newSliceOp(sql.Schema{{Table: "a", Name: "x", Kind: types.Int32}}, nil)
	right := &failOpenOp{err: errors.New("boom")}
	join := rowexec.NewNestedLoopJoin(left, right, nil, nil)

	ctx := sql.NewEmptyContext()
	err := join.Open(ctx)
	require.Error(t, err)
	require.True(t, left.opened)

	require.NoError(t, join.Close())
	require.True(t, left.closed)
}

func TestNestedLoopJoinCloseIsIdempotent(t *testing.T) {
	left := newSliceOp(sql.Schema{{Table: "a", Name: "x", Kind: types.Int32}}, nil)
	right := newSliceOp(sql.Schema{{Table: "b", Name: "y", Kind: types.Int32}}, nil)
	join := rowexec.NewNestedLoopJoin(left, right, nil, nil)

	ctx := sql.NewEmptyContext()
	require.NoError(t, join.Open(ctx))
	require.NoError(t, join.Close())
	require.NoError(t, join.Close())
}
