package rowexec_test

import (
	"io"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// sliceOp is a minimal in-memory sql.Operator over a fixed row set, used to
// feed the operators under test without going through a real Table/Txn.
type sliceOp struct {
	schema sql.Schema
	rows   [][]types.Value
	pos    int
	opened bool
	closed bool
}

func newSliceOp(schema sql.Schema, rows [][]types.Value) *sliceOp {
	return &sliceOp{schema: schema, rows: rows}
}

func (s *sliceOp) Open(*sql.Context) error {
	s.opened = true
	s.pos = 0
	return nil
}

func (s *sliceOp) Next(*sql.Context) (sql.Tuple, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	specs := make([]sql.TupleCellSpec, len(s.schema))
	for i, c := range s.schema {
		specs[i] = sql.TupleCellSpec{Table: c.Table, Field: c.Name}
	}
	row := s.rows[s.pos]
	s.pos++
	return sql.NewValueListTuple(specs, row), nil
}

func (s *sliceOp) Close() error {
	s.closed = true
	return nil
}

func (s *sliceOp) Schema() sql.Schema { return s.schema }

// failOpenOp fails every Open call; used to exercise the NestedLoopJoin
// partial-open-failure path.
type failOpenOp struct {
	schema sql.Schema
	err    error
}

func (f *failOpenOp) Open(*sql.Context) error                 { return f.err }
func (f *failOpenOp) Next(*sql.Context) (sql.Tuple, error)    { return nil, io.EOF }
func (f *failOpenOp) Close() error                            { return nil }
func (f *failOpenOp) Schema() sql.Schema                      { return f.schema }
