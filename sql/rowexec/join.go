package rowexec

import (
	"io"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// NestedLoopJoin maintains left_tuple and right_cursor state: advance right; on right EOF, close+reopen right and advance
// left; on left EOF, signal EOF. The right child must be re-openable —
// equality of inner cursors across reopens is not assumed.
type NestedLoopJoin struct {
	left, right sql.Operator
	filter      expression.Expression
	schema      sql.Schema

	leftTuple sql.Tuple
	closed    bool
}

// NewNestedLoopJoin builds a NestedLoopJoin physical operator. filter may
// be nil, in which case every (left, right) pair is emitted.
func NewNestedLoopJoin(left, right sql.Operator, filter expression.Expression, schema sql.Schema) *NestedLoopJoin {
	return &NestedLoopJoin{left: left, right: right, filter: filter, schema: schema}
}

func (j *NestedLoopJoin) Open(ctx *sql.Context) error {
	if err := j.left.Open(ctx); err != nil {
		return err
	}
	if err := j.right.Open(ctx); err != nil {
		return err
	}
	t, err := j.left.Next(ctx)
	if err != nil {
		if err == io.EOF {
			j.leftTuple = nil
			return nil
		}
		return err
	}
	j.leftTuple = t
	return nil
}

func (j *NestedLoopJoin) Next(ctx *sql.Context) (sql.Tuple, error) {
	for {
		if j.leftTuple == nil {
			return nil, io.EOF
		}

		rt, err := j.right.Next(ctx)
		if err == io.EOF {
			if err := j.right.Close(); err != nil {
				return nil, err
			}
			if err := j.right.Open(ctx); err != nil {
				return nil, err
			}
			lt, err := j.left.Next(ctx)
			if err != nil {
				if err == io.EOF {
					j.leftTuple = nil
					return nil, io.EOF
				}
				return nil, err
			}
			j.leftTuple = lt
			continue
		}
		if err != nil {
			return nil, err
		}

		joined := sql.NewJoinedTuple(j.leftTuple, rt, j.schema)
		if j.filter != nil {
			v, err := j.filter.Eval(joined)
			if err != nil {
				return nil, err
			}
			b, err := types.Cast(v, types.Bool)
			if err != nil {
				return nil, err
			}
			if !b.Bool() {
				continue
			}
		}
		return joined, nil
	}
}

func (j *NestedLoopJoin) Close() error {
	if j.closed {
		return nil
	}
	j.closed = true
	lerr := j.left.Close()
	rerr := j.right.Close()
	if lerr != nil {
		return lerr
	}
	return rerr
}

func (j *NestedLoopJoin) Schema() sql.Schema { return j.schema }
