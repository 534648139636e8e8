package rowexec

import (
	"io"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
)

// DeleteOp extracts the Record from each tuple its child produces and
// deletes it through the transaction. It produces no tuples of its own —
// Next always returns io.EOF once the child is drained.
type DeleteOp struct {
	table sql.Table
	child sql.Operator
	drained bool
}

// NewDeleteOp builds a DeleteOp physical operator.
func NewDeleteOp(table sql.Table, child sql.Operator) *DeleteOp {
	return &DeleteOp{table: table, child: child}
}

func (d *DeleteOp) Open(ctx *sql.Context) error { return d.child.Open(ctx) }

func (d *DeleteOp) Next(ctx *sql.Context) (sql.Tuple, error) {
	if d.drained {
		return nil, io.EOF
	}
	for {
		t, err := d.child.Next(ctx)
		if err == io.EOF {
			d.drained = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		rt, ok := t.(*sql.RowTuple)
		if !ok {
			return nil, errNotARowTuple
		}
		if err := ctx.Txn.DeleteRecord(ctx, d.table, rt.Record().RID); err != nil {
			return nil, err
		}
	}
}

func (d *DeleteOp) Close() error { return d.child.Close() }
func (d *DeleteOp) Schema() sql.Schema { return nil }

// InsertOp constructs a Record per declared value row and inserts it
// through the transaction. One-shot: the first Next drains every row and
// returns io.EOF.
type InsertOp struct {
	table   sql.Table
	values  []sql.Row
	done    bool
}

// NewInsertOp builds an InsertOp physical operator.
func NewInsertOp(table sql.Table, values []sql.Row) *InsertOp {
	return &InsertOp{table: table, values: values}
}

func (i *InsertOp) Open(*sql.Context) error { return nil }

func (i *InsertOp) Next(ctx *sql.Context) (sql.Tuple, error) {
	if i.done {
		return nil, io.EOF
	}
	i.done = true
	for _, row := range i.values {
		if _, err := ctx.Txn.InsertRecord(ctx, i.table, row); err != nil {
			return nil, err
		}
	}
	return nil, io.EOF
}

func (i *InsertOp) Close() error { return nil }
func (i *InsertOp) Schema() sql.Schema { return nil }

// UpdateOp rewrites each child-produced tuple as delete(old)+insert(new).
// column is the positional offset of the updated field within the table's
// schema, so the new row can be built by copying the old one and
// overwriting a single slot.
type UpdateOp struct {
	table   sql.Table
	column  int
	value   expression.Expression
	child   sql.Operator
	drained bool
}

// NewUpdateOp builds an UpdateOp physical operator. column is field's
// positional offset in table.Schema().
func NewUpdateOp(table sql.Table, column int, value expression.Expression, child sql.Operator) *UpdateOp {
	return &UpdateOp{table: table, column: column, value: value, child: child}
}

func (u *UpdateOp) Open(ctx *sql.Context) error { return u.child.Open(ctx) }

func (u *UpdateOp) Next(ctx *sql.Context) (sql.Tuple, error) {
	if u.drained {
		return nil, io.EOF
	}
	for {
		t, err := u.child.Next(ctx)
		if err == io.EOF {
			u.drained = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		rt, ok := t.(*sql.RowTuple)
		if !ok {
			return nil, errNotARowTuple
		}
		newVal, err := u.value.Eval(t)
		if err != nil {
			return nil, err
		}
		oldRow := rt.Record().Row
		newRow := make(sql.Row, len(oldRow))
		copy(newRow, oldRow)
		newRow[u.column] = newVal
		if err := ctx.Txn.DeleteRecord(ctx, u.table, rt.Record().RID); err != nil {
			return nil, err
		}
		if _, err := ctx.Txn.InsertRecord(ctx, u.table, newRow); err != nil {
			return nil, err
		}
	}
}

func (u *UpdateOp) Close() error       { return u.child.Close() }
func (u *UpdateOp) Schema() sql.Schema { return nil }

type notARowTupleError struct{}

func (notARowTupleError) Error() string { return "internal: expected a RowTuple" }

var errNotARowTuple = notARowTupleError{}
