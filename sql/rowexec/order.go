package rowexec

import (
	"io"
	"sort"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/plan"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// orderedRow holds one child tuple materialized into sort-key values plus
// the full projected Row it must re-emit, since the source Tuple becomes
// invalid once the child is pulled again.
type orderedRow struct {
	keys []types.Value
	row  []types.Value
	spec []sql.TupleCellSpec
}

// OrderOp buffers the full child stream, sorts it by Keys (falling back
// key-by-key on ties), and replays it.
type OrderOp struct {
	keys  []plan.OrderKey
	child sql.Operator

	rows []orderedRow
	pos  int
}

// NewOrderOp builds an OrderOp physical operator.
func NewOrderOp(keys []plan.OrderKey, child sql.Operator) *OrderOp {
	return &OrderOp{keys: keys, child: child}
}

func (o *OrderOp) Open(ctx *sql.Context) error {
	if err := o.child.Open(ctx); err != nil {
		return err
	}
	schema := o.child.Schema()
	for {
		t, err := o.child.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		specs := make([]sql.TupleCellSpec, len(schema))
		row := make([]types.Value, len(schema))
		for i, c := range schema {
			specs[i] = sql.TupleCellSpec{Table: c.Table, Field: c.Name, Alias: c.Alias}
			v, err := t.Cell(i)
			if err != nil {
				return err
			}
			row[i] = v
		}
		keys := make([]types.Value, len(o.keys))
		for i, k := range o.keys {
			v, err := k.Expr.Eval(t)
			if err != nil {
				return err
			}
			keys[i] = v
		}
		o.rows = append(o.rows, orderedRow{keys: keys, row: row, spec: specs})
	}
	sort.SliceStable(o.rows, func(i, j int) bool {
		a, b := o.rows[i], o.rows[j]
		for k := range o.keys {
			cmp, err := types.Compare(a.keys[k], b.keys[k])
			if err != nil || cmp == 0 {
				continue
			}
			if o.keys[k].Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return nil
}

func (o *OrderOp) Next(*sql.Context) (sql.Tuple, error) {
	if o.pos >= len(o.rows) {
		return nil, io.EOF
	}
	r := o.rows[o.pos]
	o.pos++
	return sql.NewValueListTuple(r.spec, r.row), nil
}

func (o *OrderOp) Close() error { return o.child.Close() }
func (o *OrderOp) Schema() sql.Schema { return o.child.Schema() }
