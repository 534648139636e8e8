package rowexec

import (
	"io"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// CalcOp emits exactly one tuple with each expression evaluated against an
// empty tuple (constants only); io.EOF thereafter.
type CalcOp struct {
	exprs []expression.Expression
	done  bool
}

// NewCalcOp builds a CalcOp physical operator.
func NewCalcOp(exprs []expression.Expression) *CalcOp {
	return &CalcOp{exprs: exprs}
}

func (c *CalcOp) Open(*sql.Context) error { return nil }

func (c *CalcOp) Next(*sql.Context) (sql.Tuple, error) {
	if c.done {
		return nil, io.EOF
	}
	c.done = true
	specs := make([]sql.TupleCellSpec, len(c.exprs))
	vals := make([]types.Value, len(c.exprs))
	for i, e := range c.exprs {
		v, err := e.Eval(nil)
		if err != nil {
			return nil, err
		}
		specs[i] = sql.TupleCellSpec{Field: e.String()}
		vals[i] = v
	}
	return sql.NewValueListTuple(specs, vals), nil
}

func (c *CalcOp) Close() error { return nil }

func (c *CalcOp) Schema() sql.Schema {
	schema := make(sql.Schema, len(c.exprs))
	for i, e := range c.exprs {
		schema[i] = &sql.Column{Name: e.String(), Kind: e.ValueType()}
	}
	return schema
}
