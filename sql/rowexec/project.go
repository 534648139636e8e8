package rowexec

import (
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
)

// ProjectOp evaluates each expression against the child's current tuple
// and exposes a ProjectTuple view, with no materialisation beyond the
// owned expression list.
type ProjectOp struct {
	exprs  []expression.Expression
	cells  []sql.CellExpr
	schema sql.Schema
	child  sql.Operator
}

// NewProjectOp builds a ProjectOp physical operator.
func NewProjectOp(exprs []expression.Expression, schema sql.Schema, child sql.Operator) *ProjectOp {
	cells := make([]sql.CellExpr, len(exprs))
	for i, e := range exprs {
		cells[i] = e
	}
	return &ProjectOp{exprs: exprs, cells: cells, schema: schema, child: child}
}

func (p *ProjectOp) Open(ctx *sql.Context) error { return p.child.Open(ctx) }

func (p *ProjectOp) Next(ctx *sql.Context) (sql.Tuple, error) {
	t, err := p.child.Next(ctx)
	if err != nil {
		return nil, err
	}
	return sql.NewProjectTuple(t, p.cells, p.schema), nil
}

func (p *ProjectOp) Close() error { return p.child.Close() }
func (p *ProjectOp) Schema() sql.Schema { return p.schema }
