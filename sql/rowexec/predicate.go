package rowexec

import (
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// PredicateOp pulls from its child until expr evaluates boolean-true,
// returning that tuple.
type PredicateOp struct {
	expr  expression.Expression
	child sql.Operator
}

// NewPredicateOp builds a PredicateOp physical operator.
func NewPredicateOp(expr expression.Expression, child sql.Operator) *PredicateOp {
	return &PredicateOp{expr: expr, child: child}
}

func (p *PredicateOp) Open(ctx *sql.Context) error { return p.child.Open(ctx) }

func (p *PredicateOp) Next(ctx *sql.Context) (sql.Tuple, error) {
	for {
		t, err := p.child.Next(ctx)
		if err != nil {
			return nil, err
		}
		v, err := p.expr.Eval(t)
		if err != nil {
			return nil, err
		}
		b, err := types.Cast(v, types.Bool)
		if err != nil {
			return nil, err
		}
		if b.Bool() {
			return t, nil
		}
	}
}

func (p *PredicateOp) Close() error { return p.child.Close() }
func (p *PredicateOp) Schema() sql.Schema { return p.child.Schema() }
