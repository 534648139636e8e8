// Package rowexec implements physical lowering and the
// Volcano-style executor. Lower maps each logical node to a
// physical sql.Operator, wiring children bottom-up, the same shape as
// go-mysql-server's rowexec.Builder, which type-switches over a resolved sql.Node
// and builds a RowIter per case (sql/rowexec/*_test.go throughout this
// package construct operators this way and drive them with RowIter.Next).
package rowexec

import (
	"github.com/oceanbase/miniob-sub003/internal/rc"
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/plan"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// Lower builds the physical operator tree for node.
func Lower(node plan.LogicalNode) (sql.Operator, error) {
	switch n := node.(type) {
	case *plan.Empty:
		return NewEmptyOp(n.Schema()), nil
	case *plan.TableGet:
		return lowerTableGet(n)
	case *plan.Predicate:
		child, err := Lower(n.Child)
		if err != nil {
			return nil, err
		}
		return NewPredicateOp(n.Expr, child), nil
	case *plan.Projection:
		child, err := Lower(n.Child)
		if err != nil {
			return nil, err
		}
		return NewProjectOp(n.Exprs, n.Schema(), child), nil
	case *plan.Join:
		left, err := Lower(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Lower(n.Right)
		if err != nil {
			return nil, err
		}
		return NewNestedLoopJoin(left, right, n.Filter, n.Schema()), nil
	case *plan.Delete:
		child, err := Lower(n.Child)
		if err != nil {
			return nil, err
		}
		return NewDeleteOp(n.Table, child), nil
	case *plan.Update:
		child, err := Lower(n.Child)
		if err != nil {
			return nil, err
		}
		column := n.Table.Schema().IndexOf("", n.Field)
		if column < 0 {
			return nil, rc.ErrSchemaFieldMissing.New(n.Field, n.Table.Name())
		}
		return NewUpdateOp(n.Table, column, n.Value, child), nil
	case *plan.Insert:
		return NewInsertOp(n.Table, n.Values), nil
	case *plan.Explain:
		return NewExplainOp(n.Child), nil
	case *plan.GroupBy:
		child, err := Lower(n.Child)
		if err != nil {
			return nil, err
		}
		if len(n.GroupExprs) == 0 {
			return NewScalarGroupBy(n.Aggregates, n.Schema(), child), nil
		}
		return NewHashGroupBy(n.GroupExprs, n.Aggregates, n.Schema(), child), nil
	case *plan.Order:
		child, err := Lower(n.Child)
		if err != nil {
			return nil, err
		}
		return NewOrderOp(n.Keys, child), nil
	default:
		return nil, rc.ErrUnimplemented.New("lowering of logical node " + node.String())
	}
}

// lowerTableGet applies the scan-choice rule: IndexScan iff a
// single-column equality or range predicate exists on an indexed column
// with typed-constant bounds; otherwise TableScan, with every predicate
// left as the scan's residual filter list.
func lowerTableGet(n *plan.TableGet) (sql.Operator, error) {
	idx, lo, hi, loIncl, hiIncl, residual, ok := chooseIndex(n.Table, n.Predicates)
	if ok {
		return NewIndexScan(n.Table, idx, lo, hi, loIncl, hiIncl, residual), nil
	}
	return NewTableScan(n.Table, n.Predicates), nil
}

func chooseIndex(table sql.Table, preds []expression.Expression) (idx sql.Index, lo, hi types.Value, loIncl, hiIncl bool, residual []expression.Expression, ok bool) {
	indexes := table.Indexes()
	if len(indexes) == 0 {
		return idx, lo, hi, false, false, preds, false
	}

	for _, candidate := range indexes {
		var matched []expression.Expression
		var rest []expression.Expression
		curLo, curHi := types.Undef, types.Undef
		curLoIncl, curHiIncl := false, false
		found := false

		for _, p := range preds {
			cmp, isCmp := p.(*expression.Comparison)
			field, lit, hit := fieldLiteral(cmp, isCmp, candidate.Column)
			if !hit {
				rest = append(rest, p)
				continue
			}
			_ = field
			switch cmp.Op {
			case expression.Eq:
				curLo, curLoIncl = lit, true
				curHi, curHiIncl = lit, true
				found = true
			case expression.Lt:
				curHi, curHiIncl = lit, false
				found = true
			case expression.Le:
				curHi, curHiIncl = lit, true
				found = true
			case expression.Gt:
				curLo, curLoIncl = lit, false
				found = true
			case expression.Ge:
				curLo, curLoIncl = lit, true
				found = true
			default:
				rest = append(rest, p)
				continue
			}
			matched = append(matched, p)
		}

		if found {
			return candidate, curLo, curHi, curLoIncl, curHiIncl, rest, true
		}
	}
	return idx, lo, hi, false, false, preds, false
}

// fieldLiteral reports whether cmp is a Comparison between column and a
// Literal (in either order), returning the literal value.
func fieldLiteral(cmp *expression.Comparison, isCmp bool, column string) (*expression.Field, types.Value, bool) {
	if !isCmp {
		return nil, types.Value{}, false
	}
	if f, ok := cmp.Left.(*expression.Field); ok && f.Spec.Field == column {
		if lit, ok := cmp.Right.(*expression.Literal); ok {
			return f, lit.Val, true
		}
	}
	if f, ok := cmp.Right.(*expression.Field); ok && f.Spec.Field == column {
		if lit, ok := cmp.Left.(*expression.Literal); ok {
			return f, lit.Val, true
		}
	}
	return nil, types.Value{}, false
}
