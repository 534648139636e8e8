package planbuilder

import (
	"github.com/oceanbase/miniob-sub003/internal/rc"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/plan"
)

// Build constructs the initial logical operator tree for a resolved
// Statement. Every Comparison the tree carries has already
// passed through InsertCasts by the time Build returns. Statement kinds
// with no logical tree of their own (DDL, session control, Calc,
// HELP/SHOW/DESC) are handled directly by the caller from their resolved
// Statement IR and never reach Build.
func Build(stmt plan.Statement) (plan.LogicalNode, error) {
	switch s := stmt.(type) {
	case *plan.SelectStmt:
		return buildSelect(s)
	case *plan.InsertStmt:
		return plan.NewInsert(s.Table, s.Values), nil
	case *plan.UpdateStmt:
		return buildUpdate(s)
	case *plan.DeleteStmt:
		return buildDelete(s)
	case *plan.ExplainStmt:
		child, err := Build(s.Inner)
		if err != nil {
			return nil, err
		}
		return plan.NewExplain(child), nil
	default:
		return nil, rc.ErrUnimplemented.New("logical planning of this statement kind")
	}
}

// buildSelect follows the logical planner's five-step SELECT shape. When the
// statement has a GROUP BY or any aggregate, GroupBy itself becomes the
// top of the tree: its output column order is group keys followed by
// aggregates in declaration order, so no further Projection is wrapped
// above it, and ORDER BY wraps GroupBy's own output directly — grouping
// happens before sorting, the same phase order the reference engine's
// logical planner uses. Without a GROUP BY, ORDER BY instead wraps the
// filtered scan/join tree *below* the final Projection: OrderKey.Expr is
// resolved against the tables in FROM, not against the projected output
// columns, so evaluating it after Projection would break ORDER BY on a
// column absent from the SELECT list.
func buildSelect(s *plan.SelectStmt) (plan.LogicalNode, error) {
	var tree plan.LogicalNode
	for _, t := range s.Tables {
		get := plan.NewTableGet(t, plan.ReadOnly)
		if tree == nil {
			tree = get
		} else {
			tree = plan.NewJoin(tree, get, nil)
		}
	}

	if filterExpr := s.Filter.Expr(); filterExpr != nil {
		casted, err := InsertCasts(filterExpr)
		if err != nil {
			return nil, err
		}
		tree = plan.NewPredicate(casted, tree)
	}

	if len(s.GroupBy) > 0 || len(s.Aggregates) > 0 {
		for _, p := range s.Projections {
			if !matchesAnyExpr(p, s.GroupBy) {
				return nil, rc.ErrInvalidArgument.New("non-aggregated column " + p.String() + " must appear in GROUP BY")
			}
		}
		tree = plan.NewGroupBy(s.GroupBy, s.Aggregates, tree)
		return wrapOrderBy(s.OrderBy, tree), nil
	}

	tree = wrapOrderBy(s.OrderBy, tree)

	exprs := make([]expression.Expression, len(s.Projections))
	for i, p := range s.Projections {
		casted, err := InsertCasts(p)
		if err != nil {
			return nil, err
		}
		exprs[i] = casted
	}
	return plan.NewProjection(exprs, s.ProjectAliases, tree), nil
}

// wrapOrderBy wraps tree in an Order node when keys is non-empty, leaving
// tree untouched otherwise.
func wrapOrderBy(keys []plan.OrderKey, tree plan.LogicalNode) plan.LogicalNode {
	if len(keys) == 0 {
		return tree
	}
	return plan.NewOrder(keys, tree)
}

func matchesAnyExpr(e expression.Expression, candidates []expression.Expression) bool {
	for _, c := range candidates {
		if c.String() == e.String() {
			return true
		}
	}
	return false
}

func buildDelete(s *plan.DeleteStmt) (plan.LogicalNode, error) {
	var tree plan.LogicalNode = plan.NewTableGet(s.Table, plan.ReadWrite)
	if filterExpr := s.Filter.Expr(); filterExpr != nil {
		casted, err := InsertCasts(filterExpr)
		if err != nil {
			return nil, err
		}
		tree = plan.NewPredicate(casted, tree)
	}
	return plan.NewDelete(s.Table, tree), nil
}

func buildUpdate(s *plan.UpdateStmt) (plan.LogicalNode, error) {
	var tree plan.LogicalNode = plan.NewTableGet(s.Table, plan.ReadWrite)
	if filterExpr := s.Filter.Expr(); filterExpr != nil {
		casted, err := InsertCasts(filterExpr)
		if err != nil {
			return nil, err
		}
		tree = plan.NewPredicate(casted, tree)
	}
	return plan.NewUpdate(s.Table, s.Field, expression.NewLiteral(s.Value), tree), nil
}
