package analyzer

import (
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/plan"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// PushDownPredicates implements the push-down rule: split a Predicate's
// AND-conjunction into atoms; push each pushable atom into the TableGet it
// sits over, or route it to whichever side of a Join its fields belong to
// (an atom touching both sides stays at the join). If every atom pushes
// down, the Predicate's residual expression becomes Value(true), kept to
// preserve tree shape for FoldPredicate to hoist away on a later pass.
func PushDownPredicates(node plan.LogicalNode) (plan.LogicalNode, bool, error) {
	p, ok := node.(*plan.Predicate)
	if !ok {
		return node, false, nil
	}
	atoms := expression.Atoms(p.Expr)

	switch child := p.Child.(type) {
	case *plan.TableGet:
		return pushIntoTableGet(p, child, atoms)
	case *plan.Join:
		return pushIntoJoin(p, child, atoms)
	default:
		return node, false, nil
	}
}

func pushIntoTableGet(p *plan.Predicate, tg *plan.TableGet, atoms []expression.Expression) (plan.LogicalNode, bool, error) {
	var residual []expression.Expression
	pushed := make([]expression.Expression, len(tg.Predicates))
	copy(pushed, tg.Predicates)
	changed := false
	for _, atom := range atoms {
		if pushable(atom) {
			pushed = append(pushed, atom)
			changed = true
			continue
		}
		residual = append(residual, atom)
	}
	if !changed {
		return p, false, nil
	}
	newTable := tg.WithPredicates(pushed)
	newPred := *p
	newPred.Child = newTable
	newPred.Expr = residualExpr(residual)
	return &newPred, true, nil
}

func pushIntoJoin(p *plan.Predicate, join *plan.Join, atoms []expression.Expression) (plan.LogicalNode, bool, error) {
	leftSchema := join.Left.Schema()
	rightSchema := join.Right.Schema()

	newJoin := *join
	var residual []expression.Expression
	changed := false
	for _, atom := range atoms {
		if !pushable(atom) {
			residual = append(residual, atom)
			continue
		}
		tables := fieldTables(atom)
		switch {
		case allTablesIn(tables, leftSchema):
			newJoin.Left = plan.NewPredicate(atom, newJoin.Left)
			changed = true
		case allTablesIn(tables, rightSchema):
			newJoin.Right = plan.NewPredicate(atom, newJoin.Right)
			changed = true
		default:
			newJoin.Filter = andExpr(newJoin.Filter, atom)
			changed = true
		}
	}
	if !changed {
		return p, false, nil
	}
	newPred := *p
	newPred.Child = &newJoin
	newPred.Expr = residualExpr(residual)
	return &newPred, true, nil
}

// pushable mirrors the rule's definition: a Comparison with comp <
// NoOp (true of every real operator) whose sides are each a FieldExpr or a
// ValueExpr (expression.Comparison.Pushable already encodes this).
func pushable(e expression.Expression) bool {
	cmp, ok := e.(*expression.Comparison)
	return ok && cmp.Pushable()
}

// fieldTables collects the distinct table names referenced by Field nodes
// in e's subtree.
func fieldTables(e expression.Expression) []string {
	if f, ok := e.(*expression.Field); ok {
		return []string{f.Spec.Table}
	}
	var out []string
	for _, c := range e.Children() {
		out = append(out, fieldTables(c)...)
	}
	return out
}

func allTablesIn(tables []string, schema sql.Schema) bool {
	if len(tables) == 0 {
		return false
	}
	for _, t := range tables {
		found := false
		for _, c := range schema {
			if c.Table == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// andExpr ANDs extra onto base, treating a nil base as "no filter yet".
func andExpr(base expression.Expression, extra expression.Expression) expression.Expression {
	if base == nil {
		return extra
	}
	return expression.NewAnd(base, extra)
}

// residualExpr folds the atoms a Predicate could not push down back into a
// single expression; an empty residual becomes Value(true).
func residualExpr(residual []expression.Expression) expression.Expression {
	if len(residual) == 0 {
		return expression.NewLiteral(types.NewBool(true))
	}
	if len(residual) == 1 {
		return residual[0]
	}
	return expression.NewAnd(residual...)
}
