package analyzer

import (
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/plan"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// literalBool reports whether e is a boolean Literal, returning its value.
func literalBool(e expression.Expression) (bool, bool) {
	lit, ok := e.(*expression.Literal)
	if !ok || lit.Val.Kind != types.Bool {
		return false, false
	}
	return lit.Val.Bool(), true
}

// FoldPredicate implements the rewrite rule: a Predicate(Value(true))
// is dropped, hoisting its child in its place; a Predicate(Value(false))
// drops the whole subtree, replacing it with plan.Empty.
func FoldPredicate(node plan.LogicalNode) (plan.LogicalNode, bool, error) {
	p, ok := node.(*plan.Predicate)
	if !ok {
		return node, false, nil
	}
	b, isBool := literalBool(p.Expr)
	if !isBool {
		return node, false, nil
	}
	if b {
		return p.Child, true, nil
	}
	return plan.NewEmpty(p.Schema()), true, nil
}
