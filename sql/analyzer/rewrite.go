// Package analyzer implements the rule-based, fixed-point rewriter of
// the rewrite pass: expression simplification, predicate folding and
// predicate push-down past joins and scans. It is named and shaped after
// go-mysql-server's own sql/analyzer package (an ordered list of rules applied
// to a plan tree until none reports a change; see
// sql/analyzer/rules_test.go and sql/analyzer/optimization_rules_test.go
// throughout go-mysql-server for the rule-function idiom this mirrors).
package analyzer

import (
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/plan"
)

// Rule rewrites a single node, reporting whether it made a change. It must
// not recurse into node's children; Rewrite handles recursion so that every
// rule only ever has to reason about the node in front of it.
type Rule func(node plan.LogicalNode) (plan.LogicalNode, bool, error)

// DefaultRules is the rewriter's rule set, in order: expression
// simplification, predicate folding, predicate push-down.
var DefaultRules = []Rule{
	SimplifyConstants,
	FoldPredicate,
	PushDownPredicates,
}

// Rewrite applies rules to node to a fixed point: each full pass applies
// every rule to the root, then recurses into children, and repeats until a
// whole pass makes no change. Termination is guaranteed
// because each rule strictly reduces a well-founded measure.
func Rewrite(node plan.LogicalNode, rules []Rule) (plan.LogicalNode, error) {
	for {
		next, changed, err := pass(node, rules)
		if err != nil {
			return nil, err
		}
		if !changed {
			return next, nil
		}
		node = next
	}
}

// pass applies every rule to node, then recurses into its (possibly
// rule-rewritten) children, returning whether anything changed anywhere in
// the subtree.
func pass(node plan.LogicalNode, rules []Rule) (plan.LogicalNode, bool, error) {
	changedHere := false
	for _, rule := range rules {
		next, changed, err := rule(node)
		if err != nil {
			return nil, false, err
		}
		if changed {
			node = next
			changedHere = true
		}
	}

	children := node.Children()
	if len(children) == 0 {
		return node, changedHere, nil
	}
	newChildren := make([]plan.LogicalNode, len(children))
	childChanged := false
	for i, c := range children {
		nc, changed, err := pass(c, rules)
		if err != nil {
			return nil, false, err
		}
		newChildren[i] = nc
		if changed {
			childChanged = true
		}
	}
	if !childChanged {
		return node, changedHere, nil
	}
	rebuilt, err := node.WithChildren(newChildren...)
	if err != nil {
		return nil, false, err
	}
	return rebuilt, true, nil
}

// rewriteExpr applies SimplifyConstants-style constant folding to every
// Comparison in e's subtree, bottom-up, returning the rewritten expression
// and whether anything changed. Shared by SimplifyConstants wherever an
// expression tree appears in a logical node (Predicate.Expr, Join.Filter,
// TableGet.Predicates).
func rewriteExpr(e expression.Expression) (expression.Expression, bool) {
	if e == nil {
		return nil, false
	}
	changed := false
	children := e.Children()
	switch n := e.(type) {
	case *expression.Comparison:
		left, lc := rewriteExpr(n.Left)
		right, rc := rewriteExpr(n.Right)
		if lc || rc {
			n = expression.NewComparison(n.Op, left, right)
			changed = true
		}
		if v, ok := expression.TryEval(n); ok {
			return expression.NewLiteral(v), true
		}
		return n, changed
	case *expression.Conjunction:
		newChildren := make([]expression.Expression, len(children))
		for i, c := range children {
			nc, cc := rewriteExpr(c)
			newChildren[i] = nc
			if cc {
				changed = true
			}
		}
		if !changed {
			return n, false
		}
		return expression.NewConjunction(n.Type, newChildren), true
	case *expression.Cast:
		child, cc := rewriteExpr(n.Child)
		if !cc {
			return n, false
		}
		return expression.NewCast(child, n.Target), true
	default:
		return e, false
	}
}

// SimplifyConstants replaces any Comparison whose both sides are constant
// (expression.TryEval succeeds) with a boolean Literal, wherever such an expression appears in node.
func SimplifyConstants(node plan.LogicalNode) (plan.LogicalNode, bool, error) {
	switch n := node.(type) {
	case *plan.Predicate:
		expr, changed := rewriteExpr(n.Expr)
		if !changed {
			return node, false, nil
		}
		cp := *n
		cp.Expr = expr
		return &cp, true, nil
	case *plan.Join:
		if n.Filter == nil {
			return node, false, nil
		}
		expr, changed := rewriteExpr(n.Filter)
		if !changed {
			return node, false, nil
		}
		cp := *n
		cp.Filter = expr
		return &cp, true, nil
	case *plan.TableGet:
		changed := false
		preds := make([]expression.Expression, len(n.Predicates))
		for i, p := range n.Predicates {
			np, c := rewriteExpr(p)
			preds[i] = np
			if c {
				changed = true
			}
		}
		if !changed {
			return node, false, nil
		}
		cp := *n
		cp.Predicates = preds
		return &cp, true, nil
	default:
		return node, false, nil
	}
}
