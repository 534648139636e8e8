// Package expression implements the expression tree and evaluator of
// the expression tree: a sum type over
// {Field, Value, Cast, Comparison, Conjunction} where each node exposes a
// kind tag, the Value kind it produces, and "evaluate against a tuple ->
// Value". It follows go-mysql-server's convention of one
// small struct per expression kind plus free constructor functions
// (expression.NewEquals, expression.NewGetField, expression.NewLiteral),
// rather than a closed Go sum type, since Go has no native sum types.
package expression

import (
	"fmt"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// Expression is the capability every node of the tree implements. It
// satisfies sql.CellExpr structurally, so ProjectTuple (defined in package
// sql) can own a slice of Expression without sql importing this package.
type Expression interface {
	// Eval evaluates the node against t.
	Eval(t sql.Tuple) (types.Value, error)
	// ValueType is the Kind this node will produce.
	ValueType() types.Kind
	// Children returns the node's owned subexpressions, in evaluation
	// order. Leaves return nil.
	Children() []Expression
	// String renders the node for EXPLAIN and debugging.
	String() string
}

// TryEval succeeds iff the subtree contains no Field reference; the
// rewriter uses it for constant folding.
func TryEval(e Expression) (types.Value, bool) {
	if _, ok := e.(*Field); ok {
		return types.Value{}, false
	}
	for _, c := range e.Children() {
		if _, ok := TryEval(c); !ok {
			return types.Value{}, false
		}
	}
	v, err := e.Eval(nil)
	if err != nil {
		return types.Value{}, false
	}
	return v, true
}

// Field looks itself up by TupleCellSpec(table, field, alias) in the
// tuple it is evaluated against. It owns nothing.
type Field struct {
	Spec sql.TupleCellSpec
	Kind types.Kind
}

// NewField builds a Field expression bound to table.field (optionally
// aliased), with the Kind the resolver determined from the catalog's
// FieldMeta.
func NewField(table, field, alias string, kind types.Kind) *Field {
	return &Field{Spec: sql.TupleCellSpec{Table: table, Field: field, Alias: alias}, Kind: kind}
}

func (f *Field) Eval(t sql.Tuple) (types.Value, error) {
	if t == nil {
		return types.Value{}, fmt.Errorf("field %s.%s: no tuple to evaluate against", f.Spec.Table, f.Spec.Field)
	}
	return t.FindCell(f.Spec)
}

func (f *Field) ValueType() types.Kind   { return f.Kind }
func (f *Field) Children() []Expression  { return nil }
func (f *Field) String() string {
	if f.Spec.Table == "" {
		return f.Spec.Field
	}
	return f.Spec.Table + "." + f.Spec.Field
}

// Literal returns a fixed Value regardless of the tuple.
type Literal struct {
	Val types.Value
}

// NewLiteral builds a Literal expression.
func NewLiteral(v types.Value) *Literal { return &Literal{Val: v} }

func (l *Literal) Eval(sql.Tuple) (types.Value, error) { return l.Val, nil }
func (l *Literal) ValueType() types.Kind               { return l.Val.Kind }
func (l *Literal) Children() []Expression              { return nil }
func (l *Literal) String() string                      { return l.Val.String() }

// Cast evaluates its child and, if the child's kind differs from Target,
// applies the promotion rule for (source, target); only promotions
// declared in types.CastCost are legal.
type Cast struct {
	Child  Expression
	Target types.Kind
}

// NewCast builds a Cast expression.
func NewCast(child Expression, target types.Kind) *Cast {
	return &Cast{Child: child, Target: target}
}

func (c *Cast) Eval(t sql.Tuple) (types.Value, error) {
	v, err := c.Child.Eval(t)
	if err != nil {
		return types.Value{}, err
	}
	return types.Cast(v, c.Target)
}

func (c *Cast) ValueType() types.Kind  { return c.Target }
func (c *Cast) Children() []Expression { return []Expression{c.Child} }
func (c *Cast) String() string         { return fmt.Sprintf("CAST(%s AS %s)", c.Child.String(), c.Target) }
