// Package plan holds the logical operator tree and the
// Statement IR. Each logical node owns its children
// exclusively (tree, not DAG); child order is semantically significant.
package plan

import (
	"fmt"
	"strings"

	"github.com/oceanbase/miniob-sub003/internal/rc"
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
)

// LogicalNode is the capability every logical operator kind implements.
// Go has no closed sum types, so — like go-mysql-server's sql.Node — this is a
// plain interface with one concrete struct per variant
// (TableGet, Predicate, Projection, Join, Delete, Explain, GroupBy, Order).
type LogicalNode interface {
	Children() []LogicalNode
	// WithChildren returns a copy of the node with its children replaced by
	// kids, in the same order Children() reported them. It is the rewriter's
	// (sql/analyzer) only way to rebuild a node after recursing into its
	// children, mirroring go-mysql-server's sql.Node.WithChildren
	// (sql/transform/node_test.go's visit funcs rebuild nodes the same way).
	WithChildren(kids ...LogicalNode) (LogicalNode, error)
	Schema() sql.Schema
	String() string
}

func wrongChildCount(node LogicalNode, want, got int) error {
	return rc.ErrInternal.New(fmt.Sprintf("%s: expected %d children, got %d", node.String(), want, got))
}

// TableScanMode distinguishes a read-only scan (SELECT) from a
// read-write one (the scan feeding DELETE/UPDATE), matching the logical planner's
// "TableGet(t_i, ReadOnly)".
type TableScanMode int

const (
	ReadOnly TableScanMode = iota
	ReadWrite
)

// TableGet is the logical leaf scanning one table, optionally carrying
// predicates the rewriter has pushed down onto it.
type TableGet struct {
	Table      sql.Table
	Mode       TableScanMode
	Predicates []expression.Expression
	schema     sql.Schema
}

// NewTableGet builds a TableGet over table, naming its columns with Table
// as the qualifier so FieldExpr lookups resolve.
func NewTableGet(table sql.Table, mode TableScanMode) *TableGet {
	return &TableGet{Table: table, Mode: mode, schema: table.Schema()}
}

func (t *TableGet) Children() []LogicalNode { return nil }

func (t *TableGet) WithChildren(kids ...LogicalNode) (LogicalNode, error) {
	if len(kids) != 0 {
		return nil, wrongChildCount(t, 0, len(kids))
	}
	return t, nil
}

func (t *TableGet) Schema() sql.Schema { return t.schema }
func (t *TableGet) String() string {
	return "TableGet(" + t.Table.Name() + ")"
}

// SetPredicates replaces the scan's pushed-down predicate list.
func (t *TableGet) SetPredicates(preds []expression.Expression) { t.Predicates = preds }

// WithPredicates returns a copy of t with its predicate list replaced by
// preds, preserving its (unexported) schema. sql/analyzer uses this rather
// than a struct literal so a rewrite never has to reconstruct TableGet's
// private state from outside the package.
func (t *TableGet) WithPredicates(preds []expression.Expression) *TableGet {
	cp := *t
	cp.Predicates = preds
	return &cp
}

// Predicate wraps a single child with a boolean conjunction filter.
type Predicate struct {
	Expr  expression.Expression
	Child LogicalNode
}

// NewPredicate builds a Predicate node.
func NewPredicate(expr expression.Expression, child LogicalNode) *Predicate {
	return &Predicate{Expr: expr, Child: child}
}

func (p *Predicate) Children() []LogicalNode { return []LogicalNode{p.Child} }

func (p *Predicate) WithChildren(kids ...LogicalNode) (LogicalNode, error) {
	if len(kids) != 1 {
		return nil, wrongChildCount(p, 1, len(kids))
	}
	cp := *p
	cp.Child = kids[0]
	return &cp, nil
}

func (p *Predicate) Schema() sql.Schema { return p.Child.Schema() }
func (p *Predicate) String() string {
	return "Predicate(" + p.Expr.String() + ")"
}

// Projection is the top of a SELECT's logical tree: an ordered list of
// output expressions over a single child.
type Projection struct {
	Exprs   []expression.Expression
	Aliases []string
	Child   LogicalNode
}

// NewProjection builds a Projection node. aliases may be nil; a non-empty
// entry overrides the corresponding expression's default output name.
func NewProjection(exprs []expression.Expression, aliases []string, child LogicalNode) *Projection {
	return &Projection{Exprs: exprs, Aliases: aliases, Child: child}
}

func (p *Projection) Children() []LogicalNode { return []LogicalNode{p.Child} }

func (p *Projection) WithChildren(kids ...LogicalNode) (LogicalNode, error) {
	if len(kids) != 1 {
		return nil, wrongChildCount(p, 1, len(kids))
	}
	cp := *p
	cp.Child = kids[0]
	return &cp, nil
}

func (p *Projection) Schema() sql.Schema {
	out := make(sql.Schema, len(p.Exprs))
	for i, e := range p.Exprs {
		name := e.String()
		table := ""
		if f, ok := e.(*expression.Field); ok {
			name = f.Spec.Field
			table = f.Spec.Table
		}
		alias := ""
		if i < len(p.Aliases) {
			alias = p.Aliases[i]
		}
		out[i] = &sql.Column{Name: name, Table: table, Alias: alias, Kind: e.ValueType()}
	}
	return out
}

func (p *Projection) String() string {
	parts := make([]string, len(p.Exprs))
	for i, e := range p.Exprs {
		parts[i] = e.String()
	}
	return "Projection(" + strings.Join(parts, ", ") + ")"
}

// JoinType distinguishes inner from left-outer joins. The minimal core
// only ever builds Inner joins from comma-separated FROM lists, but the
// type is kept open for NestedLoopJoin's outer-rewind behavior.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
)

// Join left-deep-chains two children under a combining filter:
// "Join(Join(Join(t1,t2), t3), t4)…". Left is always Children()[0].
type Join struct {
	Left, Right LogicalNode
	Type        JoinType
	Filter      expression.Expression
}

// NewJoin builds a Join node. filter may be nil (cross join).
func NewJoin(left, right LogicalNode, filter expression.Expression) *Join {
	return &Join{Left: left, Right: right, Type: InnerJoin, Filter: filter}
}

func (j *Join) Children() []LogicalNode { return []LogicalNode{j.Left, j.Right} }

func (j *Join) WithChildren(kids ...LogicalNode) (LogicalNode, error) {
	if len(kids) != 2 {
		return nil, wrongChildCount(j, 2, len(kids))
	}
	cp := *j
	cp.Left, cp.Right = kids[0], kids[1]
	return &cp, nil
}

func (j *Join) Schema() sql.Schema {
	return append(append(sql.Schema{}, j.Left.Schema()...), j.Right.Schema()...)
}

func (j *Join) String() string {
	f := "true"
	if j.Filter != nil {
		f = j.Filter.String()
	}
	return "Join(" + f + ")"
}

// Delete sits above a filtered scan and deletes every tuple it pulls.
type Delete struct {
	Table sql.Table
	Child LogicalNode
}

// NewDelete builds a Delete node.
func NewDelete(table sql.Table, child LogicalNode) *Delete {
	return &Delete{Table: table, Child: child}
}

func (d *Delete) Children() []LogicalNode { return []LogicalNode{d.Child} }

func (d *Delete) WithChildren(kids ...LogicalNode) (LogicalNode, error) {
	if len(kids) != 1 {
		return nil, wrongChildCount(d, 1, len(kids))
	}
	cp := *d
	cp.Child = kids[0]
	return &cp, nil
}

func (d *Delete) Schema() sql.Schema { return nil }
func (d *Delete) String() string     { return "Delete(" + d.Table.Name() + ")" }

// Update sits above a filtered read-write scan and rewrites every tuple it
// pulls as delete(old) + insert(new), matching the reference C++ engine's
// update_physical_operator shape.
type Update struct {
	Table sql.Table
	Field string
	Value expression.Expression
	Child LogicalNode
}

// NewUpdate builds an Update node.
func NewUpdate(table sql.Table, field string, value expression.Expression, child LogicalNode) *Update {
	return &Update{Table: table, Field: field, Value: value, Child: child}
}

func (u *Update) Children() []LogicalNode { return []LogicalNode{u.Child} }

func (u *Update) WithChildren(kids ...LogicalNode) (LogicalNode, error) {
	if len(kids) != 1 {
		return nil, wrongChildCount(u, 1, len(kids))
	}
	cp := *u
	cp.Child = kids[0]
	return &cp, nil
}

func (u *Update) Schema() sql.Schema { return nil }
func (u *Update) String() string     { return "Update(" + u.Table.Name() + ")" }

// Insert has no child; it carries the literal rows to write.
type Insert struct {
	Table  sql.Table
	Values []sql.Row
}

// NewInsert builds an Insert node.
func NewInsert(table sql.Table, values []sql.Row) *Insert {
	return &Insert{Table: table, Values: values}
}

func (i *Insert) Children() []LogicalNode { return nil }

func (i *Insert) WithChildren(kids ...LogicalNode) (LogicalNode, error) {
	if len(kids) != 0 {
		return nil, wrongChildCount(i, 0, len(kids))
	}
	return i, nil
}

func (i *Insert) Schema() sql.Schema { return nil }
func (i *Insert) String() string     { return "Insert(" + i.Table.Name() + ")" }

// Explain wraps a child plan whose pretty-printed text becomes a single
// result row.
type Explain struct {
	Child LogicalNode
}

// NewExplain builds an Explain node.
func NewExplain(child LogicalNode) *Explain { return &Explain{Child: child} }

func (e *Explain) Children() []LogicalNode { return []LogicalNode{e.Child} }

func (e *Explain) WithChildren(kids ...LogicalNode) (LogicalNode, error) {
	if len(kids) != 1 {
		return nil, wrongChildCount(e, 1, len(kids))
	}
	cp := *e
	cp.Child = kids[0]
	return &cp, nil
}

func (e *Explain) Schema() sql.Schema {
	return sql.Schema{{Name: "Query Plan", Kind: 0}}
}
func (e *Explain) String() string { return "Explain" }

// AggFunc is the aggregate function applied to a single argument
// expression.
type AggFunc int

const (
	Count AggFunc = iota
	Sum
	Avg
	Max
	Min
)

func (f AggFunc) String() string {
	switch f {
	case Count:
		return "COUNT"
	case Sum:
		return "SUM"
	case Avg:
		return "AVG"
	case Max:
		return "MAX"
	case Min:
		return "MIN"
	default:
		return "?"
	}
}

// Aggregate is one SELECT-list aggregate: a function applied to an
// expression, with the output column name it should take.
type Aggregate struct {
	Func  AggFunc
	Arg   expression.Expression
	Alias string
}

// GroupBy buffers its child stream and emits one row per distinct group
// key, optionally alongside per-group aggregates.
type GroupBy struct {
	GroupExprs []expression.Expression
	Aggregates []Aggregate
	Child      LogicalNode
}

// NewGroupBy builds a GroupBy node.
func NewGroupBy(groupExprs []expression.Expression, aggregates []Aggregate, child LogicalNode) *GroupBy {
	return &GroupBy{GroupExprs: groupExprs, Aggregates: aggregates, Child: child}
}

func (g *GroupBy) Children() []LogicalNode { return []LogicalNode{g.Child} }

func (g *GroupBy) WithChildren(kids ...LogicalNode) (LogicalNode, error) {
	if len(kids) != 1 {
		return nil, wrongChildCount(g, 1, len(kids))
	}
	cp := *g
	cp.Child = kids[0]
	return &cp, nil
}

func (g *GroupBy) Schema() sql.Schema {
	out := make(sql.Schema, 0, len(g.GroupExprs)+len(g.Aggregates))
	for _, e := range g.GroupExprs {
		out = append(out, &sql.Column{Name: e.String(), Kind: e.ValueType()})
	}
	for _, a := range g.Aggregates {
		name := a.Alias
		if name == "" {
			name = a.Func.String() + "(" + a.Arg.String() + ")"
		}
		out = append(out, &sql.Column{Name: name, Kind: a.Arg.ValueType()})
	}
	return out
}

func (g *GroupBy) String() string { return "GroupBy" }

// OrderKey is one ORDER BY term.
type OrderKey struct {
	Expr expression.Expression
	Desc bool
}

// Order buffers its child fully and sorts by Keys, falling back key-by-key
// on ties.
type Order struct {
	Keys  []OrderKey
	Child LogicalNode
}

// NewOrder builds an Order node.
func NewOrder(keys []OrderKey, child LogicalNode) *Order {
	return &Order{Keys: keys, Child: child}
}

func (o *Order) Children() []LogicalNode { return []LogicalNode{o.Child} }

func (o *Order) WithChildren(kids ...LogicalNode) (LogicalNode, error) {
	if len(kids) != 1 {
		return nil, wrongChildCount(o, 1, len(kids))
	}
	cp := *o
	cp.Child = kids[0]
	return &cp, nil
}

func (o *Order) Schema() sql.Schema { return o.Child.Schema() }
func (o *Order) String() string     { return "Order" }

// Empty is the leaf the rewriter's predicate-folding rule substitutes for a
// subtree proven to produce no rows ("if Predicate(Value(false)),
// drop the subtree (produces empty)"). It keeps the schema of whatever it
// replaced so the plan above it still type-checks.
type Empty struct {
	schema sql.Schema
}

// NewEmpty builds an Empty leaf with schema.
func NewEmpty(schema sql.Schema) *Empty { return &Empty{schema: schema} }

func (e *Empty) Children() []LogicalNode { return nil }

func (e *Empty) WithChildren(kids ...LogicalNode) (LogicalNode, error) {
	if len(kids) != 0 {
		return nil, wrongChildCount(e, 0, len(kids))
	}
	return e, nil
}

func (e *Empty) Schema() sql.Schema { return e.schema }
func (e *Empty) String() string     { return "Empty" }
