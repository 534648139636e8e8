package plan

import (
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// Statement is the resolved, typed command the resolver produces from a
// parsed AST node. Go has no closed sum types, so — as
// vitess's sqlparser.Statement does for go-mysql-server's own parser — this is
// a marker interface implemented by one struct per command kind.
type Statement interface {
	isStatement()
}

// FilterObj is either a bound Field or a typed Value.
type FilterObj interface {
	isFilterObj()
}

// FieldObj is the Field-valued FilterObj.
type FieldObj struct {
	Field *expression.Field
}

func (FieldObj) isFilterObj() {}

// ValueObj is the Value-valued FilterObj.
type ValueObj struct {
	Value types.Value
}

func (ValueObj) isFilterObj() {}

// FilterUnit is one resolved WHERE-clause atom: comp, left, right
//. Both sides are resolved and their kinds are comparable
// after implicit-cast promotion by the time a FilterUnit is constructed.
type FilterUnit struct {
	Comp  expression.CompOp
	Left  FilterObj
	Right FilterObj
}

// FilterStmt is an ordered, AND-joined list of FilterUnits.
// Extra carries any residual boolean expression the Unit list cannot
// represent structurally — namely a WHERE clause using OR, which
// §9's open question 2 allows syntactically without requiring push-down;
// it is ANDed together with the Units by Expr.
type FilterStmt struct {
	Units []FilterUnit
	Extra expression.Expression
}

// Expr lowers the FilterStmt to a single expression tree: a Conjunction of
// Comparisons, one per unit, inserting any implicit Cast the resolver
// decided was needed when it built the FilterObj pair.
func (f *FilterStmt) Expr() expression.Expression {
	if f == nil {
		return nil
	}
	exprs := make([]expression.Expression, 0, len(f.Units)+1)
	for _, u := range f.Units {
		exprs = append(exprs, expression.NewComparison(u.Comp, objExpr(u.Left), objExpr(u.Right)))
	}
	if f.Extra != nil {
		exprs = append(exprs, f.Extra)
	}
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		return expression.NewAnd(exprs...)
	}
}

func objExpr(o FilterObj) expression.Expression {
	switch v := o.(type) {
	case FieldObj:
		return v.Field
	case ValueObj:
		return expression.NewLiteral(v.Value)
	default:
		return expression.NewLiteral(types.Undef)
	}
}

// SelectStmt carries the resolved table list, projected expressions,
// filter, and the optional group-by/order-by.
type SelectStmt struct {
	Tables         []sql.Table
	Projections    []expression.Expression
	ProjectAliases []string
	Filter         *FilterStmt
	GroupBy        []expression.Expression
	Aggregates     []Aggregate
	OrderBy        []OrderKey
	// WithTableName is enabled iff >= 2 tables appear in FROM, controlling whether output columns are prefixed with their
	// table name.
	WithTableName bool
}

func (*SelectStmt) isStatement() {}

// InsertStmt carries the target table and the literal rows to insert,
// already kind-checked/widened against the table's schema.
type InsertStmt struct {
	Table  sql.Table
	Values []sql.Row
}

func (*InsertStmt) isStatement() {}

// UpdateStmt is single-field in the minimal core.
type UpdateStmt struct {
	Table  sql.Table
	Field  string
	Value  types.Value
	Filter *FilterStmt
}

func (*UpdateStmt) isStatement() {}

// DeleteStmt carries the target table and its resolved filter.
type DeleteStmt struct {
	Table  sql.Table
	Filter *FilterStmt
}

func (*DeleteStmt) isStatement() {}

// ExplainStmt wraps the statement whose plan should be printed instead of
// executed.
type ExplainStmt struct {
	Inner Statement
}

func (*ExplainStmt) isStatement() {}

// ColumnDef is one column of a CREATE TABLE statement.
type ColumnDef struct {
	Name    string
	Kind    types.Kind
	CharLen int
}

// CreateTableStmt carries a table name and its column definitions.
type CreateTableStmt struct {
	Name    string
	Columns []ColumnDef
}

func (*CreateTableStmt) isStatement() {}

// CreateIndexStmt carries an index name, its table and indexed column.
type CreateIndexStmt struct {
	Name   string
	Table  string
	Column string
}

func (*CreateIndexStmt) isStatement() {}

// DropIndexStmt drops a single-column index.
type DropIndexStmt struct {
	Name  string
	Table string
}

func (*DropIndexStmt) isStatement() {}

// DropTableStmt carries the table name to drop.
type DropTableStmt struct {
	Name string
}

func (*DropTableStmt) isStatement() {}

// ShowTablesStmt has no fields; it lists every table of the database.
type ShowTablesStmt struct{}

func (*ShowTablesStmt) isStatement() {}

// DescTableStmt carries the table whose columns should be described.
type DescTableStmt struct {
	Table string
}

func (*DescTableStmt) isStatement() {}

// HelpStmt has no fields; it lists the supported SQL surface.
type HelpStmt struct{}

func (*HelpStmt) isStatement() {}

// ExitStmt has no fields; it ends the session.
type ExitStmt struct{}

func (*ExitStmt) isStatement() {}

// BeginStmt starts a multi-statement transaction.
type BeginStmt struct{}

func (*BeginStmt) isStatement() {}

// CommitStmt commits the session's open transaction.
type CommitStmt struct{}

func (*CommitStmt) isStatement() {}

// RollbackStmt rolls back the session's open transaction.
type RollbackStmt struct{}

func (*RollbackStmt) isStatement() {}

// LoadDataStmt bulk-loads path's rows into Table.
type LoadDataStmt struct {
	Table sql.Table
	Path  string
}

func (*LoadDataStmt) isStatement() {}

// CalcStmt evaluates a list of constant expressions and returns exactly
// one row.
type CalcStmt struct {
	Exprs []expression.Expression
}

func (*CalcStmt) isStatement() {}
