package parse

// Statement is the parsed-AST node handed to sql/planbuilder. Like sql/plan.Statement, it is a marker
// interface with one struct per grammar production, since Go has no closed
// sum types.
type Statement interface {
	isParseStatement()
}

// Expr is a parsed scalar expression: a column reference, a literal, a
// unary/binary arithmetic operation, or a comparison/logical connective.
// sql/planbuilder resolves these against a catalog into
// sql/expression.Expression nodes.
type Expr interface {
	isParseExpr()
}

// ColumnRef names an attribute, optionally table-qualified.
type ColumnRef struct {
	Table string
	Name  string
}

func (*ColumnRef) isParseExpr() {}

// Star is `*` or `t.*` in a SELECT list.
type Star struct {
	Table string // empty for a bare `*`
}

func (*Star) isParseExpr() {}

// Literal is a parsed constant: exactly one of its typed fields is valid,
// selected by Kind.
type Literal struct {
	Kind LiteralKind
	Int  int64
	Flt  float64
	Str  string
	Bool bool
}

// LiteralKind tags which field of a Literal is populated.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitBool
	LitNull
)

func (*Literal) isParseExpr() {}

// CmpOp is a parsed comparison operator.
type CmpOp int

const (
	OpEq CmpOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// Comparison is `left OP right`.
type Comparison struct {
	Op          CmpOp
	Left, Right Expr
}

func (*Comparison) isParseExpr() {}

// LogicalOp distinguishes AND from OR in a parsed WHERE clause.
type LogicalOp int

const (
	LogAnd LogicalOp = iota
	LogOr
)

// Logical is `left AND/OR right`; the parser left-associates a flat
// condition list into a chain of these.
type Logical struct {
	Op          LogicalOp
	Left, Right Expr
}

func (*Logical) isParseExpr() {}

// ArithOp is a parsed arithmetic operator. Arithmetic may appear in any
// expression position: select items, comparison operands, GROUP BY and
// ORDER BY keys, and bare `SELECT <expr>` CALC statements.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
)

// Arithmetic is `left OP right` over numeric operands.
type Arithmetic struct {
	Op          ArithOp
	Left, Right Expr
}

func (*Arithmetic) isParseExpr() {}

// AggCall is an aggregate function call in a SELECT item — COUNT, SUM,
// AVG, MAX or MIN applied to a single argument, or COUNT(*) (Star true,
// Arg nil). This supplements the Statement IR with the
// aggregate set the reference C++ engine's group_by_logical_operator.cpp
// supports.
type AggCall struct {
	Func string
	Star bool
	Arg  Expr
}

func (*AggCall) isParseExpr() {}

// SelectItem is one entry of a SELECT list: either Star or Expr/Alias.
type SelectItem struct {
	Star  *Star
	Expr  Expr
	Alias string
}

// OrderItem is one ORDER BY term.
type OrderItem struct {
	Expr Expr
	Desc bool
}

// SelectStmt is the parsed form of the SELECT grammar.
type SelectStmt struct {
	Items   []SelectItem
	Tables  []string
	Where   Expr // nil if no WHERE clause
	GroupBy []Expr
	OrderBy []OrderItem
}

func (*SelectStmt) isParseStatement() {}

// InsertStmt is the parsed form of INSERT INTO t VALUES (...), (...), ...;
// multiple value tuples are accepted even though the documented grammar
// shows one, matching the reference C++ engine's multi-row INSERT.
type InsertStmt struct {
	Table  string
	Values [][]Literal
}

func (*InsertStmt) isParseStatement() {}

// UpdateStmt is single-field.
type UpdateStmt struct {
	Table  string
	Column string
	Value  Literal
	Where  Expr
}

func (*UpdateStmt) isParseStatement() {}

// DeleteStmt is the parsed form of DELETE FROM t [WHERE ...];.
type DeleteStmt struct {
	Table string
	Where Expr
}

func (*DeleteStmt) isParseStatement() {}

// ColumnDef is one column of a parsed CREATE TABLE.
type ColumnDef struct {
	Name    string
	Type    string
	Length  int
}

// CreateTableStmt is the parsed form of CREATE TABLE t (...);.
type CreateTableStmt struct {
	Name    string
	Columns []ColumnDef
}

func (*CreateTableStmt) isParseStatement() {}

// CreateIndexStmt is the parsed form of CREATE INDEX idx ON t (col);.
type CreateIndexStmt struct {
	Index  string
	Table  string
	Column string
}

func (*CreateIndexStmt) isParseStatement() {}

// DropIndexStmt is the parsed form of DROP INDEX idx ON t;.
type DropIndexStmt struct {
	Index string
	Table string
}

func (*DropIndexStmt) isParseStatement() {}

// DropTableStmt is the parsed form of DROP TABLE t;.
type DropTableStmt struct {
	Table string
}

func (*DropTableStmt) isParseStatement() {}

// ShowTablesStmt is the parsed form of SHOW TABLES;.
type ShowTablesStmt struct{}

func (*ShowTablesStmt) isParseStatement() {}

// DescTableStmt is the parsed form of DESC t;.
type DescTableStmt struct {
	Table string
}

func (*DescTableStmt) isParseStatement() {}

// HelpStmt is the parsed form of HELP;.
type HelpStmt struct{}

func (*HelpStmt) isParseStatement() {}

// ExitStmt is the parsed form of EXIT;.
type ExitStmt struct{}

func (*ExitStmt) isParseStatement() {}

// BeginStmt is the parsed form of BEGIN;.
type BeginStmt struct{}

func (*BeginStmt) isParseStatement() {}

// CommitStmt is the parsed form of COMMIT;.
type CommitStmt struct{}

func (*CommitStmt) isParseStatement() {}

// RollbackStmt is the parsed form of ROLLBACK;.
type RollbackStmt struct{}

func (*RollbackStmt) isParseStatement() {}

// LoadDataStmt is the parsed form of LOAD DATA INFILE 'path' INTO TABLE t;.
type LoadDataStmt struct {
	Path  string
	Table string
}

func (*LoadDataStmt) isParseStatement() {}

// ExplainStmt wraps another parsed statement.
type ExplainStmt struct {
	Inner Statement
}

func (*ExplainStmt) isParseStatement() {}
