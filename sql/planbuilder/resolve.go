package planbuilder

import (
	"fmt"

	"github.com/oceanbase/miniob-sub003/internal/rc"
	"github.com/oceanbase/miniob-sub003/parse"
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/plan"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// Resolve translates a parsed AST statement into Statement IR against db
//. Statements with no further logical-planning step (DDL,
// session control, HELP/SHOW/DESC) are resolved here in their final form;
// Build only ever sees Select/Insert/Update/Delete/Explain.
func Resolve(db sql.Database, stmt parse.Statement) (plan.Statement, error) {
	switch n := stmt.(type) {
	case *parse.SelectStmt:
		return resolveSelect(db, n)
	case *parse.InsertStmt:
		return resolveInsert(db, n)
	case *parse.UpdateStmt:
		return resolveUpdate(db, n)
	case *parse.DeleteStmt:
		return resolveDelete(db, n)
	case *parse.CreateTableStmt:
		return resolveCreateTable(n)
	case *parse.CreateIndexStmt:
		return &plan.CreateIndexStmt{Name: n.Index, Table: n.Table, Column: n.Column}, nil
	case *parse.DropIndexStmt:
		return &plan.DropIndexStmt{Name: n.Index, Table: n.Table}, nil
	case *parse.DropTableStmt:
		return &plan.DropTableStmt{Name: n.Table}, nil
	case *parse.ShowTablesStmt:
		return &plan.ShowTablesStmt{}, nil
	case *parse.DescTableStmt:
		return &plan.DescTableStmt{Table: n.Table}, nil
	case *parse.HelpStmt:
		return &plan.HelpStmt{}, nil
	case *parse.ExitStmt:
		return &plan.ExitStmt{}, nil
	case *parse.BeginStmt:
		return &plan.BeginStmt{}, nil
	case *parse.CommitStmt:
		return &plan.CommitStmt{}, nil
	case *parse.RollbackStmt:
		return &plan.RollbackStmt{}, nil
	case *parse.LoadDataStmt:
		t, ok := db.Table(n.Table)
		if !ok {
			return nil, rc.ErrSchemaTableNotExist.New(n.Table)
		}
		return &plan.LoadDataStmt{Table: t, Path: n.Path}, nil
	case *parse.ExplainStmt:
		inner, err := Resolve(db, n.Inner)
		if err != nil {
			return nil, err
		}
		return &plan.ExplainStmt{Inner: inner}, nil
	default:
		return nil, rc.ErrUnimplemented.New("resolving this statement kind")
	}
}

func resolveSelect(db sql.Database, s *parse.SelectStmt) (plan.Statement, error) {
	if len(s.Tables) == 0 {
		return resolveCalc(s)
	}

	tables := make([]sql.Table, 0, len(s.Tables))
	for _, name := range s.Tables {
		t, ok := db.Table(name)
		if !ok {
			return nil, rc.ErrSchemaTableNotExist.New(name)
		}
		tables = append(tables, t)
	}
	sc := newScope(tables)

	var projections []expression.Expression
	var aliases []string
	var aggregates []plan.Aggregate
	for _, item := range s.Items {
		if item.Star != nil {
			table := ""
			if item.Star.Table != "" {
				table = item.Star.Table
			}
			fields, err := sc.expandStar(table)
			if err != nil {
				return nil, err
			}
			for _, f := range fields {
				projections = append(projections, f)
				aliases = append(aliases, "")
			}
			continue
		}
		if agg, ok := item.Expr.(*parse.AggCall); ok {
			a, err := sc.resolveAggCall(agg, item.Alias)
			if err != nil {
				return nil, err
			}
			aggregates = append(aggregates, a)
			continue
		}
		e, err := sc.resolveExpr(item.Expr)
		if err != nil {
			return nil, err
		}
		projections = append(projections, e)
		aliases = append(aliases, item.Alias)
	}

	filter, err := sc.buildFilterStmt(s.Where)
	if err != nil {
		return nil, err
	}

	var groupBy []expression.Expression
	for _, g := range s.GroupBy {
		e, err := sc.resolveExpr(g)
		if err != nil {
			return nil, err
		}
		groupBy = append(groupBy, e)
	}

	var orderBy []plan.OrderKey
	for _, o := range s.OrderBy {
		e, err := sc.resolveExpr(o.Expr)
		if err != nil {
			return nil, err
		}
		orderBy = append(orderBy, plan.OrderKey{Expr: e, Desc: o.Desc})
	}

	return &plan.SelectStmt{
		Tables:         tables,
		Projections:    projections,
		ProjectAliases: aliases,
		Filter:         filter,
		GroupBy:        groupBy,
		Aggregates:     aggregates,
		OrderBy:        orderBy,
		WithTableName:  len(tables) >= 2,
	}, nil
}

// resolveCalc resolves a bare `SELECT <expr>[, <expr>...]` with no FROM
// clause into a CalcStmt: every item must be a scalar
// expression over constants, evaluated against an empty scope.
func resolveCalc(s *parse.SelectStmt) (plan.Statement, error) {
	sc := newScope(nil)
	exprs := make([]expression.Expression, 0, len(s.Items))
	for _, item := range s.Items {
		if item.Star != nil {
			return nil, rc.ErrInvalidArgument.New("SELECT * requires a FROM clause")
		}
		e, err := sc.resolveExpr(item.Expr)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return &plan.CalcStmt{Exprs: exprs}, nil
}

func (s *scope) resolveAggCall(a *parse.AggCall, alias string) (plan.Aggregate, error) {
	fn, err := aggFunc(a.Func)
	if err != nil {
		return plan.Aggregate{}, err
	}
	var arg expression.Expression
	if a.Star {
		if fn != plan.Count {
			return plan.Aggregate{}, rc.ErrInvalidArgument.New(a.Func + "(*) is only valid for COUNT")
		}
		arg = expression.NewLiteral(types.NewInt32(1))
	} else {
		arg, err = s.resolveExpr(a.Arg)
		if err != nil {
			return plan.Aggregate{}, err
		}
	}
	return plan.Aggregate{Func: fn, Arg: arg, Alias: alias}, nil
}

func aggFunc(name string) (plan.AggFunc, error) {
	switch name {
	case "COUNT":
		return plan.Count, nil
	case "SUM":
		return plan.Sum, nil
	case "AVG":
		return plan.Avg, nil
	case "MAX":
		return plan.Max, nil
	case "MIN":
		return plan.Min, nil
	default:
		return 0, rc.ErrUnimplemented.New("aggregate function " + name)
	}
}

func resolveInsert(db sql.Database, s *parse.InsertStmt) (plan.Statement, error) {
	t, ok := db.Table(s.Table)
	if !ok {
		return nil, rc.ErrSchemaTableNotExist.New(s.Table)
	}
	cols := t.Schema().Visible()
	rows := make([]sql.Row, 0, len(s.Values))
	for _, tuple := range s.Values {
		if len(tuple) != len(cols) {
			return nil, rc.ErrInvalidArgument.New(fmt.Sprintf("expected %d values, got %d", len(cols), len(tuple)))
		}
		row := make(sql.Row, len(cols))
		for i := range tuple {
			v, err := literalValue(&tuple[i])
			if err != nil {
				return nil, err
			}
			cv, err := coerceLiteral(v, cols[i])
			if err != nil {
				return nil, err
			}
			row[i] = cv
		}
		rows = append(rows, row)
	}
	return &plan.InsertStmt{Table: t, Values: rows}, nil
}

// coerceLiteral enforces the INSERT assignability rule: same
// kind, Int->Float widening, or Chars within the declared length.
func coerceLiteral(v types.Value, col *sql.Column) (types.Value, error) {
	if v.Kind == col.Kind {
		if col.Kind == types.Chars && col.CharLen > 0 && len(v.Chars()) > col.CharLen {
			return types.Value{}, rc.ErrInvalidArgument.New(
				fmt.Sprintf("value %q exceeds declared length %d for field %q", v.Chars(), col.CharLen, col.Name))
		}
		return v, nil
	}
	if v.Kind == types.Int32 && col.Kind == types.Float32 {
		return types.Cast(v, types.Float32)
	}
	return types.Value{}, rc.ErrUnsupported.New(
		fmt.Sprintf("value of kind %s is not assignable to field %q of kind %s", v.Kind, col.Name, col.Kind))
}

func resolveUpdate(db sql.Database, s *parse.UpdateStmt) (plan.Statement, error) {
	t, ok := db.Table(s.Table)
	if !ok {
		return nil, rc.ErrSchemaTableNotExist.New(s.Table)
	}
	idx := t.Schema().IndexOf("", s.Column)
	if idx < 0 {
		return nil, rc.ErrSchemaFieldMissing.New(s.Column, s.Table)
	}
	v, err := literalValue(&s.Value)
	if err != nil {
		return nil, err
	}
	cv, err := coerceLiteral(v, t.Schema()[idx])
	if err != nil {
		return nil, err
	}
	sc := newScope([]sql.Table{t})
	filter, err := sc.buildFilterStmt(s.Where)
	if err != nil {
		return nil, err
	}
	return &plan.UpdateStmt{Table: t, Field: s.Column, Value: cv, Filter: filter}, nil
}

func resolveDelete(db sql.Database, s *parse.DeleteStmt) (plan.Statement, error) {
	t, ok := db.Table(s.Table)
	if !ok {
		return nil, rc.ErrSchemaTableNotExist.New(s.Table)
	}
	sc := newScope([]sql.Table{t})
	filter, err := sc.buildFilterStmt(s.Where)
	if err != nil {
		return nil, err
	}
	return &plan.DeleteStmt{Table: t, Filter: filter}, nil
}

func resolveCreateTable(s *parse.CreateTableStmt) (plan.Statement, error) {
	cols := make([]plan.ColumnDef, 0, len(s.Columns))
	for _, c := range s.Columns {
		kind, err := types.ParseKind(c.Type)
		if err != nil {
			return nil, rc.ErrInvalidArgument.New(err.Error())
		}
		cols = append(cols, plan.ColumnDef{Name: c.Name, Kind: kind, CharLen: c.Length})
	}
	return &plan.CreateTableStmt{Name: s.Name, Columns: cols}, nil
}

// resolveExpr resolves a parsed scalar expression against the scope's
// tables.
func (s *scope) resolveExpr(e parse.Expr) (expression.Expression, error) {
	switch n := e.(type) {
	case *parse.ColumnRef:
		return s.resolveColumn(n.Table, n.Name)
	case *parse.Literal:
		v, err := literalValue(n)
		if err != nil {
			return nil, err
		}
		return expression.NewLiteral(v), nil
	case *parse.Comparison:
		left, err := s.resolveExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := s.resolveExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewComparison(resolveCmpOp(n.Op), left, right), nil
	case *parse.Logical:
		left, err := s.resolveExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := s.resolveExpr(n.Right)
		if err != nil {
			return nil, err
		}
		typ := expression.And
		if n.Op == parse.LogOr {
			typ = expression.Or
		}
		return expression.NewConjunction(typ, []expression.Expression{left, right}), nil
	case *parse.Arithmetic:
		left, err := s.resolveExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := s.resolveExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewArithmetic(resolveArithOp(n.Op), left, right), nil
	case *parse.Star:
		return nil, rc.ErrInvalidArgument.New("* is only valid in a SELECT list")
	default:
		return nil, rc.ErrUnimplemented.New("resolving this expression kind")
	}
}

func literalValue(l *parse.Literal) (types.Value, error) {
	switch l.Kind {
	case parse.LitInt:
		return types.NewInt32(int32(l.Int)), nil
	case parse.LitFloat:
		return types.NewFloat32(float32(l.Flt)), nil
	case parse.LitString:
		return types.NewChars(l.Str, len(l.Str)), nil
	case parse.LitBool:
		return types.NewBool(l.Bool), nil
	case parse.LitNull:
		return types.Undef, nil
	default:
		return types.Value{}, rc.ErrInternal.New("unknown literal kind")
	}
}

func resolveCmpOp(op parse.CmpOp) expression.CompOp {
	switch op {
	case parse.OpEq:
		return expression.Eq
	case parse.OpNe:
		return expression.Ne
	case parse.OpLt:
		return expression.Lt
	case parse.OpLe:
		return expression.Le
	case parse.OpGt:
		return expression.Gt
	case parse.OpGe:
		return expression.Ge
	default:
		return expression.NoOp
	}
}

func resolveArithOp(op parse.ArithOp) expression.ArithOp {
	switch op {
	case parse.ArithAdd:
		return expression.Add
	case parse.ArithSub:
		return expression.Sub
	case parse.ArithMul:
		return expression.Mul
	case parse.ArithDiv:
		return expression.Div
	default:
		return expression.Add
	}
}

// flattenAnd splits e into the atoms of its top-level AND chain, leaving
// any OR subtree intact as a single atom.
func flattenAnd(e parse.Expr) []parse.Expr {
	if l, ok := e.(*parse.Logical); ok && l.Op == parse.LogAnd {
		return append(flattenAnd(l.Left), flattenAnd(l.Right)...)
	}
	return []parse.Expr{e}
}

// buildFilterStmt resolves a WHERE clause into a FilterStmt: every
// AND-chain atom that is a direct Field/Value comparison becomes a
// FilterUnit; anything else (an OR subtree, a comparison over a computed
// expression) resolves generically into Extra.
func (s *scope) buildFilterStmt(where parse.Expr) (*plan.FilterStmt, error) {
	if where == nil {
		return nil, nil
	}
	stmt := &plan.FilterStmt{}
	var extra []expression.Expression
	for _, atom := range flattenAnd(where) {
		cmp, ok := atom.(*parse.Comparison)
		if ok {
			unit, ok, err := s.toFilterUnit(cmp)
			if err != nil {
				return nil, err
			}
			if ok {
				stmt.Units = append(stmt.Units, unit)
				continue
			}
		}
		e, err := s.resolveExpr(atom)
		if err != nil {
			return nil, err
		}
		extra = append(extra, e)
	}
	if len(extra) > 0 {
		stmt.Extra = andAll(extra)
	}
	return stmt, nil
}

// toFilterObj resolves e to a FilterObj iff it is directly a column
// reference or a literal; any other
// expression shape is reported via the ok return so the caller falls back
// to general expression resolution.
func (s *scope) toFilterObj(e parse.Expr) (plan.FilterObj, bool, error) {
	switch n := e.(type) {
	case *parse.ColumnRef:
		f, err := s.resolveColumn(n.Table, n.Name)
		if err != nil {
			return nil, false, err
		}
		return plan.FieldObj{Field: f}, true, nil
	case *parse.Literal:
		v, err := literalValue(n)
		if err != nil {
			return nil, false, err
		}
		return plan.ValueObj{Value: v}, true, nil
	default:
		return nil, false, nil
	}
}

func (s *scope) toFilterUnit(cmp *parse.Comparison) (plan.FilterUnit, bool, error) {
	left, ok, err := s.toFilterObj(cmp.Left)
	if err != nil || !ok {
		return plan.FilterUnit{}, false, err
	}
	right, ok, err := s.toFilterObj(cmp.Right)
	if err != nil || !ok {
		return plan.FilterUnit{}, false, err
	}
	return plan.FilterUnit{Comp: resolveCmpOp(cmp.Op), Left: left, Right: right}, true, nil
}

func andAll(exprs []expression.Expression) expression.Expression {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return expression.NewAnd(exprs...)
}
