package miniob

import (
	"strconv"

	"github.com/oceanbase/miniob-sub003/catalog"
	"github.com/oceanbase/miniob-sub003/internal/rc"
	"github.com/oceanbase/miniob-sub003/parse"
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/analyzer"
	"github.com/oceanbase/miniob-sub003/sql/plan"
	"github.com/oceanbase/miniob-sub003/sql/planbuilder"
	"github.com/oceanbase/miniob-sub003/sql/rowexec"
)

// resolveText parses and resolves query text into Statement IR.
func resolveText(db sql.Database, query string) (plan.Statement, error) {
	ast, err := parse.Parse(query)
	if err != nil {
		return nil, err
	}
	return planbuilder.Resolve(db, ast)
}

// executeStatement dispatches on the resolved Statement's kind. Select,
// Insert, Update, Delete and Explain go through the full
// build/rewrite/lower/execute pipeline; everything else (session control,
// DDL, HELP/SHOW/DESC, bare-expression Calc) is handled directly, since
// none of those kinds ever reach sql/planbuilder.Build (see its own doc
// comment).
func (e *Engine) executeStatement(ctx *sql.Context, sess *Session, stmt plan.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *plan.SelectStmt:
		return e.executeQuery(ctx, sess, stmt, s.WithTableName)
	case *plan.InsertStmt, *plan.UpdateStmt, *plan.DeleteStmt, *plan.ExplainStmt:
		return e.executeQuery(ctx, sess, stmt, false)
	case *plan.CalcStmt:
		op := rowexec.NewCalcOp(s.Exprs)
		return drain(ctx, op, op.Schema(), false)
	case *plan.CreateTableStmt:
		return e.createTable(s)
	case *plan.CreateIndexStmt:
		return e.createIndex(s)
	case *plan.DropIndexStmt:
		return e.dropIndex(s)
	case *plan.DropTableStmt:
		return e.dropTable(s)
	case *plan.ShowTablesStmt:
		return e.showTables()
	case *plan.DescTableStmt:
		return e.descTable(s)
	case *plan.HelpStmt:
		return helpResult(), nil
	case *plan.ExitStmt:
		return &Result{Status: "SUCCESS", Exit: true}, nil
	case *plan.BeginStmt:
		return beginTxn(sess)
	case *plan.CommitStmt:
		return commitTxn(ctx, sess)
	case *plan.RollbackStmt:
		return rollbackTxn(ctx, sess)
	case *plan.LoadDataStmt:
		return e.loadData(ctx, sess, s)
	default:
		return nil, rc.ErrUnimplemented.New("executing this statement kind")
	}
}

// executeQuery runs the build -> rewrite -> lower -> execute pipeline
// for the statement kinds that have a logical plan.
// withTableName controls whether SELECT's output columns are prefixed with
// their table name.
func (e *Engine) executeQuery(ctx *sql.Context, sess *Session, stmt plan.Statement, withTableName bool) (*Result, error) {
	node, err := planbuilder.Build(stmt)
	if err != nil {
		return nil, err
	}
	node, err = analyzer.Rewrite(node, e.rules)
	if err != nil {
		return nil, err
	}
	schema := node.Schema()
	op, err := rowexec.Lower(node)
	if err != nil {
		return nil, err
	}

	txn := sess.Txn
	autoCommit := txn == nil
	if autoCommit {
		txn = catalog.NewTxn()
	}
	runCtx := ctx.WithTxn(txn)

	res, execErr := drain(runCtx, op, schema, withTableName)
	if !autoCommit {
		return res, execErr
	}
	if execErr != nil {
		e.rollbackAuto(runCtx, txn, autoCommit)
		return nil, execErr
	}
	if err := txn.Commit(runCtx); err != nil {
		return nil, err
	}
	return res, nil
}

func beginTxn(sess *Session) (*Result, error) {
	if sess.Txn != nil {
		return nil, rc.ErrInvalidArgument.New("a transaction is already open")
	}
	sess.Txn = catalog.NewTxn()
	return &Result{Status: "SUCCESS"}, nil
}

func commitTxn(ctx *sql.Context, sess *Session) (*Result, error) {
	if sess.Txn == nil {
		return nil, rc.ErrInvalidArgument.New("no transaction is open")
	}
	runCtx := ctx.WithTxn(sess.Txn)
	if err := sess.Txn.Commit(runCtx); err != nil {
		return nil, err
	}
	sess.Txn = nil
	return &Result{Status: "SUCCESS"}, nil
}

func rollbackTxn(ctx *sql.Context, sess *Session) (*Result, error) {
	if sess.Txn == nil {
		return nil, rc.ErrInvalidArgument.New("no transaction is open")
	}
	runCtx := ctx.WithTxn(sess.Txn)
	if err := sess.Txn.Rollback(runCtx); err != nil {
		return nil, err
	}
	sess.Txn = nil
	return &Result{Status: "SUCCESS"}, nil
}

func (e *Engine) createTable(s *plan.CreateTableStmt) (*Result, error) {
	schema := make(sql.Schema, len(s.Columns))
	for i, c := range s.Columns {
		length := c.CharLen
		if length == 0 {
			length = 4
		}
		schema[i] = &sql.Column{Name: c.Name, Table: s.Name, Kind: c.Kind, CharLen: c.CharLen, Offset: i, Length: length}
	}
	table := catalog.NewTable(s.Name, schema)
	if err := e.db.CreateTable(table); err != nil {
		return nil, err
	}
	return &Result{Status: "SUCCESS"}, nil
}

func (e *Engine) createIndex(s *plan.CreateIndexStmt) (*Result, error) {
	t, ok := e.db.Table(s.Table)
	if !ok {
		return nil, rc.ErrSchemaTableNotExist.New(s.Table)
	}
	ct, ok := t.(*catalog.Table)
	if !ok {
		return nil, rc.ErrInternal.New("table is not a catalog.Table")
	}
	if err := ct.CreateIndex(s.Name, s.Column); err != nil {
		return nil, err
	}
	return &Result{Status: "SUCCESS"}, nil
}

func (e *Engine) dropIndex(s *plan.DropIndexStmt) (*Result, error) {
	t, ok := e.db.Table(s.Table)
	if !ok {
		return nil, rc.ErrSchemaTableNotExist.New(s.Table)
	}
	ct, ok := t.(*catalog.Table)
	if !ok {
		return nil, rc.ErrInternal.New("table is not a catalog.Table")
	}
	if err := ct.DropIndex(s.Name); err != nil {
		return nil, err
	}
	return &Result{Status: "SUCCESS"}, nil
}

func (e *Engine) dropTable(s *plan.DropTableStmt) (*Result, error) {
	if err := e.db.DropTable(s.Name); err != nil {
		return nil, err
	}
	return &Result{Status: "SUCCESS"}, nil
}

func (e *Engine) showTables() (*Result, error) {
	tables := e.db.Tables()
	rows := make([][]string, len(tables))
	for i, t := range tables {
		rows[i] = []string{t.Name()}
	}
	return &Result{Columns: []string{"Tables"}, Rows: rows, Status: "SUCCESS"}, nil
}

func (e *Engine) descTable(s *plan.DescTableStmt) (*Result, error) {
	t, ok := e.db.Table(s.Table)
	if !ok {
		return nil, rc.ErrSchemaTableNotExist.New(s.Table)
	}
	cols := t.Schema()
	rows := make([][]string, len(cols))
	for i, c := range cols {
		length := c.CharLen
		if length == 0 {
			length = c.Length
		}
		rows[i] = []string{c.Name, c.Kind.String(), strconv.Itoa(length)}
	}
	return &Result{Columns: []string{"Field", "Type", "Length"}, Rows: rows, Status: "SUCCESS"}, nil
}

func helpResult() *Result {
	lines := [][]string{
		{"CREATE TABLE t (col type[(len)], ...);"},
		{"DROP TABLE t;"},
		{"CREATE INDEX idx ON t (col);"},
		{"DROP INDEX idx ON t;"},
		{"SHOW TABLES;"},
		{"DESC t;"},
		{"INSERT INTO t VALUES (v1, v2, ...);"},
		{"UPDATE t SET col = v [WHERE cond [AND cond ...]];"},
		{"DELETE FROM t [WHERE cond ...];"},
		{"SELECT { * | col [, col]* } FROM t [, t]* [WHERE cond ...];"},
		{"EXPLAIN <select|delete|insert|update>;"},
		{"BEGIN; COMMIT; ROLLBACK;"},
		{"LOAD DATA INFILE 'path' INTO TABLE t;"},
		{"HELP; EXIT;"},
	}
	return &Result{Columns: []string{"Supported SQL"}, Rows: lines, Status: "SUCCESS"}
}
