package miniob

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/oceanbase/miniob-sub003/catalog"
	"github.com/oceanbase/miniob-sub003/internal/rc"
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/plan"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// loadDataDelim separates fields within a LOAD DATA INFILE row. No
// reference on-disk format was found for this command, so a plain
// delimited text file was picked as the simplest thing that exercises
// the bulk-insert path.
const loadDataDelim = "|"

// loadData bulk-inserts every line of stmt.Path into stmt.Table, one row per
// line, fields split on loadDataDelim and coerced against the table's
// schema in column order. The whole file loads in one transaction: the
// session's open transaction if there is one, otherwise an auto-commit
// transaction. A row that fails to coerce or insert aborts the load; in
// auto-commit mode every row inserted so far is rolled back, while inside
// a session transaction those rows stay in it for the session to commit or
// roll back.
func (e *Engine) loadData(ctx *sql.Context, sess *Session, stmt *plan.LoadDataStmt) (*Result, error) {
	f, err := os.Open(stmt.Path)
	if err != nil {
		return nil, rc.ErrInvalidArgument.New(err.Error())
	}
	defer f.Close()

	schema := stmt.Table.Schema()
	txn := sess.Txn
	autoCommit := txn == nil
	if autoCommit {
		txn = catalog.NewTxn()
	}
	runCtx := ctx.WithTxn(txn)

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row, err := parseLoadRow(line, schema)
		if err != nil {
			e.rollbackAuto(runCtx, txn, autoCommit)
			return nil, err
		}
		if _, err := txn.InsertRecord(runCtx, stmt.Table, row); err != nil {
			e.rollbackAuto(runCtx, txn, autoCommit)
			return nil, err
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		e.rollbackAuto(runCtx, txn, autoCommit)
		return nil, rc.ErrInvalidArgument.New(err.Error())
	}

	if autoCommit {
		if err := txn.Commit(runCtx); err != nil {
			return nil, err
		}
	}
	e.log.WithField("table", stmt.Table.Name()).WithField("rows", n).Debug("LOAD DATA complete")
	return &Result{Status: "SUCCESS"}, nil
}

// rollbackAuto rolls back txn when the statement owns it (auto-commit
// mode); an explicit session transaction is left for the session to
// roll back itself.
func (e *Engine) rollbackAuto(ctx *sql.Context, txn sql.Txn, autoCommit bool) {
	if !autoCommit {
		return
	}
	if err := txn.Rollback(ctx); err != nil {
		e.log.WithError(errors.Wrap(err, "unable to roll back autocommit transaction")).Warn("rollback failed")
	}
}

// parseLoadRow splits line on loadDataDelim and coerces each field to its
// column's Kind, failing if the field count does not match schema.
func parseLoadRow(line string, schema sql.Schema) (sql.Row, error) {
	fields := strings.Split(line, loadDataDelim)
	if len(fields) != len(schema) {
		return nil, rc.ErrInvalidArgument.New("row has wrong number of fields")
	}
	row := make(sql.Row, len(schema))
	for i, c := range schema {
		v, err := coerce(fields[i], c)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

func coerce(field string, col *sql.Column) (types.Value, error) {
	switch col.Kind {
	case types.Int32:
		i, err := types.ToInt32(field)
		if err != nil {
			return types.Value{}, rc.ErrInvalidArgument.New(err.Error())
		}
		return types.NewInt32(i), nil
	case types.Float32:
		f, err := types.ToFloat32(field)
		if err != nil {
			return types.Value{}, rc.ErrInvalidArgument.New(err.Error())
		}
		return types.NewFloat32(f), nil
	case types.Bool:
		return types.NewBool(field == "true" || field == "1"), nil
	case types.Chars:
		return types.NewChars(field, col.CharLen), nil
	default:
		return types.Value{}, rc.ErrUnsupported.New("LOAD DATA into column kind " + col.Kind.String())
	}
}
