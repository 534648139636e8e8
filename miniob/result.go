package miniob

import (
	"io"

	"github.com/oceanbase/miniob-sub003/sql"
)

// drain runs op to exhaustion, collecting its tuples into a Result. A nil
// schema means the statement is DML (Delete/Update/Insert never carry an
// output schema per sql/plan's LogicalNode.Schema), so drain reports
// status only and does not bother reading tuples.
//
// The Close defer is registered before Open is called, not after: Open on
// a multi-child operator (NestedLoopJoin, Join generally) can open some
// children successfully and then fail opening another, and every already-
// opened child still needs its Close called. Every Close in this tree is
// nil-safe on a not-yet-opened operator, so registering it unconditionally
// is safe even when Open fails immediately.
func drain(ctx *sql.Context, op sql.Operator, schema sql.Schema, withTableName bool) (res *Result, err error) {
	defer func() {
		if cerr := op.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err = op.Open(ctx); err != nil {
		return nil, err
	}

	if schema == nil {
		for {
			_, nextErr := op.Next(ctx)
			if nextErr == io.EOF {
				break
			}
			if nextErr != nil {
				return nil, nextErr
			}
		}
		return &Result{Status: "SUCCESS"}, nil
	}

	var rows [][]string
	for {
		tup, nextErr := op.Next(ctx)
		if nextErr == io.EOF {
			break
		}
		if nextErr != nil {
			return nil, nextErr
		}
		row := make([]string, tup.CellNum())
		for i := range row {
			v, cellErr := tup.Cell(i)
			if cellErr != nil {
				return nil, cellErr
			}
			row[i] = v.String()
		}
		rows = append(rows, row)
	}
	return &Result{Columns: headerFor(schema, withTableName), Rows: rows, Status: "SUCCESS"}, nil
}

// headerFor renders a Schema's column headers, qualifying with the owning
// table name when withTableName is set unless the column carries an explicit alias.
func headerFor(schema sql.Schema, withTableName bool) []string {
	out := make([]string, len(schema))
	for i, c := range schema {
		switch {
		case c.Alias != "":
			out[i] = c.Alias
		case withTableName && c.Table != "":
			out[i] = c.Table + "." + c.Name
		default:
			out[i] = c.Name
		}
	}
	return out
}
