package rowexec

import (
	"io"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// StringListOp is an internal iterator over a slice of string slices, one
// row per inner slice. It backs HELP, SHOW TABLES and DESC TABLE.
type StringListOp struct {
	columnNames []string
	rows        [][]string
	pos         int
}

// NewStringListOp builds a StringListOp over rows, labeling its output
// columns columnNames.
func NewStringListOp(columnNames []string, rows [][]string) *StringListOp {
	return &StringListOp{columnNames: columnNames, rows: rows}
}

func (s *StringListOp) Open(*sql.Context) error { return nil }

func (s *StringListOp) Next(*sql.Context) (sql.Tuple, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	specs := make([]sql.TupleCellSpec, len(row))
	vals := make([]types.Value, len(row))
	for i, cell := range row {
		name := ""
		if i < len(s.columnNames) {
			name = s.columnNames[i]
		}
		specs[i] = sql.TupleCellSpec{Field: name}
		vals[i] = types.NewChars(cell, len(cell))
	}
	return sql.NewValueListTuple(specs, vals), nil
}

func (s *StringListOp) Close() error { s.pos = len(s.rows); return nil }

func (s *StringListOp) Schema() sql.Schema {
	schema := make(sql.Schema, len(s.columnNames))
	for i, n := range s.columnNames {
		schema[i] = &sql.Column{Name: n, Kind: types.Chars}
	}
	return schema
}
