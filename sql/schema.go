// Package sql holds the query execution core's shared data model: the
// typed row/schema/tuple abstractions and the narrow storage
// contracts (Table, Database, Txn, Index) that the catalog package
// implements and every operator in sql/rowexec consumes. It mirrors
// go-mysql-server's layout, where "sql" is the one package every other
// package (plan, expression, rowexec, memory) depends on.
package sql

import "github.com/oceanbase/miniob-sub003/sql/types"

// Column is a FieldMeta: name, kind, row-offset, byte-length and
// visibility, plus the owning table name and an optional alias so a
// Column doubles as a "field reference" triple when it appears in
// a Schema built for a particular query.
type Column struct {
	Name    string
	Table   string
	Alias   string
	Kind    types.Kind
	// CharLen is the declared length for Chars columns.
	CharLen int
	Offset  int
	Length  int
	// Hidden marks a system column excluded from `SELECT *` expansion.
	Hidden bool
}

// Schema is an ordered list of Columns; it is the TupleSchema described below
// §3 for RowTuple-backed operators. Other tuple shapes build narrower
// schemas from TupleCellSpecs (see ProjectTuple, JoinedTuple).
type Schema []*Column

// IndexOf returns the position of the first column matching table/name, or
// -1. An empty table matches any table, satisfying unqualified lookups.
func (s Schema) IndexOf(table, name string) int {
	for i, c := range s {
		if c.Name == name && (table == "" || c.Table == table) {
			return i
		}
	}
	return -1
}

// Visible returns the columns of s that are not Hidden, in order —
// exactly the expansion rule for `SELECT *`.
func (s Schema) Visible() Schema {
	out := make(Schema, 0, len(s))
	for _, c := range s {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}

// TupleCellSpec names one output column by (table, field, alias), per
// A lookup matches a Column by alias first (if set), then by
// (table, field).
type TupleCellSpec struct {
	Table string
	Field string
	Alias string
}

// Matches reports whether spec identifies column c.
func (spec TupleCellSpec) Matches(c *Column) bool {
	if spec.Alias != "" {
		return c.Alias == spec.Alias || c.Name == spec.Alias
	}
	if spec.Table != "" && spec.Table != c.Table {
		return false
	}
	return spec.Field == c.Name
}

// Row is a materialized sequence of typed scalars, positionally aligned
// with some Schema.
type Row []types.Value

// NewRow is a convenience constructor mirroring go-mysql-server's sql.NewRow.
func NewRow(vals ...types.Value) Row {
	r := make(Row, len(vals))
	copy(r, vals)
	return r
}
