package sql

import (
	"fmt"

	"github.com/oceanbase/miniob-sub003/sql/types"
)

// Tuple is a read view over one row from some source. Its
// four concrete shapes — RowTuple, ProjectTuple, JoinedTuple,
// ValueListTuple — own nothing but their own bookkeeping; a Tuple is valid
// only while its underlying source is valid.
type Tuple interface {
	// CellNum returns the number of cells; it equals Schema()'s length.
	CellNum() int
	// Cell returns the i-th cell's value.
	Cell(i int) (types.Value, error)
	// FindCell is total on Schema(): it returns ErrCellNotFound only for
	// specs outside the schema.
	FindCell(spec TupleCellSpec) (types.Value, error)
	// Schema returns the tuple's output schema.
	Schema() Schema
}

// ErrCellNotFound is returned by FindCell when spec names no column of the
// tuple's schema.
type ErrCellNotFound struct{ Spec TupleCellSpec }

func (e *ErrCellNotFound) Error() string {
	return fmt.Sprintf("cell not found: table=%q field=%q alias=%q", e.Spec.Table, e.Spec.Field, e.Spec.Alias)
}

// RowTuple points at a Record and a schema; field lookup goes through
// offset, i.e. positional index into the Record's Row.
type RowTuple struct {
	record *Record
	schema Schema
}

// NewRowTuple wraps a record for reading. The record pointer's lifetime is
// strictly the owning operator's current-record state — the
// caller must not retain a RowTuple past the next Next() of its source.
func NewRowTuple(record *Record, schema Schema) *RowTuple {
	return &RowTuple{record: record, schema: schema}
}

func (t *RowTuple) CellNum() int { return len(t.schema) }

func (t *RowTuple) Cell(i int) (types.Value, error) {
	if i < 0 || i >= len(t.record.Row) {
		return types.Value{}, fmt.Errorf("cell index %d out of range", i)
	}
	return t.record.Row[i], nil
}

func (t *RowTuple) FindCell(spec TupleCellSpec) (types.Value, error) {
	for i, c := range t.schema {
		if spec.Matches(c) {
			return t.Cell(i)
		}
	}
	return types.Value{}, &ErrCellNotFound{Spec: spec}
}

func (t *RowTuple) Schema() Schema { return t.schema }

// Record exposes the underlying record, used by Delete/Update physical
// operators to recover the RID to mutate.
func (t *RowTuple) Record() *Record { return t.record }

// CellExpr is the narrow capability ProjectTuple needs from an expression
// node: evaluate against a Tuple, and report the Kind it produces. It is
// satisfied structurally by sql/expression.Expression, so this package
// never imports sql/expression.
type CellExpr interface {
	Eval(t Tuple) (types.Value, error)
	ValueType() types.Kind
	String() string
}

// ProjectTuple wraps an inner Tuple plus an ordered list of owned
// expressions; cell i is the i-th expression evaluated on the inner tuple.
type ProjectTuple struct {
	inner   Tuple
	exprs   []CellExpr
	schema  Schema
}

// NewProjectTuple builds a ProjectTuple. schema must have the same length
// as exprs; it supplies the output column names.
func NewProjectTuple(inner Tuple, exprs []CellExpr, schema Schema) *ProjectTuple {
	return &ProjectTuple{inner: inner, exprs: exprs, schema: schema}
}

func (t *ProjectTuple) CellNum() int { return len(t.exprs) }

func (t *ProjectTuple) Cell(i int) (types.Value, error) {
	if i < 0 || i >= len(t.exprs) {
		return types.Value{}, fmt.Errorf("cell index %d out of range", i)
	}
	return t.exprs[i].Eval(t.inner)
}

func (t *ProjectTuple) FindCell(spec TupleCellSpec) (types.Value, error) {
	for i, c := range t.schema {
		if spec.Matches(c) {
			return t.Cell(i)
		}
	}
	return types.Value{}, &ErrCellNotFound{Spec: spec}
}

func (t *ProjectTuple) Schema() Schema { return t.schema }

// JoinedTuple concatenates two inner tuples; indices < left's CellNum map
// to left, the rest to right.
type JoinedTuple struct {
	left, right Tuple
	schema      Schema
}

// NewJoinedTuple builds a JoinedTuple over left and right. schema must be
// the concatenation of left.Schema() and right.Schema(), in that order.
func NewJoinedTuple(left, right Tuple, schema Schema) *JoinedTuple {
	return &JoinedTuple{left: left, right: right, schema: schema}
}

func (t *JoinedTuple) CellNum() int { return t.left.CellNum() + t.right.CellNum() }

func (t *JoinedTuple) Cell(i int) (types.Value, error) {
	n := t.left.CellNum()
	if i < n {
		return t.left.Cell(i)
	}
	return t.right.Cell(i - n)
}

func (t *JoinedTuple) FindCell(spec TupleCellSpec) (types.Value, error) {
	if v, err := t.left.FindCell(spec); err == nil {
		return v, nil
	}
	return t.right.FindCell(spec)
}

func (t *JoinedTuple) Schema() Schema { return t.schema }

// Left and Right expose the inner tuples.
func (t *JoinedTuple) Left() Tuple  { return t.left }
func (t *JoinedTuple) Right() Tuple { return t.right }

// ValueListTuple is a materialized row of (spec, value) pairs, used for
// constants (Calc) and explain output.
type ValueListTuple struct {
	specs  []TupleCellSpec
	values []types.Value
}

// NewValueListTuple pairs specs with values positionally; both slices must
// be the same length.
func NewValueListTuple(specs []TupleCellSpec, values []types.Value) *ValueListTuple {
	return &ValueListTuple{specs: specs, values: values}
}

func (t *ValueListTuple) CellNum() int { return len(t.values) }

func (t *ValueListTuple) Cell(i int) (types.Value, error) {
	if i < 0 || i >= len(t.values) {
		return types.Value{}, fmt.Errorf("cell index %d out of range", i)
	}
	return t.values[i], nil
}

func (t *ValueListTuple) FindCell(spec TupleCellSpec) (types.Value, error) {
	for i, s := range t.specs {
		if s == spec || (spec.Alias != "" && s.Alias == spec.Alias) {
			return t.Cell(i)
		}
	}
	return types.Value{}, &ErrCellNotFound{Spec: spec}
}

func (t *ValueListTuple) Schema() Schema {
	schema := make(Schema, len(t.specs))
	for i, s := range t.specs {
		schema[i] = &Column{Name: s.Field, Table: s.Table, Alias: s.Alias}
	}
	return schema
}
