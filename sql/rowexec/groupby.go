package rowexec

import (
	"io"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/plan"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// group accumulates one output row: its key (for HashGroupBy; empty for
// ScalarGroupBy) and the running aggregate state for each Aggregate,
// indexed the same way as the Aggregates slice.
type group struct {
	key   []types.Value
	accum []aggAccum
}

// aggAccum tracks the running state of a single aggregate across a group's
// rows.
type aggAccum struct {
	count int64
	sum   float64
	max   types.Value
	min   types.Value
	kind  types.Kind
}

func (a *aggAccum) add(v types.Value) error {
	a.count++
	switch v.Kind {
	case types.Int32:
		a.sum += float64(v.Int32())
	case types.Float32:
		a.sum += float64(v.Float32())
	}
	if a.max.Kind == types.Undefined {
		a.max = v
		a.min = v
		return nil
	}
	cmp, err := types.Compare(v, a.max)
	if err == nil && cmp > 0 {
		a.max = v
	}
	cmp, err = types.Compare(v, a.min)
	if err == nil && cmp < 0 {
		a.min = v
	}
	return nil
}

func (a *aggAccum) result(fn plan.AggFunc) types.Value {
	switch fn {
	case plan.Count:
		return types.NewInt32(int32(a.count))
	case plan.Sum:
		if a.kind == types.Int32 {
			return types.NewInt32(int32(a.sum))
		}
		return types.NewFloat32(float32(a.sum))
	case plan.Avg:
		if a.count == 0 {
			return types.NewFloat32(0)
		}
		return types.NewFloat32(float32(a.sum / float64(a.count)))
	case plan.Max:
		return a.max
	case plan.Min:
		return a.min
	default:
		return types.Undef
	}
}

// valuesEqual is the group-equality rule: value-equality over
// the group-by expressions, with Undefined forming its own group (two
// Undefined values are equal to each other, but to nothing else).
func valuesEqual(a, b types.Value) bool {
	if a.Kind == types.Undefined || b.Kind == types.Undefined {
		return a.Kind == b.Kind
	}
	if !types.Comparable(a.Kind, b.Kind) {
		return false
	}
	cmp, err := types.Compare(a, b)
	return err == nil && cmp == 0
}

func keysEqual(a, b []types.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !valuesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// groupByBase is shared by ScalarGroupBy and HashGroupBy: buffer the whole
// child stream on Open, evaluating group keys and aggregate arguments
// eagerly since a tuple is only valid until the child's next Next() call.
type groupByBase struct {
	groupExprs []expression.Expression
	aggregates []plan.Aggregate
	schema     sql.Schema
	child      sql.Operator

	groups []*group
	pos    int
}

func (g *groupByBase) buffer(ctx *sql.Context) error {
	for {
		t, err := g.child.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		key := make([]types.Value, len(g.groupExprs))
		for i, e := range g.groupExprs {
			v, err := e.Eval(t)
			if err != nil {
				return err
			}
			key[i] = v
		}
		argVals := make([]types.Value, len(g.aggregates))
		for i, a := range g.aggregates {
			v, err := a.Arg.Eval(t)
			if err != nil {
				return err
			}
			argVals[i] = v
		}

		var grp *group
		for _, existing := range g.groups {
			if keysEqual(existing.key, key) {
				grp = existing
				break
			}
		}
		if grp == nil {
			grp = &group{key: key, accum: make([]aggAccum, len(g.aggregates))}
			for i, a := range g.aggregates {
				grp.accum[i].kind = a.Arg.ValueType()
			}
			g.groups = append(g.groups, grp)
		}
		for i := range g.aggregates {
			if err := grp.accum[i].add(argVals[i]); err != nil {
				return err
			}
		}
	}
}

func (g *groupByBase) rowTuple(idx int) sql.Tuple {
	grp := g.groups[idx]
	specs := make([]sql.TupleCellSpec, 0, len(g.groupExprs)+len(g.aggregates))
	vals := make([]types.Value, 0, len(g.groupExprs)+len(g.aggregates))
	for i, e := range g.groupExprs {
		specs = append(specs, sql.TupleCellSpec{Field: e.String()})
		vals = append(vals, grp.key[i])
	}
	for i, a := range g.aggregates {
		name := a.Alias
		if name == "" {
			name = a.Func.String()
		}
		specs = append(specs, sql.TupleCellSpec{Field: name, Alias: a.Alias})
		vals = append(vals, grp.accum[i].result(a.Func))
	}
	return sql.NewValueListTuple(specs, vals)
}

func (g *groupByBase) close() error { return g.child.Close() }

// HashGroupBy groups by a non-empty list of group-by expressions
//. Output order is unspecified, here the
// order groups were first seen.
type HashGroupBy struct{ groupByBase }

// NewHashGroupBy builds a HashGroupBy physical operator.
func NewHashGroupBy(groupExprs []expression.Expression, aggregates []plan.Aggregate, schema sql.Schema, child sql.Operator) *HashGroupBy {
	return &HashGroupBy{groupByBase{groupExprs: groupExprs, aggregates: aggregates, schema: schema, child: child}}
}

func (h *HashGroupBy) Open(ctx *sql.Context) error {
	if err := h.child.Open(ctx); err != nil {
		return err
	}
	return h.buffer(ctx)
}

func (h *HashGroupBy) Next(*sql.Context) (sql.Tuple, error) {
	if h.pos >= len(h.groups) {
		return nil, io.EOF
	}
	t := h.rowTuple(h.pos)
	h.pos++
	return t, nil
}

func (h *HashGroupBy) Close() error     { return h.close() }
func (h *HashGroupBy) Schema() sql.Schema { return h.schema }

// ScalarGroupBy has no group-by keys: the whole input forms a single
// implicit group.
type ScalarGroupBy struct{ groupByBase }

// NewScalarGroupBy builds a ScalarGroupBy physical operator.
func NewScalarGroupBy(aggregates []plan.Aggregate, schema sql.Schema, child sql.Operator) *ScalarGroupBy {
	return &ScalarGroupBy{groupByBase{aggregates: aggregates, schema: schema, child: child}}
}

func (s *ScalarGroupBy) Open(ctx *sql.Context) error {
	if err := s.child.Open(ctx); err != nil {
		return err
	}
	if err := s.buffer(ctx); err != nil {
		return err
	}
	if len(s.groups) == 0 {
		// An aggregate over zero rows still yields one row (e.g. COUNT=0).
		s.groups = append(s.groups, &group{accum: make([]aggAccum, len(s.aggregates))})
	}
	return nil
}

func (s *ScalarGroupBy) Next(*sql.Context) (sql.Tuple, error) {
	if s.pos >= len(s.groups) {
		return nil, io.EOF
	}
	t := s.rowTuple(s.pos)
	s.pos++
	return t, nil
}

func (s *ScalarGroupBy) Close() error     { return s.close() }
func (s *ScalarGroupBy) Schema() sql.Schema { return s.schema }
