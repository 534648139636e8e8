package expression

import (
	"strings"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// ConjunctionType distinguishes AND from OR.
type ConjunctionType int

const (
	And ConjunctionType = iota
	Or
)

// Conjunction AND/ORs its children with short-circuit evaluation
//: AND short-circuits on the first false, empty children
// yield true; OR short-circuits on the first true, empty children yield
// false.
type Conjunction struct {
	Type     ConjunctionType
	Children_ []Expression
}

// NewConjunction builds a Conjunction node over children.
func NewConjunction(typ ConjunctionType, children []Expression) *Conjunction {
	return &Conjunction{Type: typ, Children_: children}
}

// NewAnd is a convenience constructor for an AND over children, which are
// kept as given.
func NewAnd(children ...Expression) *Conjunction { return NewConjunction(And, children) }

// NewOr is a convenience constructor for an OR over children, which are
// kept as given.
func NewOr(children ...Expression) *Conjunction { return NewConjunction(Or, children) }

func (c *Conjunction) Eval(t sql.Tuple) (types.Value, error) {
	if c.Type == And {
		for _, child := range c.Children_ {
			v, err := child.Eval(t)
			if err != nil {
				return types.Value{}, err
			}
			b, err := types.Cast(v, types.Bool)
			if err != nil {
				return types.Value{}, err
			}
			if !b.Bool() {
				return types.NewBool(false), nil
			}
		}
		return types.NewBool(true), nil
	}
	// Or: short-circuits left-to-right on the first true.
	for _, child := range c.Children_ {
		v, err := child.Eval(t)
		if err != nil {
			return types.Value{}, err
		}
		b, err := types.Cast(v, types.Bool)
		if err != nil {
			return types.Value{}, err
		}
		if b.Bool() {
			return types.NewBool(true), nil
		}
	}
	return types.NewBool(false), nil
}

func (c *Conjunction) ValueType() types.Kind  { return types.Bool }
func (c *Conjunction) Children() []Expression { return c.Children_ }

func (c *Conjunction) String() string {
	sep := " AND "
	if c.Type == Or {
		sep = " OR "
	}
	parts := make([]string, len(c.Children_))
	for i, child := range c.Children_ {
		parts[i] = child.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// Atoms splits an AND-conjunction into its leaf atoms. A non-Conjunction or an OR
// conjunction is returned as a single atom, since OR atoms are never
// pushed down.
func Atoms(e Expression) []Expression {
	conj, ok := e.(*Conjunction)
	if !ok || conj.Type != And {
		return []Expression{e}
	}
	var atoms []Expression
	for _, c := range conj.Children_ {
		atoms = append(atoms, Atoms(c)...)
	}
	return atoms
}
