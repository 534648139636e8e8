// Package planbuilder resolves parser ASTs into Statement IR and builds
// the initial logical operator tree from that IR, including
// implicit-cast insertion. It plays the role go-mysql-server's own
// sql/planbuilder package plays — turning a grammar-level AST into a
// node tree — narrowed here to this module's minimal statement set.
package planbuilder

import (
	"github.com/oceanbase/miniob-sub003/internal/rc"
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
)

// scope binds the FROM-list tables of a statement under resolution, giving
// column references a single place to look up a name.
type scope struct {
	tables []sql.Table
}

func newScope(tables []sql.Table) *scope { return &scope{tables: tables} }

func (s *scope) findTable(name string) (sql.Table, bool) {
	for _, t := range s.tables {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// resolveColumn resolves a possibly table-qualified column reference.
func (s *scope) resolveColumn(table, name string) (*expression.Field, error) {
	if table != "" {
		t, ok := s.findTable(table)
		if !ok {
			return nil, rc.ErrSchemaTableNotExist.New(table)
		}
		idx := t.Schema().IndexOf("", name)
		if idx < 0 {
			return nil, rc.ErrSchemaFieldMissing.New(name, table)
		}
		return expression.NewField(table, name, "", t.Schema()[idx].Kind), nil
	}

	var found *expression.Field
	matches := 0
	for _, t := range s.tables {
		idx := t.Schema().IndexOf("", name)
		if idx < 0 {
			continue
		}
		matches++
		found = expression.NewField(t.Name(), name, "", t.Schema()[idx].Kind)
	}
	switch matches {
	case 0:
		return nil, rc.ErrSchemaFieldMissing.New(name, "")
	case 1:
		return found, nil
	default:
		return nil, rc.ErrInvalidArgument.New("ambiguous column " + name)
	}
}

// expandStar expands `*` (table == "") to every visible column of every
// scope table in FROM order, or `t.*` to table t's visible columns alone.
func (s *scope) expandStar(table string) ([]*expression.Field, error) {
	if table != "" {
		t, ok := s.findTable(table)
		if !ok {
			return nil, rc.ErrSchemaTableNotExist.New(table)
		}
		return fieldsOf(t), nil
	}
	var fields []*expression.Field
	for _, t := range s.tables {
		fields = append(fields, fieldsOf(t)...)
	}
	return fields, nil
}

func fieldsOf(t sql.Table) []*expression.Field {
	cols := t.Schema().Visible()
	fields := make([]*expression.Field, len(cols))
	for i, c := range cols {
		fields[i] = expression.NewField(t.Name(), c.Name, "", c.Kind)
	}
	return fields
}
