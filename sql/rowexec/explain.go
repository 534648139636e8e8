package rowexec

import (
	"io"
	"strings"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/plan"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// ExplainOp serialises the whole child plan to a single string and emits a
// one-cell tuple on its first Next; further calls return io.EOF. The explained plan is the *physical* tree Lower would build
// for the child, so EXPLAIN reflects the index-scan-vs-table-scan choice
// actually made.
type ExplainOp struct {
	child plan.LogicalNode
	done  bool
}

// NewExplainOp builds an ExplainOp physical operator.
func NewExplainOp(child plan.LogicalNode) *ExplainOp {
	return &ExplainOp{child: child}
}

func (e *ExplainOp) Open(*sql.Context) error { return nil }

func (e *ExplainOp) Next(*sql.Context) (sql.Tuple, error) {
	if e.done {
		return nil, io.EOF
	}
	e.done = true
	text := RenderPlan(e.child)
	specs := []sql.TupleCellSpec{{Field: "Query Plan"}}
	return sql.NewValueListTuple(specs, []types.Value{types.NewChars(text, len(text))}), nil
}

func (e *ExplainOp) Close() error { return nil }
func (e *ExplainOp) Schema() sql.Schema {
	return sql.Schema{{Name: "Query Plan"}}
}

// RenderPlan pretty-prints node's physical lowering the way
// describes: one line per operator, "<indent>-><OPERATOR_NAME>[(<param>)]",
// two spaces of indentation per depth, parent before children, with a
// trailing blank line.
func RenderPlan(node plan.LogicalNode) string {
	var b strings.Builder
	renderNode(&b, node, 0)
	b.WriteString("\n")
	return b.String()
}

func renderNode(b *strings.Builder, node plan.LogicalNode, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("->")
	b.WriteString(physicalName(node))
	if p := physicalParam(node); p != "" {
		b.WriteString("(")
		b.WriteString(p)
		b.WriteString(")")
	}
	b.WriteString("\n")
	for _, c := range node.Children() {
		renderNode(b, c, depth+1)
	}
}

func physicalName(node plan.LogicalNode) string {
	switch n := node.(type) {
	case *plan.Empty:
		return "EMPTY"
	case *plan.TableGet:
		if len(n.Table.Indexes()) > 0 {
			if _, _, _, _, _, _, ok := chooseIndex(n.Table, n.Predicates); ok {
				return "INDEX_SCAN"
			}
		}
		return "TABLE_SCAN"
	case *plan.Predicate:
		return "PREDICATE"
	case *plan.Projection:
		return "PROJECT"
	case *plan.Join:
		return "NESTED_LOOP_JOIN"
	case *plan.Delete:
		return "DELETE"
	case *plan.Update:
		return "UPDATE"
	case *plan.Insert:
		return "INSERT"
	case *plan.Explain:
		return "EXPLAIN"
	case *plan.GroupBy:
		if len(n.GroupExprs) == 0 {
			return "SCALAR_GROUP_BY"
		}
		return "HASH_GROUP_BY"
	case *plan.Order:
		return "ORDER"
	default:
		return "UNKNOWN"
	}
}

func physicalParam(node plan.LogicalNode) string {
	switch n := node.(type) {
	case *plan.TableGet:
		if len(n.Table.Indexes()) > 0 {
			if idx, _, _, _, _, _, ok := chooseIndex(n.Table, n.Predicates); ok {
				return idx.Name
			}
		}
		return n.Table.Name()
	case *plan.Delete:
		return n.Table.Name()
	case *plan.Update:
		return n.Table.Name()
	case *plan.Insert:
		return n.Table.Name()
	default:
		return ""
	}
}
