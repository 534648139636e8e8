package rowexec

import (
	"io"

	"github.com/oceanbase/miniob-sub003/sql"
)

// EmptyOp backs the logical plan.Empty leaf the rewriter substitutes for a
// subtree its predicate-folding rule proved produces no rows. Open is a no-op; Next is always io.EOF.
type EmptyOp struct {
	schema sql.Schema
}

// NewEmptyOp builds an EmptyOp physical operator over schema.
func NewEmptyOp(schema sql.Schema) *EmptyOp { return &EmptyOp{schema: schema} }

func (e *EmptyOp) Open(*sql.Context) error          { return nil }
func (e *EmptyOp) Next(*sql.Context) (sql.Tuple, error) { return nil, io.EOF }
func (e *EmptyOp) Close() error                     { return nil }
func (e *EmptyOp) Schema() sql.Schema               { return e.schema }
