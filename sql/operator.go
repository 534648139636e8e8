package sql

// Operator is the Volcano-style physical operator contract this module
// §4.5: open/next/close, tuple_schema stable between them. Next and
// current_tuple are combined into a single call returning the tuple
// directly — the idiomatic Go shape of go-mysql-server's own RowIter.Next(ctx)
// (sql/plan/*_test.go), which satisfies the same contract: the returned
// Tuple is valid only until the next Next/Close call, exactly mirroring
// the rule that the current tuple is valid only between Next calls.
// io.EOF is the normal termination signal, never an
// error value distinct from io.EOF.
type Operator interface {
	// Open acquires scanners/buffers; must be called exactly once before
	// Next, and must open children before its own resources.
	Open(ctx *Context) error
	// Next advances to the next tuple and returns it, or io.EOF at
	// exhaustion. Any non-EOF error aborts the operator immediately.
	Next(ctx *Context) (Tuple, error)
	// Close releases resources; idempotent, and must succeed even after
	// an error or EOF.
	Close() error
	// Schema is the output schema; stable between Open and Close.
	Schema() Schema
}
