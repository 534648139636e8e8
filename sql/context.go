package sql

import "context"

// Context threads a context.Context plus the per-statement state every
// operator needs (the currently active transaction). It is passed
// explicitly to every Open/Next/Close call instead of being read from a
// process-global singleton.
type Context struct {
	context.Context
	Txn Txn
}

// ContextOption configures a Context at construction time.
type ContextOption func(*Context)

// WithTxn attaches a transaction to the context.
func WithTxn(txn Txn) ContextOption {
	return func(c *Context) { c.Txn = txn }
}

// NewContext wraps ctx with the options supplied.
func NewContext(ctx context.Context, opts ...ContextOption) *Context {
	c := &Context{Context: ctx}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewEmptyContext returns a Context over context.Background(), useful for
// tests and for statements that do not touch a transaction (DDL, HELP).
func NewEmptyContext() *Context {
	return NewContext(context.Background())
}

// WithTxn returns a copy of c with its transaction replaced.
func (c *Context) WithTxn(txn Txn) *Context {
	cp := *c
	cp.Txn = txn
	return &cp
}
