package sql

import "github.com/oceanbase/miniob-sub003/sql/types"

// RID is a record identifier: (page-id, slot-number). The catalog
// package is free to choose what a page/slot means
// for its in-memory heap; the core only ever compares RIDs for equality
// and passes them back to the transaction.
type RID struct {
	Page uint64
	Slot uint32
}

// Record is an opaque row keyed by a RID. Unlike the reference C++
// engine's raw byte run, this module stores a typed Row
// directly — idiomatic Go favors structured values over manual byte
// layout, and the invariant that fields are read/written at their meta
// offset with their meta length is preserved structurally: a Record's
// Row is positionally aligned with its Table's Schema.
type Record struct {
	RID RID
	Row Row
}

// RecordScanner walks a Table's heap. Close is idempotent, matching the
// operator Close contract.
type RecordScanner interface {
	Next() (Record, error)
	Close() error
}

// IndexScanner walks a key range of an Index, yielding RIDs in ascending
// key order.
type IndexScanner interface {
	Next() (RID, error)
	Close() error
}

// Index is a single-column index usable for equality/range scans.
type Index struct {
	Name   string
	Table  string
	Column string
}

// Table is the storage collaborator's contract: enough for TableScan,
// IndexScan, Delete and Insert to do their work without the executor ever
// knowing how records are paged or latched.
type Table interface {
	Name() string
	Schema() Schema
	Indexes() []Index
	// Scanner opens a full heap scan in heap-file order.
	Scanner(ctx *Context) (RecordScanner, error)
	// IndexScanner opens a key-range scan over the named index. Bounds may
	// be the zero Value (Undefined) to mean "unbounded" on that side.
	IndexScanner(ctx *Context, index string, lo, hi types.Value, loIncl, hiIncl bool) (IndexScanner, error)
}

// Database is a named collection of Tables, the minimal catalog handle the
// resolver needs.
type Database interface {
	Name() string
	Table(name string) (Table, bool)
	Tables() []Table
	CreateTable(t Table) error
	DropTable(name string) error
}

// Txn is the transaction manager's contract: undo-logged mutation plus
// point lookup by RID.
type Txn interface {
	InsertRecord(ctx *Context, table Table, row Row) (RID, error)
	DeleteRecord(ctx *Context, table Table, rid RID) error
	GetRecord(ctx *Context, table Table, rid RID) (Record, error)
	Commit(ctx *Context) error
	Rollback(ctx *Context) error
}
