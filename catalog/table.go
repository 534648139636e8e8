// Package catalog is an in-memory stand-in for the storage/transaction
// layer the query execution core treats as an external collaborator ("buffer pool, disk persistence,
// concurrency control, recovery, B+-tree internals"). It implements the
// narrow sql.Table/sql.Database/sql.Txn/sql.Index contracts the query
// execution core depends on, grounded on go-mysql-server's memory.Table /
// memory.Database (github.com/dolthub/go-mysql-server/memory), adapted
// from partition-based storage to this module's Record/RID model.
package catalog

import (
	"io"
	"sort"
	"sync"

	"github.com/oceanbase/miniob-sub003/internal/rc"
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

var errEOF = io.EOF

// Table is a heap of Records held in a slice, plus zero or more
// single-column Indexes maintained as sorted (key, RID) lists. Mutation
// goes exclusively through the owning Txn.
type Table struct {
	mu      sync.RWMutex
	name    string
	schema  sql.Schema
	indexes []sql.Index

	rows    map[uint64]sql.Row
	order   []uint64
	nextRID uint64
}

// NewTable builds an empty Table named name with schema.
func NewTable(name string, schema sql.Schema) *Table {
	return &Table{name: name, schema: schema, rows: make(map[uint64]sql.Row)}
}

func (t *Table) Name() string     { return t.name }
func (t *Table) Schema() sql.Schema { return t.schema }
func (t *Table) Indexes() []sql.Index { return t.indexes }

// CreateIndex registers a single-column index on column. It is built
// lazily: IndexScanner always walks the current row set, so there is no
// separate maintenance step to keep in sync.
func (t *Table) CreateIndex(name, column string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.schema.IndexOf("", column) < 0 {
		return rc.ErrSchemaFieldMissing.New(column, t.name)
	}
	t.indexes = append(t.indexes, sql.Index{Name: name, Table: t.name, Column: column})
	return nil
}

// DropIndex removes the named index. It is a no-op error if no such index
// exists, matching CreateTable's symmetry with DropTable.
func (t *Table) DropIndex(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, idx := range t.indexes {
		if idx.Name == name {
			t.indexes = append(t.indexes[:i], t.indexes[i+1:]...)
			return nil
		}
	}
	return rc.ErrInvalidArgument.New("no such index " + name)
}

func (t *Table) columnIndex(name string) int {
	return t.schema.IndexOf("", name)
}

// Scanner opens a full heap scan in insertion order.
func (t *Table) Scanner(ctx *sql.Context) (sql.RecordScanner, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]uint64, len(t.order))
	copy(ids, t.order)
	return &heapScanner{table: t, ids: ids}, nil
}

// IndexScanner walks index's column, filtered to [lo, hi] per the
// requested inclusivity, yielding RIDs in ascending key order. lo/hi as the zero Value
// (Undefined) mean unbounded on that side.
func (t *Table) IndexScanner(ctx *sql.Context, index string, lo, hi types.Value, loIncl, hiIncl bool) (sql.IndexScanner, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var col string
	for _, idx := range t.indexes {
		if idx.Name == index {
			col = idx.Column
			break
		}
	}
	if col == "" {
		return nil, rc.ErrInvalidArgument.New("no such index " + index)
	}
	ci := t.columnIndex(col)

	type entry struct {
		key types.Value
		rid sql.RID
	}
	var entries []entry
	for _, id := range t.order {
		row := t.rows[id]
		key := row[ci]
		if lo.Kind != types.Undefined {
			cmp, err := types.Compare(key, lo)
			if err != nil {
				return nil, err
			}
			if cmp < 0 || (cmp == 0 && !loIncl) {
				continue
			}
		}
		if hi.Kind != types.Undefined {
			cmp, err := types.Compare(key, hi)
			if err != nil {
				return nil, err
			}
			if cmp > 0 || (cmp == 0 && !hiIncl) {
				continue
			}
		}
		entries = append(entries, entry{key: key, rid: sql.RID{Page: 0, Slot: uint32(id)}})
	}
	sort.Slice(entries, func(i, j int) bool {
		cmp, _ := types.Compare(entries[i].key, entries[j].key)
		return cmp < 0
	})
	rids := make([]sql.RID, len(entries))
	for i, e := range entries {
		rids[i] = e.rid
	}
	return &indexScanner{rids: rids}, nil
}

// heapScanner walks a Table's row ids in heap order.
type heapScanner struct {
	table *Table
	ids   []uint64
	pos   int
}

func (s *heapScanner) Next() (sql.Record, error) {
	s.table.mu.RLock()
	defer s.table.mu.RUnlock()
	for s.pos < len(s.ids) {
		id := s.ids[s.pos]
		s.pos++
		row, ok := s.table.rows[id]
		if !ok {
			continue // deleted since the scanner opened
		}
		return sql.Record{RID: sql.RID{Page: 0, Slot: uint32(id)}, Row: row}, nil
	}
	return sql.Record{}, errEOF
}

func (s *heapScanner) Close() error { s.pos = len(s.ids); return nil }

type indexScanner struct {
	rids []sql.RID
	pos  int
}

func (s *indexScanner) Next() (sql.RID, error) {
	if s.pos >= len(s.rids) {
		return sql.RID{}, errEOF
	}
	rid := s.rids[s.pos]
	s.pos++
	return rid, nil
}

func (s *indexScanner) Close() error { s.pos = len(s.rids); return nil }

// insert appends row to the heap and returns its new RID. Unexported:
// only Txn mutates a Table, so every write is undo-logged.
func (t *Table) insert(row sql.Row) sql.RID {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextRID
	t.nextRID++
	t.rows[id] = row
	t.order = append(t.order, id)
	return sql.RID{Page: 0, Slot: uint32(id)}
}

// insertAt re-inserts row at an RID a prior delete vacated, used by Txn's
// rollback of a DeleteRecord.
func (t *Table) insertAt(rid sql.RID, row sql.Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := uint64(rid.Slot)
	if _, existed := t.rows[id]; !existed {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

// delete removes rid's row and returns the row that was there, so the
// caller can log it for undo.
func (t *Table) delete(rid sql.RID) (sql.Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := uint64(rid.Slot)
	row, ok := t.rows[id]
	if !ok {
		return nil, rc.ErrInvalidArgument.New("no such record")
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return row, nil
}

// get looks up rid without removing it.
func (t *Table) get(rid sql.RID) (sql.Row, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[uint64(rid.Slot)]
	if !ok {
		return nil, rc.ErrInvalidArgument.New("no such record")
	}
	return row, nil
}
