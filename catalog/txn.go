package catalog

import (
	"github.com/oceanbase/miniob-sub003/internal/rc"
	"github.com/oceanbase/miniob-sub003/sql"
)

// undoEntry is the inverse of one InsertRecord/DeleteRecord, replayed by
// Rollback in reverse order.
type undoEntry struct {
	table  *Table
	rid    sql.RID
	before sql.Row // nil for an insert's undo (delete it); non-nil for a delete's undo (restore it)
}

// Txn is a single in-memory transaction. It has no isolation from
// concurrent transactions — concurrency control is out of
// scope — but it does give Insert/Delete a working undo log, so Rollback
// is meaningful.
type Txn struct {
	undo      []undoEntry
	committed bool
	rolledBack bool
}

// NewTxn starts a fresh transaction.
func NewTxn() *Txn { return &Txn{} }

func (tx *Txn) InsertRecord(ctx *sql.Context, table sql.Table, row sql.Row) (sql.RID, error) {
	t, ok := table.(*Table)
	if !ok {
		return sql.RID{}, rc.ErrInternal.New("catalog.Txn given a foreign sql.Table")
	}
	rid := t.insert(row)
	tx.undo = append(tx.undo, undoEntry{table: t, rid: rid, before: nil})
	return rid, nil
}

func (tx *Txn) DeleteRecord(ctx *sql.Context, table sql.Table, rid sql.RID) error {
	t, ok := table.(*Table)
	if !ok {
		return rc.ErrInternal.New("catalog.Txn given a foreign sql.Table")
	}
	row, err := t.delete(rid)
	if err != nil {
		return err
	}
	tx.undo = append(tx.undo, undoEntry{table: t, rid: rid, before: row})
	return nil
}

func (tx *Txn) GetRecord(ctx *sql.Context, table sql.Table, rid sql.RID) (sql.Record, error) {
	t, ok := table.(*Table)
	if !ok {
		return sql.Record{}, rc.ErrInternal.New("catalog.Txn given a foreign sql.Table")
	}
	row, err := t.get(rid)
	if err != nil {
		return sql.Record{}, err
	}
	return sql.Record{RID: rid, Row: row}, nil
}

// Commit discards the undo log; the writes already happened in place.
func (tx *Txn) Commit(ctx *sql.Context) error {
	if tx.rolledBack {
		return rc.ErrInvalidArgument.New("transaction already rolled back")
	}
	tx.committed = true
	tx.undo = nil
	return nil
}

// Rollback replays the undo log in reverse order, undoing every Insert
// (by deleting) and every Delete (by restoring the row).
func (tx *Txn) Rollback(ctx *sql.Context) error {
	if tx.committed {
		return rc.ErrInvalidArgument.New("transaction already committed")
	}
	for i := len(tx.undo) - 1; i >= 0; i-- {
		e := tx.undo[i]
		if e.before == nil {
			if _, err := e.table.delete(e.rid); err != nil {
				return err
			}
			continue
		}
		e.table.insertAt(e.rid, e.before)
	}
	tx.rolledBack = true
	tx.undo = nil
	return nil
}
