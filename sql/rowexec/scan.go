package rowexec

import (
	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/expression"
	"github.com/oceanbase/miniob-sub003/sql/types"
)

// TableScan scans a table's heap and filters each record against
// Predicates.
type TableScan struct {
	table      sql.Table
	predicates []expression.Expression
	schema     sql.Schema
	scanner    sql.RecordScanner
	record     sql.Record
}

// NewTableScan builds a TableScan physical operator.
func NewTableScan(table sql.Table, predicates []expression.Expression) *TableScan {
	return &TableScan{table: table, predicates: predicates, schema: table.Schema()}
}

func (s *TableScan) Open(ctx *sql.Context) error {
	scanner, err := s.table.Scanner(ctx)
	if err != nil {
		return err
	}
	s.scanner = scanner
	return nil
}

func (s *TableScan) Next(ctx *sql.Context) (sql.Tuple, error) {
	for {
		rec, err := s.scanner.Next()
		if err != nil {
			return nil, err
		}
		s.record = rec
		t := sql.NewRowTuple(&s.record, s.schema)
		ok, err := passes(t, s.predicates)
		if err != nil {
			return nil, err
		}
		if ok {
			return t, nil
		}
	}
}

func (s *TableScan) Close() error {
	if s.scanner == nil {
		return nil
	}
	err := s.scanner.Close()
	s.scanner = nil
	return err
}

func (s *TableScan) Schema() sql.Schema { return s.schema }

// IndexScan walks a key-range index scanner, fetches each record, wraps it
// in a RowTuple, then applies any residual predicates. Bound inclusivity is as supplied by physical lowering.
type IndexScan struct {
	table      sql.Table
	index      sql.Index
	lo, hi     types.Value
	loIncl     bool
	hiIncl     bool
	predicates []expression.Expression
	schema     sql.Schema
	scanner    sql.IndexScanner
	record     sql.Record
}

// NewIndexScan builds an IndexScan physical operator.
func NewIndexScan(table sql.Table, index sql.Index, lo, hi types.Value, loIncl, hiIncl bool, predicates []expression.Expression) *IndexScan {
	return &IndexScan{table: table, index: index, lo: lo, hi: hi, loIncl: loIncl, hiIncl: hiIncl, predicates: predicates, schema: table.Schema()}
}

func (s *IndexScan) Open(ctx *sql.Context) error {
	scanner, err := s.table.IndexScanner(ctx, s.index.Name, s.lo, s.hi, s.loIncl, s.hiIncl)
	if err != nil {
		return err
	}
	s.scanner = scanner
	return nil
}

func (s *IndexScan) Next(ctx *sql.Context) (sql.Tuple, error) {
	for {
		rid, err := s.scanner.Next()
		if err != nil {
			return nil, err
		}
		rec, err := ctx.Txn.GetRecord(ctx, s.table, rid)
		if err != nil {
			return nil, err
		}
		s.record = rec
		t := sql.NewRowTuple(&s.record, s.schema)
		ok, err := passes(t, s.predicates)
		if err != nil {
			return nil, err
		}
		if ok {
			return t, nil
		}
	}
}

func (s *IndexScan) Close() error {
	if s.scanner == nil {
		return nil
	}
	err := s.scanner.Close()
	s.scanner = nil
	return err
}

func (s *IndexScan) Schema() sql.Schema { return s.schema }

// passes reports whether every predicate evaluates true against t.
func passes(t sql.Tuple, predicates []expression.Expression) (bool, error) {
	for _, p := range predicates {
		v, err := p.Eval(t)
		if err != nil {
			return false, err
		}
		b, err := types.Cast(v, types.Bool)
		if err != nil {
			return false, err
		}
		if !b.Bool() {
			return false, nil
		}
	}
	return true, nil
}
