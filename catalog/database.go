package catalog

import (
	"sync"

	"github.com/oceanbase/miniob-sub003/internal/rc"
	"github.com/oceanbase/miniob-sub003/sql"
)

// Database is a named, in-memory set of Tables, grounded on go-mysql-server's
// memory.Database/memory.DbProvider pairing (github.com/dolthub/go-mysql-server/memory)
// collapsed to the single-database scope CREATE/DROP TABLE
// statements need.
type Database struct {
	mu     sync.RWMutex
	name   string
	tables map[string]*Table
}

// NewDatabase builds an empty, named Database.
func NewDatabase(name string) *Database {
	return &Database{name: name, tables: make(map[string]*Table)}
}

func (d *Database) Name() string { return d.name }

func (d *Database) Table(name string) (sql.Table, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.tables[name]
	if !ok {
		return nil, false
	}
	return t, true
}

func (d *Database) Tables() []sql.Table {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]sql.Table, 0, len(d.tables))
	for _, t := range d.tables {
		out = append(out, t)
	}
	return out
}

func (d *Database) CreateTable(t sql.Table) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.tables[t.Name()]; exists {
		return rc.ErrInvalidArgument.New("table already exists: " + t.Name())
	}
	ct, ok := t.(*Table)
	if !ok {
		return rc.ErrInternal.New("catalog.Database.CreateTable given a foreign sql.Table")
	}
	d.tables[t.Name()] = ct
	return nil
}

func (d *Database) DropTable(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.tables[name]; !ok {
		return rc.ErrSchemaTableNotExist.New(name)
	}
	delete(d.tables, name)
	return nil
}
