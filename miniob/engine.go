// Package miniob implements the Engine that wires the independently
// testable pieces of the query execution core together: parse, resolve,
// build, rewrite, lower and execute. It plays the role go-mysql-server's
// own engine.go plays — one exported entry point sitting atop
// sql/planbuilder, sql/analyzer and sql/rowexec — narrowed to this
// module's session/transaction model.
package miniob

import (
	"io"

	"github.com/sirupsen/logrus"
	uuid "github.com/satori/go.uuid"

	"github.com/oceanbase/miniob-sub003/sql"
	"github.com/oceanbase/miniob-sub003/sql/analyzer"
)

// Engine binds a database to the rewrite rule set used for every query
//. It is safe for concurrent use by multiple Sessions; a
// Session is not safe for concurrent use by multiple goroutines, matching
// each session's executor state being thread-local.
type Engine struct {
	db    sql.Database
	log   logrus.FieldLogger
	rules []analyzer.Rule
}

// New builds an Engine over db. log may be nil, in which case a discarding
// logger is used.
func New(db sql.Database, log logrus.FieldLogger) *Engine {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Engine{db: db, log: log, rules: analyzer.DefaultRules}
}

// Session holds the per-connection state a sequence of statements shares:
// an explicitly open transaction, if the session issued BEGIN and has not
// yet COMMIT/ROLLBACK'd. A nil Txn
// means the session is in auto-commit mode. ID distinguishes sessions in
// logs.
type Session struct {
	ID  string
	Txn sql.Txn
}

// NewSession starts a fresh, auto-commit session with a freshly minted ID.
func NewSession() *Session { return &Session{ID: uuid.NewV4().String()} }

// Result is the formatted outcome of one statement: Columns/Rows for SELECT/EXPLAIN, Status alone for DML and
// session/DDL commands. Exit is set when the statement was EXIT, so the
// caller's session loop knows to stop.
type Result struct {
	Columns []string
	Rows    [][]string
	Status  string
	Exit    bool
}

// Execute parses, resolves and runs query against e's database under sess,
// returning the formatted result. Errors are returned as each stage raised
// them: schema and argument errors are *errors.Kind values of internal/rc,
// while parse errors and expression-evaluation errors are plain errors.
func (e *Engine) Execute(ctx *sql.Context, sess *Session, query string) (*Result, error) {
	log := e.log.WithField("session", sess.ID).WithField("query", query)
	stmt, err := resolveText(e.db, query)
	if err != nil {
		log.WithError(err).Debug("resolve failed")
		return nil, err
	}
	res, err := e.executeStatement(ctx, sess, stmt)
	if err != nil {
		log.WithError(err).Debug("execute failed")
		return nil, err
	}
	return res, nil
}
