// Command miniob is a single-process SQL shell over the query execution
// core: it reads semicolon-terminated statements from stdin, executes them
// against an in-memory catalog.Database, and prints the result the way
// the engine describes (header + delimited rows for SELECT/EXPLAIN, a
// status line for everything else). It plays the role the reference
// C++ engine's observer/client pairing plays, collapsed to one process
// since this module has no network layer.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/oceanbase/miniob-sub003/catalog"
	"github.com/oceanbase/miniob-sub003/internal/config"
	"github.com/oceanbase/miniob-sub003/miniob"
	"github.com/oceanbase/miniob-sub003/sql"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	dbName := flag.String("db", "miniob", "name of the in-memory database")
	delim := flag.String("delim", "|", "delimiter between result row columns")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}
	log := config.NewLogger(cfg)

	db := catalog.NewDatabase(*dbName)
	engine := miniob.New(db, log)
	sess := miniob.NewSession()
	ctx := sql.NewEmptyContext()

	runREPL(os.Stdin, os.Stdout, engine, ctx, sess, *delim)
}

// runREPL accumulates input into semicolon-terminated statements and feeds
// each to engine in turn, stopping when a statement's Result.Exit is set or
// input runs out.
func runREPL(in *os.File, out *os.File, engine *miniob.Engine, ctx *sql.Context, sess *miniob.Session, delim string) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var buf strings.Builder
	prompt := func() { fmt.Fprint(out, "miniob> ") }
	prompt()

	for scanner.Scan() {
		buf.WriteString(scanner.Text())
		buf.WriteString("\n")
		if !strings.Contains(scanner.Text(), ";") {
			continue
		}

		stmt := strings.TrimSpace(buf.String())
		buf.Reset()
		if stmt == "" {
			prompt()
			continue
		}

		res, err := engine.Execute(ctx, sess, stmt)
		if err != nil {
			fmt.Fprintln(out, "FAILURE:", err)
			prompt()
			continue
		}
		printResult(out, res, delim)
		if res.Exit {
			return
		}
		prompt()
	}
}

func printResult(out *os.File, res *miniob.Result, delim string) {
	if res.Columns == nil {
		fmt.Fprintln(out, res.Status)
		return
	}
	fmt.Fprintln(out, strings.Join(res.Columns, delim))
	for _, row := range res.Rows {
		fmt.Fprintln(out, strings.Join(row, delim))
	}
}
