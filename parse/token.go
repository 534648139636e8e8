// Package parse implements the minimal recursive-descent SQL parser that
// turns SQL text into a parsed AST, feeding it into sql/planbuilder. It
// covers exactly the supported grammar; nothing more. go-mysql-server's
// own parser lives behind vitess's sqlparser, a dependency this module
// does not need, so this package is written from scratch in a plain
// hand-rolled lexer/parser idiom, the same shape used by sqldef's
// schema.Parser (github.com/sqldef/sqldef) for its own dialect-specific
// DDL parsing.
package parse

import "strings"

// TokenKind classifies one lexical token.
type TokenKind int

const (
	EOF TokenKind = iota
	Ident
	Number
	String
	Punct
	Keyword
)

// Token is one lexeme: its kind, literal text, and (for Keyword) the
// upper-cased form used for dispatch.
type Token struct {
	Kind TokenKind
	Text string
}

var keywords = map[string]bool{
	"CREATE": true, "TABLE": true, "DROP": true, "INDEX": true, "ON": true,
	"SHOW": true, "TABLES": true, "DESC": true, "INSERT": true, "INTO": true,
	"VALUES": true, "UPDATE": true, "SET": true, "DELETE": true, "FROM": true,
	"SELECT": true, "WHERE": true, "AND": true, "OR": true, "EXPLAIN": true,
	"BEGIN": true, "COMMIT": true, "ROLLBACK": true, "LOAD": true, "DATA": true,
	"INFILE": true, "HELP": true, "EXIT": true, "INT": true, "INTEGER": true,
	"FLOAT": true, "CHAR": true, "VARCHAR": true, "BOOL": true, "BOOLEAN": true,
	"TRUE": true, "FALSE": true, "NULL": true, "AS": true, "GROUP": true,
	"BY": true, "ORDER": true, "ASC": true, "COUNT": true,
	"SUM": true, "AVG": true, "MAX": true, "MIN": true,
}

// IsKeyword reports whether the upper-cased ident names a reserved word of
// the supported SQL surface.
func IsKeyword(ident string) bool {
	return keywords[strings.ToUpper(ident)]
}
