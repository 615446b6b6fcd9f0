package visitors

import (
	"github.com/maddock/winq/frames"
	"github.com/maddock/winq/internal/quoting"
	"github.com/maddock/winq/nodes"
)

// SQLiteVisitor generates SQLite-dialect SQL.
// Identifiers are quoted with double quotes: "table"."column" (ANSI SQL).
//
// SQLite has no interval type, so its capability table rejects
// interval-bounded RANGE frames; build such queries against a dialect that
// supports them or pre-compute the offsets as numeric values.
type SQLiteVisitor struct {
	*baseVisitor
}

// NewSQLiteVisitor creates a SQLiteVisitor ready for use.
// Pass WithParams() for production queries to enable parameterized mode.
func NewSQLiteVisitor(opts ...Option) *SQLiteVisitor {
	v := &SQLiteVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:       v,
		quoteIdent:  quoting.DoubleQuote,
		caps:        frames.SQLite(),
		funcName:    sqliteFuncName,
		interval:    quotedInterval,
		placeholder: func(_ int) string { return "?" },
	}
	v.applyOptions(opts)
	return v
}

// sqliteFuncName maps the boolean aggregates onto MAX/MIN, same trick as
// MySQL: SQLite stores booleans as 0/1 integers.
func sqliteFuncName(fn nodes.FuncKind) string {
	switch fn {
	case nodes.FnAny:
		return "MAX"
	case nodes.FnAll:
		return "MIN"
	default:
		return baseFuncName(fn)
	}
}
