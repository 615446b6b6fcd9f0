package visitors

import (
	"strconv"

	"github.com/maddock/winq/frames"
	"github.com/maddock/winq/internal/quoting"
	"github.com/maddock/winq/nodes"
)

// MySQLVisitor generates MySQL-dialect SQL.
// Identifiers are quoted with backticks: `table`.`column`.
type MySQLVisitor struct {
	*baseVisitor
}

// NewMySQLVisitor creates a MySQLVisitor ready for use.
// Parameterized mode is enabled by default for SQL injection protection.
// Pass WithoutParams() to disable (not recommended for production).
func NewMySQLVisitor(opts ...Option) *MySQLVisitor {
	v := &MySQLVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:        v,
		quoteIdent:   quoting.Backtick,
		caps:         frames.MySQL(),
		funcName:     mysqlFuncName,
		interval:     mysqlInterval,
		placeholder:  func(_ int) string { return "?" },
		parameterize: true, // Enable by default
	}
	v.applyOptions(opts)
	return v
}

// mysqlInterval renders MySQL's interval grammar: the magnitude is a bare
// numeric token, not a quoted string (INTERVAL 2 DAY).
func mysqlInterval(magnitude int64, unit nodes.IntervalUnit) string {
	return "INTERVAL " + strconv.FormatInt(magnitude, 10) + " " + unit.String()
}

// mysqlFuncName maps the boolean aggregates onto MAX/MIN. MySQL has no
// BOOL_OR/BOOL_AND, but its booleans are 0/1 so MAX and MIN are equivalent.
func mysqlFuncName(fn nodes.FuncKind) string {
	switch fn {
	case nodes.FnAny:
		return "MAX"
	case nodes.FnAll:
		return "MIN"
	default:
		return baseFuncName(fn)
	}
}
