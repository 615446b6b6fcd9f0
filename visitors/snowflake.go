package visitors

import (
	"github.com/maddock/winq/frames"
	"github.com/maddock/winq/internal/quoting"
	"github.com/maddock/winq/nodes"
)

// SnowflakeVisitor generates Snowflake-dialect SQL.
// Identifiers are quoted with double quotes: "table"."column".
//
// Snowflake is the reference dialect for window-frame rewriting: pair it with
// frames.SnowflakeRules() in the manager pipeline so that frame-restricted
// functions carry the cumulative default frame Snowflake requires.
type SnowflakeVisitor struct {
	*baseVisitor
}

// NewSnowflakeVisitor creates a SnowflakeVisitor ready for use.
// Pass WithParams() for production queries to enable parameterized mode.
func NewSnowflakeVisitor(opts ...Option) *SnowflakeVisitor {
	v := &SnowflakeVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:       v,
		quoteIdent:  quoting.DoubleQuote,
		caps:        frames.Snowflake(),
		funcName:    snowflakeFuncName,
		interval:    quotedInterval,
		placeholder: func(_ int) string { return "?" },
	}
	v.applyOptions(opts)
	return v
}

// snowflakeFuncName overrides the boolean aggregates: Snowflake spells them
// BOOLOR_AGG and BOOLAND_AGG rather than the Postgres BOOL_OR/BOOL_AND.
func snowflakeFuncName(fn nodes.FuncKind) string {
	switch fn {
	case nodes.FnAny:
		return "BOOLOR_AGG"
	case nodes.FnAll:
		return "BOOLAND_AGG"
	default:
		return baseFuncName(fn)
	}
}
