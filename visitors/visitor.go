// Package visitors provides SQL dialect generators that walk the AST.
package visitors

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/maddock/winq/frames"
	"github.com/maddock/winq/internal/quoting"
	"github.com/maddock/winq/nodes"
)

// Operator SQL strings for InfixOp values.
var infixOpSQL = [...]string{
	nodes.OpPlus:     "+",
	nodes.OpMinus:    "-",
	nodes.OpMultiply: "*",
	nodes.OpDivide:   "/",
	nodes.OpConcat:   "||",
}

// needsParens returns true if the node should be wrapped in parentheses
// when used as a child of an infix expression.
func needsParens(n nodes.Node) bool {
	_, ok := n.(*nodes.InfixNode)
	return ok
}

// Operator SQL strings for ComparisonOp values.
var comparisonOpSQL = [...]string{
	nodes.OpEq:      "=",
	nodes.OpNotEq:   "!=",
	nodes.OpGt:      ">",
	nodes.OpGtEq:    ">=",
	nodes.OpLt:      "<",
	nodes.OpLtEq:    "<=",
	nodes.OpLike:    "LIKE",
	nodes.OpNotLike: "NOT LIKE",
}

// Option configures a visitor at construction time.
type Option func(*baseVisitor)

// WithParams enables parameterized query mode. When enabled, literal values
// are replaced with bind placeholders and collected for separate retrieval.
func WithParams() Option {
	return func(b *baseVisitor) {
		b.parameterize = true
	}
}

// WithoutParams disables parameterized query mode.
//
// WARNING: Disables SQL injection protection. Only use for debugging or when
// you're certain all values are trusted. Production code should NEVER use
// this option. When disabled, literal values are interpolated directly into
// the SQL string with basic escaping only.
func WithoutParams() Option {
	return func(b *baseVisitor) {
		b.parameterize = false
	}
}

// baseVisitor implements the shared SQL generation logic used by all dialects.
// Dialect-specific visitors embed *baseVisitor and set the outer field to
// themselves, enabling correct virtual dispatch through the Visitor interface.
type baseVisitor struct {
	// outer is the concrete dialect visitor. All recursive Accept calls
	// go through outer so that dialect overrides are respected.
	outer nodes.Visitor

	// quoteIdent quotes a SQL identifier (table name, column name).
	quoteIdent func(string) string

	// caps is the dialect's window-frame capability table, consulted when
	// rendering frame clauses.
	caps *frames.Table

	// funcName maps a window function kind to the dialect's SQL name.
	funcName func(nodes.FuncKind) string

	// interval renders an interval literal in the dialect's grammar.
	interval func(magnitude int64, unit nodes.IntervalUnit) string

	// parameterize enables bind-parameter mode.
	parameterize bool

	// params accumulates bind parameter values during SQL generation.
	params []any

	// paramIndex tracks the next parameter number (1-based).
	paramIndex int

	// placeholder returns the bind placeholder for a given parameter index.
	// PostgreSQL uses $1, $2; MySQL/SQLite/Snowflake use ?.
	placeholder func(int) string

	// err holds the first compilation error recorded during the walk.
	err error
}

// applyOptions applies functional options to the baseVisitor.
func (b *baseVisitor) applyOptions(opts []Option) {
	for _, o := range opts {
		o(b)
	}
}

// Params returns the collected bind parameters from the last SQL generation.
func (b *baseVisitor) Params() []any {
	return b.params
}

// Reset clears collected parameters and errors for reuse.
func (b *baseVisitor) Reset() {
	b.params = nil
	b.paramIndex = 0
	b.err = nil
}

// Err returns the first compilation error recorded during the last walk,
// or nil. When non-nil, the generated SQL must be discarded.
func (b *baseVisitor) Err() error {
	return b.err
}

// fail records the first compilation error.
func (b *baseVisitor) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Capabilities returns the dialect's window-frame capability table.
func (b *baseVisitor) Capabilities() *frames.Table {
	return b.caps
}

func (b *baseVisitor) VisitTable(n *nodes.Table) string {
	return b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitTableAlias(n *nodes.TableAlias) string {
	if tbl, ok := n.Relation.(*nodes.Table); ok {
		return b.quoteIdent(tbl.Name) + " AS " + b.quoteIdent(n.AliasName)
	}
	return "(" + n.Relation.Accept(b.outer) + ") AS " + b.quoteIdent(n.AliasName)
}

func (b *baseVisitor) VisitAttribute(n *nodes.Attribute) string {
	return b.quoteIdent(nodes.RelationName(n.Relation)) + "." + b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	return b.literalToSQL(n.Value)
}

func (b *baseVisitor) literalToSQL(val any) string {
	// nil always renders as NULL keyword, never parameterized.
	if val == nil {
		return "NULL"
	}

	// In parameterize mode, emit a placeholder and collect the value.
	if b.parameterize {
		b.paramIndex++
		b.params = append(b.params, val)
		return b.placeholder(b.paramIndex)
	}

	switch v := val.(type) {
	case string:
		return "'" + quoting.EscapeString(v) + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%g", v)
	default:
		panic(fmt.Sprintf("winq: unsupported literal type %T", v))
	}
}

func (b *baseVisitor) VisitStar(n *nodes.StarNode) string {
	if n.Table != nil {
		return b.quoteIdent(n.Table.Name) + ".*"
	}
	return "*"
}

func (b *baseVisitor) VisitSqlLiteral(n *nodes.SqlLiteral) string {
	return n.Raw
}

func (b *baseVisitor) VisitComparison(n *nodes.ComparisonNode) string {
	left := n.Left.Accept(b.outer)
	right := n.Right.Accept(b.outer)
	return left + " " + comparisonOpSQL[n.Op] + " " + right
}

func (b *baseVisitor) VisitUnary(n *nodes.UnaryNode) string {
	expr := n.Expr.Accept(b.outer)
	switch n.Op {
	case nodes.OpIsNull:
		return expr + " IS NULL"
	case nodes.OpIsNotNull:
		return expr + " IS NOT NULL"
	default:
		return expr
	}
}

func (b *baseVisitor) VisitAnd(n *nodes.AndNode) string {
	return n.Left.Accept(b.outer) + " AND " + n.Right.Accept(b.outer)
}

func (b *baseVisitor) VisitOr(n *nodes.OrNode) string {
	return n.Left.Accept(b.outer) + " OR " + n.Right.Accept(b.outer)
}

func (b *baseVisitor) VisitNot(n *nodes.NotNode) string {
	return "NOT (" + n.Expr.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitIn(n *nodes.InNode) string {
	expr := n.Expr.Accept(b.outer)
	vals := make([]string, len(n.Vals))
	for i, v := range n.Vals {
		vals[i] = v.Accept(b.outer)
	}
	keyword := "IN"
	if n.Negate {
		keyword = "NOT IN"
	}
	return expr + " " + keyword + " (" + strings.Join(vals, ", ") + ")"
}

func (b *baseVisitor) VisitBetween(n *nodes.BetweenNode) string {
	expr := n.Expr.Accept(b.outer)
	low := n.Low.Accept(b.outer)
	high := n.High.Accept(b.outer)
	keyword := "BETWEEN"
	if n.Negate {
		keyword = "NOT BETWEEN"
	}
	return expr + " " + keyword + " " + low + " AND " + high
}

func (b *baseVisitor) VisitGrouping(n *nodes.GroupingNode) string {
	return "(" + n.Expr.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	expr := n.Expr.Accept(b.outer)
	if n.Direction == nodes.Desc {
		expr += " DESC"
	} else {
		expr += " ASC"
	}
	switch n.Nulls {
	case nodes.NullsFirst:
		expr += " NULLS FIRST"
	case nodes.NullsLast:
		expr += " NULLS LAST"
	}
	return expr
}

func (b *baseVisitor) VisitJoin(n *nodes.JoinNode) string {
	rightSQL := n.Right.Accept(b.outer)

	// Wrap subqueries in parentheses.
	if _, ok := n.Right.(*nodes.SelectCore); ok {
		rightSQL = "(" + rightSQL + ")"
	}

	var sb strings.Builder
	sb.WriteString(n.Type.String())
	sb.WriteString(" ")
	sb.WriteString(rightSQL)

	if n.On != nil {
		sb.WriteString(" ON ")
		sb.WriteString(n.On.Accept(b.outer))
	}

	return sb.String()
}

func (b *baseVisitor) VisitInfix(n *nodes.InfixNode) string {
	left := n.Left.Accept(b.outer)
	if needsParens(n.Left) {
		left = "(" + left + ")"
	}
	right := n.Right.Accept(b.outer)
	if needsParens(n.Right) {
		right = "(" + right + ")"
	}
	return left + " " + infixOpSQL[n.Op] + " " + right
}

// Aggregate function SQL names.
var aggregateFuncSQL = [...]string{
	nodes.AggCount: "COUNT",
	nodes.AggSum:   "SUM",
	nodes.AggAvg:   "AVG",
	nodes.AggMin:   "MIN",
	nodes.AggMax:   "MAX",
}

func (b *baseVisitor) VisitAggregate(n *nodes.AggregateNode) string {
	var sb strings.Builder
	sb.WriteString(aggregateFuncSQL[n.Func])
	sb.WriteString("(")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	if n.Expr == nil {
		sb.WriteString("*")
	} else {
		sb.WriteString(n.Expr.Accept(b.outer))
	}
	sb.WriteString(")")
	return sb.String()
}

// Extract field SQL names.
var extractFieldSQL = [...]string{
	nodes.ExtractYear:    "YEAR",
	nodes.ExtractMonth:   "MONTH",
	nodes.ExtractDay:     "DAY",
	nodes.ExtractHour:    "HOUR",
	nodes.ExtractMinute:  "MINUTE",
	nodes.ExtractSecond:  "SECOND",
	nodes.ExtractQuarter: "QUARTER",
	nodes.ExtractWeek:    "WEEK",
}

func (b *baseVisitor) VisitExtract(n *nodes.ExtractNode) string {
	return "EXTRACT(" + extractFieldSQL[n.Field] + " FROM " + n.Expr.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitNamedFunction(n *nodes.NamedFunctionNode) string {
	var sb strings.Builder
	validateSQLFunctionName(n.Name)
	// Special case: CAST(expr AS type)
	if n.Name == "CAST" && len(n.Args) == 2 {
		sb.WriteString("CAST(")
		sb.WriteString(n.Args[0].Accept(b.outer))
		sb.WriteString(" AS ")
		sb.WriteString(n.Args[1].Accept(b.outer))
		sb.WriteString(")")
		return sb.String()
	}
	sb.WriteString(n.Name)
	sb.WriteString("(")
	for i, arg := range n.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Accept(b.outer))
	}
	sb.WriteString(")")
	return sb.String()
}

func (b *baseVisitor) VisitAlias(n *nodes.AliasNode) string {
	return n.Expr.Accept(b.outer) + " AS " + b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitBindParam(n *nodes.BindParamNode) string {
	// Always parameterize if in param mode, otherwise render as literal.
	if b.parameterize {
		b.paramIndex++
		b.params = append(b.params, n.Value)
		return b.placeholder(b.paramIndex)
	}
	return b.literalToSQL(n.Value)
}

// Window function SQL names shared by the ANSI-leaning dialects.
var windowFuncSQL = [...]string{
	nodes.FnRowNumber:   "ROW_NUMBER",
	nodes.FnRank:        "RANK",
	nodes.FnDenseRank:   "DENSE_RANK",
	nodes.FnNtile:       "NTILE",
	nodes.FnPercentRank: "PERCENT_RANK",
	nodes.FnCumeDist:    "CUME_DIST",
	nodes.FnLag:         "LAG",
	nodes.FnLead:        "LEAD",
	nodes.FnFirstValue:  "FIRST_VALUE",
	nodes.FnLastValue:   "LAST_VALUE",
	nodes.FnNthValue:    "NTH_VALUE",
	nodes.FnFirst:       "FIRST_VALUE",
	nodes.FnLast:        "LAST_VALUE",
	nodes.FnAny:         "BOOL_OR",
	nodes.FnAll:         "BOOL_AND",
	nodes.FnCount:       "COUNT",
	nodes.FnCountStar:   "COUNT",
	nodes.FnSum:         "SUM",
	nodes.FnMin:         "MIN",
	nodes.FnMax:         "MAX",
	nodes.FnMean:        "AVG",
}

// baseFuncName is the default window function naming.
func baseFuncName(fn nodes.FuncKind) string {
	return windowFuncSQL[fn]
}

func (b *baseVisitor) VisitWindowCall(n *nodes.WindowCall) string {
	var sb strings.Builder
	sb.WriteString(b.funcName(n.Func))
	sb.WriteString("(")
	if n.Func == nodes.FnCountStar {
		sb.WriteString("*")
	} else {
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.Accept(b.outer))
		}
	}
	sb.WriteString(") OVER ")
	if n.WindowName != "" {
		sb.WriteString(b.quoteIdent(n.WindowName))
	} else {
		sb.WriteString(b.renderWindowDef(n.Window, n.Func, true))
	}
	return sb.String()
}

// renderWindowDef renders a window definition as SQL:
// (PARTITION BY ... ORDER BY ... ROWS/RANGE BETWEEN ... AND ...).
// When the definition belongs to a specific call, the frame is minimized for
// the call's function kind and validated against the capability table. Named
// WINDOW-clause definitions have no single owning function, so their frames
// render verbatim.
func (b *baseVisitor) renderWindowDef(w *nodes.WindowDefinition, fn nodes.FuncKind, owned bool) string {
	if w == nil {
		return "()"
	}
	var sb strings.Builder
	sb.WriteString("(")
	needSpace := false
	if len(w.PartitionBy) > 0 {
		sb.WriteString("PARTITION BY ")
		parts := make([]string, len(w.PartitionBy))
		for i, p := range w.PartitionBy {
			parts[i] = p.Accept(b.outer)
		}
		sb.WriteString(strings.Join(parts, ", "))
		needSpace = true
	}
	if len(w.OrderBy) > 0 {
		if needSpace {
			sb.WriteString(" ")
		}
		sb.WriteString("ORDER BY ")
		orders := make([]string, len(w.OrderBy))
		for i, o := range w.OrderBy {
			orders[i] = o.Accept(b.outer)
		}
		sb.WriteString(strings.Join(orders, ", "))
		needSpace = true
	}
	frame := w.Frame
	if owned {
		frame = frames.Minimize(fn, frame)
	}
	if frame != nil {
		if needSpace {
			sb.WriteString(" ")
		}
		sb.WriteString(b.renderFrame(frame, fn, owned))
	}
	sb.WriteString(")")
	return sb.String()
}

// renderFrame renders a window frame as SQL, recording a compilation error
// for any mode/bound combination the dialect cannot express.
func (b *baseVisitor) renderFrame(f *nodes.FrameSpec, fn nodes.FuncKind, owned bool) string {
	if owned {
		b.checkFrame(f, fn)
	}
	var sb strings.Builder
	sb.WriteString(f.Mode.String())
	sb.WriteString(" BETWEEN ")
	sb.WriteString(b.renderBound(f.Start, true))
	sb.WriteString(" AND ")
	sb.WriteString(b.renderBound(f.End, false))
	return sb.String()
}

// checkFrame validates mode/bound consistency and dialect capability.
// Failures here mean an upstream rule produced a frame no dialect rule
// covers; the query fails rather than emitting wrong SQL.
func (b *baseVisitor) checkFrame(f *nodes.FrameSpec, fn nodes.FuncKind) {
	// The frame start must not lie after its end.
	if !frameOrdered(f) {
		b.fail(&frames.UnrepresentableFrameError{
			Dialect: b.caps.Name(), Func: fn, Mode: f.Mode, Bound: f.Start.Kind,
		})
	}
	for _, bound := range []nodes.Bound{f.Start, f.End} {
		switch bound.Kind {
		case nodes.BoundExpr:
			// Reported during renderBound with the node description.
			continue
		case nodes.BoundInterval:
			if f.Mode == nodes.FrameRows {
				b.fail(&frames.UnrepresentableFrameError{
					Dialect: b.caps.Name(), Func: fn, Mode: f.Mode, Bound: bound.Kind,
				})
				continue
			}
		case nodes.BoundOffset:
			if f.Mode == nodes.FrameRange && bound.Rows != 0 {
				b.fail(&frames.UnrepresentableFrameError{
					Dialect: b.caps.Name(), Func: fn, Mode: f.Mode, Bound: bound.Kind,
				})
				continue
			}
		}
		if !b.caps.Allows(fn, f.Mode, bound.Kind) {
			b.fail(&frames.UnrepresentableFrameError{
				Dialect: b.caps.Name(), Func: fn, Mode: f.Mode, Bound: bound.Kind,
			})
		}
	}
}

// boundPos is a bound's signed position relative to the current row, tagged
// with the scale it is measured on. Row counts and interval magnitudes are
// separate scales; intervals of different units are separate scales too.
// Positions on different scales are ordered only through the keyword
// endpoints and zero, which sit on the fixed scale.
type boundPos struct {
	value int64
	scale int
}

const (
	scaleFixed = iota
	scaleRows
	scaleInterval // + int(unit)
)

func boundPosition(bound nodes.Bound, isStart bool) (boundPos, bool) {
	switch bound.Kind {
	case nodes.BoundUnset:
		if isStart {
			return boundPos{math.MinInt64, scaleFixed}, true
		}
		return boundPos{0, scaleFixed}, true
	case nodes.BoundUnboundedPreceding:
		return boundPos{math.MinInt64, scaleFixed}, true
	case nodes.BoundUnboundedFollowing:
		return boundPos{math.MaxInt64, scaleFixed}, true
	case nodes.BoundCurrentRow:
		return boundPos{0, scaleFixed}, true
	case nodes.BoundOffset:
		if bound.Rows == 0 {
			return boundPos{0, scaleFixed}, true
		}
		if bound.Side == nodes.SideFollowing {
			return boundPos{bound.Rows, scaleRows}, true
		}
		return boundPos{-bound.Rows, scaleRows}, true
	case nodes.BoundInterval:
		if bound.Magnitude == 0 {
			return boundPos{0, scaleFixed}, true
		}
		scale := scaleInterval + int(bound.Unit)
		if bound.Side == nodes.SideFollowing {
			return boundPos{bound.Magnitude, scale}, true
		}
		return boundPos{-bound.Magnitude, scale}, true
	}
	return boundPos{}, false
}

// frameOrdered reports whether the frame's start bound lies at or before its
// end bound. Bounds without a position (expressions) or on incomparable
// scales pass; their own checks report them.
func frameOrdered(f *nodes.FrameSpec) bool {
	start, sok := boundPosition(f.Start, true)
	end, eok := boundPosition(f.End, false)
	if !sok || !eok {
		return true
	}
	if start.scale != end.scale && start.scale != scaleFixed && end.scale != scaleFixed {
		return true
	}
	return start.value <= end.value
}

// renderBound renders a single frame bound as SQL. A row offset of zero is
// the current row; an unset start bound falls back to the dialect default.
func (b *baseVisitor) renderBound(bound nodes.Bound, isStart bool) string {
	switch bound.Kind {
	case nodes.BoundUnset:
		if isStart {
			return "UNBOUNDED PRECEDING"
		}
		return "CURRENT ROW"
	case nodes.BoundUnboundedPreceding:
		return "UNBOUNDED PRECEDING"
	case nodes.BoundUnboundedFollowing:
		return "UNBOUNDED FOLLOWING"
	case nodes.BoundCurrentRow:
		return "CURRENT ROW"
	case nodes.BoundOffset:
		if bound.Rows == 0 {
			return "CURRENT ROW"
		}
		return strconv.FormatInt(bound.Rows, 10) + " " + sideKeyword(bound.Side)
	case nodes.BoundInterval:
		return b.interval(bound.Magnitude, bound.Unit) + " " + sideKeyword(bound.Side)
	case nodes.BoundExpr:
		b.fail(&frames.UnsupportedBoundaryExpressionError{
			Desc: fmt.Sprintf("%T in %s bound", bound.Expr, sideKeyword(bound.Side)),
		})
		return ""
	default:
		return ""
	}
}

func sideKeyword(side nodes.BoundSide) string {
	if side == nodes.SideFollowing {
		return "FOLLOWING"
	}
	return "PRECEDING"
}

// quotedInterval renders INTERVAL '2' DAY, the grammar shared by Snowflake,
// Postgres, and SQL standard dialects.
func quotedInterval(magnitude int64, unit nodes.IntervalUnit) string {
	return "INTERVAL '" + strconv.FormatInt(magnitude, 10) + "' " + unit.String()
}

func (b *baseVisitor) VisitSelectCore(n *nodes.SelectCore) string {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	b.writeProjections(&sb, n.Projections)
	if n.From != nil {
		sb.WriteString(" FROM ")
		sb.WriteString(n.From.Accept(b.outer))
	}
	for _, j := range n.Joins {
		sb.WriteString(" ")
		sb.WriteString(j.Accept(b.outer))
	}
	b.writeClause(&sb, " WHERE ", n.Wheres, " AND ")
	b.writeClause(&sb, " GROUP BY ", n.Groups, ", ")
	b.writeClause(&sb, " HAVING ", n.Havings, " AND ")
	b.writeWindowClause(&sb, n.Windows)
	b.writeClause(&sb, " ORDER BY ", n.Orders, ", ")
	b.writeNodeClause(&sb, " LIMIT ", n.Limit)
	b.writeNodeClause(&sb, " OFFSET ", n.Offset)

	return sb.String()
}

// writeClause writes "keyword item1 sep item2 sep ..." if items is non-empty.
func (b *baseVisitor) writeClause(sb *strings.Builder, keyword string, items []nodes.Node, sep string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(keyword)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(item.Accept(b.outer))
	}
}

// writeNodeClause writes "keyword node" if node is non-nil.
func (b *baseVisitor) writeNodeClause(sb *strings.Builder, keyword string, n nodes.Node) {
	if n != nil {
		sb.WriteString(keyword)
		sb.WriteString(n.Accept(b.outer))
	}
}

func (b *baseVisitor) writeProjections(sb *strings.Builder, projections []nodes.Node) {
	if len(projections) == 0 {
		sb.WriteString("*")
		return
	}
	for i, p := range projections {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Accept(b.outer))
	}
}

func (b *baseVisitor) writeWindowClause(sb *strings.Builder, windows []*nodes.WindowDefinition) {
	if len(windows) == 0 {
		return
	}
	sb.WriteString(" WINDOW ")
	for i, w := range windows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.quoteIdent(w.Name))
		sb.WriteString(" AS ")
		sb.WriteString(b.renderWindowDef(&nodes.WindowDefinition{
			PartitionBy: w.PartitionBy,
			OrderBy:     w.OrderBy,
			Frame:       w.Frame,
		}, 0, false))
	}
}

// validateSQLFunctionName panics if the function name contains characters
// outside the set of letters, digits, and underscores.
// This prevents SQL injection through crafted function names.
func validateSQLFunctionName(name string) {
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != '_' {
			panic(fmt.Sprintf("winq: invalid SQL function name character %q in %q", string(c), name))
		}
	}
}
