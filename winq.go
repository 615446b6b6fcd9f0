// Package winq provides a fluent builder and multi-dialect compiler for SQL
// window-function queries.
//
// This package re-exports commonly used types and functions from subpackages
// for convenience. Advanced users can import subpackages directly:
//   - github.com/maddock/winq/managers (query builders)
//   - github.com/maddock/winq/nodes (AST nodes)
//   - github.com/maddock/winq/frames (frame capability tables and rewrite rules)
//   - github.com/maddock/winq/visitors (SQL generation)
package winq

import (
	"github.com/maddock/winq/frames"
	"github.com/maddock/winq/managers"
	"github.com/maddock/winq/nodes"
	"github.com/maddock/winq/visitors"
)

// --- Manager Types ---

// SelectManager provides a fluent API for building SELECT queries.
type SelectManager = managers.SelectManager

// NewSelect creates a new SelectManager with the given table as FROM.
func NewSelect(from nodes.Node) *managers.SelectManager {
	return managers.NewSelectManager(from)
}

// --- Core Node Types ---

// Table represents a SQL table reference.
type Table = nodes.Table

// Attribute represents a column reference (e.g., table.column).
type Attribute = nodes.Attribute

// Node is the base interface all AST nodes implement.
type Node = nodes.Node

// WindowDefinition holds the partitioning, ordering, and frame of a window.
type WindowDefinition = nodes.WindowDefinition

// FrameSpec describes a window frame: mode plus start and end bounds.
type FrameSpec = nodes.FrameSpec

// WindowCall is a window function invocation with its OVER clause.
type WindowCall = nodes.WindowCall

// --- Common Node Constructors ---

// NewTable creates a new table reference.
func NewTable(name string) *nodes.Table {
	return nodes.NewTable(name)
}

// Literal creates a SQL literal node (e.g., numbers, strings).
func Literal(value any) nodes.Node {
	return nodes.Literal(value)
}

// BindParam creates a parameterised placeholder (e.g., $1, ?).
func BindParam(value any) *nodes.BindParamNode {
	return nodes.NewBindParam(value)
}

// Star creates an unqualified star (*) for SELECT *.
func Star() *nodes.StarNode {
	return nodes.Star()
}

// Window creates an empty window definition to be filled with Partition,
// Order, RowsBetween, or RangeBetween.
func Window() *nodes.WindowDefinition {
	return nodes.NewWindowDef()
}

// NamedWindow creates a window definition carrying a name for the WINDOW
// clause; calls reference it through OverName.
func NamedWindow(name string) *nodes.WindowDefinition {
	w := nodes.NewWindowDef()
	w.Name = name
	return w
}

// --- Aggregate Functions ---

// Count creates a COUNT(expr) aggregate. Pass nil for COUNT(*).
func Count(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Count(expr)
}

// Sum creates a SUM(expr) aggregate.
func Sum(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Sum(expr)
}

// Avg creates an AVG(expr) aggregate.
func Avg(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Avg(expr)
}

// Min creates a MIN(expr) aggregate.
func Min(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Min(expr)
}

// Max creates a MAX(expr) aggregate.
func Max(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Max(expr)
}

// CountDistinct creates a COUNT(DISTINCT expr) aggregate.
func CountDistinct(expr nodes.Node) *nodes.AggregateNode {
	return nodes.CountDistinct(expr)
}

// Any creates a boolean-or window call (BOOL_OR / BOOLOR_AGG per dialect).
func Any(expr nodes.Node) *nodes.WindowCall {
	return nodes.Any(expr)
}

// All creates a boolean-and window call (BOOL_AND / BOOLAND_AGG per dialect).
func All(expr nodes.Node) *nodes.WindowCall {
	return nodes.All(expr)
}

// --- Window Functions ---

// RowNumber creates a ROW_NUMBER() window call.
func RowNumber() *nodes.WindowCall { return nodes.RowNumber() }

// Rank creates a RANK() window call.
func Rank() *nodes.WindowCall { return nodes.Rank() }

// DenseRank creates a DENSE_RANK() window call.
func DenseRank() *nodes.WindowCall { return nodes.DenseRank() }

// Lag creates a LAG(expr, ...) window call.
func Lag(args ...nodes.Node) *nodes.WindowCall { return nodes.Lag(args...) }

// Lead creates a LEAD(expr, ...) window call.
func Lead(args ...nodes.Node) *nodes.WindowCall { return nodes.Lead(args...) }

// FirstValue creates a FIRST_VALUE(expr) window call.
func FirstValue(expr nodes.Node) *nodes.WindowCall { return nodes.FirstValue(expr) }

// LastValue creates a LAST_VALUE(expr) window call.
func LastValue(expr nodes.Node) *nodes.WindowCall { return nodes.LastValue(expr) }

// --- Frame Bounds ---

// UnboundedPreceding is the frame bound UNBOUNDED PRECEDING.
func UnboundedPreceding() nodes.Bound { return nodes.UnboundedPreceding() }

// UnboundedFollowing is the frame bound UNBOUNDED FOLLOWING.
func UnboundedFollowing() nodes.Bound { return nodes.UnboundedFollowing() }

// CurrentRow is the frame bound CURRENT ROW.
func CurrentRow() nodes.Bound { return nodes.CurrentRow() }

// RowsPreceding is the frame bound N PRECEDING.
func RowsPreceding(n int64) nodes.Bound { return nodes.RowsPreceding(n) }

// RowsFollowing is the frame bound N FOLLOWING.
func RowsFollowing(n int64) nodes.Bound { return nodes.RowsFollowing(n) }

// IntervalPreceding is the frame bound INTERVAL 'n' UNIT PRECEDING.
func IntervalPreceding(magnitude int64, unit nodes.IntervalUnit) nodes.Bound {
	return nodes.IntervalPreceding(magnitude, unit)
}

// IntervalFollowing is the frame bound INTERVAL 'n' UNIT FOLLOWING.
func IntervalFollowing(magnitude int64, unit nodes.IntervalUnit) nodes.Bound {
	return nodes.IntervalFollowing(magnitude, unit)
}

// --- Visitor Types ---

// SnowflakeVisitor generates Snowflake-compatible SQL.
type SnowflakeVisitor = visitors.SnowflakeVisitor

// SQLiteVisitor generates SQLite-compatible SQL.
type SQLiteVisitor = visitors.SQLiteVisitor

// PostgresVisitor generates PostgreSQL-compatible SQL.
type PostgresVisitor = visitors.PostgresVisitor

// MySQLVisitor generates MySQL-compatible SQL.
type MySQLVisitor = visitors.MySQLVisitor

// --- Visitor Constructors ---

// NewSnowflakeVisitor creates a new Snowflake visitor.
func NewSnowflakeVisitor(opts ...visitors.Option) *visitors.SnowflakeVisitor {
	return visitors.NewSnowflakeVisitor(opts...)
}

// NewSQLiteVisitor creates a new SQLite visitor.
func NewSQLiteVisitor(opts ...visitors.Option) *visitors.SQLiteVisitor {
	return visitors.NewSQLiteVisitor(opts...)
}

// NewPostgresVisitor creates a new PostgreSQL visitor.
func NewPostgresVisitor(opts ...visitors.Option) *visitors.PostgresVisitor {
	return visitors.NewPostgresVisitor(opts...)
}

// NewMySQLVisitor creates a new MySQL visitor.
func NewMySQLVisitor(opts ...visitors.Option) *visitors.MySQLVisitor {
	return visitors.NewMySQLVisitor(opts...)
}

// --- Visitor Options ---

// WithParams enables parameterisation mode for visitors.
func WithParams() visitors.Option {
	return visitors.WithParams()
}

// WithoutParams disables parameterised query mode.
//
// WARNING: Disables SQL injection protection. Only use for debugging or when
// you're certain all values are trusted. Production code should NEVER use
// this option.
func WithoutParams() visitors.Option {
	return visitors.WithoutParams()
}

// --- Frame Normalization ---

// SnowflakeNormalizer returns the transformer applying Snowflake's frame
// rewrite rules. Register it on a manager with Use before rendering with
// a SnowflakeVisitor.
func SnowflakeNormalizer() *frames.Normalizer {
	return frames.NewNormalizer(frames.SnowflakeRules())
}

// PostgresNormalizer returns the transformer applying Postgres frame rules.
func PostgresNormalizer() *frames.Normalizer {
	return frames.NewNormalizer(frames.PostgresRules())
}

// MySQLNormalizer returns the transformer applying MySQL frame rules.
func MySQLNormalizer() *frames.Normalizer {
	return frames.NewNormalizer(frames.MySQLRules())
}

// SQLiteNormalizer returns the transformer applying SQLite frame rules.
func SQLiteNormalizer() *frames.Normalizer {
	return frames.NewNormalizer(frames.SQLiteRules())
}
