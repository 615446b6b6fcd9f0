package nodes

// FuncKind identifies a window function. The set is closed: the frame
// rewrite rules and the capability tables dispatch exhaustively over it.
type FuncKind int

const (
	FnRowNumber FuncKind = iota
	FnRank
	FnDenseRank
	FnNtile
	FnPercentRank
	FnCumeDist
	FnLag
	FnLead
	FnFirstValue
	FnLastValue
	FnNthValue
	FnFirst
	FnLast
	FnAny
	FnAll
	FnCount
	FnCountStar
	FnSum
	FnMin
	FnMax
	FnMean
)

// Display names for FuncKind values.
var funcKindNames = [...]string{
	FnRowNumber:   "row_number",
	FnRank:        "rank",
	FnDenseRank:   "dense_rank",
	FnNtile:       "ntile",
	FnPercentRank: "percent_rank",
	FnCumeDist:    "cume_dist",
	FnLag:         "lag",
	FnLead:        "lead",
	FnFirstValue:  "first_value",
	FnLastValue:   "last_value",
	FnNthValue:    "nth_value",
	FnFirst:       "first",
	FnLast:        "last",
	FnAny:         "any",
	FnAll:         "all",
	FnCount:       "count",
	FnCountStar:   "count_star",
	FnSum:         "sum",
	FnMin:         "min",
	FnMax:         "max",
	FnMean:        "mean",
}

// String returns the lowercase display name of the function kind.
func (k FuncKind) String() string { return funcKindNames[k] }

// FuncKindNamed looks up a FuncKind by its display name.
func FuncKindNamed(name string) (FuncKind, bool) {
	for k, n := range funcKindNames {
		if n == name {
			return FuncKind(k), true
		}
	}
	return 0, false
}

// FrameMode specifies ROWS or RANGE for a window frame.
type FrameMode int

const (
	FrameRows FrameMode = iota
	FrameRange
)

// String returns the SQL keyword for the frame mode.
func (m FrameMode) String() string {
	if m == FrameRange {
		return "RANGE"
	}
	return "ROWS"
}

// BoundSide tags which side of the current row a bound lies on.
type BoundSide int

const (
	SidePreceding BoundSide = iota
	SideFollowing
)

// BoundKind discriminates the Bound variants.
type BoundKind int

const (
	// BoundUnset marks an absent start bound. The renderer substitutes the
	// dialect default (UNBOUNDED PRECEDING).
	BoundUnset BoundKind = iota
	BoundUnboundedPreceding
	BoundUnboundedFollowing
	BoundCurrentRow
	BoundOffset   // row count offset
	BoundInterval // interval literal offset
	BoundExpr     // computed expression; rejected at render time
)

// Display names for BoundKind values.
var boundKindNames = [...]string{
	BoundUnset:              "unset",
	BoundUnboundedPreceding: "unbounded preceding",
	BoundUnboundedFollowing: "unbounded following",
	BoundCurrentRow:         "current row",
	BoundOffset:             "row offset",
	BoundInterval:           "interval",
	BoundExpr:               "expression",
}

// String returns the display name of the bound kind.
func (k BoundKind) String() string { return boundKindNames[k] }

// IntervalUnit is the time unit of an interval bound.
type IntervalUnit int

const (
	UnitSecond IntervalUnit = iota
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

// SQL keywords for IntervalUnit values.
var intervalUnitSQL = [...]string{
	UnitSecond: "SECOND",
	UnitMinute: "MINUTE",
	UnitHour:   "HOUR",
	UnitDay:    "DAY",
	UnitWeek:   "WEEK",
	UnitMonth:  "MONTH",
	UnitYear:   "YEAR",
}

// String returns the uppercase SQL name of the unit.
func (u IntervalUnit) String() string { return intervalUnitSQL[u] }

// Bound describes one edge of a window frame. Row counts and interval
// magnitudes are stored as absolute values; direction is carried only by
// Side, never duplicated in the magnitude.
type Bound struct {
	Kind      BoundKind
	Rows      int64 // BoundOffset: absolute row count
	Magnitude int64 // BoundInterval: absolute magnitude
	Unit      IntervalUnit
	Side      BoundSide
	Expr      Node // BoundExpr only
}

// FrameSpec describes the frame clause (ROWS/RANGE BETWEEN start AND end).
// Values are never mutated after construction; rewrites build new specs.
type FrameSpec struct {
	Mode  FrameMode
	Start Bound
	End   Bound
}

// --- Bound constructors ---

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// UnboundedPreceding returns an UNBOUNDED PRECEDING bound.
func UnboundedPreceding() Bound {
	return Bound{Kind: BoundUnboundedPreceding, Side: SidePreceding}
}

// UnboundedFollowing returns an UNBOUNDED FOLLOWING bound.
func UnboundedFollowing() Bound {
	return Bound{Kind: BoundUnboundedFollowing, Side: SideFollowing}
}

// CurrentRow returns a CURRENT ROW bound.
func CurrentRow() Bound {
	return Bound{Kind: BoundCurrentRow}
}

// RowsPreceding returns an N PRECEDING row-offset bound.
func RowsPreceding(n int64) Bound {
	return Bound{Kind: BoundOffset, Rows: absInt64(n), Side: SidePreceding}
}

// RowsFollowing returns an N FOLLOWING row-offset bound.
func RowsFollowing(n int64) Bound {
	return Bound{Kind: BoundOffset, Rows: absInt64(n), Side: SideFollowing}
}

// IntervalPreceding returns an interval-offset bound before the current row,
// e.g. IntervalPreceding(2, UnitDay) for INTERVAL '2' DAY PRECEDING.
func IntervalPreceding(magnitude int64, unit IntervalUnit) Bound {
	return Bound{Kind: BoundInterval, Magnitude: absInt64(magnitude), Unit: unit, Side: SidePreceding}
}

// IntervalFollowing returns an interval-offset bound after the current row.
func IntervalFollowing(magnitude int64, unit IntervalUnit) Bound {
	return Bound{Kind: BoundInterval, Magnitude: absInt64(magnitude), Unit: unit, Side: SideFollowing}
}

// ExprPreceding returns a bound whose offset is a computed expression.
// No supported dialect can represent these; rendering one fails the query.
func ExprPreceding(expr Node) Bound {
	return Bound{Kind: BoundExpr, Expr: expr, Side: SidePreceding}
}

// ExprFollowing returns a computed-expression bound after the current row.
func ExprFollowing(expr Node) Bound {
	return Bound{Kind: BoundExpr, Expr: expr, Side: SideFollowing}
}

// --- Window definition ---

// WindowDefinition describes a window specification: name, partitioning,
// ordering, and frame.
type WindowDefinition struct {
	Name        string
	PartitionBy []Node
	OrderBy     []Node
	Frame       *FrameSpec
}

// NewWindowDef creates a new WindowDefinition with an optional name.
func NewWindowDef(name ...string) *WindowDefinition {
	w := &WindowDefinition{}
	if len(name) > 0 {
		w.Name = name[0]
	}
	return w
}

// Partition sets the PARTITION BY columns.
func (w *WindowDefinition) Partition(cols ...Node) *WindowDefinition {
	w.PartitionBy = cols
	return w
}

// Order sets the ORDER BY expressions.
func (w *WindowDefinition) Order(orderings ...Node) *WindowDefinition {
	w.OrderBy = orderings
	return w
}

// RowsBetween sets a ROWS BETWEEN start AND end frame.
func (w *WindowDefinition) RowsBetween(start, end Bound) *WindowDefinition {
	w.Frame = &FrameSpec{Mode: FrameRows, Start: start, End: end}
	return w
}

// RangeBetween sets a RANGE BETWEEN start AND end frame.
func (w *WindowDefinition) RangeBetween(start, end Bound) *WindowDefinition {
	w.Frame = &FrameSpec{Mode: FrameRange, Start: start, End: end}
	return w
}

// WithFrame returns a copy of the definition with the frame replaced.
// The receiver is left untouched.
func (w *WindowDefinition) WithFrame(f *FrameSpec) *WindowDefinition {
	out := *w
	out.Frame = f
	return &out
}

// WithOrder returns a copy of the definition with the ordering replaced.
func (w *WindowDefinition) WithOrder(orderings ...Node) *WindowDefinition {
	out := *w
	out.OrderBy = orderings
	return &out
}

// --- Window function call ---

// WindowCall represents a window function call together with its OVER
// clause: either an inline WindowDefinition or a named window reference.
// Calls are immutable; frame rewrites produce new WindowCall values.
type WindowCall struct {
	Predications
	Arithmetics
	Combinable
	Func       FuncKind
	Args       []Node
	Window     *WindowDefinition // inline definition (nil if using WindowName)
	WindowName string            // named window reference (empty if using Window)
}

func (n *WindowCall) Accept(v Visitor) string { return v.VisitWindowCall(n) }

// NewWindowCall creates a WindowCall with properly initialised embedded structs.
func NewWindowCall(fn FuncKind, args ...Node) *WindowCall {
	n := &WindowCall{Func: fn, Args: args}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// Over sets the inline window definition and returns the call.
func (n *WindowCall) Over(def *WindowDefinition) *WindowCall {
	n.Window = def
	return n
}

// OverName sets a named window reference and returns the call.
func (n *WindowCall) OverName(name string) *WindowCall {
	n.WindowName = name
	return n
}

// WithWindow returns a copy of the call with the inline definition replaced.
// Func and Args are shared; the receiver is left untouched.
func (n *WindowCall) WithWindow(def *WindowDefinition) *WindowCall {
	out := NewWindowCall(n.Func, n.Args...)
	out.Window = def
	out.WindowName = n.WindowName
	return out
}

// --- Window function constructors ---

// RowNumber creates a ROW_NUMBER() window call.
func RowNumber() *WindowCall { return NewWindowCall(FnRowNumber) }

// Rank creates a RANK() window call.
func Rank() *WindowCall { return NewWindowCall(FnRank) }

// DenseRank creates a DENSE_RANK() window call.
func DenseRank() *WindowCall { return NewWindowCall(FnDenseRank) }

// Ntile creates an NTILE(n) window call.
func Ntile(n Node) *WindowCall { return NewWindowCall(FnNtile, n) }

// PercentRank creates a PERCENT_RANK() window call.
func PercentRank() *WindowCall { return NewWindowCall(FnPercentRank) }

// CumeDist creates a CUME_DIST() window call.
func CumeDist() *WindowCall { return NewWindowCall(FnCumeDist) }

// Lag creates a LAG(expr [, offset [, default]]) window call.
func Lag(args ...Node) *WindowCall { return NewWindowCall(FnLag, args...) }

// Lead creates a LEAD(expr [, offset [, default]]) window call.
func Lead(args ...Node) *WindowCall { return NewWindowCall(FnLead, args...) }

// FirstValue creates a FIRST_VALUE(expr) window call.
func FirstValue(expr Node) *WindowCall { return NewWindowCall(FnFirstValue, expr) }

// LastValue creates a LAST_VALUE(expr) window call.
func LastValue(expr Node) *WindowCall { return NewWindowCall(FnLastValue, expr) }

// NthValue creates an NTH_VALUE(expr, n) window call.
func NthValue(expr, n Node) *WindowCall { return NewWindowCall(FnNthValue, expr, n) }

// First creates a first-in-frame reduction over expr.
func First(expr Node) *WindowCall { return NewWindowCall(FnFirst, expr) }

// Last creates a last-in-frame reduction over expr.
func Last(expr Node) *WindowCall { return NewWindowCall(FnLast, expr) }

// Any creates a boolean-OR reduction over expr.
func Any(expr Node) *WindowCall { return NewWindowCall(FnAny, expr) }

// All creates a boolean-AND reduction over expr.
func All(expr Node) *WindowCall { return NewWindowCall(FnAll, expr) }

// CountOver creates a windowed COUNT(expr). Pass nil for COUNT(*).
func CountOver(expr Node) *WindowCall {
	if expr == nil {
		return NewWindowCall(FnCountStar)
	}
	return NewWindowCall(FnCount, expr)
}

// SumOver creates a windowed SUM(expr).
func SumOver(expr Node) *WindowCall { return NewWindowCall(FnSum, expr) }

// MinOver creates a windowed MIN(expr).
func MinOver(expr Node) *WindowCall { return NewWindowCall(FnMin, expr) }

// MaxOver creates a windowed MAX(expr).
func MaxOver(expr Node) *WindowCall { return NewWindowCall(FnMax, expr) }

// MeanOver creates a windowed AVG(expr).
func MeanOver(expr Node) *WindowCall { return NewWindowCall(FnMean, expr) }
