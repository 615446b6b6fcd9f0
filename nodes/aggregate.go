package nodes

// AggregateFunc identifies the aggregate function.
type AggregateFunc int

const (
	AggCount AggregateFunc = iota
	AggSum
	AggAvg
	AggMin
	AggMax
)

// AggregateNode represents a plain (non-windowed) aggregate function call.
type AggregateNode struct {
	Predications
	Arithmetics
	Combinable
	Func     AggregateFunc
	Expr     Node // argument (nil for COUNT(*))
	Distinct bool // COUNT(DISTINCT ...)
}

func (n *AggregateNode) Accept(v Visitor) string { return v.VisitAggregate(n) }

// NewAggregateNode creates an AggregateNode with properly initialised embedded structs.
func NewAggregateNode(fn AggregateFunc, expr Node) *AggregateNode {
	n := &AggregateNode{Func: fn, Expr: expr}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// Count creates a COUNT aggregate. Pass nil for COUNT(*).
func Count(expr Node) *AggregateNode {
	return NewAggregateNode(AggCount, expr)
}

// Sum creates a SUM aggregate.
func Sum(expr Node) *AggregateNode {
	return NewAggregateNode(AggSum, expr)
}

// Avg creates an AVG aggregate.
func Avg(expr Node) *AggregateNode {
	return NewAggregateNode(AggAvg, expr)
}

// Min creates a MIN aggregate.
func Min(expr Node) *AggregateNode {
	return NewAggregateNode(AggMin, expr)
}

// Max creates a MAX aggregate.
func Max(expr Node) *AggregateNode {
	return NewAggregateNode(AggMax, expr)
}

// CountDistinct creates a COUNT(DISTINCT expr) aggregate.
func CountDistinct(expr Node) *AggregateNode {
	n := NewAggregateNode(AggCount, expr)
	n.Distinct = true
	return n
}

// windowKind maps a plain aggregate to its window-call function kind.
var windowKind = [...]FuncKind{
	AggCount: FnCount,
	AggSum:   FnSum,
	AggAvg:   FnMean,
	AggMin:   FnMin,
	AggMax:   FnMax,
}

// Over lifts the aggregate into a WindowCall with an inline window
// definition. COUNT with a nil argument becomes COUNT(*).
func (n *AggregateNode) Over(def *WindowDefinition) *WindowCall {
	kind := windowKind[n.Func]
	var call *WindowCall
	if n.Func == AggCount && n.Expr == nil {
		call = NewWindowCall(FnCountStar)
	} else {
		call = NewWindowCall(kind, n.Expr)
	}
	call.Window = def
	return call
}

// OverName lifts the aggregate into a WindowCall referencing a named window.
func (n *AggregateNode) OverName(name string) *WindowCall {
	call := n.Over(nil)
	call.Window = nil
	call.WindowName = name
	return call
}

// ExtractField identifies the date/time field for EXTRACT.
type ExtractField int

const (
	ExtractYear ExtractField = iota
	ExtractMonth
	ExtractDay
	ExtractHour
	ExtractMinute
	ExtractSecond
	ExtractQuarter
	ExtractWeek
)

// ExtractNode represents EXTRACT(field FROM expr).
type ExtractNode struct {
	Predications
	Arithmetics
	Combinable
	Field ExtractField
	Expr  Node
}

func (n *ExtractNode) Accept(v Visitor) string { return v.VisitExtract(n) }

// Extract creates an EXTRACT(field FROM expr) node.
func Extract(field ExtractField, expr Node) *ExtractNode {
	n := &ExtractNode{Field: field, Expr: expr}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}
