package nodes

// OrderDirection represents ASC or DESC ordering.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

// NullsDirection controls NULLS FIRST/LAST positioning.
type NullsDirection int

const (
	NullsDefault NullsDirection = iota
	NullsFirst
	NullsLast
)

// OrderingNode represents an ORDER BY expression with a direction.
type OrderingNode struct {
	Expr      Node
	Direction OrderDirection
	Nulls     NullsDirection
	Combinable
}

func (n *OrderingNode) Accept(v Visitor) string { return v.VisitOrdering(n) }

// NullsFirst returns a copy of the ordering with NULLS FIRST set.
func (n *OrderingNode) NullsFirst() *OrderingNode {
	out := &OrderingNode{Expr: n.Expr, Direction: n.Direction, Nulls: NullsFirst}
	out.self = out
	return out
}

// NullsLast returns a copy of the ordering with NULLS LAST set.
func (n *OrderingNode) NullsLast() *OrderingNode {
	out := &OrderingNode{Expr: n.Expr, Direction: n.Direction, Nulls: NullsLast}
	out.self = out
	return out
}
