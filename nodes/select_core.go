package nodes

// SelectCore represents the data container for a SELECT clause.
// The fluent API for building queries lives in the managers package.
type SelectCore struct {
	From        Node
	Projections []Node
	Wheres      []Node
	Joins       []*JoinNode
	Groups      []Node              // GROUP BY expressions
	Havings     []Node              // HAVING conditions
	Windows     []*WindowDefinition // named WINDOW definitions
	Orders      []Node              // OrderingNode values
	Limit       Node                // nil or LiteralNode
	Offset      Node                // nil or LiteralNode
	Distinct    bool
}

func (n *SelectCore) Accept(v Visitor) string { return v.VisitSelectCore(n) }
