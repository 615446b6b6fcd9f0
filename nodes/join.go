package nodes

// JoinType represents the type of SQL JOIN.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	CrossJoin
)

// String returns the display name for this join type.
func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "INNER JOIN"
	case LeftOuterJoin:
		return "LEFT OUTER JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	default:
		return ""
	}
}

// JoinNode represents a JOIN clause.
type JoinNode struct {
	Left  Node // the current FROM source (informational)
	Right Node // the joined table or subquery
	Type  JoinType
	On    Node // join condition, nil for CROSS JOIN
}

func (n *JoinNode) Accept(v Visitor) string { return v.VisitJoin(n) }
