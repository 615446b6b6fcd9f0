package nodes

// NamedFunctionNode represents a named SQL function call like COALESCE, CAST, etc.
type NamedFunctionNode struct {
	Predications
	Arithmetics
	Combinable
	Name string
	Args []Node
}

func (n *NamedFunctionNode) Accept(v Visitor) string { return v.VisitNamedFunction(n) }

// NewNamedFunction creates a NamedFunctionNode with properly initialised embedded structs.
func NewNamedFunction(name string, args ...Node) *NamedFunctionNode {
	n := &NamedFunctionNode{Name: name, Args: args}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// Coalesce creates a COALESCE(args...) function call.
func Coalesce(args ...Node) *NamedFunctionNode {
	return NewNamedFunction("COALESCE", args...)
}

// Cast creates a CAST(expr AS typeName) expression.
// The type name is stored as a SqlLiteral so it renders verbatim.
func Cast(expr Node, typeName string) *NamedFunctionNode {
	return NewNamedFunction("CAST", expr, NewSqlLiteral(typeName))
}

// DateTrunc creates a DATE_TRUNC('unit', expr) function call.
func DateTrunc(unit IntervalUnit, expr Node) *NamedFunctionNode {
	return NewNamedFunction("DATE_TRUNC", Literal(unit.String()), expr)
}
