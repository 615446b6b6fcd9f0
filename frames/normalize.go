package frames

import "github.com/maddock/winq/nodes"

// Normalizer rewrites every window-function call in a SELECT statement
// through a rule registry. It implements the managers transformer interface
// and is the production pipeline stage for dialect frame policy.
//
// Only inline window definitions are rewritten. A call referencing a named
// window shares its definition with other calls of possibly different
// kinds, so named definitions pass through untouched.
type Normalizer struct {
	rules *Registry
}

// NewNormalizer creates a Normalizer applying the given registry.
func NewNormalizer(rules *Registry) *Normalizer {
	return &Normalizer{rules: rules}
}

// TransformSelect returns a copy of the core with all window calls
// normalized. The input core and its nodes are never mutated.
func (nz *Normalizer) TransformSelect(core *nodes.SelectCore) (*nodes.SelectCore, error) {
	out := *core
	out.Projections = nz.rewriteAll(core.Projections)
	out.Orders = nz.rewriteAll(core.Orders)
	out.Havings = nz.rewriteAll(core.Havings)
	return &out, nil
}

func (nz *Normalizer) rewriteAll(items []nodes.Node) []nodes.Node {
	if len(items) == 0 {
		return items
	}
	out := make([]nodes.Node, len(items))
	for i, item := range items {
		out[i] = nz.rewriteNode(item)
	}
	return out
}

// rewriteNode descends into the node shapes that can contain a window call
// and rebuilds them when a child changed. Unknown shapes pass through.
func (nz *Normalizer) rewriteNode(n nodes.Node) nodes.Node {
	switch node := n.(type) {
	case *nodes.WindowCall:
		if node.WindowName != "" {
			return node
		}
		return nz.rules.Apply(node)
	case *nodes.AliasNode:
		child := nz.rewriteNode(node.Expr)
		if child == node.Expr {
			return node
		}
		return nodes.NewAliasNode(child, node.Name)
	case *nodes.GroupingNode:
		child := nz.rewriteNode(node.Expr)
		if child == node.Expr {
			return node
		}
		g := &nodes.GroupingNode{Expr: child}
		return g
	case *nodes.OrderingNode:
		child := nz.rewriteNode(node.Expr)
		if child == node.Expr {
			return node
		}
		return &nodes.OrderingNode{Expr: child, Direction: node.Direction, Nulls: node.Nulls}
	case *nodes.InfixNode:
		left := nz.rewriteNode(node.Left)
		right := nz.rewriteNode(node.Right)
		if left == node.Left && right == node.Right {
			return node
		}
		return nodes.NewInfixNode(left, right, node.Op)
	case *nodes.ComparisonNode:
		left := nz.rewriteNode(node.Left)
		right := nz.rewriteNode(node.Right)
		if left == node.Left && right == node.Right {
			return node
		}
		return nodes.NewComparisonNode(left, right, node.Op)
	default:
		return n
	}
}
