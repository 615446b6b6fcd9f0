package main

import (
	"fmt"
	"strings"

	"github.com/maddock/winq/nodes"
)

// printCore dumps the query AST clause by clause. Expressions are shown as
// rendered fragments; window calls get an extra line describing their frame.
func (s *Session) printCore(core *nodes.SelectCore) {
	v := s.newVisitor()

	render := func(n nodes.Node) string {
		if n == nil {
			return "<nil>"
		}
		return n.Accept(v)
	}

	if core.Distinct {
		fmt.Fprintln(s.out, "SELECT DISTINCT")
	} else {
		fmt.Fprintln(s.out, "SELECT")
	}
	if len(core.Projections) == 0 {
		fmt.Fprintln(s.out, "  *")
	}
	for _, p := range core.Projections {
		fmt.Fprintf(s.out, "  %s\n", render(p))
		if call := windowCallOf(p); call != nil {
			fmt.Fprintf(s.out, "    window func %s: %s\n", call.Func, describeWindow(call))
		}
	}
	fmt.Fprintf(s.out, "FROM %s\n", render(core.From))
	for _, j := range core.Joins {
		fmt.Fprintf(s.out, "%s\n", render(j))
	}
	for _, w := range core.Wheres {
		fmt.Fprintf(s.out, "WHERE %s\n", render(w))
	}
	for _, g := range core.Groups {
		fmt.Fprintf(s.out, "GROUP BY %s\n", render(g))
	}
	for _, h := range core.Havings {
		fmt.Fprintf(s.out, "HAVING %s\n", render(h))
	}
	for _, w := range core.Windows {
		fmt.Fprintf(s.out, "WINDOW %s: partitions=%d orderings=%d frame=%s\n",
			w.Name, len(w.PartitionBy), len(w.OrderBy), describeFrame(w.Frame))
	}
	for _, o := range core.Orders {
		fmt.Fprintf(s.out, "ORDER BY %s\n", render(o))
	}
	if core.Limit != nil {
		fmt.Fprintf(s.out, "LIMIT %s\n", render(core.Limit))
	}
	if core.Offset != nil {
		fmt.Fprintf(s.out, "OFFSET %s\n", render(core.Offset))
	}
}

// windowCallOf unwraps aliases to find a window call projection.
func windowCallOf(n nodes.Node) *nodes.WindowCall {
	switch node := n.(type) {
	case *nodes.WindowCall:
		return node
	case *nodes.AliasNode:
		return windowCallOf(node.Expr)
	}
	return nil
}

func describeWindow(call *nodes.WindowCall) string {
	if call.WindowName != "" {
		return "named window " + call.WindowName
	}
	if call.Window == nil {
		return "no definition"
	}
	return fmt.Sprintf("partitions=%d orderings=%d frame=%s",
		len(call.Window.PartitionBy), len(call.Window.OrderBy), describeFrame(call.Window.Frame))
}

func describeFrame(f *nodes.FrameSpec) string {
	if f == nil {
		return "default"
	}
	mode := "ROWS"
	if f.Mode == nodes.FrameRange {
		mode = "RANGE"
	}
	return fmt.Sprintf("%s [%s, %s]", mode, describeBound(f.Start, true), describeBound(f.End, false))
}

func describeBound(b nodes.Bound, isStart bool) string {
	switch b.Kind {
	case nodes.BoundUnset:
		if isStart {
			return "unbounded preceding"
		}
		return "current row"
	case nodes.BoundUnboundedPreceding:
		return "unbounded preceding"
	case nodes.BoundUnboundedFollowing:
		return "unbounded following"
	case nodes.BoundCurrentRow:
		return "current row"
	case nodes.BoundOffset:
		return fmt.Sprintf("%d %s", b.Rows, sideName(b.Side))
	case nodes.BoundInterval:
		return fmt.Sprintf("interval %d %s %s",
			b.Magnitude, strings.ToLower(b.Unit.String()), sideName(b.Side))
	case nodes.BoundExpr:
		return "expression bound (unsupported)"
	}
	return "unknown"
}

func sideName(side nodes.BoundSide) string {
	if side == nodes.SideFollowing {
		return "following"
	}
	return "preceding"
}
