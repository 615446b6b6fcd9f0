package frames

import (
	"fmt"

	"github.com/maddock/winq/nodes"
)

// UnsupportedBoundaryExpressionError reports a window frame bound built from
// a computed expression. No supported dialect can represent an expression
// inside a frame bound, so the whole query fails compilation. The failure is
// deterministic and not retryable.
type UnsupportedBoundaryExpressionError struct {
	// Desc describes the offending bound expression.
	Desc string
}

func (e *UnsupportedBoundaryExpressionError) Error() string {
	return fmt.Sprintf("winq: window frame bound is not a literal: %s", e.Desc)
}

// UnrepresentableFrameError reports a frame whose mode/boundary combination
// no rewrite rule produced and the target dialect cannot express. Reaching
// it means an invariant was violated upstream; the renderer fails loudly
// instead of emitting silently-wrong SQL.
type UnrepresentableFrameError struct {
	Dialect string
	Func    nodes.FuncKind
	Mode    nodes.FrameMode
	Bound   nodes.BoundKind
}

func (e *UnrepresentableFrameError) Error() string {
	return fmt.Sprintf("winq: %s cannot represent a %s frame with %s bound for %s",
		e.Dialect, e.Mode, e.Bound, e.Func)
}
