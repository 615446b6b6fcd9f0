package frames

import "github.com/maddock/winq/nodes"

// Minimize reduces a frame specification to the canonical minimal form for
// the function kind. It runs at render time, after the rewrite rules have
// normalized the call. Branches are evaluated in order, first match wins:
//
//  1. Analytic functions outside the first/last/nth-value family never take
//     a frame: emit none.
//  2. First, Last, and NthValue only support row-offset frames: force ROWS.
//  3. The range-interval-capable aggregates keep an explicit RANGE spec
//     exactly as given, bypassing any generic downgrade.
//  4. Otherwise the frame passes through unchanged.
//
// The input is never mutated; branch 2 returns a fresh spec.
func Minimize(fn nodes.FuncKind, frame *nodes.FrameSpec) *nodes.FrameSpec {
	switch {
	case Analytic(fn) && !Positional(fn):
		return nil
	case fn == nodes.FnFirst || fn == nodes.FnLast || fn == nodes.FnNthValue:
		if frame == nil || frame.Mode == nodes.FrameRows {
			return frame
		}
		forced := *frame
		forced.Mode = nodes.FrameRows
		return &forced
	case RangeIntervalCapable(fn) && frame != nil && frame.Mode == nodes.FrameRange:
		return frame
	default:
		return frame
	}
}
