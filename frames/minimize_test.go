package frames

import (
	"testing"

	"github.com/maddock/winq/nodes"
)

func rowsFrame() *nodes.FrameSpec {
	return &nodes.FrameSpec{
		Mode:  nodes.FrameRows,
		Start: nodes.RowsPreceding(5),
		End:   nodes.CurrentRow(),
	}
}

func rangeFrame() *nodes.FrameSpec {
	return &nodes.FrameSpec{
		Mode:  nodes.FrameRange,
		Start: nodes.IntervalPreceding(2, nodes.UnitDay),
		End:   nodes.CurrentRow(),
	}
}

func TestMinimizeDropsFrameForPureAnalytics(t *testing.T) {
	t.Parallel()
	for _, fn := range []nodes.FuncKind{
		nodes.FnRowNumber, nodes.FnRank, nodes.FnDenseRank, nodes.FnNtile,
		nodes.FnPercentRank, nodes.FnCumeDist, nodes.FnLag, nodes.FnLead,
	} {
		if got := Minimize(fn, rowsFrame()); got != nil {
			t.Errorf("%s: expected no frame, got %+v", fn, got)
		}
	}
}

func TestMinimizeForcesRowsForFrameReductions(t *testing.T) {
	t.Parallel()
	for _, fn := range []nodes.FuncKind{nodes.FnFirst, nodes.FnLast, nodes.FnNthValue} {
		in := &nodes.FrameSpec{
			Mode:  nodes.FrameRange,
			Start: nodes.UnboundedPreceding(),
			End:   nodes.CurrentRow(),
		}
		got := Minimize(fn, in)
		if got == nil {
			t.Fatalf("%s: expected a frame", fn)
		}
		if got.Mode != nodes.FrameRows {
			t.Errorf("%s: expected ROWS, got %s", fn, got.Mode)
		}
		if got == in {
			t.Errorf("%s: the input spec must not be returned when mode changes", fn)
		}
		if in.Mode != nodes.FrameRange {
			t.Errorf("%s: the input spec was mutated", fn)
		}
	}
}

func TestMinimizeRowsFrameForReductionsPassesThrough(t *testing.T) {
	t.Parallel()
	in := rowsFrame()
	if got := Minimize(nodes.FnFirst, in); got != in {
		t.Error("an already-ROWS frame passes through untouched")
	}
	if got := Minimize(nodes.FnNthValue, nil); got != nil {
		t.Error("nil frame stays nil")
	}
}

func TestMinimizeKeepsRangeFrameForAggregates(t *testing.T) {
	t.Parallel()
	for _, fn := range []nodes.FuncKind{
		nodes.FnCount, nodes.FnCountStar, nodes.FnSum, nodes.FnMin, nodes.FnMax, nodes.FnMean,
	} {
		in := rangeFrame()
		if got := Minimize(fn, in); got != in {
			t.Errorf("%s: explicit RANGE frame must be preserved", fn)
		}
	}
}

func TestMinimizePassesThroughOtherwise(t *testing.T) {
	t.Parallel()
	in := rowsFrame()
	if got := Minimize(nodes.FnSum, in); got != in {
		t.Error("sum with ROWS frame passes through")
	}
	if got := Minimize(nodes.FnAny, in); got != in {
		t.Error("any with ROWS frame passes through")
	}
	if got := Minimize(nodes.FnSum, nil); got != nil {
		t.Error("nil frame stays nil")
	}
}

func TestMinimizeIsIdempotent(t *testing.T) {
	t.Parallel()
	cases := []struct {
		fn    nodes.FuncKind
		frame *nodes.FrameSpec
	}{
		{nodes.FnRank, rowsFrame()},
		{nodes.FnFirst, &nodes.FrameSpec{Mode: nodes.FrameRange, Start: nodes.UnboundedPreceding(), End: nodes.CurrentRow()}},
		{nodes.FnSum, rangeFrame()},
		{nodes.FnAny, rowsFrame()},
		{nodes.FnLead, nil},
	}
	for _, tc := range cases {
		once := Minimize(tc.fn, tc.frame)
		twice := Minimize(tc.fn, once)
		if once == nil && twice == nil {
			continue
		}
		if once == nil || twice == nil || *once != *twice {
			t.Errorf("%s: minimization is not idempotent", tc.fn)
		}
	}
}
