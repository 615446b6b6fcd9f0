package frames

import (
	"testing"

	"github.com/maddock/winq/nodes"
)

func TestNormalizerRewritesProjections(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	lag := nodes.Lag(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()))
	core := &nodes.SelectCore{
		From:        orders,
		Projections: []nodes.Node{orders.Col("id"), lag},
	}

	nz := NewNormalizer(SnowflakeRules())
	got, err := nz.TransformSelect(core)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == core {
		t.Fatal("expected a new core")
	}
	rewritten, ok := got.Projections[1].(*nodes.WindowCall)
	if !ok {
		t.Fatalf("expected a WindowCall, got %T", got.Projections[1])
	}
	if rewritten.Window.Frame == nil {
		t.Error("expected the restricted default frame on lag")
	}
	// Untouched projections keep identity.
	if got.Projections[0] != core.Projections[0] {
		t.Error("non-window projections must pass through")
	}
	// Original core is unchanged.
	if core.Projections[1].(*nodes.WindowCall).Window.Frame != nil {
		t.Error("input core was mutated")
	}
}

func TestNormalizerRewritesInsideAlias(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	aliased := nodes.Lead(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc())).As("next_amount")
	core := &nodes.SelectCore{From: orders, Projections: []nodes.Node{aliased}}

	got, err := NewNormalizer(SnowflakeRules()).TransformSelect(core)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, ok := got.Projections[0].(*nodes.AliasNode)
	if !ok {
		t.Fatalf("expected an AliasNode, got %T", got.Projections[0])
	}
	if out.Name != "next_amount" {
		t.Error("alias name must survive")
	}
	call := out.Expr.(*nodes.WindowCall)
	if call.Window.Frame == nil {
		t.Error("expected the restricted default frame on lead")
	}
}

func TestNormalizerRewritesInsideArithmetic(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	diff := orders.Col("amount").Minus(
		nodes.Lag(orders.Col("amount")).Over(nodes.NewWindowDef().
			Order(orders.Col("placed_at").Asc())))
	core := &nodes.SelectCore{From: orders, Projections: []nodes.Node{diff}}

	got, err := NewNormalizer(SnowflakeRules()).TransformSelect(core)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	infix := got.Projections[0].(*nodes.InfixNode)
	call := infix.Right.(*nodes.WindowCall)
	if call.Window.Frame == nil {
		t.Error("expected lag inside arithmetic to be rewritten")
	}
}

func TestNormalizerSkipsNamedWindowCalls(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	call := nodes.Lag(orders.Col("amount")).OverName("w")
	core := &nodes.SelectCore{From: orders, Projections: []nodes.Node{call}}

	got, err := NewNormalizer(SnowflakeRules()).TransformSelect(core)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Projections[0] != nodes.Node(call) {
		t.Error("named-window calls must pass through unrewritten")
	}
}

func TestNormalizerRewritesOrderClause(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	ordering := nodes.RowNumber().Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.RowsPreceding(1), nodes.CurrentRow())).Asc()
	core := &nodes.SelectCore{From: orders, Orders: []nodes.Node{ordering}}

	got, err := NewNormalizer(SnowflakeRules()).TransformSelect(core)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := got.Orders[0].(*nodes.OrderingNode)
	call := out.Expr.(*nodes.WindowCall)
	if call.Window.Frame != nil {
		t.Error("row_number frame must be stripped in ORDER BY")
	}
}

func TestNormalizerIdempotent(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	core := &nodes.SelectCore{
		From: orders,
		Projections: []nodes.Node{
			nodes.Lag(orders.Col("amount")).Over(nodes.NewWindowDef().
				Order(orders.Col("placed_at").Asc())),
			nodes.Rank().Over(nodes.NewWindowDef().
				Order(orders.Col("placed_at").Asc()).
				RowsBetween(nodes.RowsPreceding(2), nodes.CurrentRow())),
		},
	}
	nz := NewNormalizer(SnowflakeRules())
	once, err := nz.TransformSelect(core)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := nz.TransformSelect(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range once.Projections {
		a := once.Projections[i].(*nodes.WindowCall)
		b := twice.Projections[i].(*nodes.WindowCall)
		aHas := a.Window != nil && a.Window.Frame != nil
		bHas := b.Window != nil && b.Window.Frame != nil
		if aHas != bHas {
			t.Errorf("projection %d: second pass changed frame presence", i)
		}
		if aHas && *a.Window.Frame != *b.Window.Frame {
			t.Errorf("projection %d: second pass changed the frame", i)
		}
	}
}
