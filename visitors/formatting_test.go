package visitors

import (
	"testing"

	"github.com/maddock/winq/internal/testutil"
	"github.com/maddock/winq/nodes"
)

func TestFormattingRequiresInnerVisitor(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil inner visitor")
		}
	}()
	NewFormattingVisitor(nil)
}

func TestFormattingSelect(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	core := &nodes.SelectCore{
		From: orders,
		Projections: []nodes.Node{
			orders.Col("customer_id"),
			nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
				Partition(orders.Col("customer_id")).
				Order(orders.Col("placed_at").Asc())).As("running_total"),
		},
		Wheres: []nodes.Node{orders.Col("status").Eq(nodes.Literal("paid"))},
		Orders: []nodes.Node{orders.Col("placed_at").Asc()},
		Limit:  nodes.Literal(10),
	}
	f := NewFormattingVisitor(NewPostgresVisitor(WithoutParams()))
	want := `SELECT "orders"."customer_id"
	,SUM("orders"."amount") OVER (PARTITION BY "orders"."customer_id" ORDER BY "orders"."placed_at" ASC) AS "running_total"
FROM "orders"
WHERE "orders"."status" = 'paid'
ORDER BY "orders"."placed_at" ASC
LIMIT 10`
	testutil.AssertSQL(t, f, core, want)
}

func TestFormattingWindowClause(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	w := nodes.NewWindowDef("w").Order(orders.Col("placed_at").Asc())
	core := &nodes.SelectCore{
		From:        orders,
		Projections: []nodes.Node{nodes.RowNumber().OverName("w")},
		Windows:     []*nodes.WindowDefinition{w},
	}
	f := NewFormattingVisitor(NewSnowflakeVisitor(WithoutParams()))
	want := `SELECT ROW_NUMBER() OVER "w"
FROM "orders"
WINDOW "w" AS (ORDER BY "orders"."placed_at" ASC)`
	testutil.AssertSQL(t, f, core, want)
}

func TestFormattingDelegatesParams(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	inner := NewPostgresVisitor(WithParams())
	f := NewFormattingVisitor(inner)
	core := &nodes.SelectCore{
		From:   orders,
		Wheres: []nodes.Node{orders.Col("status").Eq(nodes.Literal("paid"))},
	}
	sql := core.Accept(f)
	testutil.AssertNoError(t, f.Err())
	assertContains(t, sql, "$1")
	testutil.AssertEqual(t, len(f.Params()), 1)
}
