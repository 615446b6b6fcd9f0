package visitors

import (
	"errors"
	"strings"
	"testing"

	"github.com/maddock/winq/frames"
	"github.com/maddock/winq/internal/testutil"
	"github.com/maddock/winq/nodes"
)

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected output to contain %q, got:\n%s", substr, s)
	}
}

// --- Table ---

func TestVisitTable(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), orders, `"orders"`)
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), orders, `"orders"`)
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), orders, "`orders`")
	testutil.AssertSQL(t, NewSQLiteVisitor(WithoutParams()), orders, `"orders"`)
}

func TestVisitTableAlias(t *testing.T) {
	t.Parallel()
	o := nodes.NewTable("orders").Alias("o")
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), o, `"orders" AS "o"`)
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), o, "`orders` AS `o`")
}

// --- Attribute ---

func TestVisitAttribute(t *testing.T) {
	t.Parallel()
	col := nodes.NewTable("orders").Col("amount")
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), col, `"orders"."amount"`)
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), col, "`orders`.`amount`")
}

func TestVisitAttributeOnAlias(t *testing.T) {
	t.Parallel()
	o := nodes.NewTable("orders").Alias("o")
	col := o.Col("amount")
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), col, `"o"."amount"`)
}

// --- Literals ---

func TestVisitLiteralString(t *testing.T) {
	t.Parallel()
	n := nodes.Literal("Alice")
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n, `'Alice'`)
}

func TestVisitLiteralStringEscapesSingleQuotes(t *testing.T) {
	t.Parallel()
	n := nodes.Literal("O'Brien")
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n, `'O''Brien'`)
}

func TestVisitLiteralInt(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), nodes.Literal(42), `42`)
}

func TestVisitLiteralBool(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), nodes.Literal(true), `TRUE`)
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), nodes.Literal(false), `FALSE`)
}

func TestVisitLiteralNil(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), nodes.Null(), `NULL`)
}

func TestVisitLiteralNilNeverParameterized(t *testing.T) {
	t.Parallel()
	v := NewPostgresVisitor(WithParams())
	testutil.AssertSQL(t, v, nodes.Null(), `NULL`)
	testutil.AssertEqual(t, len(v.Params()), 0)
}

// --- Stars ---

func TestVisitUnqualifiedStar(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), nodes.Star(), `*`)
}

func TestVisitQualifiedStar(t *testing.T) {
	t.Parallel()
	n := nodes.NewTable("orders").Star()
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n, `"orders".*`)
}

// --- Comparisons ---

func TestVisitEq(t *testing.T) {
	t.Parallel()
	n := nodes.NewTable("orders").Col("status").Eq(nodes.Literal("paid"))
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n, `"orders"."status" = 'paid'`)
}

func TestVisitGtEq(t *testing.T) {
	t.Parallel()
	n := nodes.NewTable("orders").Col("amount").GtEq(nodes.Literal(100))
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n, `"orders"."amount" >= 100`)
}

func TestVisitIsNull(t *testing.T) {
	t.Parallel()
	n := nodes.NewTable("orders").Col("canceled_at").IsNull()
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n, `"orders"."canceled_at" IS NULL`)
}

// --- Ordering ---

func TestVisitOrderingAsc(t *testing.T) {
	t.Parallel()
	n := nodes.NewTable("orders").Col("placed_at").Asc()
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n, `"orders"."placed_at" ASC`)
}

func TestVisitOrderingDescNullsLast(t *testing.T) {
	t.Parallel()
	n := nodes.NewTable("orders").Col("placed_at").Desc().NullsLast()
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n, `"orders"."placed_at" DESC NULLS LAST`)
}

// --- Window calls: basics ---

// --- Scalar functions ---

func TestVisitCoalesce(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	fn := nodes.Coalesce(users.Col("nickname"), users.Col("name"))
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), fn,
		`COALESCE("users"."nickname", "users"."name")`)
}

func TestVisitCastRendersAsTypeClause(t *testing.T) {
	t.Parallel()
	fn := nodes.Cast(nodes.NewTable("users").Col("age"), "INTEGER")
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), fn,
		`CAST("users"."age" AS INTEGER)`)
}

func TestVisitExtract(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.Extract(nodes.ExtractYear, orders.Col("placed_at"))
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n,
		`EXTRACT(YEAR FROM "orders"."placed_at")`)
}

func TestVisitDateTrunc(t *testing.T) {
	t.Parallel()
	fn := nodes.DateTrunc(nodes.UnitMonth, nodes.NewTable("orders").Col("placed_at"))
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), fn,
		`DATE_TRUNC('MONTH', "orders"."placed_at")`)
}

func TestVisitExtractAsWindowOrderingKey(t *testing.T) {
	t.Parallel()
	readings := nodes.NewTable("readings")
	def := nodes.NewWindowDef().
		Order(nodes.Extract(nodes.ExtractDay, readings.Col("taken_at")).Asc()).
		RangeBetween(nodes.IntervalPreceding(2, nodes.UnitDay), nodes.CurrentRow())
	call := nodes.Min(readings.Col("value")).Over(def)
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), call,
		`MIN("readings"."value") OVER (ORDER BY EXTRACT(DAY FROM "readings"."taken_at") ASC RANGE BETWEEN INTERVAL '2' DAY PRECEDING AND CURRENT ROW)`)
}

// --- Window functions ---

func TestRowNumberOverEmptyWindow(t *testing.T) {
	t.Parallel()
	n := nodes.RowNumber().Over(nodes.NewWindowDef())
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n, `ROW_NUMBER() OVER ()`)
}

func TestRowNumberPartitionAndOrder(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.RowNumber().Over(nodes.NewWindowDef().
		Partition(orders.Col("customer_id")).
		Order(orders.Col("placed_at").Asc()))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`ROW_NUMBER() OVER (PARTITION BY "orders"."customer_id" ORDER BY "orders"."placed_at" ASC)`)
}

func TestCountStarOver(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.CountOver(nil).Over(nodes.NewWindowDef().Partition(orders.Col("customer_id")))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`COUNT(*) OVER (PARTITION BY "orders"."customer_id")`)
}

func TestMeanOverRendersAvg(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.MeanOver(orders.Col("amount")).Over(nodes.NewWindowDef())
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`AVG("orders"."amount") OVER ()`)
}

func TestAggregateOverLiftsToWindowCall(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.Sum(orders.Col("amount")).Over(nodes.NewWindowDef().
		Partition(orders.Col("customer_id")))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`SUM("orders"."amount") OVER (PARTITION BY "orders"."customer_id")`)
}

func TestNamedWindowReference(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).OverName("w")
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`SUM("orders"."amount") OVER "w"`)
}

// --- Window calls: dialect function names ---

func TestBooleanAggregateNames(t *testing.T) {
	t.Parallel()
	flag := nodes.NewTable("orders").Col("paid")
	anyCall := nodes.Any(flag).Over(nodes.NewWindowDef())
	allCall := nodes.All(flag).Over(nodes.NewWindowDef())

	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), anyCall, `BOOLOR_AGG("orders"."paid") OVER ()`)
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), allCall, `BOOLAND_AGG("orders"."paid") OVER ()`)
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), anyCall, `BOOL_OR("orders"."paid") OVER ()`)
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), allCall, `BOOL_AND("orders"."paid") OVER ()`)
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), anyCall, "MAX(`orders`.`paid`) OVER ()")
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), allCall, "MIN(`orders`.`paid`) OVER ()")
}

func TestFirstAndLastRenderAsValueFunctions(t *testing.T) {
	t.Parallel()
	amount := nodes.NewTable("orders").Col("amount")
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()),
		nodes.First(amount).Over(nodes.NewWindowDef()),
		`FIRST_VALUE("orders"."amount") OVER ()`)
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()),
		nodes.Last(amount).Over(nodes.NewWindowDef()),
		`LAST_VALUE("orders"."amount") OVER ()`)
}

// --- Window frames: row offsets ---

func TestRowsFrameWithOffsets(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.RowsPreceding(3), nodes.RowsFollowing(1)))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`SUM("orders"."amount") OVER (ORDER BY "orders"."placed_at" ASC ROWS BETWEEN 3 PRECEDING AND 1 FOLLOWING)`)
}

func TestRowsFrameZeroOffsetIsCurrentRow(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.RowsPreceding(2), nodes.RowsFollowing(0)))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`SUM("orders"."amount") OVER (ORDER BY "orders"."placed_at" ASC ROWS BETWEEN 2 PRECEDING AND CURRENT ROW)`)
}

func TestRowsFrameUnsetStartDefaultsToUnboundedPreceding(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	def := nodes.NewWindowDef().Order(orders.Col("placed_at").Asc())
	def.Frame = &nodes.FrameSpec{
		Mode:  nodes.FrameRows,
		Start: nodes.Bound{Kind: nodes.BoundUnset},
		End:   nodes.RowsFollowing(0),
	}
	n := nodes.SumOver(orders.Col("amount")).Over(def)
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`SUM("orders"."amount") OVER (ORDER BY "orders"."placed_at" ASC ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)`)
}

func TestRowsFrameUnboundedBothSides(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.UnboundedPreceding(), nodes.UnboundedFollowing()))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`SUM("orders"."amount") OVER (ORDER BY "orders"."placed_at" ASC ROWS BETWEEN UNBOUNDED PRECEDING AND UNBOUNDED FOLLOWING)`)
}

// --- Window frames: interval bounds ---

func TestRangeFrameWithIntervalPreceding(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.MinOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Partition(orders.Col("customer_id")).
		Order(orders.Col("placed_at").Asc()).
		RangeBetween(nodes.IntervalPreceding(2, nodes.UnitDay), nodes.CurrentRow()))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`MIN("orders"."amount") OVER (PARTITION BY "orders"."customer_id" ORDER BY "orders"."placed_at" ASC RANGE BETWEEN INTERVAL '2' DAY PRECEDING AND CURRENT ROW)`)
}

func TestRangeFrameWithIntervalFollowing(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.MaxOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RangeBetween(nodes.CurrentRow(), nodes.IntervalFollowing(1, nodes.UnitHour)))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`MAX("orders"."amount") OVER (ORDER BY "orders"."placed_at" ASC RANGE BETWEEN CURRENT ROW AND INTERVAL '1' HOUR FOLLOWING)`)
}

func TestRangeFrameZeroIntervalStaysInterval(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RangeBetween(nodes.IntervalPreceding(0, nodes.UnitSecond), nodes.CurrentRow()))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`SUM("orders"."amount") OVER (ORDER BY "orders"."placed_at" ASC RANGE BETWEEN INTERVAL '0' SECOND PRECEDING AND CURRENT ROW)`)
}

func TestRangeFrameZeroIntervalFollowingKeepsSide(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RangeBetween(nodes.CurrentRow(), nodes.IntervalFollowing(0, nodes.UnitSecond)))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`SUM("orders"."amount") OVER (ORDER BY "orders"."placed_at" ASC RANGE BETWEEN CURRENT ROW AND INTERVAL '0' SECOND FOLLOWING)`)
}

func TestMySQLIntervalGrammarUnquoted(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.MinOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RangeBetween(nodes.IntervalPreceding(2, nodes.UnitDay), nodes.CurrentRow()))
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), n,
		"MIN(`orders`.`amount`) OVER (ORDER BY `orders`.`placed_at` ASC RANGE BETWEEN INTERVAL 2 DAY PRECEDING AND CURRENT ROW)")
}

// --- Frame minimization at render time ---

func TestAnalyticFunctionDropsFrame(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.Rank().Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.RowsPreceding(5), nodes.CurrentRow()))
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n,
		`RANK() OVER (ORDER BY "orders"."placed_at" ASC)`)
}

func TestLagDropsFrameAtRender(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.Lag(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.UnboundedPreceding(), nodes.CurrentRow()))
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n,
		`LAG("orders"."amount") OVER (ORDER BY "orders"."placed_at" ASC)`)
}

func TestFirstForcesRowsMode(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.First(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RangeBetween(nodes.UnboundedPreceding(), nodes.CurrentRow()))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`FIRST_VALUE("orders"."amount") OVER (ORDER BY "orders"."placed_at" ASC ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)`)
}

func TestNthValueForcesRowsMode(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.NthValue(orders.Col("amount"), nodes.Literal(3)).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RangeBetween(nodes.UnboundedPreceding(), nodes.UnboundedFollowing()))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`NTH_VALUE("orders"."amount", 3) OVER (ORDER BY "orders"."placed_at" ASC ROWS BETWEEN UNBOUNDED PRECEDING AND UNBOUNDED FOLLOWING)`)
}

func TestFirstValueKeepsExplicitRowsFrame(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.FirstValue(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.RowsPreceding(4), nodes.CurrentRow()))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`FIRST_VALUE("orders"."amount") OVER (ORDER BY "orders"."placed_at" ASC ROWS BETWEEN 4 PRECEDING AND CURRENT ROW)`)
}

// --- Frame errors ---

func TestExpressionBoundFailsCompilation(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	bound := nodes.ExprPreceding(orders.Col("lookback"))
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(bound, nodes.CurrentRow()))
	err := testutil.AssertRenderError(t, NewSnowflakeVisitor(WithoutParams()), n)
	var ube *frames.UnsupportedBoundaryExpressionError
	if !errors.As(err, &ube) {
		t.Fatalf("expected UnsupportedBoundaryExpressionError, got %T: %v", err, err)
	}
	assertContains(t, ube.Error(), "not a literal")
}

func TestSQLiteRejectsIntervalBounds(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RangeBetween(nodes.IntervalPreceding(2, nodes.UnitDay), nodes.CurrentRow()))
	err := testutil.AssertRenderError(t, NewSQLiteVisitor(WithoutParams()), n)
	var ufe *frames.UnrepresentableFrameError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UnrepresentableFrameError, got %T: %v", err, err)
	}
	testutil.AssertEqual(t, ufe.Dialect, "sqlite")
}

func TestIntervalBoundInRowsModeFails(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.IntervalPreceding(2, nodes.UnitDay), nodes.CurrentRow()))
	err := testutil.AssertRenderError(t, NewSnowflakeVisitor(WithoutParams()), n)
	var ufe *frames.UnrepresentableFrameError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UnrepresentableFrameError, got %T: %v", err, err)
	}
}

func TestReversedRowOffsetsFailCompilation(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.RowsFollowing(3), nodes.RowsPreceding(5)))
	err := testutil.AssertRenderError(t, NewSnowflakeVisitor(WithoutParams()), n)
	var ufe *frames.UnrepresentableFrameError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UnrepresentableFrameError, got %T: %v", err, err)
	}
}

func TestReversedPrecedingOffsetsFailCompilation(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.RowsPreceding(2), nodes.RowsPreceding(5)))
	err := testutil.AssertRenderError(t, NewSnowflakeVisitor(WithoutParams()), n)
	var ufe *frames.UnrepresentableFrameError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UnrepresentableFrameError, got %T: %v", err, err)
	}
}

func TestUnboundedFollowingStartFailsCompilation(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.UnboundedFollowing(), nodes.CurrentRow()))
	err := testutil.AssertRenderError(t, NewPostgresVisitor(WithoutParams()), n)
	var ufe *frames.UnrepresentableFrameError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UnrepresentableFrameError, got %T: %v", err, err)
	}
}

func TestReversedIntervalBoundsFailCompilation(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RangeBetween(nodes.IntervalFollowing(1, nodes.UnitDay), nodes.IntervalPreceding(2, nodes.UnitDay)))
	err := testutil.AssertRenderError(t, NewSnowflakeVisitor(WithoutParams()), n)
	var ufe *frames.UnrepresentableFrameError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UnrepresentableFrameError, got %T: %v", err, err)
	}
}

func TestFollowingOnlyFrameRenders(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.RowsFollowing(1), nodes.RowsFollowing(3)))
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), n,
		`SUM("orders"."amount") OVER (ORDER BY "orders"."placed_at" ASC ROWS BETWEEN 1 FOLLOWING AND 3 FOLLOWING)`)
}

func TestVisitorResetClearsError(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	v := NewSnowflakeVisitor(WithoutParams())
	bad := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		RowsBetween(nodes.ExprPreceding(nodes.Literal(1)), nodes.CurrentRow()))
	bad.Accept(v)
	if v.Err() == nil {
		t.Fatal("expected an error before Reset")
	}
	v.Reset()
	testutil.AssertNoError(t, v.Err())
}

// --- Parameterization ---

func TestParameterizedLiteralsCollectValues(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	v := NewPostgresVisitor(WithParams())
	n := orders.Col("status").Eq(nodes.Literal("paid"))
	testutil.AssertSQL(t, v, n, `"orders"."status" = $1`)
	testutil.AssertEqual(t, len(v.Params()), 1)
	testutil.AssertEqual(t, v.Params()[0].(string), "paid")
}

func TestFrameOffsetsNeverParameterized(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	v := NewPostgresVisitor(WithParams())
	n := nodes.SumOver(orders.Col("amount")).Over(nodes.NewWindowDef().
		Order(orders.Col("placed_at").Asc()).
		RowsBetween(nodes.RowsPreceding(3), nodes.CurrentRow()))
	sql := n.Accept(v)
	testutil.AssertNoError(t, v.Err())
	assertContains(t, sql, "3 PRECEDING")
	testutil.AssertEqual(t, len(v.Params()), 0)
}

// --- SelectCore ---

func TestSelectCoreWithWindowClause(t *testing.T) {
	t.Parallel()
	orders := nodes.NewTable("orders")
	w := nodes.NewWindowDef("w").
		Partition(orders.Col("customer_id")).
		Order(orders.Col("placed_at").Asc())
	core := &nodes.SelectCore{
		From:        orders,
		Projections: []nodes.Node{nodes.SumOver(orders.Col("amount")).OverName("w")},
		Windows:     []*nodes.WindowDefinition{w},
	}
	testutil.AssertSQL(t, NewSnowflakeVisitor(WithoutParams()), core,
		`SELECT SUM("orders"."amount") OVER "w" FROM "orders" WINDOW "w" AS (PARTITION BY "orders"."customer_id" ORDER BY "orders"."placed_at" ASC)`)
}

func TestSelectCoreFull(t *testing.T) {
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
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), core,
		`SELECT "orders"."customer_id", SUM("orders"."amount") OVER (PARTITION BY "orders"."customer_id" ORDER BY "orders"."placed_at" ASC) AS "running_total" FROM "orders" WHERE "orders"."status" = 'paid' ORDER BY "orders"."placed_at" ASC LIMIT 10`)
}
