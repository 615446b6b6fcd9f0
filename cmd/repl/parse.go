package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/maddock/winq/nodes"
)

// tokenize splits input into tokens, respecting single-quoted strings
// and recognising multi-char operators (!=, <>, >=, <=) and punctuation.
func tokenize(input string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if inQuote {
			cur.WriteByte(ch)
			if ch == '\'' {
				if i+1 < len(input) && input[i+1] == '\'' {
					cur.WriteByte('\'')
					i++
				} else {
					inQuote = false
					flush()
				}
			}
			continue
		}

		switch {
		case ch == '\'':
			flush()
			cur.WriteByte(ch)
			inQuote = true

		case ch == '(' || ch == ')' || ch == ',':
			flush()
			tokens = append(tokens, string(ch))

		case ch == '!' && i+1 < len(input) && input[i+1] == '=':
			flush()
			tokens = append(tokens, "!=")
			i++
		case ch == '<' && i+1 < len(input) && input[i+1] == '>':
			flush()
			tokens = append(tokens, "<>")
			i++
		case ch == '<' && i+1 < len(input) && input[i+1] == '=':
			flush()
			tokens = append(tokens, "<=")
			i++
		case ch == '>' && i+1 < len(input) && input[i+1] == '=':
			flush()
			tokens = append(tokens, ">=")
			i++
		case ch == '|' && i+1 < len(input) && input[i+1] == '|':
			flush()
			tokens = append(tokens, "||")
			i++

		case ch == '=' || ch == '<' || ch == '>' ||
			ch == '+' || ch == '-' || ch == '*' || ch == '/':
			flush()
			tokens = append(tokens, string(ch))

		case ch == ' ' || ch == '\t':
			flush()

		default:
			cur.WriteByte(ch)
		}
	}
	flush()
	return tokens
}

// parseValue converts a token into a Go value: quoted string, integer,
// float, boolean, or null.
func parseValue(token string) (any, error) {
	if strings.HasPrefix(token, "'") && strings.HasSuffix(token, "'") && len(token) >= 2 {
		inner := token[1 : len(token)-1]
		return strings.ReplaceAll(inner, "''", "'"), nil
	}
	lower := strings.ToLower(token)
	switch lower {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	if i, err := strconv.Atoi(token); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse value %q (strings need single quotes)", token)
}

func isArithOp(token string) bool {
	switch token {
	case "+", "-", "*", "/", "||":
		return true
	}
	return false
}

func arithOp(token string) nodes.InfixOp {
	switch token {
	case "+":
		return nodes.OpPlus
	case "-":
		return nodes.OpMinus
	case "*":
		return nodes.OpMultiply
	case "/":
		return nodes.OpDivide
	default:
		return nodes.OpConcat
	}
}

func comparisonOp(token string) (nodes.ComparisonOp, bool) {
	switch strings.ToLower(token) {
	case "=":
		return nodes.OpEq, true
	case "!=", "<>":
		return nodes.OpNotEq, true
	case ">":
		return nodes.OpGt, true
	case ">=":
		return nodes.OpGtEq, true
	case "<":
		return nodes.OpLt, true
	case "<=":
		return nodes.OpLtEq, true
	case "like":
		return nodes.OpLike, true
	}
	return 0, false
}

func aggregateFunc(name string) (nodes.AggregateFunc, bool) {
	switch name {
	case "count":
		return nodes.AggCount, true
	case "sum":
		return nodes.AggSum, true
	case "avg":
		return nodes.AggAvg, true
	case "min":
		return nodes.AggMin, true
	case "max":
		return nodes.AggMax, true
	}
	return 0, false
}

// windowFunc maps a SQL spelling to the window function kind. Aggregate
// spellings are excluded: an aggregate only becomes a window call when the
// parser sees OVER after it.
func windowFunc(name string) (nodes.FuncKind, bool) {
	switch name {
	case "row_number":
		return nodes.FnRowNumber, true
	case "rank":
		return nodes.FnRank, true
	case "dense_rank":
		return nodes.FnDenseRank, true
	case "ntile":
		return nodes.FnNtile, true
	case "percent_rank":
		return nodes.FnPercentRank, true
	case "cume_dist":
		return nodes.FnCumeDist, true
	case "lag":
		return nodes.FnLag, true
	case "lead":
		return nodes.FnLead, true
	case "first_value":
		return nodes.FnFirstValue, true
	case "last_value":
		return nodes.FnLastValue, true
	case "nth_value":
		return nodes.FnNthValue, true
	case "bool_or":
		return nodes.FnAny, true
	case "bool_and":
		return nodes.FnAll, true
	}
	return 0, false
}

func intervalUnit(name string) (nodes.IntervalUnit, bool) {
	switch strings.ToLower(name) {
	case "second", "seconds":
		return nodes.UnitSecond, true
	case "minute", "minutes":
		return nodes.UnitMinute, true
	case "hour", "hours":
		return nodes.UnitHour, true
	case "day", "days":
		return nodes.UnitDay, true
	case "week", "weeks":
		return nodes.UnitWeek, true
	case "month", "months":
		return nodes.UnitMonth, true
	case "year", "years":
		return nodes.UnitYear, true
	}
	return 0, false
}

func isIdentifier(token string) bool {
	if token == "" {
		return false
	}
	for _, c := range token {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != '_' && c != '.' {
			return false
		}
	}
	return true
}

// resolveColRef resolves "table.column" or "column" (using the FROM table).
func (s *Session) resolveColRef(ref string) (*nodes.Attribute, error) {
	if strings.Contains(ref, ".") {
		parts := strings.SplitN(ref, ".", 2)
		rel := s.resolveTable(parts[0])
		switch r := rel.(type) {
		case *nodes.Table:
			return r.Col(parts[1]), nil
		case *nodes.TableAlias:
			return r.Col(parts[1]), nil
		}
		return nil, fmt.Errorf("unknown relation %q", parts[0])
	}
	if s.query == nil || s.query.Core.From == nil {
		return nil, errNoQuery
	}
	switch r := s.query.Core.From.(type) {
	case *nodes.Table:
		return r.Col(ref), nil
	case *nodes.TableAlias:
		return r.Col(ref), nil
	}
	return nil, fmt.Errorf("cannot resolve column %q", ref)
}

// parseAtom parses a single operand: literal, column reference, aggregate
// call, or window function call (which consumes its OVER clause).
func (s *Session) parseAtom(tokens []string, pos int) (nodes.Node, int, error) {
	if pos >= len(tokens) {
		return nil, pos, errors.New("unexpected end of expression")
	}
	token := tokens[pos]
	lower := strings.ToLower(token)

	if token == "*" {
		return nodes.Star(), pos + 1, nil
	}

	isCall := pos+1 < len(tokens) && tokens[pos+1] == "("
	if isCall {
		if _, ok := windowFunc(lower); ok {
			return s.parseWindowCall(tokens, pos)
		}
		if _, ok := aggregateFunc(lower); ok {
			return s.parseAggregateCall(tokens, pos)
		}
		switch lower {
		case "extract":
			return s.parseExtractCall(tokens, pos)
		case "cast":
			return s.parseCastCall(tokens, pos)
		}
		return s.parseNamedCall(tokens, pos)
	}

	if val, err := parseValue(token); err == nil {
		return nodes.Literal(val), pos + 1, nil
	}
	if isIdentifier(token) {
		col, err := s.resolveColRef(token)
		if err != nil {
			return nil, pos, err
		}
		return col, pos + 1, nil
	}
	return nil, pos, fmt.Errorf("unexpected token %q", token)
}

// parseArithExpr parses a left-associative chain of atoms and infix
// operators: a + b * c parses as ((a + b) * c); the REPL does not rank
// operator precedence.
func (s *Session) parseArithExpr(tokens []string, pos int) (nodes.Node, int, error) {
	left, pos, err := s.parseAtom(tokens, pos)
	if err != nil {
		return nil, pos, err
	}
	for pos < len(tokens) && isArithOp(tokens[pos]) {
		op := arithOp(tokens[pos])
		pos++
		right, nextPos, err := s.parseAtom(tokens, pos)
		if err != nil {
			return nil, pos, err
		}
		left = nodes.NewInfixNode(left, right, op)
		pos = nextPos
	}
	return left, pos, nil
}

// parseAggregateCall parses count(...), sum(...), etc., including count(*)
// and an optional trailing OVER clause that lifts the aggregate into a
// window call.
func (s *Session) parseAggregateCall(tokens []string, pos int) (nodes.Node, int, error) {
	fn, _ := aggregateFunc(strings.ToLower(tokens[pos]))
	pos += 2 // skip name and (

	var agg *nodes.AggregateNode
	if pos < len(tokens) && tokens[pos] == "*" {
		agg = nodes.NewAggregateNode(fn, nil)
		pos++
	} else if pos < len(tokens) && strings.ToLower(tokens[pos]) == "distinct" {
		pos++
		expr, nextPos, err := s.parseArithExpr(tokens, pos)
		if err != nil {
			return nil, pos, err
		}
		agg = nodes.NewAggregateNode(fn, expr)
		agg.Distinct = true
		pos = nextPos
	} else if pos < len(tokens) && tokens[pos] != ")" {
		expr, nextPos, err := s.parseArithExpr(tokens, pos)
		if err != nil {
			return nil, pos, err
		}
		agg = nodes.NewAggregateNode(fn, expr)
		pos = nextPos
	} else {
		return nil, pos, fmt.Errorf("aggregate %s needs an argument or *", tokens[pos-2])
	}

	if pos >= len(tokens) || tokens[pos] != ")" {
		return nil, pos, fmt.Errorf("expected ) after aggregate arguments")
	}
	pos++ // skip )

	if pos < len(tokens) && strings.ToLower(tokens[pos]) == "over" {
		return s.parseOverClause(agg, tokens, pos)
	}
	return agg, pos, nil
}

// parseWindowCall parses a window function invocation. The OVER clause is
// mandatory.
func (s *Session) parseWindowCall(tokens []string, pos int) (nodes.Node, int, error) {
	funcName := tokens[pos]
	fn, _ := windowFunc(strings.ToLower(funcName))
	pos += 2 // skip name and (

	var args []nodes.Node
	for pos < len(tokens) && tokens[pos] != ")" {
		if tokens[pos] == "," {
			pos++
			continue
		}
		arg, nextPos, err := s.parseArithExpr(tokens, pos)
		if err != nil {
			return nil, pos, err
		}
		args = append(args, arg)
		pos = nextPos
	}
	if pos >= len(tokens) || tokens[pos] != ")" {
		return nil, pos, fmt.Errorf("expected ) after %s arguments", funcName)
	}
	pos++ // skip )

	if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "over" {
		return nil, pos, fmt.Errorf("window function %s requires OVER clause", funcName)
	}
	return s.parseOverClause(nodes.NewWindowCall(fn, args...), tokens, pos)
}

func extractField(name string) (nodes.ExtractField, bool) {
	switch name {
	case "year":
		return nodes.ExtractYear, true
	case "month":
		return nodes.ExtractMonth, true
	case "day":
		return nodes.ExtractDay, true
	case "hour":
		return nodes.ExtractHour, true
	case "minute":
		return nodes.ExtractMinute, true
	case "second":
		return nodes.ExtractSecond, true
	case "quarter":
		return nodes.ExtractQuarter, true
	case "week":
		return nodes.ExtractWeek, true
	}
	return 0, false
}

// parseExtractCall parses EXTRACT(field FROM expr).
func (s *Session) parseExtractCall(tokens []string, pos int) (nodes.Node, int, error) {
	pos += 2 // skip extract and (
	if pos >= len(tokens) {
		return nil, pos, errors.New("expected field after EXTRACT(")
	}
	field, ok := extractField(strings.ToLower(tokens[pos]))
	if !ok {
		return nil, pos, fmt.Errorf("unknown extract field %q", tokens[pos])
	}
	pos++
	if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "from" {
		return nil, pos, errors.New("expected FROM in EXTRACT")
	}
	pos++
	expr, nextPos, err := s.parseArithExpr(tokens, pos)
	if err != nil {
		return nil, pos, err
	}
	pos = nextPos
	if pos >= len(tokens) || tokens[pos] != ")" {
		return nil, pos, errors.New("expected ) after EXTRACT expression")
	}
	pos++ // skip )
	return nodes.Extract(field, expr), pos, nil
}

// parseCastCall parses CAST(expr AS type).
func (s *Session) parseCastCall(tokens []string, pos int) (nodes.Node, int, error) {
	pos += 2 // skip cast and (
	expr, nextPos, err := s.parseArithExpr(tokens, pos)
	if err != nil {
		return nil, pos, err
	}
	pos = nextPos
	if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "as" {
		return nil, pos, errors.New("expected AS in CAST")
	}
	pos++
	if pos >= len(tokens) || !isIdentifier(tokens[pos]) {
		return nil, pos, errors.New("expected type name after AS in CAST")
	}
	typeName := strings.ToUpper(tokens[pos])
	pos++
	if pos >= len(tokens) || tokens[pos] != ")" {
		return nil, pos, errors.New("expected ) after CAST type")
	}
	pos++ // skip )
	return nodes.Cast(expr, typeName), pos, nil
}

// parseNamedCall parses any other function call (COALESCE, DATE_TRUNC, ...)
// into a named function node with the uppercased SQL name.
func (s *Session) parseNamedCall(tokens []string, pos int) (nodes.Node, int, error) {
	name := tokens[pos]
	if !isIdentifier(name) || strings.Contains(name, ".") {
		return nil, pos, fmt.Errorf("unknown function %q", name)
	}
	pos += 2 // skip name and (

	var args []nodes.Node
	for pos < len(tokens) && tokens[pos] != ")" {
		if tokens[pos] == "," {
			pos++
			continue
		}
		arg, nextPos, err := s.parseArithExpr(tokens, pos)
		if err != nil {
			return nil, pos, err
		}
		args = append(args, arg)
		pos = nextPos
	}
	if pos >= len(tokens) || tokens[pos] != ")" {
		return nil, pos, fmt.Errorf("expected ) after %s arguments", name)
	}
	pos++ // skip )
	return nodes.NewNamedFunction(strings.ToUpper(name), args...), pos, nil
}

// parseOverClause parses OVER (...) or OVER name after a window function or
// aggregate.
func (s *Session) parseOverClause(expr nodes.Node, tokens []string, pos int) (nodes.Node, int, error) {
	pos++ // skip OVER
	if pos >= len(tokens) {
		return nil, pos, errors.New("expected window name or ( after OVER")
	}

	// OVER name (named window reference)
	if tokens[pos] != "(" {
		name := tokens[pos]
		pos++
		switch e := expr.(type) {
		case *nodes.WindowCall:
			return e.OverName(name), pos, nil
		case *nodes.AggregateNode:
			return e.OverName(name), pos, nil
		}
		return nil, pos, errors.New("OVER requires a window function or aggregate")
	}

	pos++ // skip (
	def, nextPos, err := s.parseWindowDef(tokens, pos)
	if err != nil {
		return nil, pos, err
	}
	pos = nextPos
	if pos >= len(tokens) || tokens[pos] != ")" {
		return nil, pos, errors.New("expected ) after OVER clause")
	}
	pos++ // skip )

	switch e := expr.(type) {
	case *nodes.WindowCall:
		return e.Over(def), pos, nil
	case *nodes.AggregateNode:
		return e.Over(def), pos, nil
	}
	return nil, pos, errors.New("OVER requires a window function or aggregate")
}

// parseWindowDef parses the contents inside OVER (...):
// [PARTITION BY cols] [ORDER BY cols] [ROWS/RANGE frame]
func (s *Session) parseWindowDef(tokens []string, pos int) (*nodes.WindowDefinition, int, error) {
	def := nodes.NewWindowDef()

	if pos < len(tokens) && strings.ToLower(tokens[pos]) == "partition" {
		pos++
		if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "by" {
			return nil, pos, errors.New("expected BY after PARTITION")
		}
		pos++
		for pos < len(tokens) {
			lower := strings.ToLower(tokens[pos])
			if lower == "order" || lower == "rows" || lower == "range" || tokens[pos] == ")" {
				break
			}
			if tokens[pos] == "," {
				pos++
				continue
			}
			col, nextPos, err := s.parseArithExpr(tokens, pos)
			if err != nil {
				return nil, pos, err
			}
			def.PartitionBy = append(def.PartitionBy, col)
			pos = nextPos
		}
	}

	if pos < len(tokens) && strings.ToLower(tokens[pos]) == "order" {
		pos++
		if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "by" {
			return nil, pos, errors.New("expected BY after ORDER")
		}
		pos++
		for pos < len(tokens) {
			lower := strings.ToLower(tokens[pos])
			if lower == "rows" || lower == "range" || tokens[pos] == ")" {
				break
			}
			if tokens[pos] == "," {
				pos++
				continue
			}
			expr, nextPos, err := s.parseArithExpr(tokens, pos)
			if err != nil {
				return nil, pos, err
			}
			pos = nextPos

			dir := nodes.Asc
			if pos < len(tokens) {
				switch strings.ToLower(tokens[pos]) {
				case "asc":
					pos++
				case "desc":
					dir = nodes.Desc
					pos++
				}
			}
			ord := &nodes.OrderingNode{Expr: expr, Direction: dir}
			def.OrderBy = append(def.OrderBy, ord)
		}
	}

	if pos < len(tokens) {
		lower := strings.ToLower(tokens[pos])
		if lower == "rows" || lower == "range" {
			frame, nextPos, err := s.parseFrameSpec(tokens, pos)
			if err != nil {
				return nil, pos, err
			}
			def.Frame = frame
			pos = nextPos
		}
	}

	return def, pos, nil
}

// parseFrameSpec parses ROWS/RANGE [BETWEEN bound AND bound | bound].
// A single bound is the frame start; the end defaults to the current row.
func (s *Session) parseFrameSpec(tokens []string, pos int) (*nodes.FrameSpec, int, error) {
	mode := nodes.FrameRows
	if strings.ToLower(tokens[pos]) == "range" {
		mode = nodes.FrameRange
	}
	pos++ // skip ROWS/RANGE

	if pos >= len(tokens) {
		return nil, pos, errors.New("expected frame bound after ROWS/RANGE")
	}

	if strings.ToLower(tokens[pos]) == "between" {
		pos++
		start, nextPos, err := s.parseFrameBound(tokens, pos, true)
		if err != nil {
			return nil, pos, err
		}
		pos = nextPos
		if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "and" {
			return nil, pos, errors.New("expected AND in frame BETWEEN clause")
		}
		pos++
		end, nextPos, err := s.parseFrameBound(tokens, pos, false)
		if err != nil {
			return nil, pos, err
		}
		pos = nextPos
		return &nodes.FrameSpec{Mode: mode, Start: start, End: end}, pos, nil
	}

	start, nextPos, err := s.parseFrameBound(tokens, pos, true)
	if err != nil {
		return nil, pos, err
	}
	return &nodes.FrameSpec{Mode: mode, Start: start, End: nodes.CurrentRow()}, nextPos, nil
}

// parseFrameBound parses a single frame bound: UNBOUNDED PRECEDING/FOLLOWING,
// CURRENT ROW, N PRECEDING/FOLLOWING, or INTERVAL 'n' UNIT PRECEDING/FOLLOWING.
func (s *Session) parseFrameBound(tokens []string, pos int, isStart bool) (nodes.Bound, int, error) {
	if pos >= len(tokens) {
		return nodes.Bound{}, pos, errors.New("expected frame bound")
	}

	switch strings.ToLower(tokens[pos]) {
	case "unbounded":
		pos++
		if pos >= len(tokens) {
			return nodes.Bound{}, pos, errors.New("expected PRECEDING or FOLLOWING after UNBOUNDED")
		}
		dir := strings.ToLower(tokens[pos])
		pos++
		switch dir {
		case "preceding":
			return nodes.UnboundedPreceding(), pos, nil
		case "following":
			return nodes.UnboundedFollowing(), pos, nil
		}
		return nodes.Bound{}, pos, fmt.Errorf("expected PRECEDING or FOLLOWING after UNBOUNDED, got %s", dir)

	case "current":
		pos++
		if pos >= len(tokens) || strings.ToLower(tokens[pos]) != "row" {
			return nodes.Bound{}, pos, errors.New("expected ROW after CURRENT")
		}
		pos++
		return nodes.CurrentRow(), pos, nil

	case "interval":
		pos++
		if pos >= len(tokens) {
			return nodes.Bound{}, pos, errors.New("expected magnitude after INTERVAL")
		}
		val, err := parseValue(tokens[pos])
		if err != nil {
			return nodes.Bound{}, pos, fmt.Errorf("interval magnitude: %w", err)
		}
		mag, err := intervalMagnitude(val)
		if err != nil {
			return nodes.Bound{}, pos, err
		}
		pos++
		if pos >= len(tokens) {
			return nodes.Bound{}, pos, errors.New("expected unit after interval magnitude")
		}
		unit, ok := intervalUnit(tokens[pos])
		if !ok {
			return nodes.Bound{}, pos, fmt.Errorf("unknown interval unit %q", tokens[pos])
		}
		pos++
		if pos >= len(tokens) {
			return nodes.Bound{}, pos, errors.New("expected PRECEDING or FOLLOWING after interval")
		}
		dir := strings.ToLower(tokens[pos])
		pos++
		switch dir {
		case "preceding":
			return nodes.IntervalPreceding(mag, unit), pos, nil
		case "following":
			return nodes.IntervalFollowing(mag, unit), pos, nil
		}
		return nodes.Bound{}, pos, fmt.Errorf("expected PRECEDING or FOLLOWING, got %s", dir)
	}

	// N PRECEDING or N FOLLOWING
	val, err := parseValue(tokens[pos])
	if err != nil {
		return nodes.Bound{}, pos, fmt.Errorf("expected frame bound value: %w", err)
	}
	n, ok := val.(int)
	if !ok {
		return nodes.Bound{}, pos, fmt.Errorf("frame offset must be an integer, got %v", val)
	}
	pos++
	if pos >= len(tokens) {
		return nodes.Bound{}, pos, errors.New("expected PRECEDING or FOLLOWING after offset")
	}
	dir := strings.ToLower(tokens[pos])
	pos++
	switch dir {
	case "preceding":
		return nodes.RowsPreceding(int64(n)), pos, nil
	case "following":
		return nodes.RowsFollowing(int64(n)), pos, nil
	}
	return nodes.Bound{}, pos, fmt.Errorf("expected PRECEDING or FOLLOWING, got %s", dir)
}

// intervalMagnitude accepts the integer magnitude of an interval bound,
// whether written bare (2) or quoted ('2').
func intervalMagnitude(val any) (int64, error) {
	switch v := val.(type) {
	case int:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("interval magnitude must be an integer, got %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("interval magnitude must be an integer, got %v", val)
	}
}

// parseExpression parses a projection expression with an optional
// "as <alias>" suffix.
func (s *Session) parseExpression(input string) (nodes.Node, error) {
	tokens := tokenize(input)
	if len(tokens) == 0 {
		return nil, errors.New("empty expression")
	}

	// Split off a trailing "as <alias>".
	alias := ""
	if len(tokens) >= 2 && strings.ToLower(tokens[len(tokens)-2]) == "as" {
		alias = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-2]
	}

	expr, pos, err := s.parseArithExpr(tokens, 0)
	if err != nil {
		return nil, err
	}
	if pos != len(tokens) {
		return nil, fmt.Errorf("unexpected trailing token %q", tokens[pos])
	}

	if alias != "" {
		return nodes.NewAliasNode(expr, alias), nil
	}
	return expr, nil
}

// parseCondition parses "col <op> value" style conditions plus IS NULL,
// IS NOT NULL, IN, and BETWEEN forms.
func (s *Session) parseCondition(input string) (nodes.Node, error) {
	tokens := tokenize(input)
	if len(tokens) < 2 {
		return nil, errors.New("incomplete condition")
	}

	col, err := s.resolveColRef(tokens[0])
	if err != nil {
		return nil, err
	}
	rest := tokens[1:]
	lower := strings.ToLower(rest[0])

	switch lower {
	case "is":
		if len(rest) >= 3 && strings.ToLower(rest[1]) == "not" && strings.ToLower(rest[2]) == "null" {
			return col.IsNotNull(), nil
		}
		if len(rest) >= 2 && strings.ToLower(rest[1]) == "null" {
			return col.IsNull(), nil
		}
		return nil, errors.New("expected NULL or NOT NULL after IS")
	case "in":
		return parseInList(col, rest[1:], false)
	case "not":
		if len(rest) >= 2 && strings.ToLower(rest[1]) == "in" {
			return parseInList(col, rest[2:], true)
		}
		return nil, errors.New("expected IN after NOT")
	case "between":
		if len(rest) != 4 || strings.ToLower(rest[2]) != "and" {
			return nil, errors.New("usage: <col> between <low> and <high>")
		}
		low, err := parseValue(rest[1])
		if err != nil {
			return nil, err
		}
		high, err := parseValue(rest[3])
		if err != nil {
			return nil, err
		}
		return col.Between(low, high), nil
	}

	op, ok := comparisonOp(rest[0])
	if !ok {
		return nil, fmt.Errorf("unknown operator %q", rest[0])
	}
	if len(rest) < 2 {
		return nil, errors.New("missing right-hand value")
	}

	// Right side: column reference or literal value.
	var right nodes.Node
	if val, err := parseValue(rest[1]); err == nil {
		right = nodes.Literal(val)
	} else if isIdentifier(rest[1]) && strings.Contains(rest[1], ".") {
		rcol, cerr := s.resolveColRef(rest[1])
		if cerr != nil {
			return nil, cerr
		}
		right = rcol
	} else {
		return nil, err
	}
	return nodes.NewComparisonNode(col, right, op), nil
}

func parseInList(col *nodes.Attribute, tokens []string, negate bool) (nodes.Node, error) {
	var vals []any
	for _, tok := range tokens {
		if tok == "(" || tok == ")" || tok == "," {
			continue
		}
		val, err := parseValue(tok)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
	if len(vals) == 0 {
		return nil, errors.New("IN needs at least one value")
	}
	if negate {
		return col.NotIn(vals...), nil
	}
	return col.In(vals...), nil
}
