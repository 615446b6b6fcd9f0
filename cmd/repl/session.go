package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ergochat/readline"

	"github.com/maddock/winq/frames"
	"github.com/maddock/winq/managers"
	"github.com/maddock/winq/nodes"
	"github.com/maddock/winq/visitors"
)

var errNoQuery = errors.New("no query in progress (use 'from <table>' to start one)")

// Session holds the interactive state: known tables, the query being built,
// the target engine, and an optional live database connection.
type Session struct {
	tables  map[string]*nodes.Table
	aliases map[string]*nodes.TableAlias
	query   *managers.SelectManager

	engine       string
	parameterize bool
	pretty       bool

	commands []commandEntry

	conn    *dbConn
	lastDSN string

	rl  *readline.Instance
	out io.Writer
}

func NewSession(out io.Writer) *Session {
	s := &Session{
		tables:  make(map[string]*nodes.Table),
		aliases: make(map[string]*nodes.TableAlias),
		engine:  "snowflake",
		out:     out,
	}
	s.initCommands()
	return s
}

// setEngine switches the target dialect. The query's rewrite pipeline is
// rebuilt so frame normalisation matches the new engine.
func (s *Session) setEngine(engine string) error {
	engine = strings.ToLower(strings.TrimSpace(engine))
	if !isValidEngine(engine) {
		return fmt.Errorf("unknown engine %q (choose snowflake, postgres, mysql, or sqlite)", engine)
	}
	s.engine = engine
	s.rebuildPipeline()
	fmt.Fprintf(s.out, "engine set to %s\n", engine)
	return nil
}

func (s *Session) newVisitor() nodes.Visitor {
	opt := visitors.WithoutParams()
	if s.parameterize {
		opt = visitors.WithParams()
	}
	var v nodes.Visitor
	switch s.engine {
	case "postgres":
		v = visitors.NewPostgresVisitor(opt)
	case "mysql":
		v = visitors.NewMySQLVisitor(opt)
	case "sqlite":
		v = visitors.NewSQLiteVisitor(opt)
	default:
		v = visitors.NewSnowflakeVisitor(opt)
	}
	if s.pretty {
		v = visitors.NewFormattingVisitor(v)
	}
	return v
}

func (s *Session) normalizer() managers.Transformer {
	switch s.engine {
	case "postgres":
		return frames.NewNormalizer(frames.PostgresRules())
	case "mysql":
		return frames.NewNormalizer(frames.MySQLRules())
	case "sqlite":
		return frames.NewNormalizer(frames.SQLiteRules())
	default:
		return frames.NewNormalizer(frames.SnowflakeRules())
	}
}

// rebuildPipeline re-creates the query manager so it carries exactly one
// normalizer, matching the current engine.
func (s *Session) rebuildPipeline() {
	if s.query == nil {
		return
	}
	m := managers.NewSelectManager(nil)
	m.Core = s.query.CloneCore()
	m.Use(s.normalizer())
	s.query = m
}

// ensureTable returns a known table, registering it on first use.
func (s *Session) ensureTable(name string) *nodes.Table {
	if t, ok := s.tables[name]; ok {
		return t
	}
	t := nodes.NewTable(name)
	s.tables[name] = t
	return t
}

// resolveTable looks up a name among aliases first, then tables. Unknown
// names resolve to nil.
func (s *Session) resolveTable(name string) nodes.Node {
	if a, ok := s.aliases[name]; ok {
		return a
	}
	if t, ok := s.tables[name]; ok {
		return t
	}
	return nil
}

// GenerateSQL renders the current query for the active engine.
func (s *Session) GenerateSQL() (string, []any, error) {
	if s.query == nil || s.query.Core.From == nil {
		return "", nil, errNoQuery
	}
	return s.query.ToSQL(s.newVisitor())
}

// handleLine dispatches one line of input to the matching command.
func (s *Session) handleLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	lower := strings.ToLower(line)
	for _, cmd := range s.commands {
		if lower == cmd.prefix || strings.HasPrefix(lower, cmd.prefix+" ") {
			return cmd.handler(strings.TrimSpace(line[len(cmd.prefix):]))
		}
	}
	return fmt.Errorf("unknown command (try 'help'): %s", line)
}

// --- command handlers ---

func (s *Session) cmdHelp(string) error {
	fmt.Fprintln(s.out, `Build a query:
  from <table>                  start a SELECT from a table
  table <name> [as <alias>]     register a table (and optional alias)
  select <expr>[, <expr>...]    set projections; supports aggregates, scalar
                                calls (coalesce(...), cast(x as type),
                                extract(day from col), date_trunc(...)), and
                                window functions with full OVER clauses, e.g.
                                select sum(amount) over (partition by region
                                  order by day rows between 3 preceding and
                                  current row) as total
  where <col> <op> <value>      add a condition (=, !=, >, >=, <, <=, like,
                                is null, in, between)
  join <table> on <cond>        inner join; also leftjoin, crossjoin <table>
  group <col>[, <col>...]       add GROUP BY columns
  having <expr> <op> <value>    add a HAVING condition
  order <col> [asc|desc]        add ORDER BY
  window <name> (<def>)         define a named window for OVER <name>
  limit <n> / offset <n>        pagination
  distinct                      toggle SELECT DISTINCT

Inspect and run:
  sql                           render SQL for the active engine
  ast                           dump the query AST
  exec                          run the query on the connected database
  explain                       show SQL before and after frame rewriting

Session:
  engine <name>                 snowflake | postgres | mysql | sqlite
  params                        toggle bind-parameter generation
  format                        toggle multi-line SQL formatting
  connect <dsn> / disconnect    manage the database connection
  tables                        list known tables
  reset                         discard the current query
  exit                          leave the repl`)
	return nil
}

func (s *Session) cmdEngine(arg string) error {
	if arg == "" {
		fmt.Fprintf(s.out, "engine: %s\n", s.engine)
		return nil
	}
	return s.setEngine(arg)
}

func (s *Session) cmdTable(arg string) error {
	parts := strings.Fields(arg)
	switch {
	case len(parts) == 1:
		s.ensureTable(parts[0])
		fmt.Fprintf(s.out, "table %s registered\n", parts[0])
		return nil
	case len(parts) == 3 && strings.ToLower(parts[1]) == "as":
		t := s.ensureTable(parts[0])
		s.aliases[parts[2]] = t.Alias(parts[2])
		fmt.Fprintf(s.out, "table %s registered as %s\n", parts[0], parts[2])
		return nil
	}
	return errors.New("usage: table <name> [as <alias>]")
}

func (s *Session) cmdFrom(arg string) error {
	name := strings.TrimSpace(arg)
	if name == "" {
		return errors.New("usage: from <table>")
	}
	rel := s.resolveTable(name)
	if rel == nil {
		rel = s.ensureTable(name)
	}
	s.query = managers.NewSelectManager(rel).Use(s.normalizer())
	fmt.Fprintf(s.out, "querying %s\n", name)
	return nil
}

func (s *Session) cmdSelect(arg string) error {
	if s.query == nil {
		return errNoQuery
	}
	if strings.TrimSpace(arg) == "" {
		return errors.New("usage: select <expr>[, <expr>...]")
	}
	var projections []nodes.Node
	for _, part := range splitTopLevel(arg) {
		expr, err := s.parseExpression(strings.TrimSpace(part))
		if err != nil {
			return err
		}
		projections = append(projections, expr)
	}
	s.query.Select(projections...)
	return nil
}

func (s *Session) cmdWhere(arg string) error {
	if s.query == nil {
		return errNoQuery
	}
	cond, err := s.parseCondition(arg)
	if err != nil {
		return err
	}
	s.query.Where(cond)
	return nil
}

func (s *Session) cmdJoin(arg string) error {
	return s.addJoin(arg, nodes.InnerJoin)
}

func (s *Session) cmdLeftJoin(arg string) error {
	return s.addJoin(arg, nodes.LeftOuterJoin)
}

func (s *Session) addJoin(arg string, jt nodes.JoinType) error {
	if s.query == nil {
		return errNoQuery
	}
	idx := strings.Index(strings.ToLower(arg), " on ")
	if idx < 0 {
		return errors.New("usage: join <table> on <condition>")
	}
	name := strings.TrimSpace(arg[:idx])
	rel := s.resolveTable(name)
	if rel == nil {
		rel = s.ensureTable(name)
	}
	cond, err := s.parseJoinCondition(arg[idx+4:])
	if err != nil {
		return err
	}
	s.query.Join(rel, jt).On(cond)
	return nil
}

func (s *Session) cmdCrossJoin(arg string) error {
	if s.query == nil {
		return errNoQuery
	}
	name := strings.TrimSpace(arg)
	if name == "" {
		return errors.New("usage: crossjoin <table>")
	}
	rel := s.resolveTable(name)
	if rel == nil {
		rel = s.ensureTable(name)
	}
	s.query.CrossJoin(rel)
	return nil
}

// parseJoinCondition parses "a.col = b.col" where both sides are columns.
func (s *Session) parseJoinCondition(input string) (nodes.Node, error) {
	tokens := tokenize(input)
	if len(tokens) != 3 {
		return nil, errors.New("join condition must be <col> <op> <col>")
	}
	left, err := s.resolveColRef(tokens[0])
	if err != nil {
		return nil, err
	}
	op, ok := comparisonOp(tokens[1])
	if !ok {
		return nil, fmt.Errorf("unknown operator %q", tokens[1])
	}
	right, err := s.resolveColRef(tokens[2])
	if err != nil {
		return nil, err
	}
	return nodes.NewComparisonNode(left, right, op), nil
}

func (s *Session) cmdGroup(arg string) error {
	if s.query == nil {
		return errNoQuery
	}
	for _, part := range strings.Split(arg, ",") {
		col, err := s.resolveColRef(strings.TrimSpace(part))
		if err != nil {
			return err
		}
		s.query.Group(col)
	}
	return nil
}

// cmdHaving parses "<expr> <op> <value>", where the left side may be an
// aggregate call.
func (s *Session) cmdHaving(arg string) error {
	if s.query == nil {
		return errNoQuery
	}
	tokens := tokenize(arg)
	left, pos, err := s.parseArithExpr(tokens, 0)
	if err != nil {
		return err
	}
	if pos+1 >= len(tokens) {
		return errors.New("usage: having <expr> <op> <value>")
	}
	op, ok := comparisonOp(tokens[pos])
	if !ok {
		return fmt.Errorf("unknown operator %q", tokens[pos])
	}
	val, err := parseValue(tokens[pos+1])
	if err != nil {
		return err
	}
	s.query.Having(nodes.NewComparisonNode(left, nodes.Literal(val), op))
	return nil
}

func (s *Session) cmdOrder(arg string) error {
	if s.query == nil {
		return errNoQuery
	}
	for _, part := range strings.Split(arg, ",") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) == 0 {
			continue
		}
		col, err := s.resolveColRef(fields[0])
		if err != nil {
			return err
		}
		ord := col.Asc()
		if len(fields) > 1 && strings.EqualFold(fields[1], "desc") {
			ord = col.Desc()
		}
		s.query.Order(ord)
	}
	return nil
}

// cmdWindow defines a named window: window w (partition by region order by day)
func (s *Session) cmdWindow(arg string) error {
	if s.query == nil {
		return errNoQuery
	}
	tokens := tokenize(arg)
	if len(tokens) < 3 || tokens[1] != "(" {
		return errors.New("usage: window <name> (partition by ... order by ... rows/range ...)")
	}
	name := tokens[0]
	def, pos, err := s.parseWindowDef(tokens, 2)
	if err != nil {
		return err
	}
	if pos >= len(tokens) || tokens[pos] != ")" {
		return errors.New("expected ) closing the window definition")
	}
	def.Name = name
	s.query.Window(def)
	fmt.Fprintf(s.out, "window %s defined (reference it with 'over %s')\n", name, name)
	return nil
}

func (s *Session) cmdLimit(arg string) error {
	if s.query == nil {
		return errNoQuery
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return errors.New("usage: limit <n>")
	}
	s.query.Limit(n)
	return nil
}

func (s *Session) cmdOffset(arg string) error {
	if s.query == nil {
		return errNoQuery
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return errors.New("usage: offset <n>")
	}
	s.query.Offset(n)
	return nil
}

func (s *Session) cmdDistinct(string) error {
	if s.query == nil {
		return errNoQuery
	}
	s.query.Distinct(!s.query.Core.Distinct)
	fmt.Fprintf(s.out, "distinct: %v\n", s.query.Core.Distinct)
	return nil
}

func (s *Session) cmdSQL(string) error {
	sql, params, err := s.GenerateSQL()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, sql)
	if len(params) > 0 {
		fmt.Fprintf(s.out, "-- params: %v\n", params)
	}
	return nil
}

// cmdExplain renders the query twice: once without the frame normalizer and
// once through the full pipeline, so the rewrite is visible.
func (s *Session) cmdExplain(string) error {
	if s.query == nil || s.query.Core.From == nil {
		return errNoQuery
	}
	raw := managers.NewSelectManager(nil)
	raw.Core = s.query.CloneCore()
	before, _, err := raw.ToSQL(s.newVisitor())
	if err != nil {
		fmt.Fprintf(s.out, "-- before rewrite: error: %v\n", err)
	} else {
		fmt.Fprintf(s.out, "-- before rewrite:\n%s\n", before)
	}
	after, _, err := s.GenerateSQL()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "-- after rewrite (%s):\n%s\n", s.engine, after)
	return nil
}

func (s *Session) cmdAST(string) error {
	if s.query == nil {
		return errNoQuery
	}
	s.printCore(s.query.Core)
	return nil
}

func (s *Session) cmdReset(string) error {
	s.query = nil
	fmt.Fprintln(s.out, "query discarded")
	return nil
}

func (s *Session) cmdTables(string) error {
	if len(s.tables) == 0 {
		fmt.Fprintln(s.out, "no tables registered")
		return nil
	}
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(s.out, name)
	}
	return nil
}

func (s *Session) cmdParams(string) error {
	s.parameterize = !s.parameterize
	fmt.Fprintf(s.out, "bind parameters: %v\n", s.parameterize)
	return nil
}

func (s *Session) cmdFormat(string) error {
	s.pretty = !s.pretty
	fmt.Fprintf(s.out, "multi-line formatting: %v\n", s.pretty)
	return nil
}

func (s *Session) cmdConnect(arg string) error {
	dsn := strings.TrimSpace(arg)
	if dsn == "" && s.lastDSN != "" {
		dsn = s.lastDSN
	}
	if dsn == "" {
		return errors.New("usage: connect <dsn>")
	}
	if s.engine == "snowflake" {
		return errors.New("no driver for snowflake; use 'engine postgres|mysql|sqlite' to execute queries")
	}
	conn, err := connect(s.engine, dsn)
	if err != nil {
		return err
	}
	if s.conn != nil {
		s.conn.close()
	}
	s.conn = conn
	s.lastDSN = dsn
	fmt.Fprintf(s.out, "connected to %s\n", sanitizeDSN(dsn))
	if tables, err := conn.loadSchema(); err == nil && len(tables) > 0 {
		for _, t := range tables {
			s.ensureTable(t)
		}
		fmt.Fprintf(s.out, "loaded %d tables from schema\n", len(tables))
	}
	return nil
}

func (s *Session) cmdDisconnect(string) error {
	if s.conn == nil {
		return errors.New("not connected")
	}
	s.conn.close()
	s.conn = nil
	fmt.Fprintln(s.out, "disconnected")
	return nil
}

func (s *Session) cmdExec(string) error {
	if s.conn == nil {
		return errors.New("not connected (use 'connect <dsn>')")
	}
	sql, params, err := s.GenerateSQL()
	if err != nil {
		return err
	}
	out, err := s.conn.execQuery(sql, params)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, out)
	return nil
}

// splitTopLevel splits on commas that are not inside parentheses, so window
// function calls survive projection splitting.
func splitTopLevel(input string) []string {
	var parts []string
	depth := 0
	start := 0
	inQuote := false
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '\'':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote {
				depth--
			}
		case ',':
			if depth == 0 && !inQuote {
				parts = append(parts, input[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, input[start:])
	return parts
}
