package main

import "sort"

type commandEntry struct {
	prefix  string
	handler func(arg string) error
	help    string
}

// initCommands registers every command. Entries are sorted longest prefix
// first so "leftjoin" wins over "join" and "offset" over "off".
func (s *Session) initCommands() {
	s.commands = []commandEntry{
		{prefix: "help", handler: s.cmdHelp, help: "show command help"},
		{prefix: "engine", handler: s.cmdEngine, help: "show or switch the target engine"},
		{prefix: "table", handler: s.cmdTable, help: "register a table (and optional alias)"},
		{prefix: "from", handler: s.cmdFrom, help: "start a query from a table"},
		{prefix: "select", handler: s.cmdSelect, help: "set projections"},
		{prefix: "project", handler: s.cmdSelect, help: "alias for select"},
		{prefix: "where", handler: s.cmdWhere, help: "add a WHERE condition"},
		{prefix: "join", handler: s.cmdJoin, help: "inner join a table"},
		{prefix: "leftjoin", handler: s.cmdLeftJoin, help: "left outer join a table"},
		{prefix: "crossjoin", handler: s.cmdCrossJoin, help: "cross join a table"},
		{prefix: "group", handler: s.cmdGroup, help: "add GROUP BY columns"},
		{prefix: "having", handler: s.cmdHaving, help: "add a HAVING condition"},
		{prefix: "order", handler: s.cmdOrder, help: "add ORDER BY"},
		{prefix: "window", handler: s.cmdWindow, help: "define a named window"},
		{prefix: "limit", handler: s.cmdLimit, help: "set LIMIT"},
		{prefix: "offset", handler: s.cmdOffset, help: "set OFFSET"},
		{prefix: "distinct", handler: s.cmdDistinct, help: "toggle SELECT DISTINCT"},
		{prefix: "sql", handler: s.cmdSQL, help: "render SQL"},
		{prefix: "tosql", handler: s.cmdSQL, help: "alias for sql"},
		{prefix: "explain", handler: s.cmdExplain, help: "show SQL before and after frame rewriting"},
		{prefix: "ast", handler: s.cmdAST, help: "dump the query AST"},
		{prefix: "reset", handler: s.cmdReset, help: "discard the current query"},
		{prefix: "tables", handler: s.cmdTables, help: "list known tables"},
		{prefix: "params", handler: s.cmdParams, help: "toggle bind parameters"},
		{prefix: "format", handler: s.cmdFormat, help: "toggle multi-line formatting"},
		{prefix: "connect", handler: s.cmdConnect, help: "connect to a database"},
		{prefix: "disconnect", handler: s.cmdDisconnect, help: "close the database connection"},
		{prefix: "exec", handler: s.cmdExec, help: "run the query on the connection"},
		{prefix: "run", handler: s.cmdExec, help: "alias for exec"},
	}
	sort.SliceStable(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

func (s *Session) commandNames() []string {
	names := make([]string, len(s.commands))
	for i, cmd := range s.commands {
		names[i] = cmd.prefix
	}
	sort.Strings(names)
	return names
}
