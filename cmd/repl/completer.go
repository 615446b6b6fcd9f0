package main

import (
	"sort"
	"strings"
)

// completer implements readline.AutoCompleter. It completes command names at
// the start of a line, and table or engine names after commands that take
// them.
type completer struct {
	session *Session
}

func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	input := string(line[:pos])
	fields := strings.Fields(input)

	// Completing the command itself.
	if len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(input, " ")) {
		prefix := ""
		if len(fields) == 1 {
			prefix = fields[0]
		}
		return c.candidates(c.session.commandNames(), prefix)
	}

	cmd := strings.ToLower(fields[0])
	prefix := ""
	if !strings.HasSuffix(input, " ") {
		prefix = fields[len(fields)-1]
	}

	switch cmd {
	case "from", "table", "join", "leftjoin", "crossjoin":
		return c.candidates(c.session.tableNames(), prefix)
	case "engine":
		return c.candidates([]string{"snowflake", "postgres", "mysql", "sqlite"}, prefix)
	}
	return nil, 0
}

func (c *completer) candidates(options []string, prefix string) ([][]rune, int) {
	var out [][]rune
	for _, opt := range options {
		if strings.HasPrefix(opt, prefix) {
			out = append(out, []rune(opt[len(prefix):]+" "))
		}
	}
	return out, len(prefix)
}

func (s *Session) tableNames() []string {
	names := make([]string, 0, len(s.tables)+len(s.aliases))
	for name := range s.tables {
		names = append(names, name)
	}
	for name := range s.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
