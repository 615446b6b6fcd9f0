// Command repl is an interactive shell for building window-function queries
// and rendering them per dialect. Set WINQ_ENGINE to pick the starting
// engine and DATABASE_URL to connect on startup.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
)

func isValidEngine(engine string) bool {
	switch engine {
	case "snowflake", "postgres", "mysql", "sqlite":
		return true
	}
	return false
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".winq_history")
}

func (s *Session) prompt() string {
	return fmt.Sprintf("winq:%s> ", s.engine)
}

func main() {
	s := NewSession(os.Stdout)

	if engine := os.Getenv("WINQ_ENGINE"); engine != "" {
		if err := s.setEngine(engine); err != nil {
			fmt.Fprintf(os.Stderr, "WINQ_ENGINE: %v\n", err)
			os.Exit(1)
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     historyPath(),
		AutoComplete:    &completer{session: s},
		InterruptPrompt: "^C",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()
	s.rl = rl

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		if err := s.cmdConnect(dsn); err != nil {
			fmt.Fprintf(os.Stderr, "DATABASE_URL: %v\n", err)
		}
	}

	fmt.Println("winq window-query shell (type 'help' for commands)")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "read: %v\n", err)
			break
		}

		trimmed := strings.ToLower(strings.TrimSpace(line))
		if trimmed == "exit" || trimmed == "quit" {
			break
		}
		if err := s.handleLine(line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		rl.SetPrompt(s.prompt())
	}

	if s.conn != nil {
		s.conn.close()
	}
}
