package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	prompt             = ">> "
	continuationPrompt = ".. "
)

// historyFile keeps the input history between sessions.
var historyFile = filepath.Join(os.TempDir(), ".nojs_html_history")

// Start runs the interactive loop on the terminal until exit or Ctrl+D.
func Start(out io.Writer, s *Session) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		return complete(input, s.Names())
	})

	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(out, "nojs-html REPL. Type ':help' for commands, 'exit' or Ctrl+D to quit.")

	var buf strings.Builder
	for {
		p := prompt
		if buf.Len() > 0 {
			p = continuationPrompt
		}
		input, err := line.Prompt(p)
		if errors.Is(err, liner.ErrPromptAborted) {
			buf.Reset()
			fmt.Fprintln(out, "^C")
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		trimmed := strings.TrimSpace(input)
		if buf.Len() == 0 && (trimmed == "exit" || trimmed == "quit") {
			return nil
		}
		if buf.Len() == 0 && trimmed == "" {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(input)
		full := buf.String()
		if needsMoreInput(full) {
			continue
		}
		buf.Reset()
		line.AppendHistory(full)

		result, err := s.Exec(full)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if result != "" {
			fmt.Fprintln(out, result)
		}
	}
}

// complete offers the names that extend the last word of input.
func complete(input string, names []string) []string {
	start := strings.LastIndexAny(input, " ({[,!<>=+-*/&|?:\"'") + 1
	prefix, word := input[:start], input[start:]
	if word == "" {
		return nil
	}

	var out []string
	for _, name := range names {
		if strings.HasPrefix(name, word) {
			out = append(out, prefix+name)
		}
	}
	return out
}
