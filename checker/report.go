package checker

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vcrobe/nojs-html/markup"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	contextStyle = lipgloss.NewStyle().Faint(true)
	summaryStyle = lipgloss.NewStyle().Bold(true)
)

// contextSize is the number of source lines shown around a failing line.
const contextSize = 2

// Report writes one line per result, with the error and the surrounding
// source lines for failures, followed by a summary. Paths are shown
// relative to root when possible. It returns the number of failures.
func Report(w io.Writer, root string, results []Result) int {
	failed := 0
	for _, res := range results {
		path := res.Template.Path
		if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}

		if res.Err == nil {
			fmt.Fprintf(w, "%s %s\n", okStyle.Render("✓"), path)
			continue
		}

		failed++
		fmt.Fprintf(w, "%s %s\n", failStyle.Render("✗"), path)
		fmt.Fprintf(w, "    %s\n", res.Err)

		var te *markup.TemplateError
		if errors.As(res.Err, &te) && te.Line > 0 {
			context := markup.ContextLines(res.Source, te.Line, contextSize)
			for _, line := range strings.Split(strings.TrimRight(context, "\n"), "\n") {
				fmt.Fprintf(w, "    %s\n", contextStyle.Render(line))
			}
		}
	}

	summary := fmt.Sprintf("%d templates checked, %d failed", len(results), failed)
	if failed > 0 {
		fmt.Fprintln(w, failStyle.Render(summary))
	} else {
		fmt.Fprintln(w, summaryStyle.Render(summary))
	}
	return failed
}

// ReportConflicts warns about registered names that collide with HTML tags.
func ReportConflicts(w io.Writer, names []string) {
	for _, name := range names {
		fmt.Fprintf(w, "%s component %q shares its name with <%s>; the parser may move or drop it\n",
			warnStyle.Render("!"), name, strings.ToLower(name))
	}
}
