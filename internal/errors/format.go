package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles renders error output for a writer. lipgloss drops colors when
// the writer is not a terminal.
type styles struct {
	red, blue, cyan, white, gray lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		red:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		blue:  r.NewStyle().Foreground(lipgloss.Color("4")),
		cyan:  r.NewStyle().Foreground(lipgloss.Color("6")),
		white: r.NewStyle().Foreground(lipgloss.Color("7")),
		gray:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

var (
	output io.Writer = os.Stderr
	style            = newStyles(os.Stderr)
)

// SetOutput sets where PrintError writes. Colors follow what w supports.
func SetOutput(w io.Writer) {
	output = w
	style = newStyles(w)
}

// Format returns a formatted error message for terminal display.
func (e *FolioError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(style.red.Render("ERROR "))
		b.WriteString(style.white.Bold(true).Render(e.Code + ": "))
	} else {
		b.WriteString(style.red.Render("ERROR: "))
	}
	b.WriteString(style.white.Render(e.Message))
	b.WriteString("\n\n")

	if e.Key != "" {
		b.WriteString("  ")
		b.WriteString(style.cyan.Render(e.Key))
		b.WriteString("\n\n")
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(style.gray.Render("Cause: "))
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(style.cyan.Render("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}

	if e.DocURL != "" {
		b.WriteString("  ")
		b.WriteString(style.gray.Render("Learn more: "))
		b.WriteString(style.blue.Render(e.DocURL))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *FolioError) FormatCompact() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Key != "" {
		b.WriteString(" [")
		b.WriteString(e.Key)
		b.WriteString("]")
	}
	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// PrintError prints a formatted error to stderr, or the writer given to
// SetOutput.
func PrintError(err error) {
	var fe *FolioError
	if stderrors.As(err, &fe) {
		fmt.Fprint(output, fe.Format())
		return
	}
	fmt.Fprintf(output, "\n%s %s\n\n", style.red.Render("ERROR:"), err.Error())
}
