package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	disabledStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	enabledBadge  = successStyle.Render("● on")
	disabledBadge = mutedStyle.Render("○ off")
)

// OK prints a one-line success marker to stdout.
func OK(msg string) { okTo(os.Stdout, msg) }

// Fail prints a one-line error marker to stderr.
func Fail(msg string) { failTo(os.Stderr, msg) }

func okTo(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✔ "+msg))
}

func failTo(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render("✖ "+msg))
}

// Panel draws a framed box around lines on stdout.
func Panel(lines []string) {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	fmt.Println(border.Render(strings.Join(lines, "\n")))
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

// PaginationBar renders "‹ 1 [2] 3 ›" for the given descriptor values.
func PaginationBar(current, total int) string {
	if total <= 0 {
		return mutedStyle.Render("no pages")
	}
	parts := make([]string, 0, total+2)
	if current > 1 {
		parts = append(parts, accentStyle.Render("‹"))
	} else {
		parts = append(parts, mutedStyle.Render("‹"))
	}
	for i := 1; i <= total; i++ {
		label := fmt.Sprintf("%d", i)
		if i == current {
			parts = append(parts, selectedStyle.Render(" "+label+" "))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	if current < total {
		parts = append(parts, accentStyle.Render("›"))
	} else {
		parts = append(parts, mutedStyle.Render("›"))
	}
	return strings.Join(parts, " ")
}
