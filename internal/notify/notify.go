package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Severity classifies a user-visible message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Message is one transient user-visible notification.
type Message struct {
	ID       string
	Severity Severity
	Title    string
	Text     string
}

// Notifier displays messages. Implemented by Terminal (CLI), the admin TUI's
// toast line, and Recorder (tests).
type Notifier interface {
	Notify(Message)
}

// Success builds a success message with a fresh ID.
func Success(title, text string) Message {
	return Message{ID: uuid.NewString(), Severity: SeveritySuccess, Title: title, Text: text}
}

// Error builds an error message with a fresh ID.
func Error(title, text string) Message {
	return Message{ID: uuid.NewString(), Severity: SeverityError, Title: title, Text: text}
}

// Warning builds a warning message with a fresh ID.
func Warning(title, text string) Message {
	return Message{ID: uuid.NewString(), Severity: SeverityWarning, Title: title, Text: text}
}

// ------- terminal printer -------

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// Terminal renders messages as one-line toasts. Errors go to stderr so
// command output stays pipeable.
type Terminal struct {
	Out    io.Writer
	ErrOut io.Writer
}

// NewTerminal writes to stdout/stderr.
func NewTerminal() *Terminal {
	return &Terminal{Out: os.Stdout, ErrOut: os.Stderr}
}

func (t *Terminal) Notify(m Message) {
	line := m.Title
	if m.Text != "" {
		line += " " + mutedStyle.Render(m.Text)
	}
	switch m.Severity {
	case SeverityError:
		fmt.Fprintln(t.ErrOut, errorStyle.Render("✖ ")+line)
	case SeverityWarning:
		fmt.Fprintln(t.Out, warnStyle.Render("! ")+line)
	default:
		fmt.Fprintln(t.Out, successStyle.Render("✔ ")+line)
	}
}

// ------- test double -------

// Recorder keeps every message it receives. Test-only Notifier.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Notify(m Message) { r.Messages = append(r.Messages, m) }

// Last returns the most recent message, or a zero Message.
func (r *Recorder) Last() Message {
	if len(r.Messages) == 0 {
		return Message{}
	}
	return r.Messages[len(r.Messages)-1]
}
