package resetdb

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Logger receives operational messages from a reset. Args are alternating
// key/value pairs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}

// ConsoleLogger writes warnings and errors to a writer in color. Info messages
// are dropped unless verbose is set.
type ConsoleLogger struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

func NewConsoleLogger(w io.Writer, verbose bool) *ConsoleLogger {
	if w == nil {
		w = os.Stderr
	}
	return &ConsoleLogger{out: w, verbose: verbose}
}

func (l *ConsoleLogger) Info(msg string, args ...any) {
	if !l.verbose {
		return
	}
	l.write(color.New(color.FgCyan), msg, args)
}

func (l *ConsoleLogger) Warn(msg string, args ...any) {
	l.write(color.New(color.FgYellow), "⚠️  "+msg, args)
}

func (l *ConsoleLogger) Error(msg string, args ...any) {
	l.write(color.New(color.FgRed, color.Bold), "❌ "+msg, args)
}

func (l *ConsoleLogger) write(c *color.Color, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c.Fprintln(l.out, msg+formatArgs(args))
}

func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fmt.Fprintf(&b, " %v", args[i])
			break
		}
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	return b.String()
}
