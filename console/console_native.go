//go:build !wasm

package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level filters which messages are written.
type Level int

const (
	LevelLog Level = iota
	LevelWarn
	LevelError
	LevelOff
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stderr
	level            = LevelLog
	prefix           = map[Level]string{LevelLog: "LOG", LevelWarn: "WARN", LevelError: "ERROR"}
)

// SetOutput redirects console output. A nil writer discards everything.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	out = w
}

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// Log writes an informational message.
func Log(args ...any) {
	write(LevelLog, args...)
}

// Warn writes a warning.
func Warn(args ...any) {
	write(LevelWarn, args...)
}

// Error writes an error message.
func Error(args ...any) {
	write(LevelError, args...)
}

func write(l Level, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}

	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	fmt.Fprintf(out, "[%s] %s\n", prefix[l], strings.Join(parts, " "))
}
