//go:build js || wasm

package console

import (
	"syscall/js"
)

// Level filters which messages reach the browser console.
type Level int

const (
	LevelLog Level = iota
	LevelWarn
	LevelError
	LevelOff
)

var level = LevelLog

// SetLevel sets the minimum level that is forwarded to the console.
func SetLevel(l Level) {
	level = l
}

func Log(args ...any) {
	call(LevelLog, "log", args...)
}

func Warn(args ...any) {
	call(LevelWarn, "warn", args...)
}

func Error(args ...any) {
	call(LevelError, "error", args...)
}

func call(l Level, method string, args ...any) {
	if l < level {
		return
	}
	console := js.Global().Get("console")
	console.Call(method, args...)
}
