//go:build js || wasm

// Package dialogs wraps the blocking browser dialogs.
package dialogs

import (
	"syscall/js"
)

// Alert shows a message and blocks until it is dismissed.
func Alert(msg string) {
	js.Global().Call("alert", msg)
}

// Prompt asks for a line of text. ok is false when the user cancels.
func Prompt(message string) (text string, ok bool) {
	result := js.Global().Call("prompt", message)
	if result.IsNull() || result.IsUndefined() {
		return "", false
	}
	return result.String(), true
}

func Confirm(message string) bool {
	return js.Global().Call("confirm", message).Bool()
}
