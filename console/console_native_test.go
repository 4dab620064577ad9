//go:build !wasm

package console

import (
	"bytes"
	"testing"
)

func TestWrite_LevelPrefixAndFilter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelWarn)
	defer func() {
		SetOutput(nil)
		SetLevel(LevelLog)
	}()

	Log("hidden")
	Warn("empty list for", "items")
	Error("boom")

	expected := "[WARN] empty list for items\n[ERROR] boom\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestSetOutput_NilDiscards(t *testing.T) {
	SetOutput(nil)
	defer SetOutput(nil)

	// Must not panic.
	Error("nobody listens")
}
