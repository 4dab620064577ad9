package events

import "testing"

func TestPropName(t *testing.T) {
	tests := []struct {
		attr string
		want string
	}{
		{"onclick", "onClick"},
		{"ONCHANGE", "onChange"},
		{"oninput", "onInput"},
		{"class", "className"},
		{"data-id", "data-id"},
		{"Title", "Title"},
	}

	for _, tt := range tests {
		if got := PropName(tt.attr); got != tt.want {
			t.Errorf("PropName(%q): expected %q, got %q", tt.attr, tt.want, got)
		}
	}
}

func TestAttributeName_InvertsPropName(t *testing.T) {
	for attr, prop := range DefaultPropNames() {
		if got := AttributeName(prop); got != attr {
			t.Errorf("AttributeName(%q): expected %q, got %q", prop, attr, got)
		}
	}
	if got := AttributeName("title"); got != "title" {
		t.Errorf("Expected unmapped prop to pass through, got %q", got)
	}
}

func TestDefaultPropNames_ReturnsCopy(t *testing.T) {
	m := DefaultPropNames()
	m["onclick"] = "changed"

	if PropName("onclick") != "onClick" {
		t.Errorf("Mutating the returned table must not affect the default mapping")
	}
}

func TestIsEventSupported(t *testing.T) {
	if !IsEventSupported("onclick", "div") {
		t.Errorf("Expected onclick to be supported on any tag")
	}
	if !IsEventSupported("onSubmit", "FORM") {
		t.Errorf("Expected onSubmit to be supported on <form>")
	}
	if IsEventSupported("onsubmit", "div") {
		t.Errorf("Expected onsubmit to be unsupported on <div>")
	}
	if IsEventSupported("onwhatever", "div") {
		t.Errorf("Expected unknown events to be unsupported")
	}
}

func TestLookup(t *testing.T) {
	sig, ok := Lookup("onKeyDown")
	if !ok {
		t.Fatalf("Expected onKeyDown to be known")
	}
	if sig.Event != "keydown" || sig.Attribute != "onkeydown" {
		t.Errorf("Unexpected signature: %+v", sig)
	}
}
