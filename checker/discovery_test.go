package checker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const widgetSource = `package widget

type Widget struct {
	Title string
	Items []string
	Count int
	Meta  map[string]any
	notes string
}

func (w *Widget) Save()   {}
func (w Widget) Label() string { return w.Title }
func (w *Widget) helper() {}

type Other struct{ Ignored bool }

func (o *Other) Run() {}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_FindsTemplatesAndSchemas(t *testing.T) {
	// Arrange
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "widget", "widget.go"), widgetSource)
	writeFile(t, filepath.Join(root, "widget", "widget.gt.html"), "<p>{Title}</p>")
	writeFile(t, filepath.Join(root, "plain", "page.gt.html"), "<p>page</p>")
	writeFile(t, filepath.Join(root, "_drafts", "skip.gt.html"), "<p>skip</p>")
	writeFile(t, filepath.Join(root, ".cache", "skip.gt.html"), "<p>skip</p>")
	writeFile(t, filepath.Join(root, "widget", "notes.html"), "<p>not a template</p>")

	// Act
	templates, err := Discover(root, ".gt.html")

	// Assert
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("Expected 2 templates, got %d: %+v", len(templates), templates)
	}

	page, widget := templates[0], templates[1]
	if page.Name != "page" || page.Schema.Type != "" {
		t.Errorf("Expected schema-less 'page' template, got %+v", page)
	}

	wantSchema := Schema{
		Type: "Widget",
		Fields: map[string]string{
			"Title": "string",
			"Items": "[]string",
			"Count": "int",
			"Meta":  "map[string]any",
		},
		Methods: []string{"Label", "Save"},
	}
	if widget.Name != "widget" {
		t.Errorf("Expected template name 'widget', got '%s'", widget.Name)
	}
	if diff := cmp.Diff(wantSchema, widget.Schema); diff != "" {
		t.Errorf("Schema mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_Context(t *testing.T) {
	s := Schema{
		Type:    "Widget",
		Fields:  map[string]string{"Title": "string", "Items": "[]string", "Count": "int", "On": "bool", "Ptr": "*Widget"},
		Methods: []string{"Save"},
	}

	ctx := s.Context()

	if ctx["Title"] != "" || ctx["Count"] != 0 || ctx["On"] != false || ctx["Ptr"] != nil {
		t.Errorf("Unexpected placeholder values: %v", ctx)
	}
	if items, ok := ctx["Items"].([]any); !ok || len(items) != 0 {
		t.Errorf("Expected an empty list for Items, got %#v", ctx["Items"])
	}
	if _, ok := ctx["Save"].(func(...any) any); !ok {
		t.Errorf("Expected a callable placeholder for Save, got %T", ctx["Save"])
	}
}
