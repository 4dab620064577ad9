package checker

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vcrobe/nojs-html/console"
	"golang.org/x/tools/go/packages"
)

// Template is a discovered markup template and the component it belongs to.
type Template struct {
	Path       string
	Name       string // file name without the template suffix
	Package    string // Go package name, empty when the directory is not a loaded package
	ImportPath string
	Schema     Schema
}

// Schema describes the Go struct rendered by a template.
type Schema struct {
	Type    string            // struct name, empty when none was found
	Fields  map[string]string // exported field name -> Go type
	Methods []string          // exported method names
}

// Discover finds every template under root whose name ends in suffix and
// inspects the struct of the same name (case-insensitively) declared next
// to it. Hidden directories and those starting with "_" or named testdata
// are skipped, as the go tool does.
func Discover(root, suffix string) ([]Template, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", root, err)
	}

	pkgs := loadPackages(absRoot)

	var templates []Template
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != absRoot && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}

		dir := filepath.Dir(path)
		name := strings.TrimSuffix(d.Name(), suffix)
		schema, err := inspectDir(dir, name)
		if err != nil {
			console.Warn(fmt.Sprintf("Warning: could not inspect Go files in %s: %v", dir, err))
		}

		t := Template{Path: path, Name: name, Schema: schema}
		if pkg, ok := pkgs[dir]; ok {
			t.Package = pkg.Name
			t.ImportPath = pkg.PkgPath
		}
		templates = append(templates, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return templates, nil
}

// loadPackages maps package directories under root to their packages,
// loaded for the wasm target the components are built for. A failed load
// leaves templates without package information.
func loadPackages(root string) map[string]*packages.Package {
	out := make(map[string]*packages.Package)

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  root,
		Env:  append(os.Environ(), "GOOS=js", "GOARCH=wasm"),
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		console.Warn(fmt.Sprintf("Warning: could not load Go packages under %s: %v", root, err))
		return out
	}

	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 {
			continue
		}
		out[filepath.Dir(pkg.GoFiles[0])] = pkg
	}
	return out
}

// inspectDir parses the non-test Go files of dir and collects the exported
// fields and methods of the struct named like the template.
func inspectDir(dir, name string) (Schema, error) {
	schema := Schema{Fields: make(map[string]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return schema, err
	}

	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") || strings.HasSuffix(e.Name(), "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, e.Name()), nil, parser.SkipObjectResolution)
		if err != nil {
			return schema, err
		}
		files = append(files, f)
	}

	for _, f := range files {
		ast.Inspect(f, func(n ast.Node) bool {
			spec, ok := n.(*ast.TypeSpec)
			if !ok || !strings.EqualFold(spec.Name.Name, name) {
				return true
			}
			st, ok := spec.Type.(*ast.StructType)
			if !ok {
				return true
			}
			schema.Type = spec.Name.Name
			for _, field := range st.Fields.List {
				for _, ident := range field.Names {
					if ident.IsExported() {
						schema.Fields[ident.Name] = extractTypeName(field.Type)
					}
				}
			}
			return false
		})
	}
	if schema.Type == "" {
		return schema, nil
	}

	for _, f := range files {
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 || !fn.Name.IsExported() {
				continue
			}
			recv := fn.Recv.List[0].Type
			if star, ok := recv.(*ast.StarExpr); ok {
				recv = star.X
			}
			if ident, ok := recv.(*ast.Ident); ok && ident.Name == schema.Type {
				schema.Methods = append(schema.Methods, fn.Name.Name)
			}
		}
	}
	sort.Strings(schema.Methods)
	return schema, nil
}

// extractTypeName renders a field type the way it is written in source.
func extractTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.ArrayType:
		return "[]" + extractTypeName(t.Elt)
	case *ast.StarExpr:
		return "*" + extractTypeName(t.X)
	case *ast.MapType:
		return "map[" + extractTypeName(t.Key) + "]" + extractTypeName(t.Value)
	case *ast.SelectorExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name + "." + t.Sel.Name
		}
	case *ast.FuncType:
		return "func"
	case *ast.InterfaceType:
		return "any"
	}
	return "unknown"
}

// Context returns placeholder values for the schema: zero values for
// fields and no-op functions for methods, so a template can be rendered
// without the component.
func (s Schema) Context() map[string]any {
	ctx := make(map[string]any, len(s.Fields)+len(s.Methods))
	for name, typ := range s.Fields {
		ctx[name] = placeholder(typ)
	}
	for _, name := range s.Methods {
		ctx[name] = noop
	}
	return ctx
}

func noop(...any) any { return nil }

func placeholder(typ string) any {
	switch {
	case typ == "string":
		return ""
	case typ == "bool":
		return false
	case strings.HasPrefix(typ, "int") || strings.HasPrefix(typ, "uint"):
		return 0
	case strings.HasPrefix(typ, "float"):
		return 0.0
	case strings.HasPrefix(typ, "[]"):
		return []any{}
	case strings.HasPrefix(typ, "map["):
		return map[string]any{}
	case typ == "func":
		return noop
	}
	return nil
}

// Inspect returns the Template for a single file, without package
// information.
func Inspect(path, suffix string) (Template, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Template{}, fmt.Errorf("failed to resolve absolute path for %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(abs), suffix)
	schema, err := inspectDir(filepath.Dir(abs), name)
	if err != nil {
		return Template{}, fmt.Errorf("failed to inspect Go files next to %s: %w", path, err)
	}
	return Template{Path: abs, Name: name, Schema: schema}, nil
}
