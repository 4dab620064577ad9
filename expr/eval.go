package expr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Evaluator evaluates expressions against a fixed context. Parsed
// expressions are cached by source, so an Evaluator is cheap to reuse and
// safe for concurrent use.
type Evaluator struct {
	ctx   any
	cache sync.Map // source -> Node
}

// New returns an Evaluator whose identifiers resolve against ctx. ctx may be
// nil, in which case only literals and builtins are available.
func New(ctx any) *Evaluator {
	return &Evaluator{ctx: ctx}
}

// Context returns the evaluation context.
func (e *Evaluator) Context() any {
	return e.ctx
}

// IsDelimited reports whether text is a single {expression}.
func IsDelimited(text string) bool {
	return len(text) >= 2 && text[0] == '{' && text[len(text)-1] == '}'
}

// Evaluate evaluates text when it is a delimited {expression} and returns
// fallback unchanged otherwise. Callable results are bound to the context.
func (e *Evaluator) Evaluate(text string, fallback any) (any, error) {
	if !IsDelimited(text) {
		return fallback, nil
	}
	return e.Eval(text[1 : len(text)-1])
}

// Eval evaluates a bare expression.
func (e *Evaluator) Eval(src string) (any, error) {
	node, err := e.parse(src)
	if err != nil {
		return nil, err
	}

	v, err := e.eval(node)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, &EvaluationError{Expression: src, Cause: err}
	}
	return Bind(v, e.ctx), nil
}

func (e *Evaluator) parse(src string) (Node, error) {
	if n, ok := e.cache.Load(src); ok {
		return n.(Node), nil
	}
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	e.cache.Store(src, n)
	return n, nil
}

func (e *Evaluator) eval(n Node) (any, error) {
	switch node := n.(type) {
	case *Literal:
		return node.Value, nil

	case *This:
		return e.ctx, nil

	case *Identifier:
		return e.resolve(node.Name)

	case *ArrayLiteral:
		out := make([]any, len(node.Elements))
		for i, el := range node.Elements {
			v, err := e.eval(el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case *Member:
		obj, err := e.eval(node.Object)
		if err != nil {
			return nil, err
		}
		return member(obj, node.Name)

	case *Index:
		obj, err := e.eval(node.Object)
		if err != nil {
			return nil, err
		}
		idx, err := e.eval(node.Index)
		if err != nil {
			return nil, err
		}
		return index(obj, idx)

	case *Call:
		callee, err := e.eval(node.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]any, len(node.Args))
		for i, a := range node.Args {
			if args[i], err = e.eval(a); err != nil {
				return nil, err
			}
		}
		return call(node.Callee.String(), callee, args)

	case *Unary:
		v, err := e.eval(node.Operand)
		if err != nil {
			return nil, err
		}
		return unaryOp(node.Operator, v)

	case *Binary:
		left, err := e.eval(node.Left)
		if err != nil {
			return nil, err
		}
		switch node.Operator {
		case "&&":
			if !Truthy(left) {
				return left, nil
			}
			return e.eval(node.Right)
		case "||":
			if Truthy(left) {
				return left, nil
			}
			return e.eval(node.Right)
		}
		right, err := e.eval(node.Right)
		if err != nil {
			return nil, err
		}
		return binaryOp(left, node.Operator, right)

	case *Conditional:
		test, err := e.eval(node.Test)
		if err != nil {
			return nil, err
		}
		if Truthy(test) {
			return e.eval(node.Then)
		}
		return e.eval(node.Else)
	}

	return nil, fmt.Errorf("unsupported expression %s", n)
}

// resolve looks a bare identifier up on the context, then among builtins.
func (e *Evaluator) resolve(name string) (any, error) {
	if e.ctx != nil {
		if v, ok := lookup(e.ctx, name); ok {
			return v, nil
		}
	}
	if fn, ok := builtins[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%s is not defined", name)
}

// member resolves obj.name. Missing map keys yield nil; missing struct
// members are errors.
func member(obj any, name string) (any, error) {
	if obj == nil {
		return nil, fmt.Errorf("cannot read property %q of nil", name)
	}
	if v, ok := lookup(obj, name); ok {
		return v, nil
	}

	rv := reflect.Indirect(reflect.ValueOf(obj))
	if rv.Kind() == reflect.Map {
		return nil, nil
	}
	return nil, fmt.Errorf("%T has no field or method %q", obj, name)
}

// lookup finds a field, method, map entry or length pseudo-property. Names
// are tried as written and then with an upper-cased first letter, so
// templates can reach exported Go members with lower-camel names.
func lookup(obj any, name string) (any, bool) {
	rv := reflect.ValueOf(obj)
	for _, n := range candidates(name) {
		if v, ok := lookupExact(rv, n); ok {
			return v, true
		}
	}

	if name == "length" {
		base := reflect.Indirect(rv)
		switch base.Kind() {
		case reflect.Slice, reflect.Array, reflect.String, reflect.Map:
			return base.Len(), true
		}
	}
	return nil, false
}

func candidates(name string) []string {
	r, size := utf8.DecodeRuneInString(name)
	upper := string(unicode.ToUpper(r)) + name[size:]
	if upper == name {
		return []string{name}
	}
	return []string{name, upper}
}

func lookupExact(rv reflect.Value, name string) (any, bool) {
	if !rv.IsValid() {
		return nil, false
	}

	if m := rv.MethodByName(name); m.IsValid() {
		return m.Interface(), true
	}

	base := reflect.Indirect(rv)
	switch base.Kind() {
	case reflect.Map:
		if base.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := base.MapIndex(reflect.ValueOf(name).Convert(base.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true

	case reflect.Struct:
		f, ok := base.Type().FieldByName(name)
		if !ok || !f.IsExported() {
			return nil, false
		}
		return base.FieldByIndex(f.Index).Interface(), true
	}
	return nil, false
}

func index(obj, idx any) (any, error) {
	if obj == nil {
		return nil, fmt.Errorf("cannot index nil")
	}

	rv := reflect.Indirect(reflect.ValueOf(obj))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
		i, ok := ToInt(idx)
		if !ok {
			return nil, fmt.Errorf("index must be an integer, got %T", idx)
		}
		if i < 0 || i >= rv.Len() {
			return nil, fmt.Errorf("index %d out of range [0:%d]", i, rv.Len())
		}
		if rv.Kind() == reflect.String {
			return string(rv.String()[i]), nil
		}
		return rv.Index(i).Interface(), nil

	case reflect.Map:
		key := reflect.ValueOf(idx)
		kt := rv.Type().Key()
		if !key.IsValid() || !key.Type().ConvertibleTo(kt) {
			return nil, fmt.Errorf("cannot use %T as key of %s", idx, rv.Type())
		}
		v := rv.MapIndex(key.Convert(kt))
		if !v.IsValid() {
			return nil, nil
		}
		return v.Interface(), nil
	}

	if name, ok := idx.(string); ok {
		return member(obj, name)
	}
	return nil, fmt.Errorf("cannot index %T", obj)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// call invokes fn with args, converting arguments to the parameter types
// where Go allows it. A trailing error result is returned as the error.
func call(name string, fn any, args []any) (any, error) {
	if b, ok := fn.(builtin); ok {
		return b(args...)
	}

	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s is not a function", name)
	}

	ft := fv.Type()
	if ft.IsVariadic() {
		if len(args) < ft.NumIn()-1 {
			return nil, fmt.Errorf("%s expects at least %d arguments, got %d", name, ft.NumIn()-1, len(args))
		}
	} else if len(args) != ft.NumIn() {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", name, ft.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if ft.IsVariadic() && i >= ft.NumIn()-1 {
			pt = ft.In(ft.NumIn() - 1).Elem()
		} else {
			pt = ft.In(i)
		}
		v, err := convert(a, pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d of %s: %w", i+1, name, err)
		}
		in[i] = v
	}

	out := fv.Call(in)
	if n := len(out); n > 0 && ft.Out(n-1) == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return nil, err
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

func convert(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if isNumericKind(rv.Kind()) && isNumericKind(t.Kind()) {
		if isFloatKind(rv.Kind()) && !isFloatKind(t.Kind()) {
			n, ok := ToInt(v)
			if !ok {
				return reflect.Value{}, fmt.Errorf("cannot use %v as %s: not an integer", v, t)
			}
			rv = reflect.ValueOf(n)
		}
		if rv.CanInt() && rv.Int() < 0 && t.Kind() >= reflect.Uint && t.Kind() <= reflect.Uintptr {
			return reflect.Value{}, fmt.Errorf("cannot use %v as %s: negative", v, t)
		}
		return rv.Convert(t), nil
	}
	if rv.Kind() == reflect.String && t.Kind() == reflect.String {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, t)
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Bind returns fn bound to ctx. Method values are already bound to their
// receiver and are returned as is; a plain function whose first parameter
// accepts ctx is curried with ctx as that argument. Other values are
// returned unchanged.
func Bind(fn any, ctx any) any {
	if fn == nil || ctx == nil {
		return fn
	}
	if _, ok := fn.(builtin); ok {
		return fn
	}

	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func || ft.NumIn() == 0 || ft.IsVariadic() {
		return fn
	}
	cv := reflect.ValueOf(ctx)
	if !cv.Type().AssignableTo(ft.In(0)) || ft.In(0).Kind() == reflect.Interface {
		return fn
	}

	in := make([]reflect.Type, ft.NumIn()-1)
	for i := range in {
		in[i] = ft.In(i + 1)
	}
	out := make([]reflect.Type, ft.NumOut())
	for i := range out {
		out[i] = ft.Out(i)
	}

	bound := reflect.MakeFunc(reflect.FuncOf(in, out, false), func(args []reflect.Value) []reflect.Value {
		return fv.Call(append([]reflect.Value{cv}, args...))
	})
	return bound.Interface()
}

// Interpolate replaces every ${expression} in text with its formatted value.
func (e *Evaluator) Interpolate(text string) (string, error) {
	var b strings.Builder
	rest := text

	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:start])

		end, err := matchBrace(rest, start+1)
		if err != nil {
			return "", err
		}
		v, err := e.Eval(rest[start+2 : end])
		if err != nil {
			return "", err
		}
		b.WriteString(FormatValue(v))
		rest = rest[end+1:]
	}
}

// matchBrace returns the index of the '}' closing the '{' at open, skipping
// quoted strings.
func matchBrace(s string, open int) (int, error) {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, newParseError(s, open, "unclosed interpolation")
}
