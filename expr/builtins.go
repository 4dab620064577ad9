package expr

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

type builtin func(args ...any) (any, error)

// builtins are available to every expression unless the context shadows
// the name.
var builtins = map[string]builtin{
	"len":    builtinLen,
	"string": builtinString,
	"upper":  builtinUpper,
	"lower":  builtinLower,
	"join":   builtinJoin,
}

// Builtins returns the names of the builtin functions, sorted.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins))
}

func builtinLen(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len expects 1 argument, got %d", len(args))
	}
	if args[0] == nil {
		return 0, nil
	}
	rv := reflect.Indirect(reflect.ValueOf(args[0]))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.String, reflect.Map, reflect.Chan:
		return rv.Len(), nil
	}
	return nil, fmt.Errorf("len: unsupported type %T", args[0])
}

func builtinString(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("string expects 1 argument, got %d", len(args))
	}
	return FormatValue(args[0]), nil
}

func builtinUpper(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("upper expects 1 argument, got %d", len(args))
	}
	return strings.ToUpper(FormatValue(args[0])), nil
}

func builtinLower(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("lower expects 1 argument, got %d", len(args))
	}
	return strings.ToLower(FormatValue(args[0])), nil
}

// join(items, sep) formats every element and joins them. sep defaults to
// ", ".
func builtinJoin(args ...any) (any, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("join expects 1 or 2 arguments, got %d", len(args))
	}
	sep := ", "
	if len(args) == 2 {
		sep = FormatValue(args[1])
	}
	if args[0] == nil {
		return "", nil
	}

	rv := reflect.Indirect(reflect.ValueOf(args[0]))
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("join: expected a list, got %T", args[0])
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = FormatValue(rv.Index(i).Interface())
	}
	return strings.Join(parts, sep), nil
}
