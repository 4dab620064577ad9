package expr

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// FormatValue converts a value into the text used for token substitution
// and interpolation. nil formats as the empty string.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	default:
		return fmt.Sprint(val)
	}
}

// Truthy reports whether a value counts as true in a condition: false, nil,
// zero numbers, empty strings and empty collections are false.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	}

	if f, ok := toFloat(v); ok {
		return f != 0 && !math.IsNaN(f)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return !rv.IsNil() && rv.Len() > 0
	case reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// ToInt converts integral numbers (including whole floats) to int. Values
// outside the int range are rejected.
func ToInt(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if u := rv.Uint(); u <= math.MaxInt {
			return int(u), true
		}
	case reflect.Float32, reflect.Float64:
		// float64(math.MaxInt) rounds up to 2^63, which is out of range.
		f := rv.Float()
		if f == math.Trunc(f) && f >= math.MinInt && f < math.MaxInt {
			return int(f), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isInteger(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func binaryOp(left any, op string, right any) (any, error) {
	switch op {
	case "+":
		_, ls := left.(string)
		_, rs := right.(string)
		if ls || rs {
			return FormatValue(left) + FormatValue(right), nil
		}
		return arithmetic(left, op, right)
	case "-", "*", "/", "%":
		return arithmetic(left, op, right)
	case "==", "===":
		return equals(left, right), nil
	case "!=", "!==":
		return !equals(left, right), nil
	case "<", ">", "<=", ">=":
		return compare(left, op, right)
	}
	return nil, fmt.Errorf("unknown operator %q", op)
}

func arithmetic(left any, op string, right any) (any, error) {
	l, lok := toFloat(left)
	r, rok := toFloat(right)
	if !lok || !rok {
		return nil, fmt.Errorf("cannot apply %q to %T and %T", op, left, right)
	}
	ints := isInteger(left) && isInteger(right)

	var res float64
	switch op {
	case "+":
		res = l + r
	case "-":
		res = l - r
	case "*":
		res = l * r
	case "/":
		if r == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		res = l / r
		if ints && res != math.Trunc(res) {
			return res, nil
		}
	case "%":
		if r == 0 {
			return nil, fmt.Errorf("modulo by zero")
		}
		res = math.Mod(l, r)
	}

	if ints {
		return int(res), nil
	}
	return res, nil
}

func equals(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if l, ok := toFloat(left); ok {
		if r, ok := toFloat(right); ok {
			return l == r
		}
	}
	lt, rt := reflect.TypeOf(left), reflect.TypeOf(right)
	if lt == rt && lt.Comparable() {
		return left == right
	}
	return reflect.DeepEqual(left, right)
}

func compare(left any, op string, right any) (any, error) {
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			switch op {
			case "<":
				return ls < rs, nil
			case ">":
				return ls > rs, nil
			case "<=":
				return ls <= rs, nil
			default:
				return ls >= rs, nil
			}
		}
	}

	l, lok := toFloat(left)
	r, rok := toFloat(right)
	if !lok || !rok {
		return nil, fmt.Errorf("cannot compare %T and %T", left, right)
	}
	switch op {
	case "<":
		return l < r, nil
	case ">":
		return l > r, nil
	case "<=":
		return l <= r, nil
	default:
		return l >= r, nil
	}
}

func unaryOp(op string, operand any) (any, error) {
	switch op {
	case "!":
		return !Truthy(operand), nil
	case "-", "+":
		f, ok := toFloat(operand)
		if !ok {
			return nil, fmt.Errorf("cannot apply unary %q to %T", op, operand)
		}
		if op == "-" {
			f = -f
		}
		if isInteger(operand) {
			return int(f), nil
		}
		return f, nil
	}
	return nil, fmt.Errorf("unknown unary operator %q", op)
}
