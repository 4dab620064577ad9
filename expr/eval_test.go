package expr

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type item struct {
	Name  string
	Price float64
	Tags  []string
}

type store struct {
	Title   string
	Items   []item
	Count   int
	Enabled bool
	Labels  map[string]string
	clicks  int
}

func (s *store) Greeting(name string) string {
	return "Hello, " + name
}

func (s *store) Total() float64 {
	var sum float64
	for _, it := range s.Items {
		sum += it.Price
	}
	return sum
}

func (s *store) Fail() (string, error) {
	return "", errors.New("backend down")
}

func (s *store) Click() {
	s.clicks++
}

func (s *store) SetCount(n int) {
	s.Count = n
}

func (s *store) Reserve(n uint) {
	s.Count = int(n)
}

func newStore() *store {
	return &store{
		Title: "Shop",
		Items: []item{
			{Name: "apple", Price: 1.5, Tags: []string{"fruit"}},
			{Name: "bread", Price: 2, Tags: []string{"bakery", "fresh"}},
		},
		Count:   2,
		Enabled: true,
		Labels:  map[string]string{"greeting": "hi"},
	}
}

func TestEval_Values(t *testing.T) {
	ev := New(newStore())

	tests := []struct {
		name string
		src  string
		want any
	}{
		{"field", "Title", "Shop"},
		{"lower camel field", "title", "Shop"},
		{"this member", "this.count", 2},
		{"nested index and member", "items[1].name", "bread"},
		{"length pseudo property", "items.length", 2},
		{"map member", "labels.greeting", "hi"},
		{"missing map key", "labels.missing", nil},
		{"method call", "greeting('Ann')", "Hello, Ann"},
		{"method without args", "total()", 3.5},
		{"integer arithmetic", "count * 3 + 1", 7},
		{"integer division stays whole", "count / 2", 1},
		{"fractional division", "3 / 2", 1.5},
		{"modulo", "7 % 4", 3},
		{"string concatenation", "'#' + count", "#2"},
		{"comparison", "count >= 2", true},
		{"string comparison", "'a' < 'b'", true},
		{"strict equality", "title === 'Shop'", true},
		{"inequality", "count != 2", false},
		{"logical and returns operand", "enabled && title", "Shop"},
		{"logical or returns operand", "'' || 'fallback'", "fallback"},
		{"negation", "!enabled", false},
		{"unary minus", "-count", -2},
		{"ternary", "count > 5 ? 'many' : 'few'", "few"},
		{"null literal", "null", nil},
		{"array literal", "[1, 'two']", []any{1, "two"}},
		{"builtin len", "len(items[1].tags)", 2},
		{"builtin upper", "upper(title)", "SHOP"},
		{"builtin join", "join(items[1].tags, '|')", "bakery|fresh"},
		{"parenthesised", "(1 + 2) * 3", 9},
		{"float literal", ".5 + 1", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got, err := ev.Eval(tt.src)

			// Assert
			if err != nil {
				t.Fatalf("Eval(%q) returned error: %v", tt.src, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Eval(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestEval_ShortCircuitSkipsRightOperand(t *testing.T) {
	ev := New(newStore())

	// missing() would fail if evaluated
	got, err := ev.Eval("false && missing()")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != false {
		t.Errorf("Expected false, got %v", got)
	}
}

func TestEval_MethodValueStaysBound(t *testing.T) {
	// Arrange
	s := newStore()
	ev := New(s)

	// Act
	v, err := ev.Evaluate("{click}", nil)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	fn, ok := v.(func())
	if !ok {
		t.Fatalf("Expected func(), got %T", v)
	}
	fn()
	fn()

	// Assert
	if s.clicks != 2 {
		t.Errorf("Expected 2 clicks recorded on the context, got %d", s.clicks)
	}
}

func TestBind_CurriesContextArgument(t *testing.T) {
	s := newStore()
	handler := func(st *store, suffix string) string {
		return st.Title + suffix
	}

	bound, ok := Bind(handler, s).(func(string) string)
	if !ok {
		t.Fatalf("Expected func(string) string, got %T", Bind(handler, s))
	}
	if got := bound("!"); got != "Shop!" {
		t.Errorf("Expected 'Shop!', got '%s'", got)
	}
}

func TestBind_LeavesUnrelatedValues(t *testing.T) {
	s := newStore()

	if got := Bind("text", s); got != "text" {
		t.Errorf("Expected non-function to pass through, got %v", got)
	}
	fn := func(n int) int { return n }
	if _, ok := Bind(fn, s).(func(int) int); !ok {
		t.Errorf("Expected function without context parameter to be unchanged")
	}
}

func TestEvaluate_UndelimitedReturnsFallback(t *testing.T) {
	ev := New(newStore())

	got, err := ev.Evaluate("title", "fallback")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "fallback" {
		t.Errorf("Expected fallback, got %v", got)
	}

	got, err = ev.Evaluate("{title}", "fallback")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "Shop" {
		t.Errorf("Expected 'Shop', got %v", got)
	}
}

func TestEval_Errors(t *testing.T) {
	ev := New(newStore())

	tests := []struct {
		name      string
		src       string
		wantParse bool
		contains  string
	}{
		{"undefined identifier", "nope", false, "nope is not defined"},
		{"unknown member", "items[0].weight", false, "no field or method"},
		{"index out of range", "items[5]", false, "out of range"},
		{"not callable", "title()", false, "is not a function"},
		{"method error", "fail()", false, "backend down"},
		{"wrong arity", "greeting()", false, "expects 1 arguments"},
		{"division by zero", "count / 0", false, "division by zero"},
		{"nil member", "labels.missing.deeper", false, "of nil"},
		{"trailing tokens", "title title", true, "unexpected trailing token"},
		{"unterminated string", "'abc", true, "unterminated string"},
		{"missing ternary branch", "enabled ? 1", true, "expected \":\""},
		{"bad character", "title # 1", true, "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ev.Eval(tt.src)
			if err == nil {
				t.Fatalf("Expected error for %q, got nil", tt.src)
			}

			var pe *ParseError
			var ee *EvaluationError
			if tt.wantParse && !errors.As(err, &pe) {
				t.Errorf("Expected *ParseError, got %T", err)
			}
			if !tt.wantParse && !errors.As(err, &ee) {
				t.Errorf("Expected *EvaluationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error containing %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

func TestEval_FloatArgumentToIntParameter(t *testing.T) {
	// Arrange
	s := newStore()
	ev := New(s)

	// Act
	_, err := ev.Eval("setCount(3.0)")

	// Assert
	if err != nil {
		t.Fatalf("Expected whole float to convert, got %v", err)
	}
	if s.Count != 3 {
		t.Errorf("Expected Count 3, got %d", s.Count)
	}

	rejected := []struct {
		src      string
		contains string
	}{
		{"setCount(2.5)", "not an integer"},
		{"setCount(1e300)", "not an integer"},
		{"reserve(0 - 1)", "negative"},
	}
	for _, tt := range rejected {
		if _, err := ev.Eval(tt.src); err == nil {
			t.Errorf("Expected %s to be rejected", tt.src)
		} else if !strings.Contains(err.Error(), tt.contains) {
			t.Errorf("Expected %q error for %s, got %q", tt.contains, tt.src, err.Error())
		}
	}
	if s.Count != 3 {
		t.Errorf("Expected Count to stay 3, got %d", s.Count)
	}
}

func TestEval_NilContextUsesBuiltinsOnly(t *testing.T) {
	ev := New(nil)

	got, err := ev.Eval("upper('x') + len([1, 2])")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "X2" {
		t.Errorf("Expected 'X2', got %v", got)
	}

	if _, err := ev.Eval("this.title"); err == nil {
		t.Errorf("Expected error reading a member of a nil context")
	}
}

func TestInterpolate(t *testing.T) {
	ev := New(newStore())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholders", "plain text", "plain text"},
		{"single", "Title: ${title}", "Title: Shop"},
		{"several", "${count} of ${items.length}", "2 of 2"},
		{"braces inside strings", "${'{' + title + '}'}", "{Shop}"},
		{"nil formats empty", "[${labels.missing}]", "[]"},
		{"dollar without brace", "costs $5", "costs $5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ev.Interpolate(tt.in)
			if err != nil {
				t.Fatalf("Interpolate(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestInterpolate_Unclosed(t *testing.T) {
	ev := New(newStore())

	_, err := ev.Interpolate("${title")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected *ParseError, got %v", err)
	}
}

func TestEval_ConcurrentUse(t *testing.T) {
	ev := New(newStore())
	done := make(chan error, 8)

	for i := 0; i < 8; i++ {
		go func(n int) {
			got, err := ev.Eval("count + 1")
			if err == nil && got != 3 {
				err = fmt.Errorf("goroutine %d: expected 3, got %v", n, got)
			}
			done <- err
		}(i)
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Error(err)
		}
	}
}
