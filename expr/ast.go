package expr

import (
	"fmt"
	"strings"
)

// Node is a parsed expression.
type Node interface {
	String() string
}

// Literal is a constant value.
type Literal struct {
	Value any
}

func (n *Literal) String() string {
	if s, ok := n.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", n.Value)
}

// Identifier is a name resolved against the context.
type Identifier struct {
	Name string
}

func (n *Identifier) String() string { return n.Name }

// This is the evaluation context itself.
type This struct{}

func (n *This) String() string { return "this" }

// ArrayLiteral builds a []any.
type ArrayLiteral struct {
	Elements []Node
}

func (n *ArrayLiteral) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Member is obj.Name.
type Member struct {
	Object Node
	Name   string
}

func (n *Member) String() string { return n.Object.String() + "." + n.Name }

// Index is obj[Index].
type Index struct {
	Object Node
	Index  Node
}

func (n *Index) String() string { return n.Object.String() + "[" + n.Index.String() + "]" }

// Call is Callee(Args...).
type Call struct {
	Callee Node
	Args   []Node
}

func (n *Call) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Unary is Operator Operand.
type Unary struct {
	Operator string
	Operand  Node
}

func (n *Unary) String() string { return "(" + n.Operator + n.Operand.String() + ")" }

// Binary is Left Operator Right.
type Binary struct {
	Left     Node
	Operator string
	Right    Node
}

func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// Conditional is Test ? Then : Else.
type Conditional struct {
	Test Node
	Then Node
	Else Node
}

func (n *Conditional) String() string {
	return "(" + n.Test.String() + " ? " + n.Then.String() + " : " + n.Else.String() + ")"
}
