// Package goalgebra parses small arithmetic expressions and simplifies them.
//
// Design goals:
//   - Immutable expression trees; every rewrite returns a new tree
//   - A closed set of node kinds: Constant, Variable, Add, Multiply
//   - Documented, partial simplification (flattening, identities, constant folding)
//   - Text output for a Typst-style typesetter, plus LaTeX and JSON
package goalgebra

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-set/v2"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is an expression tree node. The set of implementations is closed:
// *Constant, *Variable, *Add and *Multiply.
type Expr interface {
	// Eval reduces the expression to a terminal value. Only terminals
	// support it; composites return an error wrapping ErrNotImplemented.
	Eval() (Expr, error)
	// Simplify returns a new, simplified tree.
	Simplify() Expr
	// String renders the expression for a Typst-style typesetter:
	// products are juxtaposed, nested operators are parenthesized.
	String() string
	LaTeX() string
	// Debug returns an indented structural dump, one node per line.
	Debug(indent int) string
	Equal(other Expr) bool
	// Substitute replaces every Variable called name with value.
	// The result is not simplified.
	Substitute(name string, value Expr) Expr
	exprType() string
	toJSON() map[string]interface{}
}

// ============================================================
// Constant: numeric literal
// ============================================================

type Constant struct{ Value float64 }

// C returns a constant node.
func C(v float64) *Constant { return &Constant{Value: v} }

func (c *Constant) Eval() (Expr, error)            { return C(c.Value), nil }
func (c *Constant) Simplify() Expr                 { return C(c.Value) }
func (c *Constant) String() string                 { return formatFloat(c.Value) }
func (c *Constant) LaTeX() string                  { return formatFloat(c.Value) }
func (c *Constant) Substitute(string, Expr) Expr   { return C(c.Value) }
func (c *Constant) exprType() string               { return "constant" }
func (c *Constant) toJSON() map[string]interface{} { return map[string]interface{}{"type": "constant", "value": c.Value} }

func (c *Constant) Equal(other Expr) bool {
	o, ok := other.(*Constant)
	return ok && c.Value == o.Value
}

func (c *Constant) Debug(indent int) string {
	return fmt.Sprintf("%sConstant { value: %s }\n", pad(indent), formatFloat(c.Value))
}

// IsZero reports whether the constant is 0.
func (c *Constant) IsZero() bool { return c.Value == 0 }

// IsOne reports whether the constant is 1.
func (c *Constant) IsOne() bool { return c.Value == 1 }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// ============================================================
// Variable: named unknown
// ============================================================

type Variable struct{ Name string }

// V returns a variable node.
func V(name string) *Variable { return &Variable{Name: name} }

func (v *Variable) Eval() (Expr, error)            { return V(v.Name), nil }
func (v *Variable) Simplify() Expr                 { return V(v.Name) }
func (v *Variable) String() string                 { return v.Name }
func (v *Variable) LaTeX() string                  { return v.Name }
func (v *Variable) exprType() string               { return "variable" }
func (v *Variable) toJSON() map[string]interface{} { return map[string]interface{}{"type": "variable", "name": v.Name} }

func (v *Variable) Equal(other Expr) bool {
	o, ok := other.(*Variable)
	return ok && v.Name == o.Name
}

func (v *Variable) Debug(indent int) string {
	return fmt.Sprintf("%sVariable { name: %s }\n", pad(indent), v.Name)
}

func (v *Variable) Substitute(name string, value Expr) Expr {
	if v.Name == name {
		return Clone(value)
	}
	return V(v.Name)
}

// ============================================================
// Shared helpers for the n-ary nodes
// ============================================================

func pad(indent int) string { return strings.Repeat(" ", indent) }

// isComposite reports whether e needs parentheses when it appears as an operand.
func isComposite(e Expr) bool {
	switch e.(type) {
	case *Add, *Multiply:
		return true
	}
	return false
}

func renderOperands(ops []Expr, sep string, render func(Expr) string, lparen, rparen string) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		if isComposite(op) {
			parts[i] = lparen + render(op) + rparen
		} else {
			parts[i] = render(op)
		}
	}
	return strings.Join(parts, sep)
}

func debugNode(name string, ops []Expr, indent int) string {
	var b strings.Builder
	b.WriteString(pad(indent) + name + " {\n")
	for _, op := range ops {
		b.WriteString(op.Debug(indent + 2))
	}
	b.WriteString(pad(indent) + "}\n")
	return b.String()
}

func equalOperands(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func substituteAll(ops []Expr, name string, value Expr) []Expr {
	out := make([]Expr, len(ops))
	for i, op := range ops {
		out[i] = op.Substitute(name, value)
	}
	return out
}

func operandsJSON(ops []Expr) []map[string]interface{} {
	out := make([]map[string]interface{}, len(ops))
	for i, op := range ops {
		out[i] = op.toJSON()
	}
	return out
}

func constantValue(e Expr, v float64) bool {
	c, ok := e.(*Constant)
	return ok && c.Value == v
}

// ============================================================
// Top-level convenience functions
// ============================================================

func Simplify(e Expr) Expr      { return e.Simplify() }
func String(e Expr) string      { return e.String() }
func LaTeX(e Expr) string       { return e.LaTeX() }
func Debug(e Expr) string       { return e.Debug(0) }
func Eval(e Expr) (Expr, error) { return e.Eval() }
func Equal(a, b Expr) bool      { return a.Equal(b) }
func Kind(e Expr) string        { return e.exprType() }

func Substitute(e Expr, name string, value Expr) Expr {
	return e.Substitute(name, value)
}

// Clone returns a deep copy of e.
func Clone(e Expr) Expr {
	switch v := e.(type) {
	case *Constant:
		return C(v.Value)
	case *Variable:
		return V(v.Name)
	case *Add:
		return &Add{Operands: cloneAll(v.Operands)}
	case *Multiply:
		return &Multiply{Operands: cloneAll(v.Operands)}
	}
	panic(fmt.Sprintf("goalgebra: unknown expression %T", e))
}

func cloneAll(ops []Expr) []Expr {
	out := make([]Expr, len(ops))
	for i, op := range ops {
		out[i] = Clone(op)
	}
	return out
}

// Variables returns the distinct variable names in e, sorted.
func Variables(e Expr) []string {
	names := set.New[string](4)
	collectVariables(e, names)
	out := names.Slice()
	sort.Strings(out)
	return out
}

func collectVariables(e Expr, names *set.Set[string]) {
	switch v := e.(type) {
	case *Variable:
		names.Insert(v.Name)
	case *Add:
		for _, op := range v.Operands {
			collectVariables(op, names)
		}
	case *Multiply:
		for _, op := range v.Operands {
			collectVariables(op, names)
		}
	}
}
