package goalgebra

import "fmt"

// ============================================================
// Add: n-ary sum
// ============================================================

type Add struct{ Operands []Expr }

// AddOf returns an unsimplified sum. The operand slice is copied.
func AddOf(ops ...Expr) *Add { return &Add{Operands: append([]Expr(nil), ops...)} }

// flatten inlines nested sums, depth first, preserving operand order.
func (a *Add) flatten() []Expr {
	flat := make([]Expr, 0, len(a.Operands))
	for _, op := range a.Operands {
		if inner, ok := op.(*Add); ok {
			flat = append(flat, inner.flatten()...)
		} else {
			flat = append(flat, op)
		}
	}
	return flat
}

// Simplify flattens the sum, simplifies each operand, removes zeros and
// folds every constant into a single trailing term. Like variable terms
// are not combined.
//
// A result with one operand left is returned unwrapped, so a sum of
// constants simplifies to a bare *Constant.
func (a *Add) Simplify() Expr {
	ops := make([]Expr, 0, len(a.Operands))
	for _, op := range a.flatten() {
		s := op.Simplify()
		if inner, ok := s.(*Add); ok {
			ops = append(ops, inner.Operands...)
		} else {
			ops = append(ops, s)
		}
	}

	sum := 0.0
	folded := false
	terms := make([]Expr, 0, len(ops)+1)
	for _, op := range ops {
		c, ok := op.(*Constant)
		if !ok {
			terms = append(terms, op)
			continue
		}
		if c.IsZero() {
			continue
		}
		sum += c.Value
		folded = true
	}
	if folded && (sum != 0 || len(terms) == 0) {
		terms = append(terms, C(sum))
	}

	switch len(terms) {
	case 0:
		return C(0)
	case 1:
		return terms[0]
	}
	return &Add{Operands: terms}
}

func (a *Add) Eval() (Expr, error) {
	return nil, fmt.Errorf("eval add: %w", ErrNotImplemented)
}

func (a *Add) String() string {
	if len(a.Operands) == 0 {
		return "0"
	}
	return renderOperands(a.Operands, " + ", String, "(", ")")
}

func (a *Add) LaTeX() string {
	if len(a.Operands) == 0 {
		return "0"
	}
	return renderOperands(a.Operands, " + ", LaTeX, `\left(`, `\right)`)
}

func (a *Add) Debug(indent int) string { return debugNode("Add", a.Operands, indent) }

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	return ok && equalOperands(a.Operands, o.Operands)
}

func (a *Add) Substitute(name string, value Expr) Expr {
	return &Add{Operands: substituteAll(a.Operands, name, value)}
}

func (a *Add) exprType() string { return "add" }
func (a *Add) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "add", "operands": operandsJSON(a.Operands)}
}
