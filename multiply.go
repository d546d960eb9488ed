package goalgebra

import "fmt"

// ============================================================
// Multiply: n-ary product
// ============================================================

type Multiply struct{ Operands []Expr }

// MulOf returns an unsimplified product. The operand slice is copied.
func MulOf(ops ...Expr) *Multiply { return &Multiply{Operands: append([]Expr(nil), ops...)} }

// flatten inlines nested products, depth first, preserving operand order.
func (m *Multiply) flatten() []Expr {
	flat := make([]Expr, 0, len(m.Operands))
	for _, op := range m.Operands {
		if inner, ok := op.(*Multiply); ok {
			flat = append(flat, inner.flatten()...)
		} else {
			flat = append(flat, op)
		}
	}
	return flat
}

// Simplify flattens the product and returns 0 as soon as any flattened
// operand is the constant 0, before the other operands are simplified.
// Otherwise operands are simplified, ones are dropped, and a product made
// only of constants folds to a bare *Constant. Constants mixed with
// variables are left unfolded.
func (m *Multiply) Simplify() Expr {
	flat := m.flatten()
	for _, op := range flat {
		if constantValue(op, 0) {
			return C(0)
		}
	}

	ops := make([]Expr, 0, len(flat))
	for _, op := range flat {
		s := op.Simplify()
		if inner, ok := s.(*Multiply); ok {
			ops = append(ops, inner.Operands...)
			continue
		}
		if c, ok := s.(*Constant); ok {
			if c.IsZero() {
				return C(0)
			}
			if c.IsOne() {
				continue
			}
		}
		ops = append(ops, s)
	}

	if allConstants(ops) {
		product := 1.0
		for _, op := range ops {
			product *= op.(*Constant).Value
		}
		return C(product)
	}

	if len(ops) == 1 {
		return ops[0]
	}
	return &Multiply{Operands: ops}
}

func allConstants(ops []Expr) bool {
	for _, op := range ops {
		if _, ok := op.(*Constant); !ok {
			return false
		}
	}
	return true
}

func (m *Multiply) Eval() (Expr, error) {
	return nil, fmt.Errorf("eval multiply: %w", ErrNotImplemented)
}

func (m *Multiply) String() string {
	if len(m.Operands) == 0 {
		return "1"
	}
	return renderOperands(m.Operands, " ", String, "(", ")")
}

func (m *Multiply) LaTeX() string {
	if len(m.Operands) == 0 {
		return "1"
	}
	return renderOperands(m.Operands, ` \cdot `, LaTeX, `\left(`, `\right)`)
}

func (m *Multiply) Debug(indent int) string { return debugNode("Multiply", m.Operands, indent) }

func (m *Multiply) Equal(other Expr) bool {
	o, ok := other.(*Multiply)
	return ok && equalOperands(m.Operands, o.Operands)
}

func (m *Multiply) Substitute(name string, value Expr) Expr {
	return &Multiply{Operands: substituteAll(m.Operands, name, value)}
}

func (m *Multiply) exprType() string { return "multiply" }
func (m *Multiply) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "multiply", "operands": operandsJSON(m.Operands)}
}
