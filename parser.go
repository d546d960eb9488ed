package goalgebra

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ============================================================
// Grammar
//
//	expression := term (('+' term) | ('-' term))*
//	term       := factor ('*' factor)*
//	factor     := '(' expression ')' | variable | number
//	variable   := 'x' | 'y' | 'z'
//	number     := digit+
// ============================================================

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Variable", Pattern: `[xyz]`},
	{Name: "Punct", Pattern: `[-+*()]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

type expressionNode struct {
	Head *termNode    `parser:"@@"`
	Tail []*sumOpNode `parser:"@@*"`
}

type sumOpNode struct {
	Op   string    `parser:"@('+' | '-')"`
	Term *termNode `parser:"@@"`
}

type termNode struct {
	Head *factorNode   `parser:"@@"`
	Tail []*factorNode `parser:"('*' @@)*"`
}

type factorNode struct {
	Pos lexer.Position

	Group    *expressionNode `parser:"  '(' @@ ')'"`
	Variable *string         `parser:"| @Variable"`
	Number   *string         `parser:"| @Number"`
}

var exprParser = participle.MustBuild[expressionNode](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
)

// ============================================================
// Parse
// ============================================================

// Parse parses src into an unsimplified expression tree.
//
// Binary operators fold to the left, so "1+2+3" is Add(Add(1, 2), 3).
// Subtraction is desugared: "a-b" becomes Add(a, Add(0, Multiply(-1, b))).
// Any input that does not match the grammar in full, including trailing
// tokens after a valid prefix, is reported as a *SyntaxError.
func Parse(src string) (Expr, error) {
	tree, err := exprParser.ParseString("", src)
	if err != nil {
		return nil, newSyntaxError(src, err)
	}
	e, err := tree.lower(src)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("goalgebra: MustParse(%q): %v", src, err))
	}
	return e
}

func newSyntaxError(src string, err error) *SyntaxError {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &SyntaxError{
			Line:   max(pos.Line, 1),
			Column: max(pos.Column, 1),
			Offset: pos.Offset,
			Msg:    perr.Message(),
			Source: src,
		}
	}
	return &SyntaxError{Line: 1, Column: 1, Msg: err.Error(), Source: src}
}

// negate builds the subtraction operand 0 + (-1)*e.
func negate(e Expr) Expr {
	return &Add{Operands: []Expr{C(0), &Multiply{Operands: []Expr{C(-1), e}}}}
}

func (n *expressionNode) lower(src string) (Expr, error) {
	acc, err := n.Head.lower(src)
	if err != nil {
		return nil, err
	}
	for _, op := range n.Tail {
		rhs, err := op.Term.lower(src)
		if err != nil {
			return nil, err
		}
		if op.Op == "-" {
			rhs = negate(rhs)
		}
		acc = &Add{Operands: []Expr{acc, rhs}}
	}
	return acc, nil
}

func (n *termNode) lower(src string) (Expr, error) {
	acc, err := n.Head.lower(src)
	if err != nil {
		return nil, err
	}
	for _, f := range n.Tail {
		rhs, err := f.lower(src)
		if err != nil {
			return nil, err
		}
		acc = &Multiply{Operands: []Expr{acc, rhs}}
	}
	return acc, nil
}

func (n *factorNode) lower(src string) (Expr, error) {
	switch {
	case n.Group != nil:
		return n.Group.lower(src)
	case n.Variable != nil:
		return V(*n.Variable), nil
	case n.Number != nil:
		// Literals beyond float64 range become +Inf.
		v, err := strconv.ParseFloat(*n.Number, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &SyntaxError{
				Line:   n.Pos.Line,
				Column: n.Pos.Column,
				Offset: n.Pos.Offset,
				Msg:    fmt.Sprintf("invalid number %s", *n.Number),
				Source: src,
			}
		}
		return C(v), nil
	}
	return nil, &SyntaxError{Line: n.Pos.Line, Column: n.Pos.Column, Offset: n.Pos.Offset, Msg: "empty factor", Source: src}
}
