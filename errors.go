package goalgebra

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotImplemented is returned (wrapped) by Eval on composite nodes.
var ErrNotImplemented = errors.New("not implemented")

// SyntaxError reports source text that does not match the expression
// grammar, including unconsumed trailing input. Line and Column are 1-based;
// Offset is a byte offset into Source.
type SyntaxError struct {
	Line   int
	Column int
	Offset int
	Msg    string
	Source string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Snippet renders the offending source line with a caret under the column:
//
//	syntax error at 1:3: unexpected token "*"
//	  1 | 3+*4
//	    |   ^
func (e *SyntaxError) Snippet() string {
	lines := strings.Split(e.Source, "\n")
	line := clamp(e.Line, 1, len(lines))
	text := lines[line-1]
	col := clamp(e.Column, 1, len(text)+1)

	num := fmt.Sprintf("%d", line)
	gutter := strings.Repeat(" ", len(num))

	var b strings.Builder
	b.WriteString(e.Error())
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s | %s\n", num, text)
	fmt.Fprintf(&b, "  %s | %s^", gutter, strings.Repeat(" ", col-1))
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsSyntaxError reports whether err is, or wraps, a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
