package goalgebra_test

import (
	"errors"
	"testing"

	goalgebra "github.com/njchilds90/goalgebra"
)

var (
	c = goalgebra.C
	v = goalgebra.V
)

// ============================================================
// Constant / Variable tests
// ============================================================

func TestConstant_String(t *testing.T) {
	cases := map[float64]string{3: "3", -1: "-1", 0.5: "0.5", 1e21: "1000000000000000000000"}
	for in, want := range cases {
		if got := c(in).String(); got != want {
			t.Errorf("want %s, got %s", want, got)
		}
	}
}

func TestConstant_SimplifyIsCopy(t *testing.T) {
	k := c(7)
	s := k.Simplify()
	if !s.Equal(k) {
		t.Errorf("want 7, got %s", s)
	}
	if s == goalgebra.Expr(k) {
		t.Error("Simplify should return a new node")
	}
}

func TestVariable_PassThrough(t *testing.T) {
	x := v("x")
	if got := x.Simplify().String(); got != "x" {
		t.Errorf("want x, got %s", got)
	}
	e, err := x.Eval()
	if err != nil || !e.Equal(x) {
		t.Errorf("Variable.Eval() should return itself, got %v, %v", e, err)
	}
}

func TestConstant_Eval(t *testing.T) {
	e, err := c(4).Eval()
	if err != nil || !e.Equal(c(4)) {
		t.Errorf("Constant.Eval() should return itself, got %v, %v", e, err)
	}
}

func TestEval_CompositeNotImplemented(t *testing.T) {
	for _, e := range []goalgebra.Expr{goalgebra.AddOf(c(1), c(2)), goalgebra.MulOf(c(1), c(2))} {
		_, err := e.Eval()
		if !errors.Is(err, goalgebra.ErrNotImplemented) {
			t.Errorf("%s: want ErrNotImplemented, got %v", goalgebra.Kind(e), err)
		}
	}
}

// ============================================================
// Add tests
// ============================================================

func TestAdd_FoldWithZero(t *testing.T) {
	got := goalgebra.AddOf(c(1), c(0), c(2)).Simplify()
	if !got.Equal(c(3)) {
		t.Errorf("want 3, got %s", goalgebra.Debug(got))
	}
}

func TestAdd_FoldNoZero(t *testing.T) {
	got := goalgebra.AddOf(c(1), c(2), c(3)).Simplify()
	if !got.Equal(c(6)) {
		t.Errorf("want 6, got %s", got)
	}
}

func TestAdd_NestedFlatten(t *testing.T) {
	got := goalgebra.AddOf(c(3), goalgebra.AddOf(c(1), c(2))).Simplify()
	if !got.Equal(c(6)) {
		t.Errorf("want 6, got %s", got)
	}
}

func TestAdd_NegativeConstant(t *testing.T) {
	got := goalgebra.AddOf(c(5), c(-3)).Simplify()
	if got.String() != "2" {
		t.Errorf("want 2, got %s", got)
	}
}

func TestAdd_ConstantAppendedAfterVariables(t *testing.T) {
	got := goalgebra.AddOf(c(1), v("y"), c(2), v("x")).Simplify()
	want := goalgebra.AddOf(v("y"), v("x"), c(3))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestAdd_ZeroDropped(t *testing.T) {
	got := goalgebra.AddOf(v("x"), c(0)).Simplify()
	if !got.Equal(v("x")) {
		t.Errorf("want x, got %s", got)
	}
	got = goalgebra.AddOf(v("x"), c(2), c(-2), v("y")).Simplify()
	want := goalgebra.AddOf(v("x"), v("y"))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestAdd_AllZero(t *testing.T) {
	got := goalgebra.AddOf(c(0), goalgebra.AddOf(c(0))).Simplify()
	if !got.Equal(c(0)) {
		t.Errorf("want 0, got %s", got)
	}
}

func TestAdd_Empty(t *testing.T) {
	if got := goalgebra.AddOf().Simplify(); !got.Equal(c(0)) {
		t.Errorf("empty Add should simplify to 0, got %s", got)
	}
}

func TestAdd_LikeTermsNotCombined(t *testing.T) {
	got := goalgebra.AddOf(v("x"), v("x")).Simplify()
	if got.String() != "x + x" {
		t.Errorf("want 'x + x', got %s", got)
	}
}

func TestAdd_SplicesSimplifiedSum(t *testing.T) {
	// 1*(y+z) simplifies to a sum, which joins the outer operand list.
	e := goalgebra.AddOf(v("x"), goalgebra.MulOf(c(1), goalgebra.AddOf(v("y"), v("z"))))
	got := e.Simplify()
	want := goalgebra.AddOf(v("x"), v("y"), v("z"))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestAdd_DoesNotMutate(t *testing.T) {
	e := goalgebra.AddOf(c(1), goalgebra.AddOf(v("x"), c(0)))
	before := goalgebra.Debug(e)
	_ = e.Simplify()
	if after := goalgebra.Debug(e); after != before {
		t.Errorf("Simplify mutated its receiver:\n%s\n%s", before, after)
	}
}

// ============================================================
// Multiply tests
// ============================================================

func TestMultiply_ZeroAndOne(t *testing.T) {
	got := goalgebra.MulOf(c(1), c(0), c(2)).Simplify()
	if !got.Equal(c(0)) {
		t.Errorf("want 0, got %s", got)
	}
}

func TestMultiply_Fold(t *testing.T) {
	got := goalgebra.MulOf(c(2), c(3), c(4)).Simplify()
	if !got.Equal(c(24)) {
		t.Errorf("want 24, got %s", got)
	}
}

func TestMultiply_NestedFlattenEquivalence(t *testing.T) {
	nested := goalgebra.MulOf(c(4), goalgebra.MulOf(c(2), c(3))).Simplify()
	flat := goalgebra.MulOf(c(4), c(2), c(3)).Simplify()
	if !nested.Equal(flat) || !nested.Equal(c(24)) {
		t.Errorf("want 24 for both, got %s and %s", nested, flat)
	}
}

func TestMultiply_NestedAdd(t *testing.T) {
	got := goalgebra.MulOf(c(4), goalgebra.AddOf(c(2), c(3))).Simplify()
	if !got.Equal(c(20)) {
		t.Errorf("want 20, got %s", got)
	}
}

func TestMultiply_ZeroShortCircuitNested(t *testing.T) {
	e := goalgebra.MulOf(v("x"), goalgebra.MulOf(v("y"), c(0)), goalgebra.AddOf(v("z"), c(1)))
	if got := e.Simplify(); !got.Equal(c(0)) {
		t.Errorf("want 0, got %s", got)
	}
}

func TestMultiply_OperandSimplifiesToZero(t *testing.T) {
	e := goalgebra.MulOf(v("x"), goalgebra.AddOf(c(1), c(-1)))
	if got := e.Simplify(); !got.Equal(c(0)) {
		t.Errorf("want 0, got %s", got)
	}
}

func TestMultiply_OneElide(t *testing.T) {
	got := goalgebra.MulOf(c(1), v("x")).Simplify()
	if !got.Equal(v("x")) {
		t.Errorf("1*x should be x, got %s", got)
	}
}

func TestMultiply_MixedNotFolded(t *testing.T) {
	got := goalgebra.MulOf(c(2), v("x"), c(3)).Simplify()
	want := goalgebra.MulOf(c(2), v("x"), c(3))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
	if got.String() != "2 x 3" {
		t.Errorf("want '2 x 3', got %s", got)
	}
}

func TestMultiply_Empty(t *testing.T) {
	if got := goalgebra.MulOf().Simplify(); !got.Equal(c(1)) {
		t.Errorf("empty Multiply should simplify to 1, got %s", got)
	}
	if got := goalgebra.MulOf(c(1), c(1)).Simplify(); !got.Equal(c(1)) {
		t.Errorf("1*1 should simplify to 1, got %s", got)
	}
}

// ============================================================
// Rendering tests
// ============================================================

func TestString_Parenthesization(t *testing.T) {
	e := goalgebra.AddOf(v("x"), goalgebra.MulOf(c(2), goalgebra.AddOf(v("y"), c(1))), c(3))
	want := "x + (2 (y + 1)) + 3"
	if got := e.String(); got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestLaTeX(t *testing.T) {
	e := goalgebra.MulOf(v("x"), goalgebra.AddOf(v("y"), c(1)))
	want := `x \cdot \left(y + 1\right)`
	if got := e.LaTeX(); got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestDebug(t *testing.T) {
	e := goalgebra.AddOf(c(3), goalgebra.MulOf(c(-1), v("x")))
	want := "Add {\n" +
		"  Constant { value: 3 }\n" +
		"  Multiply {\n" +
		"    Constant { value: -1 }\n" +
		"    Variable { name: x }\n" +
		"  }\n" +
		"}\n"
	if got := goalgebra.Debug(e); got != want {
		t.Errorf("want:\n%s\ngot:\n%s", want, got)
	}
}

// ============================================================
// Idempotence
// ============================================================

func TestSimplify_Idempotent(t *testing.T) {
	inputs := []string{
		"3", "x", "3+2*4", "x+0", "x*1*y", "(x+1)*(y+0)", "x-y", "3-2",
		"x*(y*(z*2))", "(x+(y+(z+1)))+2", "x*0+y", "1*(x+y)+z", "(1-1)*x + 2*3*x",
	}
	for _, src := range inputs {
		once := goalgebra.MustParse(src).Simplify()
		twice := once.Simplify()
		if once.String() != twice.String() {
			t.Errorf("%s: simplify not idempotent: %s vs %s", src, once, twice)
		}
		if !once.Equal(twice) {
			t.Errorf("%s: simplify not structurally idempotent:\n%s\n%s", src, goalgebra.Debug(once), goalgebra.Debug(twice))
		}
	}
}

// ============================================================
// Substitute / Variables / Clone tests
// ============================================================

func TestSubstitute(t *testing.T) {
	e := goalgebra.MustParse("x*y + x")
	got := goalgebra.Substitute(e, "x", c(2)).Simplify()
	want := goalgebra.AddOf(goalgebra.MulOf(c(2), v("y")), c(2))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
	if goalgebra.Variables(e)[0] != "x" {
		t.Error("Substitute must not modify the original tree")
	}
}

func TestVariables(t *testing.T) {
	got := goalgebra.Variables(goalgebra.MustParse("z + x*y + x*(z+3)"))
	want := []string{"x", "y", "z"}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("want %v, got %v", want, got)
		}
	}
	if n := len(goalgebra.Variables(c(1))); n != 0 {
		t.Errorf("constant has no variables, got %d", n)
	}
}

func TestClone(t *testing.T) {
	e := goalgebra.MustParse("x*(y+1)")
	cp := goalgebra.Clone(e)
	if !cp.Equal(e) {
		t.Errorf("clone differs: %s vs %s", cp, e)
	}
	cp.(*goalgebra.Multiply).Operands[0] = v("z")
	if e.String() != "x (y + 1)" {
		t.Errorf("clone shares operands with the original: %s", e)
	}
}

// ============================================================
// Equal tests
// ============================================================

func TestEqual(t *testing.T) {
	if !c(3).Equal(c(3)) || c(3).Equal(c(4)) {
		t.Error("constant equality broken")
	}
	if !v("x").Equal(v("x")) || v("x").Equal(v("y")) {
		t.Error("variable equality broken")
	}
	if c(1).Equal(v("x")) {
		t.Error("C(1) should not equal V(x)")
	}
	if goalgebra.AddOf(c(1), v("x")).Equal(goalgebra.MulOf(c(1), v("x"))) {
		t.Error("Add should not equal Multiply with the same operands")
	}
	if goalgebra.AddOf(c(1), v("x")).Equal(goalgebra.AddOf(v("x"), c(1))) {
		t.Error("operand order is significant")
	}
}
