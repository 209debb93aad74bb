package xexpr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/xexpr"
)

func compile(t *testing.T, src string) *xexpr.Program {
	t.Helper()
	p, err := xexpr.Compile(src, xexpr.HandleErrors(xexpr.Discard, nil))
	require.NoError(t, err, "compiling %q", src)
	return p
}

// same reports whether two floats are identical, treating NaNs as equal and
// distinguishing signed zeros.
func same(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b && math.Signbit(a) == math.Signbit(b)
}

func TestEval(t *testing.T) {
	// Go folds constant expressions exactly, so evaluate these at run time.
	phi, two, five := math.Phi, 2.0, 5.0
	// root and cbrt results depend on pow, so compute the expectation the
	// same way evaluation does.
	rootcmp := 44.0
	if math.Pow(7*7*7, 1.0/3) != 7 {
		rootcmp = math.Cbrt(7 * 7 * 7)
	}
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"x", "x", 0.5},
		{"inv-phi", "1/PHI", 1 / phi},
		{"phi", "PHI", math.Phi},
		{"mul", "55*5", 275},
		{"plusplus", "1++2e3", 2001},
		{"cond", "1?2:3", 2},
		{"cond-prec", "1+2?3+4:5+6", 7},
		{"cond-nest", "0?1:2 ? 3?4:5 : 6?7:8", 4},
		{"muladd", "5+x*7", 8.5},
		{"addmul", "5*x+7", 9.5},
		{"signs", "+5+-3--3++3-+3", 5},
		{"unaries", "~-!-3", -1},
		{"log", "log((5 * 9),(4 + 7))", math.Log(45) / math.Log(11)},
		{"log-cond", "log(5 ? 9 : 8,4 + 7)", math.Log(9) / math.Log(11)},
		{"abs", "abs(-2+5/3)", math.Abs(-two + five/3)},
		{"and-zero", "0 && x", 0},
		{"or-tau", "TAU || x", 2 * math.Pi},
		{"neg-zero", "-0", math.Copysign(0, -1)},
		{"div-zero", "1/0", math.Inf(1)},
		{"coalesce", "atanh(5)??4", 4},
		{"cmp-shift", "5>4>=3>>2", 1},
		{"shift-cmp", "5>>3>=2", 0},
		{"cmp-shl", "5<4<=3<<2", 1},
		{"eq-chain", "5==4!=3==!2", 0},
		{"logic", "6^5 && 4&3 || 2|1", 3},
		{"logic2", "7 || 6|5 && 4&3", 7},
		{"root2", "root(5*5, 2)", 5},
		{"root3", "root(7*7*7, 3) == 7 ? 44 : cbrt(7*7*7)", rootcmp},
		{"root4", "root(9*9*9*9, 4)", math.Pow(9*9*9*9, 1.0/4)},
		{"hex", "0x10 + x", 16.5},
		{"empty", "", 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := compile(t, c.src)
			got := p.Eval(0.5)
			assert.True(t, same(c.want, got), "%q: want %v, got %v", c.src, c.want, got)
		})
	}
}

func TestEvalOperators(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		src  string
		x    float64
		want float64
	}{
		{"x + 1", 2, 3},
		{"x - 1", 2, 1},
		{"x * 3", 2, 6},
		{"x / 4", 2, 0.5},
		{"0 / 0", 0, nan},
		{"-1 / 0", 0, math.Inf(-1)},
		{"x / 0", -0.5, math.Inf(-1)},
		{"7 % 3", 0, 1},
		{"-7 % 3", 0, -1},
		{"7.5 % 2", 0, 1.5},
		{"5 % 0", 0, nan},
		{"x == 2", 2, 1},
		{"x != 2", 2, 0},
		{"x < 2", 1, 1},
		{"x <= 2", 2, 1},
		{"x > 2", 2, 0},
		{"x >= 2", 2, 1},
		{"0/0 == 0/0", 0, 0},
		{"0/0 != 0/0", 0, 1},
		{"1 << 3", 0, 8},
		{"-16 >> 2", 0, -4},
		{"1 << -1", 0, 0},
		{"8 >> -1", 0, 16},
		{"1 << 64", 0, 0},
		{"-1 >> 70", 0, -1},
		{"x << 1", 0.5, 0},
		{"x << 1", 2.9, 4},
		{"5 & 3", 0, 1},
		{"5 | 3", 0, 7},
		{"5 ^ 3", 0, 6},
		{"-x & 7", 2.5, 6},
		{"~0", 0, -1},
		{"~x", 5.7, -6},
		{"!0", 0, 1},
		{"!x", 3, 0},
		{"!(0/0)", 0, 0},
		{"-x", 3, -3},
		{"+x", 3, 3},
		{"x ? 1 : 2", 0, 2},
		{"x ? 1 : 2", -1, 1},
		{"0/0 ? 1 : 2", 0, 1},
		{"x ?? 3", 1, 1},
		{"0/0 ?? 3", 0, 3},
		{"0/0 ?? 0/0", 0, nan},
		{"x && 5", 0, 0},
		{"x && 5", 2, 5},
		{"0/0 && 5", 0, 5},
		{"x || 5", 0, 5},
		{"x || 5", 2, 2},
	}
	for _, c := range cases {
		p := compile(t, c.src)
		got := p.Eval(c.x)
		assert.True(t, same(c.want, got), "%q at %v: want %v, got %v", c.src, c.x, c.want, got)
	}
}

func TestEvalPure(t *testing.T) {
	p := compile(t, "sin(x*TAU) * exp(-x) + (x > 0.5 ? x : 1 - x)")
	for _, x := range []float64{-1, 0, 0.25, 0.5, 0.75, 1, 1e300, math.Inf(1)} {
		first := p.Eval(x)
		for i := 0; i < 10; i++ {
			assert.True(t, same(first, p.Eval(x)), "x=%v", x)
		}
	}
}

func TestEvalEmptyIsIdentity(t *testing.T) {
	a := compile(t, "")
	b := compile(t, "x")
	assert.Equal(t, b.String(), a.String())
	for _, x := range []float64{-2, 0, 0.5, 1, math.Inf(-1), math.NaN()} {
		assert.True(t, same(b.Eval(x), a.Eval(x)), "x=%v", x)
		assert.True(t, same(x, a.Eval(x)), "x=%v", x)
	}
}

func TestEvalNoShortCircuit(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"0 && 1/x", 0},
		{"0 && log(x, x)", 0},
		{"1 || -1/x", 1},
		{"1 ? 2 : 1/x", 2},
		{"0 ? 1/x : 2", 2},
		{"3 ?? 1/x", 3},
	}
	for _, c := range cases {
		p := compile(t, c.src)
		// Every instruction runs, including the division by zero.
		assert.NotPanics(t, func() {
			assert.Equal(t, c.want, p.Eval(0), c.src)
		})
	}
}

func TestEvalConcurrent(t *testing.T) {
	p := compile(t, "quad(1, x, -1) * tri(x*3) + (x < 0.5 ? sqrt(x) : x*x)")
	const n = 1000
	want := make([]float64, n)
	for i := range want {
		want[i] = p.Eval(float64(i) / n)
	}
	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := 0; i < n; i++ {
				if got := p.Eval(float64(i) / n); !same(want[i], got) {
					t.Errorf("x=%v: want %v, got %v", float64(i)/n, want[i], got)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestRelease(t *testing.T) {
	p := compile(t, "x+1")
	assert.Equal(t, 3, p.Len())
	p.Release()
	p.Release()
	assert.Equal(t, 0, p.Len())
	assert.Panics(t, func() { p.Eval(1) })

	var nilp *xexpr.Program
	assert.NotPanics(t, nilp.Release)
	assert.Panics(t, func() { nilp.Eval(1) })
}
