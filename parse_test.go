package xexpr

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() CompileOption {
	return HandleErrors(Discard, nil)
}

func TestParsePostfix(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"var", "x", "x"},
		{"empty", "", "x"},
		{"num", "55", "55"},
		{"const", "PI", "PI"},
		{"mul", "55*5", "55 5 *"},
		{"prec", "5+x*7", "5 x 7 * +"},
		{"prec-rev", "5*x+7", "5 x * 7 +"},
		{"left-assoc", "1-2-3", "1 2 - 3 -"},
		{"parens", "1-(2-3)", "1 2 3 - -"},
		{"pos", "+x", "x pos"},
		{"neg", "-x", "x neg"},
		{"unary-chain", "~-!-3", "3 neg ! neg ~"},
		{"unary-binds-tight", "-x*2", "x neg 2 *"},
		{"plusplus", "1++2e3", "1 2000 pos +"},
		{"cond", "1?2:3", "1 2 3 ?"},
		{"cond-prec", "1+2?3+4:5+6", "1 2 + 3 4 + 5 6 + ?"},
		{"cond-right", "0?1:2 ? 3?4:5 : 6?7:8", "0 1 2 3 4 5 ? 6 7 8 ? ? ?"},
		{"cond-then-full", "x ? 1 ?? 2 : 3", "x 1 2 ?? 3 ?"},
		{"coalesce", "atanh(5)??4", "5 atanh 4 ??"},
		{"coalesce-cond", "x ?? 1 ? 2 : 3", "x 1 ?? 2 3 ?"},
		{"call1", "sin(x)", "x sin"},
		{"call2", "log((5 * 9),(4 + 7))", "5 9 * 4 7 + log"},
		{"call3", "clamp(x, 0, 1)", "x 0 1 clamp"},
		{"call-nested", "max(min(x, 1), 0)", "x 1 min 0 max"},
		{"cmp-shift", "5>4>=3>>2", "5 4 > 3 2 >> >="},
		{"shift-cmp", "5>>3>=2", "5 3 >> 2 >="},
		{"cmp-shl", "5<4<=3<<2", "5 4 < 3 2 << <="},
		{"eq-chain", "5==4!=3==!2", "5 4 == 3 != 2 ! =="},
		{"logic", "6^5 && 4&3 || 2|1", "6 5 ^ 4 3 & && 2 1 | ||"},
		{"logic2", "7 || 6|5 && 4&3", "7 6 5 | 4 3 & && ||"},
		{"mod", "x%2*3", "x 2 % 3 *"},
		{"hex", "0xff&x", "255 x &"},
		{"spaces", " \t1\n+\r2 ", "1 2 +"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Compile(c.src, quiet())
			require.NoError(t, err)
			assert.Equal(t, c.want, p.String())
			assert.Equal(t, len(strings.Fields(c.want)), p.Len())
			src := c.src
			if src == "" {
				src = "x"
			}
			assert.LessOrEqual(t, len(p.code), len(src)+1)
			assert.Equal(t, len(src)+1, cap(p.code))
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		col  int
		// err is a zero value of the expected error type.
		err    error
		detail string
	}{
		{"dangling", "1 + ", 5, &SyntaxError{}, "unexpected 'EOF'"},
		{"blank", "   ", 4, &SyntaxError{}, "unexpected 'EOF'"},
		{"trailing", "1 2", 3, &SyntaxError{}, "unexpected '2', expected 'EOF'"},
		{"close", "x)", 2, &SyntaxError{}, "unexpected ')', expected 'EOF'"},
		{"open", "(x", 3, &SyntaxError{}, "unexpected 'EOF', expected ')'"},
		{"empty-parens", "()", 2, &SyntaxError{}, "unexpected ')'"},
		{"binary-start", "*x", 1, &SyntaxError{}, "unexpected '*'"},
		{"colon", "x:1", 2, &SyntaxError{}, "unexpected ':', expected 'EOF'"},
		{"cond-no-colon", "x?1", 4, &SyntaxError{}, "unexpected 'EOF', expected ':'"},
		{"cond-comma", "x?1,2", 4, &SyntaxError{}, "unexpected ',', expected ':'"},
		{"comma", "1,2", 2, &SyntaxError{}, "unexpected ',', expected 'EOF'"},
		{"func-no-parens", "sin x", 5, &SyntaxError{}, "unexpected 'x', expected '('"},
		{"func-bare", "sin", 4, &SyntaxError{}, "unexpected 'EOF', expected '('"},
		{"func-unclosed", "sin(x", 6, &SyntaxError{}, "unexpected 'EOF', expected ')'"},
		{"func-trailing-comma", "log(x,)", 7, &SyntaxError{}, "unexpected ')'"},
		{"too-few", "log(x)", 7, &CallError{}, "function log takes 2 args, found 1"},
		{"too-many", "sin(x, 1)", 10, &CallError{}, "function sin takes 1 args, found 2"},
		{"none", "sin()", 6, &CallError{}, "function sin takes 1 args, found 0"},
		{"lex", "x + y", 5, &LexError{}, "unknown identifier 'y'"},
		{"lex-number", "2*.", 3, &LexError{}, "invalid number"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var msgs []string
			h := func(msg string, ctx interface{}) {
				msgs = append(msgs, msg)
				assert.Equal(t, "ctx", ctx)
			}
			p, err := Compile(c.src, HandleErrors(h, "ctx"))
			require.Error(t, err)
			assert.Nil(t, p)
			assert.IsType(t, c.err, err)
			var ie InputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, c.col, ie.Pos())
			assert.Equal(t, c.detail, ie.Detail())
			assert.Equal(t, strconv.Itoa(c.col)+": "+c.detail, err.Error())
			assert.Equal(t, []string{"Syntax error at " + err.Error()}, msgs)
			assert.True(t, strings.HasPrefix(msgs[0], "Syntax error at "), msgs[0])
		})
	}
}

func TestParseTooLong(t *testing.T) {
	defer func(n int) { maxProgramLen = n }(maxProgramLen)
	maxProgramLen = 8
	called := false
	h := func(string, interface{}) { called = true }

	p, err := Compile("1+2+3+4", HandleErrors(h, nil))
	assert.ErrorIs(t, err, ErrTooLong)
	assert.Nil(t, p)
	assert.False(t, called)

	p, err = Compile("1+2+3+", HandleErrors(h, nil))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTooLong)
	assert.Nil(t, p)
	assert.True(t, called)

	p, err = Compile("1+2+3", HandleErrors(h, nil))
	require.NoError(t, err)
	assert.Equal(t, 6.0, p.Eval(0))
}

func TestStackBalance(t *testing.T) {
	srcs := []string{
		"x",
		"55*5",
		"1+2?3+4:5+6",
		"0?1:2 ? 3?4:5 : 6?7:8",
		"~-!-3",
		"log(5 ? 9 : 8,4 + 7)",
		"root(7*7*7, 3) == 7 ? 44 : cbrt(7*7*7)",
		"quad(1, x, -1) + nquad(x, 2, clamp(x, -1, 1))",
		"((((((((x))))))))",
		"-(-(-(-(-(-x)))))",
		"1+(2+(3+(4+(5+(6+(7+(8+x)))))))",
		"max(max(max(1, 2), max(3, 4)), max(max(5, 6), max(7, x)))",
	}
	for _, src := range srcs {
		p, err := Compile(src, quiet())
		require.NoError(t, err, src)
		d, peak := 0, 0
		for _, in := range p.code[:p.Len()] {
			d -= symbols[in.op].argc
			require.GreaterOrEqual(t, d, 0, "%s: underflow", src)
			d++
			if d > peak {
				peak = d
			}
		}
		assert.Equal(t, 1, d, src)
		assert.Equal(t, peak, p.depth, src)
		assert.Equal(t, opEOF, p.code[len(p.code)-1].op, src)
	}
}

func TestStackDepthPanics(t *testing.T) {
	assert.Panics(t, func() {
		stackdepth([]instr{{op: opAdd}, {op: opEOF}})
	})
	assert.Panics(t, func() {
		stackdepth([]instr{{op: opX}, {op: opX}, {op: opEOF}})
	})
	assert.Panics(t, func() {
		stackdepth([]instr{{op: opX}})
	})
	assert.Equal(t, 2, stackdepth([]instr{{op: opX}, {op: opX}, {op: opAdd}, {op: opEOF}}))
}

func TestMustCompile(t *testing.T) {
	assert.Equal(t, "x 2 *", MustCompile("x*2").String())
	assert.Panics(t, func() { MustCompile("x*") })
}
