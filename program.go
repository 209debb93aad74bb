package xexpr

import (
	"strconv"
	"strings"
)

// instr is one instruction of a compiled program.
type instr struct {
	op opcode
	// val is the value of a literal.
	val float64
}

// Program is a compiled expression. A Program is immutable, and it is safe
// to evaluate one concurrently.
type Program struct {
	// code is the postfix instruction stream, ending with opEOF.
	code []instr
	// depth is the greatest stack depth evaluation reaches.
	depth int
}

func newProgram(code []instr) *Program {
	return &Program{code: code, depth: stackdepth(code)}
}

// stackdepth simulates evaluation of code and returns the greatest stack
// depth it reaches. Panics if the code would underflow the stack or finish
// with other than exactly one value.
func stackdepth(code []instr) int {
	d, peak := 0, 0
	for k, in := range code {
		if in.op == opEOF {
			if d != 1 {
				panic("xexpr: inconsistent stack: " + strconv.Itoa(d) + " items at end (bad program?)")
			}
			return peak
		}
		d -= symbols[in.op].argc
		if d < 0 {
			panic("xexpr: stack underflow at instruction " + strconv.Itoa(k) + " (bad program?)")
		}
		d++
		if d > peak {
			peak = d
		}
	}
	panic("xexpr: program has no EOF")
}

// Len returns the number of instructions in the program, not counting the
// terminating EOF.
func (p *Program) Len() int {
	if p == nil || len(p.code) == 0 {
		return 0
	}
	return len(p.code) - 1
}

// Release drops the program's buffers. Evaluating a released program panics.
// It is safe to call Release more than once and on a nil Program.
func (p *Program) Release() {
	if p == nil {
		return
	}
	p.code = nil
	p.depth = 0
}

// String formats the program as its postfix instruction sequence, e.g.
// "5 x 7 * +" for the source "5+x*7". Unary plus and minus appear as pos
// and neg.
func (p *Program) String() string {
	if p == nil || p.code == nil {
		return "<released>"
	}
	var b strings.Builder
	for _, in := range p.code {
		if in.op == opEOF {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if in.op == opNumber {
			b.WriteString(strconv.FormatFloat(in.val, 'g', -1, 64))
			continue
		}
		b.WriteString(symbols[in.op].name)
	}
	return b.String()
}
