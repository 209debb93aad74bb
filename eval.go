package xexpr

import "math"

// Eval evaluates the program with the given value of x. Every operand of
// every instruction is evaluated, including both branches of a conditional
// and both sides of ??, && and ||. Division by zero and other invalid
// operations produce infinities or NaN as IEEE 754 prescribes.
//
// Panics if p is nil or released.
func (p *Program) Eval(x float64) float64 {
	if p == nil || p.code == nil {
		panic("xexpr: Eval on nil or released Program")
	}
	st := newStack(p.depth)
	for _, in := range p.code {
		if in.op == opEOF {
			break
		}
		s := &symbols[in.op]
		a := st.take(s.argc)
		st.push(in.eval(s, a, x))
	}
	return st.result()
}

// eval computes the result of one instruction from its operands.
func (in instr) eval(s *symbol, a []float64, x float64) float64 {
	switch s.cat {
	case Variable:
		return x
	case Literal:
		return in.val
	case Constant:
		return s.value
	case Function:
		return s.fn.call(a)
	}
	switch in.op {
	case opCond:
		if a[0] != 0 {
			return a[1]
		}
		return a[2]
	case opCoalesce:
		if math.IsNaN(a[0]) {
			return a[1]
		}
		return a[0]
	case opLogOr:
		if a[0] != 0 {
			return a[0]
		}
		return a[1]
	case opLogAnd:
		if a[0] != 0 {
			return a[1]
		}
		return a[0]
	case opBitOr:
		return float64(int64(a[0]) | int64(a[1]))
	case opBitXor:
		return float64(int64(a[0]) ^ int64(a[1]))
	case opBitAnd:
		return float64(int64(a[0]) & int64(a[1]))
	case opEq:
		return truth(a[0] == a[1])
	case opNe:
		return truth(a[0] != a[1])
	case opLt:
		return truth(a[0] < a[1])
	case opLe:
		return truth(a[0] <= a[1])
	case opGt:
		return truth(a[0] > a[1])
	case opGe:
		return truth(a[0] >= a[1])
	case opShl:
		return shift(int64(a[0]), int64(a[1]))
	case opShr:
		return shift(int64(a[0]), -int64(a[1]))
	case opAdd:
		return a[0] + a[1]
	case opSub:
		return a[0] - a[1]
	case opMul:
		return a[0] * a[1]
	case opDiv:
		return a[0] / a[1]
	case opMod:
		return math.Mod(a[0], a[1])
	case opLogNot:
		return truth(a[0] == 0)
	case opBitNot:
		return float64(^int64(a[0]))
	case opPos:
		return a[0]
	case opNeg:
		return -a[0]
	}
	panic("xexpr: invalid instruction " + s.name)
}

// shift shifts x left by n bits, or right by -n bits if n is negative.
// Shifting right is arithmetic.
func shift(x, n int64) float64 {
	if n >= 0 {
		return float64(x << uint64(n))
	}
	// -n overflows for the minimum int64, which then shifts by a huge
	// count either way.
	return float64(x >> uint64(-n))
}
