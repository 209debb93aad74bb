// Package xexpr compiles and evaluates numeric expressions in one variable.
//
// The language looks like C arithmetic over float64 with a single free
// variable, x. "x*x*(3-2*x)" is a smoothstep, "sin(x*PI)" is half a sine
// wave, and "x < 0.5 ? 2*x : 1" is piecewise. Constants are uppercase, like
// PI and PHI; functions are lowercase and take a fixed number of arguments,
// like log(a, b). There is a conditional operator ?:, a NaN-coalescing
// operator ??, and bitwise operators that work on the integer parts of their
// operands. Symbols lists everything the language recognizes.
//
// Compile once, then evaluate the program for as many values of x as you
// need:
//
//	p, err := xexpr.Compile("x*x*(3-2*x)")
//	if err != nil {
//		// ...
//	}
//	for i := 0; i < 256; i++ {
//		y := p.Eval(float64(i) / 255)
//		// ...
//	}
//
// Programs are flat postfix instruction streams without jumps, so every
// operand of every operator is always evaluated. Evaluation cannot fail; it
// produces infinities and NaN as IEEE 754 does.
package xexpr
