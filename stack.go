package xexpr

// stack is an evaluation stack with a fixed capacity.
type stack struct {
	v []float64
}

func newStack(n int) stack {
	return stack{v: make([]float64, 0, n)}
}

// push adds a value to the stack. Panics if the stack is full.
func (s *stack) push(x float64) {
	if len(s.v) == cap(s.v) {
		panic("xexpr: stack overflow")
	}
	s.v = append(s.v, x)
}

// take removes the top n values and returns them, deepest first. The
// returned slice is only valid until the next push.
func (s *stack) take(n int) []float64 {
	k := len(s.v) - n
	if k < 0 {
		panic("xexpr: stack underflow")
	}
	a := s.v[k:len(s.v)]
	s.v = s.v[:k]
	return a
}

// result returns the only value on the stack. Panics if there is not
// exactly one.
func (s *stack) result() float64 {
	if len(s.v) != 1 {
		panic("xexpr: inconsistent stack at end of evaluation")
	}
	return s.v[0]
}
