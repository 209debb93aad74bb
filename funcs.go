package xexpr

import "math"

// function is a built-in function from reals to reals. Its instruction
// consumes exactly arity stack values.
type function interface {
	// call evaluates the function. a has exactly arity elements, in source
	// order. call must not retain a.
	call(a []float64) float64
	arity() int
}

type monadic func(float64) float64

func (f monadic) call(a []float64) float64 { return f(a[0]) }
func (monadic) arity() int                 { return 1 }

type dyadic func(a, b float64) float64

func (f dyadic) call(a []float64) float64 { return f(a[0], a[1]) }
func (dyadic) arity() int                 { return 2 }

type triadic func(a, b, c float64) float64

func (f triadic) call(a []float64) float64 { return f(a[0], a[1], a[2]) }
func (triadic) arity() int                 { return 3 }

// truth converts a Go boolean to the language's 1 or 0.
func truth(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// sign keeps zeros and NaN as they are.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

func frac(x float64) float64 {
	_, f := math.Modf(x)
	return f
}

func root(x, n float64) float64 {
	return math.Pow(x, 1/n)
}

func logb(x, b float64) float64 {
	return math.Log(x) / math.Log(b)
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

func approx(a, b float64) float64 {
	return truth(Approx(a, b))
}

func isnan(x float64) float64 {
	return truth(math.IsNaN(x))
}
