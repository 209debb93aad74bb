package xexpr

import "math"

// Quadratic returns the + root of a*x*x + b*x + c. If a is 0, the result is
// the linear root -c/b, or NaN if b is also 0. A negative discriminant gives
// NaN.
func Quadratic(a, b, c float64) float64 {
	if a == 0 {
		return linroot(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return math.NaN()
	}
	return (-b + math.Sqrt(d)) / (2 * a)
}

// NQuadratic returns the - root of a*x*x + b*x + c, with the same degenerate
// cases as Quadratic.
func NQuadratic(a, b, c float64) float64 {
	if a == 0 {
		return linroot(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return math.NaN()
	}
	return (-b - math.Sqrt(d)) / (2 * a)
}

func linroot(b, c float64) float64 {
	if b == 0 {
		return math.NaN()
	}
	return -c / b
}

// TriangleWave maps the real line onto [0, 1] with period 1. It is 0 at
// integers and 1 at half-integers.
func TriangleWave(x float64) float64 {
	f := 2 * (x - math.Floor(x))
	if f <= 1 {
		return f
	}
	return 2 - f
}

// ApproxCutoff is the smallest ratio of the lesser to the greater magnitude
// at which Approx considers two numbers equal. Doubles carry 15 to 17
// significant digits; the cutoff keeps about half of them.
const ApproxCutoff = 0.9999999

// Approx reports whether a and b are equal to about seven significant digits.
// Numbers of different signs are never approximately equal, however small.
func Approx(a, b float64) bool {
	da, db := math.Abs(a), math.Abs(b)
	same := (da == a) == (db == b)
	if da > db {
		da, db = db, da
	}
	// min/max >= cutoff, without the division.
	return same && da >= db*ApproxCutoff
}
