package xexpr

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// opcode identifies a symbol. It indexes the symbols table, and it is the
// instruction kind in compiled programs. Opcodes are assigned in the order
// variables, constants, functions, operators, then the literal and EOF
// sentinels, but membership in a category is always decided by the
// symbol's cat field.
type opcode uint8

const (
	// variables
	opX opcode = iota

	// constants
	opE
	opPI
	opTAU
	opPHI
	opGOLDEN
	opIGOLDEN
	opSILVER
	opPLASTIC
	opGAMMA
	opEULER
	opMAGIC
	opLN2
	opLN10
	opLOG2E
	opLOG10E
	opSQRT2
	opSQRT3
	opISQRT2
	opDEG
	opRAD

	// functions
	opAbs
	opSign
	opFloor
	opCeil
	opRound
	opTrunc
	opFrac
	opSqrt
	opCbrt
	opRoot
	opExp
	opExp2
	opLn
	opLog
	opLog2
	opLog10
	opPow
	opSin
	opCos
	opTan
	opAsin
	opAcos
	opAtan
	opAtan2
	opSinh
	opCosh
	opTanh
	opAsinh
	opAcosh
	opAtanh
	opHypot
	opMin
	opMax
	opClamp
	opQuad
	opNQuad
	opTri
	opApprox
	opIsNaN

	// punctuation
	opOpen
	opClose
	opComma
	opColon

	// operators
	opCond
	opCoalesce
	opLogOr
	opLogAnd
	opBitOr
	opBitXor
	opBitAnd
	opEq
	opNe
	opLt
	opLe
	opGt
	opGe
	opShl
	opShr
	opAdd
	opSub
	opMul
	opDiv
	opMod
	opLogNot
	opBitNot
	opPos
	opNeg

	// sentinels
	opNumber
	opEOF

	opCount
)

// Category classifies symbols.
type Category int8

const (
	// Variable is the free variable x.
	Variable Category = iota
	// Constant is a named number.
	Constant
	// Function is a named function called with a parenthesized argument
	// list of fixed length.
	Function
	// Operator is a unary, binary, or ternary operator.
	Operator
	// Punctuation is a delimiter that the parser consumes but never emits.
	Punctuation
	// Literal is a numeric literal in the source.
	Literal
	// End is the end of the input.
	End
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Category

// symbol describes one opcode.
type symbol struct {
	// name is the spelling in source, or a descriptive name for symbols
	// that cannot be spelled.
	name string
	cat  Category
	// argc is the number of operands the instruction consumes.
	argc int
	// prec is the precedence of binary and ternary operators. Higher binds
	// more tightly.
	prec int
	// hidden symbols are internal rewrites that Symbols does not list.
	hidden bool
	// value is the value of a constant.
	value float64
	// fn implements a function.
	fn  function
	doc string
}

func variable(name, doc string) symbol {
	return symbol{name: name, cat: Variable, doc: doc}
}

func constant(name string, v float64, doc string) symbol {
	return symbol{name: name, cat: Constant, value: v, doc: doc}
}

func fn(name string, f function, doc string) symbol {
	return symbol{name: name, cat: Function, argc: f.arity(), fn: f, doc: doc}
}

func punct(name string) symbol {
	return symbol{name: name, cat: Punctuation}
}

func oper(name string, argc, prec int, doc string) symbol {
	return symbol{name: name, cat: Operator, argc: argc, prec: prec, doc: doc}
}

// symbols is the symbol table. It is never modified after initialization.
var symbols = [opCount]symbol{
	opX: variable("x", "input value, usually in [0, 1]"),

	opE:       constant("E", kE, "base of the natural logarithm"),
	opPI:      constant("PI", kPI, "half turn in radians"),
	opTAU:     constant("TAU", kTAU, "full turn in radians"),
	opPHI:     constant("PHI", kPHI, "golden ratio"),
	opGOLDEN:  constant("GOLDEN", kPHI, "golden ratio"),
	opIGOLDEN: constant("IGOLDEN", kIGOLDEN, "inverse golden ratio"),
	opSILVER:  constant("SILVER", kSILVER, "silver ratio"),
	opPLASTIC: constant("PLASTIC", kPLASTIC, "real root of x^3 = x + 1"),
	opGAMMA:   constant("GAMMA", kGAMMA, "Euler-Mascheroni constant"),
	opEULER:   constant("EULER", kGAMMA, "Euler-Mascheroni constant"),
	opMAGIC:   constant("MAGIC", kMAGIC, "magic angle in radians"),
	opLN2:     constant("LN2", kLN2, "ln(2)"),
	opLN10:    constant("LN10", kLN10, "ln(10)"),
	opLOG2E:   constant("LOG2E", kLOG2E, "log2(E)"),
	opLOG10E:  constant("LOG10E", kLOG10E, "log10(E)"),
	opSQRT2:   constant("SQRT2", kSQRT2, "sqrt(2)"),
	opSQRT3:   constant("SQRT3", kSQRT3, "sqrt(3)"),
	opISQRT2:  constant("ISQRT2", kISQRT2, "1/sqrt(2)"),
	opDEG:     constant("DEG", kDEG, "radians per degree"),
	opRAD:     constant("RAD", kRAD, "degrees per radian"),

	opAbs:    fn("abs", monadic(math.Abs), "absolute value"),
	opSign:   fn("sign", monadic(sign), "-1, 0, or 1 by the sign of a"),
	opFloor:  fn("floor", monadic(math.Floor), "round toward -inf"),
	opCeil:   fn("ceil", monadic(math.Ceil), "round toward +inf"),
	opRound:  fn("round", monadic(math.Round), "round half away from zero"),
	opTrunc:  fn("trunc", monadic(math.Trunc), "round toward zero"),
	opFrac:   fn("frac", monadic(frac), "fractional part"),
	opSqrt:   fn("sqrt", monadic(math.Sqrt), "square root"),
	opCbrt:   fn("cbrt", monadic(math.Cbrt), "cube root"),
	opRoot:   fn("root", dyadic(root), "root(a, n): nth root of a"),
	opExp:    fn("exp", monadic(math.Exp), "E^a"),
	opExp2:   fn("exp2", monadic(math.Exp2), "2^a"),
	opLn:     fn("ln", monadic(math.Log), "natural logarithm"),
	opLog:    fn("log", dyadic(logb), "log(a, b): logarithm of a in base b"),
	opLog2:   fn("log2", monadic(math.Log2), "base 2 logarithm"),
	opLog10:  fn("log10", monadic(math.Log10), "base 10 logarithm"),
	opPow:    fn("pow", dyadic(math.Pow), "pow(a, b): a raised to b"),
	opSin:    fn("sin", monadic(math.Sin), "sine"),
	opCos:    fn("cos", monadic(math.Cos), "cosine"),
	opTan:    fn("tan", monadic(math.Tan), "tangent"),
	opAsin:   fn("asin", monadic(math.Asin), "inverse sine"),
	opAcos:   fn("acos", monadic(math.Acos), "inverse cosine"),
	opAtan:   fn("atan", monadic(math.Atan), "inverse tangent"),
	opAtan2:  fn("atan2", dyadic(math.Atan2), "atan2(y, x): angle of the point (x, y)"),
	opSinh:   fn("sinh", monadic(math.Sinh), "hyperbolic sine"),
	opCosh:   fn("cosh", monadic(math.Cosh), "hyperbolic cosine"),
	opTanh:   fn("tanh", monadic(math.Tanh), "hyperbolic tangent"),
	opAsinh:  fn("asinh", monadic(math.Asinh), "inverse hyperbolic sine"),
	opAcosh:  fn("acosh", monadic(math.Acosh), "inverse hyperbolic cosine"),
	opAtanh:  fn("atanh", monadic(math.Atanh), "inverse hyperbolic tangent"),
	opHypot:  fn("hypot", dyadic(math.Hypot), "hypot(a, b): sqrt(a*a + b*b)"),
	opMin:    fn("min", dyadic(math.Min), "min(a, b): lesser of a and b"),
	opMax:    fn("max", dyadic(math.Max), "max(a, b): greater of a and b"),
	opClamp:  fn("clamp", triadic(clamp), "clamp(a, lo, hi): a limited to [lo, hi]"),
	opQuad:   fn("quad", triadic(Quadratic), "quad(a, b, c): + root of a*x*x + b*x + c"),
	opNQuad:  fn("nquad", triadic(NQuadratic), "nquad(a, b, c): - root of a*x*x + b*x + c"),
	opTri:    fn("tri", monadic(TriangleWave), "triangle wave, 0 at integers, 1 at halves"),
	opApprox: fn("approx", dyadic(approx), "approx(a, b): 1 if a and b are nearly equal"),
	opIsNaN:  fn("isnan", monadic(isnan), "1 if a is not a number"),

	opOpen:  punct("("),
	opClose: punct(")"),
	opComma: punct(","),
	opColon: punct(":"),

	opCond:     oper("?", 3, 1, "a ? b : c: b if a is nonzero, else c"),
	opCoalesce: oper("??", 2, 2, "a ?? b: a unless it is NaN, else b"),
	opLogOr:    oper("||", 2, 3, "a if a is nonzero, else b"),
	opLogAnd:   oper("&&", 2, 4, "b if a is nonzero, else a"),
	opBitOr:    oper("|", 2, 5, "bitwise or"),
	opBitXor:   oper("^", 2, 6, "bitwise exclusive or"),
	opBitAnd:   oper("&", 2, 7, "bitwise and"),
	opEq:       oper("==", 2, 8, "equal"),
	opNe:       oper("!=", 2, 8, "not equal"),
	opLt:       oper("<", 2, 9, "less than"),
	opLe:       oper("<=", 2, 9, "less than or equal"),
	opGt:       oper(">", 2, 9, "greater than"),
	opGe:       oper(">=", 2, 9, "greater than or equal"),
	opShl:      oper("<<", 2, 10, "shift left"),
	opShr:      oper(">>", 2, 10, "shift right"),
	opAdd:      oper("+", 2, 11, "add, or unary plus"),
	opSub:      oper("-", 2, 11, "subtract, or negate"),
	opMul:      oper("*", 2, 12, "multiply"),
	opDiv:      oper("/", 2, 12, "divide"),
	opMod:      oper("%", 2, 12, "remainder with the sign of a"),
	opLogNot:   oper("!", 1, 0, "1 if a is zero, else 0"),
	opBitNot:   oper("~", 1, 0, "bitwise complement"),
	opPos:      {name: "pos", cat: Operator, argc: 1, hidden: true},
	opNeg:      {name: "neg", cat: Operator, argc: 1, hidden: true},

	opNumber: {name: "NUMBER", cat: Literal, hidden: true},
	opEOF:    {name: "EOF", cat: End, hidden: true},
}

// idents and opers map source spellings to opcodes for the lexer.
var idents, opers = spellings()

func spellings() (map[string]opcode, map[string]opcode) {
	id := make(map[string]opcode)
	op := make(map[string]opcode)
	for k := range symbols {
		s := &symbols[k]
		if s.hidden {
			continue
		}
		switch s.cat {
		case Variable, Constant, Function:
			id[s.name] = opcode(k)
		case Operator, Punctuation:
			op[s.name] = opcode(k)
		}
	}
	return id, op
}

// Symbol describes a name or operator recognized in expressions.
type Symbol struct {
	Name     string
	Category Category
	// Arity is the number of arguments of a function or operands of an
	// operator.
	Arity int
	// Prec is the precedence of binary and ternary operators. Higher
	// binds more tightly.
	Prec int
	Doc  string
}

// Symbols returns the recognized names and operators in the order
// variables, constants, functions, then operators and punctuation.
func Symbols() []Symbol {
	r := make([]Symbol, 0, len(symbols))
	for _, s := range symbols {
		if s.hidden {
			continue
		}
		r = append(r, Symbol{Name: s.name, Category: s.cat, Arity: s.argc, Prec: s.prec, Doc: s.doc})
	}
	return r
}

// constPrec is the precision in bits used to derive constants before
// rounding them to float64.
const constPrec = 128

func bignum(x float64) *big.Float {
	return new(big.Float).SetPrec(constPrec).SetFloat64(x)
}

// derive computes a constant at constPrec bits and rounds it.
func derive(f func(z *big.Float) *big.Float) float64 {
	r, _ := f(new(big.Float).SetPrec(constPrec)).Float64()
	return r
}

// digits rounds a decimal expansion.
func digits(s string) float64 {
	z, _, err := big.ParseFloat(s, 10, constPrec, big.ToNearestEven)
	if err != nil {
		panic("xexpr: bad constant " + s + ": " + err.Error())
	}
	r, _ := z.Float64()
	return r
}

func sqrtof(z *big.Float, x float64) *big.Float {
	return z.Sqrt(bignum(x))
}

var (
	kE = derive(func(z *big.Float) *big.Float {
		return bigfloat.Exp(z, bignum(1))
	})
	kPI  = derive(bigfloat.Pi)
	kTAU = derive(func(z *big.Float) *big.Float {
		return z.Mul(bigfloat.Pi(z), bignum(2))
	})
	kPHI = derive(func(z *big.Float) *big.Float {
		sqrtof(z, 5)
		z.Add(z, bignum(1))
		return z.Quo(z, bignum(2))
	})
	kIGOLDEN = derive(func(z *big.Float) *big.Float {
		sqrtof(z, 5)
		z.Sub(z, bignum(1))
		return z.Quo(z, bignum(2))
	})
	kSILVER = derive(func(z *big.Float) *big.Float {
		return z.Add(sqrtof(z, 2), bignum(1))
	})
	kPLASTIC = digits("1.3247179572447460259609088544780973407344")
	kGAMMA   = digits("0.5772156649015328606065120900824024310422")
	kMAGIC   = digits("0.9553166181245092781638571025157577542434")
	kLN2     = derive(func(z *big.Float) *big.Float {
		return bigfloat.Log(z, bignum(2))
	})
	kLN10 = derive(func(z *big.Float) *big.Float {
		return bigfloat.Log(z, bignum(10))
	})
	kLOG2E = derive(func(z *big.Float) *big.Float {
		return z.Quo(bignum(1), bigfloat.Log(z, bignum(2)))
	})
	kLOG10E = derive(func(z *big.Float) *big.Float {
		return z.Quo(bignum(1), bigfloat.Log(z, bignum(10)))
	})
	kSQRT2 = derive(func(z *big.Float) *big.Float {
		return sqrtof(z, 2)
	})
	kSQRT3 = derive(func(z *big.Float) *big.Float {
		return sqrtof(z, 3)
	})
	kISQRT2 = derive(func(z *big.Float) *big.Float {
		return z.Quo(bignum(1), sqrtof(z, 2))
	})
	kDEG = derive(func(z *big.Float) *big.Float {
		return z.Quo(bigfloat.Pi(z), bignum(180))
	})
	kRAD = derive(func(z *big.Float) *big.Float {
		return z.Quo(bignum(180), bigfloat.Pi(z))
	})
)
