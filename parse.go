package xexpr

import (
	"errors"
	"math"
)

// primary  = NUMBER | CONST | VAR | Call | '(' level(0) ')' | unary primary
// Call     = FUNC '(' [ level(0) { ',' level(0) } ] ')'
// unary    = '!' | '~' | '+' | '-'
// level(n) = primary { BINOP level(prec(BINOP)+1) | '?' level(0) ':' level(prec('?')) }
//            where prec(BINOP) >= n
// parse    = level(0) EOF

// MaxProgramLen is the largest number of instructions a program may hold.
// A source compiles to at most one instruction per byte plus the terminating
// EOF, so sources of MaxProgramLen-1 bytes or more are rejected.
const MaxProgramLen = math.MaxInt32 / 16

// maxProgramLen is MaxProgramLen, except in tests.
var maxProgramLen = MaxProgramLen

// parser holds the state of one compile.
type parser struct {
	scan *lexer
	// tok is the current token.
	tok lexToken
	// code is the output. Its capacity is fixed before parsing.
	code []instr
}

// Compile compiles an expression in x. An empty source compiles the same as
// "x". If the source is invalid, Compile reports a diagnostic to the error
// handler and returns an InputError. If the source is too long, the result
// is ErrTooLong and nothing is reported.
func Compile(src string, opts ...CompileOption) (*Program, error) {
	var c compilectx
	for _, opt := range opts {
		c = opt.compileOption(c)
	}
	if src == "" {
		src = "x"
	}
	n := len(src) + 1
	if n >= maxProgramLen {
		return nil, ErrTooLong
	}
	p := parser{
		scan: lex(src),
		code: make([]instr, 0, n),
	}
	if err := parse(&p); err != nil {
		var ie InputError
		if errors.As(err, &ie) {
			c.report(ie)
		}
		return nil, err
	}
	return newProgram(p.code), nil
}

// MustCompile is like Compile but panics if the source is invalid. Nothing
// is reported to error handlers.
func MustCompile(src string) *Program {
	p, err := Compile(src, HandleErrors(Discard, nil))
	if err != nil {
		panic("xexpr: compiling " + src + ": " + err.Error())
	}
	return p
}

// parse parses an entire source.
func parse(p *parser) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := parselevel(p, 0); err != nil {
		return err
	}
	if err := p.require(opEOF); err != nil {
		return err
	}
	p.emit(instr{op: opEOF})
	return nil
}

// advance scans the next token.
func (p *parser) advance() error {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// require checks that the current token is op and advances past it.
func (p *parser) require(op opcode) error {
	if p.tok.op != op {
		return &SyntaxError{Col: p.tok.pos, Got: tokname(p.tok), Want: symbols[op].name}
	}
	// Never scan past EOF.
	if op == opEOF {
		return nil
	}
	return p.advance()
}

// emit appends an instruction to the program.
func (p *parser) emit(in instr) {
	if len(p.code) == cap(p.code) {
		panic("xexpr: program overflow emitting " + symbols[in.op].name)
	}
	p.code = append(p.code, in)
}

// parselevel parses a primary followed by any binary or ternary operators
// with precedence at least prec.
func parselevel(p *parser, prec int) error {
	if err := parseprimary(p); err != nil {
		return err
	}
	for {
		op := p.tok.op
		s := &symbols[op]
		if s.cat != Operator || s.argc < 2 || s.prec < prec {
			return nil
		}
		if err := p.advance(); err != nil {
			return err
		}
		if op == opCond {
			if err := parselevel(p, 0); err != nil {
				return err
			}
			if err := p.require(opColon); err != nil {
				return err
			}
			// Right-associative.
			if err := parselevel(p, s.prec); err != nil {
				return err
			}
		} else {
			// Left-associative.
			if err := parselevel(p, s.prec+1); err != nil {
				return err
			}
		}
		p.emit(instr{op: op})
	}
}

// parseprimary parses an operand: a literal, name, call, parenthesized
// expression, or unary operator applied to a primary.
func parseprimary(p *parser) error {
	tok := p.tok
	switch symbols[tok.op].cat {
	case Literal, Constant, Variable:
		p.emit(instr{op: tok.op, val: tok.val})
		return p.advance()
	case Function:
		return parsecall(p, tok)
	}
	switch tok.op {
	case opOpen:
		if err := p.advance(); err != nil {
			return err
		}
		if err := parselevel(p, 0); err != nil {
			return err
		}
		return p.require(opClose)
	case opLogNot, opBitNot, opAdd, opSub:
		op := unop(tok.op)
		if err := p.advance(); err != nil {
			return err
		}
		if err := parseprimary(p); err != nil {
			return err
		}
		p.emit(instr{op: op})
		return nil
	}
	return &SyntaxError{Col: tok.pos, Got: tokname(tok)}
}

// parsecall parses the argument list of a call to the function fn, which is
// the current token.
func parsecall(p *parser, fn lexToken) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.require(opOpen); err != nil {
		return err
	}
	argc := 0
	if p.tok.op != opClose {
		if err := parselevel(p, 0); err != nil {
			return err
		}
		argc++
		for p.tok.op == opComma {
			if err := p.advance(); err != nil {
				return err
			}
			if err := parselevel(p, 0); err != nil {
				return err
			}
			argc++
		}
	}
	if err := p.require(opClose); err != nil {
		return err
	}
	s := &symbols[fn.op]
	if argc != s.argc {
		return &CallError{Col: p.tok.pos, Func: s.name, Want: s.argc, Got: argc}
	}
	p.emit(instr{op: fn.op})
	return nil
}

// unop gets the instruction for a unary operator token.
func unop(op opcode) opcode {
	switch op {
	case opAdd:
		return opPos
	case opSub:
		return opNeg
	default:
		return op
	}
}

// tokname names a token in error messages.
func tokname(tok lexToken) string {
	if tok.text == "" {
		return symbols[tok.op].name
	}
	return tok.text
}
