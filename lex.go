package xexpr

import (
	"errors"
	"strconv"
)

type lexToken struct {
	// text is the source text of the token. It is empty for EOF.
	text string
	op   opcode
	// val is the value of a numeric literal.
	val float64
	// pos is the 1-based byte offset of the token.
	pos int
}

func (t lexToken) String() string {
	return symbols[t.op].name + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

// maxTokenLen is the longest run of identifier or operator bytes the lexer
// considers when matching names. Bytes past it are left for the next token.
const maxTokenLen = 63

type lexer struct {
	src string
	// p is the byte offset of the next unscanned byte.
	p int
}

func lex(src string) *lexer {
	return &lexer{src: src}
}

// next scans the next token from the input. Once the input is exhausted,
// every call returns an EOF token.
func (l *lexer) next() (lexToken, error) {
	for l.p < len(l.src) && l.src[l.p] <= ' ' {
		l.p++
	}
	tok := lexToken{pos: l.p + 1}
	if l.p >= len(l.src) {
		tok.op = opEOF
		return tok, nil
	}
	rest := l.src[l.p:]
	c := rest[0]
	switch {
	case isdigit(c) || c == '.':
		v, n, err := scanNum(rest)
		if err != nil {
			return tok, &LexError{Col: tok.pos, Text: rest[:n], Kind: "number"}
		}
		tok.text = rest[:n]
		tok.op = opNumber
		tok.val = v
		l.p += n
		return tok, nil
	case isalpha(c):
		word := gather(rest, isalnum)
		op, ok := idents[word]
		if !ok {
			return tok, &LexError{Col: tok.pos, Text: word, Kind: "identifier"}
		}
		tok.text = word
		tok.op = op
		l.p += len(word)
		return tok, nil
	case ispunct(c):
		// Longest match, backing off one byte at a time.
		for run := gather(rest, ispunct); run != ""; run = run[:len(run)-1] {
			if op, ok := opers[run]; ok {
				tok.text = run
				tok.op = op
				l.p += len(run)
				return tok, nil
			}
		}
	}
	return tok, &LexError{Col: tok.pos, Text: rest[:1]}
}

// gather returns the prefix of s of bytes satisfying class, up to
// maxTokenLen bytes.
func gather(s string, class func(byte) bool) string {
	n := 0
	for n < len(s) && n < maxTokenLen && class(s[n]) {
		n++
	}
	return s[:n]
}

var (
	errNoDigits  = errors.New("no digits")
	errUnderflow = errors.New("underflow")
)

// scanNum parses the number at the start of s. The second result is the
// number of bytes the number occupies, or on error, the number of bytes
// examined.
func scanNum(s string) (float64, int, error) {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		n := 2
		for n < len(s) && isxdigit(s[n]) {
			n++
		}
		if n == 2 {
			// Just the 0.
			return 0, 1, nil
		}
		u, err := strconv.ParseUint(s[2:n], 16, 64)
		if err != nil {
			return 0, n, err
		}
		return float64(u), n, nil
	}
	n, dig, nonzero := 0, 0, false
	for n < len(s) && isdigit(s[n]) {
		nonzero = nonzero || s[n] != '0'
		n++
		dig++
	}
	if n < len(s) && s[n] == '.' {
		n++
		for n < len(s) && isdigit(s[n]) {
			nonzero = nonzero || s[n] != '0'
			n++
			dig++
		}
	}
	if dig == 0 {
		return 0, n, errNoDigits
	}
	if n < len(s) && (s[n] == 'e' || s[n] == 'E') {
		// The exponent only belongs to the number if it has digits.
		k := n + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		if k < len(s) && isdigit(s[k]) {
			for k < len(s) && isdigit(s[k]) {
				k++
			}
			n = k
		}
	}
	f, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		return 0, n, err
	}
	// ParseFloat rounds underflow to zero without an error.
	if f == 0 && nonzero {
		return 0, n, errUnderflow
	}
	return f, n, nil
}

func isdigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isxdigit(c byte) bool {
	return isdigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isalpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isalnum(c byte) bool {
	return isalpha(c) || isdigit(c)
}

// ispunct reports whether c is printable ASCII other than a letter, digit,
// or space.
func ispunct(c byte) bool {
	return '!' <= c && c <= '~' && !isalnum(c)
}

func isprint(c byte) bool {
	return ' ' <= c && c <= '~'
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Col is the 1-based byte offset of the start of the token.
	Col int
	// Text is the text of the invalid token. For unknown characters, it is
	// the single offending byte.
	Text string
	// Kind is the type of token the lexer was scanning: "number",
	// "identifier", or the empty string for an unknown character.
	Kind string
}

func (err *LexError) Error() string {
	return errpos(err.Col, err.Detail())
}

// Detail describes the error without its position.
func (err *LexError) Detail() string {
	switch err.Kind {
	case "number":
		return "invalid number"
	case "identifier":
		return "unknown identifier '" + err.Text + "'"
	}
	if err.Text == "" {
		return "unknown character"
	}
	c := err.Text[0]
	if isprint(c) {
		return "unknown character '" + err.Text[:1] + "'"
	}
	const hex = "0123456789ABCDEF"
	return `unknown character '\x` + string([]byte{hex[c>>4], hex[c&15]}) + "'"
}

func (err *LexError) Pos() int {
	return err.Col
}
