package xexpr

import (
	"errors"
	"strconv"
)

// SyntaxError is an error indicating a token that the grammar does not allow
// where it appears. It implements InputError.
type SyntaxError struct {
	// Col is the position of the unexpected token.
	Col int
	// Got is the unexpected token.
	Got string
	// Want is the token that was required, or the empty string if any of
	// several tokens could have started a valid expression.
	Want string
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, err.Detail())
}

// Detail describes the error without its position.
func (err *SyntaxError) Detail() string {
	if err.Want == "" {
		return "unexpected '" + err.Got + "'"
	}
	return "unexpected '" + err.Got + "', expected '" + err.Want + "'"
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the token following the call.
	Col int
	// Func is the function name that was called.
	Func string
	// Want is the number of arguments the function takes.
	Want int
	// Got is the number of arguments in the call.
	Got int
}

func (err *CallError) Error() string {
	return errpos(err.Col, err.Detail())
}

// Detail describes the error without its position.
func (err *CallError) Detail() string {
	return "function " + err.Func + " takes " + strconv.Itoa(err.Want) + " args, found " + strconv.Itoa(err.Got)
}

func (err *CallError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based byte offset of the start of the token that
	// caused the error.
	Pos() int
	// Detail describes the error without its position.
	Detail() string
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*CallError)(nil)
)

// ErrTooLong is the error returned when a source is too long to compile. It
// is never reported to error handlers.
var ErrTooLong = errors.New("xexpr: source too long")
