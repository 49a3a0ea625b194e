package syntax

import "fmt"

// ErrorKind classifies parse errors.
type ErrorKind uint8

const (
	ErrSyntax        ErrorKind = iota // Unexpected input
	ErrUnterminated                   // The source ended inside a construct
	ErrMismatchedTag                  // An end tag does not close the open element
)

// Error is a parse error. Parsing stops at the first error.
type Error struct {
	Kind ErrorKind
	Pos  Position
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// bailout unwinds the recursive descent on the first error.
type bailout struct {
	err *Error
}
