package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryCompile   Category = "compile"
	CategoryRuntime   Category = "runtime"
	CategoryHydration Category = "hydration"
	CategoryProtocol  Category = "protocol"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File   string
	Line   int
	Column int
	Offset int // Byte offset into the file, -1 when unknown
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// ZxError is a structured error with source location and suggestions.
type ZxError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (compile, runtime, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source code location where the error occurred.
	Location *Location

	// Context contains surrounding source code lines.
	Context []string

	// contextStart is the line number of Context[0].
	contextStart int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ZxError) Error() string {
	var b strings.Builder
	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(e.Wrapped.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ZxError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds source location to the error, reading context lines
// from the file on disk.
func (e *ZxError) WithLocation(file string, line, column int) *ZxError {
	e.Location = &Location{File: file, Line: line, Column: column, Offset: -1}
	e.contextStart, e.Context = readContextLines(file, line, 5)
	return e
}

// WithOffset adds the location of a byte offset in src. Context lines are
// taken from src rather than from disk, so in-memory sources work too.
func (e *ZxError) WithOffset(file string, src []byte, offset int) *ZxError {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	line := bytes.Count(src[:offset], []byte{'\n'}) + 1
	col := offset - (bytes.LastIndexByte(src[:offset], '\n') + 1) + 1
	e.Location = &Location{File: file, Line: line, Column: col, Offset: offset}
	e.contextStart, e.Context = contextLines(bytes.Split(src, []byte{'\n'}), line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ZxError) WithSuggestion(s string) *ZxError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *ZxError) WithExample(ex string) *ZxError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ZxError) WithDetail(d string) *ZxError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ZxError) Wrap(err error) *ZxError {
	e.Wrapped = err
	return e
}

// readContextLines reads the lines around targetLine from a file.
func readContextLines(filename string, targetLine, contextSize int) (int, []string) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return 0, nil
	}
	return contextLines(bytes.Split(data, []byte{'\n'}), targetLine, contextSize)
}

// contextLines returns up to contextSize lines centered on targetLine,
// clipped to the file, and the line number of the first one.
func contextLines(all [][]byte, targetLine, contextSize int) (int, []string) {
	start := max(targetLine-contextSize/2, 1)
	end := min(targetLine+contextSize/2, len(all))
	if start > end {
		return 0, nil
	}
	lines := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		lines = append(lines, strings.TrimSuffix(string(all[n-1]), "\r"))
	}
	return start, lines
}

// New creates a ZxError from a registered error code.
func New(code string) *ZxError {
	template, ok := registry[code]
	if !ok {
		return &ZxError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ZxError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Errorf creates a ZxError from a registered code whose message is extended
// with a formatted description of the specific failure.
func Errorf(code string, format string, args ...any) *ZxError {
	e := New(code)
	e.Message = e.Message + ": " + fmt.Sprintf(format, args...)
	return e
}

// Newf creates a new ZxError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ZxError {
	return &ZxError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError returns the first ZxError in err's chain, or wraps err in a
// new error with the given code.
func FromError(err error, code string) *ZxError {
	if err == nil {
		return nil
	}
	var ze *ZxError
	if errors.As(err, &ze) {
		return ze
	}
	return New(code).Wrap(err)
}
