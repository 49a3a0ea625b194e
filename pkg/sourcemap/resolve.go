package sourcemap

import (
	"errors"
	"fmt"

	gosourcemap "github.com/go-sourcemap/sourcemap"
)

// ErrNotMapped is returned when a generated position has no mapping.
var ErrNotMapped = errors.New("sourcemap: position not mapped")

// Position is a 1-based source position.
type Position struct {
	Source string
	Line   int
	Column int
}

// String returns "source:line:col".
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Column)
}

// Resolve maps a 1-based generated line and column back to the source
// position, using the closest mapping at or before it.
func Resolve(data []byte, line, column int) (Position, error) {
	consumer, err := gosourcemap.Parse("", data)
	if err != nil {
		return Position{}, fmt.Errorf("sourcemap: parse: %w", err)
	}
	source, _, srcLine, srcCol, ok := consumer.Source(line, column-1)
	if !ok {
		return Position{}, fmt.Errorf("%w: %d:%d", ErrNotMapped, line, column)
	}
	return Position{Source: source, Line: srcLine, Column: srcCol + 1}, nil
}
