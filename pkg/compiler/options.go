package compiler

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/zx/pkg/sourcemap"
)

// DefaultIndentWidth is the number of spaces per indentation level.
const DefaultIndentWidth = 4

// Options configures a transpile call.
type Options struct {
	// IndentWidth is the number of spaces per indentation level.
	// Default: 4
	IndentWidth int

	// SourceMap enables source map generation.
	SourceMap bool

	// EmbedSource embeds the .zx text in the source map.
	EmbedSource bool

	// Logger receives debug output. Default: slog.Default()
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = DefaultIndentWidth
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Result is the output of a transpile call.
type Result struct {
	// Code is the generated Go source.
	Code []byte

	// SourceMap links Code back to the .zx source. Nil unless requested.
	SourceMap *sourcemap.Map

	// Imports maps external-import names to their declared paths.
	Imports map[string]string

	// Blocks is the number of control-flow blocks that required unique names.
	Blocks int
}

// OutputName returns the generated file name for a .zx source file.
func OutputName(filename string) string {
	return strings.TrimSuffix(filename, ".zx") + ".go"
}
