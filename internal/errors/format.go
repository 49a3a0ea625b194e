package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used. NO_COLOR turns them
// off at startup.
var colorEnabled = os.Getenv("NO_COLOR") == ""

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

func red(text string) string  { return color(colorRed, text) }
func blue(text string) string { return color(colorBlue, text) }
func cyan(text string) string { return color(colorCyan, text) }
func bold(text string) string { return color(colorBold, text) }

// Format returns the error as a compiler diagnostic:
//
//	error[E003]: Unknown element tag: <blorp>
//	  --> views/home.zx:5:9
//	   |
//	 4 |     return (
//	 5 |         <blorp>hi</blorp>
//	   |         ^
//	 6 |     )
//	   |
//	   = note: Lowercase tags must be HTML or SVG elements, ...
//	   = help: Use a custom element name
func (e *ZxError) Format() string {
	var b strings.Builder

	label := "error"
	if e.Code != "" {
		label += "[" + e.Code + "]"
	}
	b.WriteString(red(bold(label)))
	b.WriteString(bold(": " + e.Message))
	b.WriteString("\n")

	first, width := 0, 1
	if e.Location != nil && len(e.Context) > 0 {
		first = e.contextStart
		if first == 0 {
			first = max(e.Location.Line-len(e.Context)/2, 1)
		}
		width = len(fmt.Sprint(first + len(e.Context) - 1))
	}
	pad := strings.Repeat(" ", width)
	gutter := func(n string) string { return blue(n + " |") }

	if e.Location != nil {
		fmt.Fprintf(&b, "%s%s %s\n", pad, blue("-->"), e.Location)
	}

	if first > 0 {
		b.WriteString(gutter(pad) + "\n")
		for i, line := range e.Context {
			n := first + i
			fmt.Fprintf(&b, "%s %s\n", gutter(fmt.Sprintf("%*d", width, n)), line)
			if n == e.Location.Line && e.Location.Column > 0 {
				fmt.Fprintf(&b, "%s %s%s\n", gutter(pad), caretIndent(line, e.Location.Column), red("^"))
			}
		}
		b.WriteString(gutter(pad) + "\n")
	}

	note := func(kind, text string) {
		lines := wrapText(text, 72)
		for i, line := range lines {
			if i == 0 {
				fmt.Fprintf(&b, "%s %s %s: %s\n", pad, blue("="), bold(kind), line)
				continue
			}
			fmt.Fprintf(&b, "%s   %s  %s\n", pad, strings.Repeat(" ", len(kind)), line)
		}
	}
	if e.Detail != "" {
		note("note", e.Detail)
	}
	if e.Suggestion != "" {
		note("help", e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "%s %s %s:\n", pad, blue("="), bold("example"))
		for _, line := range strings.Split(e.Example, "\n") {
			fmt.Fprintf(&b, "%s       %s\n", pad, cyan(line))
		}
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "%s %s caused by: %s\n", pad, blue("="), e.Wrapped)
	}

	return b.String()
}

// caretIndent returns the whitespace that puts a caret under column col of
// line. Tabs are copied so the caret lines up at any tab width.
func caretIndent(line string, col int) string {
	var b strings.Builder
	for i := 0; i < col-1; i++ {
		if i < len(line) && line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *ZxError) FormatCompact() string {
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
	return b.String()
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	Cause      string        `json:"cause,omitempty"`
}

// FormatJSON returns the error as a JSON object, for editor integrations.
func (e *ZxError) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
	}
	if l := e.Location; l != nil {
		out.Location = &jsonLocation{File: l.File, Line: l.Line, Column: l.Column, Offset: l.Offset}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+len(word)+1 > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// Fprint writes err to w, as a diagnostic when it is a *ZxError.
func Fprint(w io.Writer, err error) {
	var ze *ZxError
	if errors.As(err, &ze) {
		fmt.Fprintln(w, ze.Format())
		return
	}
	fmt.Fprintf(w, "%s %s\n", red(bold("error:")), err)
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
