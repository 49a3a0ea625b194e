// Package syntax parses .zx files: Go source with embedded markup.
//
// Markup starts at a parenthesis followed by a tag, as in
//
//	return (<div class="card">{title}</div>)
//
// The parser produces a concrete syntax tree whose root alternates between
// host_code nodes, copied verbatim by the compiler, and zx_block nodes that
// hold one markup root each. Host code is only scanned, never parsed as Go:
// the scanner honours string, rune and raw string literals and comments, and
// tracks bracket depth to find where embedded expressions end.
//
// Inside markup, braces hold either an interpolated Go expression, a format
// expression ([expr:format]), or one of the control-flow forms:
//
//	{if (cond) (<p>yes</p>) else (<p>no</p>)}
//	{for (items) |item, i| (<li>{item}</li>)}
//	{while (i < 3) : (i += 1) (<span>{i}</span>)}
//	{switch (kind) { "a" => (<b/>), else => (<i/>) }}
//
// A branch written as a brace block holds Go statements that return markup;
// such forms are reported with the *_block node types.
//
// Parsing stops at the first error, which is always an *Error.
package syntax
