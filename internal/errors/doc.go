// Package errors provides structured, actionable error messages for zx.
//
// Every error carries a code from the registry, a category, and optionally
// the source location it refers to. Compile errors point into the .zx file
// with line, column and byte offset.
//
// # Error Categories
//
//   - compile: parse errors, unknown tags and builtins, missing island imports
//   - runtime: component evaluation and patch application failures
//   - hydration: missing containers and island markers
//   - protocol: malformed operation frames
//   - config: zx.json problems
//   - cli: build, resolve and publish failures
//
// # Usage
//
//	err := errors.Errorf("E003", "<blorp>").
//	    WithOffset("views/home.zx", src, 120).
//	    WithSuggestion("Use a custom element name with a hyphen, e.g. <x-blorp>")
//
//	fmt.Println(err.Format())
//	// Output:
//	// error[E003]: Unknown element tag: <blorp>
//	//  --> views/home.zx:7:9
//	//   |
//	// 5 | func Home() zx.Component {
//	// 6 |     return (
//	// 7 |         <blorp>hi</blorp>
//	//   |         ^
//	// 8 |     )
//	// 9 | }
//	//   |
//	//   = help: Use a custom element name with a hyphen, e.g. <x-blorp>
//
// Colors are disabled when NO_COLOR is set.
package errors
