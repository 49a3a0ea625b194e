// Package compiler transpiles .zx files into Go source.
//
// A .zx file is a Go file in which parenthesized markup may appear wherever
// an expression can:
//
//	func Greeting(name string) zx.Component {
//		return (<p class="greeting">Hello, {name}!</p>)
//	}
//
// Host code is copied through untouched. Each markup root becomes a call
// tree of constructors from package zx (zx.Element, zx.Fragment, zx.Text,
// zx.Lazy, zx.Island). Control flow inside braces ({if ...}, {for ...},
// {while ...}, {switch ...}) becomes an immediately invoked closure
// returning a zx.Component.
//
// # Builtin attributes
//
// Attributes starting with @ are directives to the compiler and never reach
// the output:
//
//	@rendering={.ssr|.csr|.csz}  server render, foreign island, Go island
//	@escaping={.html|.raw}       raw emits element content unescaped
//	@caching={"5s"}              cache duration for a component
//	@key={id}                    cache and reconciliation key
//
// # Source maps
//
// With Options.SourceMap set, Transpile also returns a V3 source map linking
// every copied host line and every generated constructor back to its .zx
// position.
package compiler
