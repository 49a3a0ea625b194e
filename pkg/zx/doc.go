// Package zx is the runtime value layer targeted by code generated from .zx files.
//
// A Component is a small tagged union. Generated code builds trees of Components
// with the constructors in this package, and both the string renderer
// (pkg/render) and the virtual DOM (pkg/vdom) consume them.
//
// # Variants
//
//   - KindElement: an HTML/SVG element with attributes and children. The sentinel
//     tag FragmentTag groups children without a wrapper.
//   - KindText: text content, HTML-escaped on output unless Raw is set.
//   - KindFunc: a deferred component invocation created by Lazy. It is resolved
//     on first render and never memoized across render passes.
//   - KindIsland: a component rendered by an external client-side module,
//     addressed by a stable content-derived ID.
//
// The zero Component means "nothing" and renders as empty output.
//
// # Generated code
//
//	zx.Element("ul", zx.ElementOptions{
//	    Attributes: []zx.Attribute{
//	        zx.Attr("class", "items"),
//	    },
//	    Children: []zx.Component{
//	        zx.Text("Hello "),
//	        zx.Expr(user.Name),
//	    },
//	})
package zx
