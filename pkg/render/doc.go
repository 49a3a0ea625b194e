// Package render serializes zx component trees to HTML.
//
// The renderer walks a zx.Component tree and writes:
//
//   - elements as <tag attr="v">children</tag>, void elements without a
//     closing tag
//   - fragments as their children, with no wrapper
//   - text HTML-escaped, raw text verbatim
//   - deferred components by calling their function with the stored props
//     and rendering the result
//   - islands as a boundary the client runtime mounts into
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.Config{})
//	html, err := renderer.RenderToString(Page(data))
//
// # Errors
//
// When a component function returns an error, the default policy
// (PropagateErrors) aborts the render and returns it; RenderToString and
// RenderToWriter then produce no output at all. SkipErrors logs the error
// and renders that subtree as empty. A component returning a nil
// *zx.Component renders nothing and is not an error.
//
// # Islands
//
// Islands render either as a placeholder container:
//
//	<div id="zx-…" data-zx-island="Counter" data-zx-path="app/Counter.tsx" data-zx-props="{…}"></div>
//
// or, with CommentMarkers, as a pair of comments around a JSON payload:
//
//	<!--zx:zx-…--><script type="application/json" data-zx-island="zx-…">{…}</script><!--/zx:zx-…-->
//
// # Caching
//
// Components invoked with @caching={"30s"} are cached per Renderer, keyed by
// @key when present and otherwise by component name and props.
package render
