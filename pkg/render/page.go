package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vango-dev/zx/pkg/zx"
)

// Page contains everything needed to render a complete HTML document
// around a component tree.
type Page struct {
	// Body is the root component of the page content.
	Body zx.Component

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Scripts are appended to the end of the body, after the content. The
	// island loader belongs here.
	Scripts []ScriptTag
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string
	Content  string
	Property string // OpenGraph
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Module bool // type="module"
	Defer  bool
	Inline string
}

// RenderPage renders a complete HTML document to w. As with RenderToWriter,
// nothing is written if the body fails to render.
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	var buf bytes.Buffer
	r.renderDocumentStart(&buf, page)
	if err := r.renderNode(&buf, page.Body, 0); err != nil {
		return err
	}
	r.renderDocumentEnd(&buf, page)
	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Renderer) renderDocumentStart(w *bytes.Buffer, page Page) {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	w.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(w, "<html lang=\"%s\">\n", escapeAttr(lang))
	w.WriteString("<head>\n")
	w.WriteString(`  <meta charset="utf-8">` + "\n")
	w.WriteString(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	if page.Title != "" {
		fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title))
	}
	for _, m := range page.Meta {
		renderMetaTag(w, m)
	}
	for _, href := range page.StyleSheets {
		fmt.Fprintf(w, "  <link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(href))
	}
	w.WriteString("</head>\n<body>\n")
}

func (r *Renderer) renderDocumentEnd(w *bytes.Buffer, page Page) {
	for _, s := range page.Scripts {
		renderScriptTag(w, s)
	}
	w.WriteString("</body>\n</html>\n")
}

func renderMetaTag(w *bytes.Buffer, m MetaTag) {
	w.WriteString("  <meta")
	if m.Name != "" {
		fmt.Fprintf(w, ` name="%s"`, escapeAttr(m.Name))
	}
	if m.Property != "" {
		fmt.Fprintf(w, ` property="%s"`, escapeAttr(m.Property))
	}
	if m.Content != "" {
		fmt.Fprintf(w, ` content="%s"`, escapeAttr(m.Content))
	}
	w.WriteString(">\n")
}

func renderScriptTag(w *bytes.Buffer, s ScriptTag) {
	w.WriteString("  <script")
	if s.Src != "" {
		fmt.Fprintf(w, ` src="%s"`, escapeAttr(s.Src))
	}
	if s.Module {
		w.WriteString(` type="module"`)
	}
	if s.Defer {
		w.WriteString(" defer")
	}
	w.WriteString(">")
	w.WriteString(s.Inline)
	w.WriteString("</script>\n")
}
