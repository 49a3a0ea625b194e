package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/zx/pkg/zx"
)

// ErrUnknownKind is returned for a component with an unrecognized Kind.
var ErrUnknownKind = errors.New("render: unknown component kind")

// IslandMarkers selects how islands are delimited in the output.
type IslandMarkers uint8

const (
	// ContainerMarkers renders an empty placeholder element carrying the
	// island's id, name, module path and props as attributes.
	ContainerMarkers IslandMarkers = iota

	// CommentMarkers renders a pair of <!--zx:ID--> <!--/zx:ID--> comments
	// around a JSON script holding the island's name, path and props.
	CommentMarkers
)

// ErrorPolicy decides what happens when a component function fails.
type ErrorPolicy uint8

const (
	// PropagateErrors aborts the render and returns the error. Nothing is
	// written to the destination.
	PropagateErrors ErrorPolicy = iota

	// SkipErrors logs the error and renders the failing subtree as empty.
	SkipErrors
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it changes whitespace.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// IslandMarkers selects the island boundary format.
	IslandMarkers IslandMarkers

	// ErrorPolicy selects how component errors are handled.
	ErrorPolicy ErrorPolicy

	// Logger receives skipped component errors. Default: slog.Default()
	Logger *slog.Logger

	// Now is the clock used for @caching expiry. Default: time.Now
	Now func() time.Time
}

// Renderer serializes component trees to HTML.
//
// A Renderer may be shared between goroutines; the @caching cache is the
// only state it keeps between calls.
type Renderer struct {
	config Config

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	html    []byte
	expires time.Time
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Renderer{
		config: config,
		cache:  make(map[string]cacheEntry),
	}
}

// RenderToString renders a component tree to an HTML string.
func (r *Renderer) RenderToString(c zx.Component) (string, error) {
	var buf bytes.Buffer
	if err := r.renderNode(&buf, c, 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter renders a component tree to w. The output is buffered so
// that a failed render writes nothing.
func (r *Renderer) RenderToWriter(w io.Writer, c zx.Component) error {
	var buf bytes.Buffer
	if err := r.renderNode(&buf, c, 0); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Reset drops all cached component output.
func (r *Renderer) Reset() {
	r.mu.Lock()
	r.cache = make(map[string]cacheEntry)
	r.mu.Unlock()
}

// renderNode dispatches rendering based on component kind.
func (r *Renderer) renderNode(w *bytes.Buffer, c zx.Component, depth int) error {
	switch c.Kind {
	case zx.KindNone:
		return nil
	case zx.KindElement:
		if c.IsFragment() {
			return r.renderChildren(w, c.Children, depth)
		}
		return r.renderElement(w, c, depth)
	case zx.KindText:
		return r.renderText(w, c)
	case zx.KindFunc:
		return r.renderFunc(w, c, depth)
	case zx.KindIsland:
		return r.renderIsland(w, c.Island)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, c.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w *bytes.Buffer, c zx.Component, depth int) error {
	tag := c.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteByte('<')
	w.WriteString(tag)
	r.renderAttributes(w, c.Attributes)
	w.WriteByte('>')

	if isVoidElement(tag) {
		if r.config.Pretty {
			w.WriteByte('\n')
		}
		return nil
	}

	block := r.config.Pretty && len(c.Children) > 0 && !isInlineElement(tag)
	if block {
		w.WriteByte('\n')
	}
	if err := r.renderChildren(w, c.Children, depth+1); err != nil {
		return err
	}
	if block {
		r.writeIndent(w, depth)
	}

	fmt.Fprintf(w, "</%s>", tag)
	if r.config.Pretty {
		w.WriteByte('\n')
	}
	return nil
}

func (r *Renderer) renderChildren(w *bytes.Buffer, children []zx.Component, depth int) error {
	for _, child := range children {
		if err := r.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderText renders a text node, escaped unless it is raw.
func (r *Renderer) renderText(w *bytes.Buffer, c zx.Component) error {
	if c.Raw {
		w.WriteString(c.Text)
		return nil
	}
	w.WriteString(escapeHTML(c.Text))
	return nil
}

// renderAttributes renders element attributes in source order. Event
// attributes are bound by the client and never appear in markup.
func (r *Renderer) renderAttributes(w *bytes.Buffer, attrs []zx.Attribute) {
	for _, a := range attrs {
		if a.IsEmpty() || a.IsEvent() {
			continue
		}
		if isBooleanAttr(a.Name) && (a.Value == "" || a.Value == "true") {
			fmt.Fprintf(w, " %s", a.Name)
			continue
		}
		fmt.Fprintf(w, ` %s="%s"`, a.Name, escapeAttr(a.Value))
	}
}

// renderFunc invokes a deferred component and renders its result. Components
// with a @caching duration are served from the cache while it is fresh.
func (r *Renderer) renderFunc(w *bytes.Buffer, c zx.Component, depth int) error {
	t := c.Thunk
	if t == nil || t.Call == nil {
		return r.componentError("", zx.ErrInvalidComponent)
	}

	if t.Options.Caching != "" {
		return r.renderCached(w, c, depth)
	}

	out, err := t.Call(t.Props)
	if err != nil {
		return r.componentError(t.Name, &zx.EvalError{Name: t.Name, Err: err})
	}
	return r.renderNode(w, out, depth)
}

func (r *Renderer) renderCached(w *bytes.Buffer, c zx.Component, depth int) error {
	t := c.Thunk
	ttl, err := time.ParseDuration(t.Options.Caching)
	if err != nil {
		return fmt.Errorf("render: component %s: invalid @caching duration %q: %w", t.Name, t.Options.Caching, err)
	}

	key := cacheKey(t)
	now := r.config.Now()

	r.mu.Lock()
	entry, ok := r.cache[key]
	r.mu.Unlock()
	if ok && now.Before(entry.expires) {
		w.Write(entry.html)
		return nil
	}

	out, err := t.Call(t.Props)
	if err != nil {
		return r.componentError(t.Name, &zx.EvalError{Name: t.Name, Err: err})
	}
	var sub bytes.Buffer
	if err := r.renderNode(&sub, out, depth); err != nil {
		return err
	}

	r.mu.Lock()
	r.cache[key] = cacheEntry{html: sub.Bytes(), expires: now.Add(ttl)}
	r.mu.Unlock()

	w.Write(sub.Bytes())
	return nil
}

// cacheKey returns the explicit @key, or the component name with its props.
func cacheKey(t *zx.Thunk) string {
	if t.Options.Key != "" {
		return t.Options.Key
	}
	return fmt.Sprintf("%s:%+v", t.Name, t.Props)
}

// componentError applies the error policy to a failed component.
func (r *Renderer) componentError(name string, err error) error {
	if r.config.ErrorPolicy == SkipErrors {
		r.config.Logger.Warn("render: skipping component", "component", name, "error", err)
		return nil
	}
	return err
}

// renderIsland renders the boundary the client mounts an island into.
func (r *Renderer) renderIsland(w *bytes.Buffer, ref *zx.IslandRef) error {
	if ref == nil {
		return fmt.Errorf("%w: island without reference", ErrUnknownKind)
	}

	if r.config.IslandMarkers == CommentMarkers {
		data, err := json.Marshal(struct {
			Name  string   `json:"name"`
			Path  string   `json:"path"`
			Props zx.Props `json:"props,omitempty"`
		}{ref.Name, ref.Path, ref.Props})
		if err != nil {
			return fmt.Errorf("render: island %s props: %w", ref.Name, err)
		}
		fmt.Fprintf(w, `<!--zx:%s--><script type="application/json" %s="%s">%s</script><!--/zx:%s-->`,
			ref.ID, zx.AttrIslandName, escapeAttr(ref.ID), data, ref.ID)
		return nil
	}

	attrs, err := zx.IslandAttributes(ref)
	if err != nil {
		return fmt.Errorf("render: island %s props: %w", ref.Name, err)
	}
	w.WriteString("<div")
	r.renderAttributes(w, attrs)
	w.WriteString("></div>")
	return nil
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}
