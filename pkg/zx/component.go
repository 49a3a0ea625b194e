package zx

import (
	"fmt"
)

// Kind is the component variant discriminator.
type Kind uint8

const (
	KindNone    Kind = iota // Renders nothing
	KindElement             // <div>, <li>, fragments
	KindText                // Text content
	KindFunc                // Deferred component invocation
	KindIsland              // Externally rendered component
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFunc:
		return "Func"
	case KindIsland:
		return "Island"
	default:
		return "Unknown"
	}
}

// FragmentTag is the sentinel tag of fragments. The renderer inlines the
// children of a fragment without emitting a wrapping element.
const FragmentTag = "fragment"

// Component is the node value built by generated code.
type Component struct {
	Kind       Kind        // Variant discriminator
	Tag        string      // KindElement
	Attributes []Attribute // KindElement
	Children   []Component // KindElement
	Text       string      // KindText
	Raw        bool        // KindText: emit without escaping
	Thunk      *Thunk      // KindFunc
	Island     *IslandRef  // KindIsland
}

// ElementOptions holds the attributes and children of an element.
type ElementOptions struct {
	Attributes []Attribute
	Children   []Component
}

// Element creates an element component.
// Zero-valued attributes and children are dropped.
func Element(tag string, opts ElementOptions) Component {
	return Component{
		Kind:       KindElement,
		Tag:        tag,
		Attributes: compactAttrs(opts.Attributes),
		Children:   compact(opts.Children),
	}
}

// Fragment groups children without a wrapping element.
func Fragment(children ...Component) Component {
	return Component{
		Kind:     KindElement,
		Tag:      FragmentTag,
		Children: compact(children),
	}
}

// Text creates a text component.
func Text(s string) Component {
	return Component{Kind: KindText, Text: s}
}

// RawText creates a text component whose content is emitted verbatim.
func RawText(s string) Component {
	return Component{Kind: KindText, Text: s, Raw: true}
}

// Textf creates a text component from a format string.
func Textf(format string, args ...any) Component {
	return Text(fmt.Sprintf(format, args...))
}

// Expr converts an interpolated value into a component.
//
// Components pass through unchanged, slices of components become fragments,
// nil renders nothing and everything else is formatted as text.
func Expr(v any) Component {
	switch x := v.(type) {
	case nil:
		return Component{}
	case Component:
		return x
	case *Component:
		if x == nil {
			return Component{}
		}
		return *x
	case []Component:
		return Fragment(x...)
	case string:
		return Text(x)
	case []byte:
		return Text(string(x))
	case fmt.Stringer:
		return Text(x.String())
	case error:
		return Text(x.Error())
	default:
		return Text(fmt.Sprint(x))
	}
}

// IsZero reports whether the component renders nothing.
func (c Component) IsZero() bool {
	return c.Kind == KindNone
}

// IsFragment reports whether the component is a fragment.
func (c Component) IsFragment() bool {
	return c.Kind == KindElement && c.Tag == FragmentTag
}

// Attr returns the attribute with the given name.
func (c Component) Attr(name string) (Attribute, bool) {
	for _, a := range c.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// SameType reports whether two components have the same shape: elements with
// equal tags, or equal non-element variants. Props and attributes are not
// compared.
func SameType(a, b Component) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindElement {
		return a.Tag == b.Tag
	}
	return true
}

// Resolve evaluates deferred invocations until a concrete component remains.
// Non-func components are returned unchanged.
func (c Component) Resolve() (Component, error) {
	for c.Kind == KindFunc {
		if c.Thunk == nil || c.Thunk.Call == nil {
			return Component{}, ErrInvalidComponent
		}
		out, err := c.Thunk.Call(c.Thunk.Props)
		if err != nil {
			return Component{}, &EvalError{Name: c.Thunk.Name, Err: err}
		}
		c = out
	}
	return c, nil
}

func compact(children []Component) []Component {
	n := 0
	for _, c := range children {
		if !c.IsZero() {
			n++
		}
	}
	if n == len(children) {
		return children
	}
	out := make([]Component, 0, n)
	for _, c := range children {
		if !c.IsZero() {
			out = append(out, c)
		}
	}
	return out
}

func compactAttrs(attrs []Attribute) []Attribute {
	n := 0
	for _, a := range attrs {
		if !a.IsEmpty() {
			n++
		}
	}
	if n == len(attrs) {
		return attrs
	}
	out := make([]Attribute, 0, n)
	for _, a := range attrs {
		if !a.IsEmpty() {
			out = append(out, a)
		}
	}
	return out
}
