package render

import "golang.org/x/net/html/atom"

// voidElements cannot have children and have no closing tag.
var voidElements = atomSet(
	atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
	atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr,
)

// inlineElements stay on one line in pretty-printed output.
var inlineElements = atomSet(
	atom.A, atom.Abbr, atom.B, atom.Bdi, atom.Bdo, atom.Br, atom.Cite, atom.Code,
	atom.Data, atom.Dfn, atom.Em, atom.I, atom.Kbd, atom.Mark, atom.Q, atom.Rb,
	atom.Rp, atom.Rt, atom.Rtc, atom.Ruby, atom.S, atom.Samp, atom.Small,
	atom.Span, atom.Strong, atom.Sub, atom.Sup, atom.Time, atom.U, atom.Var,
	atom.Wbr,
)

// booleanAttrs render as a bare name when set.
var booleanAttrs = atomSet(
	atom.Allowfullscreen, atom.Async, atom.Autofocus, atom.Autoplay, atom.Checked,
	atom.Controls, atom.Default, atom.Defer, atom.Disabled, atom.Formnovalidate,
	atom.Hidden, atom.Ismap, atom.Itemscope, atom.Loop, atom.Multiple, atom.Muted,
	atom.Nomodule, atom.Novalidate, atom.Open, atom.Playsinline, atom.Readonly,
	atom.Required, atom.Reversed, atom.Selected,
)

func atomSet(atoms ...atom.Atom) map[atom.Atom]bool {
	m := make(map[atom.Atom]bool, len(atoms))
	for _, a := range atoms {
		m[a] = true
	}
	return m
}

func isVoidElement(tag string) bool {
	return voidElements[atom.Lookup([]byte(tag))]
}

func isInlineElement(tag string) bool {
	return inlineElements[atom.Lookup([]byte(tag))]
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[atom.Lookup([]byte(name))]
}
