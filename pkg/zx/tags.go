package zx

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// svgTags are SVG element names that are not part of the HTML atom table.
var svgTags = map[string]bool{
	"circle":         true,
	"clipPath":       true,
	"defs":           true,
	"ellipse":        true,
	"feBlend":        true,
	"feGaussianBlur": true,
	"filter":         true,
	"g":              true,
	"line":           true,
	"linearGradient": true,
	"marker":         true,
	"mask":           true,
	"path":           true,
	"pattern":        true,
	"polygon":        true,
	"polyline":       true,
	"radialGradient": true,
	"rect":           true,
	"stop":           true,
	"symbol":         true,
	"text":           true,
	"textPath":       true,
	"tspan":          true,
	"use":            true,
	"view":           true,
}

// htmlElements are the HTML element names. The atom table also holds
// attribute and event names, so membership there alone is not enough.
var htmlElements = func(atoms ...atom.Atom) map[atom.Atom]bool {
	m := make(map[atom.Atom]bool, len(atoms))
	for _, a := range atoms {
		m[a] = true
	}
	return m
}(
	atom.A, atom.Abbr, atom.Address, atom.Area, atom.Article, atom.Aside,
	atom.Audio, atom.B, atom.Base, atom.Bdi, atom.Bdo, atom.Blockquote,
	atom.Body, atom.Br, atom.Button, atom.Canvas, atom.Caption, atom.Cite,
	atom.Code, atom.Col, atom.Colgroup, atom.Data, atom.Datalist, atom.Dd,
	atom.Del, atom.Details, atom.Dfn, atom.Dialog, atom.Div, atom.Dl, atom.Dt,
	atom.Em, atom.Embed, atom.Fieldset, atom.Figcaption, atom.Figure,
	atom.Footer, atom.Form, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5,
	atom.H6, atom.Head, atom.Header, atom.Hgroup, atom.Hr, atom.Html, atom.I,
	atom.Iframe, atom.Img, atom.Input, atom.Ins, atom.Kbd, atom.Label,
	atom.Legend, atom.Li, atom.Link, atom.Main, atom.Map, atom.Mark, atom.Math,
	atom.Menu, atom.Meta, atom.Meter, atom.Nav, atom.Noscript, atom.Object,
	atom.Ol, atom.Optgroup, atom.Option, atom.Output, atom.P, atom.Param,
	atom.Picture, atom.Pre, atom.Progress, atom.Q, atom.Rb, atom.Rp, atom.Rt,
	atom.Rtc, atom.Ruby, atom.S, atom.Samp, atom.Script, atom.Search,
	atom.Section, atom.Select, atom.Slot, atom.Small, atom.Source, atom.Span,
	atom.Strong, atom.Style, atom.Sub, atom.Summary, atom.Sup, atom.Svg,
	atom.Table, atom.Tbody, atom.Td, atom.Template, atom.Textarea, atom.Tfoot,
	atom.Th, atom.Thead, atom.Time, atom.Title, atom.Tr, atom.Track, atom.U,
	atom.Ul, atom.Var, atom.Video, atom.Wbr,
)

// KnownTag reports whether tag belongs to the element vocabulary: HTML and
// SVG element names, the fragment sentinel, or custom element names (which
// must contain a hyphen). Attribute names such as href or onclick are not
// elements.
func KnownTag(tag string) bool {
	if tag == "" {
		return false
	}
	if tag == FragmentTag || svgTags[tag] {
		return true
	}
	if strings.Contains(tag, "-") {
		return true
	}
	return htmlElements[atom.Lookup([]byte(tag))]
}
