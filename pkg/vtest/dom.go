package vtest

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// DOM errors. Each one is a mistake a browser would reject or silently
// ignore; the in-memory DOM reports it so reconciler bugs surface in tests.
var (
	ErrForeignHandle = errors.New("vtest: handle does not belong to this DOM")
	ErrReleased      = errors.New("vtest: node was released")
	ErrTextNode      = errors.New("vtest: operation not supported on a text or comment node")
	ErrNotText       = errors.New("vtest: node is not a text node")
	ErrNotChild      = errors.New("vtest: node is not a child of parent")
	ErrHierarchy     = errors.New("vtest: node cannot be inserted under its own descendant")
)

// Node is a node of the in-memory DOM. Text and comment nodes have an empty
// Tag; a comment keeps its data in Text.
type Node struct {
	Tag      string
	Text     string
	Comment  bool
	Attrs    map[string]string
	Props    map[string]any
	Children []*Node
	Parent   *Node

	// Events maps bound event types to the VElement id they report.
	Events map[string]uint64

	dom      *DOM
	released bool
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == "" && !n.Comment
}

// Released reports whether the tree let go of the node.
func (n *Node) Released() bool {
	return n.released
}

// Find returns the first descendant of n, in document order, with the tag.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
		if f := c.Find(tag); f != nil {
			return f
		}
	}
	return nil
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	if n.Comment {
		return ""
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// HTML serializes n. Attributes are written in name order.
func (n *Node) HTML() string {
	var b strings.Builder
	if err := html.Render(&b, n.htmlNode()); err != nil {
		return "<!-- " + err.Error() + " -->"
	}
	return b.String()
}

// InnerHTML serializes the children of n.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.HTML())
	}
	if raw, ok := n.Props["innerHTML"].(string); ok && len(n.Children) == 0 {
		b.WriteString(raw)
	}
	return b.String()
}

func (n *Node) htmlNode() *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	if n.Comment {
		return &html.Node{Type: html.CommentNode, Data: n.Text}
	}
	h := &html.Node{Type: html.ElementNode, Data: n.Tag}
	for _, name := range slices.Sorted(maps.Keys(n.Attrs)) {
		h.Attr = append(h.Attr, html.Attribute{Key: name, Val: n.Attrs[name]})
	}
	if raw, ok := n.Props["innerHTML"].(string); ok && len(n.Children) == 0 {
		h.AppendChild(&html.Node{Type: html.RawNode, Data: raw})
	}
	for _, c := range n.Children {
		h.AppendChild(c.htmlNode())
	}
	return h
}

// DOM is an in-memory UI backend. It implements every operation a
// reconciler needs plus handle release, container lookup and event binding,
// and records each successful mutation in Ops.
type DOM struct {
	// Ops logs mutations as "Op arg ...", in call order.
	Ops []string

	containers map[string]*Node
	markers    map[string][2]*Node
	created    int
	released   int
}

// NewDOM creates an empty DOM.
func NewDOM() *DOM {
	return &DOM{containers: make(map[string]*Node), markers: make(map[string][2]*Node)}
}

// AddContainer creates a detached div with the given id that FindContainer
// returns.
func (d *DOM) AddContainer(id string) *Node {
	n := d.newNode("div")
	n.Attrs["id"] = id
	d.containers[id] = n
	return n
}

// FindContainer returns the container registered with AddContainer.
func (d *DOM) FindContainer(id string) (any, bool) {
	n, ok := d.containers[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// AddMarkers appends a <!--zx:id--> <!--/zx:id--> comment pair to parent,
// as the server renderer writes around an island, and registers it for
// FindMarkers.
func (d *DOM) AddMarkers(parent *Node, id string) (start, end *Node) {
	start, end = d.newComment("zx:"+id), d.newComment("/zx:"+id)
	for _, c := range []*Node{start, end} {
		c.Parent = parent
		parent.Children = append(parent.Children, c)
	}
	d.markers[id] = [2]*Node{start, end}
	return start, end
}

// FindMarkers returns the pair registered with AddMarkers while both
// comments are still live siblings.
func (d *DOM) FindMarkers(id string) (parent, start, end any, ok bool) {
	m, found := d.markers[id]
	if !found {
		return nil, nil, nil, false
	}
	s, e := m[0], m[1]
	if s.released || e.released || s.Parent == nil || s.Parent != e.Parent {
		return nil, nil, nil, false
	}
	return s.Parent, s, e, true
}

// Live returns the number of created nodes that were not released.
func (d *DOM) Live() int {
	return d.created - d.released
}

// ResetOps clears the operation log.
func (d *DOM) ResetOps() {
	d.Ops = d.Ops[:0]
}

func (d *DOM) newNode(tag string) *Node {
	d.created++
	return &Node{
		Tag:   tag,
		Attrs: make(map[string]string),
		Props: make(map[string]any),
		dom:   d,
	}
}

func (d *DOM) newComment(data string) *Node {
	n := d.newNode("")
	n.Comment = true
	n.Text = data
	return n
}

func (d *DOM) log(op string, args ...any) {
	var b strings.Builder
	b.WriteString(op)
	for _, a := range args {
		fmt.Fprintf(&b, " %v", a)
	}
	d.Ops = append(d.Ops, b.String())
}

func (d *DOM) node(h any) (*Node, error) {
	n, ok := h.(*Node)
	if !ok || n == nil || n.dom != d {
		return nil, fmt.Errorf("%w: %T", ErrForeignHandle, h)
	}
	if n.released {
		return nil, ErrReleased
	}
	return n, nil
}

func (d *DOM) element(h any) (*Node, error) {
	n, err := d.node(h)
	if err != nil {
		return nil, err
	}
	if n.Tag == "" {
		return nil, ErrTextNode
	}
	return n, nil
}

// pair resolves a parent element and a child that may be inserted under it.
func (d *DOM) pair(parent, child any) (*Node, *Node, error) {
	p, err := d.element(parent)
	if err != nil {
		return nil, nil, err
	}
	c, err := d.node(child)
	if err != nil {
		return nil, nil, err
	}
	for a := p; a != nil; a = a.Parent {
		if a == c {
			return nil, nil, ErrHierarchy
		}
	}
	return p, c, nil
}

func (n *Node) detach() {
	if n.Parent == nil {
		return
	}
	p := n.Parent
	if i := slices.Index(p.Children, n); i >= 0 {
		p.Children = slices.Delete(p.Children, i, i+1)
	}
	n.Parent = nil
}

// CreateElement creates a detached element.
func (d *DOM) CreateElement(tag string) (any, error) {
	if tag == "" {
		return nil, errors.New("vtest: empty tag")
	}
	d.log("CreateElement", tag)
	return d.newNode(tag), nil
}

// CreateTextNode creates a detached text node.
func (d *DOM) CreateTextNode(text string) (any, error) {
	n := d.newNode("")
	n.Text = text
	d.log("CreateTextNode", fmt.Sprintf("%q", text))
	return n, nil
}

// AppendChild moves child to the end of parent's children.
func (d *DOM) AppendChild(parent, child any) error {
	p, c, err := d.pair(parent, child)
	if err != nil {
		return err
	}
	c.detach()
	c.Parent = p
	p.Children = append(p.Children, c)
	d.log("AppendChild", p.Tag, c.label())
	return nil
}

// RemoveChild detaches child from parent.
func (d *DOM) RemoveChild(parent, child any) error {
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	if c.Parent != p {
		return ErrNotChild
	}
	c.detach()
	d.log("RemoveChild", p.Tag, c.label())
	return nil
}

// ReplaceChild puts newChild where oldChild is and detaches oldChild.
func (d *DOM) ReplaceChild(parent, newChild, oldChild any) error {
	p, n, err := d.pair(parent, newChild)
	if err != nil {
		return err
	}
	o, err := d.node(oldChild)
	if err != nil {
		return err
	}
	if o.Parent != p {
		return ErrNotChild
	}
	if n == o {
		return nil
	}
	n.detach()
	i := slices.Index(p.Children, o)
	p.Children[i] = n
	n.Parent = p
	o.Parent = nil
	d.log("ReplaceChild", p.Tag, n.label(), o.label())
	return nil
}

// InsertBefore inserts newChild before ref, or appends it when ref is nil.
func (d *DOM) InsertBefore(parent, newChild, ref any) error {
	if ref == nil {
		return d.AppendChild(parent, newChild)
	}
	p, n, err := d.pair(parent, newChild)
	if err != nil {
		return err
	}
	r, err := d.node(ref)
	if err != nil {
		return err
	}
	if r.Parent != p {
		return ErrNotChild
	}
	n.detach()
	i := slices.Index(p.Children, r)
	p.Children = slices.Insert(p.Children, i, n)
	n.Parent = p
	d.log("InsertBefore", p.Tag, n.label(), r.label())
	return nil
}

// SetAttribute sets an attribute on an element.
func (d *DOM) SetAttribute(h any, name, value string) error {
	n, err := d.element(h)
	if err != nil {
		return err
	}
	n.Attrs[name] = value
	d.log("SetAttribute", n.Tag, name, fmt.Sprintf("%q", value))
	return nil
}

// RemoveAttribute removes an attribute from an element.
func (d *DOM) RemoveAttribute(h any, name string) error {
	n, err := d.element(h)
	if err != nil {
		return err
	}
	delete(n.Attrs, name)
	d.log("RemoveAttribute", n.Tag, name)
	return nil
}

// SetNodeValue replaces the content of a text node.
func (d *DOM) SetNodeValue(h any, text string) error {
	n, err := d.node(h)
	if err != nil {
		return err
	}
	if !n.IsText() {
		return ErrNotText
	}
	n.Text = text
	d.log("SetNodeValue", fmt.Sprintf("%q", text))
	return nil
}

// SetProperty sets a property on an element. Setting "innerHTML" replaces
// the element's children with the raw markup.
func (d *DOM) SetProperty(h any, name string, value any) error {
	n, err := d.element(h)
	if err != nil {
		return err
	}
	if name == "innerHTML" {
		for len(n.Children) > 0 {
			n.Children[0].detach()
		}
	}
	n.Props[name] = value
	d.log("SetProperty", n.Tag, name)
	return nil
}

// Release marks a node as no longer referenced. Later operations on it fail
// with ErrReleased.
func (d *DOM) Release(h any) {
	n, err := d.node(h)
	if err != nil {
		return
	}
	n.released = true
	d.released++
}

// BindEvent records that events of the given type on h report id.
func (d *DOM) BindEvent(h any, id uint64, eventType string) error {
	n, err := d.element(h)
	if err != nil {
		return err
	}
	if n.Events == nil {
		n.Events = make(map[string]uint64)
	}
	n.Events[eventType] = id
	d.log("BindEvent", n.Tag, eventType)
	return nil
}

// UnbindEvent removes an event binding.
func (d *DOM) UnbindEvent(h any, id uint64, eventType string) error {
	n, err := d.element(h)
	if err != nil {
		return err
	}
	delete(n.Events, eventType)
	d.log("UnbindEvent", n.Tag, eventType)
	return nil
}

func (n *Node) label() string {
	if n.Comment {
		return "<!--" + n.Text + "-->"
	}
	if n.IsText() {
		return fmt.Sprintf("%q", n.Text)
	}
	return n.Tag
}
