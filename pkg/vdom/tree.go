package vdom

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/zx/pkg/zx"
)

type handlerKey struct {
	id        uint64
	eventType string
}

// Tree is a mounted component tree. A Tree is not safe for concurrent use:
// Diff, Apply, Update and DispatchEvent must be serialized by the caller.
type Tree struct {
	client    *Client
	container Handle
	root      *VElement

	// ids indexes mounted elements. It does not own them; the tree does.
	ids      map[uint64]*VElement
	handlers map[handlerKey]zx.EventHandler
}

func newTree(c *Client, container Handle) *Tree {
	return &Tree{
		client:    c,
		container: container,
		ids:       make(map[uint64]*VElement),
		handlers:  make(map[handlerKey]zx.EventHandler),
	}
}

// Root returns the root element, or nil after Unmount.
func (t *Tree) Root() *VElement {
	return t.root
}

// Container returns the handle the tree is mounted in.
func (t *Tree) Container() Handle {
	return t.container
}

// Lookup returns the mounted element with the given id.
func (t *Tree) Lookup(id uint64) (*VElement, bool) {
	v, ok := t.ids[id]
	return v, ok
}

// Len returns the number of mounted elements.
func (t *Tree) Len() int {
	return len(t.ids)
}

// Snapshot returns the component tree currently displayed.
func (t *Tree) Snapshot() zx.Component {
	if t.root == nil {
		return zx.Component{}
	}
	return t.root.Snapshot()
}

// DispatchEvent routes an event to the handler registered for the element.
func (t *Tree) DispatchEvent(id uint64, eventType string, ref any) error {
	h, ok := t.handlers[handlerKey{id, eventType}]
	if !ok {
		return fmt.Errorf("%w: %s on element %d", ErrHandlerNotFound, eventType, id)
	}
	h(zx.Event{Type: eventType, Target: id, Ref: ref})
	return nil
}

// Unmount removes the tree from its container and releases every handle.
func (t *Tree) Unmount() error {
	if t.root == nil {
		return nil
	}
	root := t.root
	if err := opError("RemoveChild", root.ID, t.client.backend.RemoveChild(t.container, root.DOM)); err != nil {
		return err
	}
	t.teardown(root)
	t.root = nil
	return nil
}

// resolve evaluates deferred components until a concrete one remains. A
// failing component is rendered as nothing when the client skips errors.
// The zero component at the root is materialized as an empty fragment.
func (t *Tree) resolve(c zx.Component) (zx.Component, error) {
	out, err := c.Resolve()
	if err != nil {
		if !t.client.opts.SkipComponentErrors {
			return zx.Component{}, err
		}
		t.client.opts.Logger.Warn("vdom: skipping component", "error", err)
		out = zx.Component{}
	}
	if out.IsZero() {
		return zx.Fragment(), nil
	}
	return out, nil
}

// expand resolves deferred children and drops those that render nothing.
func (t *Tree) expand(children []zx.Component) ([]zx.Component, error) {
	out := make([]zx.Component, 0, len(children))
	for _, c := range children {
		if c.Kind == zx.KindFunc {
			r, err := c.Resolve()
			if err != nil {
				if !t.client.opts.SkipComponentErrors {
					return nil, err
				}
				t.client.opts.Logger.Warn("vdom: skipping component", "error", err)
				continue
			}
			c = r
		}
		if !c.IsZero() {
			out = append(out, c)
		}
	}
	return out, nil
}

// build creates the live nodes for a resolved component. parentTag is the
// component tag of the enclosing element.
func (t *Tree) build(c zx.Component, parentTag string) (v *VElement, err error) {
	b := t.client.backend
	v = &VElement{ID: t.client.newID(), Component: local(c)}
	t.ids[v.ID] = v
	defer func() {
		if err != nil {
			t.teardown(v)
			v = nil
		}
	}()

	switch c.Kind {
	case zx.KindText:
		if c.Raw && parentTag != "script" && parentTag != "style" {
			v.wrapped = true
			if v.DOM, err = b.CreateElement(RawTag); err != nil {
				return v, opError("CreateElement", v.ID, err)
			}
			if err = b.SetAttribute(v.DOM, "style", ContentsStyle); err != nil {
				return v, opError("SetAttribute", v.ID, err)
			}
			return v, opError("SetProperty", v.ID, b.SetProperty(v.DOM, "innerHTML", c.Text))
		}
		v.DOM, err = b.CreateTextNode(c.Text)
		return v, opError("CreateTextNode", v.ID, err)

	case zx.KindIsland:
		if v.DOM, err = b.CreateElement("div"); err != nil {
			return v, opError("CreateElement", v.ID, err)
		}
		attrs, err := effectiveAttributes(c)
		if err != nil {
			return v, err
		}
		attrs[AttrMount] = strconv.FormatUint(t.client.newMountID(), 10)
		for _, name := range sortedKeys(attrs) {
			if err := b.SetAttribute(v.DOM, name, attrs[name]); err != nil {
				return v, opError("SetAttribute", v.ID, err)
			}
		}
		return v, nil

	case zx.KindElement:
		tag := c.Tag
		if c.IsFragment() {
			tag = FragmentTag
		}
		if v.DOM, err = b.CreateElement(tag); err != nil {
			return v, opError("CreateElement", v.ID, err)
		}
		if c.IsFragment() {
			if err := b.SetAttribute(v.DOM, "style", ContentsStyle); err != nil {
				return v, opError("SetAttribute", v.ID, err)
			}
		}
		attrs, err := effectiveAttributes(c)
		if err != nil {
			return v, err
		}
		for _, name := range sortedKeys(attrs) {
			if err := b.SetAttribute(v.DOM, name, attrs[name]); err != nil {
				return v, opError("SetAttribute", v.ID, err)
			}
		}
		if err := t.syncHandlers(v, c); err != nil {
			return v, err
		}

		kids, err := t.expand(c.Children)
		if err != nil {
			return v, err
		}
		for _, k := range kids {
			child, err := t.build(k, c.Tag)
			if err != nil {
				return v, err
			}
			if err := b.AppendChild(v.DOM, child.DOM); err != nil {
				t.teardown(child)
				return v, opError("AppendChild", child.ID, err)
			}
			v.Children = append(v.Children, child)
		}
		return v, nil

	default:
		return v, fmt.Errorf("%w: cannot mount component of kind %s", ErrInvalidNodeOperation, c.Kind)
	}
}

// teardown unregisters an element and its subtree and releases the handles.
func (t *Tree) teardown(v *VElement) {
	for _, child := range v.Children {
		t.teardown(child)
	}
	for _, typ := range v.events {
		delete(t.handlers, handlerKey{v.ID, typ})
	}
	v.events = nil
	delete(t.ids, v.ID)
	if r, ok := t.client.backend.(Releaser); ok && v.DOM != nil {
		r.Release(v.DOM)
	}
}

// syncHandlers makes the handler registry for v match the event attributes
// of c, binding and unbinding event types with the backend as they appear
// and disappear.
func (t *Tree) syncHandlers(v *VElement, c zx.Component) error {
	next := eventHandlers(c)
	binder, _ := t.client.backend.(EventBinder)

	kept := v.events[:0]
	for _, typ := range v.events {
		if _, ok := next[typ]; ok {
			kept = append(kept, typ)
			continue
		}
		delete(t.handlers, handlerKey{v.ID, typ})
		if binder != nil {
			if err := binder.UnbindEvent(v.DOM, v.ID, typ); err != nil {
				return opError("UnbindEvent", v.ID, err)
			}
		}
	}
	v.events = kept

	for _, typ := range sortedKeys(next) {
		key := handlerKey{v.ID, typ}
		if _, bound := t.handlers[key]; !bound {
			if binder != nil {
				if err := binder.BindEvent(v.DOM, v.ID, typ); err != nil {
					return opError("BindEvent", v.ID, err)
				}
			}
			v.events = append(v.events, typ)
		}
		t.handlers[key] = next[typ]
	}
	return nil
}
