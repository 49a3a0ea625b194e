package vdom

import (
	"fmt"
	"slices"

	"github.com/vango-dev/zx/pkg/zx"
)

// Apply applies patches in order. The first failing patch aborts the batch;
// patches before it stay applied.
func (t *Tree) Apply(patches []Patch) error {
	if t.root == nil {
		return errUnmounted
	}
	for i, p := range patches {
		if err := t.apply(p); err != nil {
			t.client.opts.Logger.Debug("vdom: patch failed", "index", i, "op", p.Op, "error", err)
			return err
		}
	}
	if len(patches) > 0 {
		t.client.opts.Logger.Debug("vdom: applied patches", "count", len(patches), "elements", len(t.ids))
	}
	return nil
}

// Update diffs the tree against next and applies the result.
func (t *Tree) Update(next zx.Component) error {
	patches, err := t.Diff(next)
	if err != nil {
		return err
	}
	return t.Apply(patches)
}

func (t *Tree) apply(p Patch) error {
	b := t.client.backend

	switch p.Op {
	case PatchUpdate:
		if err := t.mounted(p.Target); err != nil {
			return err
		}
		for _, name := range sortedKeys(p.SetAttrs) {
			if err := b.SetAttribute(p.Target.DOM, name, p.SetAttrs[name]); err != nil {
				return opError("SetAttribute", p.Target.ID, err)
			}
		}
		for _, name := range p.RemoveAttrs {
			if err := b.RemoveAttribute(p.Target.DOM, name); err != nil {
				return opError("RemoveAttribute", p.Target.ID, err)
			}
		}
		p.Target.Component = local(p.New)
		return nil

	case PatchPlacement:
		if err := t.mounted(p.Parent); err != nil {
			return err
		}
		at := len(p.Parent.Children)
		if p.Ref != nil {
			if at = p.Parent.indexOf(p.Ref); at < 0 {
				return fmt.Errorf("%w: element %d is not a child of %d", ErrInvalidNodeOperation, p.Ref.ID, p.Parent.ID)
			}
		}
		child, err := t.build(p.New, p.Parent.Component.Tag)
		if err != nil {
			return err
		}
		if p.Ref != nil {
			err = opError("InsertBefore", child.ID, b.InsertBefore(p.Parent.DOM, child.DOM, p.Ref.DOM))
		} else {
			err = opError("AppendChild", child.ID, b.AppendChild(p.Parent.DOM, child.DOM))
		}
		if err != nil {
			t.teardown(child)
			return err
		}
		p.Parent.Children = slices.Insert(p.Parent.Children, at, child)
		return nil

	case PatchDeletion:
		if err := t.mounted(p.Target); err != nil {
			return err
		}
		if p.Parent == nil {
			return fmt.Errorf("%w: cannot delete the root element", ErrInvalidNodeOperation)
		}
		at := p.Parent.indexOf(p.Target)
		if at < 0 {
			return fmt.Errorf("%w: element %d is not a child of %d", ErrInvalidNodeOperation, p.Target.ID, p.Parent.ID)
		}
		if err := b.RemoveChild(p.Parent.DOM, p.Target.DOM); err != nil {
			return opError("RemoveChild", p.Target.ID, err)
		}
		p.Parent.Children = slices.Delete(p.Parent.Children, at, at+1)
		t.teardown(p.Target)
		return nil

	case PatchReplace:
		if err := t.mounted(p.Target); err != nil {
			return err
		}
		parentDOM, parentTag, at := t.container, "", -1
		if p.Parent != nil {
			if at = p.Parent.indexOf(p.Target); at < 0 {
				return fmt.Errorf("%w: element %d is not a child of %d", ErrInvalidNodeOperation, p.Target.ID, p.Parent.ID)
			}
			parentDOM, parentTag = p.Parent.DOM, p.Parent.Component.Tag
		} else if p.Target != t.root {
			return fmt.Errorf("%w: element %d has no parent", ErrInvalidNodeOperation, p.Target.ID)
		}
		next, err := t.build(p.New, parentTag)
		if err != nil {
			return err
		}
		if err := b.ReplaceChild(parentDOM, next.DOM, p.Target.DOM); err != nil {
			t.teardown(next)
			return opError("ReplaceChild", p.Target.ID, err)
		}
		if p.Parent != nil {
			p.Parent.Children[at] = next
		} else {
			t.root = next
		}
		t.teardown(p.Target)
		return nil

	default:
		return fmt.Errorf("%w: unknown patch op %d", ErrInvalidNodeOperation, p.Op)
	}
}

// mounted checks that v is still part of the tree. Patches computed before
// an earlier Apply may reference torn-down elements.
func (t *Tree) mounted(v *VElement) error {
	if v == nil {
		return fmt.Errorf("%w: patch has no target", ErrInvalidNodeOperation)
	}
	if t.ids[v.ID] != v {
		return fmt.Errorf("%w: element %d is not mounted", ErrInvalidNodeOperation, v.ID)
	}
	return nil
}
