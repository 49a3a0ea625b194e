package vdom

import (
	"fmt"

	"github.com/vango-dev/zx/pkg/zx"
)

var errUnmounted = fmt.Errorf("%w: tree is unmounted", ErrInvalidNodeOperation)

// Diff computes the patches that bring the tree in line with next.
//
// Children are matched by position. A node whose type changed is replaced
// wholesale; a matching element gets at most one Update patch for its
// attributes, then its children are compared pairwise. Extra old children
// are deleted and extra new children are appended, both in order.
//
// Text content and event handlers are refreshed in place while diffing and
// never produce patches. Deferred components are evaluated first.
func (t *Tree) Diff(next zx.Component) ([]Patch, error) {
	if t.root == nil {
		return nil, errUnmounted
	}
	root, err := t.resolve(next)
	if err != nil {
		return nil, err
	}
	var patches []Patch
	if err := t.diff(t.root, nil, root, &patches); err != nil {
		return nil, err
	}
	return patches, nil
}

// sameType extends zx.SameType: raw and escaped text are materialized
// differently and never match.
func sameType(v *VElement, c zx.Component) bool {
	return zx.SameType(v.Component, c) && v.Component.Raw == c.Raw
}

func (t *Tree) diff(old, parent *VElement, next zx.Component, out *[]Patch) error {
	if !sameType(old, next) {
		*out = append(*out, Patch{Op: PatchReplace, Target: old, Parent: parent, New: next})
		return nil
	}

	switch next.Kind {
	case zx.KindText:
		return t.diffText(old, next)

	case zx.KindIsland, zx.KindElement:
		prev, err := effectiveAttributes(old.Component)
		if err != nil {
			return err
		}
		attrs, err := effectiveAttributes(next)
		if err != nil {
			return err
		}
		set, remove := diffAttributes(prev, attrs)
		if len(set) > 0 || len(remove) > 0 {
			*out = append(*out, Patch{
				Op:          PatchUpdate,
				Target:      old,
				New:         local(next),
				SetAttrs:    set,
				RemoveAttrs: remove,
			})
		} else {
			old.Component = local(next)
		}
		if next.Kind == zx.KindIsland {
			return nil
		}
		if err := t.syncHandlers(old, next); err != nil {
			return err
		}
		return t.diffChildren(old, next, out)

	default:
		return fmt.Errorf("%w: cannot diff component of kind %s", ErrInvalidNodeOperation, next.Kind)
	}
}

func (t *Tree) diffText(old *VElement, next zx.Component) error {
	if old.Component.Text == next.Text {
		return nil
	}
	b := t.client.backend
	if old.wrapped {
		if err := b.SetProperty(old.DOM, "innerHTML", next.Text); err != nil {
			return opError("SetProperty", old.ID, err)
		}
	} else if err := b.SetNodeValue(old.DOM, next.Text); err != nil {
		return opError("SetNodeValue", old.ID, err)
	}
	old.Component.Text = next.Text
	return nil
}

func (t *Tree) diffChildren(old *VElement, next zx.Component, out *[]Patch) error {
	kids, err := t.expand(next.Children)
	if err != nil {
		return err
	}

	n := min(len(old.Children), len(kids))
	for i := range n {
		if err := t.diff(old.Children[i], old, kids[i], out); err != nil {
			return err
		}
	}
	for _, child := range old.Children[n:] {
		*out = append(*out, Patch{Op: PatchDeletion, Target: child, Parent: old})
	}
	for _, kid := range kids[n:] {
		*out = append(*out, Patch{Op: PatchPlacement, Parent: old, New: kid})
	}
	return nil
}
