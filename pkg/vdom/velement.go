package vdom

import "github.com/vango-dev/zx/pkg/zx"

// Materialized tags for components that have no element of their own.
const (
	FragmentTag = "zx-fragment"
	RawTag      = "zx-raw"

	// ContentsStyle makes a materialized wrapper invisible to layout.
	ContentsStyle = "display:contents"

	// AttrMount carries the client-assigned island mount id.
	AttrMount = "data-zx-mount"
)

// VElement is a mounted node: a live handle plus the component it was built
// from.
//
// Component is a node-local snapshot; its Children are not kept; the
// mounted children live in Children. Deferred components never appear here,
// they are resolved before a VElement is built.
type VElement struct {
	ID        uint64
	DOM       Handle
	Component zx.Component
	Children  []*VElement

	events  []string // event types registered for ID
	wrapped bool     // raw text materialized as a RawTag element
}

// Snapshot rebuilds the component tree this element currently displays.
// Diffing a tree against its own snapshot yields no patches.
func (v *VElement) Snapshot() zx.Component {
	c := v.Component
	if len(v.Children) == 0 {
		return c
	}
	c.Children = make([]zx.Component, len(v.Children))
	for i, child := range v.Children {
		c.Children[i] = child.Snapshot()
	}
	return c
}

// local strips children from a component for storage in a VElement.
func local(c zx.Component) zx.Component {
	c.Children = nil
	return c
}

// indexOf locates a child by identity.
func (v *VElement) indexOf(child *VElement) int {
	for i, c := range v.Children {
		if c == child {
			return i
		}
	}
	return -1
}
