package vdom

import (
	"cmp"
	"slices"

	"github.com/vango-dev/zx/pkg/zx"
)

// effectiveAttributes returns the attributes set on the live node for c:
// the non-event attributes of an element, or the placeholder attributes of an
// island. Later duplicates win.
func effectiveAttributes(c zx.Component) (map[string]string, error) {
	attrs := c.Attributes
	if c.Kind == zx.KindIsland {
		var err error
		if attrs, err = zx.IslandAttributes(c.Island); err != nil {
			return nil, err
		}
	}
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.IsEmpty() || a.IsEvent() {
			continue
		}
		out[a.Name] = a.Value
	}
	return out, nil
}

// eventHandlers returns the handlers of c keyed by event type.
func eventHandlers(c zx.Component) map[string]zx.EventHandler {
	if c.Kind != zx.KindElement {
		return nil
	}
	var out map[string]zx.EventHandler
	for _, a := range c.Attributes {
		if !a.IsEvent() {
			continue
		}
		if out == nil {
			out = make(map[string]zx.EventHandler)
		}
		out[a.EventType()] = a.Handler
	}
	return out
}

// diffAttributes returns the attributes to set (new or changed values) and
// the names to remove (absent from next), sorted.
func diffAttributes(prev, next map[string]string) (set map[string]string, remove []string) {
	for name, v := range next {
		if old, ok := prev[name]; ok && old == v {
			continue
		}
		if set == nil {
			set = make(map[string]string)
		}
		set[name] = v
	}
	for name := range prev {
		if _, ok := next[name]; !ok {
			remove = append(remove, name)
		}
	}
	slices.Sort(remove)
	return set, remove
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
