package zx

import (
	"encoding/json"
)

// External is the value of an external-import declaration:
//
//	var Counter = zx.Import("./Counter.tsx")
//
// The compiler collects these declarations to resolve island paths.
type External string

// Import declares an externally rendered component module.
func Import(path string) External {
	return External(path)
}

// Props are the properties forwarded to an island.
type Props map[string]any

// IslandRef identifies an externally rendered component.
type IslandRef struct {
	ID    string // Stable content-derived ID ("zx-…")
	Name  string // Component name
	Path  string // Module path the client loads
	Props Props
}

// Island creates a component whose rendering is delegated to an external
// client-side module.
func Island(ref IslandRef, props Props) Component {
	ref.Props = props
	return Component{Kind: KindIsland, Island: &ref}
}

// PropsJSON returns the props serialized as JSON, or "" when there are none.
func (r *IslandRef) PropsJSON() (string, error) {
	if r == nil || len(r.Props) == 0 {
		return "", nil
	}
	data, err := json.Marshal(r.Props)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Island marker attributes.
const (
	AttrIslandName  = "data-zx-island"
	AttrIslandPath  = "data-zx-path"
	AttrIslandProps = "data-zx-props"
)

// IslandAttributes returns the attributes of the placeholder element the
// client mounts an island into.
func IslandAttributes(r *IslandRef) ([]Attribute, error) {
	props, err := r.PropsJSON()
	if err != nil {
		return nil, err
	}
	attrs := []Attribute{
		{Name: "id", Value: r.ID},
		{Name: AttrIslandName, Value: r.Name},
		{Name: AttrIslandPath, Value: r.Path},
	}
	if props != "" {
		attrs = append(attrs, Attribute{Name: AttrIslandProps, Value: props})
	}
	return attrs, nil
}
