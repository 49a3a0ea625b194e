package vdom

// Handle is an opaque reference to a live UI node owned by a Backend.
// Handles are compared by identity.
type Handle = any

// Backend is the UI the tree is reconciled against: a browser DOM bridge,
// an operation recorder, or an in-memory test double.
type Backend interface {
	CreateElement(tag string) (Handle, error)
	CreateTextNode(text string) (Handle, error)
	AppendChild(parent, child Handle) error
	RemoveChild(parent, child Handle) error
	ReplaceChild(parent, newChild, oldChild Handle) error
	// InsertBefore inserts newChild before ref, or appends it when ref is nil.
	InsertBefore(parent, newChild, ref Handle) error
	SetAttribute(h Handle, name, value string) error
	RemoveAttribute(h Handle, name string) error
	SetNodeValue(h Handle, text string) error
	SetProperty(h Handle, name string, value any) error
}

// Releaser is implemented by backends that must be told when a handle is no
// longer referenced by the tree.
type Releaser interface {
	Release(h Handle)
}

// ContainerFinder is implemented by backends that can locate a mount point
// by id.
type ContainerFinder interface {
	FindContainer(id string) (Handle, bool)
}

// MarkerFinder is implemented by backends that can locate a pair of
// <!--zx:ID--> <!--/zx:ID--> comments in server-rendered markup. parent is
// the node holding both comments.
type MarkerFinder interface {
	FindMarkers(id string) (parent, start, end Handle, ok bool)
}

// EventBinder is implemented by backends that deliver events. The backend
// reports a fired event back through Tree.DispatchEvent with the id it was
// bound with.
type EventBinder interface {
	BindEvent(h Handle, id uint64, eventType string) error
	UnbindEvent(h Handle, id uint64, eventType string) error
}
