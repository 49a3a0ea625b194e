package zx

import (
	"fmt"
	"strconv"
	"strings"
)

// Event is delivered to event handlers by the client runtime.
type Event struct {
	Type   string // "click", "input", ...
	Target uint64 // ID of the VElement the handler is registered on
	Ref    any    // Opaque host event reference
}

// EventHandler handles a dispatched event.
type EventHandler func(Event)

// Attribute is a single element attribute. Event attributes carry a Handler
// and are never rendered as markup.
type Attribute struct {
	Name    string
	Value   string
	Handler EventHandler
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attribute) IsEmpty() bool {
	return a.Name == ""
}

// IsEvent reports whether the attribute carries an event handler.
func (a Attribute) IsEvent() bool {
	return a.Handler != nil
}

// EventType returns the event name of an event attribute ("onclick" -> "click").
func (a Attribute) EventType() string {
	name := a.Name
	if len(name) > 2 && strings.EqualFold(name[:2], "on") {
		name = name[2:]
	}
	return strings.ToLower(name)
}

// Attr creates an attribute from a Go value.
//
// Strings are used verbatim, true renders a bare attribute, false and nil drop
// the attribute, functions on "on*" names become event handlers.
func Attr(name string, v any) Attribute {
	switch x := v.(type) {
	case nil:
		return Attribute{}
	case string:
		return Attribute{Name: name, Value: x}
	case bool:
		if !x {
			return Attribute{}
		}
		return Attribute{Name: name}
	case EventHandler:
		return Attribute{Name: name, Handler: x}
	case func(Event):
		return Attribute{Name: name, Handler: x}
	case func():
		return Attribute{Name: name, Handler: func(Event) { x() }}
	case int:
		return Attribute{Name: name, Value: strconv.Itoa(x)}
	case int64:
		return Attribute{Name: name, Value: strconv.FormatInt(x, 10)}
	case uint64:
		return Attribute{Name: name, Value: strconv.FormatUint(x, 10)}
	case float64:
		return Attribute{Name: name, Value: strconv.FormatFloat(x, 'f', -1, 64)}
	case fmt.Stringer:
		return Attribute{Name: name, Value: x.String()}
	default:
		return Attribute{Name: name, Value: fmt.Sprint(x)}
	}
}
