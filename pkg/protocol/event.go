package protocol

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// EventType identifies the type of client event. Common DOM events have a
// one-byte code; anything else travels as EventCustom with its name.
type EventType uint8

const (
	EventClick    EventType = 0x01
	EventDblClick EventType = 0x02
	EventInput    EventType = 0x10
	EventChange   EventType = 0x11
	EventSubmit   EventType = 0x12
	EventFocus    EventType = 0x13
	EventBlur     EventType = 0x14
	EventKeyDown  EventType = 0x20
	EventKeyUp    EventType = 0x21
	EventCustom   EventType = 0xFF
)

var eventNames = map[EventType]string{
	EventClick:    "click",
	EventDblClick: "dblclick",
	EventInput:    "input",
	EventChange:   "change",
	EventSubmit:   "submit",
	EventFocus:    "focus",
	EventBlur:     "blur",
	EventKeyDown:  "keydown",
	EventKeyUp:    "keyup",
}

// String returns the DOM event name, or "custom".
func (et EventType) String() string {
	if name, ok := eventNames[et]; ok {
		return name
	}
	return "custom"
}

// ParseEventType returns the code of a DOM event name. Unknown names map to
// EventCustom.
func ParseEventType(name string) EventType {
	name = strings.ToLower(name)
	for et, n := range eventNames {
		if n == name {
			return et
		}
	}
	return EventCustom
}

// Modifiers represents keyboard modifier keys.
type Modifiers uint8

const (
	ModCtrl  Modifiers = 0x01
	ModShift Modifiers = 0x02
	ModAlt   Modifiers = 0x04
	ModMeta  Modifiers = 0x08
)

func (m Modifiers) Has(mod Modifiers) bool { return m&mod != 0 }

// KeyboardEventData is the payload of key events.
type KeyboardEventData struct {
	Key       string
	Modifiers Modifiers
}

// SubmitEventData is the payload of submit events.
type SubmitEventData struct {
	Fields map[string]string
}

// Event is a fired event reported by the remote UI.
type Event struct {
	Seq    uint64
	Type   EventType
	Name   string // EventCustom only
	Target uint64 // Element id the event was bound with
	// Payload is a string for input and change, *SubmitEventData for
	// submit, *KeyboardEventData for key events, nil otherwise.
	Payload any
}

// EventName returns the DOM event name handlers are registered under.
func (e *Event) EventName() string {
	if e.Type == EventCustom {
		return e.Name
	}
	return e.Type.String()
}

// Dispatcher routes an event to its handler. *vdom.Tree implements it.
type Dispatcher interface {
	DispatchEvent(id uint64, eventType string, ref any) error
}

// Dispatch delivers the event. The handler receives the *Event as its
// reference.
func (e *Event) Dispatch(d Dispatcher) error {
	return d.DispatchEvent(e.Target, e.EventName(), e)
}

// ErrInvalidPayload is returned for an event whose payload does not match
// its type.
var ErrInvalidPayload = errors.New("protocol: invalid event payload")

// EncodeEvent encodes an event payload. Submit fields are written in key
// order so equal events encode to equal bytes.
//
//	[Seq: varint][Type: byte][Target: varint][Name: custom only][payload]
func EncodeEvent(e *Event) ([]byte, error) {
	enc := NewEncoder()
	enc.WriteUvarint(e.Seq)
	enc.WriteByte(byte(e.Type))
	enc.WriteUvarint(e.Target)
	if e.Type == EventCustom {
		enc.WriteString(e.Name)
	}

	switch p := e.Payload.(type) {
	case nil:
		switch e.Type {
		case EventInput, EventChange:
			enc.WriteString("")
		case EventSubmit:
			enc.WriteUvarint(0)
		case EventKeyDown, EventKeyUp:
			return nil, ErrInvalidPayload
		}
	case string:
		if e.Type != EventInput && e.Type != EventChange {
			return nil, ErrInvalidPayload
		}
		enc.WriteString(p)
	case *SubmitEventData:
		if e.Type != EventSubmit {
			return nil, ErrInvalidPayload
		}
		var fields map[string]string
		if p != nil {
			fields = p.Fields
		}
		enc.WriteUvarint(uint64(len(fields)))
		for _, k := range slices.Sorted(maps.Keys(fields)) {
			enc.WriteString(k)
			enc.WriteString(fields[k])
		}
	case *KeyboardEventData:
		if (e.Type != EventKeyDown && e.Type != EventKeyUp) || p == nil {
			return nil, ErrInvalidPayload
		}
		enc.WriteString(p.Key)
		enc.WriteByte(byte(p.Modifiers))
	default:
		return nil, ErrInvalidPayload
	}
	return enc.Bytes(), nil
}

// DecodeEvent decodes an event payload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	e := &Event{}
	var err error
	if e.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	b, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	e.Type = EventType(b)
	if e.Target, err = d.ReadUvarint(); err != nil {
		return nil, err
	}

	switch e.Type {
	case EventCustom:
		e.Name, err = d.ReadString()
	case EventInput, EventChange:
		var s string
		s, err = d.ReadString()
		e.Payload = s
	case EventSubmit:
		e.Payload, err = decodeFields(d)
	case EventKeyDown, EventKeyUp:
		kb := &KeyboardEventData{}
		if kb.Key, err = d.ReadString(); err == nil {
			b, err = d.ReadByte()
			kb.Modifiers = Modifiers(b)
		}
		e.Payload = kb
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func decodeFields(d *Decoder) (*SubmitEventData, error) {
	n, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	fields := make(map[string]string, n)
	for range n {
		k, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		if fields[k], err = d.ReadString(); err != nil {
			return nil, err
		}
	}
	return &SubmitEventData{Fields: fields}, nil
}

// EventFrame wraps an encoded event in a frame.
func EventFrame(e *Event) (*Frame, error) {
	payload, err := EncodeEvent(e)
	if err != nil {
		return nil, err
	}
	return NewFrame(FrameEvent, FlagFinal, payload), nil
}
