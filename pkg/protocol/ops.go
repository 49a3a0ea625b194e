package protocol

import (
	"errors"
	"fmt"
)

// OpCode identifies a backend operation on the wire.
type OpCode uint8

const (
	OpContainer       OpCode = 0x01 // Bind Node to the mount point named Name
	OpCreateElement   OpCode = 0x02
	OpCreateText      OpCode = 0x03
	OpAppendChild     OpCode = 0x04
	OpRemoveChild     OpCode = 0x05
	OpReplaceChild    OpCode = 0x06
	OpInsertBefore    OpCode = 0x07
	OpSetAttribute    OpCode = 0x08
	OpRemoveAttribute OpCode = 0x09
	OpSetNodeValue    OpCode = 0x0A
	OpSetProperty     OpCode = 0x0B
	OpRelease         OpCode = 0x0C
	OpBindEvent       OpCode = 0x0D
	OpUnbindEvent     OpCode = 0x0E
)

var opNames = [...]string{
	OpContainer:       "Container",
	OpCreateElement:   "CreateElement",
	OpCreateText:      "CreateText",
	OpAppendChild:     "AppendChild",
	OpRemoveChild:     "RemoveChild",
	OpReplaceChild:    "ReplaceChild",
	OpInsertBefore:    "InsertBefore",
	OpSetAttribute:    "SetAttribute",
	OpRemoveAttribute: "RemoveAttribute",
	OpSetNodeValue:    "SetNodeValue",
	OpSetProperty:     "SetProperty",
	OpRelease:         "Release",
	OpBindEvent:       "BindEvent",
	OpUnbindEvent:     "UnbindEvent",
}

// String returns the string representation of the op code.
func (c OpCode) String() string {
	if int(c) < len(opNames) && opNames[c] != "" {
		return opNames[c]
	}
	return "Unknown"
}

// Op is one backend operation. Nodes are numbered by the recording side;
// zero is never a valid node.
type Op struct {
	Code   OpCode
	Node   uint64 // Node created or mutated; the moved child for tree ops
	Parent uint64 // AppendChild, RemoveChild, ReplaceChild, InsertBefore
	Ref    uint64 // InsertBefore: next sibling (0 appends); ReplaceChild: old child
	Name   string // Container id, tag, attribute, property or event type
	Value  string // Text or attribute value
	Prop   any    // SetProperty: nil, bool, float64 or string
	ID     uint64 // BindEvent, UnbindEvent: element id events report
}

// Property value tags.
const (
	propNull   = 0x00
	propBool   = 0x01
	propFloat  = 0x02
	propString = 0x03
)

// Op decoding errors.
var (
	ErrInvalidOp        = errors.New("protocol: invalid op code")
	ErrInvalidPropValue = errors.New("protocol: invalid property value")
)

// PropValue converts a property value into its wire form.
func PropValue(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, float64, string:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case float32:
		return float64(x), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidPropValue, v)
	}
}

// EncodeOp appends one op.
//
//	[Code: byte][Node: varint][code-specific fields]
func EncodeOp(enc *Encoder, op Op) {
	enc.WriteByte(byte(op.Code))
	enc.WriteUvarint(op.Node)

	switch op.Code {
	case OpContainer, OpCreateElement, OpRemoveAttribute:
		enc.WriteString(op.Name)
	case OpCreateText, OpSetNodeValue:
		enc.WriteString(op.Value)
	case OpAppendChild, OpRemoveChild:
		enc.WriteUvarint(op.Parent)
	case OpReplaceChild, OpInsertBefore:
		enc.WriteUvarint(op.Parent)
		enc.WriteUvarint(op.Ref)
	case OpSetAttribute:
		enc.WriteString(op.Name)
		enc.WriteString(op.Value)
	case OpSetProperty:
		enc.WriteString(op.Name)
		encodeProp(enc, op.Prop)
	case OpBindEvent, OpUnbindEvent:
		enc.WriteUvarint(op.ID)
		enc.WriteString(op.Name)
	case OpRelease:
	}
}

func encodeProp(enc *Encoder, v any) {
	switch x := v.(type) {
	case bool:
		enc.WriteByte(propBool)
		enc.WriteBool(x)
	case float64:
		enc.WriteByte(propFloat)
		enc.WriteFloat64(x)
	case string:
		enc.WriteByte(propString)
		enc.WriteString(x)
	default:
		enc.WriteByte(propNull)
	}
}

// DecodeOp reads one op.
func DecodeOp(d *Decoder) (Op, error) {
	b, err := d.ReadByte()
	if err != nil {
		return Op{}, err
	}
	op := Op{Code: OpCode(b)}
	if op.Node, err = d.ReadUvarint(); err != nil {
		return Op{}, err
	}

	switch op.Code {
	case OpContainer, OpCreateElement, OpRemoveAttribute:
		op.Name, err = d.ReadString()
	case OpCreateText, OpSetNodeValue:
		op.Value, err = d.ReadString()
	case OpAppendChild, OpRemoveChild:
		op.Parent, err = d.ReadUvarint()
	case OpReplaceChild, OpInsertBefore:
		if op.Parent, err = d.ReadUvarint(); err == nil {
			op.Ref, err = d.ReadUvarint()
		}
	case OpSetAttribute:
		if op.Name, err = d.ReadString(); err == nil {
			op.Value, err = d.ReadString()
		}
	case OpSetProperty:
		if op.Name, err = d.ReadString(); err == nil {
			op.Prop, err = decodeProp(d)
		}
	case OpBindEvent, OpUnbindEvent:
		if op.ID, err = d.ReadUvarint(); err == nil {
			op.Name, err = d.ReadString()
		}
	case OpRelease:
	default:
		return Op{}, fmt.Errorf("%w: 0x%02x", ErrInvalidOp, b)
	}
	if err != nil {
		return Op{}, err
	}
	return op, nil
}

func decodeProp(d *Decoder) (any, error) {
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case propNull:
		return nil, nil
	case propBool:
		return d.ReadBool()
	case propFloat:
		return d.ReadFloat64()
	case propString:
		return d.ReadString()
	default:
		return nil, fmt.Errorf("%w: tag 0x%02x", ErrInvalidPropValue, tag)
	}
}

// EncodeOps encodes a batch payload.
//
//	[Seq: varint][Count: varint][Op]...
func EncodeOps(seq uint64, ops []Op) []byte {
	enc := NewEncoder()
	enc.WriteUvarint(seq)
	enc.WriteUvarint(uint64(len(ops)))
	for _, op := range ops {
		EncodeOp(enc, op)
	}
	return enc.Bytes()
}

// DecodeOps decodes a batch payload.
func DecodeOps(data []byte) (uint64, []Op, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return 0, nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return 0, nil, err
	}
	ops := make([]Op, 0, count)
	for range count {
		op, err := DecodeOp(d)
		if err != nil {
			return 0, nil, err
		}
		ops = append(ops, op)
	}
	return seq, ops, nil
}
