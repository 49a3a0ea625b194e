// Package protocol implements the binary encoding used between a zx
// runtime and a remote UI.
//
// The runtime side mounts component trees on a Recorder, a vdom.Backend
// that records backend operations instead of touching a real document.
// Recorded operations are shipped as Ops frames and performed on the
// receiving side by a Replayer bound to the real backend. Events fired on
// the receiving side travel back as Event frames and are delivered to the
// tree with Event.Dispatch.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// An Ops payload is a sequence number, an op count and the ops. Each op is
// its code byte, the node number as a varint and the fields of that code.
// Strings are length-prefixed; integers are protobuf-style varints.
//
// Example SetAttribute op:
//
//	[Op: 0x08][Node: varint][Name: len-prefixed][Value: len-prefixed]
//
// # Usage Example
//
//	rec := protocol.NewRecorder()
//	rec.Container("app")
//	tree, err := vdom.NewClient(rec, vdom.Options{}).Mount("app", page)
//	...
//	err = rec.Flush(conn)
//
//	// Receiving side
//	replayer := protocol.NewReplayer(backend)
//	frame, err := protocol.ReadFrame(conn)
//	err = replayer.ApplyFrame(frame)
package protocol
