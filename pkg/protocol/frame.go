package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// FrameHeaderSize is type, flags and a big-endian uint16 payload length.
	FrameHeaderSize = 4

	// MaxPayloadSize is the largest payload the length field can carry.
	MaxPayloadSize = 1<<16 - 1
)

// FrameType says which way a frame travels.
type FrameType uint8

const (
	FrameOps   FrameType = 0x01 // runtime to bridge
	FrameEvent FrameType = 0x02 // bridge to runtime
)

func (ft FrameType) String() string {
	switch ft {
	case FrameOps:
		return "Ops"
	case FrameEvent:
		return "Event"
	}
	return "Unknown"
}

func (ft FrameType) valid() bool { return ft == FrameOps || ft == FrameEvent }

type FrameFlags uint8

// FlagFinal marks the last frame of a batch. Recorder splits batches
// larger than MaxPayloadSize.
const FlagFinal FrameFlags = 0x01

func (ff FrameFlags) Has(flag FrameFlags) bool { return ff&flag != 0 }

var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is one unit on the wire:
//
//	+--------+--------+------------------+=========+
//	| type   | flags  | length (uint16)  | payload |
//	+--------+--------+------------------+=========+
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

func NewFrame(ft FrameType, flags FrameFlags, payload []byte) *Frame {
	return &Frame{Type: ft, Flags: flags, Payload: payload}
}

// Encode returns the header followed by the payload.
func (f *Frame) Encode() []byte {
	buf := make([]byte, 0, FrameHeaderSize+len(f.Payload))
	buf = append(buf, byte(f.Type), byte(f.Flags))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(f.Payload)))
	return append(buf, f.Payload...)
}

// parseHeader validates a header and returns the frame it starts along with
// the payload length still to read.
func parseHeader(h []byte) (*Frame, int, error) {
	ft := FrameType(h[0])
	if !ft.valid() {
		return nil, 0, fmt.Errorf("%w: 0x%02x", ErrInvalidFrameType, h[0])
	}
	return &Frame{Type: ft, Flags: FrameFlags(h[1])}, int(binary.BigEndian.Uint16(h[2:4])), nil
}

// DecodeFrame decodes the frame at the start of data and returns the rest.
// The payload is copied out of data.
func DecodeFrame(data []byte) (*Frame, []byte, error) {
	if len(data) < FrameHeaderSize {
		return nil, nil, io.ErrUnexpectedEOF
	}
	f, n, err := parseHeader(data)
	if err != nil {
		return nil, nil, err
	}
	body := data[FrameHeaderSize:]
	if len(body) < n {
		return nil, nil, io.ErrUnexpectedEOF
	}
	f.Payload = bytes.Clone(body[:n])
	return f, body[n:], nil
}

// ReadFrame reads one frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	var h [FrameHeaderSize]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return nil, err
	}
	f, n, err := parseHeader(h[:])
	if err != nil {
		return nil, err
	}
	f.Payload = make([]byte, n)
	if _, err := io.ReadFull(r, f.Payload); err != nil {
		return nil, err
	}
	return f, nil
}

// WriteFrame writes f to w in one call.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxPayloadSize {
		return ErrFrameTooLarge
	}
	_, err := w.Write(f.Encode())
	return err
}
