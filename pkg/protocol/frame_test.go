package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	f := NewFrame(FrameOps, FlagFinal, []byte("payload"))
	data := f.Encode()

	if len(data) != FrameHeaderSize+7 {
		t.Fatalf("encoded length = %d, want %d", len(data), FrameHeaderSize+7)
	}
	if data[0] != byte(FrameOps) || data[1] != byte(FlagFinal) || data[2] != 0 || data[3] != 7 {
		t.Errorf("header = % x", data[:FrameHeaderSize])
	}

	trailing := append(data, 0xAA)
	got, rest, err := DecodeFrame(trailing)
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != FrameOps || !got.Flags.Has(FlagFinal) || string(got.Payload) != "payload" {
		t.Errorf("decoded = %+v", got)
	}
	if !bytes.Equal(rest, []byte{0xAA}) {
		t.Errorf("rest = % x", rest)
	}
}

func TestFrameErrors(t *testing.T) {
	if _, _, err := DecodeFrame([]byte{0x01, 0}); err != io.ErrUnexpectedEOF {
		t.Errorf("short header: err = %v", err)
	}
	if _, _, err := DecodeFrame([]byte{0x01, 0, 0, 5, 'a'}); err != io.ErrUnexpectedEOF {
		t.Errorf("short payload: err = %v", err)
	}
	if _, _, err := DecodeFrame([]byte{0x7F, 0, 0, 0}); !errors.Is(err, ErrInvalidFrameType) {
		t.Errorf("bad type: err = %v", err)
	}

	big := NewFrame(FrameOps, 0, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(io.Discard, big); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("oversized frame: err = %v", err)
	}
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	frames := []*Frame{
		NewFrame(FrameOps, 0, []byte{1, 2, 3}),
		NewFrame(FrameEvent, FlagFinal, nil),
	}
	for _, f := range frames {
		if err := WriteFrame(&buf, f); err != nil {
			t.Fatal(err)
		}
	}

	for i, want := range frames {
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if got.Type != want.Type || got.Flags != want.Flags || !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("frame %d = %+v, want %+v", i, got, want)
		}
	}
	if _, err := ReadFrame(&buf); err != io.EOF {
		t.Errorf("after last frame: err = %v, want io.EOF", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := []struct {
		ft   FrameType
		want string
	}{
		{FrameOps, "Ops"},
		{FrameEvent, "Event"},
		{FrameType(0x42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.ft.String(); got != tt.want {
			t.Errorf("FrameType(%d).String() = %q, want %q", tt.ft, got, tt.want)
		}
	}
}
