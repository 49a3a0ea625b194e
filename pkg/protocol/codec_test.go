package protocol

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestCodecRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteByte(0x42)
	e.WriteBytes([]byte{0x01, 0x02})
	e.WriteUvarint(12345)
	e.WriteString("héllo")
	e.WriteString("")
	e.WriteBool(true)
	e.WriteBool(false)
	e.WriteFloat64(-2.5)

	d := NewDecoder(e.Bytes())
	for _, want := range []byte{0x42, 0x01, 0x02} {
		if b, err := d.ReadByte(); err != nil || b != want {
			t.Fatalf("ReadByte() = %#x, %v; want %#x", b, err, want)
		}
	}
	if v, err := d.ReadUvarint(); err != nil || v != 12345 {
		t.Errorf("ReadUvarint() = %d, %v", v, err)
	}
	for _, want := range []string{"héllo", ""} {
		if s, err := d.ReadString(); err != nil || s != want {
			t.Errorf("ReadString() = %q, %v; want %q", s, err, want)
		}
	}
	for _, want := range []bool{true, false} {
		if b, err := d.ReadBool(); err != nil || b != want {
			t.Errorf("ReadBool() = %v, %v; want %v", b, err, want)
		}
	}
	if f, err := d.ReadFloat64(); err != nil || f != -2.5 {
		t.Errorf("ReadFloat64() = %v, %v", f, err)
	}
	if !d.EOF() || d.Remaining() != 0 {
		t.Errorf("%d bytes left over", d.Remaining())
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("test")
	if e.Len() != 5 {
		t.Errorf("Len() = %d, want 5", e.Len())
	}
	e.Reset()
	if e.Len() != 0 || len(e.Bytes()) != 0 {
		t.Error("encoder not empty after Reset")
	}
}

func TestUvarint(t *testing.T) {
	tests := []struct {
		v    uint64
		size int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{math.MaxUint32, 5},
		{math.MaxUint64, 10},
	}
	for _, tt := range tests {
		e := NewEncoder()
		e.WriteUvarint(tt.v)
		if e.Len() != tt.size {
			t.Errorf("WriteUvarint(%d) wrote %d bytes, want %d", tt.v, e.Len(), tt.size)
		}
		if got, err := NewDecoder(e.Bytes()).ReadUvarint(); err != nil || got != tt.v {
			t.Errorf("ReadUvarint() = %d, %v; want %d", got, err, tt.v)
		}
	}
}

func TestDecoderErrors(t *testing.T) {
	tooMany := NewEncoder()
	tooMany.WriteUvarint(MaxCollectionCount + 1)

	short := NewEncoder()
	short.WriteUvarint(50)
	short.WriteBytes([]byte{1, 2, 3})

	huge := NewEncoder()
	huge.WriteUvarint(MaxAllocation + 1)

	tests := []struct {
		name string
		read func(*Decoder) error
		in   []byte
		want error
	}{
		{"byte on empty", func(d *Decoder) error { _, err := d.ReadByte(); return err }, nil, io.ErrUnexpectedEOF},
		{"float on short", func(d *Decoder) error { _, err := d.ReadFloat64(); return err }, []byte{1, 2, 3}, io.ErrUnexpectedEOF},
		{"uvarint on empty", func(d *Decoder) error { _, err := d.ReadUvarint(); return err }, nil, io.ErrUnexpectedEOF},
		{"uvarint unterminated", func(d *Decoder) error { _, err := d.ReadUvarint(); return err }, []byte{0x80, 0x80}, io.ErrUnexpectedEOF},
		{"uvarint overflow", func(d *Decoder) error { _, err := d.ReadUvarint(); return err },
			[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}, ErrVarintOverflow},
		{"string past end", func(d *Decoder) error { _, err := d.ReadString(); return err }, []byte{10}, io.ErrUnexpectedEOF},
		{"string too large", func(d *Decoder) error { _, err := d.ReadString(); return err }, huge.Bytes(), ErrAllocationTooLarge},
		{"collection too large", func(d *Decoder) error { _, err := d.ReadCollectionCount(); return err }, tooMany.Bytes(), ErrCollectionTooLarge},
		{"collection past end", func(d *Decoder) error { _, err := d.ReadCollectionCount(); return err }, short.Bytes(), io.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.read(NewDecoder(tt.in)); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func BenchmarkEncoder(b *testing.B) {
	e := NewEncoder()
	for b.Loop() {
		e.Reset()
		e.WriteUvarint(12345)
		e.WriteString("hello world")
		e.WriteBool(true)
	}
}
