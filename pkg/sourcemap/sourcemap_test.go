package sourcemap

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestWriteVLQ(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "A"},
		{1, "C"},
		{-1, "D"},
		{15, "e"},
		{16, "gB"},
		{-17, "jB"},
	}

	for _, tt := range tests {
		var sb strings.Builder
		writeVLQ(&sb, tt.in)
		if sb.String() != tt.want {
			t.Errorf("writeVLQ(%d) = %q, want %q", tt.in, sb.String(), tt.want)
		}
	}
}

func sample() *Builder {
	b := NewBuilder("a.go", "a.zx")
	b.Add(Mapping{GenLine: 2, GenCol: 1, SrcLine: 3, SrcCol: 0})
	b.Add(Mapping{GenLine: 0, GenCol: 0, SrcLine: 0, SrcCol: 0})
	b.Add(Mapping{GenLine: 0, GenCol: 4, SrcLine: 1, SrcCol: 2})
	return b
}

func TestBuilderMap(t *testing.T) {
	m := sample().Map()

	if m.Version != 3 {
		t.Errorf("Version = %d, want 3", m.Version)
	}
	if m.Mappings != "AAAA,IACE;;CAEF" {
		t.Errorf("Mappings = %q, want %q", m.Mappings, "AAAA,IACE;;CAEF")
	}

	data, err := m.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["file"] != "a.go" {
		t.Errorf("file = %v", decoded["file"])
	}
	if _, ok := decoded["sourcesContent"]; ok {
		t.Error("sourcesContent should be omitted when not set")
	}
}

func TestBuilderSkipsDuplicatePositions(t *testing.T) {
	b := NewBuilder("a.go", "a.zx")
	b.Add(Mapping{GenLine: 0, GenCol: 0, SrcLine: 0, SrcCol: 0})
	b.Add(Mapping{GenLine: 0, GenCol: 0, SrcLine: 5, SrcCol: 5})

	if got := b.Map().Mappings; got != "AAAA" {
		t.Errorf("Mappings = %q, want AAAA", got)
	}
}

func TestResolve(t *testing.T) {
	data, err := sample().Map().JSON()
	if err != nil {
		t.Fatal(err)
	}

	pos, err := Resolve(data, 1, 5)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if pos.Line != 2 || pos.Column != 3 {
		t.Errorf("Resolve(1,5) = %d:%d, want 2:3", pos.Line, pos.Column)
	}
	if !strings.HasSuffix(pos.Source, "a.zx") {
		t.Errorf("Source = %q", pos.Source)
	}

	pos, err = Resolve(data, 3, 2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if pos.Line != 4 || pos.Column != 1 {
		t.Errorf("Resolve(3,2) = %d:%d, want 4:1", pos.Line, pos.Column)
	}
}

func TestResolveNotMapped(t *testing.T) {
	b := NewBuilder("a.go", "a.zx")
	b.Add(Mapping{GenLine: 4, GenCol: 0, SrcLine: 0, SrcCol: 0})
	data, _ := b.Map().JSON()

	_, err := Resolve(data, 1, 1)
	if !errors.Is(err, ErrNotMapped) {
		t.Fatalf("err = %v, want ErrNotMapped", err)
	}
}
