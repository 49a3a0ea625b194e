// Package sourcemap builds and reads source maps linking generated Go files
// to the .zx sources they were compiled from.
//
// Maps are written in the Source Map Revision 3 JSON format. Columns are
// byte offsets.
package sourcemap

import (
	"encoding/json"
	"sort"
	"strings"
)

// Mapping links a generated position to a source position. All fields are
// 0-based.
type Mapping struct {
	GenLine int
	GenCol  int
	SrcLine int
	SrcCol  int
}

// Map is a Revision 3 source map.
type Map struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	SourceRoot     string   `json:"sourceRoot,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// JSON returns the encoded map.
func (m *Map) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// Builder accumulates mappings for one generated file with a single source.
type Builder struct {
	file     string
	source   string
	content  string
	mappings []Mapping
}

// NewBuilder creates a builder for the generated file and its source.
func NewBuilder(file, source string) *Builder {
	return &Builder{file: file, source: source}
}

// SetSourceContent embeds the source text into the map.
func (b *Builder) SetSourceContent(content string) {
	b.content = content
}

// Add records a mapping.
func (b *Builder) Add(m Mapping) {
	b.mappings = append(b.mappings, m)
}

// AddAll records several mappings.
func (b *Builder) AddAll(ms []Mapping) {
	b.mappings = append(b.mappings, ms...)
}

// Len returns the number of recorded mappings.
func (b *Builder) Len() int {
	return len(b.mappings)
}

// Map finalizes the recorded mappings.
func (b *Builder) Map() *Map {
	m := &Map{
		Version:  3,
		File:     b.file,
		Sources:  []string{b.source},
		Names:    []string{},
		Mappings: encode(b.mappings),
	}
	if b.content != "" {
		m.SourcesContent = []string{b.content}
	}
	return m
}

// encode produces the "mappings" field: one group per generated line,
// segments of [genCol, sourceIndex, srcLine, srcCol] as base64 VLQ deltas.
func encode(mappings []Mapping) string {
	ms := append([]Mapping(nil), mappings...)
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].GenLine != ms[j].GenLine {
			return ms[i].GenLine < ms[j].GenLine
		}
		return ms[i].GenCol < ms[j].GenCol
	})

	var sb strings.Builder
	line, prevCol, prevSrcLine, prevSrcCol := 0, 0, 0, 0
	first := true
	for i, m := range ms {
		if i > 0 && m.GenLine == ms[i-1].GenLine && m.GenCol == ms[i-1].GenCol {
			continue
		}
		for line < m.GenLine {
			sb.WriteByte(';')
			line++
			prevCol = 0
			first = true
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false

		writeVLQ(&sb, m.GenCol-prevCol)
		writeVLQ(&sb, 0)
		writeVLQ(&sb, m.SrcLine-prevSrcLine)
		writeVLQ(&sb, m.SrcCol-prevSrcCol)

		prevCol = m.GenCol
		prevSrcLine = m.SrcLine
		prevSrcCol = m.SrcCol
	}
	return sb.String()
}

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func writeVLQ(sb *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}
	for {
		digit := u & 0x1f
		u >>= 5
		if u > 0 {
			digit |= 0x20
		}
		sb.WriteByte(base64Chars[digit])
		if u == 0 {
			return
		}
	}
}
