package render

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{"<tag>", "&lt;tag&gt;"},
		{`"quoted" 'single'`, "&quot;quoted&quot; &#39;single&#39;"},
		{"line\nbreak", "line\nbreak"},
		{"日本語", "日本語"},
	}

	for _, tt := range tests {
		if got := escapeHTML(tt.input); got != tt.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{`a"b`, "a&quot;b"},
		{"a\nb\tc\rd", "a&#10;b&#9;c&#13;d"},
		{"&amp;", "&amp;amp;"},
	}

	for _, tt := range tests {
		if got := escapeAttr(tt.input); got != tt.want {
			t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestElementTables(t *testing.T) {
	if !isVoidElement("br") || isVoidElement("div") || isVoidElement("my-widget") {
		t.Error("void element table")
	}
	if !isInlineElement("span") || isInlineElement("div") {
		t.Error("inline element table")
	}
	if !isBooleanAttr("disabled") || isBooleanAttr("class") {
		t.Error("boolean attribute table")
	}
}
