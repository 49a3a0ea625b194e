package golden

import (
	"go/format"
	"os"
	"testing"

	"github.com/vango-dev/zx/pkg/compiler"
	"github.com/vango-dev/zx/pkg/render"
	"github.com/vango-dev/zx/pkg/zx"
)

// TestGoldenUpToDate re-transpiles golden.zx and compares it with the
// committed golden.go.
func TestGoldenUpToDate(t *testing.T) {
	src, err := os.ReadFile("golden.zx")
	if err != nil {
		t.Fatal(err)
	}
	res, err := compiler.Transpile("golden.zx", src, compiler.Options{})
	if err != nil {
		t.Fatalf("Transpile failed: %v", err)
	}
	got, err := format.Source(res.Code)
	if err != nil {
		t.Fatalf("generated code does not format: %v\n%s", err, res.Code)
	}

	committed, err := os.ReadFile("golden.go")
	if err != nil {
		t.Fatal(err)
	}
	want, err := format.Source(committed)
	if err != nil {
		t.Fatal(err)
	}

	if string(got) != string(want) {
		t.Errorf("golden.go is stale\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGoldenRender(t *testing.T) {
	tests := []struct {
		name string
		c    zx.Component
		want string
	}{
		{"if true", Answer(true), "<p>Yes</p>"},
		{"if false", Answer(false), "<p>No</p>"},
		{"for", List([]string{"a", "b"}), "<li>a</li><li>b</li>"},
		{"for empty", List(nil), ""},
		{"nested loops", Groups(true, [][]string{{"a", "b"}, {"c"}}),
			"<div><ul><li><span>a</span><span>b</span></li><li><span>c</span></li></ul></div>"},
		{"nested loops hidden", Groups(false, [][]string{{"a"}}), "<div></div>"},
		{"unused item", Rows([]string{"x", "y"}),
			`<ul><li class="item">item</li><li class="item">item</li></ul>`},
	}

	r := render.NewRenderer(render.Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderToString(tt.c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
