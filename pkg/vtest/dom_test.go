package vtest

import (
	"errors"
	"testing"
)

func mustElement(t *testing.T, d *DOM, tag string) *Node {
	t.Helper()
	h, err := d.CreateElement(tag)
	if err != nil {
		t.Fatalf("CreateElement(%q): %v", tag, err)
	}
	return h.(*Node)
}

func mustText(t *testing.T, d *DOM, s string) *Node {
	t.Helper()
	h, err := d.CreateTextNode(s)
	if err != nil {
		t.Fatalf("CreateTextNode(%q): %v", s, err)
	}
	return h.(*Node)
}

func TestDOMBuildAndSerialize(t *testing.T) {
	d := NewDOM()
	root := d.AddContainer("app")

	ul := mustElement(t, d, "ul")
	if err := d.SetAttribute(ul, "class", "list"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetAttribute(ul, "aria-label", "items & more"); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"a", "<b>"} {
		li := mustElement(t, d, "li")
		if err := d.AppendChild(li, mustText(t, d, s)); err != nil {
			t.Fatal(err)
		}
		if err := d.AppendChild(ul, li); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.AppendChild(root, ul); err != nil {
		t.Fatal(err)
	}

	want := `<ul aria-label="items &amp; more" class="list"><li>a</li><li>&lt;b&gt;</li></ul>`
	ExpectHTML(t, root, want)

	if got := root.TextContent(); got != "a<b>" {
		t.Errorf("TextContent = %q, want %q", got, "a<b>")
	}
	if li := root.Find("li"); li == nil || li.TextContent() != "a" {
		t.Errorf("Find(li) = %v", li)
	}
}

func TestDOMFindContainer(t *testing.T) {
	d := NewDOM()
	c := d.AddContainer("app")

	h, ok := d.FindContainer("app")
	if !ok || h.(*Node) != c {
		t.Fatalf("FindContainer(app) = %v, %v", h, ok)
	}
	if _, ok := d.FindContainer("missing"); ok {
		t.Error("FindContainer(missing) should fail")
	}
}

func TestDOMFindMarkers(t *testing.T) {
	d := NewDOM()
	body := d.AddContainer("body")
	p := mustElement(t, d, "p")
	if err := d.AppendChild(body, p); err != nil {
		t.Fatal(err)
	}
	start, end := d.AddMarkers(body, "zx-1")

	parent, s, e, ok := d.FindMarkers("zx-1")
	if !ok || parent.(*Node) != body || s.(*Node) != start || e.(*Node) != end {
		t.Fatalf("FindMarkers(zx-1) = %v, %v, %v, %v", parent, s, e, ok)
	}
	if got := body.InnerHTML(); got != `<p></p><!--zx:zx-1--><!--/zx:zx-1-->` {
		t.Errorf("InnerHTML = %s", got)
	}
	if start.IsText() || start.TextContent() != "" {
		t.Error("comment should not read as text")
	}
	if err := d.AppendChild(start, mustText(t, d, "x")); !errors.Is(err, ErrTextNode) {
		t.Errorf("append under comment: err = %v", err)
	}
	if err := d.SetNodeValue(start, "x"); !errors.Is(err, ErrNotText) {
		t.Errorf("SetNodeValue on comment: err = %v", err)
	}

	if _, _, _, ok := d.FindMarkers("missing"); ok {
		t.Error("FindMarkers(missing) should fail")
	}
	if err := d.RemoveChild(body, end); err != nil {
		t.Fatal(err)
	}
	if _, _, _, ok := d.FindMarkers("zx-1"); ok {
		t.Error("FindMarkers should fail once the end marker is detached")
	}
}

func TestDOMInsertReplaceRemove(t *testing.T) {
	d := NewDOM()
	root := d.AddContainer("app")
	a, b, c := mustElement(t, d, "a"), mustElement(t, d, "b"), mustElement(t, d, "i")

	if err := d.AppendChild(root, a); err != nil {
		t.Fatal(err)
	}
	if err := d.InsertBefore(root, b, a); err != nil {
		t.Fatal(err)
	}
	ExpectHTML(t, root, "<b></b><a></a>")

	if err := d.ReplaceChild(root, c, b); err != nil {
		t.Fatal(err)
	}
	ExpectHTML(t, root, "<i></i><a></a>")
	if b.Parent != nil {
		t.Error("replaced node should be detached")
	}

	if err := d.RemoveChild(root, a); err != nil {
		t.Fatal(err)
	}
	ExpectHTML(t, root, "<i></i>")

	if err := d.InsertBefore(root, a, nil); err != nil {
		t.Fatal(err)
	}
	ExpectHTML(t, root, "<i></i><a></a>")
}

func TestDOMErrors(t *testing.T) {
	d := NewDOM()
	root := d.AddContainer("app")
	div := mustElement(t, d, "div")
	txt := mustText(t, d, "x")
	other := NewDOM().AddContainer("other")

	tests := []struct {
		name string
		op   func() error
		want error
	}{
		{"append to text", func() error { return d.AppendChild(txt, div) }, ErrTextNode},
		{"attribute on text", func() error { return d.SetAttribute(txt, "id", "x") }, ErrTextNode},
		{"node value on element", func() error { return d.SetNodeValue(div, "x") }, ErrNotText},
		{"remove non-child", func() error { return d.RemoveChild(root, div) }, ErrNotChild},
		{"replace non-child", func() error { return d.ReplaceChild(root, txt, div) }, ErrNotChild},
		{"insert before non-child", func() error { return d.InsertBefore(root, txt, div) }, ErrNotChild},
		{"foreign handle", func() error { return d.AppendChild(root, other) }, ErrForeignHandle},
		{"not a node", func() error { return d.AppendChild(root, "div") }, ErrForeignHandle},
		{"cycle", func() error { return d.AppendChild(root, root) }, ErrHierarchy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDOMRelease(t *testing.T) {
	d := NewDOM()
	d.AddContainer("app")
	div := mustElement(t, d, "div")
	if got := d.Live(); got != 2 {
		t.Fatalf("Live = %d, want 2", got)
	}

	d.Release(div)
	if !div.Released() {
		t.Error("node should be released")
	}
	if got := d.Live(); got != 1 {
		t.Errorf("Live = %d, want 1", got)
	}
	if err := d.SetAttribute(div, "id", "x"); !errors.Is(err, ErrReleased) {
		t.Errorf("err = %v, want ErrReleased", err)
	}
}

func TestDOMInnerHTMLProperty(t *testing.T) {
	d := NewDOM()
	root := d.AddContainer("app")
	raw := mustElement(t, d, "zx-raw")
	if err := d.AppendChild(raw, mustText(t, d, "old")); err != nil {
		t.Fatal(err)
	}
	if err := d.SetProperty(raw, "innerHTML", "<b>bold</b>"); err != nil {
		t.Fatal(err)
	}
	if err := d.AppendChild(root, raw); err != nil {
		t.Fatal(err)
	}
	ExpectHTML(t, root, "<zx-raw><b>bold</b></zx-raw>")
}

func TestDOMEvents(t *testing.T) {
	d := NewDOM()
	btn := mustElement(t, d, "button")

	if err := d.BindEvent(btn, 7, "click"); err != nil {
		t.Fatal(err)
	}
	if id := btn.Events["click"]; id != 7 {
		t.Errorf("bound id = %d, want 7", id)
	}
	if err := d.UnbindEvent(btn, 7, "click"); err != nil {
		t.Fatal(err)
	}
	if _, ok := btn.Events["click"]; ok {
		t.Error("click should be unbound")
	}
}

func TestDOMOps(t *testing.T) {
	d := NewDOM()
	root := d.AddContainer("app")
	p := mustElement(t, d, "p")
	if err := d.AppendChild(root, p); err != nil {
		t.Fatal(err)
	}

	want := []string{"CreateElement p", "AppendChild div p"}
	if len(d.Ops) != len(want) {
		t.Fatalf("Ops = %q, want %q", d.Ops, want)
	}
	for i := range want {
		if d.Ops[i] != want[i] {
			t.Errorf("Ops[%d] = %q, want %q", i, d.Ops[i], want[i])
		}
	}

	d.ResetOps()
	if len(d.Ops) != 0 {
		t.Errorf("Ops after reset = %q", d.Ops)
	}
}
